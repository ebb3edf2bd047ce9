// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// State holds all continuum mechanics data at one integration point,
// including the data needed for updating the state
type State struct {

	// essential
	Sig []float64 // current Cauchy stress tensor (Voigt components) [nsig]

	// for plasticity (if len(Alp) > 0)
	Alp     []float64 // internal variables of rate type [nalp]
	Loading bool      // plastic loading flag
}

// OnedState holds data for 1D models such as rods
type OnedState struct {
	Sig float64 // axial stress
	Eps float64 // axial strain
}

// NewState allocates a state structure for ndim-dimensional analyses
func NewState(nsig, nalp int) *State {
	var state State
	state.Sig = make([]float64, nsig)
	if nalp > 0 {
		state.Alp = make([]float64, nalp)
	}
	return &state
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State) Set(other *State) {
	copy(o.Sig, other.Sig)
	if len(o.Alp) > 0 {
		copy(o.Alp, other.Alp)
		o.Loading = other.Loading
	}
}

// GetCopy returns a copy of this state
func (o *State) GetCopy() *State {
	other := NewState(len(o.Sig), len(o.Alp))
	other.Set(o)
	return other
}

// Set copies states
func (o *OnedState) Set(other *OnedState) {
	o.Sig = other.Sig
	o.Eps = other.Eps
}

// GetCopy returns a copy of this state
func (o *OnedState) GetCopy() *OnedState {
	other := new(OnedState)
	other.Set(o)
	return other
}
