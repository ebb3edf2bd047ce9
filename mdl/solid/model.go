// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements models for solids based on continuum mechanics
package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines the interface for solid models
type Model interface {
	Init(ndim int, pstress bool, prms dbf.Params) error // initialises model
	GetPrms() dbf.Params                                // gets (an example) of parameters
	GetRho() float64                                  // returns density
}

// Small defines rate type solid models for small strain analyses
type Small interface {
	InitIntVars(sig []float64) (*State, error)            // initialises AND allocates internal (secondary) variables
	Update(s *State, eps, deps []float64, eid, ipid int) error // updates stresses for given strains
	CalcD(D [][]float64, s *State, firstIt bool) error    // computes D = dSig_new/dEps_new consistent with Update
}

// OneD defines 1D models for rod elements
type OneD interface {
	InitIntVars1D() (*OnedState, error)                         // initialises AND allocates internal (secondary) variables
	Update(s *OnedState, eps, deps float64) error               // update state for given axial strain increment
	CalcD(s *OnedState, firstIt bool) (float64, error)          // computes D = dSig_new/dEps_new consistent with Update
	GetA() float64                                              // returns cross-sectional area
}

// New returns new solid model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'solid' database", name)
	}
	return allocator(), nil
}

// allocators holds all available solid models; modelname => allocator
var allocators = map[string]func() Model{}
