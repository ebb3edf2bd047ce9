// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// ElastRod implements a linear elastic model for 1D rods
type ElastRod struct {
	E   float64 // Young's modulus
	A   float64 // cross-sectional area
	Rho float64 // density
}

// add model to factory
func init() {
	allocators["elast-rod"] = func() Model { return new(ElastRod) }
}

// Init initialises model
func (o *ElastRod) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	o.A = 1
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E = p.V
		case "A":
			o.A = p.V
		case "rho":
			o.Rho = p.V
		}
	}
	if o.E < 1e-14 {
		return chk.Err("elast-rod model requires parameter E > 0")
	}
	return
}

// GetPrms gets (an example) of parameters
func (o ElastRod) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 2.0e8},
		&dbf.P{N: "A", V: 1.0e-2},
	}
}

// GetRho returns density
func (o ElastRod) GetRho() float64 {
	return o.Rho
}

// GetA returns cross-sectional area
func (o ElastRod) GetA() float64 {
	return o.A
}

// InitIntVars1D initialises internal (secondary) variables
func (o ElastRod) InitIntVars1D() (s *OnedState, err error) {
	s = new(OnedState)
	return
}

// Update updates state for given axial strain increment
func (o *ElastRod) Update(s *OnedState, eps, deps float64) (err error) {
	s.Sig += o.E * deps
	s.Eps += deps
	return
}

// CalcD computes D = dSig_new/dEps_new consistent with Update
func (o *ElastRod) CalcD(s *OnedState, firstIt bool) (float64, error) {
	return o.E, nil
}
