// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// SmallElasticity implements linear isotropic elasticity for small strain analyses.
// Stress and strain tensors use Voigt notation with engineering shear strains:
//  2D: {sx, sy, sz, sxy} and {ex, ey, ez, gxy}
//  3D: {sx, sy, sz, sxy, syz, szx} and {ex, ey, ez, gxy, gyz, gzx}
type SmallElasticity struct {
	Nsig int     // number of stress components
	E    float64 // Young's modulus
	Nu   float64 // Poisson's coefficient
	L    float64 // Lame's first parameter
	G    float64 // shear modulus
	K    float64 // bulk modulus
	Rho  float64 // density
	Pse  bool    // plane-stress
}

// Init initialises this structure
func (o *SmallElasticity) Init(ndim int, pstress bool, prms dbf.Params) (err error) {
	o.Nsig = 2 * ndim
	o.Pse = pstress
	var haveE, haveNu, haveG, haveK bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, haveE = p.V, true
		case "nu":
			o.Nu, haveNu = p.V, true
		case "G":
			o.G, haveG = p.V, true
		case "K":
			o.K, haveK = p.V, true
		case "rho":
			o.Rho = p.V
		}
	}
	switch {
	case haveE && haveNu:
		// ok
	case haveG && haveK:
		o.E = 9.0 * o.K * o.G / (3.0*o.K + o.G)
		o.Nu = (3.0*o.K - 2.0*o.G) / (6.0*o.K + 2.0*o.G)
	default:
		return chk.Err("elastic model requires either {E, nu} or {G, K} parameters")
	}
	if o.E <= 0 {
		return chk.Err("elastic model requires E > 0 (E=%g is incorrect)", o.E)
	}
	if o.Nu < 0 || o.Nu >= 0.5 {
		return chk.Err("elastic model requires 0 <= nu < 0.5 (nu=%g is incorrect)", o.Nu)
	}
	if o.Rho < 0 {
		return chk.Err("elastic model requires rho >= 0 (rho=%g is incorrect)", o.Rho)
	}
	o.L = o.E * o.Nu / ((1.0 + o.Nu) * (1.0 - 2.0*o.Nu))
	o.G = o.E / (2.0 * (1.0 + o.Nu))
	o.K = o.E / (3.0 * (1.0 - 2.0*o.Nu))
	if o.Pse && ndim != 2 {
		return chk.Err("plane-stress is only available in 2D analyses")
	}
	return
}

// CalcD computes the elastic modulus D in Voigt notation
func (o *SmallElasticity) CalcD(D [][]float64, s *State) (err error) {
	nsig := len(s.Sig)
	la.MatFill(D, 0)
	if o.Pse {
		c := o.E / (1.0 - o.Nu*o.Nu)
		D[0][0], D[0][1] = c, c*o.Nu
		D[1][0], D[1][1] = c*o.Nu, c
		D[3][3] = c * (1.0 - o.Nu) / 2.0
		return
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = o.L
		}
		D[i][i] += 2.0 * o.G
	}
	for i := 3; i < nsig; i++ {
		D[i][i] = o.G
	}
	return
}

// LinElast implements a linear elastic solid model
type LinElast struct {
	SmallElasticity
}

// add model to factory
func init() {
	allocators["lin-elast"] = func() Model { return new(LinElast) }
}

// GetPrms gets (an example) of parameters
func (o LinElast) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "E", V: 2.0e8},
		&dbf.P{N: "nu", V: 0.2},
	}
}

// GetRho returns density
func (o LinElast) GetRho() float64 {
	return o.Rho
}

// InitIntVars initialises internal (secondary) variables
func (o LinElast) InitIntVars(sig []float64) (s *State, err error) {
	s = NewState(len(sig), 0)
	copy(s.Sig, sig)
	return
}

// Update updates stresses for given strains
func (o *LinElast) Update(s *State, eps, deps []float64, eid, ipid int) (err error) {
	nsig := len(s.Sig)
	if o.Pse {
		c := o.E / (1.0 - o.Nu*o.Nu)
		s.Sig[0] += c * (deps[0] + o.Nu*deps[1])
		s.Sig[1] += c * (o.Nu*deps[0] + deps[1])
		s.Sig[3] += c * (1.0 - o.Nu) / 2.0 * deps[3]
		return
	}
	tr := deps[0] + deps[1] + deps[2]
	for i := 0; i < 3; i++ {
		s.Sig[i] += o.L*tr + 2.0*o.G*deps[i]
	}
	for i := 3; i < nsig; i++ {
		s.Sig[i] += o.G * deps[i]
	}
	return
}

// CalcD computes D = dSig_new/dEps_new consistent with Update
func (o *LinElast) CalcD(D [][]float64, s *State, firstIt bool) (err error) {
	return o.SmallElasticity.CalcD(D, s)
}
