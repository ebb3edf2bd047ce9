// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// M1 implements a model for diffusion problems with nonlinear coefficient
//
//   kten = kval(u) * kcte
//
//   kval = a0  +  a1 u  +  a2 u²  +  a3 u³
//
type M1 struct {
	a0, a1, a2, a3 float64
	Rho            float64
	Kcte           [][]float64
}

// add model to factory
func init() {
	allocators["m1"] = func() Model { return new(M1) }
}

// Init initialises this structure
func (o *M1) Init(ndim int, prms dbf.Params) (err error) {

	// parameters
	var kx, ky, kz float64
	var haveKx, haveKy, haveKz bool
	o.Rho = 1
	for _, p := range prms {
		switch p.N {
		case "a0":
			o.a0 = p.V
		case "a1":
			o.a1 = p.V
		case "a2":
			o.a2 = p.V
		case "a3":
			o.a3 = p.V
		case "rho":
			o.Rho = p.V
		case "k":
			kx, ky, kz = p.V, p.V, p.V
			haveKx, haveKy, haveKz = true, true, true
		case "kx":
			kx, haveKx = p.V, true
		case "ky":
			ky, haveKy = p.V, true
		case "kz":
			kz, haveKz = p.V, true
		default:
			return chk.Err("m1: parameter named %q is incorrect", p.N)
		}
	}
	if !haveKx || !haveKy {
		return chk.Err("m1 model: either 'k' (isotropic) or ['kx', 'ky', 'kz'] must be given in database of material parameters")
	}
	if ndim == 3 && !haveKz {
		return chk.Err("m1 model: 'kz' must be given in 3D analyses")
	}
	if o.a0 <= 0 {
		return chk.Err("m1 model requires a0 > 0 (a0=%g is incorrect)", o.a0)
	}
	if kx <= 0 || ky <= 0 || (ndim == 3 && kz <= 0) {
		return chk.Err("m1 model requires positive conductivities (kx=%g, ky=%g, kz=%g)", kx, ky, kz)
	}
	if o.Rho < 0 {
		return chk.Err("m1 model requires rho >= 0 (rho=%g is incorrect)", o.Rho)
	}

	// conductivity tensor
	o.Kcte = la.MatAlloc(ndim, ndim)
	o.Kcte[0][0] = kx
	o.Kcte[1][1] = ky
	if ndim == 3 {
		o.Kcte[2][2] = kz
	}
	return
}

// GetRho returns the capacity coefficient
func (o *M1) GetRho() float64 {
	return o.Rho
}

// GetKcte returns the constant part of the conductivity tensor
func (o *M1) GetKcte() [][]float64 {
	return o.Kcte
}

// Kval computes k(u)
func (o *M1) Kval(u float64) float64 {
	return o.a0 + o.a1*u + o.a2*u*u + o.a3*u*u*u
}

// DkDu computes dk/du
func (o *M1) DkDu(u float64) float64 {
	return o.a1 + 2.0*o.a2*u + 3.0*o.a3*u*u
}

// Kten computes kten = kval(u) * kcte
func (o *M1) Kten(kten [][]float64, u float64) {
	la.MatCopy(kten, o.Kval(u), o.Kcte)
}
