// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements models to solve diffusion(-like) problems
package diffusion

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model defines diffusion models
//
//  The governing equation is
//    rho * du/dt = div(kten(u) * grad(u)) + s
//  where u is the primary variable, rho is the capacity coefficient
//  and kten is the (possibly u-dependent) conductivity tensor
type Model interface {
	Init(ndim int, prms dbf.Params) error // initialises this structure
	GetRho() float64                    // returns the capacity coefficient
	GetKcte() [][]float64               // returns the constant part of the conductivity tensor
	Kval(u float64) float64             // computes the scalar conductivity multiplier k(u)
	DkDu(u float64) float64             // computes dk/du
	Kten(kten [][]float64, u float64)   // computes kten = kval(u) * kcte
}

// New returns a new diffusion model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'diffusion' database", name)
	}
	return allocator(), nil
}

// allocators holds all available models
var allocators = map[string]func() Model{}
