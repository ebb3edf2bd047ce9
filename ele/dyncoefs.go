// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/mfkiwl/Amaru/inp"

	"github.com/cpmech/gosl/chk"
)

// DynCoefs calculates coefficients for transient and dynamic analyses.
//
//  theta-method (t1 variables):
//    dudt_(n+1) = B1*u_(n+1) - psi*   with   psi* = B1*u_n + B2*dudt_n
//
//  Newmark's method (t2 variables):
//    a_(n+1) = A1*u_(n+1) - zet*   with   zet* = A1*u_n + A2*v_n + A3*a_n
//    v_(n+1) = A4*u_(n+1) - chi*   with   chi* = A4*u_n + A5*v_n + A6*a_n
type DynCoefs struct {

	// input
	th, th1, th2 float64 // theta, theta1 (gamma), theta2 (2*beta)

	// derived
	B1, B2                 float64
	A1, A2, A3, A4, A5, A6 float64
}

// Init initialises this structure
func (o *DynCoefs) Init(dat *inp.SolverData) (err error) {
	o.th, o.th1, o.th2 = dat.Theta, dat.Theta1, dat.Theta2
	if o.th < 1e-5 || o.th > 1.0 {
		return chk.Err("theta-method requires 0 < theta <= 1; theta = %v is incorrect", o.th)
	}
	if o.th1 < 1e-5 || o.th1 > 1.0 {
		return chk.Err("theta1 must be between 0 and 1; theta1 = %v is incorrect", o.th1)
	}
	if o.th2 < 1e-5 || o.th2 > 1.0 {
		return chk.Err("theta2 must be between 0 and 1; theta2 = %v is incorrect", o.th2)
	}
	return
}

// CalcBoth computes coefficients for both the theta and Newmark methods
func (o *DynCoefs) CalcBoth(dt float64) {

	// theta-method
	o.B1 = 1.0 / (o.th * dt)
	o.B2 = (1.0 - o.th) / o.th

	// Newmark's method
	H := dt * dt * o.th2 / 2.0
	o.A1 = 1.0 / H
	o.A2 = dt / H
	o.A3 = (1.0 - o.th2) / o.th2
	o.A4 = o.th1 * dt / H
	o.A5 = 2.0*o.th1/o.th2 - 1.0
	o.A6 = dt * (o.th1*(1.0-o.th2)/o.th2 - (1.0 - o.th1))
}
