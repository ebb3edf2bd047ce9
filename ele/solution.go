// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the solution data @ nodes.
//
//        / u \
//  yb =  |   |   with y (ny x 1) and yb (ny+nlam x 1)
//        \ l /
//
type Solution struct {

	// current state
	T      float64   // current time
	Y      []float64 // DOFs (solution variables)
	Dydt   []float64 // dy/dt
	D2ydt2 []float64 // d2y/dt2

	// auxiliary
	Dt  float64   // current time increment
	DY  []float64 // total increment (for nonlinear solver)
	Psi []float64 // t1 star vars; e.g. psi* = b1.u + b2.dudt
	Zet []float64 // t2 star vars; e.g. zet* = a1.u + a2.v + a3.a
	Chi []float64 // t2 star vars; e.g. chi* = a4.u + a5.v + a6.a
	L   []float64 // Lagrange multipliers

	// problem definition and constants
	Steady  bool      // [from Sim] steady simulation
	Axisym  bool      // [from Sim] axisymmetric
	Pstress bool      // [from Sim] plane-stress
	DynCfs  *DynCoefs // [from FEM] coefficients for dynamics/transient simulations
}

// Reset clears values
func (o *Solution) Reset(steady bool) {
	o.T = 0
	for i := 0; i < len(o.Y); i++ {
		o.Y[i] = 0
		o.DY[i] = 0
	}
	if !steady {
		for i := 0; i < len(o.Y); i++ {
			o.Psi[i] = 0
			o.Zet[i] = 0
			o.Chi[i] = 0
			o.Dydt[i] = 0
			o.D2ydt2[i] = 0
		}
	}
	for i := 0; i < len(o.L); i++ {
		o.L[i] = 0
	}
}
