// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/mfkiwl/Amaru/ele"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// SolverLinearImplicit solves **linear** FEM problems using an implicit procedure.
// The Jacobian is assembled and factorised once and reused on every time step.
type SolverLinearImplicit struct {
	dom *Domain
	sum *Summary
	dc  *ele.DynCoefs
}

// set factory
func init() {
	solverallocators["lin"] = func(dom *Domain, sum *Summary, dc *ele.DynCoefs) FEsolver {
		solver := new(SolverLinearImplicit)
		solver.dom = dom
		solver.sum = sum
		solver.dc = dc
		return solver
	}
}

// Run solves one stage, i.e. the time loop from the current time up to tf
func (o *SolverLinearImplicit) Run(tf float64, dtFunc, dtoFunc dbf.T, verbose bool, notused DebugKb_t) (err error) {

	// control
	d := o.dom
	t := d.Sol.T
	tout := t + dtoFunc.F(t, nil)
	steady := d.Sim.Data.Steady

	// first output
	tidx := 0
	if o.sum != nil {
		tidx = len(o.sum.OutTimes)
		o.sum.OutTimes = append(o.sum.OutTimes, t)
	}
	err = d.Out(tidx)
	if err != nil {
		return
	}
	tidx += 1

	// time loop
	first := true
	var dt float64
	var lasttimestep bool
	for t < tf {

		// time increment
		dt = dtFunc.F(t, nil)
		if t+dt >= tf {
			dt = tf - t
			lasttimestep = true
		}
		t += dt

		// update time variable in solution array
		d.Sol.T = t
		d.Sol.Dt = dt

		// dynamic coefficients
		if !steady {
			o.dc.CalcBoth(dt)
		}

		// message
		if verbose {
			io.Pf("%30.15f\r", t)
		}

		// calculate global starred vectors and interpolate starred variables from nodes to ips
		err = d.starVars(dt)
		if err != nil {
			return chk.Err("cannot compute starred variables:\n%v", err)
		}

		// solve linear problem
		err = o.solveLinearProblem(t, first)
		if err != nil {
			return chk.Err("solution of linear problem failed:\n%v", err)
		}
		first = false

		// update velocity and acceleration
		if !steady {
			for _, I := range d.T1eqs {
				d.Sol.Dydt[I] = o.dc.B1*d.Sol.Y[I] - d.Sol.Psi[I]
			}
			for _, I := range d.T2eqs {
				d.Sol.Dydt[I] = o.dc.A4*d.Sol.Y[I] - d.Sol.Chi[I]
				d.Sol.D2ydt2[I] = o.dc.A1*d.Sol.Y[I] - d.Sol.Zet[I]
			}
		}

		// perform output
		if t >= tout || lasttimestep {
			if o.sum != nil {
				o.sum.OutTimes = append(o.sum.OutTimes, t)
			}
			err = d.Out(tidx)
			if err != nil {
				return err
			}
			tout += dtoFunc.F(t, nil)
			tidx += 1
		}
	}
	return
}

// solveLinearProblem solves the linear problem for one time step
func (o *SolverLinearImplicit) solveLinearProblem(t float64, first bool) (err error) {

	// auxiliary
	d := o.dom

	// assemble right-hand side vector (fb) with negative of residuals
	la.VecFill(d.Fb, 0)
	la.VecFill(d.Sol.DY, 0)
	for _, e := range d.Elems {
		err = e.AddToRhs(d.Fb, d.Sol)
		if err != nil {
			return
		}
	}

	// point natural boundary conditions; e.g. concentrated loads
	d.PtNatBcs.AddToRhs(d.Fb, t)

	// essential boundary conditions; e.g. constraints
	d.EssenBcs.AddToRhs(d.Fb, d.Sol)

	// save residual
	if o.sum != nil {
		o.sum.Resids.Append(true, la.VecLargest(d.Fb, 1))
	}

	// assemble and factorise Jacobian matrix just once
	if first {

		// assemble element matrices
		d.Kb.Start()
		for _, e := range d.Elems {
			err = e.AddToKb(d.Kb, d.Sol, true)
			if err != nil {
				return
			}
		}

		// join A and tr(A) matrices into Kb
		d.Kb.PutMatAndMatT(&d.EssenBcs.A)

		// initialise linear solver (just once)
		if d.InitLSol {
			err = d.LinSol.InitR(d.Kb, d.Sim.LinSol.Symmetric, d.Sim.LinSol.Verbose, d.Sim.LinSol.Timing)
			if err != nil {
				return chk.Err("cannot initialise linear solver:\n%v", err)
			}
			d.InitLSol = false
		}

		// perform factorisation (just once)
		err = d.LinSol.Fact()
		if err != nil {
			return chk.Err("factorisation failed:\n%v", err)
		}
	}

	// solve for wb
	err = d.LinSol.SolveR(d.Wb, d.Fb, false)
	if err != nil {
		return chk.Err("solve failed:\n%v", err)
	}

	// update primary variables (y)
	for i := 0; i < d.Ny; i++ {
		d.Sol.Y[i] += d.Wb[i]
		d.Sol.DY[i] += d.Wb[i]
	}

	// update Lagrange multipliers (lam)
	for i := 0; i < d.Nlam; i++ {
		d.Sol.L[i] += d.Wb[d.Ny+i]
	}

	// update secondary variables
	for _, e := range d.ElemIntvars {
		err = e.Update(d.Sol)
		if err != nil {
			return
		}
	}
	return
}
