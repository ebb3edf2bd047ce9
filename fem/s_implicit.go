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
	"github.com/cpmech/gosl/utl"
)

// SolverImplicit solves the FEM problem using an implicit procedure with the
// Newton-Raphson method and automatic sub-incrementation
type SolverImplicit struct {
	dom *Domain
	sum *Summary
	dc  *ele.DynCoefs
}

// set factory
func init() {
	solverallocators["imp"] = func(dom *Domain, sum *Summary, dc *ele.DynCoefs) FEsolver {
		solver := new(SolverImplicit)
		solver.dom = dom
		solver.sum = sum
		solver.dc = dc
		return solver
	}
}

// Run solves one stage, i.e. the time loop from the current time up to tf
func (o *SolverImplicit) Run(tf float64, dtFunc, dtoFunc dbf.T, verbose bool, dbgKb DebugKb_t) (err error) {

	// auxiliary
	d := o.dom
	dat := &d.Sim.Solver
	md := 1.0    // time step multiplier
	ndiverg := 0 // number of steps diverging

	// time control
	t := d.Sol.T
	dtout := dtoFunc.F(t, nil)
	tout := t + dtout

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
	var dt float64
	var lasttimestep bool
	for t < tf {

		// check for continued divergence
		if ndiverg >= dat.NdvgMax {
			return chk.Err("continuous divergence after %d steps reached", ndiverg)
		}

		// time increment
		dt = dtFunc.F(t, nil) * md
		if t+dt >= tf {
			dt = tf - t
			lasttimestep = true
		}
		if dt < dat.DtMin {
			if md < 1 {
				return chk.Err("time increment is too small: %g < %g", dt, dat.DtMin)
			}
			return
		}

		// dynamic coefficients
		if !d.Sim.Data.Steady {
			o.dc.CalcBoth(dt)
		}

		// time update
		t += dt
		d.Sol.T = t
		d.Sol.Dt = dt
		dtout = dtoFunc.F(t, nil)

		// message
		if verbose && !dat.ShowR {
			io.Pf("%30.15f\r", t)
		}

		// backup solution if divergence control is on
		if dat.DvgCtrl {
			d.backup()
		}

		// run iterations
		it, diverging, err := o.runIterations(t, dt, dbgKb)
		if err != nil {
			return err
		}

		// restore solution and reduce time step if divergence control is on
		if dat.DvgCtrl && diverging {
			if verbose {
				io.Pfred(". . . iterations diverging (%2d) . . .\n", ndiverg+1)
			}
			d.restore()
			t -= dt
			d.Sol.T = t
			md *= 0.5
			ndiverg += 1
			lasttimestep = false
			continue
		}
		ndiverg = 0

		// grow time step multiplier after fast convergence
		if it < dat.NitFst {
			md = utl.Min(2.0*md, dat.MdtMax)
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
			tout += dtout
			tidx += 1
		}
	}
	return
}

// runIterations solves the nonlinear problem for one time increment
func (o *SolverImplicit) runIterations(t, dt float64, dbgKb DebugKb_t) (it int, diverging bool, err error) {

	// auxiliary
	d := o.dom
	dat := &d.Sim.Solver

	// zero accumulated increments
	la.VecFill(d.Sol.DY, 0)

	// calculate global starred vectors and interpolate starred variables from nodes to integration points
	err = d.starVars(dt)
	if err != nil {
		return 0, false, chk.Err("cannot compute starred variables:\n%v", err)
	}

	// auxiliary variables
	var largFb, largFb0, Ldy float64
	var prevFb, prevLdy float64

	// message
	if dat.ShowR {
		io.Pf("\n%13s%4s%23s%23s\n", "t", "it", "largFb", "Ldy")
		defer func() {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Ldy)
		}()
	}

	// iterations
	for it = 0; it < dat.NmaxIt; it++ {

		// assemble right-hand side vector (fb) with negative of residuals
		la.VecFill(d.Fb, 0)
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

		// find largest absolute component of fb
		largFb = la.VecLargest(d.Fb, 1)

		// save residual
		if o.sum != nil {
			o.sum.Resids.Append(it == 0, largFb)
		}

		// check largFb value
		if it == 0 {
			// store largest absolute component of fb
			largFb0 = largFb
		} else {
			// check convergence on fb
			if largFb < dat.FbTol*largFb0 {
				break
			}
			// check convergence on smallest value of fb
			if largFb < dat.FbMin {
				break
			}
		}

		// check divergence on fb
		if it > 1 && dat.DvgCtrl {
			if largFb > prevFb {
				diverging = true
				break
			}
		}
		prevFb = largFb

		// assemble Jacobian matrix
		doAsmFact := it == 0 || !dat.CteTg
		if doAsmFact {

			// assemble element matrices
			d.Kb.Start()
			for _, e := range d.Elems {
				err = e.AddToKb(d.Kb, d.Sol, it == 0)
				if err != nil {
					return
				}
			}

			// debug
			if dbgKb != nil {
				dbgKb(d, it)
			}

			// join A and tr(A) matrices into Kb
			d.Kb.PutMatAndMatT(&d.EssenBcs.A)

			// initialise linear solver
			if d.InitLSol {
				err = d.LinSol.InitR(d.Kb, d.Sim.LinSol.Symmetric, d.Sim.LinSol.Verbose, d.Sim.LinSol.Timing)
				if err != nil {
					return it, false, chk.Err("cannot initialise linear solver:\n%v", err)
				}
				d.InitLSol = false
			}

			// perform factorisation
			err = d.LinSol.Fact()
			if err != nil {
				return it, false, chk.Err("factorisation failed:\n%v", err)
			}
		}

		// solve for wb := dyb
		err = d.LinSol.SolveR(d.Wb, d.Fb, false)
		if err != nil {
			return it, false, chk.Err("solve failed:\n%v", err)
		}

		// update primary variables (y)
		for i := 0; i < d.Ny; i++ {
			d.Sol.Y[i] += d.Wb[i]
			d.Sol.DY[i] += d.Wb[i]
		}
		if !d.Sim.Data.Steady {
			for _, I := range d.T1eqs {
				d.Sol.Dydt[I] = o.dc.B1*d.Sol.Y[I] - d.Sol.Psi[I]
			}
			for _, I := range d.T2eqs {
				d.Sol.Dydt[I] = o.dc.A4*d.Sol.Y[I] - d.Sol.Chi[I]
				d.Sol.D2ydt2[I] = o.dc.A1*d.Sol.Y[I] - d.Sol.Zet[I]
			}
		}

		// update Lagrange multipliers (lam)
		for i := 0; i < d.Nlam; i++ {
			d.Sol.L[i] += d.Wb[d.Ny+i]
		}

		// backup / restore
		if it == 0 {
			// create backup copy of all secondary variables
			for _, e := range d.ElemIntvars {
				e.BackupIvs(false)
			}
		} else {
			// recover last converged state from backup copy
			for _, e := range d.ElemIntvars {
				e.RestoreIvs(false)
			}
		}

		// update secondary variables
		for _, e := range d.ElemIntvars {
			err = e.Update(d.Sol)
			if err != nil {
				return
			}
		}

		// compute RMS norm of dy and check convergence on dy
		Ldy = la.VecRmsErr(d.Wb[:d.Ny], dat.Atol, dat.Rtol, d.Sol.Y[:d.Ny])

		// message
		if dat.ShowR {
			io.Pf("%13.6e%4d%23.15e%23.15e\n", t, it, largFb, Ldy)
		}

		// stop if converged on dy
		if Ldy < dat.Itol {
			break
		}

		// check divergence on Ldy
		if it > 1 && dat.DvgCtrl {
			if Ldy > prevLdy {
				diverging = true
				break
			}
		}
		prevLdy = Ldy
	}

	// iteration overflow counts as divergence when divergence control is on
	if it == dat.NmaxIt {
		if dat.DvgCtrl {
			diverging = true
			return
		}
		err = chk.Err("max number of iterations reached: it = %d", it)
	}
	return
}
