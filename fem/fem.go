// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem contains elements and solvers for running simulations using the finite element method
package fem

import (
	"time"

	"github.com/mfkiwl/Amaru/ele"
	"github.com/mfkiwl/Amaru/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// FEM holds all data for a simulation using the finite element method
type FEM struct {
	Sim     *inp.Simulation // simulation data
	Summary *Summary        // summary structure
	DynCfs  *ele.DynCoefs   // coefficients for dynamics/transient simulations
	Dom     *Domain         // the domain
	Solver  FEsolver        // finite element method solver; e.g. implicit, linear-implicit
	DebugKb DebugKb_t       // debug Kb callback function
	Verbose bool            // show messages
}

// NewFEM returns a new FEM structure
//  Input:
//   simfilepath -- simulation (.sim) filename including full path
//   alias       -- word to be appended to simulation key; e.g. when running multiple FE solutions
//   erasePrev   -- erase previous results files
//   saveSummary -- save summary
//   verbose     -- show messages
func NewFEM(simfilepath, alias string, erasePrev, saveSummary, verbose bool) (o *FEM) {

	// new FEM object
	o = new(FEM)

	// read input data
	o.Sim = inp.ReadSim(simfilepath, alias, erasePrev)
	if o.Sim == nil {
		chk.Panic("cannot read simulation input data")
	}
	o.Verbose = verbose

	// summary
	if saveSummary {
		o.Summary = new(Summary)
	}

	// auxiliary structures
	o.DynCfs = new(ele.DynCoefs)
	err := o.DynCfs.Init(&o.Sim.Solver)
	if err != nil {
		chk.Panic("cannot initialise dynamic coefficients:\n%v", err)
	}

	// allocate domain
	o.Dom = NewDomain(o.Sim, o.DynCfs)

	// allocate solver
	if alloc, ok := solverallocators[o.Sim.Solver.Type]; ok {
		o.Solver = alloc(o.Dom, o.Summary, o.DynCfs)
	} else {
		chk.Panic("cannot find solver type named %q", o.Sim.Solver.Type)
	}
	return
}

// Run runs the FE simulation over all stages
func (o *FEM) Run() (err error) {

	// clean memory allocated by the linear solver
	defer o.Dom.Clean()

	// loop over stages
	cputime := time.Now()
	for stgidx, stg := range o.Sim.Stages {

		// skip stage?
		if stg.Skip {
			continue
		}

		// set stage
		err = o.SetStage(stgidx)
		if err != nil {
			return
		}

		// initialise solution vectors
		err = o.ZeroStage(stgidx, true)
		if err != nil {
			return
		}

		// time loop
		err = o.Solver.Run(stg.Control.Tf, stg.Control.DtFunc, stg.Control.DtoFunc, o.Verbose, o.DebugKb)
		if err != nil {
			return
		}
	}

	// message
	if o.Verbose {
		if o.Dom.Sol != nil {
			io.Pf("\nfinal time = %v\n", o.Dom.Sol.T)
		}
		io.Pfblue2("cpu time   = %v\n", time.Now().Sub(cputime))
	}

	// save summary
	if o.Summary != nil {
		err = o.Summary.Save(o.Sim.DirOut, o.Sim.Key)
	}
	return
}

// SetStage sets the stage for the domain
func (o *FEM) SetStage(stgidx int) (err error) {
	return o.Dom.SetStage(stgidx)
}

// ZeroStage initialises solution vectors (Y, dYdt, internal values such as States.Sig, etc.)
// for all nodes and all elements
//  Input:
//   stgidx  -- stage index (in o.Sim.Stages)
//   zeroSol -- zero vectors in Dom.Sol
func (o *FEM) ZeroStage(stgidx int, zeroSol bool) (err error) {
	return o.Dom.SetIniVals(stgidx, zeroSol)
}

// SolveOneStage solves one stage that was already set
//  Input:
//   stgidx    -- stage index (in o.Sim.Stages)
//   zerostage -- zero vectors in Dom.Sol => call ZeroStage
func (o *FEM) SolveOneStage(stgidx int, zerostage bool) (err error) {

	// clean memory allocated by the linear solver
	defer o.Dom.Clean()

	// zero stage
	if zerostage {
		err = o.ZeroStage(stgidx, true)
		if err != nil {
			return
		}
	}

	// run
	stg := o.Sim.Stages[stgidx]
	err = o.Solver.Run(stg.Control.Tf, stg.Control.DtFunc, stg.Control.DtoFunc, o.Verbose, o.DebugKb)
	return
}
