// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/mfkiwl/Amaru/ele"
	"github.com/mfkiwl/Amaru/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// Domain holds all Nodes and Elements active during a stage in addition to the Solution at nodes
type Domain struct {

	// init: auxiliary variables
	Sim    *inp.Simulation // [from FEM] input data
	Msh    *inp.Mesh       // mesh data
	LinSol la.LinSol       // linear solver
	DynCfs *ele.DynCoefs   // [from FEM] coefficients for dynamics/transient simulations

	// stage: nodes and elements
	Nodes []*Node       // active nodes (for each stage)
	Elems []ele.Element // all elements

	// stage: auxiliary maps for dofs and equation types
	F2Y      map[string]string // converts f-keys to y-keys; e.g. "fx" => "ux"
	YandC    map[string]bool   // y and constraints keys; e.g. "ux", "u", "incsup"
	Dof2Tnum map[string]int    // {t1,t2}-types: dof => t_number; e.g. "ux" => 2, "u" => 1

	// stage: auxiliary maps for nodes and elements
	Vid2node []*Node       // [nverts] VertexId => pointer to node. Unused vertices are 'nil'
	Cid2elem []ele.Element // [ncells] CellId => pointer to element

	// stage: subsets of elements
	ElemIntvars []ele.WithIntVars   // elements with internal vars
	ElemOutIps  []ele.CanOutputIps  // elements that can output integration point values
	ElemExtrap  []ele.CanExtrapolate // elements that can extrapolate ip values to nodes

	// stage: integration points
	Ips []*ele.Ip // all integration points; ids unique in element-traversal order

	// stage: coefficients and prescribed forces
	EssenBcs EssentialBcs // constraints (Lagrange multipliers)
	PtNatBcs PtNaturalBcs // point loads such as prescribed forces at nodes

	// stage: t1 and t2 variables
	T1eqs []int // first t-derivative variables; e.g. du/dt vars
	T2eqs []int // second t-derivative variables; e.g. d2u/dt2 vars

	// stage: dimensions
	NnzKb int // number of nonzeros in Kb matrix
	Ny    int // total number of dofs, except Lagrange multipliers
	Nlam  int // total number of Lagrange multipliers
	NnzA  int // number of nonzeros in A (constraints) matrix
	Nyb   int // total number of equations: ny + nlam

	// stage: solution and linear solver
	Sol      *ele.Solution // solution state
	Kb       *la.Triplet   // Jacobian == dRdy
	Fb       []float64     // residual == -fb
	Wb       []float64     // workspace
	InitLSol bool          // flag telling that linear solver needs to be initialised prior to any further call

	// output tables; set by UpdateOutputData
	NodeData map[string][]float64 // field key => nodal values [nverts]
	ElemData map[string][]float64 // field key => element mean values [ncells]

	// for divergence control
	bkpSol *ele.Solution // backup solution
}

// NewDomain returns a new domain
func NewDomain(sim *inp.Simulation, dyncfs *ele.DynCoefs) (o *Domain) {
	o = new(Domain)
	o.Sim = sim
	o.Msh = sim.Msh
	o.LinSol = la.GetSolver(sim.LinSol.Name)
	o.DynCfs = dyncfs
	return
}

// Clean cleans memory allocated by the linear solver
func (o *Domain) Clean() {
	o.LinSol.Clean()
}

// SetStage sets nodes, equation numbers and auxiliary data for given stage
func (o *Domain) SetStage(stgidx int) (err error) {

	// pointer to stage structure
	stg := o.Sim.Stages[stgidx]

	// nodes and elements
	o.Nodes = make([]*Node, 0)
	o.Elems = make([]ele.Element, 0)

	// auxiliary maps for dofs and equation types
	o.F2Y = make(map[string]string)
	o.YandC = GetIsEssenKeyMap()
	o.Dof2Tnum = make(map[string]int)

	// auxiliary maps for nodes and elements
	o.Vid2node = make([]*Node, len(o.Msh.Verts))
	o.Cid2elem = make([]ele.Element, len(o.Msh.Cells))

	// subsets of elements
	o.ElemIntvars = make([]ele.WithIntVars, 0)
	o.ElemOutIps = make([]ele.CanOutputIps, 0)
	o.ElemExtrap = make([]ele.CanExtrapolate, 0)

	// allocate nodes and elements ------------------------------------------------------------------

	// check bindings cover all cells
	var unbound []int
	for _, cell := range o.Msh.Cells {
		if o.Sim.CellBinding(cell) == nil {
			unbound = append(unbound, cell.Id)
		}
	}
	if len(unbound) > 0 {
		msg := ""
		for _, cid := range unbound {
			msg += io.Sf(" {id=%d, type=%q}", cid, o.Msh.Cells[cid].Type)
		}
		return chk.Err("the following cells are not bound to materials:%s", msg)
	}

	// for each cell
	var eq int // current equation number => total number of equations @ end of loop
	o.NnzKb = 0
	for _, cell := range o.Msh.Cells {

		// binding
		bnd := o.Sim.CellBinding(cell)

		// set cell's face boundary conditions
		err = cell.SetFaceConds(stg, o.Sim.Functions)
		if err != nil {
			return
		}

		// get element info
		info, err := ele.GetInfo(o.Sim, cell, bnd)
		if err != nil {
			return chk.Err("get element information failed:\n%v", err)
		}
		chk.IntAssert(len(info.Dofs), len(cell.Verts))

		// store y and f information
		for ykey, fkey := range info.Y2F {
			o.F2Y[fkey] = ykey
			o.YandC[ykey] = true
		}

		// t1 and t2 equations
		for _, ykey := range info.T1vars {
			o.Dof2Tnum[ykey] = 1
		}
		for _, ykey := range info.T2vars {
			o.Dof2Tnum[ykey] = 2
		}

		// loop over nodes of this element
		var eNdof int // number of DOFs of this element
		for j, v := range cell.Verts {

			// new or existent node
			var nod *Node
			if o.Vid2node[v] == nil {
				nod = NewNode(o.Msh.Verts[v])
				o.Vid2node[v] = nod
				o.Nodes = append(o.Nodes, nod)
			} else {
				nod = o.Vid2node[v]
			}

			// set DOFs and equation numbers
			for _, ukey := range info.Dofs[j] {
				eq = nod.AddDofAndEq(ukey, eq)
				eNdof += 1
			}
		}

		// number of non-zeros
		o.NnzKb += eNdof * eNdof

		// new element
		e, err := ele.New(o.Sim, cell, bnd)
		if err != nil {
			return chk.Err("new element failed:\n%v", err)
		}
		o.Cid2elem[cell.Id] = e
		o.Elems = append(o.Elems, e)

		// give equation numbers to new element
		eqs := make([][]int, len(cell.Verts))
		for j, v := range cell.Verts {
			for _, dof := range o.Vid2node[v].Dofs {
				eqs[j] = append(eqs[j], dof.Eq)
			}
		}
		err = e.SetEqs(eqs)
		if err != nil {
			return chk.Err("cannot set element equations:\n%v", err)
		}

		// subsets of elements
		o.addElementToSubsets(e)
	}

	// integration points: assign global ids in element-traversal order
	o.Ips = make([]*ele.Ip, 0)
	for _, e := range o.ElemOutIps {
		for _, x := range e.OutIpCoords() {
			o.Ips = append(o.Ips, &ele.Ip{Id: len(o.Ips), Eid: e.Id(), X: x})
		}
	}

	// element conditions, essential and natural boundary conditions --------------------------------

	// (re)set constraints and prescribed forces structures
	o.EssenBcs.Init()
	o.PtNatBcs.Reset()

	// element conditions
	for _, ec := range stg.EleConds {
		cells, ok := o.Msh.CellTag2cells[ec.Tag]
		if !ok {
			return chk.Err("cannot find cells with tag = %d to assign conditions", ec.Tag)
		}
		for _, cell := range cells {
			e := o.Cid2elem[cell.Id]
			for j, key := range ec.Keys {
				fcn := o.Sim.Functions.Get(ec.Funcs[j])
				if fcn == nil {
					return chk.Err("cannot find function named %q", ec.Funcs[j])
				}
				e.SetEleConds(key, fcn, ec.Extra)
			}
		}
	}

	// face essential boundary conditions
	for _, cellsAndFaces := range o.Msh.FaceTag2cells {
		for _, pair := range cellsAndFaces {
			cell := pair.C
			for _, fc := range cell.FaceBcs {
				var enodes []*Node
				for _, v := range fc.GlobalVerts {
					enodes = append(enodes, o.Vid2node[v])
				}
				if o.YandC[fc.Cond] {
					err = o.EssenBcs.Set(fc.Cond, enodes, fc.Func, fc.Extra)
					if err != nil {
						return chk.Err("setting of essential boundary conditions failed:\n%v", err)
					}
				}
			}
		}
	}

	// vertex boundary conditions
	for _, nc := range stg.NodeBcs {
		verts, ok := o.Msh.VertTag2verts[nc.Tag]
		if !ok {
			return chk.Err("cannot find vertices with tag = %d to assign node boundary conditions", nc.Tag)
		}
		for _, v := range verts {
			if o.Vid2node[v.Id] == nil {
				continue
			}
			n := o.Vid2node[v.Id]
			for j, key := range nc.Keys {
				fcn := o.Sim.Functions.Get(nc.Funcs[j])
				if fcn == nil {
					return chk.Err("cannot find function named %q", nc.Funcs[j])
				}
				if o.YandC[key] {
					err = o.EssenBcs.Set(key, []*Node{n}, fcn, nc.Extra)
					if err != nil {
						return chk.Err("setting of vertex boundary conditions failed:\n%v", err)
					}
				} else {
					err = o.PtNatBcs.Set(o.F2Y[key], n, fcn, nc.Extra)
					if err != nil {
						return
					}
				}
			}
		}
	}

	// resize slices --------------------------------------------------------------------------------

	// t1 and t2 equations
	o.T1eqs = make([]int, 0)
	o.T2eqs = make([]int, 0)
	for _, nod := range o.Nodes {
		for _, dof := range nod.Dofs {
			switch o.Dof2Tnum[dof.Key] {
			case 1:
				o.T1eqs = append(o.T1eqs, dof.Eq)
			case 2:
				o.T2eqs = append(o.T2eqs, dof.Eq)
			default:
				chk.Panic("t1 and t2 equations are incorrectly set")
			}
		}
	}

	// size of arrays
	o.Ny = eq
	o.Nlam, o.NnzA = o.EssenBcs.Build(o.Ny)
	o.Nyb = o.Ny + o.Nlam

	// solution structure
	o.Sol = new(ele.Solution)
	o.Sol.Steady = o.Sim.Data.Steady
	o.Sol.Axisym = o.Sim.Data.Axisym
	o.Sol.Pstress = o.Sim.Data.Pstress
	o.Sol.DynCfs = o.DynCfs

	// linear system
	o.Kb = new(la.Triplet)
	o.Fb = make([]float64, o.Nyb)
	o.Wb = make([]float64, o.Nyb)
	o.Kb.Init(o.Nyb, o.Nyb, o.NnzKb+2*o.NnzA)
	o.InitLSol = true // tell solver that the linear solver must be initialised before use

	// allocate arrays
	o.Sol.Y = make([]float64, o.Ny)
	o.Sol.DY = make([]float64, o.Ny)
	o.Sol.L = make([]float64, o.Nlam)
	if !o.Sim.Data.Steady {
		o.Sol.Dydt = make([]float64, o.Ny)
		o.Sol.D2ydt2 = make([]float64, o.Ny)
		o.Sol.Psi = make([]float64, o.Ny)
		o.Sol.Zet = make([]float64, o.Ny)
		o.Sol.Chi = make([]float64, o.Ny)
	}
	return
}

// SetIniVals sets/resets initial values at nodes and integration points
func (o *Domain) SetIniVals(stgidx int, zeroSol bool) (err error) {

	// clear solution vectors
	if zeroSol {
		o.Sol.Reset(o.Sim.Data.Steady)
	}

	// initialise internal variables
	for _, e := range o.ElemIntvars {
		err = e.SetIniIvs(o.Sol, nil)
		if err != nil {
			return chk.Err("cannot set initial internal variables:\n%v", err)
		}
	}

	// make sure time is zero at the beginning of the stage
	o.Sol.T = 0
	return
}

// auxiliary functions //////////////////////////////////////////////////////////////////////////////

// addElementToSubsets adds an element to as many subsets as it fits
func (o *Domain) addElementToSubsets(e ele.Element) {
	if w, ok := e.(ele.WithIntVars); ok {
		o.ElemIntvars = append(o.ElemIntvars, w)
	}
	if w, ok := e.(ele.CanOutputIps); ok {
		o.ElemOutIps = append(o.ElemOutIps, w)
	}
	if w, ok := e.(ele.CanExtrapolate); ok {
		o.ElemExtrap = append(o.ElemExtrap, w)
	}
}

// starVars computes starred variables in Sol and interpolates them to integration points
func (o *Domain) starVars(dt float64) (err error) {

	// skip if steady simulation
	if o.Sim.Data.Steady {
		return
	}

	// compute starred vectors
	dc := o.DynCfs
	for _, I := range o.T1eqs {
		o.Sol.Psi[I] = dc.B1*o.Sol.Y[I] + dc.B2*o.Sol.Dydt[I]
	}
	for _, I := range o.T2eqs {
		o.Sol.Zet[I] = dc.A1*o.Sol.Y[I] + dc.A2*o.Sol.Dydt[I] + dc.A3*o.Sol.D2ydt2[I]
		o.Sol.Chi[I] = dc.A4*o.Sol.Y[I] + dc.A5*o.Sol.Dydt[I] + dc.A6*o.Sol.D2ydt2[I]
	}

	// set internal starred variables
	for _, e := range o.Elems {
		err = e.InterpStarVars(o.Sol)
		if err != nil {
			return
		}
	}
	return
}

// backup saves a copy of the solution
func (o *Domain) backup() {
	if o.bkpSol == nil {
		o.bkpSol = new(ele.Solution)
		o.bkpSol.Y = make([]float64, o.Ny)
		o.bkpSol.DY = make([]float64, o.Ny)
		o.bkpSol.L = make([]float64, o.Nlam)
		if !o.Sim.Data.Steady {
			o.bkpSol.Dydt = make([]float64, o.Ny)
			o.bkpSol.D2ydt2 = make([]float64, o.Ny)
			o.bkpSol.Psi = make([]float64, o.Ny)
			o.bkpSol.Zet = make([]float64, o.Ny)
			o.bkpSol.Chi = make([]float64, o.Ny)
		}
	}
	o.bkpSol.T = o.Sol.T
	copy(o.bkpSol.Y, o.Sol.Y)
	copy(o.bkpSol.DY, o.Sol.DY)
	copy(o.bkpSol.L, o.Sol.L)
	if !o.Sim.Data.Steady {
		copy(o.bkpSol.Dydt, o.Sol.Dydt)
		copy(o.bkpSol.D2ydt2, o.Sol.D2ydt2)
		copy(o.bkpSol.Psi, o.Sol.Psi)
		copy(o.bkpSol.Zet, o.Sol.Zet)
		copy(o.bkpSol.Chi, o.Sol.Chi)
	}
	for _, e := range o.ElemIntvars {
		e.BackupIvs(true)
	}
}

// restore restores the solution from the backup copy
func (o *Domain) restore() {
	o.Sol.T = o.bkpSol.T
	copy(o.Sol.Y, o.bkpSol.Y)
	copy(o.Sol.DY, o.bkpSol.DY)
	copy(o.Sol.L, o.bkpSol.L)
	if !o.Sim.Data.Steady {
		copy(o.Sol.Dydt, o.bkpSol.Dydt)
		copy(o.Sol.D2ydt2, o.bkpSol.D2ydt2)
		copy(o.Sol.Psi, o.bkpSol.Psi)
		copy(o.Sol.Zet, o.bkpSol.Zet)
		copy(o.Sol.Chi, o.bkpSol.Chi)
	}
	for _, e := range o.ElemIntvars {
		e.RestoreIvs(true)
	}
}
