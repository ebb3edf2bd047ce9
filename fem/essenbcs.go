// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"sort"

	"github.com/mfkiwl/Amaru/ele"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// EssentialBc holds information about essential boundary conditions such as constrained nodes.
// Lagrange multipliers are used to implement both single- and multi-point constraints.
//  In general, essential bcs / constraints are defined by means of:
//
//      A・y = c
//
//  The resulting Kb matrix will then have the following form:
//      _       _
//     |  K  At  | / dy \   / -R - At*lam \
//     |         | |    | = |             |
//     |_ A   0 _| \ dl /   \  c - A*y    /
//         Kb       dyb            fb
//
type EssentialBc struct {
	Key   string    // key such as 'ux', 'uy', 'incsup'
	Eqs   []int     // equation numbers; can be more than one e.g. for inclined supports
	ValsA []float64 // values for matrix A
	Fcn   dbf.T  // function that implements the "c" vector in A・y = c
}

// EbcArray is an array of EssentialBc's
type EbcArray []*EssentialBc

// EssentialBcs implements a structure to record the definition of essential bcs / constraints.
// Each constraint has a unique Lagrange multiplier index.
type EssentialBcs struct {
	Bcs EbcArray     // active essential bcs / constraints
	A   la.Triplet   // matrix of coefficients 'A'
	Am  *la.CCMatrix // compressed form of A matrix
}

// Init initialises this structure
func (o *EssentialBcs) Init() {
	o.Bcs = make([]*EssentialBc, 0)
}

// Build builds the structures required for assembling the A matrix
//  nlam -- number of essential bcs / constraints == number of Lagrange multipliers
//  nnzA -- number of non-zeros in matrix 'A'
func (o *EssentialBcs) Build(ny int) (nlam, nnzA int) {

	// skip if there are no constraints
	nlam = len(o.Bcs)
	if nlam == 0 {
		return
	}

	// sort bcs to make numbering of Lagrange multipliers deterministic
	sort.Sort(o.Bcs)

	// count number of non-zeros in matrix A
	for _, bc := range o.Bcs {
		nnzA += len(bc.ValsA)
	}

	// set matrix A
	o.A.Init(nlam, ny, nnzA)
	for i, bc := range o.Bcs {
		for j, eq := range bc.Eqs {
			o.A.Put(i, eq, bc.ValsA[j])
		}
	}
	o.Am = o.A.ToMatrix(nil)
	return
}

// AddToRhs adds the essential bcs / constraints terms to the augmented fb vector
func (o *EssentialBcs) AddToRhs(fb []float64, sol *ele.Solution) {

	// skip if there are no constraints
	if len(o.Bcs) == 0 {
		return
	}

	// add -At*lam to fb
	la.SpMatTrVecMulAdd(fb, -1, o.Am, sol.L) // fb += -1 * At * lam

	// assemble -rc = c - A*y into fb
	ny := len(sol.Y)
	for i, bc := range o.Bcs {
		fb[ny+i] = bc.Fcn.F(sol.T, nil)
	}
	la.SpMatVecMulAdd(fb[ny:], -1, o.Am, sol.Y) // fb += -1 * A * y
}

// GetIsEssenKeyMap returns the "YandC" map with the special keys that EssentialBcs can handle
func GetIsEssenKeyMap() map[string]bool {
	return map[string]bool{"incsup": true}
}

// Set sets a constraint if it does not exist yet.
//  key   -- can be a Dof key such as "ux", "uy" or the constraint type "incsup"
//  extra -- keycode-style data; e.g. "!alp:30"
func (o *EssentialBcs) Set(key string, nodes []*Node, fcn dbf.T, extra string) (err error) {

	// auxiliary
	chk.IntAssertLessThan(0, len(nodes)) // 0 < len(nodes)
	if nodes[0] == nil {
		return
	}
	ndim := len(nodes[0].Vert.C)

	// inclined support
	if key == "incsup" {

		// check
		if ndim != 2 {
			return chk.Err("inclined support works only in 2D for now")
		}

		// get data
		var alp float64
		if val, found := io.Keycode(extra, "alp"); found {
			alp = io.Atof(val) * math.Pi / 180.0
		}
		co, si := math.Cos(alp), math.Sin(alp)

		// set for all nodes
		for _, nod := range nodes {
			eqx := nod.GetEq("ux")
			eqy := nod.GetEq("uy")
			if eqx < 0 || eqy < 0 {
				return chk.Err("inclined support requires nodes with ux and uy dofs")
			}
			o.setEqs(key, []int{eqx, eqy}, []float64{co, si}, &dbf.Cte{})
		}
		return
	}

	// single-point constraint
	for _, nod := range nodes {

		// get DOF
		d := nod.GetDof(key)
		if d == nil {
			continue // node doesn't have this key
		}

		// set constraint
		o.setEqs(key, []int{d.Eq}, []float64{1}, fcn)
	}
	return
}

// List returns a simple list logging bcs at time t
func (o *EssentialBcs) List(t float64) (l string) {
	sort.Sort(o.Bcs)
	for _, bc := range o.Bcs {
		l += io.Sf("%8d%8s%23.13f%23.13f\n", bc.Eqs[0], bc.Key, bc.Fcn.F(0, nil), bc.Fcn.F(t, nil))
	}
	return
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// setEqs sets/replaces constraint and equations. Re-prescribing an equation overrides
// the previous constraint.
func (o *EssentialBcs) setEqs(key string, eqs []int, valsA []float64, fcn dbf.T) {

	// replace existent
	for _, eq := range eqs {
		for _, bc := range o.Bcs {
			for _, eqOld := range bc.Eqs {
				if eqOld == eq {
					bc.Key, bc.Eqs, bc.ValsA, bc.Fcn = key, eqs, valsA, fcn
					return
				}
			}
		}
	}

	// add new
	o.Bcs = append(o.Bcs, &EssentialBc{key, eqs, valsA, fcn})
}

// functions to implement the Sort interface
func (o EbcArray) Len() int      { return len(o) }
func (o EbcArray) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o EbcArray) Less(i, j int) bool {
	sort.Ints(o[i].Eqs)
	sort.Ints(o[j].Eqs)
	return o[i].Eqs[0] < o[j].Eqs[0]
}
