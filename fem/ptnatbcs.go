// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// PtNaturalBc holds one point natural boundary condition, e.g. a concentrated load
type PtNaturalBc struct {
	Key   string   // key such as fx, fy, fz
	Eq    int      // equation number of the corresponding primary variable
	Fcn   dbf.T // function of time
	Extra string   // extra information
}

// PtNaturalBcs holds all point natural boundary conditions
type PtNaturalBcs struct {
	Bcs []*PtNaturalBc
}

// Reset initialises or clears the internal list
func (o *PtNaturalBcs) Reset() {
	o.Bcs = make([]*PtNaturalBc, 0)
}

// Set adds a point natural boundary condition to the node's variable identified by ykey
func (o *PtNaturalBcs) Set(ykey string, nod *Node, fcn dbf.T, extra string) (err error) {
	d := nod.GetDof(ykey)
	if d == nil {
		return chk.Err("cannot apply point natural boundary condition to node %d: dof %q is not available", nod.Vert.Id, ykey)
	}
	o.Bcs = append(o.Bcs, &PtNaturalBc{ykey, d.Eq, fcn, extra})
	return
}

// AddToRhs adds the prescribed forces to the fb vector
func (o *PtNaturalBcs) AddToRhs(fb []float64, t float64) {
	for _, bc := range o.Bcs {
		fb[bc.Eq] += bc.Fcn.F(t, nil)
	}
}

// List returns a simple list logging bcs at time t
func (o *PtNaturalBcs) List(t float64) (l string) {
	for _, bc := range o.Bcs {
		l += io.Sf("%8d%8s%23.13f\n", bc.Eq, bc.Key, bc.Fcn.F(t, nil))
	}
	return
}
