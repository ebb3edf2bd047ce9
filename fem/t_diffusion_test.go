// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_diffu01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("diffu01. steady diffusion with linear field")

	// fem
	analysis := NewFEM("data/diffpatch.sim", "", true, true, chk.Verbose)

	// run simulation
	err := analysis.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// the exact solution is u = -x with unit flux wx = -k du/dx = 1
	//
	//   6---------7---------8
	//   |         |         |
	//   |    2    |    3    | qb
	//   |         |         |
	//   3---------4---------5
	//   |         |         |
	//   |    0    |    1    | qb
	//   |         |         |
	//   0---------1---------2
	//  u=0
	//
	dom := analysis.Dom
	for _, v := range dom.Msh.Verts {
		chk.Scalar(tst, io.Sf("u  @ vert %d", v.Id), 1e-9, dom.NodeData["u"][v.Id], -v.C[0])
	}

	// recovered nodal fluxes must be exact for a linear field
	for _, v := range dom.Msh.Verts {
		chk.Scalar(tst, io.Sf("wx @ vert %d", v.Id), 1e-8, dom.NodeData["wx"][v.Id], 1.0)
		chk.Scalar(tst, io.Sf("wy @ vert %d", v.Id), 1e-8, dom.NodeData["wy"][v.Id], 0)
	}

	// element means
	for i := range dom.Msh.Cells {
		chk.Scalar(tst, io.Sf("mean wx @ cell %d", i), 1e-9, dom.ElemData["wx"][i], 1.0)
	}

	// recovery must be stable upon recomputation
	wx := make([]float64, len(dom.NodeData["wx"]))
	copy(wx, dom.NodeData["wx"])
	err = dom.UpdateOutputData()
	if err != nil {
		tst.Errorf("UpdateOutputData failed:\n%v", err)
		return
	}
	chk.Vector(tst, "wx after recomputation", 1e-15, dom.NodeData["wx"], wx)
}
