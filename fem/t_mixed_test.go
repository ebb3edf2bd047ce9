// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_mixed01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mixed01. solid and diffusion regions sharing vertices")

	// fem
	analysis := NewFEM("data/mixed.sim", "", true, true, chk.Verbose)

	// run simulation
	err := analysis.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// two regions with different output keys share vertices 1 and 4; the
	// recovery patches at those vertices mix both families and must fit each
	// key over its own cells only
	//
	//   3---------4---------5
	//   |         |         |
	//   |  solid  |  diffu  |
	//   |    0    |    1    |
	//   0---------1---------2
	//
	dom := analysis.Dom
	nverts := len(dom.Msh.Verts)

	// with zero loads and zero prescribed values everything vanishes
	for _, key := range []string{"ux", "uy", "u", "sx", "sy", "sxy", "wx", "wy"} {
		vals := dom.NodeData[key]
		if len(vals) != nverts {
			tst.Errorf("NodeData[%q] has wrong size: %d != %d", key, len(vals), nverts)
			return
		}
		for v := 0; v < nverts; v++ {
			chk.Scalar(tst, io.Sf("%-3s @ vert %d", key, v), 1e-12, vals[v], 0)
		}
	}

	// element means exist for both families
	chk.Scalar(tst, "mean sx @ cell 0", 1e-12, dom.ElemData["sx"][0], 0)
	chk.Scalar(tst, "mean wx @ cell 1", 1e-12, dom.ElemData["wx"][1], 0)
}
