// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func verbose() {
	chk.Verbose = true
}

func Test_rod01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod01. axially loaded rod")

	// fem
	analysis := NewFEM("data/rod01.sim", "", true, true, chk.Verbose)

	// run simulation
	err := analysis.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}

	// displacements: the right end is pulled by 0.01 whereas the left end is fixed
	dom := analysis.Dom
	chk.Scalar(tst, "ux @ node 0", 1e-14, dom.NodeData["ux"][0], 0)
	chk.Scalar(tst, "ux @ node 1", 1e-12, dom.NodeData["ux"][1], 0.01)
	chk.Scalar(tst, "uy @ node 1", 1e-14, dom.NodeData["uy"][1], 0)

	// axial stress: sig = E * u / L = 100 * 0.01 / 1
	chk.Scalar(tst, "mean sig", 1e-10, dom.ElemData["sig"][0], 1.0)
	chk.Vector(tst, "nodal sig", 1e-10, dom.NodeData["sig"], []float64{1, 1})

	// saved results must match the in-memory tables
	tidx := len(analysis.Summary.OutTimes) - 1
	res, err := ReadResults(analysis.Sim.DirOut, analysis.Sim.Key, tidx)
	if err != nil {
		tst.Errorf("ReadResults failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "saved T", 1e-15, res.T, 1.0)
	chk.Vector(tst, "saved ux", 1e-15, res.NodeData["ux"], dom.NodeData["ux"])
	chk.Vector(tst, "saved sig", 1e-15, res.NodeData["sig"], dom.NodeData["sig"])
}

func Test_rod02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rod02. rod with coincident nodes")

	// fem
	analysis := NewFEM("data/rodzero.sim", "", true, false, chk.Verbose)

	// the first assembly must fail because the cell has zero length
	err := analysis.Run()
	if err == nil {
		tst.Errorf("Run should have failed due to zero Jacobian")
	}
}
