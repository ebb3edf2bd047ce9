// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_domain01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain01. equation numbering")

	// fem
	analysis := NewFEM("data/diffpatch.sim", "", true, false, chk.Verbose)
	err := analysis.SetStage(0)
	if err != nil {
		tst.Errorf("SetStage failed:\n%v", err)
		return
	}

	// one "u" dof per vertex
	dom := analysis.Dom
	chk.IntAssert(dom.Ny, 9)

	// equation numbers form the set {0, ..., ny-1}
	var eqs []int
	for _, nod := range dom.Nodes {
		for _, dof := range nod.Dofs {
			eqs = append(eqs, dof.Eq)
		}
	}
	sort.Ints(eqs)
	chk.Ints(tst, "eqs", eqs, utl.IntRange(dom.Ny))

	// integration point ids follow the element traversal order
	chk.IntAssert(len(dom.Ips), 16)
	for i, ip := range dom.Ips {
		chk.IntAssert(ip.Id, i)
	}

	// numbering is reproducible
	other := NewFEM("data/diffpatch.sim", "", true, false, chk.Verbose)
	err = other.SetStage(0)
	if err != nil {
		tst.Errorf("SetStage failed:\n%v", err)
		return
	}
	for _, nod := range dom.Nodes {
		n := other.Dom.Vid2node[nod.Vert.Id]
		for _, dof := range nod.Dofs {
			chk.IntAssert(n.GetEq(dof.Key), dof.Eq)
		}
	}
}

func Test_domain02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain02. cells without materials")

	// fem
	analysis := NewFEM("data/badbind.sim", "", true, false, chk.Verbose)

	// stage setting must fail since no binding selects the cell
	err := analysis.SetStage(0)
	if err == nil {
		tst.Errorf("SetStage should have failed due to unbound cells")
	}
}

func Test_domain03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain03. diffusion material on line cell")

	// fem
	analysis := NewFEM("data/baddiff.sim", "", true, false, chk.Verbose)

	// stage setting must fail since diffusion models cannot drive line cells
	err := analysis.SetStage(0)
	if err == nil {
		tst.Errorf("SetStage should have failed due to incompatible material class")
	}
}

func Test_domain04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain04. inclined support without displacement dofs")

	// fem
	analysis := NewFEM("data/badbc.sim", "", true, false, chk.Verbose)

	// stage setting must fail since the tagged vertices carry no ux/uy dofs
	err := analysis.SetStage(0)
	if err == nil {
		tst.Errorf("SetStage should have failed due to missing displacement dofs")
	}
}
