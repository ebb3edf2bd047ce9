// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func verbose() {
	chk.Verbose = true
}

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01. reading a 2x2 quadrilateral mesh")

	// read
	msh, err := ReadMsh("data", "patch.msh")
	if err != nil {
		tst.Errorf("ReadMsh failed:\n%v", err)
		return
	}

	// basic data
	chk.IntAssert(msh.Ndim, 2)
	chk.IntAssert(len(msh.Verts), 9)
	chk.IntAssert(len(msh.Cells), 4)
	chk.Scalar(tst, "xmax", 1e-15, msh.Xmax, 2.0)
	chk.Scalar(tst, "ymax", 1e-15, msh.Ymax, 2.0)

	// cell tags
	chk.IntAssert(len(msh.CellTag2cells[-1]), 4)

	// face tags: two cells on the left and two on the right
	chk.IntAssert(len(msh.FaceTag2cells[-10]), 2)
	chk.IntAssert(len(msh.FaceTag2cells[-11]), 2)
	lverts := msh.FaceTag2verts[-10]
	sort.Ints(lverts)
	chk.Ints(tst, "verts on left face", lverts, []int{0, 3, 6})

	// vertex-to-cell connectivity
	chk.IntAssert(len(msh.Vert2cells[0]), 1)
	chk.IntAssert(len(msh.Vert2cells[1]), 2)
	chk.IntAssert(len(msh.Vert2cells[4]), 4)

	// all vertices but the central one are on the boundary
	for _, v := range msh.Verts {
		onbry := msh.BryVerts[v.Id]
		if v.Id == 4 {
			if onbry {
				tst.Errorf("vertex 4 must not be on the boundary")
			}
			continue
		}
		if !onbry {
			tst.Errorf("vertex %d must be on the boundary", v.Id)
		}
	}
}

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01. reading materials database")

	// read
	mdb, err := ReadMat("data", "materials.mat", 2, false)
	if err != nil {
		tst.Errorf("ReadMat failed:\n%v", err)
		return
	}

	// subsets
	chk.IntAssert(len(mdb.Solids), 2)
	chk.IntAssert(len(mdb.Diffusions), 1)

	// models must be allocated and initialised
	m := mdb.Get("rod-elastic")
	if m == nil || m.Sld == nil {
		tst.Errorf("rod-elastic material was not initialised")
		return
	}
	m = mdb.Get("porous")
	if m == nil || m.Dif == nil {
		tst.Errorf("porous material was not initialised")
		return
	}
	chk.Scalar(tst, "porous kval", 1e-15, m.Dif.Kval(0), 1.0)

	// unknown materials yield nil
	if mdb.Get("unobtainium") != nil {
		tst.Errorf("unknown material must yield nil")
	}
}

func Test_fun01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("fun01. boundary condition functions")

	funcs := FuncsData{
		{Name: "load", Type: "cte", Prms: dbf.Params{&dbf.P{N: "c", V: 123}}},
	}

	// "zero" and "none" are always available
	f := funcs.Get("zero")
	if f == nil {
		tst.Errorf("cannot get \"zero\" function")
		return
	}
	chk.Scalar(tst, "zero(1)", 1e-17, f.F(1, nil), 0)

	// named function
	f = funcs.Get("load")
	if f == nil {
		tst.Errorf("cannot get \"load\" function")
		return
	}
	chk.Scalar(tst, "load(0.5)", 1e-15, f.F(0.5, nil), 123.0)

	// unknown functions yield nil
	if funcs.Get("missing") != nil {
		tst.Errorf("unknown function must yield nil")
	}
}
