// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diffusion

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

func verbose() {
	chk.Verbose = true
}

func Test_m1(tst *testing.T) {

	//verbose()
	chk.PrintTitle("m1. nonlinear conductivity")

	mdl, err := New("m1")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	prms := []*dbf.P{
		&dbf.P{N: "a0", V: 1.0},
		&dbf.P{N: "a1", V: 2.0},
		&dbf.P{N: "a2", V: 3.0},
		&dbf.P{N: "a3", V: 4.0},
		&dbf.P{N: "rho", V: 3.3},
		&dbf.P{N: "k", V: 0.1},
	}

	ndim := 3
	err = mdl.Init(ndim, prms)
	if err != nil {
		tst.Errorf("cannot initialise model: %v\n", err)
		return
	}

	m := mdl.(*M1)
	chk.Scalar(tst, "rho", 1e-15, m.GetRho(), 3.3)
	chk.Matrix(tst, "kcte", 1e-15, m.Kcte, [][]float64{
		{0.1, 0, 0},
		{0, 0.1, 0},
		{0, 0, 0.1},
	})

	u := 0.5
	kten := la.MatAlloc(ndim, ndim)
	m.Kten(kten, u)
	kval := 1.0 + 2.0*u + 3.0*u*u + 4.0*u*u*u
	chk.Scalar(tst, "kval", 1e-15, m.Kval(u), kval)
	chk.Matrix(tst, "kten", 1e-15, kten, [][]float64{
		{0.1 * kval, 0, 0},
		{0, 0.1 * kval, 0},
		{0, 0, 0.1 * kval},
	})

	// dk/du against numerical derivative
	h := 1e-6
	for _, uval := range []float64{0, 0.5, 1.0, 2.0} {
		dana := m.DkDu(uval)
		dnum := (m.Kval(uval+h) - m.Kval(uval-h)) / (2.0 * h)
		chk.Scalar(tst, "DkDu", 1e-7, dana, dnum)
	}

	// wrong parameters
	bad, _ := New("m1")
	err = bad.Init(2, []*dbf.P{&dbf.P{N: "a0", V: 1}})
	if err == nil {
		tst.Errorf("error due to missing conductivity was expected\n")
	}

	// unknown model
	_, err = New("m2")
	if err == nil {
		tst.Errorf("error due to unknown model name was expected\n")
	}
}

func Test_m1bad(tst *testing.T) {

	//verbose()
	chk.PrintTitle("m1bad. invalid parameters")

	for _, prms := range []dbf.Params{
		{&dbf.P{N: "a0", V: 0}, &dbf.P{N: "k", V: 1}},
		{&dbf.P{N: "a0", V: 1}, &dbf.P{N: "k", V: 0}},
		{&dbf.P{N: "a0", V: 1}, &dbf.P{N: "k", V: -2}},
		{&dbf.P{N: "a0", V: 1}, &dbf.P{N: "k", V: 1}, &dbf.P{N: "rho", V: -1}},
	} {
		mdl, err := New("m1")
		if err != nil {
			tst.Errorf("New failed: %v\n", err)
			return
		}
		err = mdl.Init(2, prms)
		if err == nil {
			tst.Errorf("error due to invalid parameters %v was expected\n", prms)
			return
		}
	}
}
