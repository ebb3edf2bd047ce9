// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

func verbose() {
	chk.Verbose = true
}

func Test_linelast01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast01. uniaxial strain path")

	mdl, err := New("lin-elast")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	E, nu := 100.0, 0.25
	ndim := 2
	prms := []*dbf.P{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: nu},
		&dbf.P{N: "rho", V: 2.7},
	}
	err = mdl.Init(ndim, false, prms)
	if err != nil {
		tst.Errorf("cannot initialise model: %v\n", err)
		return
	}
	m := mdl.(*LinElast)
	chk.Scalar(tst, "rho", 1e-15, m.GetRho(), 2.7)
	chk.Scalar(tst, "G", 1e-15, m.G, E/(2.0*(1.0+nu)))
	chk.Scalar(tst, "K", 1e-15, m.K, E/(3.0*(1.0-2.0*nu)))

	// uniaxial strain: ex given, all other strains zero
	nsig := 2 * ndim
	s, err := m.InitIntVars(make([]float64, nsig))
	if err != nil {
		tst.Errorf("InitIntVars failed: %v\n", err)
		return
	}
	ex := 0.001
	deps := []float64{ex, 0, 0, 0}
	err = m.Update(s, nil, deps, 0, 0)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "sx", 1e-12, s.Sig[0], (m.L+2.0*m.G)*ex)
	chk.Scalar(tst, "sy", 1e-12, s.Sig[1], m.L*ex)
	chk.Scalar(tst, "sz", 1e-12, s.Sig[2], m.L*ex)
	chk.Scalar(tst, "sxy", 1e-12, s.Sig[3], 0)

	// consistency between Update and CalcD
	D := la.MatAlloc(nsig, nsig)
	err = m.CalcD(D, s, false)
	if err != nil {
		tst.Errorf("CalcD failed: %v\n", err)
		return
	}
	sig := make([]float64, nsig)
	la.MatVecMulAdd(sig, 1, D, deps)
	chk.Vector(tst, "D*deps", 1e-12, sig, s.Sig)

	// copy discipline
	sc := s.GetCopy()
	sc.Sig[0] = 123
	if s.Sig[0] == sc.Sig[0] {
		tst.Errorf("copied state must not share memory with source\n")
		return
	}
	s.Set(sc)
	chk.Scalar(tst, "set sx", 1e-15, s.Sig[0], 123)
}

func Test_linelast02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast02. plane-stress")

	mdl, err := New("lin-elast")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	E, nu := 100.0, 0.3
	prms := []*dbf.P{
		&dbf.P{N: "E", V: E},
		&dbf.P{N: "nu", V: nu},
	}
	err = mdl.Init(2, true, prms)
	if err != nil {
		tst.Errorf("cannot initialise model: %v\n", err)
		return
	}
	m := mdl.(*LinElast)

	// uniaxial stress: ex given, ey = -nu*ex keeps sy zero
	s, err := m.InitIntVars(make([]float64, 4))
	if err != nil {
		tst.Errorf("InitIntVars failed: %v\n", err)
		return
	}
	ex := 0.001
	deps := []float64{ex, -nu * ex, 0, 0}
	err = m.Update(s, nil, deps, 0, 0)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "sx", 1e-12, s.Sig[0], E*ex)
	chk.Scalar(tst, "sy", 1e-12, s.Sig[1], 0)
	chk.Scalar(tst, "sz", 1e-12, s.Sig[2], 0)
}

func Test_elastrod01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("elastrod01. axial loading")

	mdl, err := New("elast-rod")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	prms := []*dbf.P{
		&dbf.P{N: "E", V: 100.0},
		&dbf.P{N: "A", V: 1.0},
	}
	err = mdl.Init(2, false, prms)
	if err != nil {
		tst.Errorf("cannot initialise model: %v\n", err)
		return
	}
	m := mdl.(*ElastRod)
	chk.Scalar(tst, "A", 1e-15, m.GetA(), 1.0)

	s, err := m.InitIntVars1D()
	if err != nil {
		tst.Errorf("InitIntVars1D failed: %v\n", err)
		return
	}
	err = m.Update(s, 0, 0.01)
	if err != nil {
		tst.Errorf("Update failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "sig", 1e-15, s.Sig, 1.0)
	D, err := m.CalcD(s, false)
	if err != nil {
		tst.Errorf("CalcD failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "D", 1e-15, D, 100.0)
}

func Test_linelast03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("linelast03. invalid parameters")

	for _, prms := range []dbf.Params{
		{&dbf.P{N: "E", V: 0}, &dbf.P{N: "nu", V: 0.2}},
		{&dbf.P{N: "E", V: -100}, &dbf.P{N: "nu", V: 0.2}},
		{&dbf.P{N: "E", V: 100}, &dbf.P{N: "nu", V: 0.5}},
		{&dbf.P{N: "E", V: 100}, &dbf.P{N: "nu", V: -0.1}},
		{&dbf.P{N: "E", V: 100}, &dbf.P{N: "nu", V: 0.2}, &dbf.P{N: "rho", V: -1}},
	} {
		mdl, err := New("lin-elast")
		if err != nil {
			tst.Errorf("New failed: %v\n", err)
			return
		}
		err = mdl.Init(2, false, prms)
		if err == nil {
			tst.Errorf("error due to invalid parameters %v was expected\n", prms)
			return
		}
	}
}
