// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/mfkiwl/Amaru/inp"

	"github.com/cpmech/gosl/chk"
)

func verbose() {
	chk.Verbose = true
}

func Test_dyncoefs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dyncoefs01. theta and Newmark coefficients")

	var dat inp.SolverData
	dat.SetDefault()

	var dc DynCoefs
	err := dc.Init(&dat)
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// default parameters: theta = theta1 = theta2 = 0.5
	dt := 0.1
	dc.CalcBoth(dt)
	chk.Scalar(tst, "B1", 1e-15, dc.B1, 1.0/(0.5*dt))
	chk.Scalar(tst, "B2", 1e-15, dc.B2, 1.0)
	H := dt * dt * 0.5 / 2.0
	chk.Scalar(tst, "A1", 1e-12, dc.A1, 1.0/H)
	chk.Scalar(tst, "A2", 1e-12, dc.A2, dt/H)
	chk.Scalar(tst, "A3", 1e-15, dc.A3, 1.0)
	chk.Scalar(tst, "A4", 1e-12, dc.A4, 0.5*dt/H)
	chk.Scalar(tst, "A5", 1e-15, dc.A5, 1.0)
	chk.Scalar(tst, "A6", 1e-15, dc.A6, 0)

	// out-of-range parameters must be rejected
	dat.Theta = 0
	if dc.Init(&dat) == nil {
		tst.Errorf("Init should have failed with theta = 0")
	}
	dat.SetDefault()
	dat.Theta2 = 1.5
	if dc.Init(&dat) == nil {
		tst.Errorf("Init should have failed with theta2 = 1.5")
	}
}
