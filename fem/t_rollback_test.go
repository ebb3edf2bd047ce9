// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/mfkiwl/Amaru/ele"

	"github.com/cpmech/gosl/chk"
)

func Test_rollback01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rollback01. rejected increment restores solution and states")

	// fem
	analysis := NewFEM("data/rod01.sim", "", true, false, chk.Verbose)
	err := analysis.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	dom := analysis.Dom

	// snapshot of all ip values
	snap := func() (res []float64) {
		for _, e := range dom.ElemOutIps {
			M := ele.NewIpsMap()
			e.OutIpVals(M, dom.Sol)
			nip := len(e.OutIpCoords())
			for _, key := range e.OutIpKeys() {
				for idx := 0; idx < nip; idx++ {
					res = append(res, M.Get(key, idx))
				}
			}
		}
		return
	}
	y0 := make([]float64, len(dom.Sol.Y))
	copy(y0, dom.Sol.Y)
	sig0 := snap()

	// backup, then advance a trial increment that will be rejected
	dom.backup()
	for i := range dom.Sol.Y {
		dom.Sol.DY[i] = 0.001 * float64(i+1)
		dom.Sol.Y[i] += dom.Sol.DY[i]
	}
	for _, e := range dom.Elems {
		err = e.Update(dom.Sol)
		if err != nil {
			tst.Errorf("Update failed:\n%v", err)
			return
		}
	}

	// the trial must have moved the ip states
	sig1 := snap()
	moved := false
	for i := range sig1 {
		if math.Abs(sig1[i]-sig0[i]) > 1e-10 {
			moved = true
		}
	}
	if !moved {
		tst.Errorf("trial increment did not change the ip states\n")
		return
	}

	// reject the increment
	dom.restore()
	chk.Vector(tst, "y   after restore", 1e-17, dom.Sol.Y, y0)
	chk.Vector(tst, "sig after restore", 1e-17, snap(), sig0)
}
