// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_shp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp01. partition of unity and nodal deltas")

	r := make([]float64, 3)
	for name, o := range factory {

		io.Pfblue2("--------------------------------- %-6s ---------------------------------\n", name)

		// shape functions at integration points: sum(S) == 1, sum(dSdR) == 0
		for nip, ips := range ipsfactory[name] {
			io.Pf("nip = %d\n", nip)
			for _, ip := range ips {
				r[0], r[1], r[2] = ip[0], 0, 0
				if o.Gndim > 1 {
					r[1] = ip[1]
				}
				if o.Gndim > 2 {
					r[2] = ip[2]
				}
				o.Func(o.S, o.DSdR, r, true, -1)
				sumS := 0.0
				sumG := make([]float64, o.Gndim)
				for m := 0; m < o.Nverts; m++ {
					sumS += o.S[m]
					for j := 0; j < o.Gndim; j++ {
						sumG[j] += o.DSdR[m][j]
					}
				}
				chk.Scalar(tst, io.Sf("%s: sum(S)", name), 1e-15, sumS, 1.0)
				for j := 0; j < o.Gndim; j++ {
					chk.Scalar(tst, io.Sf("%s: sum(dSdR[:,%d])", name, j), 1e-15, sumG[j], 0.0)
				}
			}
		}

		// Kronecker delta property at vertices
		for m := 0; m < o.Nverts; m++ {
			for j := 0; j < o.Gndim; j++ {
				r[j] = o.NatCoords[j][m]
			}
			o.Func(o.S, o.DSdR, r, false, -1)
			for n := 0; n < o.Nverts; n++ {
				expected := 0.0
				if n == m {
					expected = 1.0
				}
				chk.Scalar(tst, io.Sf("%s: S%d(vert%d)", name, n, m), 1e-15, o.S[n], expected)
			}
		}
	}
}

func Test_shp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp02. isoparametric mapping on unit square")

	//   3 ------- 2
	//   |         |
	//   |         |
	//   0 ------- 1
	x := [][]float64{
		{0, 1, 1, 0},
		{0, 0, 1, 1},
	}
	o := Get("qua4")
	if o == nil {
		tst.Errorf("cannot get qua4 shape\n")
		return
	}
	ips, err := GetIps("qua4", 4)
	if err != nil {
		tst.Errorf("GetIps failed: %v\n", err)
		return
	}
	for _, ip := range ips {
		err = o.CalcAtIp(x, ip, true)
		if err != nil {
			tst.Errorf("CalcAtIp failed: %v\n", err)
			return
		}
		chk.Scalar(tst, "J", 1e-15, o.J, 0.25)
		y := o.IpRealCoords(x, ip)
		chk.Scalar(tst, "x(ip)", 1e-15, y[0], (1.0+ip[0])/2.0)
		chk.Scalar(tst, "y(ip)", 1e-15, y[1], (1.0+ip[1])/2.0)
	}

	// face normal at bottom edge points downwards with magnitude edge_length/2
	ipsf, err := GetIps("lin2", 2)
	if err != nil {
		tst.Errorf("GetIps failed: %v\n", err)
		return
	}
	for _, ipf := range ipsf {
		err = o.CalcAtFaceIp(x, ipf, 0)
		if err != nil {
			tst.Errorf("CalcAtFaceIp failed: %v\n", err)
			return
		}
		chk.Vector(tst, "Fnvec(bottom)", 1e-15, o.Fnvec, []float64{0, -0.5})
	}
}

func Test_shp03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shp03. degenerate cell gives Jacobian error")

	// coincident vertices
	x := [][]float64{
		{0.5, 0.5},
		{0.5, 0.5},
	}
	o := Get("lin2")
	ips, err := GetIps("lin2", 2)
	if err != nil {
		tst.Errorf("GetIps failed: %v\n", err)
		return
	}
	err = o.CalcAtIp(x, ips[0], true)
	if err == nil {
		tst.Errorf("error due to zero Jacobian was expected\n")
	}
}

func Test_extrap01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("extrap01. extrapolation matrix reproduces linear fields")

	for _, name := range []string{"tri3", "qua4", "hex8"} {
		o := Get(name)
		for nip, ips := range ipsfactory[name] {
			E := make([][]float64, o.Nverts)
			for i := 0; i < o.Nverts; i++ {
				E[i] = make([]float64, nip)
			}
			err := o.Extrapolator(E, ips)
			if err != nil {
				tst.Errorf("Extrapolator failed: %v\n", err)
				return
			}

			// linear field f(r) = 1 + r + 2s + 3t evaluated at ips, extrapolated to nodes
			if nip == 1 {
				continue // single point cannot recover gradients
			}
			f := func(r []float64) (res float64) {
				res = 1.0 + r[0]
				if o.Gndim > 1 {
					res += 2.0 * r[1]
				}
				if o.Gndim > 2 {
					res += 3.0 * r[2]
				}
				return
			}
			fips := make([]float64, nip)
			for i, ip := range ips {
				fips[i] = f(ip)
			}
			for m := 0; m < o.Nverts; m++ {
				fm := 0.0
				for i := 0; i < nip; i++ {
					fm += E[m][i] * fips[i]
				}
				rm := []float64{o.NatCoords[0][m], 0, 0}
				if o.Gndim > 1 {
					rm[1] = o.NatCoords[1][m]
				}
				if o.Gndim > 2 {
					rm[2] = o.NatCoords[2][m]
				}
				chk.Scalar(tst, io.Sf("%s/nip=%d: f(vert%d)", name, nip, m), 1e-13, fm, f(rm))
			}
		}
	}
}
