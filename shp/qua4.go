// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

// Qua4 implements the 4-node quadrilateral
//
//    3-----------2
//    |     s     |
//    |     |     |
//    |     +--r  |
//    |           |
//    |           |
//    0-----------1
//
func init() {

	// geometry
	var o Shape
	o.Type = "qua4"
	o.BasicType = "qua4"
	o.FaceType = "lin2"
	o.Gndim = 2
	o.Nverts = 4
	o.VtkCode = 9
	o.FaceNvertsMax = 2
	o.FaceLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	o.NatCoords = [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}

	// functions
	o.Func = func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
		S[0] = 0.25 * (1.0 - r[0]) * (1.0 - r[1])
		S[1] = 0.25 * (1.0 + r[0]) * (1.0 - r[1])
		S[2] = 0.25 * (1.0 + r[0]) * (1.0 + r[1])
		S[3] = 0.25 * (1.0 - r[0]) * (1.0 + r[1])
		if !derivs {
			return
		}
		dSdR[0][0], dSdR[0][1] = -0.25*(1.0-r[1]), -0.25*(1.0-r[0])
		dSdR[1][0], dSdR[1][1] = 0.25*(1.0-r[1]), -0.25*(1.0+r[0])
		dSdR[2][0], dSdR[2][1] = 0.25*(1.0+r[1]), 0.25*(1.0+r[0])
		dSdR[3][0], dSdR[3][1] = -0.25*(1.0+r[1]), 0.25*(1.0-r[0])
	}
	o.FaceFunc = func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
		S[0] = 0.5 * (1.0 - r[0])
		S[1] = 0.5 * (1.0 + r[0])
		if !derivs {
			return
		}
		dSdR[0][0] = -0.5
		dSdR[1][0] = 0.5
	}

	// scratchpad and registration
	o.init_scratchpad()
	factory["qua4"] = &o

	// integration points
	g := 1.0 / math.Sqrt(3.0)
	ipsfactory["qua4"] = map[int][]Ipoint{
		1: {
			{0, 0, 0, 4},
		},
		4: {
			{-g, -g, 0, 1},
			{g, -g, 0, 1},
			{g, g, 0, 1},
			{-g, g, 0, 1},
		},
	}
}
