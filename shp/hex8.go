// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

// Hex8 implements the 8-node hexahedron
//
//         4________________7
//        /|               /|
//       / |              / |
//      /  |             /  |
//     /   |            /   |
//    5________________6    |
//    |    |           |    |
//    |    0___________|____3
//    |   /            |   /
//    |  /             |  /
//    | /              | /
//    |/               |/
//    1________________2
//
func init() {

	// geometry
	var o Shape
	o.Type = "hex8"
	o.BasicType = "hex8"
	o.FaceType = "qua4"
	o.Gndim = 3
	o.Nverts = 8
	o.VtkCode = 12
	o.FaceNvertsMax = 4
	o.FaceLocalVerts = [][]int{
		{0, 4, 7, 3}, // perpendicular to -r
		{1, 2, 6, 5}, // perpendicular to +r
		{0, 1, 5, 4}, // perpendicular to -s
		{2, 3, 7, 6}, // perpendicular to +s
		{0, 3, 2, 1}, // perpendicular to -t
		{4, 5, 6, 7}, // perpendicular to +t
	}
	o.NatCoords = [][]float64{
		{-1, 1, 1, -1, -1, 1, 1, -1},
		{-1, -1, 1, 1, -1, -1, 1, 1},
		{-1, -1, -1, -1, 1, 1, 1, 1},
	}

	// functions
	o.Func = func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
		for m := 0; m < 8; m++ {
			rm := o.NatCoords[0][m]
			sm := o.NatCoords[1][m]
			tm := o.NatCoords[2][m]
			S[m] = 0.125 * (1.0 + r[0]*rm) * (1.0 + r[1]*sm) * (1.0 + r[2]*tm)
			if derivs {
				dSdR[m][0] = 0.125 * rm * (1.0 + r[1]*sm) * (1.0 + r[2]*tm)
				dSdR[m][1] = 0.125 * sm * (1.0 + r[0]*rm) * (1.0 + r[2]*tm)
				dSdR[m][2] = 0.125 * tm * (1.0 + r[0]*rm) * (1.0 + r[1]*sm)
			}
		}
	}
	o.FaceFunc = func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
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

	// scratchpad and registration
	o.init_scratchpad()
	factory["hex8"] = &o

	// integration points
	g := 1.0 / math.Sqrt(3.0)
	ips := make([]Ipoint, 8)
	for i := 0; i < 8; i++ {
		ips[i] = Ipoint{g * factory["hex8"].NatCoords[0][i], g * factory["hex8"].NatCoords[1][i], g * factory["hex8"].NatCoords[2][i], 1}
	}
	ipsfactory["hex8"] = map[int][]Ipoint{
		1: {
			{0, 0, 0, 8},
		},
		8: ips,
	}
}
