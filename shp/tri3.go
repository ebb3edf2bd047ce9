// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Tri3 implements the 3-node triangle
//
//    s
//    |
//    2
//    | \
//    |   \
//    |     \
//    0-------1 --> r
//
func init() {

	// geometry
	var o Shape
	o.Type = "tri3"
	o.BasicType = "tri3"
	o.FaceType = "lin2"
	o.Gndim = 2
	o.Nverts = 3
	o.VtkCode = 5
	o.FaceNvertsMax = 2
	o.FaceLocalVerts = [][]int{{0, 1}, {1, 2}, {2, 0}}
	o.NatCoords = [][]float64{
		{0, 1, 0},
		{0, 0, 1},
	}

	// functions
	o.Func = func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
		S[0] = 1.0 - r[0] - r[1]
		S[1] = r[0]
		S[2] = r[1]
		if !derivs {
			return
		}
		dSdR[0][0], dSdR[0][1] = -1.0, -1.0
		dSdR[1][0], dSdR[1][1] = 1.0, 0.0
		dSdR[2][0], dSdR[2][1] = 0.0, 1.0
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
	factory["tri3"] = &o

	// integration points
	ipsfactory["tri3"] = map[int][]Ipoint{
		1: {
			{1.0 / 3.0, 1.0 / 3.0, 0, 1.0 / 2.0},
		},
		3: {
			{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
			{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
		},
	}
}
