// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import "math"

// Lin2 implements the 2-node line
//
//   -1     0    +1
//    0-----------1 --> r
//
func init() {

	// geometry
	var o Shape
	o.Type = "lin2"
	o.BasicType = "lin2"
	o.FaceType = ""
	o.Gndim = 1
	o.Nverts = 2
	o.VtkCode = 3
	o.NatCoords = [][]float64{
		{-1, 1},
	}

	// functions
	o.Func = func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int) {
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
	factory["lin2"] = &o

	// integration points
	g := 1.0 / math.Sqrt(3.0)
	ipsfactory["lin2"] = map[int][]Ipoint{
		1: {
			{0, 0, 0, 2},
		},
		2: {
			{-g, 0, 0, 1},
			{g, 0, 0, 1},
		},
		3: {
			{-math.Sqrt(3.0 / 5.0), 0, 0, 5.0 / 9.0},
			{0, 0, 0, 8.0 / 9.0},
			{math.Sqrt(3.0 / 5.0), 0, 0, 5.0 / 9.0},
		},
	}
}
