// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

// StressKeys returns the stress component keys for output
func StressKeys(ndim int) []string {
	if ndim == 2 {
		return []string{"sx", "sy", "sz", "sxy"}
	}
	return []string{"sx", "sy", "sz", "sxy", "syz", "szx"}
}

// Ivs2sigmas converts an ivs map to stress values [nsig]
//  sig -- [nsig] stresses
//  i   -- index of integration point
func Ivs2sigmas(sig []float64, i int, ivs map[string][]float64) {
	for key, vals := range ivs {
		switch key {
		case "sx":
			sig[0] = vals[i]
		case "sy":
			sig[1] = vals[i]
		case "sz":
			sig[2] = vals[i]
		case "sxy":
			sig[3] = vals[i]
		case "syz":
			if len(sig) > 4 {
				sig[4] = vals[i]
			}
		case "szx":
			if len(sig) > 5 {
				sig[5] = vals[i]
			}
		}
	}
}

// Bmatrix computes the strain-displacement matrix B [nsig][nu] such that
// eps = B * u with eps in Voigt notation and engineering shear strains.
//  2D (nsig=4): eps = {ex, ey, ez, gxy}; the hoop row ez is nonzero only in
//  axisymmetric analyses where ez = u_r / r
func Bmatrix(B [][]float64, ndim, nverts int, G [][]float64, radius float64, S []float64, axisym bool) {
	if ndim == 2 {
		for m := 0; m < nverts; m++ {
			c := m * 2
			B[0][c], B[0][c+1] = G[m][0], 0
			B[1][c], B[1][c+1] = 0, G[m][1]
			B[2][c], B[2][c+1] = 0, 0
			B[3][c], B[3][c+1] = G[m][1], G[m][0]
			if axisym {
				B[2][c] = S[m] / radius
			}
		}
		return
	}
	for m := 0; m < nverts; m++ {
		c := m * 3
		B[0][c], B[0][c+1], B[0][c+2] = G[m][0], 0, 0
		B[1][c], B[1][c+1], B[1][c+2] = 0, G[m][1], 0
		B[2][c], B[2][c+1], B[2][c+2] = 0, 0, G[m][2]
		B[3][c], B[3][c+1], B[3][c+2] = G[m][1], G[m][0], 0
		B[4][c], B[4][c+1], B[4][c+2] = 0, G[m][2], G[m][1]
		B[5][c], B[5][c+1], B[5][c+2] = G[m][2], 0, G[m][0]
	}
}

// StrainsAndInc computes total and incremental strains from nodal values
//  eps  = B * y[umap]
//  deps = B * dy[umap]
func StrainsAndInc(eps, deps []float64, nsig, nu int, B [][]float64, y, dy []float64, umap []int) {
	for i := 0; i < nsig; i++ {
		eps[i], deps[i] = 0, 0
		for j := 0; j < nu; j++ {
			eps[i] += B[i][j] * y[umap[j]]
			deps[i] += B[i][j] * dy[umap[j]]
		}
	}
}
