// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// constants
const (
	INVMAP_TOL = 1.0e-10 // tolerance for inverse mapping function
	INVMAP_NIT = 25      // maximum number of iterations for inverse mapping
)

// InvMap computes the natural coordinates r, given the real coordinate y
//  Input:
//   y[ndim]          -- 2D/3D point coordinates
//   x[ndim][nverts]  -- coordinates matrix of solid element
//  Output:
//   r[3] -- natural coordinates of given point
func (o *Shape) InvMap(r, y []float64, x [][]float64) (err error) {

	// check
	if o.Gndim == 1 {
		return chk.Err("inverse mapping is not implemented in 1D")
	}

	var dRnorm float64
	e := make([]float64, o.Gndim)  // residual
	dr := make([]float64, o.Gndim) // corrector
	r[0], r[1], r[2] = 0, 0, 0     // first trial
	derivs := true
	for it := 0; it < INVMAP_NIT; it++ {

		// shape functions and derivatives
		o.Func(o.S, o.DSdR, r, derivs, -1)

		// residual: e = y - x * S
		for i := 0; i < o.Gndim; i++ {
			e[i] = y[i]
			for j := 0; j < o.Nverts; j++ {
				e[i] -= x[i][j] * o.S[j]
			}
		}

		// dxdR := x * dSdR
		for i := 0; i < len(x); i++ {
			for j := 0; j < o.Gndim; j++ {
				o.DxdR[i][j] = 0.0
				for k := 0; k < o.Nverts; k++ {
					o.DxdR[i][j] += x[i][k] * o.DSdR[k][j]
				}
			}
		}

		// dRdx := inverse(dxdR)
		o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)
		if err != nil {
			return
		}

		// corrector: dr = dRdx * e
		for i := 0; i < o.Gndim; i++ {
			dr[i] = 0.0
			for j := 0; j < o.Gndim; j++ {
				dr[i] += o.DRdx[i][j] * e[j]
			}
		}

		// converged?
		dRnorm = 0.0
		for i := 0; i < o.Gndim; i++ {
			r[i] += dr[i]
			dRnorm += dr[i] * dr[i]
			// fix r outside range
			if r[i] < -1.0 || r[i] > 1.0 {
				if math.Abs(r[i]-(-1.0)) < INVMAP_TOL {
					r[i] = -1.0
				}
				if math.Abs(r[i]-1.0) < INVMAP_TOL {
					r[i] = 1.0
				}
			}
		}
		if math.Sqrt(dRnorm) < INVMAP_TOL {
			break
		}
	}
	return
}

// GetNodesNatCoordsMat returns the matrix with natural coordinates of nodes,
// augmented by one column filled with ones [nverts][ndim+1]
func (o *Shape) GetNodesNatCoordsMat() (xi [][]float64) {
	xi = la.MatAlloc(o.Nverts, o.Gndim+1)
	for i := 0; i < o.Nverts; i++ {
		for j := 0; j < o.Gndim; j++ {
			xi[i][j] = o.NatCoords[j][i]
		}
		xi[i][o.Gndim] = 1.0
	}
	return
}

// GetIpsNatCoordsMat returns the matrix with natural coordinates of integration
// points, augmented by one column filled with ones [nip][ndim+1]
func (o *Shape) GetIpsNatCoordsMat(ips []Ipoint) (xih [][]float64) {
	nip := len(ips)
	xih = la.MatAlloc(nip, o.Gndim+1)
	for i := 0; i < nip; i++ {
		for j := 0; j < o.Gndim; j++ {
			xih[i][j] = ips[i][j]
		}
		xih[i][o.Gndim] = 1.0
	}
	return
}

// GetShapeMatAtIps returns a matrix formed by computing the shape functions
// at all integration points [nip][nverts]
func (o *Shape) GetShapeMatAtIps(ips []Ipoint) (N [][]float64) {
	nip := len(ips)
	N = la.MatAlloc(nip, o.Nverts)
	derivs := false
	for i := 0; i < nip; i++ {
		o.Func(o.S, o.DSdR, ips[i], derivs, -1)
		for j := 0; j < o.Nverts; j++ {
			N[i][j] = o.S[j]
		}
	}
	return
}

// Extrapolator computes the extrapolation matrix for this Shape with a combination
// of integration points 'ips'
//  Note: E[nverts][nip] must be pre-allocated
func (o *Shape) Extrapolator(E [][]float64, ips []Ipoint) (err error) {
	la.MatFill(E, 0)
	nip := len(ips)
	N := o.GetShapeMatAtIps(ips)
	if nip < o.Nverts {
		xi := o.GetNodesNatCoordsMat()
		xih := o.GetIpsNatCoordsMat(ips)
		xihi := la.MatAlloc(o.Gndim+1, nip)
		Ni := la.MatAlloc(o.Nverts, nip)
		err = la.MatInvG(Ni, N, 1e-10)
		if err != nil {
			return
		}
		err = la.MatInvG(xihi, xih, 1e-10)
		if err != nil {
			return
		}
		xihxihI := la.MatAlloc(nip, nip) // xih * inv(xih)
		for k := 0; k < o.Gndim+1; k++ {
			for j := 0; j < nip; j++ {
				for i := 0; i < nip; i++ {
					xihxihI[i][j] += xih[i][k] * xihi[k][j]
				}
				for i := 0; i < o.Nverts; i++ {
					E[i][j] += xi[i][k] * xihi[k][j] // xi * inv(xih)
				}
			}
		}
		for i := 0; i < o.Nverts; i++ {
			for j := 0; j < nip; j++ {
				for k := 0; k < nip; k++ {
					I_kj := 0.0
					if j == k {
						I_kj = 1.0
					}
					E[i][j] += Ni[i][k] * (I_kj - xihxihI[k][j])
				}
			}
		}
	} else {
		err = la.MatInvG(E, N, 1e-10)
		if err != nil {
			return
		}
	}
	return
}
