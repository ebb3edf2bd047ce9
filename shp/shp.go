// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape structures and quadrature rules
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// constants
const MINDET = 1.0e-14 // minimum determinant allowed for dxdR

// Ipoint holds the natural coordinates and weight of an integration point: [r, s, t, w]
type Ipoint []float64

// ShpFunc is the shape functions callback function
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool, idxface int)

// Shape holds geometry data and a scratchpad for computations at integration points
type Shape struct {

	// geometry
	Type           string      // name; e.g. "lin2"
	Func           ShpFunc     // shape/derivs function callback function
	FaceFunc       ShpFunc     // face shape/derivs function callback function
	BasicType      string      // geometry of basic element; e.g. "qua8" => "qua4"
	FaceType       string      // geometry of face; e.g. "qua4" => "lin2"
	Gndim          int         // geometry dimension; e.g. "lin2" => gndim == 1 (even in 3D analyses)
	Nverts         int         // number of vertices in cell
	VtkCode        int         // VTK code
	FaceNvertsMax  int         // max number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates of vertices [gndim][nverts]

	// scratchpad: volume
	S    []float64   // [nverts] shape functions
	G    [][]float64 // [nverts][gndim] G == dSdx. derivative of shape function
	J    float64     // Jacobian: determinant of dxdR
	DSdR [][]float64 // [nverts][gndim] derivatives of S w.r.t natural coordinates
	DxdR [][]float64 // [gndim][gndim] derivatives of real coordinates w.r.t natural coordinates
	DRdx [][]float64 // [gndim][gndim] dRdx == inverse(dxdR)

	// scratchpad: line
	Jvec3d []float64 // Jacobian: dxdR for line elements (size==3)
	Gvec   []float64 // [nverts] G == dSdx. derivative of shape function

	// scratchpad: face
	Sf     []float64   // [FaceNvertsMax] shape functions values
	Fnvec  []float64   // [gndim] face normal vector multiplied by Jf
	DSfdRf [][]float64 // [FaceNvertsMax][gndim-1] derivatives of Sf w.r.t natural coordinates
	DxfdRf [][]float64 // [gndim][gndim-1] derivatives of real coordinates w.r.t natural coordinates
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// ipsfactory holds integration point tables; geoType => nip => ips
var ipsfactory = make(map[string]map[int][]Ipoint)

// Get returns an existent Shape structure
//  Note: returns nil if geoType is unknown
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s
}

// GetNverts returns the number of vertices of a cell type; -1 if unknown
func GetNverts(geoType string) int {
	s, ok := factory[geoType]
	if !ok {
		return -1
	}
	return s.Nverts
}

// GetIps returns the integration points of a cell type
//  nip -- number of integration points; 0 means default rule
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	tables, ok := ipsfactory[geoType]
	if !ok {
		return nil, chk.Err("shape %q has no integration point tables", geoType)
	}
	if nip == 0 {
		nip = defaultips[geoType]
	}
	ips, ok = tables[nip]
	if !ok {
		return nil, chk.Err("cannot find nip=%d integration rule for shape %q", nip, geoType)
	}
	return
}

// GetFaceLocalVerts returns the local indices of vertices on a face of a cell
func GetFaceLocalVerts(geoType string, idxface int) []int {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s.FaceLocalVerts[idxface]
}

// IpRealCoords returns the real coordinates (y) of an integration point
func (o *Shape) IpRealCoords(x [][]float64, ip Ipoint) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	o.Func(o.S, o.DSdR, ip, false, -1)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += o.S[m] * x[i][m]
		}
	}
	return
}

// CalcAtIp calculates volume data such as S and G at the natural coordinates of ip
//  Input:
//   x[ndim][nverts] -- coordinates matrix of element
//   ip              -- integration point (or natural coordinates)
//  Output:
//   S, DSdR, DxdR, DRdx, G, and J
func (o *Shape) CalcAtIp(x [][]float64, ip Ipoint, derivs bool) (err error) {

	// S and dSdR
	o.Func(o.S, o.DSdR, ip, derivs, -1)
	if !derivs {
		return
	}

	if o.Gndim == 1 {
		// calculate Jvec3d == dxdR
		for i := 0; i < len(x); i++ {
			o.Jvec3d[i] = 0.0
			for m := 0; m < o.Nverts; m++ {
				o.Jvec3d[i] += x[i][m] * o.DSdR[m][0] // dxdR := x * dSdR
			}
		}

		// calculate J = norm of Jvec3d
		o.J = la.VecNorm(o.Jvec3d[:len(x)])
		if o.J < MINDET {
			return chk.Err("shape %q: determinant of Jacobian is near zero or negative: %g", o.Type, o.J)
		}

		// calculate G
		for m := 0; m < o.Nverts; m++ {
			o.Gvec[m] = o.DSdR[m][0] / o.J
		}
		return
	}

	// dxdR := sum_n x * dSdR   =>  dx_i/dR_j := sum_n x^n_i * dS^n/dR_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			o.DxdR[i][j] = 0.0
			for n := 0; n < o.Nverts; n++ {
				o.DxdR[i][j] += x[i][n] * o.DSdR[n][j]
			}
		}
	}

	// dRdx := inv(dxdR)
	o.J, err = la.MatInv(o.DRdx, o.DxdR, MINDET)
	if err != nil {
		return
	}

	// G == dSdx := dSdR * dRdx  =>  dS^m/dx_j := sum_i dS^m/dR_i * dR_i/dx_j
	la.MatMul(o.G, 1, o.DSdR, o.DRdx)
	return
}

// CalcAtR calculates volume data such as S and G at natural coordinates R
func (o *Shape) CalcAtR(x [][]float64, R []float64, derivs bool) (err error) {
	return o.CalcAtIp(x, R, derivs)
}

// CalcAtFaceIp calculates face data such as Sf and Fnvec
//  Input:
//   x[ndim][nverts] -- coordinates matrix of element
//   ipf             -- integration point on face (natural coordinates of face)
//   idxface         -- local index of face
//  Output:
//   Sf and Fnvec
func (o *Shape) CalcAtFaceIp(x [][]float64, ipf Ipoint, idxface int) (err error) {

	// skip 1D elements
	if o.Gndim == 1 {
		return
	}

	// Sf and dSfdRf
	o.FaceFunc(o.Sf, o.DSfdRf, ipf, true, idxface)

	// dxfdRf := sum_n x * dSfdRf   =>  dxf_i/dRf_j := sum_n xf^n_i * dSf^n/dRf_j
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim-1; j++ {
			o.DxfdRf[i][j] = 0.0
			for k, n := range o.FaceLocalVerts[idxface] {
				o.DxfdRf[i][j] += x[i][n] * o.DSfdRf[k][j]
			}
		}
	}

	// face normal vector, scaled by the face Jacobian
	if o.Gndim == 2 {
		o.Fnvec[0] = o.DxfdRf[1][0]
		o.Fnvec[1] = -o.DxfdRf[0][0]
		return
	}
	o.Fnvec[0] = o.DxfdRf[1][0]*o.DxfdRf[2][1] - o.DxfdRf[2][0]*o.DxfdRf[1][1]
	o.Fnvec[1] = o.DxfdRf[2][0]*o.DxfdRf[0][1] - o.DxfdRf[0][0]*o.DxfdRf[2][1]
	o.Fnvec[2] = o.DxfdRf[0][0]*o.DxfdRf[1][1] - o.DxfdRf[1][0]*o.DxfdRf[0][1]
	return
}

// AxisymGetRadius returns the radius (first coordinate) for axisymmetric computations
//  Note: must be called after CalcAtIp
func (o *Shape) AxisymGetRadius(x [][]float64) (radius float64) {
	for m := 0; m < o.Nverts; m++ {
		radius += o.S[m] * x[0][m]
	}
	return
}

// AxisymGetRadiusF (face) returns the radius for axisymmetric computations
//  Note: must be called after CalcAtFaceIp
func (o *Shape) AxisymGetRadiusF(x [][]float64, idxface int) (radius float64) {
	for k, n := range o.FaceLocalVerts[idxface] {
		radius += o.Sf[k] * x[0][n]
	}
	return
}

// init_scratchpad initialises the volume/face/line scratchpads
func (o *Shape) init_scratchpad() {

	// volume data
	o.S = make([]float64, o.Nverts)
	o.DSdR = la.MatAlloc(o.Nverts, o.Gndim)
	o.DxdR = la.MatAlloc(o.Gndim, o.Gndim)
	o.DRdx = la.MatAlloc(o.Gndim, o.Gndim)
	o.G = la.MatAlloc(o.Nverts, o.Gndim)

	// face data
	if o.Gndim > 1 {
		o.Sf = make([]float64, o.FaceNvertsMax)
		o.DSfdRf = la.MatAlloc(o.FaceNvertsMax, o.Gndim-1)
		o.DxfdRf = la.MatAlloc(o.Gndim, o.Gndim-1)
		o.Fnvec = make([]float64, o.Gndim)
	}

	// line data
	if o.Gndim == 1 {
		o.Jvec3d = make([]float64, 3)
		o.Gvec = make([]float64, o.Nverts)
	}
}

// defaultips holds the default number of integration points per shape type
var defaultips = map[string]int{
	"lin2": 2,
	"tri3": 3,
	"qua4": 4,
	"hex8": 8,
}
