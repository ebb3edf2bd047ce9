// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/mfkiwl/Amaru/ele"
	"github.com/mfkiwl/Amaru/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// svtol is the relative cutoff on singular values when pseudo-inverting patch matrices
const svtol = 1e-10

// ipResults holds one element's integration point data sampled for nodal recovery
type ipResults struct {
	coords [][]float64 // [nip][ndim] real coordinates
	keys   []string    // value keys
	vals   *ele.IpsMap // values per key and ip
}

// patchRecovery recovers nodal values of secondary variables for solid-family
// elements using superconvergent patches. For each interior vertex, a low order
// polynomial is fitted by least-squares over the integration points of all
// attached elements and evaluated at every node of the patch. Boundary vertices
// left without contributions borrow their own patch, accepting smaller and
// smaller patches until none is left out. Nodal values are the arithmetic mean
// of all contributions; vertices without any contribution get zero.
func (o *Domain) patchRecovery() (err error) {

	// sample integration points of solid-family elements
	ndim := o.Msh.Ndim
	samples := make(map[int]*ipResults) // cell id => data
	var keys []string
	seen := make(map[string]bool)
	for _, e := range o.ElemOutIps {
		cell := o.Msh.Cells[e.Id()]
		if cell.Shp.Gndim != ndim {
			continue
		}
		M := ele.NewIpsMap()
		e.OutIpVals(M, o.Sol)
		samples[cell.Id] = &ipResults{coords: e.OutIpCoords(), keys: e.OutIpKeys(), vals: M}
		for _, key := range e.OutIpKeys() {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	if len(samples) == 0 {
		return
	}

	// accumulators
	nverts := len(o.Msh.Verts)
	sums := make(map[string][]float64)
	counts := make(map[string][]int)
	for _, key := range keys {
		sums[key] = make([]float64, nverts)
		counts[key] = make([]int, nverts)
	}

	// cellsOf returns the sampled cells attached to a vertex
	cellsOf := func(vid int) (res []*inp.Cell) {
		for _, c := range o.Msh.Vert2cells[vid] {
			if samples[c.Id] != nil {
				res = append(res, c)
			}
		}
		return
	}

	// fitPatch fits one polynomial per key over the integration points of the
	// given cells and accumulates the fitted values at every node of the patch.
	// Cells of different families report different keys, so the sampling points
	// are grouped per key and each fit covers only the contributing cells.
	fitPatch := func(cells []*inp.Cell) (err error) {

		// collect sampling points per key
		pts := make(map[string][][]float64)
		bvals := make(map[string][]float64)
		kcells := make(map[string][]*inp.Cell)
		for _, c := range cells {
			d := samples[c.Id]
			for _, key := range d.keys {
				for idx := 0; idx < len(d.coords); idx++ {
					pts[key] = append(pts[key], d.coords[idx])
					bvals[key] = append(bvals[key], d.vals.Get(key, idx))
				}
				kcells[key] = append(kcells[key], c)
			}
		}

		// fit each key and evaluate at the nodes of its contributing cells
		var a mat.Dense
		for _, key := range keys {
			b := bvals[key]
			n := len(b)
			if n == 0 {
				continue
			}
			nterms := recNterms(ndim, n)
			P := mat.NewDense(n, nterms, nil)
			for i, x := range pts[key] {
				P.SetRow(i, recTerms(ndim, nterms, x))
			}
			var svd mat.SVD
			if !svd.Factorize(P, mat.SVDThin) {
				return chk.Err("SVD factorisation of patch matrix failed")
			}
			svals := svd.Values(nil)
			rank := 0
			for _, s := range svals {
				if s > svtol*svals[0] {
					rank++
				}
			}
			svd.SolveTo(&a, mat.NewDense(n, 1, b), rank)
			for _, c := range kcells[key] {
				for _, v := range c.Verts {
					p := recTerms(ndim, nterms, o.Msh.Verts[v].C)
					val := 0.0
					for k := 0; k < nterms; k++ {
						val += a.At(k, 0) * p[k]
					}
					sums[key][v] += val
					counts[key][v]++
				}
			}
		}
		return
	}

	// interior patches
	for vid := 0; vid < nverts; vid++ {
		if o.Msh.BryVerts[vid] {
			continue
		}
		cells := cellsOf(vid)
		if len(cells) == 0 {
			continue
		}
		err = fitPatch(cells)
		if err != nil {
			return
		}
	}

	// boundary vertices without contributions borrow their own patch
	hasContrib := func(vid int) bool {
		for _, key := range keys {
			if counts[key][vid] > 0 {
				return true
			}
		}
		return false
	}
	for thr := 3; thr >= 1; thr-- {
		for vid := 0; vid < nverts; vid++ {
			cells := cellsOf(vid)
			if len(cells) < thr || len(cells) == 0 {
				continue
			}
			if hasContrib(vid) {
				continue
			}
			err = fitPatch(cells)
			if err != nil {
				return
			}
		}
	}

	// averages
	for _, key := range keys {
		nd := make([]float64, nverts)
		for v := 0; v < nverts; v++ {
			if counts[key][v] > 0 {
				nd[v] = sums[key][v] / float64(counts[key][v])
			}
		}
		o.NodeData[key] = nd
	}
	return
}

// localRecovery recovers nodal values for elements with geometry dimension
// smaller than the mesh dimension (e.g. rods) using per-element extrapolation
// matrices. Values at shared nodes are averaged over the contributing elements.
func (o *Domain) localRecovery() (err error) {
	nverts := len(o.Msh.Verts)
	sums := make(map[string][]float64)
	counts := make(map[string][]int)
	for _, e := range o.ElemExtrap {
		cell := o.Msh.Cells[e.Id()]
		if cell.Shp.Gndim == o.Msh.Ndim {
			continue
		}
		ips := e.Ipoints()
		Emat := la.MatAlloc(cell.Shp.Nverts, len(ips))
		err = cell.Shp.Extrapolator(Emat, ips)
		if err != nil {
			return chk.Err("cannot compute extrapolation matrix of element %d: %v", e.Id(), err)
		}
		M := ele.NewIpsMap()
		e.OutIpVals(M, o.Sol)
		for _, key := range e.OutIpKeys() {
			if sums[key] == nil {
				sums[key] = make([]float64, nverts)
				counts[key] = make([]int, nverts)
			}
			for i := 0; i < cell.Shp.Nverts; i++ {
				v := cell.Verts[i]
				val := 0.0
				for j := 0; j < len(ips); j++ {
					val += Emat[i][j] * M.Get(key, j)
				}
				sums[key][v] += val
				counts[key][v]++
			}
		}
	}
	for key, s := range sums {
		nd := make([]float64, nverts)
		for v := 0; v < nverts; v++ {
			if counts[key][v] > 0 {
				nd[v] = s[v] / float64(counts[key][v])
			}
		}
		o.NodeData[key] = nd
	}
	return
}

// recNterms returns the number of polynomial terms for a patch fit with n sampling points
func recNterms(ndim, n int) int {
	if ndim == 3 {
		switch {
		case n >= 10:
			return 10
		case n >= 7:
			return 7
		case n >= 4:
			return 4
		}
		return 1
	}
	switch {
	case n >= 6:
		return 6
	case n >= 4:
		return 4
	case n >= 3:
		return 3
	}
	return 1
}

// recTerms evaluates the polynomial basis at x
func recTerms(ndim, nterms int, x []float64) (p []float64) {
	p = make([]float64, nterms)
	p[0] = 1.0
	if nterms == 1 {
		return
	}
	if ndim == 3 {
		p[1], p[2], p[3] = x[0], x[1], x[2]
		switch nterms {
		case 7:
			p[4], p[5], p[6] = x[0]*x[1], x[1]*x[2], x[2]*x[0]
		case 10:
			p[4], p[5], p[6] = x[0]*x[0], x[1]*x[1], x[2]*x[2]
			p[7], p[8], p[9] = x[0]*x[1], x[1]*x[2], x[2]*x[0]
		}
		return
	}
	p[1], p[2] = x[0], x[1]
	switch nterms {
	case 4:
		p[3] = x[0] * x[1]
	case 6:
		p[3], p[4], p[5] = x[0]*x[0], x[0]*x[1], x[1]*x[1]
	}
	return
}
