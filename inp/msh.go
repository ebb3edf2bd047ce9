// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"path/filepath"
	"sort"

	"github.com/mfkiwl/Amaru/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Ztol is the tolerance to detect zero z-coordinates in 3D meshes
const Ztol = 1e-7

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type; e.g. "qua4"
	Verts []int  // vertices
	FTags []int  // edge (2D) or face (3D) tags

	// derived
	Shp     *shp.Shape // shape structure
	FaceBcs FaceConds  // face boundary conditions; set on each stage
}

// CellFaceId holds a cell and one of its local face indices
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert      // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId // face tag => set of cells
	FaceTag2verts map[int][]int        // face tag => vertices on tagged face
	Ctype2cells   map[string][]*Cell   // cell type => set of cells

	// derived: boundary detection
	Vert2cells map[int][]*Cell // vertex id => attached cells
	BryVerts   map[int]bool    // ids of vertices on the mesh boundary
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(dir, fn string) (*Mesh, error) {

	// new mesh
	var o Mesh

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := io.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", o.FnamePath, err)
	}

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// check
	if len(o.Verts) < 2 {
		return nil, chk.Err("mesh %q must have at least 2 vertices", fn)
	}
	if len(o.Cells) < 1 {
		return nil, chk.Err("mesh %q must have at least 1 cell", fn)
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin = o.Verts[0].C[0]
	o.Ymin = o.Verts[0].C[1]
	if len(o.Verts[0].C) > 2 {
		o.Zmin = o.Verts[0].C[2]
	}
	o.Xmax = o.Xmin
	o.Ymax = o.Ymin
	o.Zmax = o.Zmin
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return nil, chk.Err("vertices ids must coincide with order in \"verts\" list. %d != %d", v.Id, i)
		}

		// ndim
		nd := len(v.C)
		if nd < 2 || nd > 3 {
			return nil, chk.Err("number of space dimensions must be 2 or 3. %d is invalid", nd)
		}
		if nd == 3 {
			if math.Abs(v.C[2]) > Ztol {
				o.Ndim = 3
			}
		}

		// tags
		if v.Tag < 0 {
			verts := o.VertTag2verts[v.Tag]
			o.VertTag2verts[v.Tag] = append(verts, v)
		}

		// limits
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
		if nd > 2 {
			o.Zmin = utl.Min(o.Zmin, v.C[2])
			o.Zmax = utl.Max(o.Zmax, v.C[2])
		}
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	o.Ctype2cells = make(map[string][]*Cell)
	o.Vert2cells = make(map[int][]*Cell)
	faceShare := make(map[string]int) // key of sorted face vertices => number of cells sharing face
	for i, c := range o.Cells {

		// check id and tag
		if c.Id != i {
			return nil, chk.Err("cells ids must coincide with order in \"cells\" list. %d != %d", c.Id, i)
		}
		if c.Tag >= 0 {
			return nil, chk.Err("cells tags must be negative. %d is incorrect", c.Tag)
		}

		// get shape structure
		c.Shp = shp.Get(c.Type)
		if c.Shp == nil {
			return nil, chk.Err("cannot find shape type %q", c.Type)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return nil, chk.Err("cell %d of type %q must have %d vertices. %d is incorrect", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}

		// cell tags
		cells := o.CellTag2cells[c.Tag]
		o.CellTag2cells[c.Tag] = append(cells, c)

		// face tags
		for j, ftag := range c.FTags {
			if ftag < 0 {
				pairs := o.FaceTag2cells[ftag]
				o.FaceTag2cells[ftag] = append(pairs, CellFaceId{c, j})
				for _, l := range shp.GetFaceLocalVerts(c.Type, j) {
					utl.IntIntsMapAppend(&o.FaceTag2verts, ftag, o.Verts[c.Verts[l]].Id)
				}
			}
		}

		// cell type => cells
		cells = o.Ctype2cells[c.Type]
		o.Ctype2cells[c.Type] = append(cells, c)

		// vertex => cells
		for _, vid := range c.Verts {
			o.Vert2cells[vid] = append(o.Vert2cells[vid], c)
		}

		// face sharing counters; only cells with dimension equal to the mesh dimension bound a volume
		if c.Shp.Gndim == o.Ndim {
			for j := range c.Shp.FaceLocalVerts {
				faceShare[c.faceKey(j)]++
			}
		}
	}

	// boundary vertices: vertices on faces shared by one cell only
	o.BryVerts = make(map[int]bool)
	for _, c := range o.Cells {
		if c.Shp.Gndim != o.Ndim {
			continue
		}
		for j, lverts := range c.Shp.FaceLocalVerts {
			if faceShare[c.faceKey(j)] == 1 {
				for _, l := range lverts {
					o.BryVerts[c.Verts[l]] = true
				}
			}
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = utl.IntUnique(verts)
	}

	// results
	return &o, nil
}

// faceKey returns a unique key for the idxface face of a cell, independent of vertex ordering
func (o *Cell) faceKey(idxface int) string {
	lverts := o.Shp.FaceLocalVerts[idxface]
	ids := make([]int, len(lverts))
	for i, l := range lverts {
		ids[i] = o.Verts[l]
	}
	sort.Ints(ids)
	key := ""
	for _, id := range ids {
		key += io.Sf("_%d", id)
	}
	return key
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
