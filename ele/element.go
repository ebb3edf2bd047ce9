// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele implements finite elements
package ele

import (
	"github.com/mfkiwl/Amaru/inp"
	"github.com/mfkiwl/Amaru/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Element defines what all elements must implement
type Element interface {

	// information and initialisation
	Id() int                       // returns the cell Id
	SetEqs(eqs [][]int) (err error) // set equations

	// conditions (natural BCs and element's)
	SetEleConds(key string, f dbf.T, extra string) (err error) // set element conditions

	// called for each time step
	InterpStarVars(sol *Solution) (err error) // interpolate star variables to integration points

	// called for each iteration
	AddToRhs(fb []float64, sol *Solution) (err error)                // adds -R to global residual vector fb
	AddToKb(Kb *la.Triplet, sol *Solution, firstIt bool) (err error) // adds element K to global Jacobian matrix Kb
}

// WithIntVars defines elements with internal variables at integration points
type WithIntVars interface {
	Update(sol *Solution) (err error)                              // perform (tangent) update
	SetIniIvs(sol *Solution, ivs map[string][]float64) (err error) // sets initial ivs for given values in sol and ivs map
	BackupIvs(aux bool) (err error)                                // create copy of internal variables
	RestoreIvs(aux bool) (err error)                               // restore internal variables from copies
}

// CanOutputIps defines elements that can output integration points' values
type CanOutputIps interface {
	Id() int                            // returns the cell Id
	OutIpCoords() [][]float64           // coordinates of integration points
	OutIpKeys() []string                // integration points' keys; e.g. "sx", "sy"
	OutIpVals(M *IpsMap, sol *Solution) // integration points' values corresponding to keys
}

// CanExtrapolate defines elements that can extrapolate integration points' values to nodes
type CanExtrapolate interface {
	CanOutputIps
	Ipoints() []shp.Ipoint // integration points used by this element
}

// InfoFuncType defines a function that returns information about a certain element type
type InfoFuncType func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding) *Info

// AllocatorType defines a function that allocates an element
type AllocatorType func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding, x [][]float64) Element

// TypeOfCell resolves the element type from the class of the bound material and
// the family of the cell geometry
func TypeOfCell(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding) (etype string, err error) {
	mat := sim.MatParams.Get(bnd.Mat)
	if mat == nil {
		return "", chk.Err("cannot find material %q bound to cell %d", bnd.Mat, cell.Id)
	}
	line := cell.Shp.Gndim == 1
	switch mat.Type {
	case "solid":
		if line {
			return "rod", nil
		}
		return "u", nil
	case "diffusion":
		if line {
			return "", chk.Err("material %q of class %q cannot be bound to line cell %d", bnd.Mat, mat.Type, cell.Id)
		}
		return "diffusion", nil
	}
	return "", chk.Err("material %q has unknown class %q", bnd.Mat, mat.Type)
}

// GetInfo returns information about the element of a cell
func GetInfo(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding) (info *Info, err error) {
	etype, err := TypeOfCell(sim, cell, bnd)
	if err != nil {
		return
	}
	fcn, ok := infofactory[etype]
	if !ok {
		return nil, chk.Err("cannot get info for element {type=%q, tag=%d, id=%d}", etype, cell.Tag, cell.Id)
	}
	info = fcn(sim, cell, bnd)
	if info == nil {
		return nil, chk.Err("info for element {type=%q, tag=%d, id=%d} is not available", etype, cell.Tag, cell.Id)
	}
	return
}

// New returns a new element from the factory
func New(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding) (element Element, err error) {
	etype, err := TypeOfCell(sim, cell, bnd)
	if err != nil {
		return
	}
	fcn, ok := allocators[etype]
	if !ok {
		return nil, chk.Err("cannot get allocator for element {type=%q, tag=%d, id=%d}", etype, cell.Tag, cell.Id)
	}
	x := BuildCoordsMatrix(cell, sim.Msh)
	element = fcn(sim, cell, bnd, x)
	if element == nil {
		return nil, chk.Err("element {type=%q, tag=%d, id=%d} is not available", etype, cell.Tag, cell.Id)
	}
	return
}

// SetInfoFunc sets a new callback function to return information about an element
func SetInfoFunc(elementName string, fcn InfoFuncType) {
	if _, ok := infofactory[elementName]; ok {
		chk.Panic("cannot set information function for %q because element name exists already", elementName)
	}
	infofactory[elementName] = fcn
}

// SetAllocator sets a new callback function to allocate an element
func SetAllocator(elementName string, fcn AllocatorType) {
	if _, ok := allocators[elementName]; ok {
		chk.Panic("cannot set allocator function for %q because element name exists already", elementName)
	}
	allocators[elementName] = fcn
}

// BuildCoordsMatrix returns the coordinate matrix of a particular Cell
func BuildCoordsMatrix(cell *inp.Cell, msh *inp.Mesh) (x [][]float64) {
	x = la.MatAlloc(msh.Ndim, len(cell.Verts))
	for i := 0; i < msh.Ndim; i++ {
		for j, v := range cell.Verts {
			x[i][j] = msh.Verts[v].C[i]
		}
	}
	return
}

// infofactory holds all functions that return information about an element
var infofactory = make(map[string]InfoFuncType)

// allocators holds all element allocators
var allocators = make(map[string]AllocatorType)
