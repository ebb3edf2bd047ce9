// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"github.com/mfkiwl/Amaru/ele"
	"github.com/mfkiwl/Amaru/inp"
	"github.com/mfkiwl/Amaru/mdl/solid"
	"github.com/mfkiwl/Amaru/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Rod represents a structural rod element (for axial loads only)
type Rod struct {

	// basic data
	Cell *inp.Cell   // cell
	X    [][]float64 // [ndim][nnode] matrix of nodal coordinates
	Ndim int         // space dimension
	Nu   int         // total number of unknowns

	// integration points
	IpsElem []shp.Ipoint // [nip] integration points of element

	// material model
	Mdl solid.OneD // material model

	// variables for dynamics
	Rho  float64  // density
	Gfcn dbf.T // gravity function; nil means no gravity

	// vectors and matrices
	K [][]float64 // [nu][nu] element K matrix

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// internal states
	States    []*solid.OnedState // [nip] states
	StatesBkp []*solid.OnedState // [nip] backup states
	StatesAux []*solid.OnedState // [nip] auxiliary backup states

	// scratchpad. computed @ each ip
	grav []float64   // [ndim] gravity vector
	us   []float64   // [ndim] displacements @ ip
	fi   []float64   // [nu] internal forces
	zs   [][]float64 // [nip][ndim] zs* interpolated to ips
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("rod", func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding) *ele.Info {
		var info ele.Info
		ykeys := []string{"ux", "uy"}
		if sim.Ndim == 3 {
			ykeys = []string{"ux", "uy", "uz"}
		}
		info.Dofs = make([][]string, cell.Shp.Nverts)
		for m := 0; m < cell.Shp.Nverts; m++ {
			info.Dofs[m] = ykeys
		}
		info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz"}
		info.T2vars = ykeys
		return &info
	})

	// element allocator
	ele.SetAllocator("rod", func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding, x [][]float64) ele.Element {

		// basic data
		var o Rod
		o.Cell = cell
		o.X = x
		o.Ndim = sim.Ndim
		o.Nu = o.Ndim * cell.Shp.Nverts

		// integration points
		var err error
		o.IpsElem, err = shp.GetIps(cell.Shp.Type, bnd.Nip)
		if err != nil {
			chk.Panic("cannot allocate integration points of rod element with nip=%d:\n%v", bnd.Nip, err)
		}
		nip := len(o.IpsElem)

		// model
		mat := sim.MatParams.Get(bnd.Mat)
		if mat == nil {
			chk.Panic("cannot find material %q for rod element {tag=%d, id=%d}", bnd.Mat, cell.Tag, cell.Id)
		}
		var ok bool
		o.Mdl, ok = mat.Sld.(solid.OneD)
		if !ok {
			chk.Panic("material %q does not implement a 1D model for rods", bnd.Mat)
		}
		o.Rho = mat.Sld.GetRho()

		// scratchpad
		o.K = la.MatAlloc(o.Nu, o.Nu)
		o.grav = make([]float64, o.Ndim)
		o.us = make([]float64, o.Ndim)
		o.fi = make([]float64, o.Nu)
		o.zs = la.MatAlloc(nip, o.Ndim)
		return &o
	})
}

// Id returns the cell Id
func (o *Rod) Id() int { return o.Cell.Id }

// Ipoints returns the integration points used by this element
func (o *Rod) Ipoints() []shp.Ipoint { return o.IpsElem }

// SetEqs sets equations
func (o *Rod) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < o.Cell.Shp.Nverts; m++ {
		for i := 0; i < o.Ndim; i++ {
			r := i + m*o.Ndim
			o.Umap[r] = eqs[m][i]
		}
	}
	return
}

// SetEleConds sets element conditions
func (o *Rod) SetEleConds(key string, f dbf.T, extra string) (err error) {
	if key == "g" {
		o.Gfcn = f
	}
	return
}

// InterpStarVars interpolates star variables to integration points
func (o *Rod) InterpStarVars(sol *ele.Solution) (err error) {
	for idx, ip := range o.IpsElem {
		err = o.Cell.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}
		for i := 0; i < o.Ndim; i++ {
			o.zs[idx][i] = 0
			for m := 0; m < o.Cell.Shp.Nverts; m++ {
				r := o.Umap[i+m*o.Ndim]
				o.zs[idx][i] += o.Cell.Shp.S[m] * sol.Zet[r]
			}
		}
	}
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Rod) AddToRhs(fb []float64, sol *ele.Solution) (err error) {

	// for each integration point
	dc := sol.DynCfs
	nverts := o.Cell.Shp.Nverts
	A := o.Mdl.GetA()
	la.VecFill(o.fi, 0)
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and variables @ ip
		err = o.ipvars(idx, sol)
		if err != nil {
			return
		}
		coef := ip[3] * o.Cell.Shp.J
		S := o.Cell.Shp.S
		Gv := o.Cell.Shp.Gvec
		Jv := o.Cell.Shp.Jvec3d
		J := o.Cell.Shp.J
		sig := o.States[idx].Sig

		// axial, gravity and dynamic terms
		for m := 0; m < nverts; m++ {
			for i := 0; i < o.Ndim; i++ {
				r := i + m*o.Ndim
				o.fi[r] += coef * A * sig * Gv[m] * Jv[i] / J
				o.fi[r] -= coef * S[m] * o.Rho * A * o.grav[i]
				if !sol.Steady {
					o.fi[r] += coef * S[m] * o.Rho * A * (dc.A1*o.us[i] - o.zs[idx][i])
				}
			}
		}
	}

	// assemble fb = -fi
	for i, I := range o.Umap {
		fb[I] -= o.fi[i]
	}
	return
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *Rod) AddToKb(Kb *la.Triplet, sol *ele.Solution, firstIt bool) (err error) {

	// zero K matrix
	la.MatFill(o.K, 0)

	// for each integration point
	dc := sol.DynCfs
	nverts := o.Cell.Shp.Nverts
	A := o.Mdl.GetA()
	for idx, ip := range o.IpsElem {

		// interpolation functions and gradients
		err = o.Cell.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}
		coef := ip[3] * o.Cell.Shp.J
		S := o.Cell.Shp.S
		Gv := o.Cell.Shp.Gvec
		Jv := o.Cell.Shp.Jvec3d
		J := o.Cell.Shp.J

		// consistent tangent modulus
		E, err := o.Mdl.CalcD(o.States[idx], firstIt)
		if err != nil {
			return err
		}

		// add contributions to K
		for m := 0; m < nverts; m++ {
			for n := 0; n < nverts; n++ {
				for i := 0; i < o.Ndim; i++ {
					for j := 0; j < o.Ndim; j++ {
						r, c := i+m*o.Ndim, j+n*o.Ndim
						o.K[r][c] += coef * A * E * Gv[m] * Gv[n] * Jv[i] * Jv[j] / (J * J)
					}
					if !sol.Steady {
						r, c := i+m*o.Ndim, i+n*o.Ndim
						o.K[r][c] += coef * S[m] * S[n] * o.Rho * A * dc.A1
					}
				}
			}
		}
	}

	// add K to sparse matrix Kb
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, o.K[i][j])
		}
	}
	return
}

// Update performs (tangent) update
func (o *Rod) Update(sol *ele.Solution) (err error) {
	for idx, ip := range o.IpsElem {

		// interpolation functions and gradients
		err = o.Cell.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}
		Gv := o.Cell.Shp.Gvec
		Jv := o.Cell.Shp.Jvec3d
		J := o.Cell.Shp.J

		// axial strain and increment
		eps, deps := 0.0, 0.0
		for m := 0; m < o.Cell.Shp.Nverts; m++ {
			for i := 0; i < o.Ndim; i++ {
				r := o.Umap[i+m*o.Ndim]
				eps += Gv[m] * Jv[i] * sol.Y[r] / J
				deps += Gv[m] * Jv[i] * sol.DY[r] / J
			}
		}

		// call model update => update stress
		err = o.Mdl.Update(o.States[idx], eps, deps)
		if err != nil {
			return chk.Err("update failed (eid=%d, ip=%d):\n%v", o.Cell.Id, idx, err)
		}
	}
	return
}

// SetIniIvs sets initial ivs for given values in sol and ivs map
func (o *Rod) SetIniIvs(sol *ele.Solution, ivs map[string][]float64) (err error) {
	nip := len(o.IpsElem)
	o.States = make([]*solid.OnedState, nip)
	o.StatesBkp = make([]*solid.OnedState, nip)
	o.StatesAux = make([]*solid.OnedState, nip)
	for i := 0; i < nip; i++ {
		o.States[i], err = o.Mdl.InitIntVars1D()
		if err != nil {
			return
		}
		if len(ivs) > 0 {
			if vals, ok := ivs["sig"]; ok {
				o.States[i].Sig = vals[i]
			}
		}
		o.StatesBkp[i] = o.States[i].GetCopy()
		o.StatesAux[i] = o.States[i].GetCopy()
	}
	return
}

// BackupIvs creates copy of internal variables
func (o *Rod) BackupIvs(aux bool) (err error) {
	if aux {
		for i, s := range o.StatesAux {
			s.Set(o.States[i])
		}
		return
	}
	for i, s := range o.StatesBkp {
		s.Set(o.States[i])
	}
	return
}

// RestoreIvs restores internal variables from copies
func (o *Rod) RestoreIvs(aux bool) (err error) {
	if aux {
		for i, s := range o.States {
			s.Set(o.StatesAux[i])
		}
		return
	}
	for i, s := range o.States {
		s.Set(o.StatesBkp[i])
	}
	return
}

// OutIpCoords returns the coordinates of integration points
func (o *Rod) OutIpCoords() (C [][]float64) {
	C = make([][]float64, len(o.IpsElem))
	for idx, ip := range o.IpsElem {
		C[idx] = o.Cell.Shp.IpRealCoords(o.X, ip)
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Rod) OutIpKeys() []string {
	return []string{"sig"}
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Rod) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	nip := len(o.IpsElem)
	for idx := range o.IpsElem {
		M.Set("sig", idx, nip, o.States[idx].Sig)
	}
}

// ipvars computes current values @ integration points
func (o *Rod) ipvars(idx int, sol *ele.Solution) (err error) {

	// interpolation functions and gradients
	err = o.Cell.Shp.CalcAtIp(o.X, o.IpsElem[idx], true)
	if err != nil {
		return chk.Err("rod element %d: %v", o.Cell.Id, err)
	}

	// gravity
	for i := 0; i < o.Ndim; i++ {
		o.grav[i] = 0
	}
	if o.Gfcn != nil {
		o.grav[o.Ndim-1] = -o.Gfcn.F(sol.T, nil)
	}

	// displacements @ ip
	for i := 0; i < o.Ndim; i++ {
		o.us[i] = 0
		for m := 0; m < o.Cell.Shp.Nverts; m++ {
			o.us[i] += o.Cell.Shp.S[m] * sol.Y[o.Umap[i+m*o.Ndim]]
		}
	}
	return
}
