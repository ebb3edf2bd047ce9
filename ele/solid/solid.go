// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements elements for the mechanical analysis of solids
package solid

import (
	"math"

	"github.com/mfkiwl/Amaru/ele"
	"github.com/mfkiwl/Amaru/inp"
	"github.com/mfkiwl/Amaru/mdl/solid"
	"github.com/mfkiwl/Amaru/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// ElemU implements the solid element for small-strain mechanical analyses
type ElemU struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // matrix of nodal coordinates [ndim][nnode]
	Ndim int         // space dimension
	Nu   int         // total number of unknowns
	Nsig int         // number of stress/strain components

	// variables for dynamics
	Rho  float64  // density
	Gfcn dbf.T // gravity function; nil means no gravity

	// integration points
	IpsElem []shp.Ipoint // [nip] integration points of element
	IpsFace []shp.Ipoint // [nipf] integration points corresponding to faces

	// material model
	Mdl solid.Small // model

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// natural boundary conditions
	NatBcs []*ele.NaturalBc

	// geometry flags
	Thick float64 // thickness (for plane-stress)

	// scratchpad. computed @ each ip
	grav []float64   // [ndim] gravity vector
	us   []float64   // [ndim] displacements @ ip
	fi   []float64   // [nu] internal forces
	B    [][]float64 // [nsig][nu] strain-displacement matrix
	D    [][]float64 // [nsig][nsig] constitutive matrix
	DB   [][]float64 // [nsig][nu] D times B
	K    [][]float64 // [nu][nu] element stiffness (Jacobian) matrix
	eps  []float64   // [nsig] total strains
	deps []float64   // [nsig] strain increments

	// strains and stresses
	States    []*solid.State // [nip] states
	StatesBkp []*solid.State // [nip] backup states
	StatesAux []*solid.State // [nip] auxiliary backup states

	// local starred variables
	zs [][]float64 // [nip][ndim] zs* interpolated to ips
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("u", func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding) *ele.Info {

		// new info
		var info ele.Info

		// solution variables
		ykeys := []string{"ux", "uy"}
		if sim.Ndim == 3 {
			ykeys = []string{"ux", "uy", "uz"}
		}
		info.Dofs = make([][]string, cell.Shp.Nverts)
		for m := 0; m < cell.Shp.Nverts; m++ {
			info.Dofs[m] = ykeys
		}

		// maps
		info.Y2F = map[string]string{"ux": "fx", "uy": "fy", "uz": "fz"}

		// t2 variables
		info.T2vars = ykeys
		return &info
	})

	// element allocator
	ele.SetAllocator("u", func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding, x [][]float64) ele.Element {

		// basic data
		var o ElemU
		o.Cell = cell
		o.X = x
		o.Ndim = sim.Ndim
		o.Nu = o.Ndim * cell.Shp.Nverts
		o.Nsig = 2 * o.Ndim

		// integration points
		var err error
		o.IpsElem, err = shp.GetIps(cell.Shp.Type, bnd.Nip)
		if err != nil {
			chk.Panic("cannot allocate integration points of solid element with nip=%d:\n%v", bnd.Nip, err)
		}
		if cell.Shp.FaceType != "" {
			o.IpsFace, err = shp.GetIps(cell.Shp.FaceType, bnd.Nipf)
			if err != nil {
				chk.Panic("cannot allocate integration points of face with nipf=%d:\n%v", bnd.Nipf, err)
			}
		}

		// model
		mat := sim.MatParams.Get(bnd.Mat)
		if mat == nil {
			chk.Panic("cannot find material %q for solid element {tag=%d, id=%d}", bnd.Mat, cell.Tag, cell.Id)
		}
		var ok bool
		o.Mdl, ok = mat.Sld.(solid.Small)
		if !ok {
			chk.Panic("material %q does not implement a small-strain model", bnd.Mat)
		}
		o.Rho = mat.Sld.GetRho()

		// thickness
		o.Thick = 1.0
		if s_thick, found := io.Keycode(bnd.Extra, "thick"); found && sim.Data.Pstress {
			o.Thick = io.Atof(s_thick)
		}

		// scratchpad
		nip := len(o.IpsElem)
		o.grav = make([]float64, o.Ndim)
		o.us = make([]float64, o.Ndim)
		o.fi = make([]float64, o.Nu)
		o.B = la.MatAlloc(o.Nsig, o.Nu)
		o.D = la.MatAlloc(o.Nsig, o.Nsig)
		o.DB = la.MatAlloc(o.Nsig, o.Nu)
		o.K = la.MatAlloc(o.Nu, o.Nu)
		o.eps = make([]float64, o.Nsig)
		o.deps = make([]float64, o.Nsig)
		o.zs = la.MatAlloc(nip, o.Ndim)

		// surface loads (natural boundary conditions)
		for _, fc := range cell.FaceBcs {
			o.NatBcs = append(o.NatBcs, &ele.NaturalBc{Key: fc.Cond, IdxFace: fc.FaceId, Fcn: fc.Func, Extra: fc.Extra})
		}
		return &o
	})
}

// Id returns the cell Id
func (o *ElemU) Id() int { return o.Cell.Id }

// Ipoints returns the integration points used by this element
func (o *ElemU) Ipoints() []shp.Ipoint { return o.IpsElem }

// SetEqs sets equations
func (o *ElemU) SetEqs(eqs [][]int) (err error) {
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
func (o *ElemU) SetEleConds(key string, f dbf.T, extra string) (err error) {
	if key == "g" {
		o.Gfcn = f
	}
	return
}

// InterpStarVars interpolates star variables to integration points
func (o *ElemU) InterpStarVars(sol *ele.Solution) (err error) {
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
func (o *ElemU) AddToRhs(fb []float64, sol *ele.Solution) (err error) {

	// clear fi vector if using B matrix
	la.VecFill(o.fi, 0)

	// for each integration point
	dc := sol.DynCfs
	nverts := o.Cell.Shp.Nverts
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and variables @ ip
		err = o.ipvars(idx, sol)
		if err != nil {
			return
		}
		coef := o.ipCoef(ip, sol)
		S := o.Cell.Shp.S

		// gravity and dynamic term
		for m := 0; m < nverts; m++ {
			for i := 0; i < o.Ndim; i++ {
				r := i + m*o.Ndim
				o.fi[r] -= coef * S[m] * o.Rho * o.grav[i]
				if !sol.Steady {
					o.fi[r] += coef * S[m] * o.Rho * (dc.A1*o.us[i] - o.zs[idx][i])
				}
			}
		}

		// internal forces: fi += coef * tr(B) * sig
		la.MatTrVecMulAdd(o.fi, coef, o.B, o.States[idx].Sig)
	}

	// assemble fb = -fi
	for i, I := range o.Umap {
		fb[I] -= o.fi[i]
	}

	// external forces
	return o.addSurfloadsToRhs(fb, sol)
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *ElemU) AddToKb(Kb *la.Triplet, sol *ele.Solution, firstIt bool) (err error) {

	// zero K matrix
	la.MatFill(o.K, 0)

	// for each integration point
	dc := sol.DynCfs
	nverts := o.Cell.Shp.Nverts
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and variables @ ip
		err = o.ipvars(idx, sol)
		if err != nil {
			return
		}
		coef := o.ipCoef(ip, sol)
		S := o.Cell.Shp.S

		// consistent tangent model matrix
		err = o.Mdl.CalcD(o.D, o.States[idx], firstIt)
		if err != nil {
			return
		}

		// add contribution to consistent tangent matrix
		la.MatMul(o.DB, 1, o.D, o.B)
		la.MatTrMulAdd3(o.K, coef, o.B, o.DB)

		// dynamic term
		if !sol.Steady {
			for m := 0; m < nverts; m++ {
				for n := 0; n < nverts; n++ {
					for i := 0; i < o.Ndim; i++ {
						r, c := i+m*o.Ndim, i+n*o.Ndim
						o.K[r][c] += coef * S[m] * S[n] * o.Rho * dc.A1
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
func (o *ElemU) Update(sol *ele.Solution) (err error) {
	for idx, ip := range o.IpsElem {

		// interpolation functions and gradients
		err = o.Cell.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}

		// strains and increments
		radius := 1.0
		if sol.Axisym {
			radius = o.Cell.Shp.AxisymGetRadius(o.X)
		}
		Bmatrix(o.B, o.Ndim, o.Cell.Shp.Nverts, o.Cell.Shp.G, radius, o.Cell.Shp.S, sol.Axisym)
		StrainsAndInc(o.eps, o.deps, o.Nsig, o.Nu, o.B, sol.Y, sol.DY, o.Umap)

		// call model update => update stresses
		err = o.Mdl.Update(o.States[idx], o.eps, o.deps, o.Cell.Id, idx)
		if err != nil {
			return chk.Err("update failed (eid=%d, ip=%d):\n%v", o.Cell.Id, idx, err)
		}
	}
	return
}

// SetIniIvs sets initial ivs for given values in sol and ivs map
func (o *ElemU) SetIniIvs(sol *ele.Solution, ivs map[string][]float64) (err error) {
	nip := len(o.IpsElem)
	o.States = make([]*solid.State, nip)
	o.StatesBkp = make([]*solid.State, nip)
	o.StatesAux = make([]*solid.State, nip)
	sig := make([]float64, o.Nsig)
	for i := 0; i < nip; i++ {
		if len(ivs) > 0 {
			Ivs2sigmas(sig, i, ivs)
		}
		o.States[i], err = o.Mdl.InitIntVars(sig)
		if err != nil {
			return
		}
		o.StatesBkp[i] = o.States[i].GetCopy()
		o.StatesAux[i] = o.States[i].GetCopy()
	}
	return
}

// BackupIvs creates copy of internal variables
func (o *ElemU) BackupIvs(aux bool) (err error) {
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
func (o *ElemU) RestoreIvs(aux bool) (err error) {
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
func (o *ElemU) OutIpCoords() (C [][]float64) {
	C = make([][]float64, len(o.IpsElem))
	for idx, ip := range o.IpsElem {
		C[idx] = o.Cell.Shp.IpRealCoords(o.X, ip)
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *ElemU) OutIpKeys() []string {
	return StressKeys(o.Ndim)
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *ElemU) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	keys := StressKeys(o.Ndim)
	nip := len(o.IpsElem)
	for idx := range o.IpsElem {
		for i, key := range keys {
			M.Set(key, idx, nip, o.States[idx].Sig[i])
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// ipvars computes current values @ integration points. idx == index of integration point
func (o *ElemU) ipvars(idx int, sol *ele.Solution) (err error) {

	// interpolation functions and gradients
	err = o.Cell.Shp.CalcAtIp(o.X, o.IpsElem[idx], true)
	if err != nil {
		return
	}
	if o.Cell.Shp.J < 0 {
		return chk.Err("solid element %d has negative Jacobian = %g @ ip %d", o.Cell.Id, o.Cell.Shp.J, idx)
	}

	// strain-displacement matrix
	radius := 1.0
	if sol.Axisym {
		radius = o.Cell.Shp.AxisymGetRadius(o.X)
	}
	Bmatrix(o.B, o.Ndim, o.Cell.Shp.Nverts, o.Cell.Shp.G, radius, o.Cell.Shp.S, sol.Axisym)

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

// ipCoef returns the integration coefficient: weight times Jacobian, including
// the thickness in plane-stress and the full circumference in axisymmetric analyses
func (o *ElemU) ipCoef(ip shp.Ipoint, sol *ele.Solution) (coef float64) {
	coef = ip[3] * o.Cell.Shp.J * o.Thick
	if sol.Axisym {
		coef *= 2.0 * math.Pi * o.Cell.Shp.AxisymGetRadius(o.X)
	}
	return coef
}

// addSurfloadsToRhs adds surface loads to fb
func (o *ElemU) addSurfloadsToRhs(fb []float64, sol *ele.Solution) (err error) {
	for _, nbc := range o.NatBcs {

		// function evaluation
		qv := nbc.Fcn.F(sol.T, nil)

		// loop over ips of face
		for _, ipf := range o.IpsFace {

			// interpolation functions and gradients @ face
			iface := nbc.IdxFace
			err = o.Cell.Shp.CalcAtFaceIp(o.X, ipf, iface)
			if err != nil {
				return
			}
			Sf := o.Cell.Shp.Sf
			nvec := o.Cell.Shp.Fnvec
			coef := ipf[3] * o.Thick
			if sol.Axisym {
				coef *= 2.0 * math.Pi * o.Cell.Shp.AxisymGetRadiusF(o.X, iface)
			}

			// select natural boundary condition type
			switch nbc.Key {

			// distributed load normal to boundary
			case "qn":
				for j, m := range o.Cell.Shp.FaceLocalVerts[iface] {
					for i := 0; i < o.Ndim; i++ {
						r := o.Umap[i+m*o.Ndim]
						fb[r] += coef * qv * Sf[j] * nvec[i]
					}
				}

			// distributed load along x, y or z
			case "qx", "qy", "qz":
				i := int(nbc.Key[1] - 'x')
				Jf := la.VecNorm(nvec)
				for j, m := range o.Cell.Shp.FaceLocalVerts[iface] {
					r := o.Umap[i+m*o.Ndim]
					fb[r] += coef * Jf * qv * Sf[j]
				}

			default:
				return chk.Err("boundary condition %q is not available for solid elements", nbc.Key)
			}
		}
	}
	return
}
