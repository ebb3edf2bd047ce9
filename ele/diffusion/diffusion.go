// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diffusion implements an element to solve the diffusion equation
package diffusion

import (
	"math"

	"github.com/mfkiwl/Amaru/ele"
	"github.com/mfkiwl/Amaru/inp"
	"github.com/mfkiwl/Amaru/mdl/diffusion"
	"github.com/mfkiwl/Amaru/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/la"
)

// Diffusion implements an element to solve the diffusion equation
//
//   rho * du/dt = div(kten(u) * grad(u)) + s
//
// where u is the primary variable, e.g. temperature
type Diffusion struct {

	// basic data
	Cell *inp.Cell   // the cell structure
	X    [][]float64 // [ndim][nnode] matrix of nodal coordinates
	Ndim int         // space dimension
	Nu   int         // total number of unknowns == number of vertices

	// integration points
	IpsElem []shp.Ipoint // [nip] integration points of element
	IpsFace []shp.Ipoint // [nipf] integration points corresponding to faces

	// material model
	Mdl diffusion.Model // model

	// problem variables
	Umap []int // assembly map (location array/element equations)

	// source term
	Sfcn dbf.T // source function; nil means no source

	// natural boundary conditions
	NatBcs []*ele.NaturalBc

	// scratchpad. computed @ each ip
	Uval  float64     // u @ ip
	Gradu []float64   // [ndim] gradient of u @ ip
	Wvec  []float64   // [ndim] conductive flux @ ip
	kten  [][]float64 // [ndim][ndim] conductivity tensor @ ip
	tmp   []float64   // [ndim] auxiliary vector
	K     [][]float64 // [nu][nu] element Jacobian matrix

	// local starred variables
	psi []float64 // [nip] psi* interpolated to ips
}

// register element
func init() {

	// information allocator
	ele.SetInfoFunc("diffusion", func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding) *ele.Info {
		var info ele.Info
		info.Dofs = make([][]string, cell.Shp.Nverts)
		for m := 0; m < cell.Shp.Nverts; m++ {
			info.Dofs[m] = []string{"u"}
		}
		info.Y2F = map[string]string{"u": "q"}
		info.T1vars = []string{"u"}
		return &info
	})

	// element allocator
	ele.SetAllocator("diffusion", func(sim *inp.Simulation, cell *inp.Cell, bnd *inp.Binding, x [][]float64) ele.Element {

		// basic data
		var o Diffusion
		o.Cell = cell
		o.X = x
		o.Ndim = sim.Ndim
		o.Nu = cell.Shp.Nverts

		// integration points
		var err error
		o.IpsElem, err = shp.GetIps(cell.Shp.Type, bnd.Nip)
		if err != nil {
			chk.Panic("cannot allocate integration points of diffusion element with nip=%d:\n%v", bnd.Nip, err)
		}
		o.IpsFace, err = shp.GetIps(cell.Shp.FaceType, bnd.Nipf)
		if err != nil {
			chk.Panic("cannot allocate integration points of face with nipf=%d:\n%v", bnd.Nipf, err)
		}

		// model
		mat := sim.MatParams.Get(bnd.Mat)
		if mat == nil {
			chk.Panic("cannot find material %q for diffusion element {tag=%d, id=%d}", bnd.Mat, cell.Tag, cell.Id)
		}
		o.Mdl = mat.Dif

		// scratchpad
		nip := len(o.IpsElem)
		o.Gradu = make([]float64, o.Ndim)
		o.Wvec = make([]float64, o.Ndim)
		o.kten = la.MatAlloc(o.Ndim, o.Ndim)
		o.tmp = make([]float64, o.Ndim)
		o.K = la.MatAlloc(o.Nu, o.Nu)
		o.psi = make([]float64, nip)

		// natural boundary conditions
		for _, fc := range cell.FaceBcs {
			o.NatBcs = append(o.NatBcs, &ele.NaturalBc{Key: fc.Cond, IdxFace: fc.FaceId, Fcn: fc.Func, Extra: fc.Extra})
		}
		return &o
	})
}

// Id returns the cell Id
func (o *Diffusion) Id() int { return o.Cell.Id }

// Ipoints returns the integration points used by this element
func (o *Diffusion) Ipoints() []shp.Ipoint { return o.IpsElem }

// SetEqs sets equations
func (o *Diffusion) SetEqs(eqs [][]int) (err error) {
	o.Umap = make([]int, o.Nu)
	for m := 0; m < o.Nu; m++ {
		o.Umap[m] = eqs[m][0]
	}
	return
}

// SetEleConds sets element conditions
func (o *Diffusion) SetEleConds(key string, f dbf.T, extra string) (err error) {
	if key == "s" {
		o.Sfcn = f
	}
	return
}

// InterpStarVars interpolates star variables to integration points
func (o *Diffusion) InterpStarVars(sol *ele.Solution) (err error) {
	for idx, ip := range o.IpsElem {
		err = o.Cell.Shp.CalcAtIp(o.X, ip, true)
		if err != nil {
			return
		}
		o.psi[idx] = 0
		for m := 0; m < o.Nu; m++ {
			o.psi[idx] += o.Cell.Shp.S[m] * sol.Psi[o.Umap[m]]
		}
	}
	return
}

// AddToRhs adds -R to global residual vector fb
func (o *Diffusion) AddToRhs(fb []float64, sol *ele.Solution) (err error) {

	// for each integration point
	dc := sol.DynCfs
	rho := o.Mdl.GetRho()
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and variables @ ip
		err = o.ipvars(idx, sol)
		if err != nil {
			return
		}
		coef := o.ipCoef(ip, sol)
		S := o.Cell.Shp.S
		G := o.Cell.Shp.G

		// source term
		sval := 0.0
		if o.Sfcn != nil {
			sval = o.Sfcn.F(sol.T, nil)
		}

		// transient term
		dudt := 0.0
		if !sol.Steady {
			dudt = dc.B1*o.Uval - o.psi[idx]
		}

		// add to fb
		for m := 0; m < o.Nu; m++ {
			r := o.Umap[m]
			fb[r] -= coef * S[m] * (rho*dudt - sval)
			for i := 0; i < o.Ndim; i++ {
				fb[r] += coef * G[m][i] * o.Wvec[i]
			}
		}
	}

	// natural boundary conditions
	return o.addNatBcsToRhs(fb, sol)
}

// AddToKb adds element K to global Jacobian matrix Kb
func (o *Diffusion) AddToKb(Kb *la.Triplet, sol *ele.Solution, firstIt bool) (err error) {

	// zero K matrix
	la.MatFill(o.K, 0)

	// for each integration point
	dc := sol.DynCfs
	rho := o.Mdl.GetRho()
	kcte := o.Mdl.GetKcte()
	for idx, ip := range o.IpsElem {

		// interpolation functions, gradients and variables @ ip
		err = o.ipvars(idx, sol)
		if err != nil {
			return
		}
		coef := o.ipCoef(ip, sol)
		S := o.Cell.Shp.S
		G := o.Cell.Shp.G

		// conductivity and derivative @ current u
		kval := o.Mdl.Kval(o.Uval)
		dkdu := o.Mdl.DkDu(o.Uval)

		// add to K
		for n := 0; n < o.Nu; n++ {
			for j := 0; j < o.Ndim; j++ {
				o.tmp[j] = S[n]*dkdu*o.Gradu[j] + kval*G[n][j]
			}
			for m := 0; m < o.Nu; m++ {
				if !sol.Steady {
					o.K[m][n] += coef * S[m] * S[n] * dc.B1 * rho
				}
				for i := 0; i < o.Ndim; i++ {
					for j := 0; j < o.Ndim; j++ {
						o.K[m][n] += coef * G[m][i] * kcte[i][j] * o.tmp[j]
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

// OutIpCoords returns the coordinates of integration points
func (o *Diffusion) OutIpCoords() (C [][]float64) {
	C = make([][]float64, len(o.IpsElem))
	for idx, ip := range o.IpsElem {
		C[idx] = o.Cell.Shp.IpRealCoords(o.X, ip)
	}
	return
}

// OutIpKeys returns the integration points' keys
func (o *Diffusion) OutIpKeys() []string {
	if o.Ndim == 3 {
		return []string{"wx", "wy", "wz"}
	}
	return []string{"wx", "wy"}
}

// OutIpVals returns the integration points' values corresponding to keys
func (o *Diffusion) OutIpVals(M *ele.IpsMap, sol *ele.Solution) {
	keys := o.OutIpKeys()
	nip := len(o.IpsElem)
	for idx := range o.IpsElem {
		err := o.ipvars(idx, sol)
		if err != nil {
			return
		}
		for i, key := range keys {
			M.Set(key, idx, nip, o.Wvec[i])
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////////////////////////////

// ipvars computes current values @ integration points. idx == index of integration point
func (o *Diffusion) ipvars(idx int, sol *ele.Solution) (err error) {

	// interpolation functions and gradients
	err = o.Cell.Shp.CalcAtIp(o.X, o.IpsElem[idx], true)
	if err != nil {
		return
	}
	if o.Cell.Shp.J < 0 {
		return chk.Err("diffusion element %d has negative Jacobian = %g @ ip %d", o.Cell.Id, o.Cell.Shp.J, idx)
	}

	// u and its gradient @ ip
	o.Uval = 0
	for i := 0; i < o.Ndim; i++ {
		o.Gradu[i] = 0
	}
	for m := 0; m < o.Nu; m++ {
		r := o.Umap[m]
		o.Uval += o.Cell.Shp.S[m] * sol.Y[r]
		for i := 0; i < o.Ndim; i++ {
			o.Gradu[i] += o.Cell.Shp.G[m][i] * sol.Y[r]
		}
	}

	// conductive flux: Wvec = -kten * Gradu
	o.Mdl.Kten(o.kten, o.Uval)
	for i := 0; i < o.Ndim; i++ {
		o.Wvec[i] = 0
		for j := 0; j < o.Ndim; j++ {
			o.Wvec[i] -= o.kten[i][j] * o.Gradu[j]
		}
	}
	return
}

// ipCoef returns the integration coefficient
func (o *Diffusion) ipCoef(ip shp.Ipoint, sol *ele.Solution) (coef float64) {
	coef = ip[3] * o.Cell.Shp.J
	if sol.Axisym {
		coef *= 2.0 * math.Pi * o.Cell.Shp.AxisymGetRadius(o.X)
	}
	return coef
}

// addNatBcsToRhs adds natural boundary conditions to fb
func (o *Diffusion) addNatBcsToRhs(fb []float64, sol *ele.Solution) (err error) {
	for _, nbc := range o.NatBcs {

		// specified flux
		qb := nbc.Fcn.F(sol.T, nil)

		// loop over ips of face
		for _, ipf := range o.IpsFace {

			// interpolation functions and gradients @ face
			iface := nbc.IdxFace
			err = o.Cell.Shp.CalcAtFaceIp(o.X, ipf, iface)
			if err != nil {
				return
			}
			Sf := o.Cell.Shp.Sf
			Jf := la.VecNorm(o.Cell.Shp.Fnvec)
			coef := ipf[3] * Jf
			if sol.Axisym {
				coef *= 2.0 * math.Pi * o.Cell.Shp.AxisymGetRadiusF(o.X, iface)
			}

			// select natural boundary condition type
			switch nbc.Key {

			// flux prescribed normal to boundary
			case "qb":
				for j, m := range o.Cell.Shp.FaceLocalVerts[iface] {
					fb[o.Umap[m]] -= coef * qb * Sf[j]
				}

			default:
				return chk.Err("boundary condition %q is not available for diffusion elements", nbc.Key)
			}
		}
	}
	return
}
