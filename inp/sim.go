// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from .sim, .msh and .mat JSON files
package inp

import (
	"encoding/json"
	goio "io"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Data holds global data for simulations
type Data struct {

	// global information
	Desc    string `json:"desc"`    // description of simulation
	Mshfile string `json:"mshfile"` // mesh file path
	Matfile string `json:"matfile"` // materials file path
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/amaru

	// problem definition and options
	Steady  bool `json:"steady"`  // steady simulation
	Axisym  bool `json:"axisym"`  // axisymmetric
	Pstress bool `json:"pstress"` // plane-stress
	Debug   bool `json:"debug"`   // activate debugging
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "umfpack" or "mumps"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Timing    bool   `json:"timing"`    // show timing statistics
	Ordering  string `json:"ordering"`  // ordering scheme
	Scaling   string `json:"scaling"`   // scaling scheme
}

// SolverData holds FEM solver data
type SolverData struct {

	// nonlinear solver
	Type    string  `json:"type"`    // nonlinear solver type: {imp, lin} => implicit, linear
	NmaxIt  int     `json:"nmaxit"`  // number of max iterations
	Atol    float64 `json:"atol"`    // absolute tolerance
	Rtol    float64 `json:"rtol"`    // relative tolerance
	FbTol   float64 `json:"fbtol"`   // tolerance for convergence on fb
	FbMin   float64 `json:"fbmin"`   // minimum value of fb
	DvgCtrl bool    `json:"dvgctrl"` // use divergence control
	NdvgMax int     `json:"ndvgmax"` // max number of continued divergence
	CteTg   bool    `json:"ctetg"`   // use constant tangent (modified Newton) during iterations
	ShowR   bool    `json:"showr"`   // show residual

	// time increments
	DtMin  float64 `json:"dtmin"`  // minimum value of Dt when stepping down after divergence
	MdtMax float64 `json:"mdtmax"` // maximum multiplier to grow Dt after fast convergence
	NitFst int     `json:"nitfst"` // max number of iterations qualifying convergence as fast

	// transient analyses
	Theta float64 `json:"theta"` // theta-method parameter

	// dynamics
	Theta1 float64 `json:"theta1"` // Newmark's method parameter
	Theta2 float64 `json:"theta2"` // Newmark's method parameter

	// constants
	Eps float64 `json:"eps"` // smallest number satisfying 1.0 + eps > 1.0

	// derived
	Itol float64 // iterations tolerance
}

// Binding attaches a material to a set of cells, either by cell tags or by a
// coordinate box enclosing cell centroids. Bindings are applied in order and
// a cell matched by more than one binding keeps the last match.
type Binding struct {
	Tags  []int     `json:"tags"`  // cell tags to bind; empty => use Box
	Box   []float64 `json:"box"`   // centroid selector: [xmin,xmax, ymin,ymax(, zmin,zmax)]
	Mat   string    `json:"mat"`   // material name
	Nip   int       `json:"nip"`   // number of integration points; 0 => use default
	Nipf  int       `json:"nipf"`  // number of integration points on face; 0 => use default
	Extra string    `json:"extra"` // extra flags (in keycode format). ex: "!thick:0.2"
}

// FaceBc holds face boundary condition
type FaceBc struct {
	Tag   int      `json:"tag"`   // tag of face
	Keys  []string `json:"keys"`  // key indicating type of bcs. ex: qn, qx, qy, qz, qb, ux, uy, uz, u
	Funcs []string `json:"funcs"` // name of function. ex: zero, load, myfunction1
	Extra string   `json:"extra"` // extra information
}

// NodeBc holds node boundary condition
type NodeBc struct {
	Tag   int      `json:"tag"`   // tag of node
	Keys  []string `json:"keys"`  // key indicating type of bcs. ex: ux, uy, uz, u, fx, fy, fz, incsup
	Funcs []string `json:"funcs"` // name of function. ex: zero, load, myfunction1
	Extra string   `json:"extra"` // extra information. ex: '!alp:30'
}

// EleCond holds element condition
type EleCond struct {
	Tag   int      `json:"tag"`   // tag of cell/element
	Keys  []string `json:"keys"`  // key indicating type of condition. ex: "g" (gravity), "qn" for rods, "s" (source)
	Funcs []string `json:"funcs"` // name of function. ex: grav, none
	Extra string   `json:"extra"` // extra information
}

// TimeControl holds data for defining the stage time stepping
type TimeControl struct {
	Tf    float64 `json:"tf"`    // final time
	Dt    float64 `json:"dt"`    // time step size (if constant)
	DtOut float64 `json:"dtout"` // time step size for output

	// derived
	DtFunc  dbf.T // time step function
	DtoFunc dbf.T // output time step function
}

// Stage holds stage data
type Stage struct {

	// main
	Desc string `json:"desc"` // description of simulation stage. ex: activation of top layer
	Skip bool   `json:"skip"` // do not run stage

	// conditions
	EleConds []*EleCond `json:"eleconds"` // element conditions. ex: gravity or distributed loads
	FaceBcs  []*FaceBc  `json:"facebcs"`  // face boundary conditions
	NodeBcs  []*NodeBc  `json:"nodebcs"`  // node boundary conditions

	// timecontrol
	Control TimeControl `json:"control"` // time control
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data       `json:"data"`      // global simulation data
	Functions FuncsData  `json:"functions"` // all boundary condition functions
	Bindings  []*Binding `json:"bindings"`  // material-to-cell bindings
	LinSol    LinSolData `json:"linsol"`    // linear solver data
	Solver    SolverData `json:"solver"`    // FEM solver data
	Stages    []*Stage   `json:"stages"`    // all stages

	// derived
	DirOut    string // directory to save results
	Key       string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	MatParams *MatDb  // materials' parameters
	Msh       *Mesh   // the mesh
	Ndim      int     // space dimension
}

// ReadSim reads all simulation data from a .sim JSON file
//  Note: returns nil on errors
func ReadSim(simfilepath, alias string, erasefiles bool) *Simulation {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// input directory and filename key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	dir = os.ExpandEnv(dir)
	fnkey := io.FnKey(fn)
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/amaru/" + fnkey
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s*", o.DirOut, fnkey))
	}

	// set solver constants
	o.Solver.PostProcess()

	// read mesh
	o.Msh, err = ReadMsh(dir, o.Data.Mshfile)
	if err != nil {
		chk.Panic("ReadSim: cannot read mesh file:\n%v", err)
	}
	o.Ndim = o.Msh.Ndim

	// read materials database
	o.MatParams, err = ReadMat(dir, o.Data.Matfile, o.Ndim, o.Data.Pstress)
	if err != nil {
		chk.Panic("ReadSim: cannot read materials database:\n%v", err)
	}

	// check bindings
	if len(o.Bindings) < 1 {
		chk.Panic("ReadSim: at least one binding must be given")
	}
	for _, b := range o.Bindings {
		if o.MatParams.Get(b.Mat) == nil {
			chk.Panic("ReadSim: cannot find material %q required by binding", b.Mat)
		}
		if len(b.Tags) == 0 && len(b.Box) == 0 {
			chk.Panic("ReadSim: binding with material %q must select cells by tags or box", b.Mat)
		}
		if n := len(b.Box); n != 0 && n != 2*o.Ndim {
			chk.Panic("ReadSim: binding box must have %d values. %d is incorrect", 2*o.Ndim, n)
		}
	}

	// for all stages
	for _, stg := range o.Stages {

		// fix Tf
		if stg.Control.Tf < 1e-14 {
			stg.Control.Tf = 1
		}

		// fix Dt
		if stg.Control.Dt < 1e-14 {
			stg.Control.Dt = 1
		}
		stg.Control.DtFunc = &dbf.Cte{C: stg.Control.Dt}

		// fix DtOut
		if stg.Control.DtOut < 1e-14 {
			stg.Control.DtOut = stg.Control.Dt
			stg.Control.DtoFunc = stg.Control.DtFunc
		} else {
			if stg.Control.DtOut < stg.Control.Dt {
				stg.Control.DtOut = stg.Control.Dt
			}
			stg.Control.DtoFunc = &dbf.Cte{C: stg.Control.DtOut}
		}
	}

	// results
	return &o
}

// CellBinding returns the last binding matching a cell
//  Note: returns nil if no binding matches the cell
func (o *Simulation) CellBinding(c *Cell) (bnd *Binding) {
	for _, b := range o.Bindings {
		if b.matches(c, o.Msh) {
			bnd = b
		}
	}
	return
}

// matches tells whether a binding selects a cell, either by tag or by centroid box
func (o *Binding) matches(c *Cell, msh *Mesh) bool {
	for _, tag := range o.Tags {
		if c.Tag == tag {
			return true
		}
	}
	if len(o.Box) == 0 {
		return false
	}
	cen := make([]float64, msh.Ndim)
	for _, vid := range c.Verts {
		for j := 0; j < msh.Ndim; j++ {
			cen[j] += msh.Verts[vid].C[j] / float64(len(c.Verts))
		}
	}
	for j := 0; j < msh.Ndim; j++ {
		if cen[j] < o.Box[2*j] || cen[j] > o.Box[2*j+1] {
			return false
		}
	}
	return true
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// GetEleCond returns element condition structure by giving an elem tag
//  Note: returns nil if not found
func (o Stage) GetEleCond(elemtag int) *EleCond {
	for _, ec := range o.EleConds {
		if elemtag == ec.Tag {
			return ec
		}
	}
	return nil
}

// GetNodeBc returns node boundary condition structure by giving a node tag
//  Note: returns nil if not found
func (o Stage) GetNodeBc(nodetag int) *NodeBc {
	for _, nbc := range o.NodeBcs {
		if nodetag == nbc.Tag {
			return nbc
		}
	}
	return nil
}

// GetFaceBc returns face boundary condition structure by giving a face tag
//  Note: returns nil if not found
func (o Stage) GetFaceBc(facetag int) *FaceBc {
	for _, fbc := range o.FaceBcs {
		if facetag == fbc.Tag {
			return fbc
		}
	}
	return nil
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "umfpack"
	o.Ordering = "amf"
	o.Scaling = "rcit"
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {

	// nonlinear solver
	o.Type = "imp"
	o.NmaxIt = 20
	o.Atol = 1e-6
	o.Rtol = 1e-6
	o.FbTol = 1e-8
	o.FbMin = 1e-14
	o.NdvgMax = 20

	// time increments
	o.DtMin = 1e-8
	o.MdtMax = 10.0
	o.NitFst = 4

	// transient analyses
	o.Theta = 0.5

	// dynamics
	o.Theta1 = 0.5
	o.Theta2 = 0.5

	// constants
	o.Eps = 1e-16
}

// PostProcess performs a post-processing of the just read json file
func (o *SolverData) PostProcess() {
	o.Itol = utl.Max(10.0*o.Eps/o.Rtol, utl.Min(0.01, math.Sqrt(o.Rtol)))
}
