// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/mfkiwl/Amaru/mdl/diffusion"
	"github.com/mfkiwl/Amaru/mdl/solid"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds material data
type Material struct {

	// input
	Name  string   `json:"name"`  // name of material
	Type  string   `json:"type"`  // class of material; e.g. "solid", "diffusion"
	Model string   `json:"model"` // name of model; e.g. "lin-elast", "elast-rod", "m1"
	Extra string   `json:"extra"` // extra information about this material
	Prms  dbf.Params `json:"prms"`  // all model parameters for this material

	// derived
	Sld solid.Model     // pointer to actual solid model
	Dif diffusion.Model // pointer to actual diffusion model
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Materials MatsData `json:"materials"` // all materials

	// derived
	Solids     map[string]*Material // subset with materials/models: solids
	Diffusions map[string]*Material // subset with materials/models: diffusion
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string, ndim int, pstress bool) (mdb *MatDb, err error) {

	// new database
	mdb = new(MatDb)

	// read file
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, chk.Err("cannot read materials file %q:\n%v", filepath.Join(dir, fn), err)
	}

	// decode
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot unmarshal materials file %q:\n%v", fn, err)
	}

	// subsets
	mdb.Solids = make(map[string]*Material)
	mdb.Diffusions = make(map[string]*Material)
	for _, m := range mdb.Materials {
		switch m.Type {
		case "solid":
			mdb.Solids[m.Name] = m
		case "diffusion":
			mdb.Diffusions[m.Name] = m
		default:
			return nil, chk.Err("material type %q is incorrect; options are \"solid\" and \"diffusion\"", m.Type)
		}
	}

	// alloc/init: solids
	for _, m := range mdb.Solids {
		m.Sld, err = solid.New(m.Model)
		if err != nil {
			return nil, err
		}
		err = m.Sld.Init(ndim, pstress, m.Prms)
		if err != nil {
			return nil, err
		}
	}

	// alloc/init: diffusion
	for _, m := range mdb.Diffusions {
		m.Dif, err = diffusion.New(m.Model)
		if err != nil {
			return nil, err
		}
		err = m.Dif.Init(ndim, m.Prms)
		if err != nil {
			return nil, err
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String prints one material
func (o *Material) String() string {
	return io.Sf("    {\"name\":%q, \"type\":%q, \"model\":%q, \"prms\":%v }", o.Name, o.Type, o.Model, o.Prms)
}

// String prints materials
func (o MatsData) String() string {
	l := "  \"materials\" : [\n"
	for i, m := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", m)
	}
	l += "\n  ]"
	return l
}

// String outputs all materials
func (o MatDb) String() string {
	return io.Sf("{\n%v\n}", o.Materials)
}
