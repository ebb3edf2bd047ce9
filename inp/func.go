// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// FuncData holds function definition
type FuncData struct {
	Name string   `json:"name"` // name of function. ex: zero, load, myfunction1
	Type string   `json:"type"` // type of function. ex: cte, lin, rmp
	Prms dbf.Params `json:"prms"` // parameters
}

// FuncsData holds all functions from the input file
type FuncsData []*FuncData

// Get returns function by name
//  Note: returns nil if not found
func (o FuncsData) Get(name string) dbf.T {
	if name == "zero" || name == "none" {
		return &dbf.Cte{}
	}
	for _, f := range o {
		if f.Name == name {
			fcn, err := dbf.New(f.Type, f.Prms)
			if err != nil {
				chk.Panic("cannot create function named %q:\n%v", name, err)
			}
			return fcn
		}
	}
	return nil
}

// String prints one function
func (o FuncData) String() string {
	return io.Sf("    {\"name\":%q, \"type\":%q, \"prms\":%v }", o.Name, o.Type, o.Prms)
}

// String prints functions
func (o FuncsData) String() string {
	if len(o) == 0 {
		return "  \"functions\" : []"
	}
	l := "  \"functions\" : [\n"
	for i, f := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", f)
	}
	l += "\n  ]"
	return l
}
