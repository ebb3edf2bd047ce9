// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mfkiwl/Amaru/ele"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Results holds the data saved at one output time
type Results struct {
	T        float64              // time
	NodeData map[string][]float64 // key => nodal values [nverts]
	ElemData map[string][]float64 // key => element mean values [ncells]
}

// UpdateOutputData recomputes NodeData and ElemData from the current solution.
// Primary variables are copied from the solution vector; secondary variables
// are recovered at nodes and averaged per element.
func (o *Domain) UpdateOutputData() (err error) {

	// reset
	nverts := len(o.Msh.Verts)
	ncells := len(o.Msh.Cells)
	o.NodeData = make(map[string][]float64)
	o.ElemData = make(map[string][]float64)

	// primary variables at nodes
	for _, nod := range o.Nodes {
		for _, dof := range nod.Dofs {
			if _, ok := o.NodeData[dof.Key]; !ok {
				o.NodeData[dof.Key] = make([]float64, nverts)
			}
			o.NodeData[dof.Key][nod.Vert.Id] = o.Sol.Y[dof.Eq]
		}
	}

	// element means of integration point values
	for _, e := range o.ElemOutIps {
		nip := len(e.OutIpCoords())
		M := ele.NewIpsMap()
		e.OutIpVals(M, o.Sol)
		for _, key := range e.OutIpKeys() {
			if _, ok := o.ElemData[key]; !ok {
				o.ElemData[key] = make([]float64, ncells)
			}
			sum := 0.0
			for idx := 0; idx < nip; idx++ {
				sum += M.Get(key, idx)
			}
			o.ElemData[key][e.Id()] = sum / float64(nip)
		}
	}

	// nodal recovery of secondary variables
	err = o.patchRecovery()
	if err != nil {
		return
	}
	return o.localRecovery()
}

// Out saves the results corresponding to output time index tidx
func (o *Domain) Out(tidx int) (err error) {
	err = o.UpdateOutputData()
	if err != nil {
		return
	}
	res := Results{T: o.Sol.T, NodeData: o.NodeData, ElemData: o.ElemData}
	b, err := json.MarshalIndent(&res, "", "  ")
	if err != nil {
		return chk.Err("cannot marshal results: %v", err)
	}
	fn := resPath(o.Sim.DirOut, o.Sim.Key, tidx)
	err = os.WriteFile(fn, b, 0644)
	if err != nil {
		return chk.Err("cannot save results to %q: %v", fn, err)
	}
	return
}

// ReadResults reads one results file written by Out
func ReadResults(dirout, fnkey string, tidx int) (*Results, error) {
	fn := resPath(dirout, fnkey, tidx)
	b, err := io.ReadFile(fn)
	if err != nil {
		return nil, chk.Err("cannot read results from %q: %v", fn, err)
	}
	var res Results
	err = json.Unmarshal(b, &res)
	if err != nil {
		return nil, chk.Err("cannot unmarshal results from %q: %v", fn, err)
	}
	return &res, nil
}

func resPath(dirout, fnkey string, tidx int) string {
	return filepath.Join(dirout, io.Sf("%s_out_%04d.json", fnkey, tidx))
}
