// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/mfkiwl/Amaru/inp"

	"github.com/cpmech/gosl/io"
)

// Dof holds information about a degree-of-freedom == solution variable
type Dof struct {
	Key string // primary variable key; e.g. "ux"
	Eq  int    // equation number
}

// String returns the string representation of this Dof
func (o *Dof) String() string {
	return io.Sf("{%q: %d}", o.Key, o.Eq)
}

// Node holds node dofs and pointer to mesh vertex
type Node struct {
	Dofs []*Dof    // degrees-of-freedom == solution variables
	Vert *inp.Vert // pointer to mesh vertex
}

// NewNode returns a new node
func NewNode(v *inp.Vert) *Node {
	return &Node{Vert: v}
}

// AddDofAndEq adds a new dof to the node and returns the updated equation number.
// The addition is skipped if the dof key exists already.
func (o *Node) AddDofAndEq(key string, eq int) int {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return eq
		}
	}
	o.Dofs = append(o.Dofs, &Dof{key, eq})
	return eq + 1
}

// GetDof returns the dof corresponding to given key or nil if not found
func (o *Node) GetDof(key string) *Dof {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return dof
		}
	}
	return nil
}

// GetEq returns the equation number corresponding to given key or -1 if not found
func (o *Node) GetEq(key string) int {
	for _, dof := range o.Dofs {
		if dof.Key == key {
			return dof.Eq
		}
	}
	return -1
}

// String returns the string representation of this node
func (o *Node) String() string {
	l := io.Sf("{\"vert\":%d, \"dofs\":[", o.Vert.Id)
	for i, dof := range o.Dofs {
		if i > 0 {
			l += ", "
		}
		l += dof.String()
	}
	l += "]}"
	return l
}
