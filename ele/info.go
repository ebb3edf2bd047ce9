// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Info holds all information required to set a simulation stage
type Info struct {

	// essential
	Dofs [][]string        // solution variables PER NODE. ex for 2 nodes: [["ux", "uy"], ["ux", "uy"]]
	Y2F  map[string]string // maps "y" keys to "f" keys. ex: "ux" => "fx", "u" => "q"

	// t1 and t2 variables (time-derivatives of first and second order)
	T1vars []string // e.g. "u" for diffusion
	T2vars []string // e.g. "ux", "uy" for dynamics
}
