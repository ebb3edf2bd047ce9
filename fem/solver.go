// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/mfkiwl/Amaru/ele"

	"github.com/cpmech/gosl/fun/dbf"
)

// DebugKb_t defines a function to debug the global Jacobian matrix
type DebugKb_t func(d *Domain, it int)

// FEsolver implements the actual solver (time loop)
type FEsolver interface {
	Run(tf float64, dtFunc, dtoFunc dbf.T, verbose bool, dbgKb DebugKb_t) (err error)
}

// solverallocators holds all available solvers
var solverallocators = make(map[string]func(dom *Domain, sum *Summary, dc *ele.DynCoefs) FEsolver)
