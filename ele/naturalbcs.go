// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/fun/dbf"

// NaturalBc holds information on natural boundary conditions such as
// distributed loads or fluxes acting on faces
type NaturalBc struct {
	Key     string   // key such as qn, qx, qy, qz, qb
	IdxFace int      // local index of face
	Fcn     dbf.T // function callback
	Extra   string   // extra information
}
