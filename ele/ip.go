// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Ip holds the identity and real coordinates of one integration point
type Ip struct {
	Id  int       // global id among all integration points of the domain
	Eid int       // id of the element holding this point
	X   []float64 // real coordinates [ndim]
}
