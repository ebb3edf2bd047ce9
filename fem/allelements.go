// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

// this file pulls in all element implementations so that their allocators
// become registered before any simulation is run

import (
	_ "github.com/mfkiwl/Amaru/ele/diffusion"
	_ "github.com/mfkiwl/Amaru/ele/solid"
)
