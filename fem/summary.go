// Copyright 2017 The Amaru Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Summary records a summary of the outputs
type Summary struct {
	OutTimes []float64    // [nOutTimes] output times
	Resids   utl.SerialList // residuals; includes all stages
	Dirout   string       // directory where results are stored
	Fnkey    string       // filename key of simulation
}

// Save saves the summary as a JSON file
func (o *Summary) Save(dirout, fnkey string) (err error) {
	o.Dirout = dirout
	o.Fnkey = fnkey
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return chk.Err("cannot encode summary:\n%v", err)
	}
	fn := sumPath(dirout, fnkey)
	err = os.WriteFile(fn, b, 0644)
	if err != nil {
		return chk.Err("cannot save summary to %q:\n%v", fn, err)
	}
	return
}

// Read reads a summary back from disc
func (o *Summary) Read(dirout, fnkey string) (err error) {
	fn := sumPath(dirout, fnkey)
	b, err := io.ReadFile(fn)
	if err != nil {
		return chk.Err("cannot read summary file %q:\n%v", fn, err)
	}
	err = json.Unmarshal(b, o)
	if err != nil {
		return chk.Err("cannot decode summary file %q:\n%v", fn, err)
	}
	return
}

func sumPath(dirout, fnkey string) string {
	return filepath.Join(dirout, io.Sf("%s_sum.json", fnkey))
}
