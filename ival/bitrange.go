// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ival provides the value-domain primitives used by the backward
// slicer: half-open bit ranges and strided integer intervals.
package ival

import "fmt"

// BitRange is a half-open interval of bit positions [Begin, End) indicating
// which bits of a storage location are live.
//
// The data model calls for 0 <= begin < end <= 64, but the slicer also
// needs a degenerate zero-width range to mark a boolean condition context
// (bit_range(0,0)), so End == Begin is accepted here.
type BitRange struct {
	Begin, End int
}

// NewBitRange builds a BitRange, panicking on an out-of-domain range.
func NewBitRange(begin, end int) BitRange {
	if begin < 0 || end < begin || end > 64 {
		panic(fmt.Sprintf("ival: invalid bit range [%d,%d)", begin, end))
	}
	return BitRange{Begin: begin, End: end}
}

// Width returns the number of bits spanned by the range.
func (r BitRange) Width() int { return r.End - r.Begin }

// Union returns the smallest range covering both r and o.
func (r BitRange) Union(o BitRange) BitRange {
	begin := r.Begin
	if o.Begin < begin {
		begin = o.Begin
	}
	end := r.End
	if o.End > end {
		end = o.End
	}
	return BitRange{Begin: begin, End: end}
}

// Equal reports structural equality.
func (r BitRange) Equal(o BitRange) bool {
	return r.Begin == o.Begin && r.End == o.End
}

// Less orders ranges by width ascending, as called for by spec: the source
// this package is modeled on compares (this.end - this.end), which is
// always zero and almost certainly a bug. We implement the documented
// intent — width ascending — rather than carry the bug forward.
func (r BitRange) Less(o BitRange) bool { return r.Width() < o.Width() }

func (r BitRange) String() string { return fmt.Sprintf("[%d,%d)", r.Begin, r.End) }
