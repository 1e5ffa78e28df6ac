// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ival

import (
	"fmt"
	"math"
)

// StridedInterval is the abstract value {low, low+stride, ..., high} used to
// bound an index value derived from a guarding comparison or bitmask.
type StridedInterval struct {
	Stride   int64
	Low      int64
	High     int64
	isEmpty  bool
	assigned bool
}

// Empty returns the distinguished empty interval.
func Empty() StridedInterval { return StridedInterval{isEmpty: true, assigned: true} }

// IsEmpty reports whether s carries no values, including the zero value
// (an interval that was never constructed by one of the constructors below).
func (s StridedInterval) IsEmpty() bool { return !s.assigned || s.isEmpty }

// FromULE builds the interval for an unsigned "<= k" comparison.
func FromULE(k int64) StridedInterval {
	return StridedInterval{Stride: 1, Low: 0, High: k, assigned: true}
}

// FromUGE builds the interval for an unsigned ">= k" comparison.
func FromUGE(k int64) StridedInterval {
	return StridedInterval{Stride: 1, Low: k, High: math.MaxInt64, assigned: true}
}

// FromMask builds the interval implied by "x & m", which is non-empty only
// when m+1 is a power of two (m is a contiguous low-bit mask).
func FromMask(m uint64) StridedInterval {
	if m != math.MaxUint64 && (m+1)&m == 0 {
		return StridedInterval{Stride: 1, Low: 0, High: int64(m), assigned: true}
	}
	return Empty()
}

// Equal reports structural equality.
func (s StridedInterval) Equal(o StridedInterval) bool {
	if s.IsEmpty() || o.IsEmpty() {
		return s.IsEmpty() == o.IsEmpty()
	}
	return s.Stride == o.Stride && s.Low == o.Low && s.High == o.High
}

// Valid reports the invariant stride >= 1, low <= high, (high-low) % stride == 0.
func (s StridedInterval) Valid() bool {
	if s.IsEmpty() {
		return true
	}
	if s.Stride < 1 || s.Low > s.High {
		return false
	}
	return (s.High-s.Low)%s.Stride == 0
}

func (s StridedInterval) String() string {
	if s.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprintf("(%d,%d,%d)", s.Stride, s.Low, s.High)
}
