// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rtl models the register-transfer intermediate representation the
// backward slicer walks: expressions, statements, and the storage
// descriptors that let the slicer reason about aliasing sub-registers.
package rtl

import (
	"fmt"

	"github.com/justinhachemeister/reko/ival"
)

// Domain names an equivalence class of aliasing physical storage. Two
// identifiers share a domain when they alias the same physical register
// (e.g. AL, AH, AX and EAX all share domain "A").
type Domain string

// StorageDescriptor is the (domain, offset_bits, size_bits) triple backing
// an identifier. offset_bits and size_bits are used to detect the
// partial-register idiom (e.g. 8086 "XOR BH,BH").
type StorageDescriptor struct {
	Domain     Domain
	OffsetBits int
	SizeBits   int
}

// BitRange returns the storage's bit range within its domain.
func (s StorageDescriptor) BitRange() ival.BitRange {
	return ival.NewBitRange(s.OffsetBits, s.OffsetBits+s.SizeBits)
}

// Aliases reports whether s and o name the same physical register.
func (s StorageDescriptor) Aliases(o StorageDescriptor) bool { return s.Domain == o.Domain }

// Contains reports whether s's bit range fully covers o's.
func (s StorageDescriptor) Contains(o StorageDescriptor) bool {
	return s.Domain == o.Domain && s.OffsetBits <= o.OffsetBits &&
		o.OffsetBits+o.SizeBits <= s.OffsetBits+s.SizeBits
}

func (s StorageDescriptor) String() string {
	return fmt.Sprintf("%s+%d:%d", s.Domain, s.OffsetBits, s.SizeBits)
}
