// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package x86dom maps the x86 general-purpose register constants from
// golang-asm's obj/x86 package onto rtl.StorageDescriptor values, so the
// slicer's partial-register tracking can be exercised against a real
// assembler's register table instead of a hand-rolled enum.
//
// golang-asm (like the upstream Go assembler it was forked from) gives one
// register constant per physical register — REG_AX names the accumulator
// regardless of whether an instruction addresses it as AX, EAX or RAX — and
// leaves the operand width to the instruction's mnemonic. This package
// follows the same convention: Domain and Offset are derived from the
// register constant alone, while the caller supplies the bit width in
// effect at the instruction doing the access.
package x86dom

import (
	"fmt"

	"github.com/twitchyliquid64/golang-asm/obj/x86"

	"github.com/justinhachemeister/reko/rtl"
)

// reg describes one of obj/x86's general-purpose register constants: which
// domain it belongs to, and its bit offset within that domain (0 for the
// low byte and for the word/dword/qword form, 8 for the legacy high byte).
type reg struct {
	domain rtl.Domain
	offset int
}

var registers = map[int16]reg{
	x86.REG_AL: {domain: "A", offset: 0},
	x86.REG_AH: {domain: "A", offset: 8},
	x86.REG_AX: {domain: "A", offset: 0},

	x86.REG_BL: {domain: "B", offset: 0},
	x86.REG_BH: {domain: "B", offset: 8},
	x86.REG_BX: {domain: "B", offset: 0},

	x86.REG_CL: {domain: "C", offset: 0},
	x86.REG_CH: {domain: "C", offset: 8},
	x86.REG_CX: {domain: "C", offset: 0},

	x86.REG_DL: {domain: "D", offset: 0},
	x86.REG_DH: {domain: "D", offset: 8},
	x86.REG_DX: {domain: "D", offset: 0},
}

// Domain returns the storage domain a register constant belongs to.
func Domain(r int16) rtl.Domain {
	if e, ok := registers[r]; ok {
		return e.domain
	}
	return rtl.Domain(fmt.Sprintf("reg%d", r))
}

// Offset returns a register constant's bit offset within its domain.
func Offset(r int16) int {
	if e, ok := registers[r]; ok {
		return e.offset
	}
	return 0
}

// Storage builds the StorageDescriptor for register r accessed at the
// given bit width (8 for AL/AH-style byte registers, 16/32/64 for the
// word/dword/qword forms of the same physical register).
func Storage(r int16, bits int) rtl.StorageDescriptor {
	return rtl.StorageDescriptor{Domain: Domain(r), OffsetBits: Offset(r), SizeBits: bits}
}

// Ident builds the rtl.Ident for register r, named name, accessed at bits
// wide — e.g. Ident("bh", x86.REG_BH, 8) for the 8086 high-byte idiom.
func Ident(name string, r int16, bits int) *rtl.Ident {
	return rtl.NewIdent(name, Storage(r, bits))
}
