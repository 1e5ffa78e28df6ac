// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"github.com/twitchyliquid64/golang-asm/obj/x86"

	"github.com/justinhachemeister/reko/internal/x86dom"
	"github.com/justinhachemeister/reko/rtl"
)

// Scenario bundles a CFG fixture with the block, instruction cursor and
// indirect-transfer expression a slice should start from. Built-in
// scenarios are named after the constructs they exercise rather than after
// any particular source document, so a caller can pick one by name from a
// command-line flag.
type Scenario struct {
	Name   string
	Host   *CFG
	Block  *Block
	Cursor int
	Target rtl.Expr
}

// Scenarios returns the set of built-in fixtures, keyed by name. Every
// register identifier is built through internal/x86dom, so the storage
// domains these scenarios exercise come from golang-asm's own x86 register
// table rather than hand-picked strings.
func Scenarios() map[string]Scenario {
	out := make(map[string]Scenario)
	for _, s := range []Scenario{
		maskBoundedSwitch(),
		compareBoundedFallThrough(),
		highByteClear(),
	} {
		out[s.Name] = s
	}
	return out
}

// maskBoundedSwitch models a 16-bit table dispatch bounded by a bitmask:
//
//	cx := mem16[bx+2]
//	ax := cx & 0x0007
//	ip := mem16[ax*2 + 0x100]
func maskBoundedSwitch() Scenario {
	cx := x86dom.Ident("cx", x86.REG_CX, 16)
	ax := x86dom.Ident("ax", x86.REG_AX, 16)
	bx := x86dom.Ident("bx", x86.REG_BX, 16)

	cfg := NewCFG()
	block := cfg.Block(0x1000,
		&rtl.Assign{Lhs: cx, Rhs: rtl.NewMemAccess(rtl.NewBinary(rtl.OpAdd, bx, rtl.NewConst(2, 16)), 16)},
		&rtl.Assign{Lhs: ax, Rhs: rtl.NewBinary(rtl.OpAnd, cx, rtl.NewConst(7, 16))},
	)
	target := rtl.NewMemAccess(rtl.NewBinary(rtl.OpAdd, rtl.NewBinary(rtl.OpMul, ax, rtl.NewConst(2, 16)), rtl.NewAddrConst(0x100)), 16)

	return Scenario{Name: "mask-bounded-switch", Host: cfg, Block: block, Cursor: len(block.Instructions()), Target: target}
}

// compareBoundedFallThrough models a bounds check in one block that guards
// a table dispatch in its successor:
//
//	Block A: cmp dx, 5; jbe B
//	Block B: jmp [dx*4]
func compareBoundedFallThrough() Scenario {
	dx := x86dom.Ident("dx", x86.REG_DX, 16)

	cfg := NewCFG()
	blockB := cfg.Block(0x2000)
	cfg.Block(0x1000,
		&rtl.Branch{
			Cond:   &rtl.TestCondition{Code: rtl.CCULE, X: rtl.NewBinary(rtl.OpSub, dx, rtl.NewConst(5, 16))},
			Target: 0x2000,
		},
	)
	cfg.AddEdge(0x1000, 0x2000)

	target := rtl.NewMemAccess(rtl.NewBinary(rtl.OpMul, dx, rtl.NewConst(4, 16)), 16)

	return Scenario{Name: "compare-bounded-fall-through", Host: cfg, Block: blockB, Cursor: len(blockB.Instructions()), Target: target}
}

// highByteClear models the 8086 idiom of zeroing a register's high byte
// before loading its low byte, ahead of an indexed table dispatch:
//
//	xor bh, bh
//	mov bl, al
//	jmp [table + bx*2]
func highByteClear() Scenario {
	bx := x86dom.Ident("bx", x86.REG_BX, 16)
	bl := x86dom.Ident("bl", x86.REG_BL, 8)
	bh := x86dom.Ident("bh", x86.REG_BH, 8)
	al := x86dom.Ident("al", x86.REG_AL, 8)

	cfg := NewCFG()
	block := cfg.Block(0x4000,
		&rtl.Assign{Lhs: bh, Rhs: rtl.NewBinary(rtl.OpXor, bh, bh)},
		&rtl.Assign{Lhs: bl, Rhs: al},
	)
	target := rtl.NewMemAccess(rtl.NewBinary(rtl.OpAdd, rtl.NewAddrConst(0x500), rtl.NewBinary(rtl.OpMul, bx, rtl.NewConst(2, 16))), 16)

	return Scenario{Name: "high-byte-clear", Host: cfg, Block: block, Cursor: len(block.Instructions()), Target: target}
}
