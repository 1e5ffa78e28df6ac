// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/justinhachemeister/reko/internal/synth"
	"github.com/justinhachemeister/reko/ival"
	"github.com/justinhachemeister/reko/rtl"
	"github.com/justinhachemeister/reko/slicer"
)

func ident(name string, domain rtl.Domain, offset, size int) *rtl.Ident {
	return rtl.NewIdent(name, rtl.StorageDescriptor{Domain: domain, OffsetBits: offset, SizeBits: size})
}

func runToCompletion(t *testing.T, s *slicer.Slicer) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		more, err := s.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if !more {
			return
		}
	}
	t.Fatalf("slice did not terminate within 1000 steps")
}

// Scenario 1: mask-bounded 16-bit switch.
//
//	cx := mem16[bx+2]
//	ax := cx & 0x0007
//	ip := mem16[ax*2 + 0x100]
func TestScenarioMaskBoundedSwitch(t *testing.T) {
	cx := ident("cx", "C", 0, 16)
	ax := ident("ax", "A", 0, 16)
	bx := ident("bx", "B", 0, 16)

	cfg := synth.NewCFG()
	block := cfg.Block(0x1000,
		&rtl.Assign{Lhs: cx, Rhs: rtl.NewMemAccess(rtl.NewBinary(rtl.OpAdd, bx, rtl.NewConst(2, 16)), 16)},
		&rtl.Assign{Lhs: ax, Rhs: rtl.NewBinary(rtl.OpAnd, cx, rtl.NewConst(7, 16))},
	)
	target := rtl.NewMemAccess(rtl.NewBinary(rtl.OpAdd, rtl.NewBinary(rtl.OpMul, ax, rtl.NewConst(2, 16)), rtl.NewAddrConst(0x100)), 16)

	s := slicer.New(cfg)
	ok, err := s.Start(block, len(block.Instructions()), target)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !ok {
		t.Fatalf("Start returned false, want true")
	}
	runToCompletion(t, s)

	if !rtl.Equal(s.JumpTableFormat(), target) {
		t.Fatalf("JumpTableFormat = %v, want unchanged %v", s.JumpTableFormat(), target)
	}
	if !rtl.Equal(s.JumpTableIndex(), cx) {
		t.Fatalf("JumpTableIndex = %v, want cx", s.JumpTableIndex())
	}
	want := ival.FromMask(7)
	if !s.JumpTableIndexInterval().Equal(want) {
		t.Fatalf("JumpTableIndexInterval = %v, want %v", s.JumpTableIndexInterval(), want)
	}
}

// Scenario 2: compare-bounded fall-through.
//
//	Block A: cmp dx, 5; jbe B
//	Block B: jmp [dx-indexed table]
func TestScenarioCompareBoundedFallThrough(t *testing.T) {
	dx := ident("dx", "D", 0, 16)

	cfg := synth.NewCFG()
	blockB := cfg.Block(0x2000)
	cfg.Block(0x1000,
		&rtl.Branch{
			Cond:   &rtl.TestCondition{Code: rtl.CCULE, X: rtl.NewBinary(rtl.OpSub, dx, rtl.NewConst(5, 16))},
			Target: 0x2000,
		},
	)
	cfg.AddEdge(0x1000, 0x2000)

	target := rtl.NewMemAccess(rtl.NewBinary(rtl.OpMul, dx, rtl.NewConst(4, 16)), 16)

	s := slicer.New(cfg)
	ok, err := s.Start(blockB, len(blockB.Instructions()), target)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !ok {
		t.Fatalf("Start returned false, want true")
	}
	runToCompletion(t, s)

	want := ival.FromULE(5)
	if !s.JumpTableIndexInterval().Equal(want) {
		t.Fatalf("JumpTableIndexInterval = %v, want %v", s.JumpTableIndexInterval(), want)
	}
}

// Law: compare bound via an inverted condition — the guarding branch tests
// the taken-away edge, so the interval is built from the inverse code.
func TestLawCompareBoundInvertedCondition(t *testing.T) {
	idx := ident("idx", "I", 0, 16)

	cfg := synth.NewCFG()
	block := cfg.Block(0x3000,
		&rtl.Branch{
			Cond:   &rtl.TestCondition{Code: rtl.CCUGT, X: rtl.NewBinary(rtl.OpSub, idx, rtl.NewConst(10, 16))},
			Target: 0x9999, // "default", distinct from this block's own address
		},
	)
	target := rtl.NewMemAccess(rtl.NewBinary(rtl.OpMul, idx, rtl.NewConst(4, 16)), 16)

	s := slicer.New(cfg)
	if _, err := s.Start(block, len(block.Instructions()), target); err != nil {
		t.Fatalf("Start: %v", err)
	}
	runToCompletion(t, s)

	want := ival.FromULE(10)
	if !s.JumpTableIndexInterval().Equal(want) {
		t.Fatalf("JumpTableIndexInterval = %v, want %v", s.JumpTableIndexInterval(), want)
	}
}

// Scenario 3: 8086 high-byte clear.
//
//	xor bh, bh
//	mov bl, al
//	jmp [table + bx*2]
func TestScenarioHighByteClear(t *testing.T) {
	bx := ident("bx", "B", 0, 16)
	bl := ident("bl", "B", 0, 8)
	bh := ident("bh", "B", 8, 8)
	al := ident("al", "A", 0, 8)

	cfg := synth.NewCFG()
	block := cfg.Block(0x4000,
		&rtl.Assign{Lhs: bh, Rhs: rtl.NewBinary(rtl.OpXor, bh, bh)},
		&rtl.Assign{Lhs: bl, Rhs: al},
	)
	target := rtl.NewMemAccess(rtl.NewBinary(rtl.OpAdd, rtl.NewAddrConst(0x500), rtl.NewBinary(rtl.OpMul, bx, rtl.NewConst(2, 16))), 16)

	s := slicer.New(cfg)
	if _, err := s.Start(block, len(block.Instructions()), target); err != nil {
		t.Fatalf("Start: %v", err)
	}
	runToCompletion(t, s)

	live := s.Live()
	if live == nil {
		t.Fatalf("expected a live map to survive to termination")
	}
	if _, ok := live.Get(al); !ok {
		t.Fatalf("expected al to remain live")
	}

	var found bool
	for _, e := range live.Exprs() {
		id, ok := e.(*rtl.Ident)
		if !ok {
			continue
		}
		if id.Storage.Domain == "B" && id.Storage.OffsetBits == 8 {
			ctx, _ := live.Get(id)
			if ctx.Range.Width() == 8 {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected the high byte of domain B to be live with an 8-bit range after the xor, got %v", live.Exprs())
	}

	// The zeroing idiom must not stop the walk (unlike the bounding-
	// comparison rules, it says "Return", not "return stop") — it only
	// folds a synthetic zero-extension into jump_table_format and keeps
	// assign_lhs live. Guard against a regression that skips this
	// substitution: the resolved format must reference al through a
	// cast16(cast8(...)) zero-extension, not a bare unsubstituted
	// identifier.
	format := s.JumpTableFormat()
	if format == nil {
		t.Fatalf("expected a resolved jump_table_format")
	}
	formatStr := format.String()
	if !strings.Contains(formatStr, "al") {
		t.Fatalf("expected jump_table_format to reference al, got %s", formatStr)
	}
	if !strings.Contains(formatStr, "cast16(cast8(") {
		t.Fatalf("expected the zeroing idiom's synthetic zero-extension folded into jump_table_format, got %s", formatStr)
	}
	if s.JumpTableIndex() != nil {
		t.Fatalf("expected jump_table_index to remain unset (no bounding comparison in this scenario), got %v", s.JumpTableIndex())
	}
}

// Scenario 4: no live registers — the target is a literal address.
func TestScenarioNoLiveRegisters(t *testing.T) {
	cfg := synth.NewCFG()
	block := cfg.Block(0x5000)

	s := slicer.New(cfg)
	ok, err := s.Start(block, 0, rtl.NewAddrConst(0x6000))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if ok {
		t.Fatalf("Start returned true, want false for a literal target")
	}
	if s.JumpTableFormat() != nil {
		t.Fatalf("expected JumpTableFormat to remain unset, got %v", s.JumpTableFormat())
	}
	if !s.JumpTableIndexInterval().IsEmpty() {
		t.Fatalf("expected an empty interval, got %v", s.JumpTableIndexInterval())
	}
}

// Scenario 5: unresolvable due to an unsupported expression (dereference).
func TestScenarioUnsupportedDeref(t *testing.T) {
	ptr := ident("ptr", "P", 0, 16)

	cfg := synth.NewCFG()
	block := cfg.Block(0x7000,
		&rtl.Assign{Lhs: ptr, Rhs: &rtl.Deref{X: ptr}},
	)
	target := rtl.NewMemAccess(ptr, 16)

	s := slicer.New(cfg)
	ok, err := s.Start(block, len(block.Instructions()), target)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !ok {
		t.Fatalf("Start returned false, want true")
	}

	_, err = s.Step()
	if err == nil {
		t.Fatalf("expected Step to report the unsupported dereference")
	}
	var sliceErr *slicer.SliceError
	if !errors.As(err, &sliceErr) {
		t.Fatalf("expected a *slicer.SliceError, got %T: %v", err, err)
	}
	var unsupported *slicer.UnsupportedExprError
	if !errors.As(sliceErr, &unsupported) {
		t.Fatalf("expected the wrapped error to be *slicer.UnsupportedExprError, got %v", sliceErr.Err)
	}
}

// Malformed operand: a goto target that is a bare constant rather than a
// tagged address or a computed expression.
func TestScenarioMalformedGotoTarget(t *testing.T) {
	idx := ident("idx", "I", 0, 16)

	cfg := synth.NewCFG()
	block := cfg.Block(0x8000,
		&rtl.Goto{Target: rtl.NewConst(0x9000, 16)},
	)
	target := rtl.NewMemAccess(idx, 16)

	s := slicer.New(cfg)
	ok, err := s.Start(block, len(block.Instructions()), target)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !ok {
		t.Fatalf("Start returned false, want true")
	}

	_, err = s.Step()
	if err == nil {
		t.Fatalf("expected Step to report the malformed goto target")
	}
	var sliceErr *slicer.SliceError
	if !errors.As(err, &sliceErr) {
		t.Fatalf("expected a *slicer.SliceError, got %T: %v", err, err)
	}
	var malformed *slicer.MalformedOperandError
	if !errors.As(sliceErr, &malformed) {
		t.Fatalf("expected the wrapped error to be *slicer.MalformedOperandError, got %v", sliceErr.Err)
	}
}
