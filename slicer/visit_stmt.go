// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer

import (
	"fmt"

	"github.com/justinhachemeister/reko/ival"
	"github.com/justinhachemeister/reko/rtl"
)

// visitStmt is the statement transfer function. It reports stop
// when the expression visitor resolved a bounding comparison or mask
// somewhere underneath it; the driver treats a state as terminal the
// moment stop or an empty live map is observed.
func (s *State) visitStmt(stmt rtl.Stmt) (bool, error) {
	switch v := stmt.(type) {
	case *rtl.Assign:
		return s.visitAssign(v)

	case *rtl.Branch:
		// invert_condition must be set before visiting cond: the defining
		// comparison underneath it consults it to pick ule vs. its
		// inverse when the path taken is the fall-through edge.
		if s.AddrSucc != v.Target {
			s.Invert = true
		}
		_, err := s.visitExpr(v.Cond, Condition(ival.NewBitRange(0, 0)))
		if err != nil {
			return false, err
		}
		return s.stop, nil

	case *rtl.Goto:
		// A bare integer constant is not a legal jump target: a literal
		// destination must be tagged as an address (*rtl.AddrConst), and
		// anything else is expected to be a computed expression the
		// visitor can walk. A plain *rtl.Const here means the lowering
		// that produced this RTL mixed up an arithmetic value with an
		// address — the same "non-address branch target" malformed
		// operand the statement visitor must reject rather than silently
		// treat as a resolved jump_table_format.
		if _, ok := v.Target.(*rtl.Const); ok {
			return false, &MalformedOperandError{Reason: "goto target is a bare constant, not an address"}
		}

		result, err := s.visitExpr(v.Target, Condition(rtl.RangeOf(v.Target)))
		if err != nil {
			return false, err
		}
		if s.Format == nil {
			s.Format = result
		}
		return s.stop, nil

	case *rtl.Call, *rtl.SideEffect:
		return false, nil

	default:
		return false, &UnsupportedStmtError{Kind: fmt.Sprintf("%T", stmt)}
	}
}

// visitAssign implements `dst := src`. When dst is narrower than the dead
// register it kills (the 8086 "xor bh,bh; mov bl,al" idiom), the bits of
// the dead register that dst does not cover are split into a fresh
// identifier, re-inserted into live, and threaded into jump_table_format
// through a Deposit node — rather than being substituted away wholesale —
// so an instruction further back that targets exactly those bits can
// still find them live.
func (s *State) visitAssign(v *rtl.Assign) (bool, error) {
	dst, ok := v.Lhs.(*rtl.Ident)
	if !ok {
		return false, nil
	}

	dead := s.Live.RemoveDomain(dst.Storage.Domain)
	if len(dead) == 0 {
		return false, nil
	}
	first := dead[0]
	deadIdent, _ := first.expr.(*rtl.Ident)
	s.AssignLHS = first.expr

	remainder := splitRemainder(deadIdent, dst)
	if remainder != nil {
		s.Live.Insert(remainder, Context{Type: first.ctx.Type, Range: ival.NewBitRange(0, remainder.Storage.SizeBits)})
	}

	srcResult, err := s.visitExpr(v.Rhs, first.ctx)
	if err != nil {
		return false, err
	}

	if !s.stop {
		var replacement rtl.Expr = srcResult
		if remainder != nil {
			replacement = &rtl.Deposit{Host: remainder, Inserted: srcResult, Pos: dst.Storage.OffsetBits}
		}
		s.Format = rtl.Simplify(rtl.Substitute(s.Format, deadIdent, replacement))
	}

	s.AssignLHS = nil
	return s.stop, nil
}

// splitRemainder returns the identifier covering the bits of dead that dst
// does not overwrite, when dead and dst share a domain, dst is strictly
// narrower, and the uncovered bits form a single contiguous range (i.e.
// dst sits flush against one edge of dead, as a sub-register write does).
// It returns nil when no such contiguous remainder exists.
func splitRemainder(dead, dst *rtl.Ident) *rtl.Ident {
	if dead == nil {
		return nil
	}
	deadBegin, deadEnd := dead.Storage.OffsetBits, dead.Storage.OffsetBits+dead.Storage.SizeBits
	dstBegin, dstEnd := dst.Storage.OffsetBits, dst.Storage.OffsetBits+dst.Storage.SizeBits
	if dstBegin < deadBegin || dstEnd > deadEnd || (dstBegin == deadBegin && dstEnd == deadEnd) {
		return nil
	}

	var remBegin, remEnd int
	switch {
	case dstBegin == deadBegin:
		remBegin, remEnd = dstEnd, deadEnd
	case dstEnd == deadEnd:
		remBegin, remEnd = deadBegin, dstBegin
	default:
		return nil
	}

	storage := rtl.StorageDescriptor{Domain: dead.Storage.Domain, OffsetBits: remBegin, SizeBits: remEnd - remBegin}
	return rtl.NewIdent(fmt.Sprintf("%s@%s", dead.Name, storage), storage)
}
