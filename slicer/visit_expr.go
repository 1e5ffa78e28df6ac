// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer

import (
	"fmt"

	"github.com/justinhachemeister/reko/ival"
	"github.com/justinhachemeister/reko/rtl"
)

// IntervalFromCompare builds the interval a comparison against the
// constant k implies, for one condition code.
type IntervalFromCompare func(k int64) ival.StridedInterval

// visitExpr is the expression transfer function: it walks e under
// context ctx, folding identifier and memory-access contributions into
// s.Live, and returns the (possibly rewritten) expression that stands in
// for e's value on this path. The generic Binary case stops recursing the
// moment its left operand sets s.stop; Seq and Deposit visit both children
// regardless. The decisive Binary rules below are the only places that set
// s.stop.
func (s *State) visitExpr(e rtl.Expr, ctx Context) (rtl.Expr, error) {
	switch v := e.(type) {
	case *rtl.Ident:
		s.Live.Insert(v, ctx)
		return v, nil

	case *rtl.Const, *rtl.AddrConst, *rtl.Application:
		return e, nil

	case *rtl.MemAccess:
		eaCtx := Context{Type: ctx.Type, Range: ival.NewBitRange(0, rtl.RangeOf(v.EA).Width())}
		newEA, err := s.visitExpr(v.EA, eaCtx)
		if err != nil {
			return nil, err
		}
		result := &rtl.MemAccess{EA: newEA, DataBits: v.DataBits}
		s.Live.Insert(result, ctx)
		return result, nil

	case *rtl.SegMemAccess:
		newEA, err := s.visitExpr(v.EA, ctx)
		if err != nil {
			return nil, err
		}
		return &rtl.SegMemAccess{Seg: v.Seg, EA: newEA, DataBits: v.DataBits}, nil

	case *rtl.Cast:
		innerCtx := Context{Type: ctx.Type, Range: ival.NewBitRange(0, v.Bits)}
		newX, err := s.visitExpr(v.X, innerCtx)
		if err != nil {
			return nil, err
		}
		return &rtl.Cast{Bits: v.Bits, X: newX}, nil

	case *rtl.Slice:
		innerCtx := Context{Type: ctx.Type, Range: ival.NewBitRange(0, v.Width)}
		newX, err := s.visitExpr(v.X, innerCtx)
		if err != nil {
			return nil, err
		}
		return &rtl.Slice{X: newX, Offset: v.Offset, Width: v.Width}, nil

	case *rtl.Seq:
		newHead, err := s.visitExpr(v.Head, ctx)
		if err != nil {
			return nil, err
		}
		newTail, err := s.visitExpr(v.Tail, ctx)
		if err != nil {
			return nil, err
		}
		return &rtl.Seq{Head: newHead, Tail: newTail, Width: v.Width}, nil

	case *rtl.Deposit:
		newHost, err := s.visitExpr(v.Host, ctx)
		if err != nil {
			return nil, err
		}
		newInserted, err := s.visitExpr(v.Inserted, ctx)
		if err != nil {
			return nil, err
		}
		if rtl.RangeOf(v.Inserted).Equal(ctx.Range) {
			return newInserted, nil
		}
		return &rtl.Deposit{Host: newHost, Inserted: newInserted, Pos: v.Pos}, nil

	case *rtl.ConditionOf:
		newX, err := s.visitExpr(v.X, Condition(rtl.RangeOf(v.X)))
		if err != nil {
			return nil, err
		}
		s.Index = newX
		s.IndexToUse = newX
		result := &rtl.ConditionOf{X: newX}
		return result, nil

	case *rtl.TestCondition:
		// cc_next must be in place before recursing: the defining
		// comparison underneath X (typically a Sub-with-constant-right)
		// consults it to build the bounding interval as it is visited.
		s.CCNext = v.Code
		s.HasCC = true
		newX, err := s.visitExpr(v.X, ctx)
		if err != nil {
			return nil, err
		}
		s.Index = newX
		return &rtl.TestCondition{Code: v.Code, X: newX}, nil

	case *rtl.Unary:
		newX, err := s.visitExpr(v.X, ctx)
		if err != nil {
			return nil, err
		}
		return &rtl.Unary{Op: v.Op, X: newX}, nil

	case *rtl.Binary:
		return s.visitBinary(v, ctx)

	default:
		return nil, &UnsupportedExprError{Kind: fmt.Sprintf("%T", e)}
	}
}

// visitBinary implements the three named rules plus the generic fallback,
// in priority order: zeroing idiom, subtract-with-constant,
// and-with-constant, otherwise.
func (s *State) visitBinary(v *rtl.Binary, ctx Context) (rtl.Expr, error) {
	if (v.Op == rtl.OpXor || v.Op == rtl.OpSub) && rtl.Equal(v.Left, v.Right) {
		if result, ok := s.tryZeroingIdiom(v); ok {
			return result, nil
		}
	}

	if v.Op == rtl.OpSub {
		if rhs, ok := v.Right.(*rtl.Const); ok {
			if result, err, matched := s.trySubBound(v, rhs, ctx); matched {
				return result, err
			}
		}
	}

	if v.Op == rtl.OpAnd {
		if rhs, ok := v.Right.(*rtl.Const); ok {
			s.Index = v.Left
			s.IndexToUse = v.Left
			s.Interval = ival.FromMask(uint64(rhs.Value))
			s.stop = true
			return v.Left, nil
		}
	}

	newLeft, err := s.visitExpr(v.Left, ctx)
	if err != nil {
		return nil, err
	}
	if s.stop {
		return newLeft, nil
	}
	newRight, err := s.visitExpr(v.Right, ctx)
	if err != nil {
		return nil, err
	}
	return &rtl.Binary{Op: v.Op, Left: newLeft, Right: newRight}, nil
}

// tryZeroingIdiom recognizes `x op x` (xor or sub) writing the high byte
// of a register the current assignment targets, e.g. 8086 `xor bh, bh`.
// On match it keeps AssignLHS (the live key the assignment kills) live
// under a [0,8) bit range and synthesizes the zero-extension the idiom amounts to. Unlike
// the Subtract-with-constant and And-with-constant rules, this one does
// not stop the walk — it returns, leaving the rest of the block (and its
// predecessors) to resolve the low byte the zero-extension feeds into.
func (s *State) tryZeroingIdiom(v *rtl.Binary) (rtl.Expr, bool) {
	operand, ok := v.Left.(*rtl.Ident)
	if !ok {
		return nil, false
	}
	assignIdent, ok := s.AssignLHS.(*rtl.Ident)
	if !ok {
		return nil, false
	}
	if assignIdent.Storage.Domain != operand.Storage.Domain || assignIdent.Storage.OffsetBits != 8 {
		return nil, false
	}
	fullWidth := assignIdent.Storage.SizeBits * 2
	synthetic := rtl.NewCast(fullWidth, rtl.NewCast(assignIdent.Storage.SizeBits, assignIdent))
	s.Live.Insert(assignIdent, Jumptable(ival.NewBitRange(0, 8)))
	return synthetic, true
}

// trySubBound implements "Subtract with constant right": it recurses into
// both operands, then — only when a pending condition code (cc_next) is in
// effect, i.e. this subtraction sits underneath a TestCondition rather than
// being ordinary arithmetic — scans live for an entry in the left
// operand's domain. The bool return reports whether this call already
// visited the operands (true whenever the left operand is an identifier)
// — the caller must not recurse into them again either way.
func (s *State) trySubBound(v *rtl.Binary, rhs *rtl.Const, ctx Context) (rtl.Expr, error, bool) {
	leftIdent, ok := v.Left.(*rtl.Ident)
	if !ok {
		return nil, nil, false
	}

	newLeft, err := s.visitExpr(v.Left, ctx)
	if err != nil {
		return nil, err, true
	}
	newRight, err := s.visitExpr(v.Right, ctx)
	if err != nil {
		return nil, err, true
	}

	if !s.HasCC {
		return &rtl.Binary{Op: v.Op, Left: newLeft, Right: newRight}, nil, true
	}

	for _, candidate := range s.Live.Exprs() {
		id, ok := candidate.(*rtl.Ident)
		if !ok || id.Storage.Domain != leftIdent.Storage.Domain {
			continue
		}
		matchesAssignLHS := s.AssignLHS != nil && s.Index != nil && rtl.Equal(s.AssignLHS, s.Index)
		isLeftItself := rtl.Equal(candidate, leftIdent)
		if !matchesAssignLHS && !isLeftItself {
			continue
		}
		cc := s.CCNext
		if s.Invert {
			cc = cc.Invert()
		}
		builder, ok := s.condCodes[cc]
		if !ok {
			return nil, &UnsupportedConditionError{Code: cc}, true
		}
		s.Index = leftIdent
		s.IndexToUse = leftIdent
		s.Interval = builder(rhs.AsI64())
		s.stop = true
		return leftIdent, nil, true
	}

	// No live entry in the left operand's domain: this subtraction isn't
	// the bounding comparison. Both operands are already visited above,
	// so hand back the rebuilt binary rather than let the caller recurse
	// into them a second time.
	return &rtl.Binary{Op: v.Op, Left: newLeft, Right: newRight}, nil, true
}
