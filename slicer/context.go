// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicer implements the backward slicer: given an indirect
// control-transfer expression and the block+instruction where it occurs,
// it walks the control flow graph backward to resolve a jump-table format
// expression and the strided interval bounding its index.
package slicer

import "github.com/justinhachemeister/reko/ival"

// ContextType tags the reason an expression is being tracked.
type ContextType int

const (
	CtxNone ContextType = iota
	CtxJumptable
	CtxCondition
)

func (t ContextType) String() string {
	switch t {
	case CtxJumptable:
		return "jumptable"
	case CtxCondition:
		return "condition"
	default:
		return "none"
	}
}

// Context is the slicer context attached to a liveness-map entry: why the
// expression is live, and which of its bits matter. Contexts are ordered
// by bit range; merging two contexts for the same expression keeps the one
// with the wider range.
type Context struct {
	Type  ContextType
	Range ival.BitRange
}

// Jumptable builds a Context tracking r for the jump-table computation.
func Jumptable(r ival.BitRange) Context { return Context{Type: CtxJumptable, Range: r} }

// Condition builds a Context tracking r for a guarding condition.
func Condition(r ival.BitRange) Context { return Context{Type: CtxCondition, Range: r} }

// Max returns whichever of c, o has the wider bit range; ties favor c.
func (c Context) Max(o Context) Context {
	if o.Range.Width() > c.Range.Width() {
		return o
	}
	return c
}

func (c Context) String() string { return c.Type.String() + c.Range.String() }
