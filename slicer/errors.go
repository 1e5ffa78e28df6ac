// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer

import (
	"fmt"

	"github.com/justinhachemeister/reko/rtl"
)

// UnsupportedExprError reports an expression variant the visitor has no
// transfer function for (Deref, and any future additions).
type UnsupportedExprError struct {
	Kind string
}

func (e *UnsupportedExprError) Error() string {
	return fmt.Sprintf("slicer: unsupported expression kind %q", e.Kind)
}

// UnsupportedStmtError reports a statement variant that must not appear on
// a path the slicer walks (Nop, Return, If, Invalid).
type UnsupportedStmtError struct {
	Kind string
}

func (e *UnsupportedStmtError) Error() string {
	return fmt.Sprintf("slicer: unsupported statement kind %q", e.Kind)
}

// UnsupportedConditionError reports a ConditionCode with no registered
// IntervalFromCompare builder.
type UnsupportedConditionError struct {
	Code rtl.ConditionCode
}

func (e *UnsupportedConditionError) Error() string {
	return fmt.Sprintf("slicer: unsupported condition code %s", e.Code)
}

// MalformedOperandError reports an operand of a shape the statement visitor
// rejects: a goto whose target is a bare integer constant rather than an
// address or a computed expression.
type MalformedOperandError struct {
	Reason string
}

func (e *MalformedOperandError) Error() string {
	return fmt.Sprintf("slicer: malformed operand: %s", e.Reason)
}

// SliceError wraps one of the errors above with the block and cursor
// position at which the driver's step failed, mirroring validate.Error's
// {Offset, Function, Err} wrapping of opcode-decode failures.
type SliceError struct {
	Block  Block
	Cursor int
	Err    error
}

func (e *SliceError) Error() string {
	addr := uint64(0)
	if e.Block != nil {
		addr = e.Block.Address()
	}
	return fmt.Sprintf("slicer: block %#x, instruction %d: %v", addr, e.Cursor, e.Err)
}

func (e *SliceError) Unwrap() error { return e.Err }
