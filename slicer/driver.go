// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer

import (
	"io"
	"log"

	"github.com/justinhachemeister/reko/ival"
	"github.com/justinhachemeister/reko/rtl"
)

// Option configures a Slicer at construction time.
type Option func(*Slicer)

// WithLogger routes trace output to l instead of discarding it.
func WithLogger(l *log.Logger) Option {
	return func(s *Slicer) { s.logger = l }
}

// WithStepBound caps the number of Step calls the driver will perform
// before giving up on a slice and reporting Truncated. Zero (the default)
// means unbounded.
func WithStepBound(n int) Option {
	return func(s *Slicer) { s.stepBound = n }
}

// WithConditionCodes registers additional condition-code interval
// builders beyond the ULE/UGE pair wired in by default, without forking
// the package.
func WithConditionCodes(m map[rtl.ConditionCode]IntervalFromCompare) Option {
	return func(s *Slicer) {
		for code, builder := range m {
			s.condCodes[code] = builder
		}
	}
}

// Slicer drives the backward walk: a worklist of per-path States, a
// visited-blocks set enforcing the "fanned out from at most once"
// invariant, and the condition-code registry consulted by the expression
// visitor's Sub-with-constant rule.
type Slicer struct {
	host      Host
	logger    *log.Logger
	stepBound int
	condCodes map[rtl.ConditionCode]IntervalFromCompare

	worklist  []*State
	visited   map[uint64]bool
	steps     int
	current   *State
	truncated bool
}

// New builds a Slicer bound to host. The zero value of every Option is a
// silent, unbounded slicer with only ULE/UGE interval builders registered.
func New(host Host, opts ...Option) *Slicer {
	s := &Slicer{
		host:    host,
		logger:  log.New(io.Discard, "", 0),
		visited: make(map[uint64]bool),
		condCodes: map[rtl.ConditionCode]IntervalFromCompare{
			rtl.CCULE: ival.FromULE,
			rtl.CCUGE: ival.FromUGE,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start seeds a slice state at (block, instrIndex) for the indirect
// control-transfer expression expr, and enqueues it unless expr carries no
// live registers at all (e.g. a literal address constant).
func (s *Slicer) Start(block Block, instrIndex int, expr rtl.Expr) (bool, error) {
	st := newState(block, instrIndex-1, s.condCodes)
	ctx := Jumptable(rtl.RangeOf(expr))
	result, err := st.visitExpr(expr, ctx)
	if err != nil {
		return false, err
	}
	st.Format = result
	s.visited[block.Address()] = true

	s.logger.Printf("info: start at block %#x instr %d, live=%d", block.Address(), instrIndex, st.Live.Len())

	if st.Live.Len() == 0 {
		// No live expression was found: per the "no live registers at
		// start" case, this is not an error, and no partial results are
		// published — the embedder sees every field at its zero value.
		return false, nil
	}
	s.current = st
	s.worklist = append(s.worklist, st)
	return true, nil
}

// Step processes one unit of work: either the next statement of the
// active state's block, or — when the cursor has reached the top of the
// block — fan-out to its unvisited predecessors. It returns false once the
// worklist is exhausted.
func (s *Slicer) Step() (bool, error) {
	if len(s.worklist) == 0 {
		return false, nil
	}
	if s.stepBound > 0 && s.steps >= s.stepBound {
		s.truncated = true
		if s.current != nil {
			s.current.truncated = true
		}
		s.logger.Printf("info: step bound %d reached, truncating", s.stepBound)
		return false, nil
	}
	s.steps++

	st := s.worklist[0]
	s.worklist = s.worklist[1:]
	s.current = st

	if st.Cursor >= 0 {
		instrs := st.Block.Instructions()
		stmt := instrs[st.Cursor]
		s.logger.Printf("verbose: block %#x instr %d: %s", st.Block.Address(), st.Cursor, stmt)

		stop, err := st.visitStmt(stmt)
		if err != nil {
			return false, &SliceError{Block: st.Block, Cursor: st.Cursor, Err: err}
		}
		st.Cursor--

		if stop {
			s.logger.Printf("info: path terminated by stop at block %#x", st.Block.Address())
			return true, nil
		}
		if st.Live.Len() == 0 {
			s.logger.Printf("info: path terminated, live map empty at block %#x", st.Block.Address())
			return true, nil
		}
		s.worklist = append(s.worklist, st)
		return true, nil
	}

	s.logger.Printf("info: reached top of block %#x", st.Block.Address())
	preds := s.host.Predecessors(st.Block)
	if len(preds) == 0 {
		s.logger.Printf("info: block %#x has no predecessors, path terminal", st.Block.Address())
		return true, nil
	}
	for _, pred := range preds {
		if s.visited[pred.Address()] {
			continue
		}
		s.visited[pred.Address()] = true
		s.worklist = append(s.worklist, st.cloneFor(pred))
	}
	return true, nil
}

// Truncated reports whether the most recently stepped path, or the driver
// as a whole, stopped because of a configured step bound rather than a
// genuine dead end.
func (s *Slicer) Truncated() bool { return s.truncated }

// Live exposes the active path's liveness map.
func (s *Slicer) Live() *LiveMap {
	if s.current == nil {
		return nil
	}
	return s.current.Live
}

// JumpTableFormat returns the resolved jump-table format expression, or
// nil if none has been found yet.
func (s *Slicer) JumpTableFormat() rtl.Expr {
	if s.current == nil {
		return nil
	}
	return s.current.Format
}

// JumpTableIndex returns the expression identified as the jump-table index.
func (s *Slicer) JumpTableIndex() rtl.Expr {
	if s.current == nil {
		return nil
	}
	return s.current.Index
}

// JumpTableIndexToUse returns the expression an embedder should substitute
// concrete index values into, distinct from JumpTableIndex when a
// condition-of/test-condition rewrite intervened.
func (s *Slicer) JumpTableIndexToUse() rtl.Expr {
	if s.current == nil {
		return nil
	}
	return s.current.IndexToUse
}

// JumpTableIndexInterval returns the strided interval bounding the index,
// or the empty interval if none has been observed yet.
func (s *Slicer) JumpTableIndexInterval() ival.StridedInterval {
	if s.current == nil {
		return ival.Empty()
	}
	return s.current.Interval
}
