// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer

import (
	"github.com/justinhachemeister/reko/ival"
	"github.com/justinhachemeister/reko/rtl"
)

// State is one path's worth of slicing progress: the block currently being
// walked backward, the cursor into its instruction list, the liveness map,
// and the accumulated results.
//
// A State is cloned at a block boundary, once per predecessor; the cursor
// and pending-condition fields reset for the new block while Live, Format,
// Index, IndexToUse and Interval carry forward unchanged, since those are
// properties of the value being tracked rather than of any one block.
type State struct {
	Block  Block
	Cursor int
	Live   *LiveMap

	// condCodes is shared with the owning Slicer; it resolves a pending
	// condition code to an interval builder for the Sub-with-const-right
	// rule in the expression visitor.
	condCodes map[rtl.ConditionCode]IntervalFromCompare

	// AddrSucc is the address of the block this state fanned out from,
	// i.e. the successor of Block along the path being walked.
	AddrSucc uint64

	// CCNext/HasCC/Invert hold a condition code pending interpretation:
	// set by visiting a Branch, consumed by the comparison that produced
	// the flags value the branch tested.
	CCNext rtl.ConditionCode
	HasCC  bool
	Invert bool

	// AssignLHS is the first live key killed by the assignment currently
	// being visited (not necessarily its destination: for `bh := ...` it
	// may be a wider or split identifier of the same domain), consulted by
	// the zeroing-idiom and Sub-with-const-right rules.
	AssignLHS rtl.Expr

	Format     rtl.Expr
	Index      rtl.Expr
	IndexToUse rtl.Expr
	Interval   ival.StridedInterval

	// stop is set once the visitor has found a bounding mask or comparison
	// for the index on this path, after which further substitution into
	// Format does not occur.
	stop bool

	// truncated records that this path ended because of a step bound
	// rather than a genuine dead end.
	truncated bool
}

// newState builds the initial per-path state for Start.
func newState(b Block, cursor int, condCodes map[rtl.ConditionCode]IntervalFromCompare) *State {
	return &State{
		Block:     b,
		Cursor:    cursor,
		Live:      NewLiveMap(),
		condCodes: condCodes,
	}
}

// cloneFor produces the state a predecessor block inherits when this
// state's block is exhausted: a fresh cursor at the predecessor's last
// instruction, AddrSucc set to the block being left, and the pending
// condition-code fields reset (a branch's condition only ever pertains to
// the block it terminates).
func (s *State) cloneFor(pred Block) *State {
	c := &State{
		Block:      pred,
		Cursor:     len(pred.Instructions()) - 1,
		Live:       s.Live.Clone(),
		condCodes:  s.condCodes,
		AddrSucc:   s.Block.Address(),
		Format:     s.Format,
		Index:      s.Index,
		IndexToUse: s.IndexToUse,
		Interval:   s.Interval,
		truncated:  s.truncated,
	}
	return c
}

// Truncated reports whether this path stopped because of a configured
// step bound rather than running out of live registers or predecessors.
func (s *State) Truncated() bool { return s.truncated }
