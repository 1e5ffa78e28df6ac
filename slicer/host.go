// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer

import "github.com/justinhachemeister/reko/rtl"

// Block is one basic block of the RTL control flow graph, as seen by the
// slicer: an address (for tracing and SliceError) and the ordered RTL
// statements that make it up.
type Block interface {
	Address() uint64
	Instructions() []rtl.Stmt
}

// Host is the capability a caller gives the slicer to walk a CFG
// backward: given a block, return its predecessors. Kept to this single
// method so embedders can adapt whatever CFG representation they already
// have without implementing the rest of the driver's bookkeeping.
type Host interface {
	Predecessors(b Block) []Block
}
