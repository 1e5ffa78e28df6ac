// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth builds small in-memory control flow graphs for exercising
// the slicer, standing in for on-disk fixtures: RTL has no binary wire
// format in scope, so there is nothing to load from a testdata directory —
// every scenario is a Go literal built through this package instead.
package synth

import (
	"fmt"

	"github.com/justinhachemeister/reko/rtl"
	"github.com/justinhachemeister/reko/slicer"
)

// Block is a basic block: an address and its RTL statements in program
// order, satisfying slicer.Block.
type Block struct {
	Addr  uint64
	Stmts []rtl.Stmt
}

func (b *Block) Address() uint64         { return b.Addr }
func (b *Block) Instructions() []rtl.Stmt { return b.Stmts }
func (b *Block) String() string          { return fmt.Sprintf("block@%#x", b.Addr) }

// CFG is a tiny host: a set of blocks plus an explicit predecessor edge
// list, satisfying slicer.Host.
type CFG struct {
	blocks map[uint64]*Block
	preds  map[uint64][]*Block
}

// NewCFG returns an empty graph.
func NewCFG() *CFG {
	return &CFG{blocks: make(map[uint64]*Block), preds: make(map[uint64][]*Block)}
}

// Block creates (or replaces) the block at addr with the given statements,
// in program order, and returns it.
func (c *CFG) Block(addr uint64, stmts ...rtl.Stmt) *Block {
	b := &Block{Addr: addr, Stmts: stmts}
	c.blocks[addr] = b
	return b
}

// AddEdge records that the block at fromAddr is a predecessor of the block
// at toAddr, in the order edges are added.
func (c *CFG) AddEdge(fromAddr, toAddr uint64) {
	from, ok := c.blocks[fromAddr]
	if !ok {
		panic(fmt.Sprintf("synth: AddEdge: no block at %#x", fromAddr))
	}
	c.preds[toAddr] = append(c.preds[toAddr], from)
}

// Predecessors implements slicer.Host.
func (c *CFG) Predecessors(b slicer.Block) []slicer.Block {
	preds := c.preds[b.Address()]
	out := make([]slicer.Block, len(preds))
	for i, p := range preds {
		out[i] = p
	}
	return out
}
