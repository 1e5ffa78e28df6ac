// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl

import "fmt"

// Stmt is an RTL statement, one entry of a block's instruction sequence.
type Stmt interface {
	isStmt()
	String() string
}

// Assign is "dst := src". When dst is not an identifier it is a memory
// write, which the statement visitor treats as having no effect on the
// slice (this analysis does not track stores).
type Assign struct {
	Lhs, Rhs Expr
}

func (*Assign) isStmt() {}
func (a *Assign) String() string { return fmt.Sprintf("%s := %s", a.Lhs, a.Rhs) }

// Branch is "if cond goto target".
type Branch struct {
	Cond   Expr
	Target uint64
}

func (*Branch) isStmt() {}
func (b *Branch) String() string { return fmt.Sprintf("if %s goto 0x%x", b.Cond, b.Target) }

// Goto is an unconditional jump, direct or computed.
type Goto struct {
	Target Expr
}

func (*Goto) isStmt() {}
func (g *Goto) String() string { return fmt.Sprintf("goto %s", g.Target) }

// Call is an opaque call; the slicer assumes callee-saves and treats it as
// having no effect on the slice.
type Call struct {
	Callee Expr
	Args   []Expr
}

func (*Call) isStmt() {}
func (c *Call) String() string { return fmt.Sprintf("call %s", c.Callee) }

// SideEffect wraps an expression evaluated for effect only (e.g. a flags
// update with no corresponding assignment target tracked here).
type SideEffect struct {
	X Expr
}

func (*SideEffect) isStmt() {}
func (s *SideEffect) String() string { return fmt.Sprintf("effect %s", s.X) }

// Nop, Return, If and Invalid are statement shapes the slicer's statement
// visitor does not handle — they are not part of the lowered RTL this
// slicer is required to walk, and must not appear on paths it encounters.
// Presence of one is reported as an error rather than silently skipped.
type Nop struct{}

func (Nop) isStmt()          {}
func (Nop) String() string { return "nop" }

type Return struct {
	Values []Expr
}

func (Return) isStmt()          {}
func (r Return) String() string { return "return" }

type If struct {
	Cond       Expr
	Then, Else []Stmt
}

func (If) isStmt()          {}
func (If) String() string { return "if/then/else" }

type Invalid struct {
	Reason string
}

func (Invalid) isStmt()          {}
func (i Invalid) String() string { return "invalid: " + i.Reason }
