// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl

// Substitute returns a new expression tree with every occurrence of old
// (compared structurally, via Equal) replaced by repl. RTL expressions are
// acyclic immutable trees, so this never needs cycle detection — it just
// rebuilds the path from the root down to each match.
func Substitute(root, old, repl Expr) Expr {
	if root == nil {
		return nil
	}
	if Equal(root, old) {
		return repl
	}
	switch e := root.(type) {
	case *Ident, *Const, *AddrConst:
		return root
	case *Application:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Substitute(a, old, repl)
		}
		return &Application{Callee: e.Callee, Args: args}
	case *Binary:
		return &Binary{Op: e.Op, Left: Substitute(e.Left, old, repl), Right: Substitute(e.Right, old, repl)}
	case *Unary:
		return &Unary{Op: e.Op, X: Substitute(e.X, old, repl)}
	case *Cast:
		return &Cast{Bits: e.Bits, X: Substitute(e.X, old, repl)}
	case *Slice:
		return &Slice{X: Substitute(e.X, old, repl), Offset: e.Offset, Width: e.Width}
	case *Deposit:
		return &Deposit{Host: Substitute(e.Host, old, repl), Inserted: Substitute(e.Inserted, old, repl), Pos: e.Pos}
	case *MemAccess:
		return &MemAccess{EA: Substitute(e.EA, old, repl), DataBits: e.DataBits}
	case *SegMemAccess:
		return &SegMemAccess{Seg: Substitute(e.Seg, old, repl), EA: Substitute(e.EA, old, repl), DataBits: e.DataBits}
	case *Seq:
		return &Seq{Head: Substitute(e.Head, old, repl), Tail: Substitute(e.Tail, old, repl), Width: e.Width}
	case *ConditionOf:
		return &ConditionOf{X: Substitute(e.X, old, repl)}
	case *TestCondition:
		return &TestCondition{Code: e.Code, X: Substitute(e.X, old, repl)}
	case *Deref:
		return &Deref{X: Substitute(e.X, old, repl)}
	default:
		return root
	}
}
