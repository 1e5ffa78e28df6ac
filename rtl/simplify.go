// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl

// Simplify rewrites an expression to an equivalent, smaller form: it
// constant-folds arithmetic on literal operands and flattens redundant
// casts. Identifiers and memory reads are opaque — the evaluation context
// is never consulted, so Simplify can never invent a symbolic value that
// wasn't already present in the tree handed to it. This is what makes it
// safe to call after every substitution the statement visitor performs.
func Simplify(e Expr) Expr {
	switch v := e.(type) {
	case *Binary:
		left := Simplify(v.Left)
		right := Simplify(v.Right)
		if lc, ok := left.(*Const); ok {
			if rc, ok := right.(*Const); ok {
				if folded, ok := foldConst(v.Op, lc, rc); ok {
					return folded
				}
			}
		}
		return &Binary{Op: v.Op, Left: left, Right: right}
	case *Unary:
		x := Simplify(v.X)
		if c, ok := x.(*Const); ok {
			switch v.Op {
			case OpNeg:
				return NewConst(-c.Value, c.Bits)
			case OpNot:
				return NewConst(^c.Value, c.Bits)
			}
		}
		return &Unary{Op: v.Op, X: x}
	case *Cast:
		x := Simplify(v.X)
		if inner, ok := x.(*Cast); ok {
			// cast(n, cast(m, y)): the outer cast dominates when it is no
			// wider than the inner one; otherwise both are kept, since a
			// widening cast over a narrowing one is not a no-op.
			if v.Bits <= inner.Bits {
				return &Cast{Bits: v.Bits, X: inner.X}
			}
		}
		if c, ok := x.(*Const); ok {
			return NewConst(c.Value, v.Bits)
		}
		return &Cast{Bits: v.Bits, X: x}
	case *Slice:
		x := Simplify(v.X)
		if v.Offset == 0 && RangeOf(x).Width() == v.Width {
			return x
		}
		return &Slice{X: x, Offset: v.Offset, Width: v.Width}
	case *Deposit:
		return &Deposit{Host: Simplify(v.Host), Inserted: Simplify(v.Inserted), Pos: v.Pos}
	case *MemAccess:
		return &MemAccess{EA: Simplify(v.EA), DataBits: v.DataBits}
	case *SegMemAccess:
		return &SegMemAccess{Seg: Simplify(v.Seg), EA: Simplify(v.EA), DataBits: v.DataBits}
	case *Seq:
		return &Seq{Head: Simplify(v.Head), Tail: Simplify(v.Tail), Width: v.Width}
	case *ConditionOf:
		return &ConditionOf{X: Simplify(v.X)}
	case *TestCondition:
		return &TestCondition{Code: v.Code, X: Simplify(v.X)}
	case *Deref:
		return &Deref{X: Simplify(v.X)}
	default:
		// Ident, Const, AddrConst, Application: opaque, returned unchanged.
		return e
	}
}

func foldConst(op BinOp, l, r *Const) (*Const, bool) {
	bits := l.Bits
	if r.Bits > bits {
		bits = r.Bits
	}
	switch op {
	case OpAdd:
		return NewConst(l.Value+r.Value, bits), true
	case OpSub:
		return NewConst(l.Value-r.Value, bits), true
	case OpAnd:
		return NewConst(l.Value&r.Value, bits), true
	case OpOr:
		return NewConst(l.Value|r.Value, bits), true
	case OpXor:
		return NewConst(l.Value^r.Value, bits), true
	case OpMul:
		return NewConst(l.Value*r.Value, bits), true
	case OpShl:
		return NewConst(l.Value<<uint(r.Value), bits), true
	case OpShr:
		return NewConst(l.Value>>uint(r.Value), bits), true
	default:
		return nil, false
	}
}
