// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl

import (
	"fmt"

	"github.com/justinhachemeister/reko/ival"
)

// Expr is an RTL expression. Implementations are immutable, acyclic trees;
// Equal and String both work from structure, never from reference identity,
// so that two separately-built but identical expressions compare equal —
// required for the liveness map's structural keys (see slicer.LiveMap).
type Expr interface {
	isExpr()
	String() string
}

// Equal reports structural equality between two expressions.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// ConditionCode names the flag test a branch or TestCondition checks.
// Only ULE and UGE are wired to an interval constructor by default (see
// slicer.New); the others exist so a host can register additional
// constructors via slicer.WithConditionCodes without forking this type.
type ConditionCode int

const (
	CCNone ConditionCode = iota
	CCULE                // unsigned <=
	CCUGE                // unsigned >=
	CCULT                // unsigned <
	CCUGT                // unsigned >
	CCEQ                 // ==
	CCNE                 // !=
)

// Invert returns the condition code tested when a branch's fall-through
// (rather than taken) edge is the one being sliced along.
func (c ConditionCode) Invert() ConditionCode {
	switch c {
	case CCULE:
		return CCUGT
	case CCUGE:
		return CCULT
	case CCULT:
		return CCUGE
	case CCUGT:
		return CCULE
	case CCEQ:
		return CCNE
	case CCNE:
		return CCEQ
	default:
		return CCNone
	}
}

func (c ConditionCode) String() string {
	switch c {
	case CCULE:
		return "ule"
	case CCUGE:
		return "uge"
	case CCULT:
		return "ult"
	case CCUGT:
		return "ugt"
	case CCEQ:
		return "eq"
	case CCNE:
		return "ne"
	default:
		return "none"
	}
}

// BinOp names a binary expression's operator.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpMul
)

func (o BinOp) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpMul:
		return "*"
	default:
		return "?"
	}
}

// UnOp names a unary expression's operator.
type UnOp int

const (
	OpNeg UnOp = iota
	OpNot
)

func (o UnOp) String() string {
	if o == OpNot {
		return "!"
	}
	return "-"
}

// Ident is a storage reference: a register, pseudo-register, or local.
type Ident struct {
	Name    string
	Storage StorageDescriptor
}

func NewIdent(name string, storage StorageDescriptor) *Ident { return &Ident{Name: name, Storage: storage} }

func (*Ident) isExpr()           {}
func (i *Ident) String() string { return i.Name }

// Const is an integer constant of a given bit width.
type Const struct {
	Value int64
	Bits  int
}

func NewConst(value int64, bits int) *Const { return &Const{Value: value, Bits: bits} }

func (*Const) isExpr() {}
func (c *Const) String() string {
	return fmt.Sprintf("%#x", uint64(c.Value)&((1<<uint(c.Bits))-1))
}

// AsI64 returns the constant reinterpreted as a plain int64, as used when
// building a StridedInterval from a comparison or mask.
func (c *Const) AsI64() int64 { return c.Value }

// AddrConst is a literal code or data address.
type AddrConst struct {
	Addr uint64
}

func NewAddrConst(addr uint64) *AddrConst { return &AddrConst{Addr: addr} }

func (*AddrConst) isExpr()           {}
func (a *AddrConst) String() string { return fmt.Sprintf("0x%x", a.Addr) }

// Application is an opaque call to an intrinsic or pseudo-function; its
// operands are not tracked by the slicer (it is handled like a constant).
type Application struct {
	Callee string
	Args   []Expr
}

func (*Application) isExpr() {}
func (a *Application) String() string {
	s := a.Callee + "("
	for i, arg := range a.Args {
		if i > 0 {
			s += ", "
		}
		s += arg.String()
	}
	return s + ")"
}

// Binary is a two-operand arithmetic or logical expression.
type Binary struct {
	Op          BinOp
	Left, Right Expr
}

func NewBinary(op BinOp, left, right Expr) *Binary { return &Binary{Op: op, Left: left, Right: right} }

func (*Binary) isExpr() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Unary is a single-operand expression.
type Unary struct {
	Op UnOp
	X  Expr
}

func (*Unary) isExpr()           {}
func (u *Unary) String() string { return fmt.Sprintf("%s%s", u.Op, u.X) }

// Cast reinterprets or truncates/extends an inner expression to Bits wide.
type Cast struct {
	Bits int
	X    Expr
}

func NewCast(bits int, x Expr) *Cast { return &Cast{Bits: bits, X: x} }

func (*Cast) isExpr()           {}
func (c *Cast) String() string { return fmt.Sprintf("cast%d(%s)", c.Bits, c.X) }

// Slice extracts [Offset, Offset+Width) bits out of an inner expression.
type Slice struct {
	X             Expr
	Offset, Width int
}

func (*Slice) isExpr() {}
func (s *Slice) String() string {
	return fmt.Sprintf("slice(%s,%d,%d)", s.X, s.Offset, s.Width)
}

// Deposit inserts Inserted into Host at bit position Pos — the expression
// counterpart of a partial-register write.
type Deposit struct {
	Host, Inserted Expr
	Pos            int
}

func (*Deposit) isExpr() {}
func (d *Deposit) String() string {
	return fmt.Sprintf("deposit(%s,%s,%d)", d.Host, d.Inserted, d.Pos)
}

// MemAccess reads DataBits bits of memory at the effective address EA.
type MemAccess struct {
	EA       Expr
	DataBits int
}

func NewMemAccess(ea Expr, dataBits int) *MemAccess { return &MemAccess{EA: ea, DataBits: dataBits} }

func (*MemAccess) isExpr() {}
func (m *MemAccess) String() string {
	return fmt.Sprintf("mem%d[%s]", m.DataBits, m.EA)
}

// SegMemAccess is a segment-relative memory read.
type SegMemAccess struct {
	Seg, EA  Expr
	DataBits int
}

func (*SegMemAccess) isExpr() {}
func (m *SegMemAccess) String() string {
	return fmt.Sprintf("mem%d[%s:%s]", m.DataBits, m.Seg, m.EA)
}

// Seq concatenates Head (high bits) and Tail (low bits) into a Width-bit value.
type Seq struct {
	Head, Tail Expr
	Width      int
}

func (*Seq) isExpr() {}
func (s *Seq) String() string {
	return fmt.Sprintf("seq(%s,%s)", s.Head, s.Tail)
}

// ConditionOf queries the flag effects an expression would produce, written
// cof(e).
type ConditionOf struct {
	X Expr
}

func (*ConditionOf) isExpr() {}
func (c *ConditionOf) String() string { return fmt.Sprintf("cof(%s)", c.X) }

// TestCondition tests a condition code against an expression, written cc(e).
type TestCondition struct {
	Code ConditionCode
	X    Expr
}

func (*TestCondition) isExpr() {}
func (c *TestCondition) String() string {
	return fmt.Sprintf("%s(%s)", c.Code, c.X)
}

// Deref is an expression variant outside the enumerated set this slicer
// supports (e.g. a pointer dereference in a higher-level IR that hasn't
// been lowered). The slicer's expression visitor has no case for it and
// reports it as unsupported — see scenario 5 in the slicer tests.
type Deref struct {
	X Expr
}

func (*Deref) isExpr()           {}
func (d *Deref) String() string { return fmt.Sprintf("*(%s)", d.X) }

// RangeOf estimates the live bit range an expression occupies, used to seed
// a visiting context when the caller has no narrower range in mind.
func RangeOf(e Expr) ival.BitRange {
	switch v := e.(type) {
	case *Ident:
		return ival.NewBitRange(0, v.Storage.SizeBits)
	case *Const:
		return ival.NewBitRange(0, v.Bits)
	case *MemAccess:
		return ival.NewBitRange(0, v.DataBits)
	case *SegMemAccess:
		return ival.NewBitRange(0, v.DataBits)
	case *Cast:
		return ival.NewBitRange(0, v.Bits)
	case *Slice:
		return ival.NewBitRange(0, v.Width)
	case *Seq:
		return ival.NewBitRange(0, v.Width)
	case *AddrConst:
		return ival.NewBitRange(0, 64)
	default:
		return ival.NewBitRange(0, 64)
	}
}
