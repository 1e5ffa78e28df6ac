// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slicer

import "github.com/justinhachemeister/reko/rtl"

// liveEntry pairs a liveness-map key with the expression and context it
// was inserted under.
type liveEntry struct {
	expr rtl.Expr
	ctx  Context
}

// LiveMap maps an expression, compared by structural value equality, to a
// slicer Context. Go maps can't key on an interface whose underlying type
// holds slices or nested interfaces, so entries are keyed by the
// expression's canonical String() form (rtl.Expr's equality is defined the
// same way) rather than by the rtl.Expr value itself, standing in for
// hash-consing.
//
// Insertion order is not semantically significant, except for one case:
// an assignment's "first dead key" tie-break is defined here as
// first-inserted, since that is the only deterministic notion of order a
// Go map doesn't already give for free.
type LiveMap struct {
	order   []string
	entries map[string]liveEntry
}

// NewLiveMap returns an empty liveness map.
func NewLiveMap() *LiveMap {
	return &LiveMap{entries: make(map[string]liveEntry)}
}

// Len reports the number of live expressions.
func (m *LiveMap) Len() int { return len(m.entries) }

// Get looks up the context recorded for expr.
func (m *LiveMap) Get(expr rtl.Expr) (Context, bool) {
	e, ok := m.entries[expr.String()]
	if !ok {
		return Context{}, false
	}
	return e.ctx, true
}

// Insert adds expr with context ctx, merging with any existing entry for
// the same expression by keeping the wider bit range (Context.Max).
func (m *LiveMap) Insert(expr rtl.Expr, ctx Context) {
	key := expr.String()
	if existing, ok := m.entries[key]; ok {
		m.entries[key] = liveEntry{expr: expr, ctx: existing.ctx.Max(ctx)}
		return
	}
	m.order = append(m.order, key)
	m.entries[key] = liveEntry{expr: expr, ctx: ctx}
}

// Remove deletes expr from the map, if present.
func (m *LiveMap) Remove(expr rtl.Expr) {
	key := expr.String()
	if _, ok := m.entries[key]; !ok {
		return
	}
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// RemoveDomain removes every identifier entry aliasing domain, returning
// the removed entries in insertion order — the "dead" set an assignment's
// transfer function consults.
func (m *LiveMap) RemoveDomain(domain rtl.Domain) []liveEntry {
	var dead []liveEntry
	var remainingOrder []string
	for _, key := range m.order {
		e := m.entries[key]
		if id, ok := e.expr.(*rtl.Ident); ok && id.Storage.Domain == domain {
			dead = append(dead, e)
			delete(m.entries, key)
			continue
		}
		remainingOrder = append(remainingOrder, key)
	}
	m.order = remainingOrder
	return dead
}

// Union merges o into m, keeping the wider context for any expression
// present in both.
func (m *LiveMap) Union(o *LiveMap) {
	for _, key := range o.order {
		e := o.entries[key]
		m.Insert(e.expr, e.ctx)
	}
}

// Clone returns an independent copy, for fan-out to multiple predecessors.
func (m *LiveMap) Clone() *LiveMap {
	c := NewLiveMap()
	c.order = append([]string(nil), m.order...)
	for k, v := range m.entries {
		c.entries[k] = v
	}
	return c
}

// Exprs returns the live expressions in insertion order, mainly for tracing
// and tests.
func (m *LiveMap) Exprs() []rtl.Expr {
	out := make([]rtl.Expr, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.entries[key].expr)
	}
	return out
}
