// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rtl_test

import (
	"testing"

	"github.com/justinhachemeister/reko/rtl"
)

func TestEqualStructural(t *testing.T) {
	bl := rtl.NewIdent("bl", rtl.StorageDescriptor{Domain: "B", OffsetBits: 0, SizeBits: 8})
	bl2 := rtl.NewIdent("bl", rtl.StorageDescriptor{Domain: "B", OffsetBits: 0, SizeBits: 8})
	bh := rtl.NewIdent("bh", rtl.StorageDescriptor{Domain: "B", OffsetBits: 8, SizeBits: 8})

	if !rtl.Equal(bl, bl2) {
		t.Fatalf("expected two separately built identical idents to compare equal")
	}
	if rtl.Equal(bl, bh) {
		t.Fatalf("expected bl and bh to differ")
	}

	a := rtl.NewBinary(rtl.OpAdd, bl, rtl.NewConst(1, 8))
	b := rtl.NewBinary(rtl.OpAdd, bl2, rtl.NewConst(1, 8))
	if !rtl.Equal(a, b) {
		t.Fatalf("expected structurally identical binaries to compare equal")
	}
}

func TestStorageAliasAndContains(t *testing.T) {
	bx := rtl.StorageDescriptor{Domain: "B", OffsetBits: 0, SizeBits: 16}
	bl := rtl.StorageDescriptor{Domain: "B", OffsetBits: 0, SizeBits: 8}
	bh := rtl.StorageDescriptor{Domain: "B", OffsetBits: 8, SizeBits: 8}
	ax := rtl.StorageDescriptor{Domain: "A", OffsetBits: 0, SizeBits: 16}

	if !bx.Aliases(bl) || !bx.Aliases(bh) {
		t.Fatalf("expected bl and bh to alias bx's domain")
	}
	if bx.Aliases(ax) {
		t.Fatalf("did not expect bx to alias ax (different domain)")
	}
	if !bx.Contains(bl) || !bx.Contains(bh) {
		t.Fatalf("expected bx to contain both halves")
	}
	if bl.Contains(bx) {
		t.Fatalf("did not expect the narrower bl to contain the wider bx")
	}
}

func TestRangeOf(t *testing.T) {
	ax := rtl.NewIdent("ax", rtl.StorageDescriptor{Domain: "A", OffsetBits: 0, SizeBits: 16})
	if got := rtl.RangeOf(ax); got.Width() != 16 {
		t.Fatalf("RangeOf(ax) width = %d, want 16", got.Width())
	}
	mem := rtl.NewMemAccess(ax, 32)
	if got := rtl.RangeOf(mem); got.Width() != 32 {
		t.Fatalf("RangeOf(mem32[ax]) width = %d, want 32", got.Width())
	}
}
