// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package x86dom_test

import (
	"testing"

	"github.com/twitchyliquid64/golang-asm/obj/x86"

	"github.com/justinhachemeister/reko/internal/x86dom"
	"github.com/justinhachemeister/reko/rtl"
)

func TestByteRegistersShareDomainWithWordForm(t *testing.T) {
	bx := x86dom.Storage(x86.REG_BX, 16)
	bl := x86dom.Storage(x86.REG_BL, 8)
	bh := x86dom.Storage(x86.REG_BH, 8)

	if !bx.Contains(bl) || !bx.Contains(bh) {
		t.Fatalf("expected bx to contain both bl and bh: bx=%v bl=%v bh=%v", bx, bl, bh)
	}
	if bh.OffsetBits != 8 {
		t.Fatalf("bh offset = %d, want 8", bh.OffsetBits)
	}
	if bx.Domain != bl.Domain || bx.Domain != bh.Domain {
		t.Fatalf("expected bx, bl, bh to share a domain")
	}
}

func TestDifferentRegistersDoNotAlias(t *testing.T) {
	ax := x86dom.Storage(x86.REG_AX, 16)
	cx := x86dom.Storage(x86.REG_CX, 16)
	if ax.Aliases(cx) {
		t.Fatalf("did not expect ax and cx to alias")
	}
}

func TestIdentBuildsUsableIdentifier(t *testing.T) {
	bh := x86dom.Ident("bh", x86.REG_BH, 8)
	if _, ok := rtl.Expr(bh).(*rtl.Ident); !ok {
		t.Fatalf("Ident did not return an *rtl.Ident")
	}
	if bh.Storage.OffsetBits != 8 || bh.Storage.SizeBits != 8 {
		t.Fatalf("bh storage = %+v, want offset 8 size 8", bh.Storage)
	}
}
