// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package patch

import (
	"testing"

	"github.com/ehabhussein/qbdi/addr"
)

func block(addrs ...addr.Address) BasicBlock {
	b := make(BasicBlock, len(addrs))
	for i, a := range addrs {
		b[i] = Patch{Metadata: InstMetadata{Address: a, InstSize: 4}}
	}
	return b
}

func TestValidateAccepts(t *testing.T) {
	b := block(0x1000, 0x1004, 0x1008)
	b.Validate() // must not panic
}

func TestValidatePanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Validate should panic on an empty basic block")
		}
	}()
	BasicBlock{}.Validate()
}

func TestValidatePanicsOnGap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Validate should panic on a non-contiguous basic block")
		}
	}()
	block(0x1000, 0x1008).Validate()
}

func TestCodeRange(t *testing.T) {
	b := block(0x1000, 0x1004, 0x1008)
	r := b.CodeRange()

	if r.Start != 0x1000 || r.End != 0x100C {
		t.Errorf("CodeRange() = [%#x, %#x), want [0x1000, 0x100c)", r.Start, r.End)
	}
}
