// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patch defines the translator's output as consumed by the
// manager (spec §3). The translator itself — the component that decodes a
// guest instruction and emits its instrumented equivalent — is out of
// scope (spec §1); this package only shapes what it hands to
// manager.WriteBasicBlock.
package patch

import (
	"github.com/pkg/errors"

	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/internal/pan"
)

// InstMetadata carries the guest-side facts about one instruction that the
// manager needs: where it lives, how large it is in the guest's address
// space, whether it can redirect guest control flow, and the raw guest
// bytes the (out-of-scope) translator decoded it from — kept around so the
// analysis cache can disassemble or re-decode on demand (spec §4.5)
// without the manager having to re-read guest memory itself.
type InstMetadata struct {
	Address  addr.Address
	InstSize uint16
	ModifyPC bool
	Bytes    []byte
}

// End is the address one past the instruction's last guest byte.
func (m InstMetadata) End() addr.Address {
	return m.Address + addr.Address(m.InstSize)
}

// Patch is one translated guest instruction. Payload is the instrumented
// machine code the (out-of-scope) translator produced for it; the manager
// never interprets it, only copies it into an ExecBlock.
type Patch struct {
	Metadata InstMetadata
	Payload  []byte
}

// BasicBlock is an ordered sequence of Patches in ascending, contiguous
// guest order (spec §4.3's precondition).
type BasicBlock []Patch

// Validate enforces WriteBasicBlock's precondition: non-empty, and every
// patch immediately follows the previous one in guest address space. A
// violation is a contract error (spec §7), not a runtime condition the
// engine is expected to trigger in production, so it panics via pan rather
// than returning an error.
func (b BasicBlock) Validate() {
	if len(b) == 0 {
		pan.Panic(errors.New("basic block must not be empty"))
	}
	for i := 1; i < len(b); i++ {
		prevEnd := b[i-1].Metadata.End()
		if b[i].Metadata.Address != prevEnd {
			pan.Panic(errors.New("basic block patches must be contiguous and ascending"))
		}
	}
}

// CodeRange is the guest-address span the block covers: from its first
// patch's address to one past its last patch's last byte (spec §4.3 step
// 1).
func (b BasicBlock) CodeRange() addr.Range {
	first := b[0].Metadata
	last := b[len(b)-1].Metadata
	return addr.Range{Start: first.Address, End: last.End()}
}
