// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package execblock defines the ExecBlock interface the manager consumes
// (spec §6.2) and a concrete, host-memory-backed implementation used by
// tests and the demo CLI. Per spec §1, ExecBlock is "an opaque resource";
// the manager only ever reaches it through this interface.
package execblock

import (
	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/patch"
)

// SeqType tags what role a sequence plays in its owning basic block (spec
// §4.3 step 4b).
type SeqType uint8

const (
	// Entry marks a sequence starting at the first patch of the basic
	// block being written (i.e. not a continuation written after an
	// earlier ExecBlock filled up, and not a split-off entry point).
	Entry SeqType = 1 << iota
	// Exit marks a sequence ending at the basic block's last patch
	// (i.e. the write was not truncated against an existing cache hit).
	Exit
)

// FullBlock is the sentinel SeqWriteResult.SeqID value signaling that an
// ExecBlock refused a write outright (spec §6.2's EXEC_BLOCK_FULL).
const FullBlock uint16 = 0xFFFF

// SeqWriteResult reports how much of a requested sequence an ExecBlock
// accepted. PatchWritten may be less than len(patches): an ExecBlock is
// allowed to accept a prefix and let the caller continue on the next block
// (spec §7: "the contract of writeSequence guarantees progress on a fresh
// block").
type SeqWriteResult struct {
	SeqID        uint16
	PatchWritten uint16
	BytesWritten uint32
}

// ExecBlock is the consumed interface from spec §6.2.
type ExecBlock interface {
	// WriteSequence appends as much of patches as fits, as one sequence
	// of the given type. Returns SeqWriteResult{SeqID: FullBlock} if
	// nothing at all could be written.
	WriteSequence(patches []patch.Patch, seqType SeqType) SeqWriteResult

	// SplitSequence manufactures a new entry point into the
	// already-written sequence that owns instID, starting at instID,
	// without re-emitting any instructions.
	SplitSequence(instID uint16) uint16

	// SelectSeq arms the block's dispatcher selector for seqID.
	SelectSeq(seqID uint16)

	// GetSeqID returns the sequence that originally wrote instID. This
	// is stable across SplitSequence: splitting never reassigns an
	// instruction's owning sequence (spec §4.4 step 3a relies on this
	// to find the pre-split sequence's first instruction).
	GetSeqID(instID uint16) uint16

	GetSeqStart(seqID uint16) uint16
	GetSeqEnd(seqID uint16) uint16
	GetInstAddress(instID uint16) addr.Address

	// GetEpilogueOffset reports host bytes still writable in this
	// block, net of the block's own epilogue reserve.
	GetEpilogueOffset() uint32

	// OccupationRatio is the fraction of host capacity already used.
	OccupationRatio() float32
}
