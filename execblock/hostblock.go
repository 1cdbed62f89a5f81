// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package execblock

import (
	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/buffer"
	"github.com/ehabhussein/qbdi/errors"
	"github.com/ehabhussein/qbdi/patch"
)

type instRecord struct {
	address addr.Address
	seqID   uint16
}

type seqRecord struct {
	start uint16
	end   uint16
	typ   SeqType
}

// HostBlock is a concrete ExecBlock backed by a fixed-capacity byte slab
// (buffer.Static). It is not mapped as executable host memory — real
// executable-page allocation and W^X management are out of scope (spec
// §1) — it exists so the manager's region/writer/lookup logic can be
// exercised against something concrete.
type HostBlock struct {
	buf      buffer.Static
	insts    []instRecord
	seqs     []seqRecord
	selected uint16
}

// NewHostBlock allocates a block with room for capacity bytes of
// instrumented machine code.
func NewHostBlock(capacity int) (*HostBlock, error) {
	if capacity <= 0 {
		return nil, errors.New("execblock: capacity must be positive")
	}
	return &HostBlock{buf: buffer.MakeStatic(make([]byte, 0, capacity))}, nil
}

func (b *HostBlock) WriteSequence(patches []patch.Patch, seqType SeqType) SeqWriteResult {
	startInstID := uint16(len(b.insts))
	seqID := uint16(len(b.seqs))

	var written int
	var bytesWritten uint32

	for _, p := range patches {
		dst, ok := b.buf.TryExtend(len(p.Payload))
		if !ok {
			break
		}
		copy(dst, p.Payload)
		b.insts = append(b.insts, instRecord{address: p.Metadata.Address, seqID: seqID})
		bytesWritten += uint32(len(p.Payload))
		written++
	}
	if written == 0 {
		return SeqWriteResult{SeqID: FullBlock}
	}

	b.seqs = append(b.seqs, seqRecord{
		start: startInstID,
		end:   startInstID + uint16(written) - 1,
		typ:   seqType,
	})

	return SeqWriteResult{
		SeqID:        seqID,
		PatchWritten: uint16(written),
		BytesWritten: bytesWritten,
	}
}

func (b *HostBlock) SplitSequence(instID uint16) uint16 {
	orig := b.insts[instID].seqID
	newSeqID := uint16(len(b.seqs))
	b.seqs = append(b.seqs, seqRecord{
		start: instID,
		end:   b.seqs[orig].end,
		typ:   b.seqs[orig].typ &^ Entry,
	})
	return newSeqID
}

func (b *HostBlock) SelectSeq(seqID uint16) { b.selected = seqID }

func (b *HostBlock) SelectedSeq() uint16 { return b.selected }

func (b *HostBlock) GetSeqID(instID uint16) uint16 { return b.insts[instID].seqID }

func (b *HostBlock) GetSeqStart(seqID uint16) uint16 { return b.seqs[seqID].start }

func (b *HostBlock) GetSeqEnd(seqID uint16) uint16 { return b.seqs[seqID].end }

func (b *HostBlock) GetInstAddress(instID uint16) addr.Address { return b.insts[instID].address }

func (b *HostBlock) GetEpilogueOffset() uint32 { return uint32(b.buf.Remaining()) }

func (b *HostBlock) OccupationRatio() float32 {
	if b.buf.Cap() == 0 {
		return 1
	}
	return float32(b.buf.Len()) / float32(b.buf.Cap())
}
