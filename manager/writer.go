// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/errors"
	"github.com/ehabhussein/qbdi/execblock"
	"github.com/ehabhussein/qbdi/internal/pan"
	"github.com/ehabhussein/qbdi/patch"
	"github.com/ehabhussein/qbdi/region"
)

// WriteBasicBlock translates basicBlock into one or more sequences,
// allocating ExecBlocks and regions as needed, and populates every cache
// that getSeqLoc/getBBInfo rely on (spec §4.3). basicBlock must be
// non-empty and in ascending, contiguous guest order; violating either is
// a contract error and panics (spec §7).
func (m *Manager) WriteBasicBlock(basicBlock patch.BasicBlock) {
	basicBlock.Validate()

	first := basicBlock[0].Metadata
	last := basicBlock[len(basicBlock)-1].Metadata
	codeRange := addr.Range{Start: first.Address, End: last.End()}

	r := m.findRegion(codeRange)

	// Truncation against duplicates (spec §4.3 step 2): stop at the
	// first patch whose address is already a sequence entry point.
	patchEnd := len(basicBlock)
	for i, p := range basicBlock {
		if _, hit := r.SequenceCache[p.Metadata.Address]; hit {
			patchEnd = i
			break
		}
	}
	if patchEnd == 0 {
		return
	}

	r.BBRegistry = append(r.BBRegistry, region.BBInfo{Start: first.Address, End: last.End()})
	bbIdx := uint16(len(r.BBRegistry) - 1)

	var translated addr.Address
	var translation uint32

	patchIdx := 0
	for patchIdx < patchEnd {
		seqType := execblock.SeqType(0)
		if patchIdx == 0 {
			seqType |= execblock.Entry
		}
		if patchEnd == len(basicBlock) {
			seqType |= execblock.Exit
		}

		remaining := []patch.Patch(basicBlock[patchIdx:patchEnd])

		blockIdx, block, res := m.writeToAcceptingBlock(r, remaining, seqType)
		if res.SeqID == execblock.FullBlock {
			var err error
			blockIdx, block, err = m.newBlock(r)
			pan.Check(err)
			res = block.WriteSequence(remaining, seqType)
			if res.SeqID == execblock.FullBlock {
				// writeSequence on a fresh block guarantees progress
				// (spec §7); a block too small for even one patch is a
				// contract violation of the allocator, not a condition
				// this loop can make progress against.
				pan.Panic(errors.New("manager: fresh ExecBlock refused to write any patch"))
			}
		}

		firstAddr := basicBlock[patchIdx].Metadata.Address
		r.SequenceCache[firstAddr] = region.SeqLoc{Block: block, SeqID: res.SeqID, BBIdx: bbIdx}

		startID := block.GetSeqStart(res.SeqID)
		endID := block.GetSeqEnd(res.SeqID)
		for id := startID; id <= endID; id++ {
			off := int(id) - int(startID)
			r.InstCache[basicBlock[patchIdx+off].Metadata.Address] = region.InstLoc{
				BlockIdx: uint16(blockIdx),
				InstID:   id,
			}
		}

		lastWritten := basicBlock[patchIdx+int(res.PatchWritten)-1].Metadata
		translated += lastWritten.End() - firstAddr
		translation += res.BytesWritten

		patchIdx += int(res.PatchWritten)
	}

	m.totalTranslationSize += uint64(translation)
	m.totalTranslatedSize += uint64(translated)

	m.updateRegionStat(r, translated)
}

// writeToAcceptingBlock scans r.Blocks from index 0 upward, offering
// patches to each until one accepts at least one of them (spec §4.3 step
// 4a). If no existing block accepts, it returns a FullBlock result without
// allocating; the caller decides whether to allocate a successor.
func (m *Manager) writeToAcceptingBlock(r *region.Region, patches []patch.Patch, seqType execblock.SeqType) (int, execblock.ExecBlock, execblock.SeqWriteResult) {
	for idx, b := range r.Blocks {
		res := b.WriteSequence(patches, seqType)
		if res.SeqID != execblock.FullBlock {
			return idx, b, res
		}
	}
	return -1, nil, execblock.SeqWriteResult{SeqID: execblock.FullBlock}
}

// newBlock allocates a fresh ExecBlock and appends it to r.
func (m *Manager) newBlock(r *region.Region) (int, execblock.ExecBlock, error) {
	b, err := m.alloc()
	if err != nil {
		return 0, nil, err
	}
	r.Blocks = append(r.Blocks, b)
	return len(r.Blocks) - 1, b, nil
}

// updateRegionStat recomputes r.Available after translating
// translatedBytes more guest bytes into it (spec §4.3 step 6). It always
// reads blocks[0]'s epilogue offset even if the region has grown past one
// block; the spec preserves this as a known, possibly conservative
// behavior (§9) rather than redesigning it.
func (m *Manager) updateRegionStat(r *region.Region, translatedBytes addr.Address) {
	r.Translated += translatedBytes

	avail := r.Blocks[0].GetEpilogueOffset()

	remaining := r.Covered.Size() - r.Translated
	reserved := uint32(float64(remaining) * m.GetExpansionRatio())

	if avail > reserved {
		r.Available = avail - reserved
	} else {
		r.Available = 0
	}
}
