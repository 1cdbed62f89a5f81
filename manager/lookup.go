// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/execblock"
	"github.com/ehabhussein/qbdi/region"
)

// GetSeqLoc resolves a guest address to a runnable sequence, splitting an
// existing sequence mid-stream if needed (spec §4.4). Returns
// region.NullSeqLoc on a miss; a miss is not an error (spec §7).
func (m *Manager) GetSeqLoc(address addr.Address) region.SeqLoc {
	idx := m.searchRegion(address)
	if idx >= len(m.regions) || !m.regions[idx].Covered.Contains(address) {
		return region.NullSeqLoc
	}
	r := m.regions[idx]

	if loc, hit := r.SequenceCache[address]; hit {
		return loc
	}

	instLoc, hit := r.InstCache[address]
	if !hit {
		return region.NullSeqLoc
	}

	block := r.Blocks[instLoc.BlockIdx]

	// Resolve the pre-split sequence's first instruction address via the
	// original's three-call chain (GetSeqID -> GetSeqStart ->
	// GetInstAddress), rather than shortcutting through any cache.
	existingSeqID := block.GetSeqID(instLoc.InstID)
	existingStartID := block.GetSeqStart(existingSeqID)
	existingBBAddress := block.GetInstAddress(existingStartID)

	existingLoc, hit := r.SequenceCache[existingBBAddress]
	if !hit {
		return region.NullSeqLoc
	}
	existingBB := r.BBRegistry[existingLoc.BBIdx]

	r.BBRegistry = append(r.BBRegistry, region.BBInfo{Start: address, End: existingBB.End})
	newBBIdx := uint16(len(r.BBRegistry) - 1)

	newSeqID := block.SplitSequence(instLoc.InstID)

	loc := region.SeqLoc{Block: block, SeqID: newSeqID, BBIdx: newBBIdx}
	r.SequenceCache[address] = loc
	return loc
}

// GetExecBlock resolves address to a sequence and arms that block's
// dispatcher selector for it, returning nil on a miss (spec §4.4).
func (m *Manager) GetExecBlock(address addr.Address) execblock.ExecBlock {
	loc := m.GetSeqLoc(address)
	if loc.IsNull() {
		return nil
	}
	loc.Block.SelectSeq(loc.SeqID)
	return loc.Block
}

// GetBBInfo returns a basic block's guest-address footprint. Unlike
// GetSeqLoc it is strict: it hits only on SequenceCache and never splits
// (spec §4.4). It returns a value copy rather than a pointer into a
// Region's BBRegistry, since WriteBasicBlock/GetSeqLoc can reallocate that
// slice via append (see the Open Question decision in SPEC_FULL.md).
func (m *Manager) GetBBInfo(address addr.Address) (region.BBInfo, bool) {
	idx := m.searchRegion(address)
	if idx >= len(m.regions) || !m.regions[idx].Covered.Contains(address) {
		return region.BBInfo{}, false
	}
	r := m.regions[idx]

	loc, hit := r.SequenceCache[address]
	if !hit {
		return region.BBInfo{}, false
	}
	return r.BBRegistry[loc.BBIdx], true
}
