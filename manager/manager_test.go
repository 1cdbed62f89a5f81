// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"testing"

	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/analysis"
	"github.com/ehabhussein/qbdi/execblock"
	"github.com/ehabhussein/qbdi/patch"
)

const testBlockCapacity = 4096

func newTestManager() *Manager {
	alloc := func() (execblock.ExecBlock, error) {
		return execblock.NewHostBlock(testBlockCapacity)
	}
	return New(alloc, &analysis.Analyzer{})
}

func mkBlock(addrs ...addr.Address) patch.BasicBlock {
	bb := make(patch.BasicBlock, len(addrs))
	for i, a := range addrs {
		bb[i] = patch.Patch{
			Metadata: patch.InstMetadata{Address: a, InstSize: 4},
			Payload:  []byte{0x90, 0x90, 0x90, 0x90},
		}
	}
	return bb
}

func TestEmptyToOneBlock(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))

	if len(m.regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(m.regions))
	}
	r := m.regions[0]
	if r.Covered.Start != 0x1000 || r.Covered.End != 0x100C {
		t.Errorf("covered = %+v", r.Covered)
	}
	if len(r.Blocks) != 1 {
		t.Errorf("blocks = %d, want 1", len(r.Blocks))
	}
	if len(r.SequenceCache) != 1 {
		t.Errorf("sequenceCache entries = %d, want 1", len(r.SequenceCache))
	}
	if _, hit := r.SequenceCache[0x1000]; !hit {
		t.Error("sequenceCache missing entry at 0x1000")
	}
	if len(r.InstCache) != 3 {
		t.Errorf("instCache entries = %d, want 3", len(r.InstCache))
	}
	if len(r.BBRegistry) != 1 || r.BBRegistry[0].Start != 0x1000 || r.BBRegistry[0].End != 0x100C {
		t.Errorf("bbRegistry = %+v", r.BBRegistry)
	}
}

func TestReinsertionIsNoOp(t *testing.T) {
	m := newTestManager()
	block := mkBlock(0x1000, 0x1004, 0x1008)
	m.WriteBasicBlock(block)

	regionsBefore := len(m.regions)
	bbBefore := len(m.regions[0].BBRegistry)
	translatedBefore := m.totalTranslatedSize

	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))

	if len(m.regions) != regionsBefore {
		t.Errorf("region count changed: %d -> %d", regionsBefore, len(m.regions))
	}
	if len(m.regions[0].BBRegistry) != bbBefore {
		t.Errorf("bbRegistry grew on reinsertion: %d -> %d", bbBefore, len(m.regions[0].BBRegistry))
	}
	if m.totalTranslatedSize != translatedBefore {
		t.Errorf("totalTranslatedSize changed on reinsertion: %d -> %d", translatedBefore, m.totalTranslatedSize)
	}
}

func TestMidSequenceSplit(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))

	loc := m.GetSeqLoc(0x1004)
	if loc.IsNull() {
		t.Fatal("expected a non-null SeqLoc at 0x1004")
	}

	r := m.regions[0]
	if _, hit := r.SequenceCache[0x1004]; !hit {
		t.Error("sequenceCache should gain an entry at 0x1004")
	}
	if len(r.BBRegistry) != 2 {
		t.Fatalf("bbRegistry = %d entries, want 2", len(r.BBRegistry))
	}
	if r.BBRegistry[1].Start != 0x1004 || r.BBRegistry[1].End != 0x100C {
		t.Errorf("split bbInfo = %+v", r.BBRegistry[1])
	}
	if len(m.regions) != 1 || len(r.Blocks) != 1 {
		t.Errorf("split should not create regions or blocks: regions=%d blocks=%d", len(m.regions), len(r.Blocks))
	}
}

func TestRegionExtension(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))
	m.WriteBasicBlock(mkBlock(0x100C, 0x1010))

	if len(m.regions) != 1 {
		t.Fatalf("expected the second block to extend the existing region, got %d regions", len(m.regions))
	}
	if m.regions[0].Covered.End != 0x1014 {
		t.Errorf("covered.End = 0x%x, want 0x1014", m.regions[0].Covered.End)
	}
}

func TestNewRegionInsertion(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))
	m.WriteBasicBlock(mkBlock(0x9000))

	if len(m.regions) != 2 {
		t.Fatalf("regions = %d, want 2", len(m.regions))
	}
	if m.regions[0].Covered.End != 0x100C {
		t.Errorf("regions[0].Covered.End = 0x%x, want 0x100C", m.regions[0].Covered.End)
	}
	if m.regions[1].Covered.Start != 0x9000 || m.regions[1].Covered.End != 0x9004 {
		t.Errorf("regions[1].Covered = %+v", m.regions[1].Covered)
	}
}

func TestInvalidation(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))
	m.WriteBasicBlock(mkBlock(0x9000))

	m.ClearCache(addr.Range{Start: 0x0FFF, End: 0x1001})
	m.FlushCommit()

	if len(m.regions) != 1 {
		t.Fatalf("regions = %d, want 1", len(m.regions))
	}
	if m.regions[0].Covered.Start != 0x9000 {
		t.Errorf("surviving region = %+v", m.regions[0].Covered)
	}
	if m.search.valid {
		t.Error("search cache should be reset after FlushCommit")
	}
}

func TestClearCacheAllThenGetSeqLocMisses(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))

	m.ClearCacheAll()
	m.FlushCommit()

	if !m.GetSeqLoc(0x1000).IsNull() {
		t.Error("GetSeqLoc should miss after full invalidation")
	}
}

func TestRoundTripEveryAddressResolves(t *testing.T) {
	m := newTestManager()
	block := mkBlock(0x1000, 0x1004, 0x1008)
	m.WriteBasicBlock(block)

	for _, p := range block {
		if m.GetSeqLoc(p.Metadata.Address).IsNull() {
			t.Errorf("GetSeqLoc(0x%x) returned null after a fresh write", p.Metadata.Address)
		}
	}
}

func TestExpansionRatioStaysPositive(t *testing.T) {
	m := newTestManager()
	if m.GetExpansionRatio() != 1 {
		t.Errorf("initial ratio = %v, want 1", m.GetExpansionRatio())
	}
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))
	if m.totalTranslatedSize < 1 || m.totalTranslationSize < 1 {
		t.Errorf("totals dropped below 1: translated=%d translation=%d", m.totalTranslatedSize, m.totalTranslationSize)
	}
}

func TestGetBBInfoIsStrict(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))

	if _, hit := m.GetBBInfo(0x1004); hit {
		t.Error("GetBBInfo should miss on a mid-sequence address without a prior split")
	}
	if info, hit := m.GetBBInfo(0x1000); !hit || info.Start != 0x1000 {
		t.Errorf("GetBBInfo(0x1000) = %+v, hit=%v", info, hit)
	}

	m.GetSeqLoc(0x1004)
	if info, hit := m.GetBBInfo(0x1004); !hit || info.Start != 0x1004 {
		t.Errorf("GetBBInfo(0x1004) after split = %+v, hit=%v", info, hit)
	}
}

func TestGetExecBlockArmsSelector(t *testing.T) {
	m := newTestManager()
	m.WriteBasicBlock(mkBlock(0x1000, 0x1004, 0x1008))

	b := m.GetExecBlock(0x1000)
	if b == nil {
		t.Fatal("expected a non-nil block")
	}
	hb := b.(*execblock.HostBlock)
	if hb.SelectedSeq() != 0 {
		t.Errorf("selected seq = %d, want 0", hb.SelectedSeq())
	}

	if m.GetExecBlock(0xDEAD) != nil {
		t.Error("GetExecBlock should return nil on a miss")
	}
}
