// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"sort"

	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/analysis"
)

// ClearCache queues every region overlapping r for deletion at the next
// FlushCommit (spec §4.6). Between this call and FlushCommit, queued
// regions remain queryable: deletion is two-phase so the engine can batch
// invalidations observed across one basic block.
func (m *Manager) ClearCache(r addr.Range) {
	for i, region := range m.regions {
		if region.Covered.Overlaps(r) {
			m.flushList = append(m.flushList, i)
		}
	}
}

// ClearCacheSet queues every region overlapping any range in set, then
// resets the expansion-ratio estimator: large-scale invalidation signals
// an instrumentation change the estimator should not carry forward (spec
// §4.6, §9).
func (m *Manager) ClearCacheSet(set addr.RangeSet) {
	for _, r := range set.Ranges() {
		m.ClearCache(r)
	}
	m.totalTranslatedSize = 1
	m.totalTranslationSize = 1
}

// ClearCacheAll queues every region in the manager for deletion.
func (m *Manager) ClearCacheAll() {
	for i := range m.regions {
		m.flushList = append(m.flushList, i)
	}
}

// FlushCommit erases every region queued by ClearCache/ClearCacheSet/
// ClearCacheAll, freeing their ExecBlocks and analyses, then purges the
// manager-global analysis cache and resets the search cache (spec §4.6).
// Regions are erased in descending index order so that earlier indices
// remain valid while later ones are removed.
func (m *Manager) FlushCommit() {
	indices := dedupeDescending(m.flushList)
	m.flushList = nil

	for _, i := range indices {
		m.regions = append(m.regions[:i], m.regions[i+1:]...)
	}

	m.analysisCache = make(map[addr.Address]*analysis.InstAnalysis)
	m.resetSearchCache()
}

// clearAll erases every region unconditionally, for Close.
func (m *Manager) clearAll() {
	m.ClearCacheAll()
	m.FlushCommit()
}

// dedupeDescending sorts indices in descending order and removes
// duplicates.
func dedupeDescending(indices []int) []int {
	if len(indices) == 0 {
		return nil
	}
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	out := sorted[:1]
	for _, i := range sorted[1:] {
		if i != out[len(out)-1] {
			out = append(out, i)
		}
	}
	return out
}
