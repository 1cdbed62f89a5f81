// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"sort"

	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/region"
)

// candidateWindow is how many regions starting at searchRegion's result
// findRegion examines (spec §4.2 step 2).
const candidateWindow = 3

// findRegion selects a region to host codeRange, extending or inserting
// one as needed (spec §4.2).
func (m *Manager) findRegion(codeRange addr.Range) *region.Region {
	low := m.searchRegion(codeRange.Start)
	end := low + candidateWindow
	if end > len(m.regions) {
		end = len(m.regions)
	}

	for i := low; i < end; i++ {
		if m.regions[i].Covered.ContainsRange(codeRange) {
			m.setSearchCache(codeRange.Start, i)
			return m.regions[i]
		}
	}

	bestIdx := -1
	var bestCost addr.Address
	ratio := m.GetExpansionRatio()
	for i := low; i < end; i++ {
		r := m.regions[i]
		var growEnd, growStart addr.Address
		if codeRange.End > r.Covered.End {
			growEnd = codeRange.End - r.Covered.End
		}
		if r.Covered.Start > codeRange.Start {
			growStart = r.Covered.Start - codeRange.Start
		}
		cost := growEnd + growStart
		if float64(cost)*ratio >= float64(r.Available) {
			continue
		}
		if bestIdx == -1 || cost < bestCost {
			bestIdx, bestCost = i, cost
		}
	}

	if bestIdx != -1 {
		r := m.regions[bestIdx]
		r.Covered = widen(r.Covered, codeRange)
		m.setSearchCache(codeRange.Start, bestIdx)
		return r
	}

	return m.insertRegion(low, codeRange)
}

func widen(covered, codeRange addr.Range) addr.Range {
	out := covered
	if codeRange.Start < out.Start {
		out.Start = codeRange.Start
	}
	if codeRange.End > out.End {
		out.End = codeRange.End
	}
	return out
}

// insertRegion creates a fresh region covering codeRange and inserts it in
// covered.start order (spec §4.2 step 6).
func (m *Manager) insertRegion(low int, codeRange addr.Range) *region.Region {
	insertAt := sort.Search(len(m.regions)-low, func(i int) bool {
		return m.regions[low+i].Covered.Start > codeRange.Start
	}) + low

	r := region.New(codeRange)
	m.regions = append(m.regions, nil)
	copy(m.regions[insertAt+1:], m.regions[insertAt:])
	m.regions[insertAt] = r

	m.setSearchCache(codeRange.Start, insertAt)
	return r
}
