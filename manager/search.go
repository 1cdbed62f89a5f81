// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import "github.com/ehabhussein/qbdi/addr"

// searchRegion returns either the region covering address, or the
// rightmost region whose start is <= address (spec §4.1). Callers must
// check regions[r].Covered.Contains(address) before treating the result
// as a hit: this is intentional, since admission uses the "closest"
// region as a starting point for extension search.
func (m *Manager) searchRegion(address addr.Address) int {
	if len(m.regions) == 0 {
		return 0
	}
	if m.search.valid && m.search.address == address {
		return m.search.regionIdx
	}

	low, high := 0, len(m.regions)
	for low+1 < high {
		mid := (low + high) / 2
		switch {
		case m.regions[mid].Covered.Start > address:
			high = mid
		case m.regions[mid].Covered.End <= address:
			low = mid
		default:
			m.setSearchCache(address, mid)
			return mid
		}
	}

	m.setSearchCache(address, low)
	return low
}

func (m *Manager) setSearchCache(address addr.Address, idx int) {
	m.search = searchCache{address: address, regionIdx: idx, valid: true}
}

func (m *Manager) resetSearchCache() {
	m.search = searchCache{}
}
