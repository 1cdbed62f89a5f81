// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"github.com/ehabhussein/qbdi/analysis"
	"github.com/ehabhussein/qbdi/patch"
)

// AnalyzeInstMetadata builds (or reuses) the InstAnalysis for metadata
// covering at least the requested facets (spec §4.5). It picks the cache
// belonging to the region containing metadata.Address, falling back to
// the manager-global cache for instructions outside any region.
func (m *Manager) AnalyzeInstMetadata(metadata patch.InstMetadata, typ analysis.Type) *analysis.InstAnalysis {
	cache := m.analysisCache

	idx := m.searchRegion(metadata.Address)
	if idx < len(m.regions) && m.regions[idx].Covered.Contains(metadata.Address) {
		cache = m.regions[idx].AnalysisCache
	}

	if cached, hit := cache[metadata.Address]; hit && cached.AnalysisType.Has(typ) {
		return cached
	}

	fresh := m.analyzer.Build(metadata, typ)
	cache[metadata.Address] = fresh
	return fresh
}
