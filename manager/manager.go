// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manager implements the execution block manager: the caching and
// lookup layer between a DBI engine's translator and its dispatcher (spec
// §1). It owns all translated code buffers, maps guest instruction
// addresses to their translated locations, splits translated sequences on
// demand, invalidates regions when guest code changes, and supplies
// on-demand structural analyses of guest instructions.
package manager

import (
	"os"

	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/analysis"
	"github.com/ehabhussein/qbdi/execblock"
	"github.com/ehabhussein/qbdi/region"
)

// BlockAllocator manufactures fresh ExecBlocks on demand, standing in for
// the engine's host-OS executable-page allocator (out of scope, spec §1).
type BlockAllocator func() (execblock.ExecBlock, error)

// searchCache is the manager's 1-slot MRU region-index cache (spec §4.1).
type searchCache struct {
	address   addr.Address
	regionIdx int
	valid     bool
}

// Manager is the root ExecBlockManager (spec §3).
type Manager struct {
	regions []*region.Region

	// analysisCache is the fallback cache for analyses of instructions
	// not belonging to any region (spec §3, §4.5).
	analysisCache map[addr.Address]*analysis.InstAnalysis

	// flushList holds region indices queued for deletion by ClearCache,
	// applied by FlushCommit (spec §4.6). Duplicates are possible and
	// are deduped at commit time.
	flushList []int

	search searchCache

	// totalTranslatedSize and totalTranslationSize are both initialized
	// to 1 so the expansion ratio is always defined (spec §3, §9).
	totalTranslatedSize  uint64
	totalTranslationSize uint64

	alloc    BlockAllocator
	analyzer *analysis.Analyzer
}

// New constructs an empty Manager. alloc manufactures fresh ExecBlocks when
// a region's current ones are full; analyzer builds InstAnalysis values on
// cache misses (spec §4.5). Both are required collaborators the manager
// consumes only through their interfaces (spec §1).
func New(alloc BlockAllocator, analyzer *analysis.Analyzer) *Manager {
	return &Manager{
		analysisCache:        make(map[addr.Address]*analysis.InstAnalysis),
		totalTranslatedSize:  1,
		totalTranslationSize: 1,
		alloc:                alloc,
		analyzer:             analyzer,
	}
}

// GetExpansionRatio is the current guest-to-host bloat estimate (spec §3,
// §6.1): translated host bytes divided by translated guest bytes.
func (m *Manager) GetExpansionRatio() float64 {
	return float64(m.totalTranslationSize) / float64(m.totalTranslatedSize)
}

// Close prints final cache statistics and releases every region, mirroring
// the original engine's destructor-time diagnostic dump (spec §9 is silent
// on teardown logging; the original implementation logs before clearing).
func (m *Manager) Close() {
	m.PrintCacheStatistics(os.Stdout)
	m.clearAll()
}
