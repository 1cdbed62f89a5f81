// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package region defines the manager's per-window state (spec §3, §4.1):
// a Region owns a slice of ExecBlocks and the caches keyed off the guest
// addresses translated into them.
package region

import (
	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/analysis"
	"github.com/ehabhussein/qbdi/execblock"
)

// BBInfo is a basic block's guest-address footprint (spec §3).
type BBInfo struct {
	Start addr.Address
	End   addr.Address
}

// SeqLoc identifies one translated sequence. The zero value, NullSeqLoc,
// has a nil Block and means "no sequence" (spec §3).
type SeqLoc struct {
	Block execblock.ExecBlock
	SeqID uint16
	BBIdx uint16
}

// NullSeqLoc is the null SeqLoc.
var NullSeqLoc = SeqLoc{}

// IsNull reports whether the location refers to no sequence.
func (s SeqLoc) IsNull() bool { return s.Block == nil }

// InstLoc indexes one translated instruction within a Region's block list
// (spec §3).
type InstLoc struct {
	BlockIdx uint16
	InstID   uint16
}

// Region is one contiguous guest-address window and everything translated
// into it (spec §3).
type Region struct {
	Covered addr.Range
	Blocks  []execblock.ExecBlock

	SequenceCache map[addr.Address]SeqLoc
	InstCache     map[addr.Address]InstLoc
	AnalysisCache map[addr.Address]*analysis.InstAnalysis

	// BBRegistry is append-only for the region's lifetime; BBIdx values
	// in SequenceCache index into it (spec §3).
	BBRegistry []BBInfo

	// Translated is the cumulative guest bytes translated into this
	// region (spec §3).
	Translated addr.Address

	// Available is the region's first ExecBlock's spare capacity, net
	// of the expansion-ratio reserve (spec §4.3 step 6).
	Available uint32
}

// New creates an empty region covering the given range (spec §4.2 step 6).
func New(covered addr.Range) *Region {
	return &Region{
		Covered:       covered,
		SequenceCache: make(map[addr.Address]SeqLoc),
		InstCache:     make(map[addr.Address]InstLoc),
		AnalysisCache: make(map[addr.Address]*analysis.InstAnalysis),
	}
}
