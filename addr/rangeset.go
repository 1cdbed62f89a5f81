// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package addr

// RangeSet is an ordered collection of address ranges, consumed by
// Manager.ClearCacheSet (spec §4.6 "clearCache(rangeSet)"). It performs no
// merging of overlapping ranges; each Range is processed independently by
// the caller.
type RangeSet struct {
	ranges []Range
}

// NewRangeSet builds a RangeSet from the given ranges, in order.
func NewRangeSet(ranges ...Range) RangeSet {
	return RangeSet{ranges: append([]Range(nil), ranges...)}
}

// Add appends a range to the set.
func (s *RangeSet) Add(r Range) {
	s.ranges = append(s.ranges, r)
}

// Ranges returns the set's ranges in insertion order. The caller must not
// mutate the returned slice.
func (s RangeSet) Ranges() []Range {
	return s.ranges
}
