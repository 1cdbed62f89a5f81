// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package addr

import "testing"

func TestRangeContains(t *testing.T) {
	r := Range{0x1000, 0x1010}

	if !r.Contains(0x1000) {
		t.Error("range should contain its own start")
	}
	if r.Contains(0x1010) {
		t.Error("range should not contain its own end (half-open)")
	}
	if r.Contains(0x0FFF) {
		t.Error("range should not contain an address before its start")
	}
}

func TestRangeContainsRange(t *testing.T) {
	r := Range{0x1000, 0x2000}

	if !r.ContainsRange(Range{0x1000, 0x2000}) {
		t.Error("range should contain itself")
	}
	if !r.ContainsRange(Range{0x1500, 0x1600}) {
		t.Error("range should contain an interior range")
	}
	if r.ContainsRange(Range{0x1FF0, 0x2010}) {
		t.Error("range should not contain a range that extends past its end")
	}
}

func TestRangeOverlaps(t *testing.T) {
	r := Range{0x1000, 0x1010}

	if !r.Overlaps(Range{0x0FFF, 0x1001}) {
		t.Error("ranges sharing one address should overlap")
	}
	if r.Overlaps(Range{0x1010, 0x1020}) {
		t.Error("adjacent half-open ranges should not overlap")
	}
}

func TestRangeSize(t *testing.T) {
	if got := (Range{0x1000, 0x100C}).Size(); got != 0xC {
		t.Errorf("Size() = %#x, want 0xc", got)
	}
	if got := (Range{0x1000, 0x1000}).Size(); got != 0 {
		t.Errorf("Size() of an empty range = %#x, want 0", got)
	}
}
