// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manager

import (
	"fmt"
	"io"
)

// PrintCacheStatistics writes a human-readable region occupancy summary to
// w (spec §6.4): region count; per region, covered range in hex, block
// count, and mean occupation ratio across its blocks; then the overall
// mean occupation; then the count of regions with more than one block
// ("region overflow").
func (m *Manager) PrintCacheStatistics(w io.Writer) {
	fmt.Fprintf(w, "regions: %d\n", len(m.regions))

	var overallSum float64
	var overallBlocks int
	var overflow int

	for i, r := range m.regions {
		var sum float64
		for _, b := range r.Blocks {
			sum += float64(b.OccupationRatio())
		}
		mean := 0.0
		if len(r.Blocks) > 0 {
			mean = sum / float64(len(r.Blocks))
		}
		fmt.Fprintf(w, "  region %d: covered=[0x%x, 0x%x) blocks=%d mean_occupation=%.3f\n",
			i, r.Covered.Start, r.Covered.End, len(r.Blocks), mean)

		overallSum += sum
		overallBlocks += len(r.Blocks)
		if len(r.Blocks) > 1 {
			overflow++
		}
	}

	overallMean := 0.0
	if overallBlocks > 0 {
		overallMean = overallSum / float64(overallBlocks)
	}
	fmt.Fprintf(w, "overall mean occupation: %.3f\n", overallMean)
	fmt.Fprintf(w, "region overflow: %d\n", overflow)
}
