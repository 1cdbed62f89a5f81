// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program qbdidemo exercises the execution block manager against a
// synthetic stream of basic blocks, standing in for a real translator
// (out of scope, spec §1).
package main

import (
	"flag"
	"log"
	"os"

	"github.com/ehabhussein/qbdi/addr"
	"github.com/ehabhussein/qbdi/analysis"
	"github.com/ehabhussein/qbdi/execblock"
	"github.com/ehabhussein/qbdi/manager"
	"github.com/ehabhussein/qbdi/patch"
)

var verbose = false

const instSize = 4

// syntheticBlock manufactures a basic block of count contiguous
// instructions starting at start, each one nop-sized payload for instSize
// bytes, standing in for the engine's translator.
func syntheticBlock(start addr.Address, count int) patch.BasicBlock {
	bb := make(patch.BasicBlock, count)
	a := start
	for i := range bb {
		bb[i] = patch.Patch{
			Metadata: patch.InstMetadata{Address: a, InstSize: instSize, Bytes: []byte{0x90, 0x90, 0x90, 0x90}},
			Payload:  []byte{0x90, 0x90, 0x90, 0x90},
		}
		a += instSize
	}
	return bb
}

func main() {
	log.SetFlags(0)

	var (
		blockCapacity = 64 * 1024
		numBlocks     = 8
		blockLen      = 4
	)

	flag.BoolVar(&verbose, "verbose", verbose, "log every write and lookup")
	flag.IntVar(&blockCapacity, "blockcapacity", blockCapacity, "host bytes per ExecBlock")
	flag.IntVar(&numBlocks, "blocks", numBlocks, "number of synthetic basic blocks to write")
	flag.IntVar(&blockLen, "blocklen", blockLen, "instructions per synthetic basic block")
	flag.Parse()

	alloc := func() (execblock.ExecBlock, error) {
		return execblock.NewHostBlock(blockCapacity)
	}

	m := manager.New(alloc, &analysis.Analyzer{})
	defer m.Close()

	addrStep := addr.Address(blockLen * instSize)
	a := addr.Address(0x1000)
	for i := 0; i < numBlocks; i++ {
		block := syntheticBlock(a, blockLen)
		if verbose {
			log.Printf("writing block %d at 0x%x (%d instructions)", i, a, blockLen)
		}
		m.WriteBasicBlock(block)
		a += addrStep
	}

	if loc := m.GetSeqLoc(0x1000); loc.IsNull() {
		log.Fatal("lookup of the first written address should not miss")
	} else if verbose {
		log.Printf("lookup of 0x1000 hit seqID=%d", loc.SeqID)
	}

	m.PrintCacheStatistics(os.Stdout)
}
