// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"

	"github.com/bnagy/gapstone"

	"github.com/ehabhussein/qbdi/addr"
)

// GapstoneDisassembler is a Disassembler backed by the capstone binding,
// rendering one instruction at a time for the DISASSEMBLY facet (spec
// §4.5 step 3). It owns one gapstone engine for its lifetime; callers that
// no longer need it should call Close.
type GapstoneDisassembler struct {
	engine gapstone.Engine
}

// NewGapstoneDisassembler opens a capstone engine for the given
// architecture and mode (e.g. gapstone.CS_ARCH_X86, gapstone.CS_MODE_64)
// and renders AT&T-syntax output.
func NewGapstoneDisassembler(arch, mode int) (*GapstoneDisassembler, error) {
	engine, err := gapstone.New(arch, mode)
	if err != nil {
		return nil, err
	}
	if err := engine.SetOption(gapstone.CS_OPT_SYNTAX, gapstone.CS_OPT_SYNTAX_ATT); err != nil {
		engine.Close()
		return nil, err
	}
	return &GapstoneDisassembler{engine: engine}, nil
}

// Close releases the underlying capstone engine.
func (d *GapstoneDisassembler) Close() error {
	return d.engine.Close()
}

// Disassemble renders the first instruction found in code. ok is false if
// capstone found nothing to decode there.
func (d *GapstoneDisassembler) Disassemble(code []byte, address addr.Address) (string, bool) {
	insns, err := d.engine.Disasm(code, uint64(address), 1)
	if err != nil || len(insns) == 0 {
		return "", false
	}
	in := insns[0]
	if in.OpStr == "" {
		return in.Mnemonic, true
	}
	return fmt.Sprintf("%s\t%s", in.Mnemonic, in.OpStr), true
}
