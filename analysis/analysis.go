// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis builds InstAnalysis values from instruction metadata,
// layered by requested facet (spec §4.5). The assembler and
// instruction-info tables it needs are out of scope (spec §1) and are
// consumed only through the Decoder, RegisterInfo, Disassembler, and
// Symbolizer interfaces in this package.
package analysis

import (
	"github.com/ehabhussein/qbdi/addr"
)

// Type is the facet bitset requested from / stored on an InstAnalysis
// (spec §4.5).
type Type uint8

const (
	Disassembly Type = 1 << iota
	Instruction
	Operands
	Symbol
)

// Has reports whether every facet in want is present in t.
func (t Type) Has(want Type) bool { return t&want == want }

// OperandType classifies one analyzed operand (spec §4.5.1).
type OperandType uint8

const (
	OperandGPR OperandType = iota
	OperandImm
	OperandPred
)

// RegisterAccess is an OR-able read/write bitset.
type RegisterAccess uint8

const (
	Read      RegisterAccess = 1 << iota
	Write
	ReadWrite = Read | Write
)

// OperandAnalysis describes one operand of an analyzed instruction (spec
// §4.5.1).
type OperandAnalysis struct {
	Type OperandType

	// Register fields, valid when Type == OperandGPR.
	RegAccess RegisterAccess
	RegName   string
	Size      uint8
	RegOff    uint8
	RegCtxIdx uint16

	// Value holds the register number when Type == OperandGPR, or the
	// immediate value when Type is OperandImm/OperandPred.
	Value int64
}

// InstAnalysis is the cached, facet-layered view of one guest instruction
// (spec §4.5).
type InstAnalysis struct {
	AnalysisType Type

	// Populated when AnalysisType has Instruction.
	Address           addr.Address
	InstSize          uint16
	AffectControlFlow bool
	IsBranch          bool
	IsCall            bool
	IsReturn          bool
	IsCompare         bool
	IsPredicable      bool
	MayLoad           bool
	MayStore          bool
	Mnemonic          string

	// Populated when AnalysisType has Disassembly.
	Disassembly string

	// Populated when AnalysisType has Operands.
	Operands []OperandAnalysis

	// Populated when AnalysisType has Symbol and a symbol was found.
	Symbol       string
	SymbolOffset addr.Address
	Module       string
}
