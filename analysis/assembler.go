// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"github.com/ehabhussein/qbdi/addr"
)

// OperandKind is the kind of one operand slot, either as declared by an
// instruction's static descriptor or as actually decoded for one instance.
type OperandKind uint8

const (
	OperandInvalid OperandKind = iota
	OperandRegisterKind
	OperandImmediateKind
)

// DecodedOperand is one decoded operand of a specific instruction instance
// (spec §4.5.1's "explicit operands").
type DecodedOperand struct {
	Valid bool

	// Kind is what this instance actually decoded to; DeclaredKind is
	// what the opcode's static descriptor says this slot should be.
	// Spec §4.5.1 only analyzes a register/immediate operand "when the
	// operand descriptor declares" the matching kind, so both are
	// tracked separately.
	Kind         OperandKind
	DeclaredKind OperandKind
	IsPredicate  bool

	Reg uint16 // valid when Kind == OperandRegisterKind
	Imm int64  // valid when Kind == OperandImmediateKind
}

// InstrInfo is the opcode-level descriptor for one decoded instruction,
// standing in for QBDI's llvm::MCInstrInfo + llvm::MCInstrDesc (spec §1:
// "instruction info tables... referenced only by interface").
type InstrInfo interface {
	Mnemonic() string
	IsBranch() bool
	IsCall() bool
	IsReturn() bool
	IsCompare() bool
	IsPredicable() bool
	MayLoad() bool
	MayStore() bool

	// IsVariadic reports whether every explicit operand (not just the
	// first NumDefs) should be treated as a definition.
	IsVariadic() bool
	NumDefs() int

	ImplicitDefs() []uint16
	ImplicitUses() []uint16
}

// Decoder turns raw guest instruction bytes into an opcode-level
// descriptor and this instance's concrete operand values. Decoding itself
// — disassembly into structured form — is out of scope (spec §1); this is
// the seam the manager calls through.
type Decoder interface {
	Decode(code []byte) (InstrInfo, []DecodedOperand)
}

// RegisterInfo resolves a raw register number against the engine's GPR
// table, standing in for QBDI's llvm::MCRegisterInfo (spec §4.5.1:
// "resolve sub-register of the nearest GPR in the engine's GPR table").
type RegisterInfo interface {
	// ResolveSubRegister finds the GPR containing regNo (or regNo
	// itself, if it already is one) and returns the owning GPR's
	// context index plus the sub-register's size and byte offset
	// within it. ok is false if regNo isn't part of any GPR.
	ResolveSubRegister(regNo uint16) (gprCtxIdx uint16, size uint8, regOff uint8, ok bool)
	Name(regNo uint16) string
}

// Disassembler renders one instruction's raw bytes to text for the
// DISASSEMBLY facet (spec §4.5 step 3).
type Disassembler interface {
	Disassemble(code []byte, address addr.Address) (text string, ok bool)
}

// SymbolizeResult is the best-effort nearest-symbol lookup result (spec
// §6.3).
type SymbolizeResult struct {
	Name           string
	SymbolAddr     addr.Address
	ModuleFilePath string
	Found          bool
}

// Symbolizer resolves the nearest exported symbol at or before an address
// (spec §6.3). Platforms lacking this facility return a zero result.
type Symbolizer interface {
	Symbolize(a addr.Address) SymbolizeResult
}
