// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"github.com/ehabhussein/qbdi/patch"
)

// Analyzer builds InstAnalysis values on demand. Its collaborators are the
// out-of-scope (spec §1) instruction-info tables, register-info tables,
// disassembler, and symbolizer; the manager owns exactly one Analyzer and
// calls Build on every cache miss (spec §4.5).
type Analyzer struct {
	Decoder      Decoder
	RegisterInfo RegisterInfo
	Disassembler Disassembler
	Symbolizer   Symbolizer
}

// Build produces a fresh InstAnalysis for metadata, populating only the
// facets requested in typ (spec §4.5). It never touches a cache; the
// manager decides when a rebuild is needed and where the result is stored.
func (a *Analyzer) Build(metadata patch.InstMetadata, typ Type) *InstAnalysis {
	out := &InstAnalysis{AnalysisType: typ}

	var info InstrInfo
	var operands []DecodedOperand
	needsDecode := typ.Has(Instruction) || typ.Has(Operands)
	if needsDecode && a.Decoder != nil {
		info, operands = a.Decoder.Decode(metadata.Bytes)
	}

	if typ.Has(Instruction) {
		out.Address = metadata.Address
		out.InstSize = metadata.InstSize
		if info != nil {
			out.Mnemonic = info.Mnemonic()
			out.IsBranch = info.IsBranch()
			out.IsCall = info.IsCall()
			out.IsReturn = info.IsReturn()
			out.IsCompare = info.IsCompare()
			out.IsPredicable = info.IsPredicable()
			out.MayLoad = info.MayLoad()
			out.MayStore = info.MayStore()
			out.AffectControlFlow = info.IsBranch() || info.IsCall() || info.IsReturn() || metadata.ModifyPC
		} else {
			out.AffectControlFlow = metadata.ModifyPC
		}
	}

	if typ.Has(Disassembly) && a.Disassembler != nil {
		if text, ok := a.Disassembler.Disassemble(metadata.Bytes, metadata.Address); ok {
			out.Disassembly = text
		}
	}

	if typ.Has(Operands) && info != nil {
		out.Operands = a.analyzeOperands(info, operands)
	}

	if typ.Has(Symbol) && a.Symbolizer != nil {
		res := a.Symbolizer.Symbolize(metadata.Address)
		if res.Found {
			out.Symbol = res.Name
			out.SymbolOffset = metadata.Address - res.SymbolAddr
			out.Module = res.ModuleFilePath
		}
	}

	return out
}

// analyzeOperands builds the explicit-operand list and merges in the
// opcode's implicit register defs/uses (spec §4.5.1). QBDI's C++
// implementation preallocates one array slot per explicit+implicit operand
// and zeroes unused slots; building up a slice with an explicit merge pass
// is the Go equivalent.
func (a *Analyzer) analyzeOperands(info InstrInfo, decoded []DecodedOperand) []OperandAnalysis {
	var ops []OperandAnalysis

	numDefs := info.NumDefs()
	variadic := info.IsVariadic()

	for i, op := range decoded {
		if !op.Valid || op.Kind != op.DeclaredKind {
			// Only analyzed when the operand descriptor declares the
			// kind that was actually decoded (spec §4.5.1).
			continue
		}

		isDef := variadic || i < numDefs
		access := Read
		if isDef {
			access = Write
		}

		switch {
		case op.IsPredicate:
			ops = append(ops, OperandAnalysis{Type: OperandPred, Value: op.Imm})
		case op.Kind == OperandRegisterKind:
			a.mergeRegisterOperand(&ops, access, op.Reg)
		case op.Kind == OperandImmediateKind:
			ops = append(ops, OperandAnalysis{Type: OperandImm, Value: op.Imm})
		}
	}

	for _, regNo := range info.ImplicitDefs() {
		a.mergeRegisterOperand(&ops, Write, regNo)
	}
	for _, regNo := range info.ImplicitUses() {
		a.mergeRegisterOperand(&ops, Read, regNo)
	}

	return ops
}

// mergeRegisterOperand resolves regNo to its owning GPR and either merges
// the access into an existing OperandAnalysis entry for that sub-register
// or appends a new one. Merging (instead of appending a duplicate) keeps a
// register that's both read and used elsewhere from showing up twice (spec
// §4.5.1).
func (a *Analyzer) mergeRegisterOperand(ops *[]OperandAnalysis, access RegisterAccess, regNo uint16) {
	if a.RegisterInfo == nil {
		return
	}
	ctxIdx, size, off, ok := a.RegisterInfo.ResolveSubRegister(regNo)
	if !ok {
		return
	}
	name := a.RegisterInfo.Name(regNo)

	for i := range *ops {
		o := &(*ops)[i]
		if o.Type == OperandGPR && o.RegCtxIdx == ctxIdx && o.Size == size && o.RegOff == off {
			o.RegAccess |= access
			return
		}
	}

	*ops = append(*ops, OperandAnalysis{
		Type:      OperandGPR,
		RegAccess: access,
		RegName:   name,
		Size:      size,
		RegOff:    off,
		RegCtxIdx: ctxIdx,
		Value:     int64(regNo),
	})
}
