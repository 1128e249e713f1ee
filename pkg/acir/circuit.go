// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package acir provides the arithmetic-circuit intermediate representation
// consumed by the build pipeline.  A circuit is an ordered sequence of
// constraint opcodes over named wires, as produced by the (external) frontend
// compiler.  Circuits are immutable by convention: backend optimization
// produces a fresh circuit rather than mutating in place.
package acir

import (
	"fmt"
	"strings"
)

// Circuit is an ordered sequence of constraint opcodes over named wires.
type Circuit struct {
	// CurrentWitnessIndex is one past the highest wire index in use, hence
	// also the next index available for intermediate wires.
	CurrentWitnessIndex uint32
	// Opcodes of this circuit, in evaluation order.
	Opcodes []Opcode
	// PublicInputs identifies which wires are publicly visible.
	PublicInputs []Witness
}

// NumOpcodes returns the number of opcodes (i.e. gates) in this circuit.
func (p *Circuit) NumOpcodes() uint {
	return uint(len(p.Opcodes))
}

func (p *Circuit) String() string {
	var builder strings.Builder
	//
	for i, op := range p.Opcodes {
		builder.WriteString(fmt.Sprintf("#%d %s\n", i, op.String()))
	}
	//
	return builder.String()
}

// OpcodeLabel tags an opcode of an optimized circuit with the index of the
// original opcode it was derived from.  The zero value is unresolved; a label
// which remains unresolved after optimization completes signals an internal
// defect in the optimizer, never a user error.
type OpcodeLabel struct {
	// Index of the originating opcode within the pre-optimization circuit.
	Index uint32
	// Resolved indicates whether Index is meaningful.
	Resolved bool
}

// ResolvedLabel constructs a label resolved to a given original opcode index.
func ResolvedLabel(index uint) OpcodeLabel {
	return OpcodeLabel{uint32(index), true}
}

// Language identifies the native constraint language of a backend, as this
// determines which opcode shapes can be handed over directly.
type Language struct {
	// Kind of constraint system.
	Kind LanguageKind
	// Width gives the maximum expression width per gate, and is only
	// meaningful for PLONKCSAT.
	Width uint
}

// LanguageKind enumerates supported constraint languages.
type LanguageKind uint8

const (
	// R1CS constraint systems accept arbitrary rank-1 constraints.
	R1CS LanguageKind = iota
	// PLONKCSAT constraint systems accept gates up to a fixed width.
	PLONKCSAT
)

func (p Language) String() string {
	switch p.Kind {
	case R1CS:
		return "R1CS"
	case PLONKCSAT:
		return fmt.Sprintf("PLONKCSat{%d}", p.Width)
	}
	//
	panic("unknown constraint language")
}
