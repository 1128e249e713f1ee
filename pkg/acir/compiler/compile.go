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

// Package compiler rewrites a generic circuit into one using only opcodes the
// target backend supports natively.  Unsupported black-box calls are expanded
// into equivalent arithmetic constraints, and over-wide arithmetic constraints
// are split to fit the backend's gate width.  Alongside the rewritten circuit,
// compilation produces one label per output opcode identifying the original
// opcode it was derived from, which allows debug information to be carried
// across the rewrite.
package compiler

import (
	"fmt"

	"github.com/consensys/go-zkbuild/pkg/acir"
)

// UnsupportedOpcodeError indicates the optimization strategy has no
// translation of a given opcode into opcodes the backend supports.  No partial
// circuit is produced in this case.
type UnsupportedOpcodeError struct {
	// Opcode which could not be translated.
	Opcode acir.Opcode
}

func (p *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("backend does not support opcode \"%s\", and no fallback transform applies", p.Opcode.String())
}

// Compile rewrites a circuit into one whose every opcode satisfies the given
// support predicate, producing a fresh circuit (the input is never modified)
// along with one opcode label per output opcode.  Every label resolves to an
// index within the input opcode sequence; an unresolved label surviving
// compilation is an internal defect and results in a panic.
func Compile(circuit acir.Circuit, language acir.Language, supported func(acir.Opcode) bool) (acir.Circuit, []acir.OpcodeLabel, error) {
	c := &compilation{
		language:    language,
		supported:   supported,
		nextWitness: circuit.CurrentWitnessIndex,
	}
	//
	for i, op := range circuit.Opcodes {
		if err := c.compileOpcode(uint(i), op); err != nil {
			return acir.Circuit{}, nil, err
		}
	}
	// Sanity check every emitted opcode resolves to some original opcode.
	for _, label := range c.labels {
		if !label.Resolved {
			panic("compiled circuit opcodes must resolve to some index")
		}
	}
	//
	optimized := acir.Circuit{
		CurrentWitnessIndex: c.nextWitness,
		Opcodes:             c.opcodes,
		PublicInputs:        circuit.PublicInputs,
	}
	//
	return optimized, c.labels, nil
}

// compilation holds the state of a single compile pass: the opcodes emitted so
// far, their labels and the next free intermediate wire.
type compilation struct {
	language    acir.Language
	supported   func(acir.Opcode) bool
	nextWitness uint32
	opcodes     []acir.Opcode
	labels      []acir.OpcodeLabel
}

// Compile a single opcode of the original circuit, emitting zero or more
// opcodes all labelled with its index.
func (p *compilation) compileOpcode(index uint, op acir.Opcode) error {
	switch op := op.(type) {
	case acir.Arithmetic:
		return p.compileArithmetic(index, op.Expr)
	case acir.BlackBoxFuncCall:
		if p.supported(op) {
			p.emit(op, index)
			return nil
		}
		//
		return p.transformBlackBox(index, op)
	default:
		panic(fmt.Sprintf("unknown opcode \"%s\"", op.String()))
	}
}

// Compile an arithmetic constraint, splitting it if it exceeds the backend's
// gate width.  Trivially satisfied constraints are dropped altogether, hence
// emit no label.
func (p *compilation) compileArithmetic(index uint, expr acir.Expression) error {
	if expr.IsZero() {
		return nil
	}
	//
	if p.language.Kind == acir.PLONKCSAT && expr.Width() > p.language.Width {
		return p.splitExpression(index, expr)
	}
	//
	return p.emitArithmetic(index, expr)
}

// Emit an arithmetic constraint which is known to fit the backend's gate
// width, checking the backend actually accepts arithmetic opcodes.
func (p *compilation) emitArithmetic(index uint, expr acir.Expression) error {
	op := acir.Arithmetic{Expr: expr}
	//
	if !p.supported(op) {
		return &UnsupportedOpcodeError{op}
	}
	//
	p.emit(op, index)
	//
	return nil
}

func (p *compilation) emit(op acir.Opcode, index uint) {
	p.opcodes = append(p.opcodes, op)
	p.labels = append(p.labels, acir.ResolvedLabel(index))
}

// Allocate a fresh intermediate wire.
func (p *compilation) fresh() acir.Witness {
	w := acir.Witness(p.nextWitness)
	p.nextWitness++
	//
	return w
}
