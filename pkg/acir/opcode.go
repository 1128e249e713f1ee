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
package acir

import "fmt"

// Opcode represents a single constraint within a circuit.  This is a closed
// union: an opcode is either a generic arithmetic constraint, or a call to a
// black-box function the backend may implement natively.
type Opcode interface {
	// String returns a human-readable rendering of this opcode.
	String() string
	// isOpcode ensures the union stays closed.
	isOpcode()
}

// Arithmetic constrains an expression to evaluate to zero.
type Arithmetic struct {
	Expr Expression
}

func (p Arithmetic) isOpcode() {}

func (p Arithmetic) String() string {
	return fmt.Sprintf("EXPR [ %s = 0 ]", p.Expr.String())
}

// BlackBoxFunc enumerates the black-box functions a backend may support
// natively.
type BlackBoxFunc uint8

const (
	// RANGE constrains a wire to fit within a given number of bits.
	RANGE BlackBoxFunc = iota
	// AND constrains one wire to be the bitwise conjunction of two others.
	AND
	// XOR constrains one wire to be the bitwise exclusive-or of two others.
	XOR
)

func (p BlackBoxFunc) String() string {
	switch p {
	case RANGE:
		return "range"
	case AND:
		return "and"
	case XOR:
		return "xor"
	}
	//
	panic("unknown black-box function")
}

// FunctionInput is a wire argument to a black-box function, together with the
// number of bits the function interprets it as having.
type FunctionInput struct {
	Witness Witness
	NumBits uint32
}

// BlackBoxFuncCall invokes a black-box function over a given set of input
// wires, constraining the given output wires accordingly.
type BlackBoxFuncCall struct {
	Func    BlackBoxFunc
	Inputs  []FunctionInput
	Outputs []Witness
}

func (p BlackBoxFuncCall) isOpcode() {}

func (p BlackBoxFuncCall) String() string {
	return fmt.Sprintf("BLACKBOX::%s %v -> %v", p.Func.String(), p.Inputs, p.Outputs)
}
