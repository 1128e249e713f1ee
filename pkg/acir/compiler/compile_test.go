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
package compiler

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/go-zkbuild/pkg/acir"
)

// Predicate accepting every opcode.
func acceptAll(acir.Opcode) bool {
	return true
}

// Predicate accepting only arithmetic opcodes.
func arithmeticOnly(op acir.Opcode) bool {
	_, ok := op.(acir.Arithmetic)
	return ok
}

var r1cs = acir.Language{Kind: acir.R1CS}
var plonk3 = acir.Language{Kind: acir.PLONKCSAT, Width: 3}

func Test_Compile_01(t *testing.T) {
	// Identity predicate leaves the circuit untouched.
	circuit := testCircuit(
		arith(linear(1, 0), linear(1, 1)),
		rangeCheck(0, 8),
	)
	//
	optimized := check_Compile(t, circuit, r1cs, acceptAll)
	//
	if len(optimized.Opcodes) != 2 {
		t.Errorf("expected 2 opcodes, got %d", len(optimized.Opcodes))
	}
}

func Test_Compile_02(t *testing.T) {
	// Trivially satisfied constraints are dropped.
	circuit := testCircuit(
		arith(),
		arith(linear(1, 0)),
	)
	//
	optimized := check_Compile(t, circuit, r1cs, acceptAll)
	//
	if len(optimized.Opcodes) != 1 {
		t.Errorf("expected 1 opcode, got %d", len(optimized.Opcodes))
	}
}

func Test_Compile_03(t *testing.T) {
	// Unsupported range constraints decompose into arithmetic.
	circuit := testCircuit(rangeCheck(0, 4))
	//
	optimized := check_Compile(t, circuit, r1cs, arithmeticOnly)
	// 4 boolean constraints plus 1 recomposition
	if len(optimized.Opcodes) != 5 {
		t.Errorf("expected 5 opcodes, got %d", len(optimized.Opcodes))
	}
}

func Test_Compile_04(t *testing.T) {
	// Unsupported XOR decomposes into arithmetic.
	circuit := testCircuit(logic(acir.XOR, 0, 1, 2, 4))
	check_Compile(t, circuit, r1cs, arithmeticOnly)
}

func Test_Compile_05(t *testing.T) {
	// Unsupported AND decomposes into arithmetic.
	circuit := testCircuit(logic(acir.AND, 0, 1, 2, 8))
	check_Compile(t, circuit, r1cs, arithmeticOnly)
}

func Test_Compile_06(t *testing.T) {
	// Wide expressions are split to fit the gate width.
	circuit := testCircuit(
		arith(linear(1, 0), linear(2, 1), linear(3, 2), linear(4, 3), linear(5, 4)),
	)
	//
	optimized := check_Compile(t, circuit, plonk3, acceptAll)
	//
	for i, op := range optimized.Opcodes {
		if a, ok := op.(acir.Arithmetic); ok && a.Expr.Width() > 3 {
			t.Errorf("opcode %d exceeds gate width: %s", i, op.String())
		}
	}
}

func Test_Compile_07(t *testing.T) {
	// Logic decomposition under a width-limited language stays within width.
	circuit := testCircuit(logic(acir.XOR, 0, 1, 2, 8))
	//
	optimized := check_Compile(t, circuit, plonk3, arithmeticOnly)
	//
	for i, op := range optimized.Opcodes {
		if a, ok := op.(acir.Arithmetic); ok && a.Expr.Width() > 3 {
			t.Errorf("opcode %d exceeds gate width: %s", i, op.String())
		}
	}
}

func Test_Compile_08(t *testing.T) {
	// A backend supporting nothing at all cannot be targeted.
	circuit := testCircuit(arith(linear(1, 0)))
	//
	_, _, err := Compile(circuit, r1cs, func(acir.Opcode) bool { return false })
	//
	var unsupported *UnsupportedOpcodeError
	if !errors.As(err, &unsupported) {
		t.Errorf("expected UnsupportedOpcodeError, got %v", err)
	}
}

func Test_Compile_09(t *testing.T) {
	// Intermediate wires never collide with existing wires.
	circuit := testCircuit(rangeCheck(0, 8), arith(linear(1, 1), linear(1, 2)))
	//
	optimized := check_Compile(t, circuit, r1cs, arithmeticOnly)
	//
	if optimized.CurrentWitnessIndex <= circuit.CurrentWitnessIndex {
		t.Errorf("expected fresh wires beyond %d", circuit.CurrentWitnessIndex)
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

// Compile a circuit and check the labelling invariants: one label per output
// opcode, every label resolved, and every label within the original opcode
// range.
func check_Compile(t *testing.T, circuit acir.Circuit, language acir.Language, supported func(acir.Opcode) bool) acir.Circuit {
	t.Helper()
	//
	optimized, labels, err := Compile(circuit, language, supported)
	if err != nil {
		t.Fatalf("unexpected compile failure: %v", err)
	}
	//
	if len(labels) != len(optimized.Opcodes) {
		t.Fatalf("expected %d labels, got %d", len(optimized.Opcodes), len(labels))
	}
	//
	for i, label := range labels {
		if !label.Resolved {
			t.Fatalf("label %d unresolved", i)
		} else if uint(label.Index) >= circuit.NumOpcodes() {
			t.Fatalf("label %d out of range: %d", i, label.Index)
		}
	}
	//
	for i, op := range optimized.Opcodes {
		if !supported(op) {
			t.Errorf("optimized opcode %d not supported: %s", i, op.String())
		}
	}
	//
	return optimized
}

func testCircuit(opcodes ...acir.Opcode) acir.Circuit {
	return acir.Circuit{CurrentWitnessIndex: 16, Opcodes: opcodes}
}

func arith(terms ...acir.LinearTerm) acir.Opcode {
	return acir.Arithmetic{Expr: acir.Expression{LinearTerms: terms}}
}

func linear(coeff uint64, wire uint32) acir.LinearTerm {
	var c fr.Element
	c.SetUint64(coeff)
	//
	return acir.LinearTerm{Coefficient: c, Witness: acir.Witness(wire)}
}

func rangeCheck(wire uint32, bits uint32) acir.Opcode {
	return acir.BlackBoxFuncCall{
		Func:   acir.RANGE,
		Inputs: []acir.FunctionInput{{Witness: acir.Witness(wire), NumBits: bits}},
	}
}

func logic(fn acir.BlackBoxFunc, lhs uint32, rhs uint32, out uint32, bits uint32) acir.Opcode {
	return acir.BlackBoxFuncCall{
		Func: fn,
		Inputs: []acir.FunctionInput{
			{Witness: acir.Witness(lhs), NumBits: bits},
			{Witness: acir.Witness(rhs), NumBits: bits},
		},
		Outputs: []acir.Witness{acir.Witness(out)},
	}
}
