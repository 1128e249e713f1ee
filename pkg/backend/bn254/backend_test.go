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
package bn254

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/go-zkbuild/pkg/acir"
	"github.com/consensys/go-zkbuild/pkg/crs"
	"github.com/stretchr/testify/require"
)

func TestSupportsOpcode(t *testing.T) {
	b := NewBackend()
	// Arithmetic within the gate width
	require.True(t, b.SupportsOpcode(arith(2)))
	// Arithmetic beyond the gate width
	require.False(t, b.SupportsOpcode(arith(5)))
	// Native range constraints
	require.True(t, b.SupportsOpcode(acir.BlackBoxFuncCall{Func: acir.RANGE}))
	// Bitwise opcodes must be compiled away
	require.False(t, b.SupportsOpcode(acir.BlackBoxFuncCall{Func: acir.XOR}))
	require.False(t, b.SupportsOpcode(acir.BlackBoxFuncCall{Func: acir.AND}))
}

func TestDefaultCRS(t *testing.T) {
	b := NewBackend()
	//
	ref, err := b.DefaultCRS()
	require.NoError(t, err)
	//
	degree, err := blobDegree(ref)
	require.NoError(t, err)
	require.EqualValues(t, minDegree, degree)
}

func TestUpdateCRS(t *testing.T) {
	b := NewBackend()
	//
	ref, err := b.DefaultCRS()
	require.NoError(t, err)
	// Growing for a larger circuit
	grown, err := b.UpdateCRS(ref, circuitOfSize(20))
	require.NoError(t, err)
	//
	degree, err := blobDegree(grown)
	require.NoError(t, err)
	require.GreaterOrEqual(t, degree, uint64(20+degreeSlack))
	// Idempotent for the same circuit
	again, err := b.UpdateCRS(grown, circuitOfSize(20))
	require.NoError(t, err)
	require.True(t, grown.Equals(again))
	// Monotonic for a smaller circuit
	again, err = b.UpdateCRS(grown, circuitOfSize(4))
	require.NoError(t, err)
	require.True(t, grown.Equals(again))
}

func TestUpdateCRSCeiling(t *testing.T) {
	b := NewBackend()
	//
	_, err := b.UpdateCRS(crs.CommonReferenceString{}, circuitOfSize(maxDegree+1))
	require.ErrorContains(t, err, "ceiling")
}

func TestPreprocess(t *testing.T) {
	b := NewBackend()
	circuit := supportedCircuit(10)
	//
	bytecode, err := circuit.Encode()
	require.NoError(t, err)
	//
	ref, err := b.UpdateCRS(crs.CommonReferenceString{}, circuit)
	require.NoError(t, err)
	// Without keys
	keys, err := b.Preprocess(ref, bytecode, false)
	require.NoError(t, err)
	require.Nil(t, keys.ProvingKey)
	require.Nil(t, keys.VerifyingKey)
	// With keys
	keys, err = b.Preprocess(ref, bytecode, true)
	require.NoError(t, err)
	require.NotEmpty(t, keys.ProvingKey)
	require.NotEmpty(t, keys.VerifyingKey)
}

func TestPreprocessBindsBytecode(t *testing.T) {
	b := NewBackend()
	small := supportedCircuit(5)
	large := supportedCircuit(9)
	//
	ref, err := b.UpdateCRS(crs.CommonReferenceString{}, large)
	require.NoError(t, err)
	//
	smallBytecode, err := small.Encode()
	require.NoError(t, err)
	//
	largeBytecode, err := large.Encode()
	require.NoError(t, err)
	//
	smallKeys, err := b.Preprocess(ref, smallBytecode, true)
	require.NoError(t, err)
	//
	largeKeys, err := b.Preprocess(ref, largeBytecode, true)
	require.NoError(t, err)
	// Different bytecode must never share key material.
	require.NotEqual(t, smallKeys.VerifyingKey, largeKeys.VerifyingKey)
}

func TestPreprocessRejectsUnsupported(t *testing.T) {
	b := NewBackend()
	// An XOR opcode should have been compiled away beforehand.
	circuit := acir.Circuit{
		CurrentWitnessIndex: 3,
		Opcodes:             []acir.Opcode{acir.BlackBoxFuncCall{Func: acir.XOR}},
	}
	//
	bytecode, err := circuit.Encode()
	require.NoError(t, err)
	//
	ref, err := b.DefaultCRS()
	require.NoError(t, err)
	//
	_, err = b.Preprocess(ref, bytecode, true)
	require.ErrorContains(t, err, "not supported")
}

func TestPreprocessRejectsStaleCRS(t *testing.T) {
	b := NewBackend()
	// Default parameters are too small for this circuit.
	circuit := supportedCircuit(100)
	//
	bytecode, err := circuit.Encode()
	require.NoError(t, err)
	//
	ref, err := b.DefaultCRS()
	require.NoError(t, err)
	//
	_, err = b.Preprocess(ref, bytecode, true)
	require.ErrorContains(t, err, "does not cover")
}

// ===================================================================
// Test Helpers
// ===================================================================

// Construct an arithmetic opcode of a given width.
func arith(width int) acir.Opcode {
	var one fr.Element
	one.SetOne()
	//
	expr := acir.Expression{}
	for i := 0; i < width; i++ {
		expr = expr.AddLinearTerm(one, acir.Witness(i))
	}
	//
	return acir.Arithmetic{Expr: expr}
}

// Construct a circuit of n natively supported opcodes.
func supportedCircuit(n int) acir.Circuit {
	opcodes := make([]acir.Opcode, n)
	//
	for i := range opcodes {
		opcodes[i] = arith(1 + (i % 3))
	}
	//
	return acir.Circuit{CurrentWitnessIndex: 8, Opcodes: opcodes}
}

func circuitOfSize(n uint64) acir.Circuit {
	return acir.Circuit{Opcodes: make([]acir.Opcode, n)}
}
