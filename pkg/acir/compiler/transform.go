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
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/go-zkbuild/pkg/acir"
)

// Transform an unsupported black-box call into equivalent arithmetic
// constraints.  Opcodes emitted here are routed back through arithmetic
// compilation, so they are themselves subject to width splitting and the
// support predicate.
func (p *compilation) transformBlackBox(index uint, op acir.BlackBoxFuncCall) error {
	switch op.Func {
	case acir.RANGE:
		_, err := p.decompose(index, op.Inputs[0])
		return err
	case acir.AND, acir.XOR:
		return p.transformLogic(index, op)
	}
	// Unreachable for the opcode kinds above, hence this opcode has no
	// fallback transform.
	return &UnsupportedOpcodeError{op}
}

// Decompose a wire into boolean-constrained bit wires, and constrain their
// weighted sum to equal the wire.  This simultaneously enforces the range
// constraint and yields the bits needed by the logic transforms.
func (p *compilation) decompose(index uint, input acir.FunctionInput) ([]acir.Witness, error) {
	var (
		one      fr.Element
		minusOne fr.Element
	)
	//
	one.SetOne()
	minusOne.Neg(&one)
	//
	bits := make([]acir.Witness, input.NumBits)
	// Constrain each bit to be boolean: b*b - b == 0.
	for j := range bits {
		b := p.fresh()
		bits[j] = b
		//
		expr := acir.Expression{}.AddMulTerm(one, b, b).AddLinearTerm(minusOne, b)
		if err := p.compileArithmetic(index, expr); err != nil {
			return nil, err
		}
	}
	// Constrain the weighted bit sum to recompose the input wire.
	expr := acir.Expression{}
	coeff := one
	//
	for _, b := range bits {
		expr = expr.AddLinearTerm(coeff, b)
		coeff.Double(&coeff)
	}
	//
	expr = expr.AddLinearTerm(minusOne, input.Witness)
	//
	return bits, p.compileArithmetic(index, expr)
}

// Transform a bitwise AND or XOR call into arithmetic constraints over the bit
// decompositions of its inputs, using m = a*b per bit pair.  For AND the
// output bit is m itself; for XOR it is a + b - 2m.
func (p *compilation) transformLogic(index uint, op acir.BlackBoxFuncCall) error {
	var (
		one      fr.Element
		minusOne fr.Element
		two      fr.Element
	)
	//
	one.SetOne()
	minusOne.Neg(&one)
	two.Double(&one)
	//
	lhsBits, err := p.decompose(index, op.Inputs[0])
	if err != nil {
		return err
	}
	//
	rhsBits, err := p.decompose(index, op.Inputs[1])
	if err != nil {
		return err
	}
	//
	if len(lhsBits) != len(rhsBits) {
		panic("logic opcode inputs must have matching bit sizes")
	}
	// Accumulate the weighted output bits.
	expr := acir.Expression{}
	coeff := one
	//
	for j := range lhsBits {
		// m = a*b for this bit pair.
		m := p.fresh()
		product := acir.Expression{}.AddMulTerm(one, lhsBits[j], rhsBits[j]).AddLinearTerm(minusOne, m)
		//
		if err := p.compileArithmetic(index, product); err != nil {
			return err
		}
		//
		switch op.Func {
		case acir.AND:
			expr = expr.AddLinearTerm(coeff, m)
		case acir.XOR:
			var minusTwoCoeff fr.Element
			minusTwoCoeff.Mul(&coeff, &two)
			minusTwoCoeff.Neg(&minusTwoCoeff)
			//
			expr = expr.AddLinearTerm(coeff, lhsBits[j])
			expr = expr.AddLinearTerm(coeff, rhsBits[j])
			expr = expr.AddLinearTerm(minusTwoCoeff, m)
		}
		//
		coeff.Double(&coeff)
	}
	// Finally, bind the weighted sum to the output wire.
	expr = expr.AddLinearTerm(minusOne, op.Outputs[0])
	//
	return p.compileArithmetic(index, expr)
}

// Split an over-wide arithmetic constraint into a chain of gates which fit the
// backend's width, introducing intermediate wires for partial sums.  Requires
// a width of at least three, since both the product-reduction gate (a*b - m)
// and the partial-sum gate (x + y - s) occupy three slots.
func (p *compilation) splitExpression(index uint, expr acir.Expression) error {
	var (
		one      fr.Element
		minusOne fr.Element
	)
	//
	one.SetOne()
	minusOne.Neg(&one)
	//
	width := p.language.Width
	if width < 3 {
		return &UnsupportedOpcodeError{acir.Arithmetic{Expr: expr}}
	}
	// Reduce all but one product term into linear terms over fresh wires.
	for len(expr.MulTerms) > 1 {
		last := expr.MulTerms[len(expr.MulTerms)-1]
		expr.MulTerms = expr.MulTerms[:len(expr.MulTerms)-1]
		//
		m := p.fresh()
		product := acir.Expression{}.AddMulTerm(one, last.Left, last.Right).AddLinearTerm(minusOne, m)
		//
		if err := p.emitArithmetic(index, product); err != nil {
			return err
		}
		//
		expr = expr.AddLinearTerm(last.Coefficient, m)
	}
	// Reserve slots for the remaining product term, if any.
	reserved := uint(2 * len(expr.MulTerms))
	// Fold prefixes of the linear terms into partial sums until the whole
	// expression fits a single gate.
	for reserved+uint(len(expr.LinearTerms)) > width {
		k := width - 1
		chunk, rest := expr.LinearTerms[:k], expr.LinearTerms[k:]
		//
		s := p.fresh()
		partial := acir.Expression{LinearTerms: append(chunk[:k:k], acir.LinearTerm{Coefficient: minusOne, Witness: s})}
		//
		if err := p.emitArithmetic(index, partial); err != nil {
			return err
		}
		//
		expr.LinearTerms = append([]acir.LinearTerm{{Coefficient: one, Witness: s}}, rest...)
	}
	//
	return p.emitArithmetic(index, expr)
}
