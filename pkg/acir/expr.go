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

import (
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Witness identifies a single wire within a circuit.  Witness indices are
// allocated densely from zero by the frontend, with fresh intermediate wires
// appended during optimization.
type Witness uint32

// MulTerm represents a product of two wires scaled by a coefficient.
type MulTerm struct {
	Coefficient fr.Element
	Left        Witness
	Right       Witness
}

// LinearTerm represents a single wire scaled by a coefficient.
type LinearTerm struct {
	Coefficient fr.Element
	Witness     Witness
}

// Expression is a degree <= 2 polynomial over circuit wires which an
// arithmetic opcode constrains to evaluate to zero.
type Expression struct {
	MulTerms    []MulTerm
	LinearTerms []LinearTerm
	Constant    fr.Element
}

// IsZero checks whether this expression is trivially zero, meaning the
// enclosing arithmetic opcode is satisfied by every assignment.
func (e Expression) IsZero() bool {
	return len(e.MulTerms) == 0 && len(e.LinearTerms) == 0 && e.Constant.IsZero()
}

// Width determines the number of wire "slots" this expression occupies, where
// each product term occupies two and each linear term one.  Backends with a
// fixed gate width can only express constraints up to that width directly.
func (e Expression) Width() uint {
	return uint(2*len(e.MulTerms) + len(e.LinearTerms))
}

// AddLinearTerm appends a linear term to this expression, returning the
// updated expression.
func (e Expression) AddLinearTerm(coeff fr.Element, w Witness) Expression {
	e.LinearTerms = append(e.LinearTerms, LinearTerm{coeff, w})
	return e
}

// AddMulTerm appends a product term to this expression, returning the updated
// expression.
func (e Expression) AddMulTerm(coeff fr.Element, left Witness, right Witness) Expression {
	e.MulTerms = append(e.MulTerms, MulTerm{coeff, left, right})
	return e
}

func (e Expression) String() string {
	var parts []string
	//
	for _, t := range e.MulTerms {
		parts = append(parts, fmt.Sprintf("%s*w%d*w%d", t.Coefficient.String(), t.Left, t.Right))
	}
	//
	for _, t := range e.LinearTerms {
		parts = append(parts, fmt.Sprintf("%s*w%d", t.Coefficient.String(), t.Witness))
	}
	//
	if !e.Constant.IsZero() || len(parts) == 0 {
		parts = append(parts, e.Constant.String())
	}
	//
	return strings.Join(parts, " + ")
}
