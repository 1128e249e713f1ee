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

// Package backend defines the contract between the build pipeline and a
// pluggable proof-system implementation.  A backend declares which opcodes it
// supports natively, owns the sizing and growth of the common reference
// string, and derives provable key material from circuit bytecode.
package backend

import (
	"github.com/consensys/go-zkbuild/pkg/acir"
	"github.com/consensys/go-zkbuild/pkg/crs"
)

// Backend is a pluggable proof-system implementation.  Exactly one backend
// drives any given build: its identifier is stamped on every artifact
// produced, and its reference string is never mixed with another backend's.
type Backend interface {
	crs.Provider
	// Identifier uniquely names this backend implementation.
	Identifier() string
	// Language returns the native opcode language of this backend.
	Language() acir.Language
	// SupportsOpcode checks whether this backend handles a given opcode
	// natively.
	SupportsOpcode(op acir.Opcode) bool
	// Preprocess derives key material for a given (reference string,
	// bytecode) pair.  Key material is only computed when includeKeys is
	// set, since key generation is expensive.  The reference string must
	// already have been updated for this circuit: keys are never derived
	// against stale parameters.
	Preprocess(ref crs.CommonReferenceString, bytecode []byte, includeKeys bool) (Keys, error)
}

// Keys holds the optional proving and verification key material of an
// artifact.  Both are opaque to everything but the backend which produced
// them.
type Keys struct {
	// ProvingKey material, or nil if keys were not requested.
	ProvingKey []byte
	// VerifyingKey material, or nil if keys were not requested.
	VerifyingKey []byte
}
