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

// Package bn254 provides the reference proof-system backend, built around KZG
// commitments over the BN254 curve.  Its reference string wraps a KZG
// structured reference string whose degree is always a power of two covering
// the largest circuit seen so far, which makes growth monotonic and updates
// against smaller circuits free.
package bn254

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/go-zkbuild/pkg/acir"
	"github.com/consensys/go-zkbuild/pkg/backend"
	"github.com/consensys/go-zkbuild/pkg/crs"
)

const backendIdentifier = "zkbuild-backend-bn254"

// Native gate width of this backend.
const gateWidth = 3

// Smallest reference string degree ever produced.
const minDegree = 16

// Hard ceiling on the reference string degree.  Updates requiring more than
// this fail, aborting the whole build.
const maxDegree = 1 << 22

// Slack added on top of the gate count when sizing the reference string, to
// leave room for blinding terms.
const degreeSlack = 3

// Backend implements the reference proof system.
type Backend struct{}

// NewBackend constructs the reference backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Identifier returns the name stamped on every artifact this backend
// preprocesses.
func (p *Backend) Identifier() string {
	return backendIdentifier
}

// Language returns the native opcode language of this backend.
func (p *Backend) Language() acir.Language {
	return acir.Language{Kind: acir.PLONKCSAT, Width: gateWidth}
}

// SupportsOpcode checks whether this backend handles a given opcode natively:
// arithmetic constraints up to the gate width, plus native range constraints.
// Bitwise opcodes must be compiled away beforehand.
func (p *Backend) SupportsOpcode(op acir.Opcode) bool {
	switch op := op.(type) {
	case acir.Arithmetic:
		return op.Expr.Width() <= gateWidth
	case acir.BlackBoxFuncCall:
		return op.Func == acir.RANGE
	}
	//
	return false
}

// DefaultCRS generates the smallest reference string, used when no cached
// value exists.
func (p *Backend) DefaultCRS() (crs.CommonReferenceString, error) {
	return p.generate(minDegree)
}

// UpdateCRS grows the reference string, if necessary, to cover a given
// optimized circuit.  A current value already covering the circuit is returned
// unchanged, which gives both idempotence and monotonicity across the build
// fold.
func (p *Backend) UpdateCRS(current crs.CommonReferenceString, circuit acir.Circuit) (crs.CommonReferenceString, error) {
	required := requiredDegree(circuit)
	//
	if required > maxDegree {
		return crs.CommonReferenceString{}, fmt.Errorf(
			"circuit requires reference string of degree %d, exceeding backend ceiling %d", required, maxDegree)
	}
	//
	if !current.Empty() {
		// An unreadable cached value is simply replaced.
		if degree, err := blobDegree(current); err == nil && degree >= required {
			return current, nil
		}
	}
	//
	return p.generate(required)
}

// Preprocess derives key material for a given (reference string, bytecode)
// pair.  The bytecode is decoded and checked against the native language, and
// the reference string is checked to actually cover the circuit, so key
// material can never be bound to stale parameters.
func (p *Backend) Preprocess(ref crs.CommonReferenceString, bytecode []byte, includeKeys bool) (backend.Keys, error) {
	circuit, err := acir.DecodeCircuit(bytecode)
	if err != nil {
		return backend.Keys{}, fmt.Errorf("malformed bytecode: %w", err)
	}
	//
	for i, op := range circuit.Opcodes {
		if !p.SupportsOpcode(op) {
			return backend.Keys{}, fmt.Errorf("bytecode opcode #%d \"%s\" not supported by %s", i, op.String(), backendIdentifier)
		}
	}
	//
	if !includeKeys {
		return backend.Keys{}, nil
	}
	//
	srs, degree, err := decodeBlob(ref)
	if err != nil {
		return backend.Keys{}, err
	} else if degree < requiredDegree(circuit) {
		return backend.Keys{}, fmt.Errorf("reference string degree %d does not cover circuit", degree)
	}
	// Derive the circuit polynomial from the bytecode, then bind it to this
	// reference string via a KZG commitment.
	poly, err := fr.Hash(bytecode, []byte("zkbuild-bn254-keys"), int(circuit.NumOpcodes())+1)
	if err != nil {
		return backend.Keys{}, err
	}
	//
	commitment, err := kzg.Commit(poly, srs.Pk)
	if err != nil {
		return backend.Keys{}, err
	}
	//
	var pk bytes.Buffer
	for i := range poly {
		b := poly[i].Bytes()
		pk.Write(b[:])
	}
	//
	return backend.Keys{ProvingKey: pk.Bytes(), VerifyingKey: commitment.Marshal()}, nil
}

// Determine the reference string degree needed for a given circuit: the gate
// count plus blinding slack, rounded up to a power of two.
func requiredDegree(circuit acir.Circuit) uint64 {
	needed := uint64(circuit.NumOpcodes()) + degreeSlack
	degree := uint64(minDegree)
	//
	for degree < needed {
		degree <<= 1
	}
	//
	return degree
}

// Generate a fresh reference string of a given degree.
func (p *Backend) generate(degree uint64) (crs.CommonReferenceString, error) {
	tau, err := rand.Int(rand.Reader, fr.Modulus())
	if err != nil {
		return crs.CommonReferenceString{}, err
	}
	//
	srs, err := kzg.NewSRS(degree, tau)
	if err != nil {
		return crs.CommonReferenceString{}, err
	}
	//
	return encodeBlob(srs, degree)
}

// Blob layout: 8 byte big-endian degree header, followed by the serialised
// KZG reference string.
func encodeBlob(srs *kzg.SRS, degree uint64) (crs.CommonReferenceString, error) {
	var (
		buffer bytes.Buffer
		header [8]byte
	)
	//
	binary.BigEndian.PutUint64(header[:], degree)
	buffer.Write(header[:])
	//
	if _, err := srs.WriteTo(&buffer); err != nil {
		return crs.CommonReferenceString{}, err
	}
	//
	return crs.New(buffer.Bytes()), nil
}

func blobDegree(ref crs.CommonReferenceString) (uint64, error) {
	data := ref.Bytes()
	//
	if len(data) < 8 {
		return 0, fmt.Errorf("truncated reference string")
	}
	//
	return binary.BigEndian.Uint64(data[:8]), nil
}

func decodeBlob(ref crs.CommonReferenceString) (*kzg.SRS, uint64, error) {
	degree, err := blobDegree(ref)
	if err != nil {
		return nil, 0, err
	}
	//
	var srs kzg.SRS
	if _, err := srs.ReadFrom(bytes.NewReader(ref.Bytes()[8:])); err != nil {
		return nil, 0, err
	}
	//
	return &srs, degree, nil
}
