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

// Package crs manages the common reference string threaded through a build: a
// single opaque parameter blob which must grow monotonically to cover the
// largest circuit seen across the whole workspace.  The blob is loaded once at
// the start of a build (from a cache, or the backend default), updated against
// every optimized circuit processed, and persisted once at the end so the next
// build starts from parameters which are already big enough.
package crs

import (
	"bytes"
	"fmt"

	"github.com/consensys/go-zkbuild/pkg/acir"
)

// CommonReferenceString is an opaque, versionless parameter blob sized to
// support circuits up to some maximum gate count.  Only the backend which
// produced it can interpret its contents; everything else treats it as bytes.
type CommonReferenceString struct {
	data []byte
}

// New wraps a raw parameter blob.
func New(data []byte) CommonReferenceString {
	return CommonReferenceString{data}
}

// Bytes returns the raw parameter blob.
func (p CommonReferenceString) Bytes() []byte {
	return p.data
}

// Empty checks whether any parameters are held at all.
func (p CommonReferenceString) Empty() bool {
	return len(p.data) == 0
}

// Equals checks whether two reference strings hold identical parameters.
func (p CommonReferenceString) Equals(other CommonReferenceString) bool {
	return bytes.Equal(p.data, other.data)
}

// Provider abstracts the backend operations which produce and grow reference
// strings.  Update must be monotonic (capability never regresses within a
// build) and idempotent (updating against the same or a smaller circuit is a
// no-op).
type Provider interface {
	// DefaultCRS obtains the backend's starting parameters, used when no
	// cached reference string exists.
	DefaultCRS() (CommonReferenceString, error)
	// UpdateCRS returns parameters at least as capable as current for
	// proving the given circuit.  Note: this must always be called with
	// the *optimized* circuit, since parameter sizing is a function of the
	// final gate count.
	UpdateCRS(current CommonReferenceString, circuit acir.Circuit) (CommonReferenceString, error)
}

// Store abstracts the cache from which a reference string is loaded at the
// start of a build, and to which the final value is written back.
type Store interface {
	// ReadCached returns the cached reference string, or false if no cache
	// exists.  A missing cache is not an error.
	ReadCached() (CommonReferenceString, bool, error)
	// WriteCached persists a reference string for subsequent builds.
	WriteCached(CommonReferenceString) error
}

// Error indicates the reference string could not be loaded, grown or
// persisted.  Since the reference string is shared across every circuit in a
// build, its integrity can no longer be guaranteed and the whole build must be
// aborted.
type Error struct {
	// Operation which failed (load / update / persist).
	Op string
	// Underlying cause.
	Err error
}

func (p *Error) Error() string {
	return fmt.Sprintf("common reference string %s failed: %s", p.Op, p.Err.Error())
}

func (p *Error) Unwrap() error {
	return p.Err
}

// Load obtains the reference string a build starts from: the cached value if
// one exists, otherwise the backend default.  A build never fails merely
// because no cache exists yet.
func Load(store Store, provider Provider) (CommonReferenceString, error) {
	cached, ok, err := store.ReadCached()
	//
	if err != nil {
		return CommonReferenceString{}, &Error{"load", err}
	} else if ok {
		return cached, nil
	}
	//
	def, err := provider.DefaultCRS()
	if err != nil {
		return CommonReferenceString{}, &Error{"load", err}
	}
	//
	return def, nil
}

// Update grows the reference string (if necessary) to cover a given optimized
// circuit.
func Update(provider Provider, current CommonReferenceString, circuit acir.Circuit) (CommonReferenceString, error) {
	updated, err := provider.UpdateCRS(current, circuit)
	if err != nil {
		return CommonReferenceString{}, &Error{"update", err}
	}
	//
	return updated, nil
}

// Persist writes the final reference string back to the cache.
func Persist(store Store, value CommonReferenceString) error {
	if err := store.WriteCached(value); err != nil {
		return &Error{"persist", err}
	}
	//
	return nil
}
