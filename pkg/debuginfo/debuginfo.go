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

// Package debuginfo maps circuit opcode positions back to the source locations
// they were compiled from.  Since backend optimization reorders, expands and
// removes opcodes, the map must be re-indexed afterwards using the opcode
// labels the optimizer produces, so that every surviving opcode inherits the
// location of the original opcode it was derived from.
package debuginfo

import (
	"github.com/consensys/go-zkbuild/pkg/acir"
	"github.com/consensys/go-zkbuild/pkg/source"
)

// Info maps each opcode position of a circuit to the source location it was
// compiled from.  Its geometry always matches the circuit it describes: entry
// i locates opcode i.
type Info struct {
	// Locations, one per opcode.
	Locations []source.Location
}

// NewInfo constructs debug information from a given set of per-opcode
// locations.
func NewInfo(locations []source.Location) Info {
	return Info{locations}
}

// Len returns the number of opcodes this debug information describes.
func (p Info) Len() uint {
	return uint(len(p.Locations))
}

// Update re-indexes this debug information following backend optimization,
// producing fresh debug information whose i'th entry is the location of the
// original opcode identified by the i'th label.  The result always has exactly
// one entry per label, and every entry traces to a real original opcode.  An
// unresolved label here means the optimizer broke its labelling invariant,
// hence the panic.
func (p Info) Update(labels []acir.OpcodeLabel) Info {
	locations := make([]source.Location, len(labels))
	//
	for i, label := range labels {
		if !label.Resolved {
			panic("optimized opcode does not resolve to any original opcode")
		}
		//
		locations[i] = p.Locations[label.Index]
	}
	//
	return Info{locations}
}
