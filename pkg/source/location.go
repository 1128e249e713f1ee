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
package source

import "fmt"

// Location identifies a region of a named source file.  Locations are attached
// to circuit opcodes so that constraint failures can be reported against the
// source text which produced them.
type Location struct {
	// Name of the originating source file.
	File string
	// Region of that file.
	Span Span
}

// NewLocation constructs a location for a given span of a given file.
func NewLocation(file string, span Span) Location {
	return Location{file, span}
}

func (p Location) String() string {
	return fmt.Sprintf("%s:%d-%d", p.File, p.Span.Start(), p.Span.End())
}
