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
package build

// PackageType distinguishes how a package is compiled: binaries yield a single
// program artifact, contracts yield one artifact per contract function, and
// libraries yield nothing at all.  This is a closed enumeration; switches over
// it should be exhaustive so adding a new kind shows up at compile time.
type PackageType uint8

const (
	// BINARY packages have a single main entry point.
	BINARY PackageType = iota
	// LIBRARY packages have no entry point and cannot be built into a
	// provable artifact.
	LIBRARY
	// CONTRACT packages compile to multiple independently keyed functions.
	CONTRACT
)

func (p PackageType) String() string {
	switch p {
	case BINARY:
		return "bin"
	case LIBRARY:
		return "lib"
	case CONTRACT:
		return "contract"
	}
	//
	panic("unknown package type")
}

// Package identifies a single package within a workspace, as resolved from the
// (external) package manifest.
type Package struct {
	// Name of this package.
	Name string
	// Type determines how this package is built.
	Type PackageType
	// Version of this package.
	Version string
}

// IsContract checks whether this package compiles to a contract.
func (p *Package) IsContract() bool {
	return p.Type == CONTRACT
}

// IsLibrary checks whether this package is a library.
func (p *Package) IsLibrary() bool {
	return p.Type == LIBRARY
}

// Workspace is the ordered set of packages a build processes.  Order matters:
// the common reference string is folded through packages in this order.
type Workspace struct {
	// Packages of this workspace, in build order.
	Packages []Package
}
