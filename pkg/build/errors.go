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

import (
	"fmt"

	"github.com/consensys/go-zkbuild/pkg/source"
)

// LibraryError indicates an attempt to build a library package into a provable
// artifact.  Libraries have no main entry point, so this is a contract
// violation by the caller rather than a compiler defect.  It is scoped to the
// offending package; other packages in the workspace still build.
type LibraryError struct {
	// Name of the offending package.
	Name string
}

func (p *LibraryError) Error() string {
	return fmt.Sprintf("cannot compile package \"%s\" into a program as it is a library", p.Name)
}

// CompilationError indicates the frontend rejected a package's source, or the
// optimizer encountered an opcode it cannot translate for the target backend.
// Scoped to the offending package; carries the frontend diagnostics so they
// can be rendered with source-location context.
type CompilationError struct {
	// Name of the offending package.
	Package string
	// Diagnostics reported by the frontend, if any.
	Diagnostics []source.Diagnostic
	// Underlying cause, if not covered by the diagnostics.
	Err error
}

func (p *CompilationError) Error() string {
	if p.Err != nil {
		return fmt.Sprintf("failed to compile package \"%s\": %s", p.Package, p.Err.Error())
	}
	//
	return fmt.Sprintf("failed to compile package \"%s\" (%d diagnostics)", p.Package, len(p.Diagnostics))
}

func (p *CompilationError) Unwrap() error {
	return p.Err
}

// ProofSystemError indicates the backend rejected a circuit's bytecode, or key
// generation failed.  Scoped to the offending package, but halts that
// package's remaining contract functions since a partially keyed contract
// artifact is not safely usable.
type ProofSystemError struct {
	// Name of the offending package.
	Package string
	// Contract function being preprocessed, or empty for a program.
	Function string
	// Underlying backend failure.
	Err error
}

func (p *ProofSystemError) Error() string {
	if p.Function != "" {
		return fmt.Sprintf("backend failed to preprocess function \"%s\" of package \"%s\": %s", p.Function, p.Package, p.Err.Error())
	}
	//
	return fmt.Sprintf("backend failed to preprocess package \"%s\": %s", p.Package, p.Err.Error())
}

func (p *ProofSystemError) Unwrap() error {
	return p.Err
}
