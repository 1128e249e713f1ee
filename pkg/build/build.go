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

// Package build orchestrates turning a workspace of compiled packages into
// backend-ready provable artifacts.  For every package it drives the same
// sequence: frontend compile, backend-targeted optimization, debug map
// re-indexing, reference string growth and finally preprocessing.  The common
// reference string is folded left-to-right through every circuit in the
// workspace, so the value persisted at the end is already big enough for every
// circuit on the next build.
package build

import (
	"errors"

	"github.com/consensys/go-zkbuild/pkg/acir/compiler"
	"github.com/consensys/go-zkbuild/pkg/backend"
	"github.com/consensys/go-zkbuild/pkg/crs"
	"github.com/consensys/go-zkbuild/pkg/source"
	log "github.com/sirupsen/logrus"
)

// Options configures a build.
type Options struct {
	// IncludeKeys requests proving and verification key material in the
	// produced artifacts.  Key generation is expensive, hence off by
	// default.
	IncludeKeys bool
	// DenyWarnings escalates frontend warnings into package-scoped build
	// errors.
	DenyWarnings bool
}

// PackageResult is the terminal outcome of building one package: either an
// artifact, or a package-scoped error.  Warnings are reported either way.
type PackageResult struct {
	// Package this result belongs to.
	Package Package
	// Artifact produced, or nil if the package failed.
	Artifact Artifact
	// Warnings collected while compiling this package.
	Warnings []source.Diagnostic
	// Err is the package-scoped failure, if any.
	Err error
}

// Build processes every package of a workspace in order, producing one result
// per package.  Package-scoped failures (library packages, frontend or
// optimizer rejections, backend preprocessing failures) are recorded in the
// corresponding result and do not disturb other packages.  Reference string
// failures abort the whole build, since the shared reference string would
// otherwise be left in an inconsistent state; nothing is persisted in that
// case.
func Build(workspace Workspace, frontend Frontend, b backend.Backend, store crs.Store, opts Options) ([]PackageResult, error) {
	ref, err := crs.Load(store, b)
	if err != nil {
		return nil, err
	}
	//
	results := make([]PackageResult, 0, len(workspace.Packages))
	//
	for _, pkg := range workspace.Packages {
		log.Debugf("building package \"%s\" (%s)", pkg.Name, pkg.Type.String())
		//
		result := PackageResult{Package: pkg}
		result.Artifact, result.Warnings, ref, err = buildPackage(pkg, frontend, b, ref, opts)
		// Reference string failures are workspace fatal.
		var crsErr *crs.Error
		if errors.As(err, &crsErr) {
			return nil, err
		}
		//
		result.Err = err
		results = append(results, result)
	}
	//
	if err := crs.Persist(store, ref); err != nil {
		return nil, err
	}
	//
	return results, nil
}

// Build a single package, producing its artifact along with the reference
// string to carry into the next package.  On package-scoped errors the
// incoming reference string is returned unchanged.
func buildPackage(pkg Package, frontend Frontend, b backend.Backend, ref crs.CommonReferenceString,
	opts Options) (Artifact, []source.Diagnostic, crs.CommonReferenceString, error) {
	//
	switch pkg.Type {
	case LIBRARY:
		// No circuit exists to preprocess.
		return nil, nil, ref, &LibraryError{pkg.Name}
	case BINARY:
		return buildProgram(pkg, frontend, b, ref, opts)
	case CONTRACT:
		return buildContract(pkg, frontend, b, ref, opts)
	}
	//
	panic("unknown package type")
}

func buildProgram(pkg Package, frontend Frontend, b backend.Backend, ref crs.CommonReferenceString,
	opts Options) (Artifact, []source.Diagnostic, crs.CommonReferenceString, error) {
	//
	program, warnings, err := frontend.CompileMain(pkg)
	if err = checkDiagnostics(pkg, warnings, err, opts); err != nil {
		return nil, warnings, ref, err
	}
	// Apply backend-specific optimizations, repairing debug info.
	if program, err = optimizeProgram(pkg, b, program); err != nil {
		return nil, warnings, ref, err
	}
	// Grow the reference string against the optimized circuit.
	if ref, err = crs.Update(b, ref, program.Circuit); err != nil {
		return nil, warnings, ref, err
	}
	//
	artifact, err := PreprocessProgram(b, opts.IncludeKeys, ref, pkg.Name, program)
	if err != nil {
		return nil, warnings, ref, &ProofSystemError{Package: pkg.Name, Err: err}
	}
	//
	return artifact, warnings, ref, nil
}

func buildContract(pkg Package, frontend Frontend, b backend.Backend, ref crs.CommonReferenceString,
	opts Options) (Artifact, []source.Diagnostic, crs.CommonReferenceString, error) {
	//
	contract, warnings, err := frontend.CompileContract(pkg)
	if err = checkDiagnostics(pkg, warnings, err, opts); err != nil {
		return nil, warnings, ref, err
	}
	// Each function needs its own keys, with the reference string folded
	// from one function to the next.
	functions := make([]PreprocessedContractFunction, len(contract.Functions))
	//
	for i, fn := range contract.Functions {
		log.Debugf("preprocessing contract function \"%s.%s\"", contract.Name, fn.Name)
		//
		if fn.Program, err = optimizeProgram(pkg, b, fn.Program); err != nil {
			return nil, warnings, ref, err
		}
		//
		if ref, err = crs.Update(b, ref, fn.Program.Circuit); err != nil {
			return nil, warnings, ref, err
		}
		//
		functions[i], err = PreprocessContractFunction(b, opts.IncludeKeys, ref, fn)
		// A failed function halts the whole contract, as a partially
		// keyed contract artifact is not safely usable.
		if err != nil {
			return nil, warnings, ref, &ProofSystemError{Package: pkg.Name, Function: fn.Name, Err: err}
		}
	}
	//
	artifact := PreprocessedContract{
		Name:      contract.Name,
		Backend:   b.Identifier(),
		Functions: functions,
	}
	//
	return artifact, warnings, ref, nil
}

// Optimize a compiled program for the target backend, re-indexing its debug
// information to match the optimized opcode sequence.
func optimizeProgram(pkg Package, b backend.Backend, program CompiledProgram) (CompiledProgram, error) {
	optimized, labels, err := compiler.Compile(program.Circuit, b.Language(), b.SupportsOpcode)
	if err != nil {
		return CompiledProgram{}, &CompilationError{Package: pkg.Name, Err: err}
	}
	//
	program.Circuit = optimized
	program.Debug = program.Debug.Update(labels)
	//
	return program, nil
}

// Check the outcome of a frontend compile step: failures become compilation
// errors, and warnings become compilation errors when denied.
func checkDiagnostics(pkg Package, diagnostics []source.Diagnostic, err error, opts Options) error {
	if err != nil {
		return &CompilationError{Package: pkg.Name, Diagnostics: diagnostics, Err: err}
	}
	//
	for _, d := range diagnostics {
		log.Warnf("%s: %s", pkg.Name, d.Error())
	}
	//
	if opts.DenyWarnings && len(diagnostics) > 0 {
		return &CompilationError{Package: pkg.Name, Diagnostics: diagnostics}
	}
	//
	return nil
}
