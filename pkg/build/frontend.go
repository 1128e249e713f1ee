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
	"github.com/consensys/go-zkbuild/pkg/acir"
	"github.com/consensys/go-zkbuild/pkg/debuginfo"
	"github.com/consensys/go-zkbuild/pkg/source"
)

// Frontend abstracts the (external) source compiler which turns a package's
// source text into circuits and debug information.  Both operations return the
// diagnostics raised during compilation; when the returned error is non-nil,
// the diagnostics contain at least one error-severity entry explaining it.
type Frontend interface {
	// CompileMain compiles the main entry point of a binary package.
	CompileMain(pkg Package) (CompiledProgram, []source.Diagnostic, error)
	// CompileContract compiles every function of a contract package.
	CompileContract(pkg Package) (CompiledContract, []source.Diagnostic, error)
}

// AbiParameter describes one parameter of a program's calling interface.
type AbiParameter struct {
	// Name of this parameter.
	Name string
	// Type of this parameter.
	Type string
	// Visibility is either "public" or "private".
	Visibility string
}

// CompiledProgram is the frontend's output for a binary entry point or a
// single contract function, prior to backend optimization.
type CompiledProgram struct {
	// Circuit for this program.
	Circuit acir.Circuit
	// Debug maps circuit opcodes back to source locations.
	Debug debuginfo.Info
	// Abi describes the calling interface of this program.
	Abi []AbiParameter
}

// CompiledContract is the frontend's output for a contract package: one
// compiled program per contract function, in declaration order.
type CompiledContract struct {
	// Name of this contract.
	Name string
	// Functions of this contract, in declaration order.
	Functions []CompiledContractFunction
}

// CompiledContractFunction is a single named function of a compiled contract.
type CompiledContractFunction struct {
	// Name of this function.
	Name string
	// Program compiled for this function.
	Program CompiledProgram
}
