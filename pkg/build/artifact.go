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

// Artifact is the backend-ready output of building one package: either a
// preprocessed program, or a preprocessed contract.  This is a closed union.
type Artifact interface {
	// ArtifactName returns the name under which this artifact is saved.
	ArtifactName() string
	// isArtifact ensures the union stays closed.
	isArtifact()
}

// PreprocessedProgram is the provable artifact produced from a binary
// package.
type PreprocessedProgram struct {
	// Name of the originating package.
	Name string
	// Backend identifier of the backend which preprocessed this artifact.
	Backend string
	// Abi describes the calling interface of this program.
	Abi []AbiParameter
	// Bytecode of the optimized circuit.
	Bytecode []byte
	// ProvingKey material, or nil if keys were not requested.
	ProvingKey []byte
	// VerifyingKey material, or nil if keys were not requested.
	VerifyingKey []byte
}

// ArtifactName returns the name under which this artifact is saved.
func (p PreprocessedProgram) ArtifactName() string {
	return p.Name
}

func (p PreprocessedProgram) isArtifact() {}

// PreprocessedContractFunction is one independently keyed function of a
// preprocessed contract.
type PreprocessedContractFunction struct {
	// Name of this function.
	Name string
	// Abi describes the calling interface of this function.
	Abi []AbiParameter
	// Bytecode of the optimized circuit.
	Bytecode []byte
	// ProvingKey material, or nil if keys were not requested.
	ProvingKey []byte
	// VerifyingKey material, or nil if keys were not requested.
	VerifyingKey []byte
}

// PreprocessedContract is the provable artifact produced from a contract
// package.
type PreprocessedContract struct {
	// Name of the contract.
	Name string
	// Backend identifier of the backend which preprocessed this artifact.
	Backend string
	// Functions of this contract, in declaration order.
	Functions []PreprocessedContractFunction
}

// ArtifactName returns the name under which this artifact is saved.
func (p PreprocessedContract) ArtifactName() string {
	return p.Name
}

func (p PreprocessedContract) isArtifact() {}
