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
	"github.com/consensys/go-zkbuild/pkg/backend"
	"github.com/consensys/go-zkbuild/pkg/crs"
)

// PreprocessProgram turns an optimized compiled program into a provable
// artifact for a given backend.  The reference string must already have been
// updated for this program's circuit.
func PreprocessProgram(b backend.Backend, includeKeys bool, ref crs.CommonReferenceString,
	name string, program CompiledProgram) (PreprocessedProgram, error) {
	//
	bytecode, keys, err := preprocess(b, includeKeys, ref, program)
	if err != nil {
		return PreprocessedProgram{}, err
	}
	//
	return PreprocessedProgram{
		Name:         name,
		Backend:      b.Identifier(),
		Abi:          program.Abi,
		Bytecode:     bytecode,
		ProvingKey:   keys.ProvingKey,
		VerifyingKey: keys.VerifyingKey,
	}, nil
}

// PreprocessContractFunction turns one optimized contract function into its
// independently keyed artifact entry.  The reference string must already have
// been updated for this function's circuit.
func PreprocessContractFunction(b backend.Backend, includeKeys bool, ref crs.CommonReferenceString,
	fn CompiledContractFunction) (PreprocessedContractFunction, error) {
	//
	bytecode, keys, err := preprocess(b, includeKeys, ref, fn.Program)
	if err != nil {
		return PreprocessedContractFunction{}, err
	}
	//
	return PreprocessedContractFunction{
		Name:         fn.Name,
		Abi:          fn.Program.Abi,
		Bytecode:     bytecode,
		ProvingKey:   keys.ProvingKey,
		VerifyingKey: keys.VerifyingKey,
	}, nil
}

func preprocess(b backend.Backend, includeKeys bool, ref crs.CommonReferenceString,
	program CompiledProgram) ([]byte, backend.Keys, error) {
	//
	bytecode, err := program.Circuit.Encode()
	if err != nil {
		return nil, backend.Keys{}, err
	}
	//
	keys, err := b.Preprocess(ref, bytecode, includeKeys)
	if err != nil {
		return nil, backend.Keys{}, err
	}
	//
	return bytecode, keys, nil
}
