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
package cmd

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/consensys/go-zkbuild/pkg/build"
	"github.com/consensys/go-zkbuild/pkg/source"
)

// fileFrontend satisfies the build pipeline's frontend contract by loading
// circuit packages which the (external) source compiler has already compiled
// and serialised to disk.  A binary package's circuit file holds a compiled
// program; a contract package's circuit file holds a compiled contract.
type fileFrontend struct {
	// Per-package circuit file, keyed by package name.
	circuits map[string]string
}

// CompileMain loads the compiled program of a binary package.
func (p *fileFrontend) CompileMain(pkg build.Package) (build.CompiledProgram, []source.Diagnostic, error) {
	var program build.CompiledProgram
	//
	err := p.load(pkg, &program)
	//
	return program, nil, err
}

// CompileContract loads the compiled functions of a contract package.
func (p *fileFrontend) CompileContract(pkg build.Package) (build.CompiledContract, []source.Diagnostic, error) {
	var contract build.CompiledContract
	//
	err := p.load(pkg, &contract)
	//
	return contract, nil, err
}

func (p *fileFrontend) load(pkg build.Package, target any) error {
	filename, ok := p.circuits[pkg.Name]
	if !ok || filename == "" {
		return fmt.Errorf("package \"%s\" has no circuit file", pkg.Name)
	}
	//
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	//
	if err := gob.NewDecoder(file).Decode(target); err != nil {
		return fmt.Errorf("%s: malformed circuit file: %w", filename, err)
	}
	//
	return nil
}
