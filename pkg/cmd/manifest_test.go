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
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-zkbuild/pkg/build"
	"github.com/stretchr/testify/require"
)

const testManifest = `
[workspace]
target = "out"

[[package]]
name = "main"
type = "bin"
version = "0.1.0"
circuit = "circuits/main.gob"

[[package]]
name = "helpers"
type = "lib"
version = "0.1.0"

[[package]]
name = "token"
type = "contract"
version = "0.2.0"
circuit = "circuits/token.gob"
`

func TestResolveWorkspace(t *testing.T) {
	dir := writeManifest(t, testManifest)
	//
	resolved, err := resolveWorkspace(dir, "")
	require.NoError(t, err)
	require.Len(t, resolved.workspace.Packages, 3)
	// Declaration order preserved
	require.Equal(t, "main", resolved.workspace.Packages[0].Name)
	require.Equal(t, build.BINARY, resolved.workspace.Packages[0].Type)
	require.Equal(t, build.LIBRARY, resolved.workspace.Packages[1].Type)
	require.Equal(t, build.CONTRACT, resolved.workspace.Packages[2].Type)
	require.Equal(t, "0.2.0", resolved.workspace.Packages[2].Version)
	//
	require.Equal(t, filepath.Join(dir, "out"), resolved.targetDir)
	require.Equal(t, filepath.Join(dir, "circuits/main.gob"), resolved.circuits["main"])
}

func TestResolveWorkspaceSelected(t *testing.T) {
	dir := writeManifest(t, testManifest)
	//
	resolved, err := resolveWorkspace(dir, "token")
	require.NoError(t, err)
	require.Len(t, resolved.workspace.Packages, 1)
	require.Equal(t, "token", resolved.workspace.Packages[0].Name)
}

func TestResolveWorkspaceUnknownPackage(t *testing.T) {
	dir := writeManifest(t, testManifest)
	//
	_, err := resolveWorkspace(dir, "missing")
	require.ErrorContains(t, err, "no package named")
}

func TestResolveWorkspaceUnknownType(t *testing.T) {
	dir := writeManifest(t, `
[[package]]
name = "main"
type = "exe"
`)
	//
	_, err := resolveWorkspace(dir, "")
	require.ErrorContains(t, err, "unknown package type")
}

func TestResolveWorkspaceDefaultTarget(t *testing.T) {
	dir := writeManifest(t, `
[[package]]
name = "main"
type = "bin"
`)
	//
	resolved, err := resolveWorkspace(dir, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "target"), resolved.targetDir)
}

func TestFileFrontend(t *testing.T) {
	dir := t.TempDir()
	program := build.CompiledProgram{
		Abi: []build.AbiParameter{{Name: "x", Type: "Field", Visibility: "public"}},
	}
	//
	filename := filepath.Join(dir, "main.gob")
	writeGob(t, filename, program)
	//
	frontend := &fileFrontend{circuits: map[string]string{"main": filename}}
	//
	loaded, diagnostics, err := frontend.CompileMain(build.Package{Name: "main", Type: build.BINARY})
	require.NoError(t, err)
	require.Empty(t, diagnostics)
	require.Equal(t, program.Abi, loaded.Abi)
}

func TestFileFrontendMissingCircuit(t *testing.T) {
	frontend := &fileFrontend{circuits: map[string]string{}}
	//
	_, _, err := frontend.CompileMain(build.Package{Name: "main", Type: build.BINARY})
	require.ErrorContains(t, err, "no circuit file")
}

// ===================================================================
// Test Helpers
// ===================================================================

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFilename), []byte(contents), 0600))
	//
	return dir
}

func writeGob(t *testing.T, filename string, value any) {
	t.Helper()
	//
	file, err := os.Create(filename)
	require.NoError(t, err)
	//
	defer file.Close()
	require.NoError(t, gob.NewEncoder(file).Encode(value))
}
