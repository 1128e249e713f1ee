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
package binfile

import (
	"path/filepath"
	"testing"

	"github.com/consensys/go-zkbuild/pkg/build"
	"github.com/stretchr/testify/require"
)

func TestProgramRoundTrip(t *testing.T) {
	dir := t.TempDir()
	artifact := testProgram()
	//
	require.NoError(t, SaveProgram(artifact, "main", dir))
	//
	read, err := ReadArtifact(filepath.Join(dir, "main.bin"))
	require.NoError(t, err)
	require.Equal(t, artifact, read)
}

func TestContractRoundTrip(t *testing.T) {
	dir := t.TempDir()
	artifact := build.PreprocessedContract{
		Name:    "Token",
		Backend: "fake-backend",
		Functions: []build.PreprocessedContractFunction{
			{Name: "transfer", Bytecode: []byte{1}, ProvingKey: []byte{2}, VerifyingKey: []byte{3}},
			{Name: "mint", Bytecode: []byte{4}},
		},
	}
	//
	require.NoError(t, SaveContract(artifact, "token-Token", dir))
	//
	read, err := ReadArtifact(filepath.Join(dir, "token-Token.bin"))
	require.NoError(t, err)
	require.Equal(t, artifact, read)
}

func TestHeaderMetadata(t *testing.T) {
	file := NewArtifactFile([]byte("meta"), testProgram())
	//
	data, err := file.MarshalBinary()
	require.NoError(t, err)
	//
	var read ArtifactFile
	require.NoError(t, read.UnmarshalBinary(data))
	require.Equal(t, []byte("meta"), read.Header.MetaData)
}

func TestIncompatibleMajorVersion(t *testing.T) {
	file := NewArtifactFile(nil, testProgram())
	file.Header.MajorVersion = BINFILE_MAJOR_VERSION + 1
	//
	data, err := file.MarshalBinary()
	require.NoError(t, err)
	//
	var read ArtifactFile
	require.ErrorContains(t, read.UnmarshalBinary(data), "incompatible")
}

func TestIncompatibleIdentifier(t *testing.T) {
	file := NewArtifactFile(nil, testProgram())
	file.Header.Identifier = [8]byte{'g', 'a', 'r', 'b', 'a', 'g', 'e', 0}
	//
	data, err := file.MarshalBinary()
	require.NoError(t, err)
	//
	var read ArtifactFile
	require.ErrorContains(t, read.UnmarshalBinary(data), "incompatible")
}

func TestNewerMinorVersionAccepted(t *testing.T) {
	var header = Header{ZKBUILD, BINFILE_MAJOR_VERSION, 0, nil}
	require.True(t, header.IsCompatible())
}

func testProgram() build.PreprocessedProgram {
	return build.PreprocessedProgram{
		Name:    "main",
		Backend: "fake-backend",
		Abi: []build.AbiParameter{
			{Name: "x", Type: "u2", Visibility: "private"},
		},
		Bytecode:     []byte{0xde, 0xad},
		ProvingKey:   []byte{0xbe},
		VerifyingKey: []byte{0xef},
	}
}
