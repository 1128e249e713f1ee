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

// Package binfile persists build artifacts in a versioned binary container:
// a fixed identifier and version header (so corrupted or foreign files are
// recognised early), followed by a gob encoding of the artifact itself.
package binfile

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/go-zkbuild/pkg/build"
)

func init() {
	gob.Register(build.PreprocessedProgram{})
	gob.Register(build.PreprocessedContract{})
}

// BINFILE_MAJOR_VERSION gives the major version of the artifact file format.
// No matter what version, we should always have the ZKBUILD identifier first,
// followed by the header.  What follows after that, however, is determined by
// the major version.
const BINFILE_MAJOR_VERSION uint16 = 1

// BINFILE_MINOR_VERSION gives the minor version of the artifact file format.
// The expected interpretation is that older versions are compatible with newer
// ones, but not vice-versa.
const BINFILE_MINOR_VERSION uint16 = 0

// ZKBUILD is used as the file identifier for artifact files.  This just helps
// us distinguish actual artifact files from corrupted files.
var ZKBUILD [8]byte = [8]byte{'z', 'k', 'b', 'u', 'i', 'l', 'd', 0}

// ArtifactFile is a programmatic representation of an on-disk artifact.
type ArtifactFile struct {
	// Header for the artifact file.
	Header Header
	// The artifact itself.
	Artifact build.Artifact
}

// NewArtifactFile constructs an artifact file with the default header for the
// currently supported version.
func NewArtifactFile(metadata []byte, artifact build.Artifact) *ArtifactFile {
	return &ArtifactFile{
		Header{ZKBUILD, BINFILE_MAJOR_VERSION, BINFILE_MINOR_VERSION, metadata},
		artifact,
	}
}

// Header provides a structured header for the artifact file format.  In
// particular, it supports versioning and embedded (binary) metadata.
type Header struct {
	Identifier   [8]byte
	MajorVersion uint16
	MinorVersion uint16
	MetaData     []byte
}

// IsCompatible determines whether a given artifact file can be read by this
// version of zkbuild.
func (p *Header) IsCompatible() bool {
	return p.Identifier == ZKBUILD &&
		p.MajorVersion == BINFILE_MAJOR_VERSION &&
		p.MinorVersion <= BINFILE_MINOR_VERSION
}

// MarshalBinary converts the artifact file Header into a sequence of bytes.
// Observe that we don't use gob encoding here, to avoid being tied to that
// encoding scheme.
func (p *Header) MarshalBinary() ([]byte, error) {
	var (
		buffer     bytes.Buffer
		majorBytes [2]byte
		minorBytes [2]byte
		metaLength [4]byte
	)
	//
	binary.BigEndian.PutUint16(majorBytes[:], p.MajorVersion)
	binary.BigEndian.PutUint16(minorBytes[:], p.MinorVersion)
	binary.BigEndian.PutUint32(metaLength[:], uint32(len(p.MetaData)))
	//
	buffer.Write(p.Identifier[:])
	buffer.Write(majorBytes[:])
	buffer.Write(minorBytes[:])
	buffer.Write(metaLength[:])
	buffer.Write(p.MetaData)
	//
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this Header from a given buffer.  This should
// match exactly the encoding above.
func (p *Header) UnmarshalBinary(buffer *bytes.Buffer) error {
	var (
		majorBytes      [2]byte
		minorBytes      [2]byte
		metaLengthBytes [4]byte
	)
	//
	if n, err := buffer.Read(p.Identifier[:]); err != nil {
		return err
	} else if n != len(p.Identifier) {
		return errors.New("malformed artifact file")
	}
	//
	if n, err := buffer.Read(majorBytes[:]); err != nil {
		return err
	} else if n != len(majorBytes) {
		return errors.New("malformed artifact file")
	}
	//
	if n, err := buffer.Read(minorBytes[:]); err != nil {
		return err
	} else if n != len(minorBytes) {
		return errors.New("malformed artifact file")
	}
	//
	if n, err := buffer.Read(metaLengthBytes[:]); err != nil {
		return err
	} else if n != len(metaLengthBytes) {
		return errors.New("malformed artifact file")
	}
	//
	metaBytes := make([]byte, binary.BigEndian.Uint32(metaLengthBytes[:]))
	//
	if len(metaBytes) > 0 {
		if n, err := buffer.Read(metaBytes); err != nil {
			return err
		} else if n != len(metaBytes) {
			return errors.New("malformed artifact file")
		}
	}
	//
	p.MajorVersion = binary.BigEndian.Uint16(majorBytes[:])
	p.MinorVersion = binary.BigEndian.Uint16(minorBytes[:])
	p.MetaData = metaBytes
	//
	return nil
}

// MarshalBinary converts the artifact file into a sequence of bytes.
func (p *ArtifactFile) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	//
	headerBytes, err := p.Header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	//
	buffer.Write(headerBytes)
	//
	if err := gob.NewEncoder(&buffer).Encode(&p.Artifact); err != nil {
		return nil, err
	}
	//
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this artifact file from a given set of bytes,
// rejecting files whose header is incompatible.
func (p *ArtifactFile) UnmarshalBinary(data []byte) error {
	buffer := bytes.NewBuffer(data)
	//
	if err := p.Header.UnmarshalBinary(buffer); err != nil {
		return err
	} else if !p.Header.IsCompatible() {
		return fmt.Errorf("incompatible artifact file (version %d.%d)", p.Header.MajorVersion, p.Header.MinorVersion)
	}
	//
	return gob.NewDecoder(buffer).Decode(&p.Artifact)
}

// SaveProgram writes a preprocessed program to "<name>.bin" within a given
// directory.
func SaveProgram(artifact build.PreprocessedProgram, name string, dir string) error {
	return saveArtifact(artifact, name, dir)
}

// SaveContract writes a preprocessed contract to "<name>.bin" within a given
// directory.  By convention the name combines package and contract name.
func SaveContract(artifact build.PreprocessedContract, name string, dir string) error {
	return saveArtifact(artifact, name, dir)
}

// ReadArtifact reads back any artifact previously saved by this package.
func ReadArtifact(filename string) (build.Artifact, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	var file ArtifactFile
	if err := file.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	//
	return file.Artifact, nil
}

func saveArtifact(artifact build.Artifact, name string, dir string) error {
	data, err := NewArtifactFile(nil, artifact).MarshalBinary()
	if err != nil {
		return err
	}
	//
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	//
	return os.WriteFile(filepath.Join(dir, name+".bin"), data, 0644)
}
