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
package crs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Name of the cache file within the store directory.
const cacheFilename = "crs.bin"

// DirStore caches the reference string as a single file within a given
// directory, typically the workspace's target directory.
type DirStore struct {
	dir string
}

// NewDirStore constructs a store over a given cache directory.  The directory
// is created lazily on first write.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir}
}

// ReadCached reads the cached reference string, reporting false if none has
// been written yet.
func (p *DirStore) ReadCached() (CommonReferenceString, bool, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, cacheFilename))
	//
	if errors.Is(err, fs.ErrNotExist) {
		return CommonReferenceString{}, false, nil
	} else if err != nil {
		return CommonReferenceString{}, false, err
	}
	//
	return New(data), true, nil
}

// WriteCached writes the reference string to the cache file, creating the
// cache directory if needed.
func (p *DirStore) WriteCached(value CommonReferenceString) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return err
	}
	//
	return os.WriteFile(filepath.Join(p.dir, cacheFilename), value.Bytes(), 0644)
}
