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
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-zkbuild/pkg/build"
)

// Name of the workspace manifest file.
const manifestFilename = "zkbuild.toml"

// workspaceManifest mirrors the layout of zkbuild.toml.
type workspaceManifest struct {
	Workspace struct {
		// Target directory for artifacts, relative to the manifest.
		Target string `toml:"target"`
	} `toml:"workspace"`
	//
	Packages []packageManifest `toml:"package"`
}

// packageManifest describes one [[package]] entry.
type packageManifest struct {
	Name    string `toml:"name"`
	Type    string `toml:"type"`
	Version string `toml:"version"`
	// Circuit file produced by the frontend for this package, relative to
	// the manifest.
	Circuit string `toml:"circuit"`
}

// resolvedWorkspace is a workspace together with the CLI-side information
// needed to drive a build of it: where each package's compiled circuit lives,
// and where artifacts go.
type resolvedWorkspace struct {
	workspace build.Workspace
	// Per-package circuit file, keyed by package name.
	circuits map[string]string
	// Absolute target directory.
	targetDir string
}

// resolveWorkspace reads the manifest within a given workspace directory,
// producing the workspace in declaration order.  When selected is non-empty,
// the workspace is restricted to the named package.
func resolveWorkspace(dir string, selected string) (resolvedWorkspace, error) {
	var manifest workspaceManifest
	//
	path := filepath.Join(dir, manifestFilename)
	//
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return resolvedWorkspace{}, fmt.Errorf("%s: failed to parse manifest: %w", path, err)
	}
	//
	target := manifest.Workspace.Target
	if target == "" {
		target = "target"
	}
	//
	resolved := resolvedWorkspace{
		circuits:  make(map[string]string),
		targetDir: filepath.Join(dir, target),
	}
	//
	for _, pkg := range manifest.Packages {
		if selected != "" && pkg.Name != selected {
			continue
		}
		//
		kind, err := parsePackageType(pkg.Type)
		if err != nil {
			return resolvedWorkspace{}, fmt.Errorf("%s: package \"%s\": %w", path, pkg.Name, err)
		}
		//
		resolved.workspace.Packages = append(resolved.workspace.Packages, build.Package{
			Name:    pkg.Name,
			Type:    kind,
			Version: pkg.Version,
		})
		//
		resolved.circuits[pkg.Name] = filepath.Join(dir, pkg.Circuit)
	}
	//
	if selected != "" && len(resolved.workspace.Packages) == 0 {
		return resolvedWorkspace{}, fmt.Errorf("%s: no package named \"%s\"", path, selected)
	}
	//
	return resolved, nil
}

func parsePackageType(name string) (build.PackageType, error) {
	switch name {
	case "bin":
		return build.BINARY, nil
	case "lib":
		return build.LIBRARY, nil
	case "contract":
		return build.CONTRACT, nil
	}
	//
	return 0, fmt.Errorf("unknown package type \"%s\"", name)
}
