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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/go-zkbuild/pkg/backend/bn254"
	"github.com/consensys/go-zkbuild/pkg/binfile"
	"github.com/consensys/go-zkbuild/pkg/build"
	"github.com/consensys/go-zkbuild/pkg/crs"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [workspace_dir]",
	Short: "compile workspace packages into provable artifacts.",
	Long: `Compile every package of a workspace into a backend-ready provable artifact,
	 folding the common reference string across all circuits so the cached value
	 covers the whole workspace on the next build.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		//
		options := build.Options{
			IncludeKeys:  GetFlag(cmd, "include-keys"),
			DenyWarnings: GetFlag(cmd, "deny-warnings"),
		}
		//
		resolved, err := resolveWorkspace(dir, GetString(cmd, "package"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		os.Exit(runCompile(resolved, options))
	},
}

// runCompile drives the build of a resolved workspace, saving artifacts as
// they are produced and reporting per-package failures.  The exit code is
// non-zero if any package failed.
func runCompile(resolved resolvedWorkspace, options build.Options) int {
	var (
		backend  = bn254.NewBackend()
		frontend = &fileFrontend{resolved.circuits}
		store    = crs.NewDirStore(filepath.Join(resolved.targetDir, "crs"))
	)
	//
	results, err := build.Build(resolved.workspace, frontend, backend, store, options)
	// Reference string (or cache) failures abort the whole workspace.
	if err != nil {
		fmt.Println(err)
		return 1
	}
	//
	code := 0
	//
	for _, result := range results {
		reportDiagnostics(result.Warnings)
		//
		if result.Err != nil {
			code = 1
			//
			reportFailure(result)
			continue
		}
		//
		if err := saveArtifact(result, resolved.targetDir); err != nil {
			fmt.Println(err)
			code = 1
		}
	}
	//
	return code
}

func reportFailure(result build.PackageResult) {
	var compilation *build.CompilationError
	// Compilation failures carry frontend diagnostics worth rendering.
	if errors.As(result.Err, &compilation) {
		reportDiagnostics(compilation.Diagnostics)
	}
	//
	fmt.Fprintln(os.Stderr, result.Err)
}

func saveArtifact(result build.PackageResult, dir string) error {
	switch artifact := result.Artifact.(type) {
	case build.PreprocessedProgram:
		return binfile.SaveProgram(artifact, result.Package.Name, dir)
	case build.PreprocessedContract:
		name := fmt.Sprintf("%s-%s", result.Package.Name, artifact.Name)
		return binfile.SaveContract(artifact, name, dir)
	}
	//
	panic("unknown artifact")
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().Bool("include-keys", false, "include proving and verification keys in the build artifacts")
	compileCmd.Flags().Bool("deny-warnings", false, "error on any compilation warning")
	compileCmd.Flags().StringP("package", "p", "", "only compile the named package")
}
