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
	"os"
	"strings"

	"github.com/consensys/go-zkbuild/pkg/source"
	"golang.org/x/term"
)

// ANSI escapes for diagnostic severities, applied only when stderr is an
// actual terminal.
const (
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiReset  = "\033[0m"
)

// reportDiagnostics prints a set of diagnostics to stderr.  When the named
// source file is readable the offending line is shown with a caret highlight;
// otherwise the diagnostic is printed on a single line.
func reportDiagnostics(diagnostics []source.Diagnostic) {
	colour := term.IsTerminal(int(os.Stderr.Fd()))
	//
	for _, d := range diagnostics {
		var severity string
		//
		switch d.Severity() {
		case source.WARNING:
			severity = highlight("warning", ansiYellow, colour)
		case source.ERROR:
			severity = highlight("error", ansiRed, colour)
		}
		//
		if files, err := source.ReadFiles(d.Location().File); err == nil {
			reportSourceDiagnostic(&files[0], d, severity)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", severity, d.Location().String(), d.Message())
		}
	}
}

// reportSourceDiagnostic prints a diagnostic along with its enclosing source
// line and a caret highlight.
func reportSourceDiagnostic(file *source.File, d source.Diagnostic, severity string) {
	span := d.Location().Span
	line := file.FindFirstEnclosingLine(span)
	// Print error + line number
	fmt.Fprintf(os.Stderr, "%s: %s:%d: %s\n", severity, file.Filename(), line.Number(), d.Message())
	// Print line
	fmt.Fprintln(os.Stderr, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(os.Stderr, strings.Repeat(" ", max(0, span.Start()-line.Start())))
	// Print highlight
	fmt.Fprintln(os.Stderr, strings.Repeat("^", max(1, span.Length())))
}

func highlight(text string, ansi string, colour bool) string {
	if colour {
		return ansi + text + ansiReset
	}
	//
	return text
}
