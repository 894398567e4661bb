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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/minic-lang/minic/pkg/codegen"
	"github.com/minic-lang/minic/pkg/lexer"
	"github.com/minic-lang/minic/pkg/parser"
	"github.com/minic-lang/minic/pkg/resolver"
	"github.com/minic-lang/minic/pkg/util/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile <input.c> <output.s>",
	Short: "compile a single C source file into x86-64 assembly.",
	Long:  "Compile a single C source file and write the resulting GNU-assembler (AT&T syntax) text to output.s.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().Bool("ast", false, "dump the resolved abstract syntax tree to standard output")
	compileCmd.Flags().Bool("tokens", false, "dump the token stream to standard output")
}

func runCompile(cmd *cobra.Command, args []string) error {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	var (
		input  = args[0]
		output = args[1]
		entry  = log.NewEntry(log.StandardLogger())
	)

	files, err := source.ReadFiles(input)
	if err != nil {
		fail(err)
	}

	file := files[0]

	tokens, err := lexer.Tokenize(file.Filename(), file.Contents())
	if err != nil {
		fail(err)
	}

	if GetFlag(cmd, "tokens") {
		writeTokens(tokens)
	}

	prog, err := parser.Parse(file.Filename(), tokens)
	if err != nil {
		fail(err)
	}

	resolvedProg, err := resolver.Resolve(prog, entry)
	if err != nil {
		failWith(&file, err)
	}

	if GetFlag(cmd, "ast") {
		writeResolvedProgram(resolvedProg)
	}

	asmText, err := codegen.Generate(resolvedProg, entry)
	if err != nil {
		fail(err)
	}

	if err := os.WriteFile(output, []byte(asmText), 0644); err != nil {
		fail(err)
	}

	return nil
}

// fail prints a single error and exits 1 — the compiler's uniform
// error-handling contract (spec.md §7): there is no local recovery, a batch
// compiler either succeeds or exits non-zero.
func fail(err error) {
	fmt.Println(err)
	os.Exit(1)
}

// failWith reports a resolver error, rendering the offending source line
// and a caret when the error carries a span, and falls back to a bare
// message otherwise.
func failWith(file *source.File, err error) {
	if rerr, ok := err.(*resolver.Error); ok && rerr.Span != nil {
		fmt.Println(source.Render(file.SyntaxError(*rerr.Span, rerr.Message)))
		os.Exit(1)
	}

	fail(err)
}
