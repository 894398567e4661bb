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
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command; `compile` is its sole subcommand, mirroring
// the way `pkg/cmd/zkc/root.go` hosts `compileCmd` and friends.
var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "A compiler for a practical subset of C, targeting x86-64 assembly.",
	Long: "minic reads a single C source file and emits a GNU-assembler " +
		"(AT&T syntax) x86-64 text-section file suitable for assembling " +
		"and linking with a standard C runtime.",
	SilenceErrors: true,
}

// Execute runs the root command. Called by main.main(); on any failure the
// process exits with status 1, matching the CLI contract in spec.md §6.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}
