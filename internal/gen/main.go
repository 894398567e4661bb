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

// Command gen drives bavard to emit the register-name table consumed by
// pkg/regalloc and the comparison-operator condition-code table consumed
// by pkg/codegen. Both are small enough to hand-write, but the compiler's
// register pool and its System V parameter order are fixed ABI facts, not
// design choices, so they are generated from a single data table rather
// than typed out twice (once here, once in a _test.go asserting they
// agree).
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/consensys/bavard"
)

const copyrightHolder = "Consensys Software Inc."

//go:generate go run main.go
func main() {
	bgen := bavard.NewBatchGenerator(copyrightHolder, 2025, "github.com/minic-lang/minic")

	assertNoError(bgen.Generate(registerPool, "registers", "templates",
		bavard.Entry{
			File:      "../../pkg/regalloc/registers_gen.go",
			Templates: []string{"registers.tmpl"},
		},
	), "generating registers_gen.go")

	assertNoError(bgen.Generate(condCodes, "condcodes", "templates",
		bavard.Entry{
			File:      "../../pkg/codegen/condcodes_gen.go",
			Templates: []string{"condcodes.tmpl"},
		},
	), "generating condcodes_gen.go")

	runCmd("gofmt", "-w", "../../pkg/regalloc/registers_gen.go", "../../pkg/codegen/condcodes_gen.go")
}

// register describes one general-purpose 64-bit register's place in the
// allocator's fixed pool and its per-size assembly mnemonics.
type register struct {
	Name     string // Go identifier, e.g. "RAX"
	Byte     string // 1-byte mnemonic, e.g. "al"
	Word     string // 2-byte mnemonic, e.g. "ax"
	Long     string // 4-byte mnemonic, e.g. "eax"
	Quad     string // 8-byte mnemonic, e.g. "rax"
	IsParked bool   // true for the single caller-save spill boundary, R10
	IsParam  bool   // true if this register also appears in paramRegs
}

// registerPool is the allocator's fixed ordered pool, in push/pop order.
// The System V AMD64 calling convention fixes the first six as the
// integer/pointer parameter-passing registers, in this exact order.
var registerPool = struct {
	Registers []register
}{
	Registers: []register{
		{Name: "RAX", Byte: "al", Word: "ax", Long: "eax", Quad: "rax"},
		{Name: "RDI", Byte: "dil", Word: "di", Long: "edi", Quad: "rdi", IsParam: true},
		{Name: "RSI", Byte: "sil", Word: "si", Long: "esi", Quad: "rsi", IsParam: true},
		{Name: "RDX", Byte: "dl", Word: "dx", Long: "edx", Quad: "rdx", IsParam: true},
		{Name: "RCX", Byte: "cl", Word: "cx", Long: "ecx", Quad: "rcx", IsParam: true},
		{Name: "R8", Byte: "r8b", Word: "r8w", Long: "r8d", Quad: "r8", IsParam: true},
		{Name: "R9", Byte: "r9b", Word: "r9w", Long: "r9d", Quad: "r9", IsParam: true},
		{Name: "R10", Byte: "r10b", Word: "r10w", Long: "r10d", Quad: "r10", IsParked: true},
		{Name: "R11", Byte: "r11b", Word: "r11w", Long: "r11d", Quad: "r11"},
		{Name: "RBX", Byte: "bl", Word: "bx", Long: "ebx", Quad: "rbx"},
		{Name: "R12", Byte: "r12b", Word: "r12w", Long: "r12d", Quad: "r12"},
		{Name: "R13", Byte: "r13b", Word: "r13w", Long: "r13d", Quad: "r13"},
		{Name: "R14", Byte: "r14b", Word: "r14w", Long: "r14d", Quad: "r14"},
		{Name: "R15", Byte: "r15b", Word: "r15w", Long: "r15d", Quad: "r15"},
	},
}

// condCode pairs a resolved comparison operator's Go identifier with the
// AT&T `set<cc>` suffix that materializes its boolean result.
type condCode struct {
	Op     string
	Suffix string
}

var condCodes = struct {
	Codes []condCode
}{
	Codes: []condCode{
		{Op: "Eq", Suffix: "e"},
		{Op: "Ne", Suffix: "ne"},
		{Op: "Lt", Suffix: "l"},
		{Op: "Le", Suffix: "le"},
		{Op: "Gt", Suffix: "g"},
		{Op: "Ge", Suffix: "ge"},
	},
}

func runCmd(name string, arg ...string) {
	fmt.Println(name, strings.Join(arg, " "))

	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	assertNoError(cmd.Run(), "running "+name)
}

func assertNoError(err error, context string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", context, err)
		os.Exit(1)
	}
}
