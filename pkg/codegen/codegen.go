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

// Package codegen walks a fully-resolved program and emits GNU-assembler
// (AT&T syntax) x86-64 text, using pkg/regalloc for operand placement.
// Every resolved.Expr leaves its value (or, for struct-typed expressions,
// its address) in the allocator's current register; every resolved.Stmt
// leaves no result.
package codegen

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/minic-lang/minic/pkg/regalloc"
	"github.com/minic-lang/minic/pkg/resolved"
	"github.com/minic-lang/minic/pkg/scope"
	"github.com/minic-lang/minic/pkg/types"
)

// Generator holds the mutable state threaded through one program's code
// generation: the register allocator, the output buffer, and the clause
// counter for short-circuit boolean expressions. A Generator is single-use.
type Generator struct {
	alloc   *regalloc.Allocator
	out     strings.Builder
	structs map[string]scope.StructInfo
	clause  int
	// continueTargets maps a loop's Label to the label name `continue`
	// should jump to — a for loop's post label, or a while loop's top
	// label — populated as each loop is entered.
	continueTargets map[int]string
	log             *logrus.Entry
}

// Generate emits the full assembly text for a resolved program.
func Generate(prog *resolved.Program, log *logrus.Entry) (string, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	g := &Generator{alloc: regalloc.New(), structs: prog.Structs, log: log}

	g.genRodata(prog.Strings)

	g.emit(".text\n")

	for _, fn := range prog.Functions {
		g.emit(".globl %s\n", fn.Name)
		g.emit(".type %s, @function\n", fn.Name)
	}

	for _, fn := range prog.Functions {
		log.Debugf("emitting function %q", fn.Name)

		if err := g.genFunction(fn); err != nil {
			return "", err
		}
	}

	return g.out.String(), nil
}

func (g *Generator) emit(format string, args ...any) {
	fmt.Fprintf(&g.out, format, args...)
}

// genRodata emits one .rodata entry per interned string literal, labelled
// `.LC<n>` in first-use order.
func (g *Generator) genRodata(strs []string) {
	if len(strs) == 0 {
		return
	}

	g.emit(".section .rodata\n")

	for i, s := range strs {
		g.emit(".LC%d:\n", i)
		g.emit("\t.string %q\n", s)
	}
}

// sizeOf is the code generator's view of an expression's rendered operand
// size: struct-typed expressions always carry an address in a register
// (8 bytes), never a loaded value, so they render at pointer width.
func (g *Generator) sizeOf(t types.DataType) int {
	if t.IsStruct() {
		return 8
	}

	return t.Size()
}

// byteSizeOf is a struct's true in-memory size, used for array element
// strides and the mov_bytes copy schedule — unlike sizeOf, which collapses
// every struct to 8 bytes for register rendering.
func (g *Generator) byteSizeOf(t types.DataType) int {
	if t.IsStruct() {
		return g.structInfo(t.Name()).Size
	}

	return t.Size()
}

// storeValue stores a value already evaluated into reg at the stack-frame
// slot `offset`: a sized mov for scalars, the mov_bytes schedule (via fixed
// R11/R10/RAX scratch) for structs, where reg holds the struct's address.
func (g *Generator) storeValue(reg regalloc.Register, offset int, typ types.DataType) {
	dst := regalloc.StackOperand(offset)

	if typ.IsStruct() {
		g.emit("\tleaq %s, %s\n", dst, regalloc.Render(regalloc.R11, 8))
		g.emit("\tmovq %s, %s\n", regalloc.Render(reg, 8), regalloc.Render(regalloc.R10, 8))
		g.movBytes(regalloc.R11, regalloc.R10, regalloc.RAX, g.byteSizeOf(typ))

		return
	}

	size := g.sizeOf(typ)
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(reg, size), dst)
}

// storeAtAddress is storeValue's counterpart when the destination is an
// address already held in a register (a dereferenced pointer, an indexed
// element, or a field) rather than a named stack slot.
func (g *Generator) storeAtAddress(dstAddrReg, srcReg regalloc.Register, typ types.DataType) {
	if typ.IsStruct() {
		g.emit("\tmovq %s, %s\n", regalloc.Render(dstAddrReg, 8), regalloc.Render(regalloc.R11, 8))
		g.emit("\tmovq %s, %s\n", regalloc.Render(srcReg, 8), regalloc.Render(regalloc.R10, 8))
		g.movBytes(regalloc.R11, regalloc.R10, regalloc.RAX, g.byteSizeOf(typ))

		return
	}

	size := g.sizeOf(typ)
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(srcReg, size), regalloc.AddrOperand(dstAddrReg, 0))
}

// structInfo looks up a struct's layout by name, panicking if absent — the
// resolver guarantees every struct-typed value's struct is complete and
// present in Program.Structs by the time code generation runs.
func (g *Generator) structInfo(name string) scope.StructInfo {
	info, ok := g.structs[name]
	if !ok {
		panic(fmt.Sprintf("codegen: unknown struct %q (resolver invariant violated)", name))
	}

	return info
}

// sizeSuffix is the AT&T mnemonic suffix for a byte count (b/w/l/q).
func sizeSuffix(size int) string {
	switch size {
	case 1:
		return "b"
	case 2:
		return "w"
	case 4:
		return "l"
	case 8:
		return "q"
	default:
		panic(fmt.Sprintf("codegen: unsupported operand size %d", size))
	}
}

// movMnemonic returns the sized `mov` instruction for a byte count.
func movMnemonic(size int) string { return "mov" + sizeSuffix(size) }

// cmpMnemonic returns the sized `cmp` instruction for a byte count.
func cmpMnemonic(size int) string { return "cmp" + sizeSuffix(size) }

// chunkSize picks the mov_bytes schedule's next chunk for n remaining
// bytes: the largest power-of-two chunk that fits.
func chunkSize(n int) int {
	switch {
	case n >= 8:
		return 8
	case n >= 4:
		return 4
	case n >= 2:
		return 2
	default:
		return 1
	}
}
