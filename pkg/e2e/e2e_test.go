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

// Package e2e drives the full lexer -> parser -> resolver -> codegen
// pipeline over the source-to-behavior scenarios in spec.md §8 and checks
// the emitted assembly carries the shapes those scenarios require. These
// are golden-skeleton checks, not an assembler: nothing here links or runs
// the output.
package e2e

import (
	"strings"
	"testing"

	"github.com/minic-lang/minic/pkg/codegen"
	"github.com/minic-lang/minic/pkg/lexer"
	"github.com/minic-lang/minic/pkg/parser"
	"github.com/minic-lang/minic/pkg/resolver"
	"github.com/minic-lang/minic/pkg/util/assert"
)

// compile runs the whole pipeline and fails the test on any stage error.
func compile(t *testing.T, src string) string {
	t.Helper()

	tokens, err := lexer.Tokenize("test.c", []rune(src))
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}

	prog, err := parser.Parse("test.c", tokens)
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}

	resolvedProg, err := resolver.Resolve(prog, nil)
	if err != nil {
		t.Fatalf("resolver error: %v", err)
	}

	asm, err := codegen.Generate(resolvedProg, nil)
	if err != nil {
		t.Fatalf("codegen error: %v", err)
	}

	return asm
}

func compileErr(t *testing.T, src string) error {
	t.Helper()

	tokens, err := lexer.Tokenize("test.c", []rune(src))
	if err != nil {
		return err
	}

	prog, err := parser.Parse("test.c", tokens)
	if err != nil {
		return err
	}

	if _, err := resolver.Resolve(prog, nil); err != nil {
		return err
	}

	return nil
}

func TestArithmeticPrecedence(t *testing.T) {
	asm := compile(t, "int main(){ return 2+3*4; }")

	assert.True(t, strings.Contains(asm, "main:"), "missing main label")
	assert.True(t, strings.Contains(asm, "imul"), "missing multiplication")
	assert.True(t, strings.Contains(asm, "add"), "missing addition")
	assert.True(t, strings.Contains(asm, "leave"), "missing epilogue")
	assert.True(t, strings.Contains(asm, "ret"), "missing return")
}

func TestForLoopAccumulator(t *testing.T) {
	asm := compile(t, "int main(){ int x = 0; for (int i = 0; i < 10; i = i + 1) x = x + i; return x; }")

	assert.True(t, strings.Contains(asm, "jmp"), "for loop must jump back to top")
	assert.True(t, strings.Contains(asm, "je"), "for loop must test its condition")
}

func TestPointerWriteThrough(t *testing.T) {
	asm := compile(t, "int main(){ int a = 3; int* p = &a; *p = 7; return a; }")

	assert.True(t, strings.Contains(asm, "lea"), "address-of must emit lea")
	assert.True(t, strings.Contains(asm, "movl"), "dereferenced store must be a sized mov")
}

func TestArrayLiteralSugar(t *testing.T) {
	asm := compile(t, "int main(){ int xs[] = {10, 20, 30}; return xs[0] + xs[1] + xs[2]; }")

	assert.True(t, strings.Contains(asm, "main:"), "missing main label")
}

func TestStructLiteralFieldAccess(t *testing.T) {
	asm := compile(t, "struct P { int x; int y; }; int main(){ struct P p = {.x=3,.y=4}; return p.x * p.y; }")

	assert.True(t, strings.Contains(asm, "imul"), "struct field product must multiply")
}

func TestRecursiveFibonacci(t *testing.T) {
	asm := compile(t, "int f(int n){ if (n<2) return n; return f(n-1)+f(n-2); } int main(){ return f(10); }")

	assert.True(t, strings.Contains(asm, "call f"), "recursive call must target f")
	assert.True(t, strings.Count(asm, "f:") >= 1, "f must be defined")
}

func TestSelfReferentialStructThroughPointerIsLegal(t *testing.T) {
	err := compileErr(t, "struct S { struct S* next; }; int main(){ return 0; }")
	assert.True(t, err == nil, "pointer to self is legal: %v", err)
}

func TestSelfReferentialStructByValueIsRejected(t *testing.T) {
	err := compileErr(t, "struct S { struct S next; }; int main(){ return 0; }")
	assert.True(t, err != nil, "struct containing itself by value must be rejected")
}

func TestEmptyArrayLiteralIsRejected(t *testing.T) {
	err := compileErr(t, "int main(){ int xs[] = {}; return 0; }")
	assert.True(t, err != nil, "empty array literal must be rejected")
}

func TestSevenParametersIsRejected(t *testing.T) {
	err := compileErr(t, "int f(int a, int b, int c, int d, int e, int g, int h){ return a; } int main(){ return f(1,2,3,4,5,6,7); }")
	assert.True(t, err != nil, "seven parameters must be rejected")
}

func TestBreakOutsideLoopIsRejected(t *testing.T) {
	err := compileErr(t, "int main(){ break; return 0; }")
	assert.True(t, err != nil, "break outside a loop must be rejected")
}

func TestForwardDeclarationMatchingDefinitionIsLegal(t *testing.T) {
	err := compileErr(t, "int f(int n); int f(int n){ return n; } int main(){ return f(1); }")
	assert.True(t, err == nil, "matching forward declaration must be legal: %v", err)
}

func TestForwardDeclarationMismatchedDefinitionIsRejected(t *testing.T) {
	err := compileErr(t, "int f(int n); long f(int n){ return n; } int main(){ return f(1); }")
	assert.True(t, err != nil, "mismatched forward declaration must be rejected")
}

func TestShortCircuitAndGeneratesClauseLabels(t *testing.T) {
	asm := compile(t, "int main(){ int a = 1; int b = 0; if (a && b) return 1; return 0; }")

	assert.True(t, strings.Contains(asm, "_clause"), "missing short-circuit clause label")
	assert.True(t, strings.Contains(asm, "_end"), "missing short-circuit end label")
}
