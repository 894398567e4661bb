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
package parser

import (
	"testing"

	"github.com/minic-lang/minic/pkg/ast"
	"github.com/minic-lang/minic/pkg/lexer"
	"github.com/minic-lang/minic/pkg/util/assert"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()

	tokens, err := lexer.Tokenize("test.c", []rune(src))
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}

	prog, err := Parse("test.c", tokens)
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}

	return prog
}

func singleReturnExpr(t *testing.T, prog *ast.Program) ast.Expr {
	t.Helper()

	fn, ok := prog.Decls[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected a function declaration, got %T", prog.Decls[0])
	}

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected a return statement, got %T", fn.Body.Stmts[0])
	}

	return ret.Expr
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	prog := parse(t, "int main(){ return 2+3*4; }")
	expr := singleReturnExpr(t, prog)

	bin, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level binary, got %T", expr)
	}

	assert.Equal(t, ast.Add, bin.Op)

	rhs, ok := bin.RHS.(*ast.Binary)
	if !ok {
		t.Fatalf("expected rhs to be the multiplication, got %T", bin.RHS)
	}

	assert.Equal(t, ast.Mul, rhs.Op)
}

func TestLogicalOrBindsLooserThanLogicalAnd(t *testing.T) {
	prog := parse(t, "int main(){ return 1 || 0 && 0; }")
	expr := singleReturnExpr(t, prog)

	bin, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected top-level binary, got %T", expr)
	}

	assert.Equal(t, ast.OrOr, bin.Op)

	rhs, ok := bin.RHS.(*ast.Binary)
	if !ok {
		t.Fatalf("expected rhs to be the && clause, got %T", bin.RHS)
	}

	assert.Equal(t, ast.AndAnd, rhs.Op)
}

func TestAssignmentIsRightAssociativeAndLowestPrecedence(t *testing.T) {
	prog := parse(t, "int main(){ int a; int b; a = b = 1; return a; }")

	fn := prog.Decls[0].(*ast.Function)
	stmt := fn.Body.Stmts[2].(*ast.ExprStmt)

	outer, ok := stmt.Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected an assignment, got %T", stmt.Expr)
	}

	_, ok = outer.RHS.(*ast.Assignment)
	assert.True(t, ok, "a = b = 1 must parse as a = (b = 1)")
}

func TestCastDisambiguatesFromParenthesizedExpression(t *testing.T) {
	prog := parse(t, "int main(){ return (int)(1+2); }")
	expr := singleReturnExpr(t, prog)

	cast, ok := expr.(*ast.Cast)
	if !ok {
		t.Fatalf("expected a cast, got %T", expr)
	}

	_, ok = cast.Expr.(*ast.Binary)
	assert.True(t, ok, "cast operand must be the parenthesized addition")
}

func TestParenthesizedExpressionWithoutCastIsPlain(t *testing.T) {
	prog := parse(t, "int main(){ return (1+2)*3; }")
	expr := singleReturnExpr(t, prog)

	bin, ok := expr.(*ast.Binary)
	if !ok {
		t.Fatalf("expected a binary, got %T", expr)
	}

	assert.Equal(t, ast.Mul, bin.Op)

	_, ok = bin.LHS.(*ast.Binary)
	assert.True(t, ok, "(1+2) must remain a plain parenthesized addition, not a cast")
}

func TestArraySugarRewritesToPointerDeclaration(t *testing.T) {
	prog := parse(t, "int main(){ int xs[] = {1,2,3}; return xs[0]; }")

	fn := prog.Decls[0].(*ast.Function)
	decl, ok := fn.Body.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected a variable declaration, got %T", fn.Body.Stmts[0])
	}

	assert.True(t, decl.Type.Stars >= 1, "T x[] must rewrite as T* x")
}

func TestDeclarationVsExpressionStatementHeuristic(t *testing.T) {
	prog := parse(t, "int main(){ int x = 1; x = x + 1; return x; }")

	fn := prog.Decls[0].(*ast.Function)

	_, isDecl := fn.Body.Stmts[0].(*ast.VarDecl)
	assert.True(t, isDecl, "leading type token must parse as a declaration")

	_, isExprStmt := fn.Body.Stmts[1].(*ast.ExprStmt)
	assert.True(t, isExprStmt, "statement without a leading type must parse as a plain expression")
}

func TestUnexpectedTokenIsReported(t *testing.T) {
	tokens, err := lexer.Tokenize("test.c", []rune("int main(){ return 1 }"))
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}

	// The `;` after the return expression is missing, so the parser meets
	// `}` where it expects `;`.
	if _, err := Parse("test.c", tokens); err == nil {
		t.Fatalf("expected an unexpected-token error for the missing ';'")
	}
}
