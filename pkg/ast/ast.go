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

// Package ast defines the unresolved syntax tree produced by pkg/parser:
// names are unresolved and types are still symbolic (TypeExpr), exactly as
// written in the source. pkg/resolver consumes this tree and produces the
// fully-typed tree in pkg/resolved.
package ast

import "github.com/minic-lang/minic/pkg/util/source"

// Program is the root of a parsed translation unit: an ordered sequence of
// top-level declarations.
type Program struct {
	Decls []Decl
}

// Decl is any top-level declaration: a function, a struct statement, or a
// typedef.
type Decl interface {
	declNode()
}

// TypeExpr is the syntactic (unresolved) spelling of a type: a base keyword
// or identifier followed by zero or more `*`, or an inline struct
// definition/reference.
type TypeExpr struct {
	// Base is one of "int", "char", "long", "void", "struct", or an
	// identifier naming a typedef.
	Base string
	// StructName is populated when Base == "struct".
	StructName string
	// StructFields is populated when this is a struct *definition*
	// (`struct S { ... }`), as opposed to a bare reference (`struct S`).
	StructFields []Param
	HasFields    bool
	// Stars counts the number of `*` suffixing the base type.
	Stars int
	Span  source.Span
}

// Param is a single `TypeExpr IDENT` pair, used for function parameters and
// struct fields.
type Param struct {
	Type TypeExpr
	Name string
	Span source.Span
}

// Function is a function declaration or definition. Body == nil means a
// forward declaration.
type Function struct {
	ReturnType TypeExpr
	Name       string
	Params     []Param
	Body       *Compound
	Span       source.Span
}

func (*Function) declNode() {}

// StructDecl is a top-level `struct S { ... };` definition (not nested in a
// typedef or variable declaration).
type StructDecl struct {
	Name   string
	Fields []Param
	Span   source.Span
}

func (*StructDecl) declNode() {}

// TypedefDecl binds a new type name to an existing TypeExpr.
type TypedefDecl struct {
	Name string
	Type TypeExpr
	Span source.Span
}

func (*TypedefDecl) declNode() {}

// Stmt is any statement.
type Stmt interface {
	stmtNode()
}

// Compound is a `{ ... }` block.
type Compound struct {
	Stmts []Stmt
	Span  source.Span
}

func (*Compound) stmtNode() {}

// VarDecl is a local variable declaration, optionally with an initializer.
type VarDecl struct {
	Type TypeExpr
	Name string
	Init Expr // nil if no initializer
	Span source.Span
}

func (*VarDecl) stmtNode() {}

// ExprStmt is an expression evaluated for its side effect.
type ExprStmt struct {
	Expr Expr
	Span source.Span
}

func (*ExprStmt) stmtNode() {}

// ReturnStmt is `return expr? ;`.
type ReturnStmt struct {
	Expr Expr // nil for a bare `return;`
	Span source.Span
}

func (*ReturnStmt) stmtNode() {}

// IfStmt is `if (cond) then (else else)?`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else clause
	Span source.Span
}

func (*IfStmt) stmtNode() {}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Span source.Span
}

func (*WhileStmt) stmtNode() {}

// ForStmt is `for (init cond? ; post?) body`. Init is itself a statement
// (either a VarDecl or an ExprStmt) per the grammar.
type ForStmt struct {
	Init Stmt
	Cond Expr // nil if omitted
	Post Expr // nil if omitted
	Body Stmt
	Span source.Span
}

func (*ForStmt) stmtNode() {}

// BreakStmt is `break;`.
type BreakStmt struct {
	Span source.Span
}

func (*BreakStmt) stmtNode() {}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Span source.Span
}

func (*ContinueStmt) stmtNode() {}

// EmptyStmt is a bare `;`.
type EmptyStmt struct {
	Span source.Span
}

func (*EmptyStmt) stmtNode() {}

// Expr is any expression.
type Expr interface {
	exprNode()
	SourceSpan() source.Span
}

// BinaryOp enumerates the binary operator spellings.
type BinaryOp int

// Binary operators, grouped by the six precedence classes in the grammar.
const (
	OrOr BinaryOp = iota
	AndAnd
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Add
	Sub
	Mul
	Div
	Mod
)

// UnaryOp enumerates the unary prefix operator spellings.
type UnaryOp int

// Unary operators.
const (
	Neg UnaryOp = iota
	Not
	BitNot
	Deref
	AddrOf
)

// IntLiteral is a decimal integer literal.
type IntLiteral struct {
	Value int64
	Span  source.Span
}

func (*IntLiteral) exprNode()                {}
func (e *IntLiteral) SourceSpan() source.Span { return e.Span }

// CharLiteral is a single (possibly escaped) character literal.
type CharLiteral struct {
	Value byte
	Span  source.Span
}

func (*CharLiteral) exprNode()                {}
func (e *CharLiteral) SourceSpan() source.Span { return e.Span }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Value string
	Span  source.Span
}

func (*StringLiteral) exprNode()                {}
func (e *StringLiteral) SourceSpan() source.Span { return e.Span }

// Identifier names a variable, function, or type in expression position;
// the parser does not distinguish these — the resolver does.
type Identifier struct {
	Name string
	Span source.Span
}

func (*Identifier) exprNode()                {}
func (e *Identifier) SourceSpan() source.Span { return e.Span }

// Unary is a prefix unary operation.
type Unary struct {
	Op   UnaryOp
	Expr Expr
	Span source.Span
}

func (*Unary) exprNode()                {}
func (e *Unary) SourceSpan() source.Span { return e.Span }

// Binary is a binary operator expression.
type Binary struct {
	Op   BinaryOp
	LHS  Expr
	RHS  Expr
	Span source.Span
}

func (*Binary) exprNode()                {}
func (e *Binary) SourceSpan() source.Span { return e.Span }

// Cast is `(TypeExpr) expr`.
type Cast struct {
	Type TypeExpr
	Expr Expr
	Span source.Span
}

func (*Cast) exprNode()                {}
func (e *Cast) SourceSpan() source.Span { return e.Span }

// SizeOf is `sizeof ( expr )`.
type SizeOf struct {
	Expr Expr
	Span source.Span
}

func (*SizeOf) exprNode()                {}
func (e *SizeOf) SourceSpan() source.Span { return e.Span }

// Call is a function call `name ( args... )`.
type Call struct {
	Name string
	Args []Expr
	Span source.Span
}

func (*Call) exprNode()                {}
func (e *Call) SourceSpan() source.Span { return e.Span }

// FieldAccess is `operand . field`.
type FieldAccess struct {
	Operand Expr
	Field   string
	Span    source.Span
}

func (*FieldAccess) exprNode()                {}
func (e *FieldAccess) SourceSpan() source.Span { return e.Span }

// ArrowAccess is `operand -> field`.
type ArrowAccess struct {
	Operand Expr
	Field   string
	Span    source.Span
}

func (*ArrowAccess) exprNode()                {}
func (e *ArrowAccess) SourceSpan() source.Span { return e.Span }

// Index is `operand [ index ]`.
type Index struct {
	Operand Expr
	Index   Expr
	Span    source.Span
}

func (*Index) exprNode()                {}
func (e *Index) SourceSpan() source.Span { return e.Span }

// Assignment is `lhs = rhs`, recorded as a post-rule once a full expression
// has been parsed (see pkg/parser).
type Assignment struct {
	LHS  Expr
	RHS  Expr
	Span source.Span
}

func (*Assignment) exprNode()                {}
func (e *Assignment) SourceSpan() source.Span { return e.Span }

// StructLiteralField is one `.field = expr` entry of a struct literal.
type StructLiteralField struct {
	Field string
	Value Expr
}

// StructLiteral is `{ .field = expr, ... }`.
type StructLiteral struct {
	Fields []StructLiteralField
	Span   source.Span
}

func (*StructLiteral) exprNode()                {}
func (e *StructLiteral) SourceSpan() source.Span { return e.Span }

// ArrayLiteral is `{ e0, e1, ... }`.
type ArrayLiteral struct {
	Elements []Expr
	Span     source.Span
}

func (*ArrayLiteral) exprNode()                {}
func (e *ArrayLiteral) SourceSpan() source.Span { return e.Span }
