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

// Package resolved defines the fully-typed, fully-resolved tree produced by
// pkg/resolver: every expression carries its static DataType, every
// variable its stack offset, every loop its numeric label, and every
// struct access its byte offset. pkg/codegen walks this tree only — it
// never re-derives anything the resolver already computed.
package resolved

import (
	"github.com/minic-lang/minic/pkg/scope"
	"github.com/minic-lang/minic/pkg/types"
)

// Program is a fully-resolved translation unit.
type Program struct {
	Functions []*Function
	// Strings holds every string literal encountered, in first-use order;
	// the code generator emits one .rodata entry per index.
	Strings []string
	// Structs carries every complete struct layout by name, so pkg/codegen
	// can size struct-typed values (the mov_bytes copy schedule, struct
	// parameter copying) without re-deriving field offsets itself.
	Structs map[string]scope.StructInfo
}

// Function is a resolved function definition. A resolved Program contains
// only definitions (forward declarations are folded into the function
// table during resolution and do not appear here unless also defined).
type Function struct {
	Name       string
	Params     []scope.Variable
	ReturnType types.DataType
	Body       []Stmt
	FrameSize  int
}

// Stmt is any resolved statement.
type Stmt interface {
	stmtNode()
}

// ExprStmt evaluates an expression for its side effect.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// VarDeclStmt declares a local variable, optionally emitting its
// initializer as an assignment.
type VarDeclStmt struct {
	Variable scope.Variable
	Init     Expr // nil if no initializer
}

func (*VarDeclStmt) stmtNode() {}

// ReturnStmt returns from the enclosing function.
type ReturnStmt struct {
	Expr Expr // nil for `return;` in a void function
}

func (*ReturnStmt) stmtNode() {}

// IfStmt is a resolved conditional.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if no else clause
}

func (*IfStmt) stmtNode() {}

// LoopStmt models both `while` and `for`: `while` is a LoopStmt with Init
// and Post nil. Label is the loop's monotonic index, assigned once by the
// resolver, shared by the `_labelN`/`_labelendN`/`_expressionN` triple the
// code generator emits.
type LoopStmt struct {
	Init  Stmt // nil for while loops, and for `for` loops with an empty init clause
	Cond  Expr // nil if omitted (infinite loop)
	Post  Expr // nil if omitted
	Body  []Stmt
	Label int
	// IsFor distinguishes a `for` loop from a `while` loop even when Init is
	// nil (an empty `for(;cond;post)` init clause also resolves to a nil
	// Init), since the two forms target `continue` at different labels.
	IsFor bool
}

func (*LoopStmt) stmtNode() {}

// BreakStmt jumps to the enclosing loop's end label.
type BreakStmt struct {
	Label int
}

func (*BreakStmt) stmtNode() {}

// ContinueStmt jumps to the enclosing loop's post/top label.
type ContinueStmt struct {
	Label int
}

func (*ContinueStmt) stmtNode() {}

// Expr is any resolved expression; every variant carries its DataType.
type Expr interface {
	exprNode()
	Type() types.DataType
}

// IntLiteral is a resolved integer constant (type int).
type IntLiteral struct {
	Value int64
}

func (*IntLiteral) exprNode()            {}
func (IntLiteral) Type() types.DataType  { return types.Int() }

// CharLiteral is a resolved character constant (type char).
type CharLiteral struct {
	Value byte
}

func (*CharLiteral) exprNode()           {}
func (CharLiteral) Type() types.DataType { return types.Char() }

// StringLiteral references an entry in Program.Strings by index; its type
// is ptr(char).
type StringLiteral struct {
	Index int
}

func (*StringLiteral) exprNode() {}
func (StringLiteral) Type() types.DataType {
	return types.Ptr(types.Char())
}

// NamedVariable references a resolved local variable or parameter.
type NamedVariable struct {
	Variable scope.Variable
}

func (e *NamedVariable) exprNode()          {}
func (e *NamedVariable) Type() types.DataType { return e.Variable.Type }

// UnaryOp enumerates the resolved unary operators.
type UnaryOp int

// Resolved unary operators.
const (
	Neg UnaryOp = iota
	Not
	BitNot
	Deref
	AddrOf
)

// Unary is a resolved unary expression.
type Unary struct {
	Op             UnaryOp
	Expr           Expr
	ResultingType  types.DataType
}

func (*Unary) exprNode()           {}
func (e *Unary) Type() types.DataType { return e.ResultingType }

// BinaryOp enumerates the resolved binary operators.
type BinaryOp int

// Resolved binary operators.
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

// Binary is a resolved binary expression.
type Binary struct {
	Op            BinaryOp
	LHS, RHS      Expr
	ResultingType types.DataType
}

func (*Binary) exprNode()           {}
func (e *Binary) Type() types.DataType { return e.ResultingType }

// Cast reinterprets Expr's value as Type; no conversion instruction is
// generated (every conversion in this subset is a machine-level no-op).
type Cast struct {
	Expr Expr
	To   types.DataType
}

func (*Cast) exprNode()           {}
func (e *Cast) Type() types.DataType { return e.To }

// SizeOf is a compile-time-constant byte count; the operand is not
// evaluated at runtime.
type SizeOf struct {
	ByteCount int
}

func (*SizeOf) exprNode()           {}
func (SizeOf) Type() types.DataType { return types.Int() }

// FunctionCall is a resolved call with its callee's return type attached.
type FunctionCall struct {
	Name       string
	Args       []Expr
	ReturnType types.DataType
}

func (*FunctionCall) exprNode()           {}
func (e *FunctionCall) Type() types.DataType { return e.ReturnType }

// FieldAccess is `operand . field`, with the field's byte offset and type
// already resolved.
type FieldAccess struct {
	Operand     Expr
	FieldOffset int
	FieldType   types.DataType
}

func (*FieldAccess) exprNode()           {}
func (e *FieldAccess) Type() types.DataType { return e.FieldType }

// ArrowAccess is `operand -> field`; Operand already yields an address, so
// no `lea` is needed before applying FieldOffset.
type ArrowAccess struct {
	Operand     Expr
	FieldOffset int
	FieldType   types.DataType
}

func (*ArrowAccess) exprNode()           {}
func (e *ArrowAccess) Type() types.DataType { return e.FieldType }

// Indexing is `operand [ index ]` over a pointer/array of ElementType.
type Indexing struct {
	Operand     Expr
	Index       Expr
	ElementType types.DataType
}

func (*Indexing) exprNode()           {}
func (e *Indexing) Type() types.DataType { return e.ElementType }

// StructLiteralField is one resolved `.field = expr` entry.
type StructLiteralField struct {
	Offset int
	Value  Expr
}

// StructLiteral is a resolved struct literal. Offset is the anonymous
// stack storage backing the literal's own fields; a VarDeclStmt binding a
// struct literal to a variable still copies from this storage into the
// variable's slot via the struct-copy byte schedule (see pkg/codegen),
// trading a redundant copy for a uniform code path — acceptable since this
// compiler performs no optimization passes.
type StructLiteral struct {
	StructType types.DataType
	Fields     []StructLiteralField
	Offset     int
}

func (*StructLiteral) exprNode()           {}
func (e *StructLiteral) Type() types.DataType { return e.StructType }

// ArrayLiteral is a resolved array literal; its static type is ptr(Element).
// Per the adopted open-question decision (see DESIGN.md), elements are laid
// out at descending stack offsets, matching the original implementation
// bug-for-bug; Element0Offset is the first element's (highest) offset.
type ArrayLiteral struct {
	Element        types.DataType
	Elements       []Expr
	Element0Offset int
}

func (*ArrayLiteral) exprNode() {}
func (e *ArrayLiteral) Type() types.DataType {
	return types.Ptr(e.Element)
}

// Assignment wraps one of the four lvalue-shape variants below. The
// resolver classifies the lvalue exactly once; the code generator never
// re-inspects it.
type Assignment interface {
	Expr
	assignmentNode()
}

// StackAssignment targets a local variable directly (`x = e`).
type StackAssignment struct {
	Variable scope.Variable
	Value    Expr
}

func (*StackAssignment) exprNode()       {}
func (*StackAssignment) assignmentNode() {}
func (e *StackAssignment) Type() types.DataType { return e.Variable.Type }

// PtrAssignment targets a dereferenced pointer (`*p = e`).
type PtrAssignment struct {
	ElemType types.DataType
	Address  Expr
	Value    Expr
}

func (*PtrAssignment) exprNode()       {}
func (*PtrAssignment) assignmentNode() {}
func (e *PtrAssignment) Type() types.DataType { return e.ElemType }

// ArrayAssignment targets an indexed element (`a[i] = e`).
type ArrayAssignment struct {
	ElementType types.DataType
	Address     Expr
	Index       Expr
	Value       Expr
}

func (*ArrayAssignment) exprNode()       {}
func (*ArrayAssignment) assignmentNode() {}
func (e *ArrayAssignment) Type() types.DataType { return e.ElementType }

// FieldAssignment targets a struct field, reached either via `.` (Address
// is a struct lvalue address) or `->` (Address already an address) — the
// resolver has already normalized both cases to "address + offset".
type FieldAssignment struct {
	FieldOffset int
	FieldType   types.DataType
	Address     Expr
	Value       Expr
}

func (*FieldAssignment) exprNode()       {}
func (*FieldAssignment) assignmentNode() {}
func (e *FieldAssignment) Type() types.DataType { return e.FieldType }
