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
package resolver

import (
	"github.com/minic-lang/minic/pkg/ast"
	"github.com/minic-lang/minic/pkg/resolved"
	"github.com/minic-lang/minic/pkg/scope"
	"github.com/minic-lang/minic/pkg/types"
)

var unaryOpMap = map[ast.UnaryOp]resolved.UnaryOp{
	ast.Neg:    resolved.Neg,
	ast.Not:    resolved.Not,
	ast.BitNot: resolved.BitNot,
	ast.Deref:  resolved.Deref,
	ast.AddrOf: resolved.AddrOf,
}

var binaryOpMap = map[ast.BinaryOp]resolved.BinaryOp{
	ast.OrOr:   resolved.OrOr,
	ast.AndAnd: resolved.AndAnd,
	ast.Eq:     resolved.Eq,
	ast.Ne:     resolved.Ne,
	ast.Lt:     resolved.Lt,
	ast.Le:     resolved.Le,
	ast.Gt:     resolved.Gt,
	ast.Ge:     resolved.Ge,
	ast.Add:    resolved.Add,
	ast.Sub:    resolved.Sub,
	ast.Mul:    resolved.Mul,
	ast.Div:    resolved.Div,
	ast.Mod:    resolved.Mod,
}

func (r *Resolver) resolveExpr(e ast.Expr) (resolved.Expr, error) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return &resolved.IntLiteral{Value: n.Value}, nil
	case *ast.CharLiteral:
		return &resolved.CharLiteral{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &resolved.StringLiteral{Index: r.internString(n.Value)}, nil
	case *ast.Identifier:
		return r.resolveIdentifier(n)
	case *ast.Unary:
		return r.resolveUnary(n)
	case *ast.Binary:
		return r.resolveBinary(n)
	case *ast.Cast:
		return r.resolveCast(n)
	case *ast.SizeOf:
		return r.resolveSizeOf(n)
	case *ast.Call:
		return r.resolveCall(n)
	case *ast.FieldAccess:
		return r.resolveFieldAccess(n)
	case *ast.ArrowAccess:
		return r.resolveArrowAccess(n)
	case *ast.Index:
		return r.resolveIndex(n)
	case *ast.Assignment:
		return r.resolveAssignment(n)
	case *ast.StructLiteral:
		return nil, newError(CannotAssign, n.Span,
			"struct literal may only appear as a variable initializer in this subset")
	case *ast.ArrayLiteral:
		return r.resolveArrayLiteral(n, types.DataType{})
	default:
		panic("resolver: unreachable expression variant")
	}
}

func (r *Resolver) internString(s string) int {
	if idx, ok := r.stringIndex[s]; ok {
		return idx
	}

	idx := len(r.strings)
	r.strings = append(r.strings, s)
	r.stringIndex[s] = idx

	return idx
}

func (r *Resolver) resolveIdentifier(n *ast.Identifier) (resolved.Expr, error) {
	if v, ok := r.sc.LookupVariable(n.Name); ok {
		return &resolved.NamedVariable{Variable: v}, nil
	}

	return nil, newError(UnknownVariable, n.Span, "unknown variable %q", n.Name)
}

func (r *Resolver) resolveUnary(n *ast.Unary) (resolved.Expr, error) {
	if n.Op == ast.AddrOf {
		return r.resolveAddrOf(n)
	}

	operand, err := r.resolveExpr(n.Expr)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.Deref:
		if !operand.Type().IsPointer() {
			return nil, newError(DerefOfNonPointer, n.Span, "cannot dereference non-pointer type %s", operand.Type())
		}

		return &resolved.Unary{Op: resolved.Deref, Expr: operand, ResultingType: operand.Type().Elem()}, nil
	default:
		if !operand.Type().IsNumber() {
			return nil, newError(UnaryOperandNotNumber, n.Span,
				"unary operator requires a numeric operand, found %s", operand.Type())
		}

		return &resolved.Unary{Op: unaryOpMap[n.Op], Expr: operand, ResultingType: operand.Type()}, nil
	}
}

// resolveAddrOf requires the operand to be one of the lvalue-shaped
// expression variants the resolver accepts for `&`.
func (r *Resolver) resolveAddrOf(n *ast.Unary) (resolved.Expr, error) {
	switch n.Expr.(type) {
	case *ast.Identifier, *ast.Index, *ast.FieldAccess, *ast.ArrowAccess:
	case *ast.Unary:
		if n.Expr.(*ast.Unary).Op != ast.Deref {
			return nil, newError(CannotAssign, n.Span, "cannot take the address of this expression")
		}
	default:
		return nil, newError(CannotAssign, n.Span, "cannot take the address of this expression")
	}

	operand, err := r.resolveExpr(n.Expr)
	if err != nil {
		return nil, err
	}

	return &resolved.Unary{Op: resolved.AddrOf, Expr: operand, ResultingType: types.Ptr(operand.Type())}, nil
}

func largerOf(a, b types.DataType) types.DataType {
	if a.Size() >= b.Size() {
		return a
	}

	return b
}

func (r *Resolver) resolveBinary(n *ast.Binary) (resolved.Expr, error) {
	lhs, err := r.resolveExpr(n.LHS)
	if err != nil {
		return nil, err
	}

	rhs, err := r.resolveExpr(n.RHS)
	if err != nil {
		return nil, err
	}

	if n.Op == ast.OrOr || n.Op == ast.AndAnd {
		if !lhs.Type().IsNumber() || !rhs.Type().IsNumber() {
			return nil, newError(OperandsDifferentDatatypes, n.Span, "&&/|| require numeric operands")
		}

		return &resolved.Binary{Op: binaryOpMap[n.Op], LHS: lhs, RHS: rhs, ResultingType: types.Int()}, nil
	}

	if !types.CanOperate(lhs.Type(), rhs.Type()) {
		return nil, newError(OperandsDifferentDatatypes, n.Span,
			"incompatible operand types %s and %s", lhs.Type(), rhs.Type())
	}

	resultType := types.Int()

	switch n.Op {
	case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		resultType = types.Int()
	default:
		resultType = largerOf(lhs.Type(), rhs.Type())
	}

	return &resolved.Binary{Op: binaryOpMap[n.Op], LHS: lhs, RHS: rhs, ResultingType: resultType}, nil
}

func (r *Resolver) resolveCast(n *ast.Cast) (resolved.Expr, error) {
	to, err := r.resolveTypeExpr(n.Type)
	if err != nil {
		return nil, err
	}

	inner, err := r.resolveExpr(n.Expr)
	if err != nil {
		return nil, err
	}

	return &resolved.Cast{Expr: inner, To: to}, nil
}

func (r *Resolver) resolveSizeOf(n *ast.SizeOf) (resolved.Expr, error) {
	inner, err := r.resolveExpr(n.Expr)
	if err != nil {
		return nil, err
	}

	return &resolved.SizeOf{ByteCount: r.sizeOf(inner.Type())}, nil
}

func (r *Resolver) resolveCall(n *ast.Call) (resolved.Expr, error) {
	sig, ok := r.sc.LookupFunction(n.Name)
	if !ok {
		return nil, newError(UnknownFunction, n.Span, "unknown function %q", n.Name)
	}

	if len(n.Args) != len(sig.Params) {
		return nil, newError(ParameterCountMismatch, n.Span,
			"function %q expects %d arguments, found %d", n.Name, len(sig.Params), len(n.Args))
	}

	args := make([]resolved.Expr, len(n.Args))

	for i, a := range n.Args {
		arg, err := r.resolveExpr(a)
		if err != nil {
			return nil, err
		}

		if !types.CanConvert(arg.Type(), sig.Params[i]) {
			return nil, newError(ParameterTypeMismatch, a.SourceSpan(),
				"argument %d to %q has type %s, expected %s", i+1, n.Name, arg.Type(), sig.Params[i])
		}

		args[i] = arg
	}

	if len(args) > 6 {
		return nil, newError(ParameterCountMismatch, n.Span, "function %q has more than six arguments", n.Name)
	}

	return &resolved.FunctionCall{Name: n.Name, Args: args, ReturnType: sig.Returns}, nil
}

func (r *Resolver) structFieldOf(t types.DataType, field string, span ast.Expr) (scope.StructField, error) {
	if !t.IsStruct() {
		return scope.StructField{}, newError(AccessNonStruct, span.SourceSpan(), "cannot access field of non-struct type %s", t)
	}

	info, ok := r.sc.LookupStruct(t.Name())
	if !ok {
		return scope.StructField{}, newError(AccessNonStruct, span.SourceSpan(), "unknown struct %q", t.Name())
	}

	f, ok := info.Field(field)
	if !ok {
		return scope.StructField{}, newError(UnknownField, span.SourceSpan(), "struct %q has no field %q", t.Name(), field)
	}

	return f, nil
}

func (r *Resolver) resolveFieldAccess(n *ast.FieldAccess) (resolved.Expr, error) {
	operand, err := r.resolveExpr(n.Operand)
	if err != nil {
		return nil, err
	}

	f, err := r.structFieldOf(operand.Type(), n.Field, n.Operand)
	if err != nil {
		return nil, err
	}

	return &resolved.FieldAccess{Operand: operand, FieldOffset: f.Offset, FieldType: f.Type}, nil
}

func (r *Resolver) resolveArrowAccess(n *ast.ArrowAccess) (resolved.Expr, error) {
	operand, err := r.resolveExpr(n.Operand)
	if err != nil {
		return nil, err
	}

	if !operand.Type().IsPointer() {
		return nil, newError(DerefOfNonPointer, n.Operand.SourceSpan(), "-> requires a pointer, found %s", operand.Type())
	}

	f, err := r.structFieldOf(operand.Type().Elem(), n.Field, n.Operand)
	if err != nil {
		return nil, err
	}

	return &resolved.ArrowAccess{Operand: operand, FieldOffset: f.Offset, FieldType: f.Type}, nil
}

func (r *Resolver) resolveIndex(n *ast.Index) (resolved.Expr, error) {
	operand, err := r.resolveExpr(n.Operand)
	if err != nil {
		return nil, err
	}

	if !operand.Type().IsPointer() {
		return nil, newError(DerefOfNonPointer, n.Operand.SourceSpan(), "indexing requires a pointer, found %s", operand.Type())
	}

	idx, err := r.resolveExpr(n.Index)
	if err != nil {
		return nil, err
	}

	if !idx.Type().IsNumber() {
		return nil, newError(ArrayIndexNotANumber, n.Index.SourceSpan(), "array index must be numeric, found %s", idx.Type())
	}

	return &resolved.Indexing{Operand: operand, Index: idx, ElementType: operand.Type().Elem()}, nil
}

// resolveArrayLiteral resolves `{ e0, e1, ... }`, allocating its backing
// storage and laying elements out at descending offsets from Element0Offset
// per the adopted bug-for-bug open-question decision (see DESIGN.md).
// expected, when non-zero-kind, is the element type hint from an enclosing
// `T xs[] = ...` declaration; when absent the first element's type governs.
func (r *Resolver) resolveArrayLiteral(n *ast.ArrayLiteral, expected types.DataType) (resolved.Expr, error) {
	if len(n.Elements) == 0 {
		return nil, newError(EmptyArray, n.Span, "array literal must have at least one element")
	}

	elements := make([]resolved.Expr, len(n.Elements))

	for i, e := range n.Elements {
		re, err := r.resolveExpr(e)
		if err != nil {
			return nil, err
		}

		elements[i] = re
	}

	elemType := elements[0].Type()
	if expected.IsPointer() {
		elemType = expected.Elem()
	}

	for i, e := range elements {
		if !types.CanConvert(e.Type(), elemType) {
			return nil, newError(ArrayOfDifferentTypes, n.Elements[i].SourceSpan(),
				"array literal element %d has type %s, expected %s", i, e.Type(), elemType)
		}
	}

	elemSize := r.sizeOf(elemType)
	total := elemSize * len(elements)
	// Element 0 sits at the HIGHEST offset of the literal's storage (the
	// offset returned by AllocAnon), which is its LOWEST address, since
	// offsets count downward from rbp; subsequent elements take descending
	// offsets, i.e. ascending addresses.
	topOffset := r.sc.AllocAnon(total)

	return &resolved.ArrayLiteral{Element: elemType, Elements: elements, Element0Offset: topOffset}, nil
}
