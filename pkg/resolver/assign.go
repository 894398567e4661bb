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
	"github.com/minic-lang/minic/pkg/types"
)

// resolveAssignment classifies the lvalue shape exactly once, the
// classification the code generator relies on never re-deriving. Only four
// shapes are legal lvalues: a bare variable, a dereference, an index, and a
// field/arrow access; everything else — literals, calls, other unary ops,
// binary expressions, nested assignments — is rejected here.
func (r *Resolver) resolveAssignment(n *ast.Assignment) (resolved.Expr, error) {
	switch lhs := n.LHS.(type) {
	case *ast.Identifier:
		v, ok := r.sc.LookupVariable(lhs.Name)
		if !ok {
			return nil, newError(UnknownVariable, lhs.Span, "unknown variable %q", lhs.Name)
		}

		rhs, err := r.resolveRHS(n.RHS, v.Type)
		if err != nil {
			return nil, err
		}

		return &resolved.StackAssignment{Variable: v, Value: rhs}, nil

	case *ast.Unary:
		if lhs.Op != ast.Deref {
			return nil, newError(CannotAssign, n.Span, "cannot assign to this expression")
		}

		operand, err := r.resolveExpr(lhs.Expr)
		if err != nil {
			return nil, err
		}

		if !operand.Type().IsPointer() {
			return nil, newError(DerefOfNonPointer, lhs.Span, "cannot dereference non-pointer type %s", operand.Type())
		}

		elemType := operand.Type().Elem()

		rhs, err := r.resolveRHS(n.RHS, elemType)
		if err != nil {
			return nil, err
		}

		return &resolved.PtrAssignment{ElemType: elemType, Address: operand, Value: rhs}, nil

	case *ast.Index:
		operand, err := r.resolveExpr(lhs.Operand)
		if err != nil {
			return nil, err
		}

		if !operand.Type().IsPointer() {
			return nil, newError(DerefOfNonPointer, lhs.Span, "indexing requires a pointer, found %s", operand.Type())
		}

		idx, err := r.resolveExpr(lhs.Index)
		if err != nil {
			return nil, err
		}

		if !idx.Type().IsNumber() {
			return nil, newError(ArrayIndexNotANumber, lhs.Index.SourceSpan(), "array index must be numeric, found %s", idx.Type())
		}

		elemType := operand.Type().Elem()

		rhs, err := r.resolveRHS(n.RHS, elemType)
		if err != nil {
			return nil, err
		}

		return &resolved.ArrayAssignment{ElementType: elemType, Address: operand, Index: idx, Value: rhs}, nil

	case *ast.FieldAccess:
		operand, err := r.resolveExpr(lhs.Operand)
		if err != nil {
			return nil, err
		}

		f, err := r.structFieldOf(operand.Type(), lhs.Field, lhs.Operand)
		if err != nil {
			return nil, err
		}

		rhs, err := r.resolveRHS(n.RHS, f.Type)
		if err != nil {
			return nil, err
		}

		return &resolved.FieldAssignment{FieldOffset: f.Offset, FieldType: f.Type, Address: operand, Value: rhs}, nil

	case *ast.ArrowAccess:
		operand, err := r.resolveExpr(lhs.Operand)
		if err != nil {
			return nil, err
		}

		if !operand.Type().IsPointer() {
			return nil, newError(DerefOfNonPointer, lhs.Span, "-> requires a pointer, found %s", operand.Type())
		}

		f, err := r.structFieldOf(operand.Type().Elem(), lhs.Field, lhs.Operand)
		if err != nil {
			return nil, err
		}

		rhs, err := r.resolveRHS(n.RHS, f.Type)
		if err != nil {
			return nil, err
		}

		return &resolved.FieldAssignment{FieldOffset: f.Offset, FieldType: f.Type, Address: operand, Value: rhs}, nil

	default:
		return nil, newError(CannotAssign, n.Span, "cannot assign to this expression")
	}
}

func (r *Resolver) resolveRHS(rhsExpr ast.Expr, target types.DataType) (resolved.Expr, error) {
	rhs, err := r.resolveExpr(rhsExpr)
	if err != nil {
		return nil, err
	}

	if !types.CanConvert(rhs.Type(), target) {
		return nil, newError(CannotAssign, rhsExpr.SourceSpan(),
			"cannot assign value of type %s to target of type %s", rhs.Type(), target)
	}

	return rhs, nil
}
