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

// resolveFunction resolves one function definition's body. The function's
// signature was already registered during the declaration pass so that
// recursive and mutually-recursive calls resolve.
func (r *Resolver) resolveFunction(fn *ast.Function) (*resolved.Function, error) {
	sig, _ := r.sc.LookupFunction(fn.Name)

	r.sc.EnterFunction()

	params := make([]scope.Variable, len(fn.Params))

	for i, p := range fn.Params {
		size := r.sizeOf(sig.Params[i])

		v, ok := r.sc.DeclareVariable(p.Name, sig.Params[i], size)
		if !ok {
			return nil, newError(VariableRedefinition, p.Span, "parameter %q redeclared", p.Name)
		}

		params[i] = v
	}

	prevReturn := r.currentReturn
	r.currentReturn = sig.Returns

	body, err := r.resolveStmts(fn.Body.Stmts)

	r.currentReturn = prevReturn

	if err != nil {
		return nil, err
	}

	frameSize := r.sc.LeaveFunction()

	return &resolved.Function{
		Name:       fn.Name,
		Params:     params,
		ReturnType: sig.Returns,
		Body:       body,
		FrameSize:  roundUpFrame(frameSize),
	}, nil
}

// roundUpFrame rounds a frame size up to a multiple of 16, the alignment
// the prologue's `sub $k, %rsp` assumes.
func roundUpFrame(size int) int {
	return (size/16 + 1) * 16
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) ([]resolved.Stmt, error) {
	var out []resolved.Stmt

	for _, s := range stmts {
		// A nested `{ ... }` block flattens directly into the parent's
		// statement list — pkg/codegen only needs an ordered statement
		// sequence per function, not the lexical block nesting, and
		// PushFrame/PopFrame already scope the block's own declarations.
		if compound, ok := s.(*ast.Compound); ok {
			r.sc.PushFrame()
			nested, err := r.resolveStmts(compound.Stmts)
			r.sc.PopFrame()

			if err != nil {
				return nil, err
			}

			out = append(out, nested...)

			continue
		}

		rs, err := r.resolveStmt(s)
		if err != nil {
			return nil, err
		}

		if rs != nil {
			out = append(out, rs)
		}
	}

	return out, nil
}

func (r *Resolver) resolveStmt(s ast.Stmt) (resolved.Stmt, error) {
	switch n := s.(type) {
	case *ast.EmptyStmt:
		return nil, nil
	case *ast.VarDecl:
		return r.resolveVarDecl(n)
	case *ast.ExprStmt:
		expr, err := r.resolveExpr(n.Expr)
		if err != nil {
			return nil, err
		}

		return &resolved.ExprStmt{Expr: expr}, nil
	case *ast.ReturnStmt:
		return r.resolveReturn(n)
	case *ast.IfStmt:
		return r.resolveIf(n)
	case *ast.WhileStmt:
		return r.resolveWhile(n)
	case *ast.ForStmt:
		return r.resolveFor(n)
	case *ast.BreakStmt:
		if r.loopStack.IsEmpty() {
			return nil, newError(BreakOutsideLoop, n.Span, "break outside of a loop")
		}

		return &resolved.BreakStmt{Label: r.loopStack.Peek(0)}, nil
	case *ast.ContinueStmt:
		if r.loopStack.IsEmpty() {
			return nil, newError(ContinueOutsideLoop, n.Span, "continue outside of a loop")
		}

		return &resolved.ContinueStmt{Label: r.loopStack.Peek(0)}, nil
	default:
		panic("resolver: unreachable statement variant")
	}
}

// resolveSingleStatement resolves the body of an `if`/`while`/`for` that is
// not itself a `{ ... }` compound — per the grammar a bare declaration may
// not appear in that position.
func (r *Resolver) resolveSingleStatement(s ast.Stmt) ([]resolved.Stmt, error) {
	if v, ok := s.(*ast.VarDecl); ok {
		return nil, newError(DeclarationAsSingleStatement, v.Span,
			"a variable declaration may not be the sole dependent statement of if/while/for")
	}

	rs, err := r.resolveStmt(s)
	if err != nil {
		return nil, err
	}

	if rs == nil {
		return nil, nil
	}

	return []resolved.Stmt{rs}, nil
}

func (r *Resolver) resolveVarDecl(n *ast.VarDecl) (resolved.Stmt, error) {
	typ, err := r.resolveTypeExpr(n.Type)
	if err != nil {
		return nil, err
	}

	size := r.sizeOf(typ)
	if size == 0 {
		return nil, newError(VariableOfUnknownSize, n.Span, "variable %q has unknown size (type %s)", n.Name, typ)
	}

	v, ok := r.sc.DeclareVariable(n.Name, typ, size)
	if !ok {
		return nil, newError(VariableRedefinition, n.Span, "variable %q redeclared", n.Name)
	}

	if n.Init == nil {
		return &resolved.VarDeclStmt{Variable: v}, nil
	}

	if lit, ok := n.Init.(*ast.ArrayLiteral); ok {
		init, err := r.resolveArrayLiteral(lit, typ)
		if err != nil {
			return nil, err
		}

		if !types.CanConvert(init.Type(), v.Type) {
			return nil, newError(VariableInitWrong, n.Span, "cannot initialize %s with %s", v.Type, init.Type())
		}

		return &resolved.VarDeclStmt{Variable: v, Init: init}, nil
	}

	if lit, ok := n.Init.(*ast.StructLiteral); ok {
		init, err := r.resolveStructLiteral(lit, typ)
		if err != nil {
			return nil, err
		}

		return &resolved.VarDeclStmt{Variable: v, Init: init}, nil
	}

	init, err := r.resolveExpr(n.Init)
	if err != nil {
		return nil, err
	}

	if !types.CanConvert(init.Type(), v.Type) {
		return nil, newError(VariableInitWrong, n.Span, "cannot initialize %s with %s", v.Type, init.Type())
	}

	return &resolved.VarDeclStmt{Variable: v, Init: init}, nil
}

func (r *Resolver) resolveStructLiteral(n *ast.StructLiteral, typ types.DataType) (resolved.Expr, error) {
	if !typ.IsStruct() {
		return nil, newError(CannotAssign, n.Span, "struct literal used to initialize non-struct type %s", typ)
	}

	info, ok := r.sc.LookupStruct(typ.Name())
	if !ok {
		return nil, newError(UnknownType, n.Span, "unknown struct %q", typ.Name())
	}

	fields := make([]resolved.StructLiteralField, len(n.Fields))

	for i, lf := range n.Fields {
		f, ok := info.Field(lf.Field)
		if !ok {
			return nil, newError(UnknownField, n.Span, "struct %q has no field %q", typ.Name(), lf.Field)
		}

		value, err := r.resolveExpr(lf.Value)
		if err != nil {
			return nil, err
		}

		if !types.CanConvert(value.Type(), f.Type) {
			return nil, newError(VariableInitWrong, lf.Value.SourceSpan(),
				"field %q expects type %s, found %s", lf.Field, f.Type, value.Type())
		}

		fields[i] = resolved.StructLiteralField{Offset: f.Offset, Value: value}
	}

	offset := r.sc.AllocAnon(info.Size)

	return &resolved.StructLiteral{StructType: typ, Fields: fields, Offset: offset}, nil
}

func (r *Resolver) resolveReturn(n *ast.ReturnStmt) (resolved.Stmt, error) {
	if n.Expr == nil {
		if r.currentReturn.Kind() != types.VOID {
			return nil, newError(ReturnTypeIncorrect, n.Span, "function must return a value of type %s", r.currentReturn)
		}

		return &resolved.ReturnStmt{}, nil
	}

	if r.currentReturn.Kind() == types.VOID {
		return nil, newError(ReturnTypeIncorrect, n.Span, "void function may not return a value")
	}

	expr, err := r.resolveExpr(n.Expr)
	if err != nil {
		return nil, err
	}

	if !types.CanConvert(expr.Type(), r.currentReturn) {
		return nil, newError(ReturnTypeIncorrect, n.Span, "return type %s does not match function return type %s",
			expr.Type(), r.currentReturn)
	}

	return &resolved.ReturnStmt{Expr: expr}, nil
}

func (r *Resolver) resolveIf(n *ast.IfStmt) (resolved.Stmt, error) {
	cond, err := r.resolveExpr(n.Cond)
	if err != nil {
		return nil, err
	}

	then, err := r.resolveBranch(n.Then)
	if err != nil {
		return nil, err
	}

	var elseStmts []resolved.Stmt

	if n.Else != nil {
		elseStmts, err = r.resolveBranch(n.Else)
		if err != nil {
			return nil, err
		}
	}

	return &resolved.IfStmt{Cond: cond, Then: then, Else: elseStmts}, nil
}

// resolveBranch resolves a `then`/`else` body: either a Compound (always
// legal) or a bare (brace-less) single dependent statement.
func (r *Resolver) resolveBranch(s ast.Stmt) ([]resolved.Stmt, error) {
	if compound, ok := s.(*ast.Compound); ok {
		r.sc.PushFrame()
		stmts, err := r.resolveStmts(compound.Stmts)
		r.sc.PopFrame()

		return stmts, err
	}

	return r.resolveSingleStatement(s)
}

func (r *Resolver) resolveWhile(n *ast.WhileStmt) (resolved.Stmt, error) {
	label := r.nextLoop
	r.nextLoop++
	r.loopStack.Push(label)

	cond, err := r.resolveExpr(n.Cond)
	if err != nil {
		r.popLoop()
		return nil, err
	}

	body, err := r.resolveBranch(n.Body)

	r.popLoop()

	if err != nil {
		return nil, err
	}

	return &resolved.LoopStmt{Cond: cond, Body: body, Label: label}, nil
}

func (r *Resolver) resolveFor(n *ast.ForStmt) (resolved.Stmt, error) {
	r.sc.PushFrame()
	defer r.sc.PopFrame()

	init, err := r.resolveStmt(n.Init)
	if err != nil {
		return nil, err
	}

	label := r.nextLoop
	r.nextLoop++
	r.loopStack.Push(label)

	var cond resolved.Expr

	if n.Cond != nil {
		cond, err = r.resolveExpr(n.Cond)
		if err != nil {
			r.popLoop()
			return nil, err
		}
	}

	var post resolved.Expr

	if n.Post != nil {
		post, err = r.resolveExpr(n.Post)
		if err != nil {
			r.popLoop()
			return nil, err
		}
	}

	body, err := r.resolveBranch(n.Body)

	r.popLoop()

	if err != nil {
		return nil, err
	}

	return &resolved.LoopStmt{Init: init, Cond: cond, Post: post, Body: body, Label: label, IsFor: true}, nil
}

func (r *Resolver) popLoop() {
	r.loopStack.Pop()
}
