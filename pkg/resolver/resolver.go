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

// Package resolver performs the semantic analysis pass: name resolution,
// type checking, struct/typedef layout, lvalue classification, and
// stack-slot and loop-label assignment, transforming pkg/ast into
// pkg/resolved. This is the only place semantic errors originate.
package resolver

import (
	"github.com/sirupsen/logrus"

	"github.com/minic-lang/minic/pkg/ast"
	"github.com/minic-lang/minic/pkg/resolved"
	"github.com/minic-lang/minic/pkg/scope"
	"github.com/minic-lang/minic/pkg/types"
	"github.com/minic-lang/minic/pkg/util/collection/stack"
	"github.com/minic-lang/minic/pkg/util/source"
)

// Resolver walks a single translation unit's unresolved tree exactly once,
// threading a scope.Scope and a handful of monotonic counters the way the
// teacher's compiler.Compile/validator.Validate pair threads a Linker and a
// Worklist through the zkc pipeline.
type Resolver struct {
	sc          *scope.Scope
	typedefs    map[string]types.DataType
	functions   map[string]*ast.Function // forward-declared signatures, by name
	strings     []string
	stringIndex map[string]int
	loopStack   *stack.Stack[int]
	nextLoop    int
	currentReturn types.DataType
	log         *logrus.Entry
}

// New constructs a resolver ready to process one Program.
func New(log *logrus.Entry) *Resolver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Resolver{
		sc:          scope.New(),
		typedefs:    make(map[string]types.DataType),
		functions:   make(map[string]*ast.Function),
		stringIndex: make(map[string]int),
		loopStack:   stack.NewStack[int](),
		log:         log,
	}
}

// Resolve is the package-level convenience entry point.
func Resolve(prog *ast.Program, log *logrus.Entry) (*resolved.Program, error) {
	return New(log).resolveProgram(prog)
}

func (r *Resolver) resolveProgram(prog *ast.Program) (*resolved.Program, error) {
	// First pass: register every struct, typedef, and function signature so
	// forward references (mutual recursion, self-referential structs) are
	// all visible before any function body is resolved.
	for _, decl := range prog.Decls {
		if err := r.declareTopLevel(decl); err != nil {
			return nil, err
		}
	}

	r.log.Debug("declarations registered, resolving function bodies")

	var out resolved.Program

	for _, decl := range prog.Decls {
		fn, ok := decl.(*ast.Function)
		if !ok || fn.Body == nil {
			continue
		}

		resolvedFn, err := r.resolveFunction(fn)
		if err != nil {
			return nil, err
		}

		out.Functions = append(out.Functions, resolvedFn)
	}

	out.Strings = r.strings
	out.Structs = r.sc.Structs()

	return &out, nil
}

func (r *Resolver) declareTopLevel(decl ast.Decl) error {
	switch d := decl.(type) {
	case *ast.StructDecl:
		_, err := r.resolveStructDef(d.Name, d.Fields, d.Span)
		return err
	case *ast.TypedefDecl:
		typ, err := r.resolveTypeExpr(d.Type)
		if err != nil {
			return err
		}

		r.typedefs[d.Name] = typ

		return nil
	case *ast.Function:
		return r.declareFunction(d)
	}

	return nil
}

func (r *Resolver) declareFunction(fn *ast.Function) error {
	existing, ok := r.functions[fn.Name]
	if ok {
		if !signaturesMatch(existing, fn) {
			return newError(FunctionRedeclarationMismatch, fn.Span,
				"function %q redeclared with a different signature", fn.Name)
		}

		if existing.Body != nil && fn.Body != nil {
			return newError(FunctionRedeclarationMismatch, fn.Span,
				"function %q redefined", fn.Name)
		}

		if fn.Body != nil {
			r.functions[fn.Name] = fn
		}

		return r.registerSignature(fn)
	}

	r.functions[fn.Name] = fn

	return r.registerSignature(fn)
}

func signaturesMatch(a, b *ast.Function) bool {
	if a.ReturnType.Base != b.ReturnType.Base || a.ReturnType.Stars != b.ReturnType.Stars {
		return false
	}

	if len(a.Params) != len(b.Params) {
		return false
	}

	for i := range a.Params {
		if a.Params[i].Type.Base != b.Params[i].Type.Base || a.Params[i].Type.Stars != b.Params[i].Type.Stars {
			return false
		}
	}

	return true
}

func (r *Resolver) registerSignature(fn *ast.Function) error {
	retType, err := r.resolveTypeExpr(fn.ReturnType)
	if err != nil {
		return err
	}

	params := make([]types.DataType, len(fn.Params))

	for i, p := range fn.Params {
		pt, err := r.resolveTypeExpr(p.Type)
		if err != nil {
			return err
		}

		if pt.Kind() == types.VOID {
			return newError(VariableOfUnknownSize, p.Span, "parameter %q has type void", p.Name)
		}

		params[i] = pt
	}

	info := scope.FunctionInfo{Name: fn.Name, Params: params, Returns: retType}
	r.sc.DeclareFunction(info) // redeclaration already validated above; the first registration is kept

	return nil
}

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

func (r *Resolver) resolveTypeExpr(t ast.TypeExpr) (types.DataType, error) {
	var base types.DataType

	switch t.Base {
	case "int":
		base = types.Int()
	case "char":
		base = types.Char()
	case "long":
		base = types.Long()
	case "void":
		base = types.Void()
	case "struct":
		if t.HasFields {
			st, err := r.resolveStructDef(t.StructName, t.StructFields, t.Span)
			if err != nil {
				return types.DataType{}, err
			}

			base = st
		} else {
			base = r.resolveStructReference(t.StructName)
		}
	default:
		if typ, ok := r.typedefs[t.Base]; ok {
			base = typ
		} else {
			return types.DataType{}, newError(UnknownType, t.Span, "unknown type %q", t.Base)
		}
	}

	for i := 0; i < t.Stars; i++ {
		base = types.Ptr(base)
	}

	return base, nil
}

// resolveStructReference looks up a bare `struct S` reference, binding an
// IncompleteStruct placeholder on first sight so a subsequent pointer field
// referring back to S type-checks.
func (r *Resolver) resolveStructReference(name string) types.DataType {
	if info, ok := r.sc.LookupStruct(name); ok && len(info.Fields) > 0 {
		return types.Struct(name)
	}

	r.sc.DeclareIncompleteStruct(name)

	return types.IncompleteStruct(name)
}

func (r *Resolver) resolveStructDef(name string, fields []ast.Param, span source.Span) (types.DataType, error) {
	r.sc.DeclareIncompleteStruct(name)

	var (
		resolvedFields []scope.StructField
		seen           = map[string]bool{}
		offset         int
	)

	for _, f := range fields {
		if seen[f.Name] {
			return types.DataType{}, newError(StructFieldRedefinition, f.Span,
				"field %q redefined in struct %q", f.Name, name)
		}

		seen[f.Name] = true

		ft, err := r.resolveTypeExpr(f.Type)
		if err != nil {
			return types.DataType{}, err
		}

		size := r.sizeOf(ft)
		if size == 0 {
			return types.DataType{}, newError(StructFieldUnknownSize, f.Span,
				"field %q of struct %q has unknown size", f.Name, name)
		}

		resolvedFields = append(resolvedFields, scope.StructField{Name: f.Name, Type: ft, Offset: offset})
		offset += size
	}

	info := scope.StructInfo{Name: name, Fields: resolvedFields, Size: offset}
	if !r.sc.CompleteStruct(info) {
		return types.DataType{}, newError(StructRedefinition, span, "struct %q redefined", name)
	}

	return types.Struct(name), nil
}

// sizeOf is the resolver's view of a type's size, resolving struct sizes
// via the scope's struct table (types.DataType.Size() panics on structs,
// since their size depends on field layout, not the type tag alone).
func (r *Resolver) sizeOf(t types.DataType) int {
	if t.IsStruct() {
		if t.Kind() == types.INCOMPLETE_STRUCT {
			return 0
		}

		info, ok := r.sc.LookupStruct(t.Name())
		if !ok {
			return 0
		}

		return info.Size
	}

	return t.Size()
}
