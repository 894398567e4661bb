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

// Package scope tracks the three independent symbol tables the resolver
// needs — structs, functions, and (lexically-scoped) variables — and
// assigns each local variable its stack-frame offset as it is declared.
package scope

import (
	"math"

	"github.com/minic-lang/minic/pkg/types"
	"github.com/minic-lang/minic/pkg/util/collection/array"
	"github.com/minic-lang/minic/pkg/util/collection/stack"
)

// StructField describes one member of a struct, in declaration order, with
// its byte offset from the start of the struct.
type StructField struct {
	Name   string
	Type   types.DataType
	Offset int
}

// StructInfo is the fully-resolved layout of a struct type.
type StructInfo struct {
	Name   string
	Fields []StructField
	Size   int
}

// Field looks up a field by name, returning (field, true) if found.
func (s StructInfo) Field(name string) (StructField, bool) {
	idx := array.FindMatching(s.Fields, func(f StructField) bool { return f.Name == name })
	if idx == math.MaxUint {
		return StructField{}, false
	}

	return s.Fields[idx], true
}

// FunctionInfo is the signature of a declared function.
type FunctionInfo struct {
	Name    string
	Params  []types.DataType
	Returns types.DataType
}

// Variable is a declared variable together with its assigned stack-frame
// offset: the number of bytes below the frame base (`%rbp`) at which its
// storage begins, so the code generator always renders it as
// `-Offset(%rbp)`.
type Variable struct {
	Name   string
	Type   types.DataType
	Offset int
}

// frame is one lexical block's variable table.
type frame struct {
	vars map[string]Variable
	base int // allocation cursor when the block was entered
}

// Scope is the symbol table threaded through resolution of a single
// translation unit.  Structs and functions live in a single flat,
// file-level namespace (C has no nested struct/function scoping); variables
// are organised as a stack of block frames mirroring `{ ... }` nesting.
type Scope struct {
	structs   map[string]StructInfo
	functions map[string]FunctionInfo
	frames    *stack.Stack[frame]

	frameSize    int
	maxFrameSize int
}

// New constructs an empty scope, ready for top-level declarations.
func New() *Scope {
	return &Scope{
		structs:   make(map[string]StructInfo),
		functions: make(map[string]FunctionInfo),
		frames:    stack.NewStack[frame](),
	}
}

// DeclareStruct registers a struct's layout.  Returns false if the name is
// already bound to a complete struct.
func (s *Scope) DeclareStruct(info StructInfo) bool {
	if existing, ok := s.structs[info.Name]; ok && len(existing.Fields) > 0 {
		return false
	}

	s.structs[info.Name] = info

	return true
}

// LookupStruct returns the layout for a struct tag, if declared.
func (s *Scope) LookupStruct(name string) (StructInfo, bool) {
	info, ok := s.structs[name]
	return info, ok
}

// DeclareIncompleteStruct binds a struct tag with no fields yet, the
// two-phase insertion that allows `struct S { struct S* next; }` to resolve
// the inner reference to S before S itself is complete. A no-op if the tag
// is already bound (complete or incomplete).
func (s *Scope) DeclareIncompleteStruct(name string) {
	if _, ok := s.structs[name]; !ok {
		s.structs[name] = StructInfo{Name: name}
	}
}

// CompleteStruct replaces an incomplete (or absent) struct binding with its
// full layout. Returns false if the tag is already bound to a complete
// struct (redefinition).
func (s *Scope) CompleteStruct(info StructInfo) bool {
	if existing, ok := s.structs[info.Name]; ok && len(existing.Fields) > 0 {
		return false
	}

	s.structs[info.Name] = info

	return true
}

// DeclareFunction registers a function signature.  Returns false if a
// function of that name is already declared.
func (s *Scope) DeclareFunction(info FunctionInfo) bool {
	if _, ok := s.functions[info.Name]; ok {
		return false
	}

	s.functions[info.Name] = info

	return true
}

// LookupFunction returns a function's signature, if declared.
func (s *Scope) LookupFunction(name string) (FunctionInfo, bool) {
	info, ok := s.functions[name]
	return info, ok
}

// PushFrame begins a new lexical block.  Call before resolving a function
// body or any nested `{ ... }` block.
func (s *Scope) PushFrame() {
	s.frames.Push(frame{vars: make(map[string]Variable), base: s.frameSize})
}

// PopFrame ends the innermost lexical block, releasing its stack slots back
// to the enclosing block: the allocation cursor returns to its value when
// the block was entered, so a later sibling block reuses the same bytes.
// The function's frame size is the high-water mark of the cursor.
func (s *Scope) PopFrame() {
	s.frameSize = s.frames.Pop().base
}

// EnterFunction resets the frame-size counters for a new function body,
// pushing its outermost frame (parameters + top-level locals).
func (s *Scope) EnterFunction() {
	s.frameSize = 0
	s.maxFrameSize = 0
	s.PushFrame()
}

// LeaveFunction pops the function's outermost frame and returns the
// high-water stack frame size accumulated while resolving it.
func (s *Scope) LeaveFunction() int {
	s.PopFrame()
	return s.maxFrameSize
}

// DeclareVariable allocates a stack slot for a new variable of the given
// type in the innermost frame, returning false if the name is already
// declared in that same frame (shadowing an outer frame's variable of the
// same name is permitted).
func (s *Scope) DeclareVariable(name string, typ types.DataType, size int) (Variable, bool) {
	top := s.frames.Peek(0)

	if _, ok := top.vars[name]; ok {
		return Variable{}, false
	}

	s.frameSize += size
	if s.frameSize > s.maxFrameSize {
		s.maxFrameSize = s.frameSize
	}

	v := Variable{Name: name, Type: typ, Offset: s.frameSize}
	top.vars[name] = v

	return v, true
}

// AllocAnon reserves `size` bytes of anonymous stack storage (backing a
// struct or array literal that is not itself bound to a named variable),
// returning its offset in the same convention as DeclareVariable.
func (s *Scope) AllocAnon(size int) int {
	s.frameSize += size
	if s.frameSize > s.maxFrameSize {
		s.maxFrameSize = s.frameSize
	}

	return s.frameSize
}

// LookupVariable searches the frame stack from innermost to outermost.
func (s *Scope) LookupVariable(name string) (Variable, bool) {
	for i := uint(0); i < s.frames.Len(); i++ {
		if v, ok := s.frames.Peek(i).vars[name]; ok {
			return v, true
		}
	}

	return Variable{}, false
}

// IsVariable is a convenience predicate mirroring the teacher's
// Environment.IsVariable query.
func (s *Scope) IsVariable(name string) bool {
	_, ok := s.LookupVariable(name)
	return ok
}

// Structs returns every complete struct layout registered in this scope, by
// name. pkg/codegen uses this (attached to the resolved program) to size
// struct-typed fields and locals without re-deriving layout itself.
func (s *Scope) Structs() map[string]StructInfo {
	out := make(map[string]StructInfo, len(s.structs))

	for name, info := range s.structs {
		if len(info.Fields) > 0 {
			out[name] = info
		}
	}

	return out
}
