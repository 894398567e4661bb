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

// Package types implements the small, closed type lattice used throughout
// the compiler: the primitive machine types, pointers, and structs.
package types

import "fmt"

// Kind distinguishes the variants of DataType.
type Kind uint

// Closed set of type constructors.
const (
	VOID Kind = iota
	INT
	CHAR
	LONG
	PTR
	STRUCT
	INCOMPLETE_STRUCT
)

// DataType is the result of resolving a TypeExpr: a concrete, sized type.
// Pointer and struct variants carry additional payload (Elem / Name),
// everything else is a plain value.
type DataType struct {
	kind Kind
	// Elem is populated when kind == PTR: the pointee type.
	elem *DataType
	// Name is populated when kind == STRUCT or INCOMPLETE_STRUCT.
	name string
}

// Int is the 4-byte signed integer type.
func Int() DataType { return DataType{kind: INT} }

// Char is the 1-byte signed integer type.
func Char() DataType { return DataType{kind: CHAR} }

// Long is the 8-byte signed integer type.
func Long() DataType { return DataType{kind: LONG} }

// Void is the zero-size type, valid only as a function return type.
func Void() DataType { return DataType{kind: VOID} }

// Ptr constructs a pointer to the given element type.
func Ptr(elem DataType) DataType { return DataType{kind: PTR, elem: &elem} }

// Struct constructs a reference to a fully-defined struct with the given name.
func Struct(name string) DataType { return DataType{kind: STRUCT, name: name} }

// IncompleteStruct constructs a reference to a struct tag that has been
// declared (used in a pointer) but not yet defined.
func IncompleteStruct(name string) DataType { return DataType{kind: INCOMPLETE_STRUCT, name: name} }

// Kind returns the type constructor of this DataType.
func (d DataType) Kind() Kind { return d.kind }

// Elem returns the pointee type.  Panics unless Kind() == PTR.
func (d DataType) Elem() DataType {
	if d.kind != PTR {
		panic("Elem() called on non-pointer type")
	}

	return *d.elem
}

// Name returns the struct tag.  Panics unless Kind() is STRUCT or
// INCOMPLETE_STRUCT.
func (d DataType) Name() string {
	if d.kind != STRUCT && d.kind != INCOMPLETE_STRUCT {
		panic("Name() called on non-struct type")
	}

	return d.name
}

// Size returns the number of bytes occupied by a value of this type, for
// primitive and pointer types.  Struct sizes depend on the field layout and
// are looked up in the struct table (see pkg/scope), not computed here;
// calling Size() on a struct type panics.
func (d DataType) Size() int {
	switch d.kind {
	case VOID:
		return 0
	case CHAR:
		return 1
	case INT:
		return 4
	case LONG, PTR:
		return 8
	default:
		panic(fmt.Sprintf("Size() undefined for type kind %d; struct sizes are layout-dependent", d.kind))
	}
}

// IsNumber reports whether this type participates in arithmetic (int, char,
// long). Pointers support + and - against a number but are not themselves
// "numbers" for the purposes of operand checking.
func (d DataType) IsNumber() bool {
	return d.kind == INT || d.kind == CHAR || d.kind == LONG
}

// IsPointer reports whether this is a pointer type.
func (d DataType) IsPointer() bool {
	return d.kind == PTR
}

// IsStruct reports whether this is a (complete or incomplete) struct type.
func (d DataType) IsStruct() bool {
	return d.kind == STRUCT || d.kind == INCOMPLETE_STRUCT
}

// Equals performs structural comparison between two types.
func (d DataType) Equals(other DataType) bool {
	if d.kind != other.kind {
		return false
	}

	switch d.kind {
	case PTR:
		return d.elem.Equals(*other.elem)
	case STRUCT, INCOMPLETE_STRUCT:
		return d.name == other.name
	default:
		return true
	}
}

// CanConvert determines whether a value of type `from` may be implicitly
// converted to type `to`, mirroring the permissive C-like conversion rules:
// any two numeric types convert freely (with truncation/extension at
// codegen time), a number converts to/from a pointer, any pointer converts
// to any other pointer (this subset does not distinguish `void*` from
// `ptr(T)` for conversion purposes), and anything converts to itself.
func CanConvert(from, to DataType) bool {
	if from.Equals(to) {
		return true
	}

	if from.IsNumber() && to.IsNumber() {
		return true
	}

	if from.IsPointer() && to.IsPointer() {
		return true
	}

	if (from.IsNumber() && to.IsPointer()) || (from.IsPointer() && to.IsNumber()) {
		return true
	}

	return false
}

// CanOperate determines whether two types may appear as the left/right
// operands of a binary arithmetic or comparison operator.  Two numbers
// always may; a pointer and a number may (pointer arithmetic); two
// pointers may only if their element types match (pointer difference /
// comparison).
func CanOperate(lhs, rhs DataType) bool {
	switch {
	case lhs.IsNumber() && rhs.IsNumber():
		return true
	case lhs.IsPointer() && rhs.IsNumber():
		return true
	case lhs.IsNumber() && rhs.IsPointer():
		return true
	case lhs.IsPointer() && rhs.IsPointer():
		return lhs.Elem().Equals(rhs.Elem())
	default:
		return false
	}
}

// String renders a DataType in C-like surface syntax, used in diagnostics.
func (d DataType) String() string {
	switch d.kind {
	case VOID:
		return "void"
	case INT:
		return "int"
	case CHAR:
		return "char"
	case LONG:
		return "long"
	case PTR:
		return fmt.Sprintf("%s*", d.elem.String())
	case STRUCT, INCOMPLETE_STRUCT:
		return fmt.Sprintf("struct %s", d.name)
	default:
		return "?"
	}
}
