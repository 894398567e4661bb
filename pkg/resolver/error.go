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
	"fmt"

	"github.com/minic-lang/minic/pkg/util/source"
)

// Category is the closed taxonomy of semantic errors the resolver can
// report.
type Category int

// Every category the resolver's single pass can produce.
const (
	UnknownType Category = iota
	StructRedefinition
	StructFieldRedefinition
	StructFieldUnknownSize
	OperandsDifferentDatatypes
	DerefOfNonPointer
	UnknownVariable
	AccessNonStruct
	UnknownField
	CannotAssign
	ArrayIndexNotANumber
	EmptyArray
	ArrayOfDifferentTypes
	UnknownFunction
	ReturnTypeIncorrect
	ReturnWithoutFunction
	VariableRedefinition
	VariableInitWrong
	VariableOfUnknownSize
	ParameterCountMismatch
	ParameterTypeMismatch
	UnaryOperandNotNumber
	FunctionRedeclarationMismatch
	ContinueOutsideLoop
	BreakOutsideLoop
	DeclarationAsSingleStatement
)

// Error is the resolver's single error type: a category, a message, and
// (when available) the source location at which it arose.
type Error struct {
	Category Category
	Message  string
	Span     *source.Span
}

func (e *Error) Error() string {
	return e.Message
}

func newError(category Category, span source.Span, format string, args ...any) *Error {
	s := span
	return &Error{Category: category, Message: fmt.Sprintf(format, args...), Span: &s}
}
