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
package scope

import (
	"testing"

	"github.com/minic-lang/minic/pkg/types"
	"github.com/minic-lang/minic/pkg/util/assert"
)

func TestDeclareVariableOffsetsAreBumpAllocated(t *testing.T) {
	s := New()
	s.EnterFunction()

	a, ok := s.DeclareVariable("a", types.Int(), 4)
	assert.True(t, ok)
	assert.Equal(t, 4, a.Offset)

	b, ok := s.DeclareVariable("b", types.Long(), 8)
	assert.True(t, ok)
	assert.Equal(t, 12, b.Offset)

	assert.Equal(t, 12, s.LeaveFunction())
}

func TestDeclareVariableRejectsDuplicateInSameFrame(t *testing.T) {
	s := New()
	s.EnterFunction()

	_, ok := s.DeclareVariable("a", types.Int(), 4)
	assert.True(t, ok)

	_, ok = s.DeclareVariable("a", types.Int(), 4)
	assert.False(t, ok, "redeclaring a name in the same frame must fail")
}

func TestShadowingInNestedFrameIsPermitted(t *testing.T) {
	s := New()
	s.EnterFunction()

	outer, ok := s.DeclareVariable("x", types.Int(), 4)
	assert.True(t, ok)

	s.PushFrame()

	inner, ok := s.DeclareVariable("x", types.Char(), 1)
	assert.True(t, ok, "shadowing an outer variable must be permitted")
	assert.True(t, inner.Offset != outer.Offset || inner.Type != outer.Type)

	got, _ := s.LookupVariable("x")
	assert.Equal(t, inner.Offset, got.Offset, "innermost frame must win lookup")

	s.PopFrame()

	got, _ = s.LookupVariable("x")
	assert.Equal(t, outer.Offset, got.Offset, "popping restores outer visibility")
}

func TestFrameSizeIsHighWaterMarkAcrossSiblingBlocks(t *testing.T) {
	s := New()
	s.EnterFunction()

	s.PushFrame()
	s.DeclareVariable("a", types.Long(), 8)
	s.DeclareVariable("b", types.Long(), 8)
	s.PopFrame()

	s.PushFrame()
	s.DeclareVariable("c", types.Int(), 4)
	s.PopFrame()

	// Popping a block returns the cursor to where the block began, so the
	// second sibling reuses the first one's bytes and the high-water mark
	// reflects the first (larger) block.
	assert.Equal(t, 16, s.LeaveFunction())
}

func TestTwoPhaseStructInsertionAllowsSelfReference(t *testing.T) {
	s := New()

	s.DeclareIncompleteStruct("S")

	info, ok := s.LookupStruct("S")
	assert.True(t, ok)
	assert.Equal(t, 0, len(info.Fields))

	complete := StructInfo{
		Name:   "S",
		Fields: []StructField{{Name: "next", Type: types.Ptr(types.IncompleteStruct("S")), Offset: 0}},
		Size:   8,
	}

	ok = s.CompleteStruct(complete)
	assert.True(t, ok)

	info, _ = s.LookupStruct("S")
	assert.Equal(t, 1, len(info.Fields))
}

func TestCompleteStructRejectsRedefinition(t *testing.T) {
	s := New()

	full := StructInfo{Name: "S", Fields: []StructField{{Name: "x", Type: types.Int(), Offset: 0}}, Size: 4}

	assert.True(t, s.CompleteStruct(full))
	assert.False(t, s.CompleteStruct(full), "defining the same struct twice must fail")
}

func TestStructFieldLookup(t *testing.T) {
	info := StructInfo{
		Name: "P",
		Fields: []StructField{
			{Name: "x", Type: types.Int(), Offset: 0},
			{Name: "y", Type: types.Int(), Offset: 4},
		},
		Size: 8,
	}

	f, ok := info.Field("y")
	assert.True(t, ok)
	assert.Equal(t, 4, f.Offset)

	_, ok = info.Field("z")
	assert.False(t, ok)
}

func TestDeclareFunctionRejectsDuplicate(t *testing.T) {
	s := New()

	info := FunctionInfo{Name: "f", Params: []types.DataType{types.Int()}, Returns: types.Int()}

	assert.True(t, s.DeclareFunction(info))
	assert.False(t, s.DeclareFunction(info), "redeclaring the same function name must fail")
}

func TestStructsOnlyReturnsCompleteLayouts(t *testing.T) {
	s := New()
	s.DeclareIncompleteStruct("Incomplete")
	s.CompleteStruct(StructInfo{Name: "Complete", Fields: []StructField{{Name: "a", Type: types.Int(), Offset: 0}}, Size: 4})

	out := s.Structs()

	_, hasIncomplete := out["Incomplete"]
	assert.False(t, hasIncomplete, "incomplete structs must not appear in Structs()")

	_, hasComplete := out["Complete"]
	assert.True(t, hasComplete)
}
