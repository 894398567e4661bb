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
package types

import (
	"testing"

	"github.com/minic-lang/minic/pkg/util/assert"
)

func TestSizes(t *testing.T) {
	assert.Equal(t, 0, Void().Size())
	assert.Equal(t, 1, Char().Size())
	assert.Equal(t, 4, Int().Size())
	assert.Equal(t, 8, Long().Size())
	assert.Equal(t, 8, Ptr(Int()).Size())
}

func TestStructEqualityIsStructural(t *testing.T) {
	a := Struct("Point")
	b := Struct("Point")
	c := Struct("Line")

	assert.True(t, a.Equals(b), "same-name structs must be equal")
	assert.False(t, a.Equals(c), "different-name structs must not be equal")
}

func TestPtrEqualityComparesElement(t *testing.T) {
	assert.True(t, Ptr(Int()).Equals(Ptr(Int())), "ptr(int) must equal ptr(int)")
	assert.False(t, Ptr(Int()).Equals(Ptr(Char())), "ptr(int) must not equal ptr(char)")
}

func TestCanConvertIsPermissive(t *testing.T) {
	assert.True(t, CanConvert(Int(), Char()), "number to number must convert")
	assert.True(t, CanConvert(Int(), Ptr(Void())), "number to pointer must convert")
	assert.True(t, CanConvert(Ptr(Void()), Ptr(Int())), "pointer to pointer must convert")
	assert.True(t, CanConvert(Struct("P"), Struct("P")), "identical structs must convert")
}

func TestCanConvertRejectsStructToNumber(t *testing.T) {
	assert.False(t, CanConvert(Struct("P"), Int()), "struct must not convert to a number")
}

func TestCanOperateForbidsVoidAndStruct(t *testing.T) {
	assert.False(t, CanOperate(Void(), Int()), "void must not participate in arithmetic")
	assert.False(t, CanOperate(Struct("P"), Int()), "struct must not participate in arithmetic")
	assert.True(t, CanOperate(Int(), Int()), "two numbers must operate")
	assert.True(t, CanOperate(Ptr(Int()), Int()), "pointer and number must operate")
}

func TestCanOperatePointerPairRequiresMatchingElement(t *testing.T) {
	assert.True(t, CanOperate(Ptr(Int()), Ptr(Int())), "matching pointer pair must operate")
	assert.False(t, CanOperate(Ptr(Int()), Ptr(Char())), "mismatched pointer pair must not operate")
}

func TestIsNumberExcludesPointer(t *testing.T) {
	assert.True(t, Int().IsNumber())
	assert.False(t, Ptr(Int()).IsNumber())
}

func TestStringRendersCLikeSyntax(t *testing.T) {
	assert.Equal(t, "int", Int().String())
	assert.Equal(t, "int*", Ptr(Int()).String())
	assert.Equal(t, "struct Point", Struct("Point").String())
}
