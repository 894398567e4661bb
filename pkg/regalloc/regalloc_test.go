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
package regalloc

import (
	"testing"

	"github.com/minic-lang/minic/pkg/util/assert"
)

func TestAllocatorPushPopCurrent(t *testing.T) {
	a := New()
	assert.Equal(t, RAX, a.Current())

	r := a.Push()
	assert.Equal(t, RDI, r)
	assert.Equal(t, RDI, a.Current())

	a.Push()
	assert.Equal(t, RSI, a.Current())

	popped := a.Pop()
	assert.Equal(t, RSI, popped)
	assert.Equal(t, RDI, a.Current())
}

func TestAllocatorPopUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic popping an empty allocator")
		}
	}()

	New().Pop()
}

func TestAllocatorExhaustionPanics(t *testing.T) {
	a := New()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic exhausting the register pool")
		}
	}()

	for i := 0; i < len(pool); i++ {
		a.Push()
	}
}

func TestParameterRegisterOrder(t *testing.T) {
	assert.Equal(t, RDI, ParameterRegister(0))
	assert.Equal(t, RSI, ParameterRegister(1))
	assert.Equal(t, RDX, ParameterRegister(2))
	assert.Equal(t, RCX, ParameterRegister(3))
	assert.Equal(t, R8, ParameterRegister(4))
	assert.Equal(t, R9, ParameterRegister(5))
}

func TestParameterRegisterOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a 7th parameter")
		}
	}()

	ParameterRegister(6)
}

func TestSpillSetBelowParkedIsEmpty(t *testing.T) {
	a := New()
	a.Push() // RDI, index 1, below parked (index 7)

	assert.True(t, a.SpillSet() == nil, "expected no spill set below the parked boundary")
}

func TestSpillSetIncludesParkedThroughCurrent(t *testing.T) {
	a := New()
	for i := 0; i < parkedIndex+1; i++ { // push past R10 to R11
		a.Push()
	}

	got := a.SpillSet()
	want := []Register{R11, R10}

	assert.Equal(t, len(want), len(got))

	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestRenderSizes(t *testing.T) {
	assert.Equal(t, "%rax", Render(RAX, 8))
	assert.Equal(t, "%eax", Render(RAX, 4))
	assert.Equal(t, "%ax", Render(RAX, 2))
	assert.Equal(t, "%al", Render(RAX, 1))
	assert.Equal(t, "%r10b", Render(R10, 1))
	assert.Equal(t, "%r10d", Render(R10, 4))
}

func TestAddrOperand(t *testing.T) {
	assert.Equal(t, "8(%rax)", AddrOperand(RAX, 8))
	assert.Equal(t, "(%rax)", AddrOperand(RAX, 0))
}

func TestStackAndImmOperand(t *testing.T) {
	assert.Equal(t, "-16(%rbp)", StackOperand(16))
	assert.Equal(t, "$3", ImmOperand(3))
}
