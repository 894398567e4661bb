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
package codegen

import (
	"testing"

	"github.com/minic-lang/minic/pkg/regalloc"
	"github.com/minic-lang/minic/pkg/util/assert"
)

func TestChunkSizePicksLargestPowerOfTwoThatFits(t *testing.T) {
	assert.Equal(t, 1, chunkSize(1))
	assert.Equal(t, 2, chunkSize(2))
	assert.Equal(t, 2, chunkSize(3))
	assert.Equal(t, 4, chunkSize(4))
	assert.Equal(t, 4, chunkSize(7))
	assert.Equal(t, 8, chunkSize(8))
	assert.Equal(t, 8, chunkSize(100))
}

func TestMovMnemonicSizeSuffixes(t *testing.T) {
	assert.Equal(t, "movb", movMnemonic(1))
	assert.Equal(t, "movw", movMnemonic(2))
	assert.Equal(t, "movl", movMnemonic(4))
	assert.Equal(t, "movq", movMnemonic(8))
}

func TestMovBytesChunksMonotonicallyDownToZero(t *testing.T) {
	g := &Generator{alloc: regalloc.New()}

	g.movBytes(regalloc.RDI, regalloc.RSI, regalloc.RAX, 11)

	out := g.out.String()

	assert.True(t, len(out) > 0, "expected emitted instructions")
	// 11 bytes: one 8-byte chunk, then one 2-byte chunk, then one 1-byte
	// chunk — three chunk iterations, each a load and a store mov.
	assert.Equal(t, 6, countOccurrences(out, "mov"))
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}

	return count
}
