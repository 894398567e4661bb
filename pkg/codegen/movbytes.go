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

import "github.com/minic-lang/minic/pkg/regalloc"

// movBytes copies n bytes from the address held in src to the address held
// in dst, greedily chunking 8/4/2/1 bytes at a time through tmp. src and
// dst are themselves advanced by each chunk's size (so callers must treat
// them as clobbered on return), matching every struct-copy site this
// compiler has: parameter copying, struct assignment, and struct element
// assignment through a pointer/array/field target.
func (g *Generator) movBytes(dst, src, tmp regalloc.Register, n int) {
	for n > 0 {
		chunk := chunkSize(n)
		mov := movMnemonic(chunk)

		g.emit("\t%s %s, %s\n", mov, regalloc.AddrOperand(src, 0), regalloc.Render(tmp, chunk))
		g.emit("\t%s %s, %s\n", mov, regalloc.Render(tmp, chunk), regalloc.AddrOperand(dst, 0))

		n -= chunk

		if n > 0 {
			g.emit("\taddq %s, %s\n", regalloc.ImmOperand(int64(chunk)), regalloc.Render(src, 8))
			g.emit("\taddq %s, %s\n", regalloc.ImmOperand(int64(chunk)), regalloc.Render(dst, 8))
		}
	}
}
