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
	"github.com/minic-lang/minic/pkg/regalloc"
	"github.com/minic-lang/minic/pkg/resolved"
)

// genFunction emits one function's prologue, parameter copy loop, body,
// and epilogue. The allocator restarts fresh at the top of every function
// — register state never survives across a function boundary.
func (g *Generator) genFunction(fn *resolved.Function) error {
	g.alloc = regalloc.New()

	g.emit("%s:\n", fn.Name)
	g.emit("\tpushq %%rbp\n")
	g.emit("\tmovq %%rsp, %%rbp\n")
	g.emit("\tsubq %s, %%rsp\n", regalloc.ImmOperand(int64(fn.FrameSize)))

	for i, p := range fn.Params {
		paramReg := regalloc.ParameterRegister(i)

		if p.Type.IsStruct() {
			info := g.structInfo(p.Type.Name())

			// R11/RAX are fixed scratch for this one mechanical copy — neither
			// is ever a parameter register, so no struct param's incoming
			// address register is ever clobbered before it's read.
			g.emit("\tleaq %s, %s\n", regalloc.StackOperand(p.Offset), regalloc.Render(regalloc.R11, 8))
			g.movBytes(regalloc.R11, paramReg, regalloc.RAX, info.Size)

			continue
		}

		size := g.sizeOf(p.Type)
		g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(paramReg, size), regalloc.StackOperand(p.Offset))
	}

	for _, s := range fn.Body {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}

	g.emitLeaveRet()

	return nil
}

func (g *Generator) emitLeaveRet() {
	g.emit("\tleave\n")
	g.emit("\tret\n")
}
