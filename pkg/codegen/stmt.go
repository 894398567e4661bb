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
	"fmt"

	"github.com/minic-lang/minic/pkg/regalloc"
	"github.com/minic-lang/minic/pkg/resolved"
)

func (g *Generator) genStmt(s resolved.Stmt) error {
	switch n := s.(type) {
	case *resolved.ExprStmt:
		return g.genExpr(n.Expr)
	case *resolved.VarDeclStmt:
		if n.Init == nil {
			return nil
		}

		if err := g.genExpr(n.Init); err != nil {
			return err
		}

		g.storeValue(g.alloc.Current(), n.Variable.Offset, n.Variable.Type)

		return nil
	case *resolved.ReturnStmt:
		return g.genReturn(n)
	case *resolved.IfStmt:
		return g.genIf(n)
	case *resolved.LoopStmt:
		return g.genLoop(n)
	case *resolved.BreakStmt:
		g.emit("\tjmp %s\n", loopEndLabel(n.Label))
		return nil
	case *resolved.ContinueStmt:
		g.emit("\tjmp %s\n", g.continueLabel(n.Label))
		return nil
	default:
		panic("codegen: unreachable statement variant")
	}
}

func (g *Generator) genReturn(n *resolved.ReturnStmt) error {
	if n.Expr == nil {
		g.emitLeaveRet()
		return nil
	}

	if err := g.genExpr(n.Expr); err != nil {
		return err
	}

	size := g.sizeOf(n.Expr.Type())
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(g.alloc.Current(), size), regalloc.Render(regalloc.RAX, size))
	g.emitLeaveRet()

	return nil
}

func (g *Generator) genIf(n *resolved.IfStmt) error {
	id := g.clause
	g.clause++

	elseLabel := fmt.Sprintf("_else%d", id)
	endLabel := fmt.Sprintf("_ifend%d", id)

	if err := g.genExpr(n.Cond); err != nil {
		return err
	}

	size := g.sizeOf(n.Cond.Type())
	g.emit("\t%s $0, %s\n", cmpMnemonic(size), regalloc.Render(g.alloc.Current(), size))
	g.emit("\tje %s\n", elseLabel)

	for _, s := range n.Then {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}

	g.emit("\tjmp %s\n", endLabel)
	g.emit("%s:\n", elseLabel)

	for _, s := range n.Else {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}

	g.emit("%s:\n", endLabel)

	return nil
}

func loopTopLabel(label int) string { return fmt.Sprintf("_label%d", label) }
func loopEndLabel(label int) string { return fmt.Sprintf("_labelend%d", label) }
func loopPostLabel(label int) string { return fmt.Sprintf("_expression%d", label) }

// continueLabel resolves a loop's `continue` target: a `for` loop's post
// label, or a `while` loop's top label, tracked per-label since Init/Post
// alone can't distinguish an empty-init `for` from a `while`.
func (g *Generator) continueLabel(label int) string {
	if target, ok := g.continueTargets[label]; ok {
		return target
	}

	return loopTopLabel(label)
}

func (g *Generator) genLoop(n *resolved.LoopStmt) error {
	if n.Init != nil {
		if err := g.genStmt(n.Init); err != nil {
			return err
		}
	}

	top := loopTopLabel(n.Label)
	end := loopEndLabel(n.Label)
	post := loopPostLabel(n.Label)

	if g.continueTargets == nil {
		g.continueTargets = make(map[int]string)
	}

	if n.IsFor {
		g.continueTargets[n.Label] = post
	} else {
		g.continueTargets[n.Label] = top
	}

	g.emit("%s:\n", top)

	if n.Cond != nil {
		if err := g.genExpr(n.Cond); err != nil {
			return err
		}

		size := g.sizeOf(n.Cond.Type())
		g.emit("\t%s $0, %s\n", cmpMnemonic(size), regalloc.Render(g.alloc.Current(), size))
		g.emit("\tje %s\n", end)
	}

	for _, s := range n.Body {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}

	if n.IsFor {
		g.emit("%s:\n", post)

		if n.Post != nil {
			if err := g.genExpr(n.Post); err != nil {
				return err
			}
		}
	}

	g.emit("\tjmp %s\n", top)
	g.emit("%s:\n", end)

	return nil
}
