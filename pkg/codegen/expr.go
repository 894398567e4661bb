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
	"github.com/minic-lang/minic/pkg/types"
)

// genExpr emits one expression's evaluation, leaving its value — or, for a
// struct-typed expression, its address — in g.alloc.Current(). genExpr
// never changes the allocator's index across its own call: any Push it
// issues internally is matched by a Pop before returning.
func (g *Generator) genExpr(e resolved.Expr) error {
	switch n := e.(type) {
	case *resolved.IntLiteral:
		g.emit("\tmovl %s, %s\n", regalloc.ImmOperand(n.Value), regalloc.Render(g.alloc.Current(), 4))
		return nil
	case *resolved.CharLiteral:
		g.emit("\tmovb %s, %s\n", regalloc.ImmOperand(int64(n.Value)), regalloc.Render(g.alloc.Current(), 1))
		return nil
	case *resolved.StringLiteral:
		g.emit("\tleaq .LC%d(%%rip), %s\n", n.Index, regalloc.Render(g.alloc.Current(), 8))
		return nil
	case *resolved.NamedVariable:
		return g.genNamedVariable(n)
	case *resolved.Unary:
		return g.genUnary(n)
	case *resolved.Binary:
		return g.genBinary(n)
	case *resolved.Cast:
		return g.genExpr(n.Expr)
	case *resolved.SizeOf:
		g.emit("\tmovl %s, %s\n", regalloc.ImmOperand(int64(n.ByteCount)), regalloc.Render(g.alloc.Current(), 4))
		return nil
	case *resolved.FunctionCall:
		return g.genCall(n)
	case *resolved.FieldAccess:
		return g.genFieldAccess(n)
	case *resolved.ArrowAccess:
		return g.genArrowAccess(n)
	case *resolved.Indexing:
		return g.genIndexing(n)
	case *resolved.StructLiteral:
		return g.genStructLiteral(n)
	case *resolved.ArrayLiteral:
		return g.genArrayLiteral(n)
	case *resolved.StackAssignment:
		return g.genStackAssignment(n)
	case *resolved.PtrAssignment:
		return g.genPtrAssignment(n)
	case *resolved.ArrayAssignment:
		return g.genArrayAssignment(n)
	case *resolved.FieldAssignment:
		return g.genFieldAssignment(n)
	default:
		panic(fmt.Sprintf("codegen: unreachable expression variant %T", n))
	}
}

func (g *Generator) genNamedVariable(n *resolved.NamedVariable) error {
	reg := g.alloc.Current()

	if n.Variable.Type.IsStruct() {
		g.emit("\tleaq %s, %s\n", regalloc.StackOperand(n.Variable.Offset), regalloc.Render(reg, 8))
		return nil
	}

	size := g.sizeOf(n.Variable.Type)
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.StackOperand(n.Variable.Offset), regalloc.Render(reg, size))

	return nil
}

// genAddress evaluates one of the resolver's accepted lvalue shapes and
// leaves its ADDRESS (never its loaded value) in g.alloc.Current() — the
// codegen counterpart of resolveAddrOf's lvalue classification.
func (g *Generator) genAddress(e resolved.Expr) error {
	switch n := e.(type) {
	case *resolved.NamedVariable:
		g.emit("\tleaq %s, %s\n", regalloc.StackOperand(n.Variable.Offset), regalloc.Render(g.alloc.Current(), 8))
		return nil
	case *resolved.Unary:
		if n.Op != resolved.Deref {
			panic("codegen: address-of operand is not an lvalue shape")
		}
		// &*p is just p: the pointer's value already is the address.
		return g.genExpr(n.Expr)
	case *resolved.FieldAccess:
		if err := g.genExpr(n.Operand); err != nil {
			return err
		}

		if n.FieldOffset != 0 {
			g.emit("\taddq %s, %s\n", regalloc.ImmOperand(int64(n.FieldOffset)), regalloc.Render(g.alloc.Current(), 8))
		}

		return nil
	case *resolved.ArrowAccess:
		if err := g.genExpr(n.Operand); err != nil {
			return err
		}

		if n.FieldOffset != 0 {
			g.emit("\taddq %s, %s\n", regalloc.ImmOperand(int64(n.FieldOffset)), regalloc.Render(g.alloc.Current(), 8))
		}

		return nil
	case *resolved.Indexing:
		return g.genIndexAddress(n)
	default:
		panic(fmt.Sprintf("codegen: unreachable lvalue shape %T", n))
	}
}

func (g *Generator) genUnary(n *resolved.Unary) error {
	if n.Op == resolved.AddrOf {
		return g.genAddress(n.Expr)
	}

	if n.Op == resolved.Deref {
		if err := g.genExpr(n.Expr); err != nil {
			return err
		}

		reg := g.alloc.Current()

		if n.ResultingType.IsStruct() {
			return nil
		}

		size := g.sizeOf(n.ResultingType)
		g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.AddrOperand(reg, 0), regalloc.Render(reg, size))

		return nil
	}

	if err := g.genExpr(n.Expr); err != nil {
		return err
	}

	reg := g.alloc.Current()
	size := g.sizeOf(n.ResultingType)

	switch n.Op {
	case resolved.Neg:
		g.emit("\tneg%s %s\n", sizeSuffix(size), regalloc.Render(reg, size))
	case resolved.BitNot:
		g.emit("\tnot%s %s\n", sizeSuffix(size), regalloc.Render(reg, size))
	case resolved.Not:
		g.emit("\t%s $0, %s\n", cmpMnemonic(size), regalloc.Render(reg, size))
		g.emit("\t%s $0, %s\n", movMnemonic(size), regalloc.Render(reg, size))
		g.emit("\tsete %s\n", regalloc.Render(reg, 1))
	default:
		panic("codegen: unreachable unary operator")
	}

	return nil
}

func (g *Generator) genBinary(n *resolved.Binary) error {
	switch n.Op {
	case resolved.OrOr, resolved.AndAnd:
		return g.genShortCircuit(n)
	case resolved.Div, resolved.Mod:
		return g.genDivMod(n)
	case resolved.Eq, resolved.Ne, resolved.Lt, resolved.Le, resolved.Gt, resolved.Ge:
		return g.genComparison(n)
	default:
		return g.genArithmetic(n)
	}
}

// genShortCircuit implements C's short-circuit && / || exactly per the
// (_clauseN, _endN) label pair: the left operand is tested and, when it
// already determines the outcome, the right operand is never evaluated.
func (g *Generator) genShortCircuit(n *resolved.Binary) error {
	id := g.clause
	g.clause++

	second := fmt.Sprintf("_clause%d", id)
	end := fmt.Sprintf("_end%d", id)

	if err := g.genExpr(n.LHS); err != nil {
		return err
	}

	reg := g.alloc.Current()
	lhsSize := g.sizeOf(n.LHS.Type())

	g.emit("\t%s $0, %s\n", cmpMnemonic(lhsSize), regalloc.Render(reg, lhsSize))

	resultSize := g.sizeOf(n.Type())

	if n.Op == resolved.AndAnd {
		g.emit("\tjne %s\n", second)
		g.emit("\t%s $0, %s\n", movMnemonic(resultSize), regalloc.Render(reg, resultSize))
	} else {
		g.emit("\tje %s\n", second)
		g.emit("\t%s $1, %s\n", movMnemonic(resultSize), regalloc.Render(reg, resultSize))
	}

	g.emit("\tjmp %s\n", end)
	g.emit("%s:\n", second)

	if err := g.genExpr(n.RHS); err != nil {
		return err
	}

	rhsSize := g.sizeOf(n.RHS.Type())

	g.emit("\t%s $0, %s\n", cmpMnemonic(rhsSize), regalloc.Render(reg, rhsSize))
	g.emit("\t%s $1, %s\n", movMnemonic(resultSize), regalloc.Render(reg, resultSize))
	g.emit("\tsetne %s\n", regalloc.Render(reg, 1))
	g.emit("%s:\n", end)

	return nil
}

func (g *Generator) evalPair(lhs, rhs resolved.Expr) (regalloc.Register, regalloc.Register, error) {
	if err := g.genExpr(lhs); err != nil {
		return 0, 0, err
	}

	lhsReg := g.alloc.Current()
	rhsReg := g.alloc.Push()

	if err := g.genExpr(rhs); err != nil {
		return 0, 0, err
	}

	g.alloc.Pop()

	return lhsReg, rhsReg, nil
}

func (g *Generator) genArithmetic(n *resolved.Binary) error {
	lhsReg, rhsReg, err := g.evalPair(n.LHS, n.RHS)
	if err != nil {
		return err
	}

	size := g.sizeOf(n.Type())

	var mnemonic string

	switch n.Op {
	case resolved.Add:
		mnemonic = "add"
	case resolved.Sub:
		mnemonic = "sub"
	case resolved.Mul:
		mnemonic = "imul"
	default:
		panic("codegen: unreachable arithmetic operator")
	}

	g.emit("\t%s%s %s, %s\n", mnemonic, sizeSuffix(size), regalloc.Render(rhsReg, size), regalloc.Render(lhsReg, size))

	return nil
}

// signExtendMnemonic widens the dividend in %rax into %rdx:%rax ahead of
// idiv, at the same operand width idiv itself will use.
func signExtendMnemonic(size int) string {
	if size == 8 {
		return "cqto"
	}

	return "cdq"
}

// genDivMod always performs the division at a minimum of 4 bytes — this
// subset's `char` division promotes to `int` width rather than growing an
// `idivb` path that only has an 8-bit quotient register to work with.
func (g *Generator) genDivMod(n *resolved.Binary) error {
	lhsReg, rhsReg, err := g.evalPair(n.LHS, n.RHS)
	if err != nil {
		return err
	}

	size := g.sizeOf(n.Type())
	divSize := max(size, 4)

	g.emit("\t%s %s, %s\n", movMnemonic(divSize), regalloc.Render(rhsReg, divSize), regalloc.Render(regalloc.RBX, divSize))
	g.emit("\t%s %s, %s\n", movMnemonic(divSize), regalloc.Render(lhsReg, divSize), regalloc.Render(regalloc.RAX, divSize))
	g.emit("\t%s\n", signExtendMnemonic(divSize))
	g.emit("\tidiv%s %s\n", sizeSuffix(divSize), regalloc.Render(regalloc.RBX, divSize))

	result := regalloc.RAX
	if n.Op == resolved.Mod {
		result = regalloc.RDX
	}

	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(result, size), regalloc.Render(lhsReg, size))

	return nil
}

func (g *Generator) genComparison(n *resolved.Binary) error {
	lhsReg, rhsReg, err := g.evalPair(n.LHS, n.RHS)
	if err != nil {
		return err
	}

	cmpSize := max(g.sizeOf(n.LHS.Type()), g.sizeOf(n.RHS.Type()))

	g.emit("\t%s %s, %s\n", cmpMnemonic(cmpSize), regalloc.Render(rhsReg, cmpSize), regalloc.Render(lhsReg, cmpSize))

	resultSize := g.sizeOf(n.Type())
	g.emit("\t%s $0, %s\n", movMnemonic(resultSize), regalloc.Render(lhsReg, resultSize))
	g.emit("\tset%s %s\n", setcc[n.Op], regalloc.Render(lhsReg, 1))

	return nil
}

func (g *Generator) genCall(n *resolved.FunctionCall) error {
	spill := g.alloc.SpillSet()

	for _, r := range spill {
		g.emit("\tpushq %s\n", regalloc.Render(r, 8))
	}

	if err := g.genCallArgs(n); err != nil {
		return err
	}

	g.emit("\tcall %s\n", n.Name)

	for i := len(spill) - 1; i >= 0; i-- {
		g.emit("\tpopq %s\n", regalloc.Render(spill[i], 8))
	}

	if n.ReturnType.Kind() != types.VOID {
		size := g.sizeOf(n.ReturnType)
		g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(regalloc.RAX, size), regalloc.Render(g.alloc.Current(), size))
	}

	return nil
}

// genCallArgs evaluates every argument, each into its own successive
// register (pushing the allocator once per argument but the last), then
// pops back down moving each into its ABI parameter register in reverse —
// so evaluating argument i+1 can never clobber an already-evaluated
// argument i.
func (g *Generator) genCallArgs(n *resolved.FunctionCall) error {
	for i, arg := range n.Args {
		if err := g.genExpr(arg); err != nil {
			return err
		}

		if i != len(n.Args)-1 {
			g.alloc.Push()
		}
	}

	for i := len(n.Args) - 1; i >= 0; i-- {
		argReg := g.alloc.Current()
		size := g.sizeOf(n.Args[i].Type())
		g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(argReg, size), regalloc.Render(regalloc.ParameterRegister(i), size))

		if i != 0 {
			g.alloc.Pop()
		}
	}

	return nil
}

func (g *Generator) genFieldAccess(n *resolved.FieldAccess) error {
	if err := g.genExpr(n.Operand); err != nil {
		return err
	}

	reg := g.alloc.Current()

	if n.FieldType.IsStruct() {
		if n.FieldOffset != 0 {
			g.emit("\taddq %s, %s\n", regalloc.ImmOperand(int64(n.FieldOffset)), regalloc.Render(reg, 8))
		}

		return nil
	}

	size := g.sizeOf(n.FieldType)
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.AddrOperand(reg, n.FieldOffset), regalloc.Render(reg, size))

	return nil
}

func (g *Generator) genArrowAccess(n *resolved.ArrowAccess) error {
	if err := g.genExpr(n.Operand); err != nil {
		return err
	}

	reg := g.alloc.Current()

	if n.FieldType.IsStruct() {
		if n.FieldOffset != 0 {
			g.emit("\taddq %s, %s\n", regalloc.ImmOperand(int64(n.FieldOffset)), regalloc.Render(reg, 8))
		}

		return nil
	}

	size := g.sizeOf(n.FieldType)
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.AddrOperand(reg, n.FieldOffset), regalloc.Render(reg, size))

	return nil
}

// genIndexAddress computes an indexed element's address, leaving it in
// current without loading through it — shared by genIndexing (which loads
// scalar elements afterward) and genAddress (`&a[i]`, which must not).
func (g *Generator) genIndexAddress(n *resolved.Indexing) error {
	if err := g.genExpr(n.Index); err != nil {
		return err
	}

	idxReg := g.alloc.Current()
	ptrReg := g.alloc.Push()

	if err := g.genExpr(n.Operand); err != nil {
		return err
	}

	g.alloc.Pop()

	elemSize := g.byteSizeOf(n.ElementType)

	g.emit("\timulq %s, %s\n", regalloc.ImmOperand(int64(elemSize)), regalloc.Render(idxReg, 8))
	g.emit("\taddq %s, %s\n", regalloc.Render(ptrReg, 8), regalloc.Render(idxReg, 8))

	return nil
}

func (g *Generator) genIndexing(n *resolved.Indexing) error {
	if err := g.genIndexAddress(n); err != nil {
		return err
	}

	if n.ElementType.IsStruct() {
		return nil
	}

	reg := g.alloc.Current()
	size := g.sizeOf(n.ElementType)
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.AddrOperand(reg, 0), regalloc.Render(reg, size))

	return nil
}

func (g *Generator) genStructLiteral(n *resolved.StructLiteral) error {
	for _, f := range n.Fields {
		if err := g.genExpr(f.Value); err != nil {
			return err
		}

		g.storeValue(g.alloc.Current(), n.Offset-f.Offset, f.Value.Type())
	}

	g.emit("\tleaq %s, %s\n", regalloc.StackOperand(n.Offset), regalloc.Render(g.alloc.Current(), 8))

	return nil
}

func (g *Generator) genArrayLiteral(n *resolved.ArrayLiteral) error {
	elemSize := g.byteSizeOf(n.Element)

	for i, elem := range n.Elements {
		if err := g.genExpr(elem); err != nil {
			return err
		}

		slot := n.Element0Offset - i*elemSize
		g.storeValue(g.alloc.Current(), slot, elem.Type())
	}

	g.emit("\tleaq %s, %s\n", regalloc.StackOperand(n.Element0Offset), regalloc.Render(g.alloc.Current(), 8))

	return nil
}

// genStackAssignment and its three siblings below all leave the assigned
// VALUE (never the just-used address) in current for scalar targets,
// matching C's assignment-expression semantics; struct targets leave the
// destination address, matching every other struct-typed expression.
func (g *Generator) genStackAssignment(n *resolved.StackAssignment) error {
	if err := g.genExpr(n.Value); err != nil {
		return err
	}

	g.storeValue(g.alloc.Current(), n.Variable.Offset, n.Variable.Type)

	if n.Variable.Type.IsStruct() {
		g.emit("\tleaq %s, %s\n", regalloc.StackOperand(n.Variable.Offset), regalloc.Render(g.alloc.Current(), 8))
	}

	return nil
}

func (g *Generator) genPtrAssignment(n *resolved.PtrAssignment) error {
	if err := g.genExpr(n.Address); err != nil {
		return err
	}

	addrReg := g.alloc.Current()
	valReg := g.alloc.Push()

	if err := g.genExpr(n.Value); err != nil {
		return err
	}

	g.storeAtAddress(addrReg, valReg, n.ElemType)

	if !n.ElemType.IsStruct() {
		size := g.sizeOf(n.ElemType)
		g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(valReg, size), regalloc.Render(addrReg, size))
	}

	g.alloc.Pop()

	return nil
}

func (g *Generator) genArrayAssignment(n *resolved.ArrayAssignment) error {
	if err := g.genExpr(n.Index); err != nil {
		return err
	}

	idxReg := g.alloc.Current()
	ptrReg := g.alloc.Push()

	if err := g.genExpr(n.Address); err != nil {
		return err
	}

	g.alloc.Pop()

	elemSize := g.byteSizeOf(n.ElementType)

	g.emit("\timulq %s, %s\n", regalloc.ImmOperand(int64(elemSize)), regalloc.Render(idxReg, 8))
	g.emit("\taddq %s, %s\n", regalloc.Render(ptrReg, 8), regalloc.Render(idxReg, 8))

	valReg := g.alloc.Push()

	if err := g.genExpr(n.Value); err != nil {
		return err
	}

	g.alloc.Pop()

	g.storeAtAddress(idxReg, valReg, n.ElementType)

	if !n.ElementType.IsStruct() {
		size := g.sizeOf(n.ElementType)
		g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(valReg, size), regalloc.Render(idxReg, size))
	}

	return nil
}

func (g *Generator) genFieldAssignment(n *resolved.FieldAssignment) error {
	if err := g.genExpr(n.Address); err != nil {
		return err
	}

	addrReg := g.alloc.Current()
	valReg := g.alloc.Push()

	if err := g.genExpr(n.Value); err != nil {
		return err
	}

	g.alloc.Pop()

	if n.FieldType.IsStruct() {
		if n.FieldOffset != 0 {
			g.emit("\taddq %s, %s\n", regalloc.ImmOperand(int64(n.FieldOffset)), regalloc.Render(addrReg, 8))
		}

		g.storeAtAddress(addrReg, valReg, n.FieldType)

		return nil
	}

	size := g.sizeOf(n.FieldType)
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(valReg, size), regalloc.AddrOperand(addrReg, n.FieldOffset))
	g.emit("\t%s %s, %s\n", movMnemonic(size), regalloc.Render(valReg, size), regalloc.Render(addrReg, size))

	return nil
}
