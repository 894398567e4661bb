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
package cmd

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/pkg/resolved"
	"github.com/minic-lang/minic/pkg/token"
)

// writeTokens dumps the token stream, one token per line, in the format
// `line:col kind "text"`, for the -tokens flag.
func writeTokens(tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Printf("%d:%d\t%s\t%q\n", tok.Line, tok.Col, tok.Kind, tok.Text)
	}
}

// writeResolvedProgram dumps a fully-resolved program for the -ast flag: one
// function per block, in source order, each statement indented under it.
func writeResolvedProgram(prog *resolved.Program) {
	for i, fn := range prog.Functions {
		if i != 0 {
			fmt.Println()
		}

		writeResolvedFunction(fn)
	}
}

func writeResolvedFunction(fn *resolved.Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s %s@-%d", p.Type, p.Name, p.Offset)
	}

	fmt.Printf("fn %s(%s) -> %s [frame=%d] {\n", fn.Name, strings.Join(params, ", "), fn.ReturnType, fn.FrameSize)

	for _, stmt := range fn.Body {
		writeStmt(stmt, 1)
	}

	fmt.Println("}")
}

func indent(depth int) string { return strings.Repeat("\t", depth) }

func writeStmt(stmt resolved.Stmt, depth int) {
	pad := indent(depth)

	switch s := stmt.(type) {
	case *resolved.ExprStmt:
		fmt.Printf("%s%s;\n", pad, exprString(s.Expr))
	case *resolved.VarDeclStmt:
		if s.Init != nil {
			fmt.Printf("%s%s %s@-%d = %s;\n", pad, s.Variable.Type, s.Variable.Name, s.Variable.Offset, exprString(s.Init))
		} else {
			fmt.Printf("%s%s %s@-%d;\n", pad, s.Variable.Type, s.Variable.Name, s.Variable.Offset)
		}
	case *resolved.ReturnStmt:
		if s.Expr != nil {
			fmt.Printf("%sreturn %s;\n", pad, exprString(s.Expr))
		} else {
			fmt.Printf("%sreturn;\n", pad)
		}
	case *resolved.IfStmt:
		fmt.Printf("%sif (%s) {\n", pad, exprString(s.Cond))

		for _, t := range s.Then {
			writeStmt(t, depth+1)
		}

		if s.Else != nil {
			fmt.Printf("%s} else {\n", pad)

			for _, e := range s.Else {
				writeStmt(e, depth+1)
			}
		}

		fmt.Printf("%s}\n", pad)
	case *resolved.LoopStmt:
		kind := "while"
		if s.IsFor {
			kind = "for"
		}

		cond := "<true>"
		if s.Cond != nil {
			cond = exprString(s.Cond)
		}

		fmt.Printf("%s%s#%d (%s) {\n", pad, kind, s.Label, cond)

		for _, b := range s.Body {
			writeStmt(b, depth+1)
		}

		if s.Post != nil {
			fmt.Printf("%s\tpost: %s;\n", pad, exprString(s.Post))
		}

		fmt.Printf("%s}\n", pad)
	case *resolved.BreakStmt:
		fmt.Printf("%sbreak -> #%d;\n", pad, s.Label)
	case *resolved.ContinueStmt:
		fmt.Printf("%scontinue -> #%d;\n", pad, s.Label)
	default:
		fmt.Printf("%s<unknown statement %T>\n", pad, s)
	}
}

// exprString renders a resolved expression as a single-line, C-like
// expression string annotated with its static type, for the -ast dump.
func exprString(e resolved.Expr) string {
	switch v := e.(type) {
	case *resolved.IntLiteral:
		return fmt.Sprintf("%d", v.Value)
	case *resolved.CharLiteral:
		return fmt.Sprintf("'%c'", v.Value)
	case *resolved.StringLiteral:
		return fmt.Sprintf(".LC%d", v.Index)
	case *resolved.NamedVariable:
		return fmt.Sprintf("%s@-%d", v.Variable.Name, v.Variable.Offset)
	case *resolved.Unary:
		return fmt.Sprintf("(%s %s):%s", unaryOpString(v.Op), exprString(v.Expr), v.ResultingType)
	case *resolved.Binary:
		return fmt.Sprintf("(%s %s %s):%s", exprString(v.LHS), binaryOpString(v.Op), exprString(v.RHS), v.ResultingType)
	case *resolved.Cast:
		return fmt.Sprintf("(%s)%s", v.To, exprString(v.Expr))
	case *resolved.SizeOf:
		return fmt.Sprintf("sizeof(...)=%d", v.ByteCount)
	case *resolved.FunctionCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = exprString(a)
		}

		return fmt.Sprintf("%s(%s):%s", v.Name, strings.Join(args, ", "), v.ReturnType)
	case *resolved.FieldAccess:
		return fmt.Sprintf("%s.+%d:%s", exprString(v.Operand), v.FieldOffset, v.FieldType)
	case *resolved.ArrowAccess:
		return fmt.Sprintf("%s->+%d:%s", exprString(v.Operand), v.FieldOffset, v.FieldType)
	case *resolved.Indexing:
		return fmt.Sprintf("%s[%s]:%s", exprString(v.Operand), exprString(v.Index), v.ElementType)
	case *resolved.StructLiteral:
		return fmt.Sprintf("{...}:%s", v.StructType)
	case *resolved.ArrayLiteral:
		return fmt.Sprintf("{...}:%s", e.Type())
	case *resolved.StackAssignment:
		return fmt.Sprintf("%s@-%d = %s", v.Variable.Name, v.Variable.Offset, exprString(v.Value))
	case *resolved.PtrAssignment:
		return fmt.Sprintf("*%s = %s", exprString(v.Address), exprString(v.Value))
	case *resolved.ArrayAssignment:
		return fmt.Sprintf("%s[%s] = %s", exprString(v.Address), exprString(v.Index), exprString(v.Value))
	case *resolved.FieldAssignment:
		return fmt.Sprintf("%s.+%d = %s", exprString(v.Address), v.FieldOffset, exprString(v.Value))
	default:
		return fmt.Sprintf("<unknown expr %T>", v)
	}
}

func unaryOpString(op resolved.UnaryOp) string {
	switch op {
	case resolved.Neg:
		return "-"
	case resolved.Not:
		return "!"
	case resolved.BitNot:
		return "~"
	case resolved.Deref:
		return "*"
	case resolved.AddrOf:
		return "&"
	default:
		return "?"
	}
}

func binaryOpString(op resolved.BinaryOp) string {
	switch op {
	case resolved.OrOr:
		return "||"
	case resolved.AndAnd:
		return "&&"
	case resolved.Eq:
		return "=="
	case resolved.Ne:
		return "!="
	case resolved.Lt:
		return "<"
	case resolved.Le:
		return "<="
	case resolved.Gt:
		return ">"
	case resolved.Ge:
		return ">="
	case resolved.Add:
		return "+"
	case resolved.Sub:
		return "-"
	case resolved.Mul:
		return "*"
	case resolved.Div:
		return "/"
	case resolved.Mod:
		return "%"
	default:
		return "?"
	}
}
