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

// Package parser implements a hand-written recursive-descent parser with
// Pratt-style precedence climbing for binary operators, producing the
// unresolved tree in pkg/ast from a token.Token stream.
package parser

import (
	"fmt"

	"github.com/minic-lang/minic/pkg/ast"
	"github.com/minic-lang/minic/pkg/token"
)

// Parser consumes a token stream and builds an unresolved ast.Program. It
// holds no state beyond its current index, following the teacher's
// anchor-and-rewind idiom for the two backtracking points the grammar
// requires (declaration-vs-expression statements and cast disambiguation).
type Parser struct {
	filename string
	tokens   []token.Token
	index    int
}

// New constructs a parser over a complete token stream (which must end in
// an EOF token, as produced by pkg/lexer).
func New(filename string, tokens []token.Token) *Parser {
	return &Parser{filename, tokens, 0}
}

// Parse consumes the entire token stream, returning the unresolved program
// or the first syntax error encountered.
func Parse(filename string, tokens []token.Token) (*ast.Program, error) {
	p := New(filename, tokens)
	return p.parseProgram()
}

// ---------------------------------------------------------------------
// Low-level token helpers
// ---------------------------------------------------------------------

func (p *Parser) lookahead(offset int) token.Token {
	i := p.index + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}

	return p.tokens[i]
}

func (p *Parser) current() token.Token {
	return p.lookahead(0)
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if tok.Kind != token.EOF {
		p.index++
	}

	return tok
}

// match consumes the current token if it has the given kind, reporting
// whether it did.
func (p *Parser) match(kind token.Kind) bool {
	if p.current().Kind == kind {
		p.advance()
		return true
	}

	return false
}

// expect consumes the current token, requiring it to have the given kind.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return token.Token{}, p.unexpectedToken(kind, tok)
	}

	return p.advance(), nil
}

func (p *Parser) unexpectedToken(expected token.Kind, found token.Token) error {
	return fmt.Errorf("%s:%d:%d: expected %s, found %s %q",
		p.filename, found.Line, found.Col, expected, found.Kind, found.Text)
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s:%d:%d: %s", p.filename, tok.Line, tok.Col, msg)
}

// ---------------------------------------------------------------------
// Top level
// ---------------------------------------------------------------------

func (p *Parser) parseProgram() (*ast.Program, error) {
	var decls []ast.Decl

	for p.current().Kind != token.EOF {
		decl, err := p.parseDecl()
		if err != nil {
			return nil, err
		}

		decls = append(decls, decl)
	}

	return &ast.Program{Decls: decls}, nil
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	start := p.index

	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	// A bare `struct S { ... };` with no following identifier is a
	// top-level struct statement, not a variable or function declaration.
	if typ.Base == "struct" && typ.HasFields && p.current().Kind == token.SEMICOLON {
		p.advance()
		return &ast.StructDecl{Name: typ.StructName, Fields: typ.StructFields, Span: typ.Span}, nil
	}

	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		p.index = start
		return nil, err
	}

	if p.current().Kind == token.LPAREN {
		return p.parseFunctionRest(typ, nameTok)
	}

	// Otherwise it's a typedef-style or plain declaration; this subset only
	// exposes functions and structs at top level per the grammar, so a
	// bare `T name ;` at the top level is treated as a typedef alias.
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.TypedefDecl{Name: nameTok.Text, Type: typ, Span: typ.Span}, nil
}

func (p *Parser) parseFunctionRest(returnType ast.TypeExpr, nameTok token.Token) (ast.Decl, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Param

	for p.current().Kind != token.RPAREN {
		if len(params) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}

		params = append(params, param)
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	fn := &ast.Function{ReturnType: returnType, Name: nameTok.Text, Params: params, Span: returnType.Span}

	if p.match(token.SEMICOLON) {
		return fn, nil
	}

	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}

	fn.Body = body

	return fn, nil
}

func (p *Parser) parseParam() (ast.Param, error) {
	typ, err := p.parseTypeExpr()
	if err != nil {
		return ast.Param{}, err
	}

	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return ast.Param{}, err
	}

	// `T x[]` sugar rewrites to `T* x` in a parameter position.
	if p.match(token.LBRACKET) {
		if _, err := p.expect(token.RBRACKET); err != nil {
			return ast.Param{}, err
		}

		typ.Stars++
	}

	return ast.Param{Type: typ, Name: nameTok.Text, Span: typ.Span}, nil
}

// ---------------------------------------------------------------------
// Type expressions
// ---------------------------------------------------------------------

func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	tok := p.current()
	typ := ast.TypeExpr{Span: tok.Span}

	switch tok.Kind {
	case token.KEYWORD_INT:
		p.advance()
		typ.Base = "int"
	case token.KEYWORD_CHAR:
		p.advance()
		typ.Base = "char"
	case token.KEYWORD_LONG:
		p.advance()
		typ.Base = "long"
	case token.KEYWORD_VOID:
		p.advance()
		typ.Base = "void"
	case token.KEYWORD_STRUCT:
		p.advance()

		nameTok, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return ast.TypeExpr{}, err
		}

		typ.Base = "struct"
		typ.StructName = nameTok.Text

		if p.match(token.LBRACE) {
			typ.HasFields = true

			for p.current().Kind != token.RBRACE {
				fieldType, err := p.parseTypeExpr()
				if err != nil {
					return ast.TypeExpr{}, err
				}

				fieldNameTok, err := p.expect(token.IDENTIFIER)
				if err != nil {
					return ast.TypeExpr{}, err
				}

				if _, err := p.expect(token.SEMICOLON); err != nil {
					return ast.TypeExpr{}, err
				}

				typ.StructFields = append(typ.StructFields, ast.Param{
					Type: fieldType,
					Name: fieldNameTok.Text,
					Span: fieldType.Span,
				})
			}

			if _, err := p.expect(token.RBRACE); err != nil {
				return ast.TypeExpr{}, err
			}
		}
	case token.IDENTIFIER:
		p.advance()
		typ.Base = tok.Text
	default:
		return ast.TypeExpr{}, p.errorf(tok, "expected a type, found %s %q", tok.Kind, tok.Text)
	}

	for p.match(token.STAR) {
		typ.Stars++
	}

	return typ, nil
}

// startsType reports whether the current token could begin a TypeExpr —
// used by the declaration-vs-expression-statement heuristic.
func (p *Parser) startsType() bool {
	switch p.current().Kind {
	case token.KEYWORD_INT, token.KEYWORD_CHAR, token.KEYWORD_LONG, token.KEYWORD_VOID, token.KEYWORD_STRUCT:
		return true
	case token.IDENTIFIER:
		// An identifier only starts a declaration if followed by another
		// identifier (the variable name); `x = 1;` must not be mistaken
		// for a declaration of a typedef'd type named `x`.
		return p.lookahead(1).Kind == token.IDENTIFIER
	default:
		return false
	}
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (p *Parser) parseCompound() (*ast.Compound, error) {
	startTok, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt

	for p.current().Kind != token.RBRACE {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return &ast.Compound{Stmts: stmts, Span: startTok.Span}, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.current()

	switch tok.Kind {
	case token.SEMICOLON:
		p.advance()
		return &ast.EmptyStmt{Span: tok.Span}, nil
	case token.LBRACE:
		return p.parseCompound()
	case token.KEYWORD_RETURN:
		return p.parseReturn()
	case token.KEYWORD_IF:
		return p.parseIfElse()
	case token.KEYWORD_WHILE:
		return p.parseWhile()
	case token.KEYWORD_FOR:
		return p.parseFor()
	case token.KEYWORD_CONTINUE:
		p.advance()

		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}

		return &ast.ContinueStmt{Span: tok.Span}, nil
	case token.KEYWORD_BREAK:
		p.advance()

		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}

		return &ast.BreakStmt{Span: tok.Span}, nil
	}

	if p.startsType() {
		return p.parseDeclOrExprStatement()
	}

	return p.parseExprStatement()
}

func (p *Parser) parseDeclOrExprStatement() (ast.Stmt, error) {
	anchor := p.index

	decl, err := p.tryParseVarDecl()
	if err == nil {
		return decl, nil
	}

	p.index = anchor

	return p.parseExprStatement()
}

func (p *Parser) tryParseVarDecl() (ast.Stmt, error) {
	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if p.match(token.LBRACKET) {
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}

		typ.Stars++
	}

	var init ast.Expr

	if p.match(token.ASSIGN) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.VarDecl{Type: typ, Name: nameTok.Text, Init: init, Span: typ.Span}, nil
}

func (p *Parser) parseExprStatement() (ast.Stmt, error) {
	tok := p.current()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{Expr: expr, Span: tok.Span}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	tok, err := p.expect(token.KEYWORD_RETURN)
	if err != nil {
		return nil, err
	}

	if p.match(token.SEMICOLON) {
		return &ast.ReturnStmt{Span: tok.Span}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Expr: expr, Span: tok.Span}, nil
}

func (p *Parser) parseIfElse() (ast.Stmt, error) {
	tok, err := p.expect(token.KEYWORD_IF)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Cond: cond, Then: then, Span: tok.Span}

	if p.match(token.KEYWORD_ELSE) {
		if p.current().Kind == token.KEYWORD_IF {
			elseStmt, err := p.parseIfElse()
			if err != nil {
				return nil, err
			}

			stmt.Else = elseStmt
		} else {
			elseStmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}

			stmt.Else = elseStmt
		}
	}

	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	tok, err := p.expect(token.KEYWORD_WHILE)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Cond: cond, Body: body, Span: tok.Span}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	tok, err := p.expect(token.KEYWORD_FOR)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	init, err := p.parseForInit()
	if err != nil {
		return nil, err
	}

	var cond ast.Expr

	if p.current().Kind != token.SEMICOLON {
		cond, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}

	var post ast.Expr

	if p.current().Kind != token.RPAREN {
		post, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body, Span: tok.Span}, nil
}

// parseForInit parses the `for (` init-statement, which is itself a full
// statement (declaration or expression) terminated by `;`, per the grammar.
func (p *Parser) parseForInit() (ast.Stmt, error) {
	if p.current().Kind == token.SEMICOLON {
		tok := p.advance()
		return &ast.EmptyStmt{Span: tok.Span}, nil
	}

	if p.startsType() {
		return p.parseDeclOrExprStatement()
	}

	return p.parseExprStatement()
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// precedence climbing over six binary-operator classes, low to high.
var precedence = map[token.Kind]int{
	token.OR_OR:  1,
	token.AND_AND: 2,
	token.EQ:     3,
	token.NE:     3,
	token.LT:     4,
	token.LE:     4,
	token.GT:     4,
	token.GE:     4,
	token.PLUS:   5,
	token.MINUS:  5,
	token.STAR:   6,
	token.SLASH:  6,
	token.PERCENT: 6,
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.OR_OR:   ast.OrOr,
	token.AND_AND: ast.AndAnd,
	token.EQ:      ast.Eq,
	token.NE:      ast.Ne,
	token.LT:      ast.Lt,
	token.LE:      ast.Le,
	token.GT:      ast.Gt,
	token.GE:      ast.Ge,
	token.PLUS:    ast.Add,
	token.MINUS:   ast.Sub,
	token.STAR:    ast.Mul,
	token.SLASH:   ast.Div,
	token.PERCENT:  ast.Mod,
}

// parseExpression parses a full expression, including the `=` post-rule:
// once a binary-precedence expression has been parsed, if `=` follows, it
// is recorded as an assignment with that expression as the lvalue. This
// makes `=` right-associative and lowest of all.
func (p *Parser) parseExpression() (ast.Expr, error) {
	lhs, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	if p.current().Kind == token.ASSIGN {
		tok := p.advance()

		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		return &ast.Assignment{LHS: lhs, RHS: rhs, Span: tok.Span}, nil
	}

	return lhs, nil
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		kind := p.current().Kind

		prec, ok := precedence[kind]
		if !ok || prec < minPrec {
			return lhs, nil
		}

		tok := p.advance()

		rhs, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}

		lhs = &ast.Binary{Op: binaryOps[kind], LHS: lhs, RHS: rhs, Span: tok.Span}
	}
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.MINUS: ast.Neg,
	token.BANG:  ast.Not,
	token.TILDE: ast.BitNot,
	token.STAR:  ast.Deref,
	token.AMP:   ast.AddrOf,
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.current()

	if op, ok := unaryOps[tok.Kind]; ok {
		p.advance()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &ast.Unary{Op: op, Expr: operand, Span: tok.Span}, nil
	}

	if tok.Kind == token.LPAREN {
		if cast, ok, err := p.tryParseCast(); ok || err != nil {
			return cast, err
		}
	}

	return p.parsePostfix()
}

// tryParseCast attempts to parse `( TypeExpr ) factor`. If the parenthesized
// content does not form a type, or nothing that can begin a factor follows
// the closing paren, it rewinds and reports ok=false so the caller falls
// back to a parenthesized expression.
func (p *Parser) tryParseCast() (ast.Expr, bool, error) {
	anchor := p.index
	tok := p.current()

	p.advance() // consume '('

	typ, err := p.parseTypeExpr()
	if err != nil {
		p.index = anchor
		return nil, false, nil
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		p.index = anchor
		return nil, false, nil
	}

	if !p.canStartFactor() {
		p.index = anchor
		return nil, false, nil
	}

	operand, err := p.parseUnary()
	if err != nil {
		return nil, true, err
	}

	return &ast.Cast{Type: typ, Expr: operand, Span: tok.Span}, true, nil
}

func (p *Parser) canStartFactor() bool {
	switch p.current().Kind {
	case token.NUMBER, token.CHAR_LITERAL, token.STRING_LITERAL, token.IDENTIFIER,
		token.LPAREN, token.KEYWORD_SIZEOF, token.MINUS, token.BANG, token.TILDE,
		token.STAR, token.AMP, token.LBRACE:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()

		switch tok.Kind {
		case token.LBRACKET:
			p.advance()

			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}

			expr = &ast.Index{Operand: expr, Index: idx, Span: tok.Span}
		case token.DOT:
			p.advance()

			fieldTok, err := p.expect(token.IDENTIFIER)
			if err != nil {
				return nil, err
			}

			expr = &ast.FieldAccess{Operand: expr, Field: fieldTok.Text, Span: tok.Span}
		case token.ARROW:
			p.advance()

			fieldTok, err := p.expect(token.IDENTIFIER)
			if err != nil {
				return nil, err
			}

			expr = &ast.ArrowAccess{Operand: expr, Field: fieldTok.Text, Span: tok.Span}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.current()

	switch tok.Kind {
	case token.NUMBER:
		p.advance()

		var value int64

		for _, c := range tok.Text {
			value = value*10 + int64(c-'0')
		}

		return &ast.IntLiteral{Value: value, Span: tok.Span}, nil
	case token.CHAR_LITERAL:
		p.advance()
		return &ast.CharLiteral{Value: parseCharLiteral(tok.Text), Span: tok.Span}, nil
	case token.STRING_LITERAL:
		p.advance()
		return &ast.StringLiteral{Value: parseStringLiteral(tok.Text), Span: tok.Span}, nil
	case token.KEYWORD_SIZEOF:
		p.advance()

		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}

		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}

		return &ast.SizeOf{Expr: inner, Span: tok.Span}, nil
	case token.LPAREN:
		p.advance()

		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}

		return inner, nil
	case token.LBRACE:
		return p.parseBraceLiteral()
	case token.IDENTIFIER:
		p.advance()

		if p.current().Kind == token.LPAREN {
			return p.parseCallRest(tok)
		}

		return &ast.Identifier{Name: tok.Text, Span: tok.Span}, nil
	default:
		return nil, p.errorf(tok, "expected an expression, found %s %q", tok.Kind, tok.Text)
	}
}

func (p *Parser) parseCallRest(nameTok token.Token) (ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Expr

	for p.current().Kind != token.RPAREN {
		if len(args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return &ast.Call{Name: nameTok.Text, Args: args, Span: nameTok.Span}, nil
}

// parseBraceLiteral distinguishes a struct literal (`{ .field = expr, ... }`)
// from an array literal (`{ e0, e1, ... }`) by whether the first entry
// starts with `.`.
func (p *Parser) parseBraceLiteral() (ast.Expr, error) {
	startTok, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}

	if p.current().Kind == token.RBRACE {
		p.advance()
		return &ast.ArrayLiteral{Span: startTok.Span}, nil // empty; rejected by the resolver
	}

	if p.current().Kind == token.DOT {
		return p.parseStructLiteralRest(startTok)
	}

	return p.parseArrayLiteralRest(startTok)
}

func (p *Parser) parseStructLiteralRest(startTok token.Token) (ast.Expr, error) {
	var fields []ast.StructLiteralField

	for p.current().Kind != token.RBRACE {
		if len(fields) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		if _, err := p.expect(token.DOT); err != nil {
			return nil, err
		}

		fieldTok, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.ASSIGN); err != nil {
			return nil, err
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		fields = append(fields, ast.StructLiteralField{Field: fieldTok.Text, Value: value})
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return &ast.StructLiteral{Fields: fields, Span: startTok.Span}, nil
}

func (p *Parser) parseArrayLiteralRest(startTok token.Token) (ast.Expr, error) {
	var elements []ast.Expr

	for p.current().Kind != token.RBRACE {
		if len(elements) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}

		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		elements = append(elements, elem)
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return &ast.ArrayLiteral{Elements: elements, Span: startTok.Span}, nil
}

func parseCharLiteral(text string) byte {
	// text includes the surrounding quotes, e.g. "'a'" or "'\\n'".
	inner := text[1 : len(text)-1]
	if len(inner) == 2 && inner[0] == '\\' {
		switch inner[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case '0':
			return 0
		default:
			return inner[1]
		}
	}

	return inner[0]
}

func parseStringLiteral(text string) string {
	inner := text[1 : len(text)-1]

	var b []byte

	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++

			switch inner[i] {
			case 'n':
				b = append(b, '\n')
			case 't':
				b = append(b, '\t')
			default:
				b = append(b, inner[i])
			}

			continue
		}

		b = append(b, inner[i])
	}

	return string(b)
}
