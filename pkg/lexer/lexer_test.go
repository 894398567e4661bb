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
package lexer

import (
	"testing"

	"github.com/minic-lang/minic/pkg/token"
	"github.com/minic-lang/minic/pkg/util/assert"
)

func kinds(t *testing.T, src string) []token.Kind {
	tokens, err := Tokenize("test.c", []rune(src))
	if err != nil {
		t.Fatalf("unexpected lexer error: %v", err)
	}

	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}

	return out
}

func TestLexerDeclaration(t *testing.T) {
	got := kinds(t, "int x = 1;")
	want := []token.Kind{token.KEYWORD_INT, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF}

	assert.Equal(t, len(want), len(got))

	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestLexerOperators(t *testing.T) {
	got := kinds(t, "a <= b && c != d")
	want := []token.Kind{
		token.IDENTIFIER, token.LE, token.IDENTIFIER, token.AND_AND,
		token.IDENTIFIER, token.NE, token.IDENTIFIER, token.EOF,
	}

	assert.Equal(t, len(want), len(got))

	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestLexerComments(t *testing.T) {
	got := kinds(t, "int x; // trailing\n/* block */ int y;")
	want := []token.Kind{
		token.KEYWORD_INT, token.IDENTIFIER, token.SEMICOLON,
		token.KEYWORD_INT, token.IDENTIFIER, token.SEMICOLON, token.EOF,
	}

	assert.Equal(t, len(want), len(got))

	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestLexerStructArrow(t *testing.T) {
	got := kinds(t, "p->field")
	want := []token.Kind{token.IDENTIFIER, token.ARROW, token.IDENTIFIER, token.EOF}

	assert.Equal(t, len(want), len(got))

	for i := range want {
		assert.Equal(t, want[i], got[i])
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	if _, err := Tokenize("test.c", []rune(`"abc`)); err == nil {
		t.Fatalf("expected lexical error for unterminated string")
	}
}
