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
package source

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Span represents a contiguous slice of the original string.  Instead of
// representing this as a string slice, however, it is useful to retain the
// physical indices.  This allows us to do certain things, such as determine the
// enclosing line, etc.
type Span struct {
	// The first character of this span in the original string.
	start int
	// One past the final character of this span in the original string.
	end int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}

	return Span{start, end}
}

// Start returns the starting index of this span in the original string.
func (p *Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original string.
func (p *Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span in the original
// string.
func (p *Span) Length() int {
	return p.end - p.start
}

// Map maps terms from an AST to slices of their originating string.  This
// is important for error handling when we wish to highlight exactly where, in
// the original source file, a given error has arisen.  Unlike the teacher's
// multi-file Maps aggregator, a compilation unit here is always a single
// file, so there is no need for a collection-of-maps layer.
type Map[T comparable] struct {
	// Maps a given AST object to a span in the original string.
	mapping map[T]Span
	// Enclosing source file
	srcfile File
}

// NewSourceMap constructs an initially empty source map for a given string.
func NewSourceMap[T comparable](srcfile File) *Map[T] {
	mapping := make(map[T]Span)
	return &Map[T]{mapping, srcfile}
}

// Source returns the underlying source file on which this map operates.
func (p *Map[T]) Source() File {
	return p.srcfile
}

// Put registers a new AST item with a given span.  Note, if the item exists
// already, then it will panic.
func (p *Map[T]) Put(item T, span Span) {
	if _, ok := p.mapping[item]; ok {
		panic(fmt.Sprintf("source map key already exists: %v", any(item)))
	}
	// Assign it
	p.mapping[item] = span
}

// Has checks whether a given item is contained within this source map.
func (p *Map[T]) Has(item T) bool {
	_, ok := p.mapping[item]
	return ok
}

// Get determines the span associated with a given AST item extract from the
// original text.  Note, if the item is not registered with this source map,
// then it will panic.
func (p *Map[T]) Get(item T) Span {
	if s, ok := p.mapping[item]; ok {
		return s
	}

	panic(fmt.Sprintf("invalid source map key: %v", any(item)))
}

// SyntaxError constructs a syntax error for a given node registered with this
// source map.
func (p *Map[T]) SyntaxError(node T, msg string) *SyntaxError {
	span := p.Get(node)
	return p.srcfile.SyntaxError(span, msg)
}

// Render produces a human-readable, terminal-width-aware rendering of a
// syntax error: the offending line, a caret underneath the offending span,
// and the message.  Width is clamped to the detected terminal width when
// stderr is a terminal, falling back to 80 columns otherwise.
func Render(err *SyntaxError) string {
	width := 80

	if term.IsTerminal(int(os.Stderr.Fd())) {
		if w, _, e := term.GetSize(int(os.Stderr.Fd())); e == nil && w > 0 {
			width = w
		}
	}

	line := err.FirstEnclosingLine()
	text := line.String()
	col := err.Span().Start() - line.Start()

	if len(text) > width {
		text = text[:width]
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s:%d:%d: %s\n", err.SourceFile().Filename(), line.Number(), col+1, err.Message())
	b.WriteString(text)
	b.WriteByte('\n')

	if col >= 0 && col <= len(text) {
		b.WriteString(strings.Repeat(" ", col))
		b.WriteByte('^')
	}

	return b.String()
}
