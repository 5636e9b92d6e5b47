// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lit implements a small literal-data language, used to exercise the
// formatter end to end.
//
// A lit document is a sequence of values. A value is a number, a string in
// single or double quotes, an identifier, an array of values in brackets, or
// an object of key-value members in braces. Commas separate elements, and a
// trailing comma is allowed. Comments are either // line comments or
// /* block */ comments.
//
//	// A document with two values.
//	[1, 'two', three]
//	{name: "lit", tags: [a, b,]}
package lit

import (
	"fmt"
	"strings"

	"github.com/bufbuild/reprint/format"
	"github.com/bufbuild/reprint/printer"
	"github.com/bufbuild/reprint/syntax"
)

// Node kinds.
const (
	KindProgram = syntax.KindUser + iota
	KindArray
	KindObject
	KindMember
	KindLiteral
)

// Token kinds.
const (
	KindNumber = KindLiteral + 1 + iota
	KindString
	KindIdent
	KindLBracket
	KindRBracket
	KindLBrace
	KindRBrace
	KindComma
	KindColon
)

var names = map[syntax.Kind]string{
	KindProgram: "Program",
	KindArray:   "Array",
	KindObject:  "Object",
	KindMember:  "Member",
	KindLiteral: "Literal",

	KindNumber:   "Number",
	KindString:   "String",
	KindIdent:    "Ident",
	KindLBracket: "LBracket",
	KindRBracket: "RBracket",
	KindLBrace:   "LBrace",
	KindRBrace:   "RBrace",
	KindComma:    "Comma",
	KindColon:    "Colon",
}

// Names is a [syntax.KindNamer] for lit kinds.
func Names(k syntax.Kind) string {
	return names[k]
}

// Error is a syntax error.
type Error struct {
	Offset       int
	Line, Column int // 1-indexed; the column counts bytes.
	Message      string
}

func newError(src string, offset int, format string, args ...any) *Error {
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndexByte(before, '\n')
	return &Error{
		Offset:  offset,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements [error].
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parse parses a lit document into a lossless tree.
func Parse(src string) (*syntax.Node, error) {
	tokens, offsets, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: tokens, offsets: offsets}
	return p.program()
}

// Rule returns the formatting rule for lit documents.
//
// A rule carries state while a document is built, so each call to
// [format.Format] needs its own.
func Rule() format.Rule {
	return new(rules)
}

// Format parses and formats a lit document.
func Format(src string, options printer.Options) (*format.Result, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return format.Format(root, Rule(), options)
}
