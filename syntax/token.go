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

// Package syntax defines the persistent ("green") syntax tree shared by every
// language in this module, and the [Builder] that reconciles a printed token
// stream with an original tree.
//
// Trees are immutable once built. Sub-trees are shared by pointer, so two
// trees that contain the same *[Node] agree on everything beneath it without
// needing to look. The tree is lossless: concatenating the full text of every
// token in pre-order reproduces the source byte for byte.
package syntax

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is the kind of a [Node] or [Token].
//
// Kinds below [KindUser] are reserved; languages number their own kinds
// starting at KindUser.
type Kind uint16

const (
	KindNone Kind = iota
	// KindEOF is the kind of a zero-width token that carries trivia after the
	// last real token of a file.
	KindEOF
	// KindSpacer is the kind of a zero-width token that carries trivia which
	// precedes a node that was spliced in verbatim.
	KindSpacer

	// KindUser is the first kind available to languages.
	KindUser Kind = 16
)

// KindNamer returns a human-readable name for a kind; used for debugging
// output.
type KindNamer func(Kind) string

// Name returns a kind's name using names, falling back to a numeric form.
//
// names may be nil.
func (k Kind) Name(names KindNamer) string {
	switch k {
	case KindNone:
		return "None"
	case KindEOF:
		return "EOF"
	case KindSpacer:
		return "Spacer"
	}
	if names != nil {
		if s := names(k); s != "" {
			return s
		}
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// TriviaKind is the kind of a [Trivia].
type TriviaKind byte

const (
	TriviaWhitespace TriviaKind = iota + 1 // Spaces and tabs, never newlines.
	TriviaNewline                          // Exactly one "\n".
	TriviaComment                          // A comment or other non-syntactic text.
)

// String implements [fmt.Stringer].
func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "whitespace"
	case TriviaNewline:
		return "newline"
	case TriviaComment:
		return "comment"
	default:
		return fmt.Sprintf("TriviaKind(%d)", byte(k))
	}
}

// Trivia is text attached to a token that has no syntactic meaning.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// Token is a leaf of the syntax tree.
//
// Tokens are shared by pointer between trees and must not be modified after
// they have been added to a [Node].
type Token struct {
	Kind Kind
	Text string

	Leading, Trailing []Trivia
}

// NewToken returns a token without trivia.
func NewToken(kind Kind, text string) *Token {
	return &Token{Kind: kind, Text: text}
}

// Width returns the length in bytes of this token's full text.
func (t *Token) Width() int {
	n := len(t.Text)
	for _, tr := range t.Leading {
		n += len(tr.Text)
	}
	for _, tr := range t.Trailing {
		n += len(tr.Text)
	}
	return n
}

// Offset returns the offset of Text relative to the start of the token's
// leading trivia.
func (t *Token) Offset() int {
	var n int
	for _, tr := range t.Leading {
		n += len(tr.Text)
	}
	return n
}

// FullText returns the token's text including its trivia.
func (t *Token) FullText() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t *Token) writeTo(b *strings.Builder) {
	for _, tr := range t.Leading {
		b.WriteString(tr.Text)
	}
	b.WriteString(t.Text)
	for _, tr := range t.Trailing {
		b.WriteString(tr.Text)
	}
}

// Equal returns whether two tokens have the same kind, text and trivia.
func (t *Token) Equal(u *Token) bool {
	if t == u {
		return true
	}
	return t.Kind == u.Kind && t.Text == u.Text &&
		slices.Equal(t.Leading, u.Leading) &&
		slices.Equal(t.Trailing, u.Trailing)
}

// Comments returns the text of each comment in this token's leading trivia.
func (t *Token) Comments() []string {
	var out []string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaComment {
			out = append(out, tr.Text)
		}
	}
	return out
}
