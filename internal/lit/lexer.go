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

package lit

import (
	"strings"

	"github.com/bufbuild/reprint/syntax"
)

// lexer breaks a file into tokens.
//
// Trivia always attaches to the token after it; whatever trivia follows the
// last token goes to an EOF token, which is always produced.
type lexer struct {
	src    string
	cursor int

	trivia  []syntax.Trivia
	tokens  []*syntax.Token
	offsets []int
}

// lex lexes src. offsets holds the offset of each token's text.
func lex(src string) (tokens []*syntax.Token, offsets []int, err error) {
	l := &lexer{src: src}
	for !l.Done() {
		start := l.cursor
		c := l.Pop()

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.TakeWhile(func(c byte) bool { return c == ' ' || c == '\t' || c == '\r' })
			l.trivia = append(l.trivia, syntax.Trivia{Kind: syntax.TriviaWhitespace, Text: l.src[start:l.cursor]})

		case c == '\n':
			l.trivia = append(l.trivia, syntax.Trivia{Kind: syntax.TriviaNewline, Text: "\n"})

		case c == '/' && l.Peek() == '/':
			// The newline belongs to the next trivia item.
			l.TakeWhile(func(c byte) bool { return c != '\n' })
			l.comment(start)

		case c == '/' && l.Peek() == '*':
			l.cursor++
			if !l.SeekInclusive("*/") {
				return nil, nil, newError(src, start, "unterminated block comment")
			}
			l.comment(start)

		case c == '"' || c == '\'':
			if !l.quoted(c) {
				return nil, nil, newError(src, start, "unterminated string")
			}
			l.push(start, KindString)

		case isDigit(c) || (c == '-' && isDigit(l.Peek())):
			prev := c
			l.TakeWhile(func(c byte) bool {
				ok := isDigit(c) || isLetter(c) || c == '.' ||
					((c == '+' || c == '-') && (prev == 'e' || prev == 'E'))
				prev = c
				return ok
			})
			l.push(start, KindNumber)

		case isLetter(c):
			l.TakeWhile(func(c byte) bool { return isLetter(c) || isDigit(c) || c == '-' })
			l.push(start, KindIdent)

		default:
			kind, ok := punct[c]
			if !ok {
				return nil, nil, newError(src, start, "unexpected character %q", rune(c))
			}
			l.push(start, kind)
		}
	}

	l.push(l.cursor, syntax.KindEOF)
	return l.tokens, l.offsets, nil
}

var punct = map[byte]syntax.Kind{
	'[': KindLBracket,
	']': KindRBracket,
	'{': KindLBrace,
	'}': KindRBrace,
	',': KindComma,
	':': KindColon,
}

// Done returns whether the whole file has been consumed.
func (l *lexer) Done() bool {
	return l.cursor >= len(l.src)
}

// Peek returns the next byte, or zero at the end of the file.
func (l *lexer) Peek() byte {
	if l.Done() {
		return 0
	}
	return l.src[l.cursor]
}

// Pop consumes the next byte.
func (l *lexer) Pop() byte {
	c := l.Peek()
	l.cursor++
	return c
}

// TakeWhile consumes bytes while they match f.
func (l *lexer) TakeWhile(f func(byte) bool) {
	for !l.Done() && f(l.Peek()) {
		l.cursor++
	}
}

// SeekInclusive seeks past the next occurrence of needle.
func (l *lexer) SeekInclusive(needle string) bool {
	idx := strings.Index(l.src[l.cursor:], needle)
	if idx < 0 {
		return false
	}
	l.cursor += idx + len(needle)
	return true
}

// quoted consumes the rest of a string that started with quote.
func (l *lexer) quoted(quote byte) bool {
	for !l.Done() {
		switch l.Pop() {
		case '\\':
			l.cursor++
		case quote:
			return true
		case '\n':
			return false
		}
	}
	return false
}

func (l *lexer) comment(start int) {
	l.trivia = append(l.trivia, syntax.Trivia{Kind: syntax.TriviaComment, Text: l.src[start:l.cursor]})
}

func (l *lexer) push(start int, kind syntax.Kind) {
	l.tokens = append(l.tokens, &syntax.Token{
		Kind:    kind,
		Text:    l.src[start:l.cursor],
		Leading: l.trivia,
	})
	l.offsets = append(l.offsets, start)
	l.trivia = nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
