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
	"github.com/bufbuild/reprint/syntax"
)

type parser struct {
	src     string
	tokens  []*syntax.Token
	offsets []int
	cursor  int
}

func (p *parser) peek() *syntax.Token {
	return p.tokens[p.cursor]
}

func (p *parser) pop() *syntax.Token {
	tok := p.tokens[p.cursor]
	if tok.Kind != syntax.KindEOF {
		p.cursor++
	}
	return tok
}

func (p *parser) expect(kind syntax.Kind, what string) (*syntax.Token, error) {
	if p.peek().Kind != kind {
		return nil, p.unexpected(what)
	}
	return p.pop(), nil
}

func (p *parser) unexpected(what string) error {
	tok := p.peek()
	if tok.Kind == syntax.KindEOF {
		return newError(p.src, p.offsets[p.cursor], "expected %s, found end of file", what)
	}
	return newError(p.src, p.offsets[p.cursor], "expected %s, found %q", what, tok.Text)
}

// program parses a whole file.
//
// The EOF token is only kept if it carries trivia, so that the tree of an
// empty file has no tokens.
func (p *parser) program() (*syntax.Node, error) {
	var children []syntax.Child
	for p.peek().Kind != syntax.KindEOF {
		value, err := p.value()
		if err != nil {
			return nil, err
		}
		children = append(children, syntax.NodeChild(value))
	}
	if eof := p.pop(); len(eof.Leading) > 0 {
		children = append(children, syntax.TokenChild(eof))
	}
	return syntax.NewNode(KindProgram, children...), nil
}

func (p *parser) value() (*syntax.Node, error) {
	switch p.peek().Kind {
	case KindNumber, KindString, KindIdent:
		return syntax.NewNode(KindLiteral, syntax.TokenChild(p.pop())), nil
	case KindLBracket:
		return p.list(KindArray, KindRBracket, "value or ]", p.value)
	case KindLBrace:
		return p.list(KindObject, KindRBrace, "key or }", p.member)
	default:
		return nil, p.unexpected("value")
	}
}

// list parses a delimited, comma-separated list whose opening delimiter is
// the next token.
func (p *parser) list(kind, closer syntax.Kind, what string, item func() (*syntax.Node, error)) (*syntax.Node, error) {
	children := []syntax.Child{syntax.TokenChild(p.pop())}
	for p.peek().Kind != closer {
		switch p.peek().Kind {
		case KindComma, syntax.KindEOF:
			return nil, p.unexpected(what)
		}

		node, err := item()
		if err != nil {
			return nil, err
		}
		children = append(children, syntax.NodeChild(node))

		switch p.peek().Kind {
		case KindComma:
			children = append(children, syntax.TokenChild(p.pop()))
		case closer:
		default:
			return nil, p.unexpected(", or " + closers[closer])
		}
	}
	children = append(children, syntax.TokenChild(p.pop()))
	return syntax.NewNode(kind, children...), nil
}

var closers = map[syntax.Kind]string{
	KindRBracket: "]",
	KindRBrace:   "}",
}

func (p *parser) member() (*syntax.Node, error) {
	key := p.peek()
	if key.Kind != KindString && key.Kind != KindIdent {
		return nil, p.unexpected("key")
	}
	p.pop()

	colon, err := p.expect(KindColon, ":")
	if err != nil {
		return nil, err
	}
	value, err := p.value()
	if err != nil {
		return nil, err
	}
	return syntax.NewNode(KindMember,
		syntax.TokenChild(key),
		syntax.TokenChild(colon),
		syntax.NodeChild(value),
	), nil
}
