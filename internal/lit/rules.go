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

	"github.com/bufbuild/reprint/format"
	"github.com/bufbuild/reprint/ir"
	"github.com/bufbuild/reprint/syntax"
)

// rules formats lit documents.
//
// Top-level values go one per line, keeping at most one blank line between
// them. Arrays and objects stay on one line if they fit, and otherwise put
// each element on its own indented line. An array whose last element is
// itself a container may instead hug that element, breaking only inside it.
//
// Comments are kept in front of the token they were attached to. A container
// with a comment anywhere inside it is always broken.
type rules struct {
	// Set by the program rule for the first token of each top-level value,
	// which is where blank lines are kept.
	top, start bool
}

// Format implements [format.Rule].
func (r *rules) Format(ctx *format.Context, node *syntax.Node) {
	switch node.Kind() {
	case KindProgram:
		r.program(ctx, node)
	case KindArray, KindObject:
		r.container(ctx, node, false)
	case KindMember:
		r.member(ctx, node)
	case KindLiteral:
		r.token(ctx, node.Child(0).Token(), false)
	default:
		for _, c := range node.Children() {
			if c.IsNode() {
				ctx.Push(ir.Verbatim(c.Node()))
			} else {
				r.token(ctx, c.Token(), false)
			}
		}
	}
}

func (r *rules) program(ctx *format.Context, node *syntax.Node) {
	var values int
	for _, c := range node.Children() {
		if !c.IsNode() {
			// The EOF token; only its comments are printed.
			eof := c.Token()
			if !hasComments(eof) {
				continue
			}
			if values > 0 {
				ctx.Push(ir.HardLine())
			}
			comments(ctx, eof, true, values == 0, false)
			continue
		}

		if values > 0 {
			ctx.Push(ir.HardLine())
		}
		r.top, r.start = true, values == 0
		ctx.Child(c.Node())
		values++
	}
}

// container formats an array or object. If expand is set, it is broken
// regardless of whether it fits.
func (r *rules) container(ctx *format.Context, node *syntax.Node, expand bool) {
	open := node.Child(0).Token()
	closer := node.Child(node.Len() - 1).Token()

	var items []*syntax.Node
	var commas []*syntax.Token
	for i := 1; i < node.Len()-1; i++ {
		if c := node.Child(i); c.IsNode() {
			items = append(items, c.Node())
		} else {
			commas = append(commas, c.Token())
		}
	}

	// A trailing comma is dropped, but not its comments.
	var trailing *syntax.Token
	if len(items) > 0 && len(commas) == len(items) {
		trailing = commas[len(commas)-1]
	}

	r.token(ctx, open, false)

	commented := hasNestedComments(node)
	if len(items) == 0 && !commented {
		ctx.Push(ir.Copy(closer))
		return
	}

	last := len(items) - 1
	if !expand && !commented && node.Kind() == KindArray && isContainer(items[last]) {
		r.hug(ctx, items, commas, closer)
		return
	}

	group := ctx.Group
	if expand || commented {
		group = ctx.ExpandedGroup
	}
	group(func(*ir.Builder) {
		ctx.Indent(func(*ir.Builder) {
			for i, item := range items {
				if i == 0 {
					ctx.Push(ir.SoftLine())
				} else {
					r.comma(ctx, commas[i-1])
				}
				ctx.Child(item)
			}

			// Comments before the closing delimiter go on their own lines.
			for _, tok := range []*syntax.Token{trailing, closer} {
				if tok == nil {
					continue
				}
				for _, t := range tok.Leading {
					if t.Kind == syntax.TriviaComment {
						ctx.Push(ir.HardLine(), ir.Text(t.Text))
					}
				}
			}
		})
		ctx.Push(ir.SoftLine(), ir.Copy(closer))
	})
}

// hug formats an array whose last element is a container, as the first of
//
//	[a, b, {c: d}]
//
//	[a, b, {
//	  c: d
//	}]
//
//	[
//	  a,
//	  b,
//	  {c: d}
//	]
//
// that fits.
func (r *rules) hug(ctx *format.Context, items []*syntax.Node, commas []*syntax.Token, closer *syntax.Token) {
	last := len(items) - 1

	// Everything but the last element prints the same way in every variant,
	// so it is only built once.
	shared := make([]ir.Element, 0, 2*last)
	for i, item := range items[:last] {
		shared = append(shared,
			ctx.Arena.Intern(ctx.Capture(func() { ctx.Child(item) })...),
			ctx.Arena.Intern(ir.Copy(commas[i]), ir.SoftLineOrSpace()),
		)
	}
	tail := ctx.Arena.Intern(ctx.Capture(func() { ctx.Child(items[last]) })...)
	hugged := ctx.Capture(func() {
		ctx.Node(items[last], func(*ir.Builder) {
			r.container(ctx, items[last], true)
		})
	})

	flat := ir.Build(func(b *ir.Builder) {
		b.Push(shared...)
		b.Push(tail, ir.Copy(closer))
	})
	hug := ir.Build(func(b *ir.Builder) {
		b.Push(shared...)
		b.Push(hugged...)
		b.Push(ir.Copy(closer))
	})
	vertical := ir.Build(func(b *ir.Builder) {
		b.Indent(func(b *ir.Builder) {
			b.Push(ir.SoftLine())
			b.Push(shared...)
			b.Push(tail)
		})
		b.Push(ir.SoftLine(), ir.Copy(closer))
	})
	ctx.Push(ir.BestFitting(flat, hug, vertical))
}

func (r *rules) member(ctx *format.Context, node *syntax.Node) {
	r.token(ctx, node.Child(0).Token(), false)
	r.token(ctx, node.Child(1).Token(), true)
	ctx.Push(ir.Space())
	ctx.Child(node.Child(2).Node())
}

// comma prints a separator between two elements.
func (r *rules) comma(ctx *format.Context, tok *syntax.Token) {
	r.token(ctx, tok, true)
	ctx.Push(ir.SoftLineOrSpace())
}

// token prints a token along with the comments before it. If space is set,
// comments on the same line as the preceding token are separated from it by
// a space.
func (r *rules) token(ctx *format.Context, tok *syntax.Token, space bool) {
	top, start := r.top, r.start
	r.top, r.start = false, false

	comments(ctx, tok, top, start, space)
	if tok.Kind == KindString {
		ctx.Push(ir.TokenAt(tok, normalizeQuotes(tok.Text)))
		return
	}
	ctx.Push(ir.Copy(tok))
}

// comments prints the comments in a token's leading trivia, each followed by
// the kind of break that followed it in the source.
//
// If top is set, a blank line is kept before each comment and before the
// token itself wherever the source had at least one, except at the start of
// the file. The comments of an EOF token are not followed by anything.
func comments(ctx *format.Context, tok *syntax.Token, top, start, space bool) {
	var newlines int
	var prev string
	for _, t := range tok.Leading {
		switch t.Kind {
		case syntax.TriviaNewline:
			newlines++
			continue
		case syntax.TriviaComment:
		default:
			continue
		}

		if prev == "" {
			if top && !start && newlines > 1 {
				ctx.Push(ir.HardLine())
			}
			if space && newlines == 0 {
				ctx.Push(ir.Space())
			}
		} else {
			separate(ctx, prev, newlines, top)
		}
		ctx.Push(ir.Text(t.Text))
		prev, newlines = t.Text, 0
	}

	switch {
	case prev == "":
		if top && !start && newlines > 1 {
			ctx.Push(ir.HardLine())
		}
	case tok.Kind != syntax.KindEOF:
		separate(ctx, prev, newlines, top)
	}
}

// separate prints the break after the comment prev, given how many newlines
// came after it.
func separate(ctx *format.Context, prev string, newlines int, top bool) {
	if newlines == 0 && !strings.HasPrefix(prev, "//") {
		ctx.Push(ir.Space())
		return
	}
	ctx.Push(ir.HardLine())
	if top && newlines > 1 {
		ctx.Push(ir.HardLine())
	}
}

// normalizeQuotes rewrites a single-quoted string with double quotes, unless
// that would require escaping.
func normalizeQuotes(text string) string {
	if len(text) < 2 || text[0] != '\'' || strings.Contains(text, `"`) {
		return text
	}

	var b strings.Builder
	b.WriteByte('"')
	body := text[1 : len(text)-1]
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			if body[i] != '\'' {
				b.WriteByte(c)
			}
			c = body[i]
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

func isContainer(node *syntax.Node) bool {
	return node.Kind() == KindArray || node.Kind() == KindObject
}

func hasComments(tok *syntax.Token) bool {
	return len(tok.Comments()) > 0
}

// hasNestedComments returns whether any token of node after the first has
// comments.
func hasNestedComments(node *syntax.Node) bool {
	first := true
	for tok := range node.Tokens() {
		if !first && hasComments(tok) {
			return true
		}
		first = false
	}
	return false
}
