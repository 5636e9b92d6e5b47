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

package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/reprint/format"
	"github.com/bufbuild/reprint/ir"
	"github.com/bufbuild/reprint/printer"
	"github.com/bufbuild/reprint/syntax"
)

const (
	kindList = syntax.KindUser + iota
	kindWord
)

func word(text string, leading ...syntax.Trivia) *syntax.Token {
	return &syntax.Token{Kind: kindWord, Text: text, Leading: leading}
}

func ws(text string) syntax.Trivia {
	return syntax.Trivia{Kind: syntax.TriviaWhitespace, Text: text}
}

func nl() syntax.Trivia {
	return syntax.Trivia{Kind: syntax.TriviaNewline, Text: "\n"}
}

// words prints a list of words separated by spaces, breaking onto indented
// lines if they do not fit. Nested lists are parenthesized.
var words = format.RuleFunc(func(ctx *format.Context, node *syntax.Node) {
	nested := node.Kind() == kindList && ctx.Len() > 1
	if nested {
		ctx.Push(ir.Text("("))
	}
	ctx.Group(func(*ir.Builder) {
		ctx.Indent(func(*ir.Builder) {
			var n int
			for _, c := range node.Children() {
				if c.Kind() == syntax.KindEOF {
					continue
				}
				if n > 0 {
					ctx.Push(ir.SoftLineOrSpace())
				}
				n++
				if c.IsNode() {
					ctx.Child(c.Node())
				} else {
					ctx.Push(ir.Copy(c.Token()))
				}
			}
		})
	})
	if nested {
		ctx.Push(ir.Text(")"))
	}
})

func TestFormat(t *testing.T) {
	t.Parallel()

	a, b, c := word("a"), word("b", ws(" ")), word("c", ws("  "), nl())
	root := syntax.NewNode(kindList, syntax.TokenChild(a), syntax.TokenChild(b), syntax.TokenChild(c))
	require.Equal(t, "a b  \nc", root.Text())

	result, err := format.Format(root, words, printer.Options{})
	require.NoError(t, err)
	assert.Equal(t, "a b c\n", result.Text)
	assert.Equal(t, result.Text, result.Tree.Text())
	assert.NotSame(t, root, result.Tree)

	// Unchanged tokens are shared with the original.
	assert.Same(t, a, result.Tree.Child(0).Token())
	assert.Same(t, b, result.Tree.Child(1).Token())
	assert.NotSame(t, c, result.Tree.Child(2).Token())

	// "c" moved from offset 6 to offset 4.
	printed, ok := result.Map.Lookup(6)
	assert.True(t, ok)
	assert.Equal(t, 4, printed)

	// Formatting the result changes nothing, and keeps the whole tree.
	ok, again, err := format.Check(result.Tree, words, printer.Options{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, result.Tree, again.Tree)
	assert.Equal(t, 1, again.Reused)

	ok, _, err = format.Check(root, words, printer.Options{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFormatNested(t *testing.T) {
	t.Parallel()

	inner := syntax.NewNode(kindList,
		syntax.TokenChild(word("bbbb")),
		syntax.TokenChild(word("cccc", ws(" "))),
	)
	root := syntax.NewNode(kindList,
		syntax.TokenChild(word("a")),
		syntax.NodeChild(inner),
		syntax.TokenChild(&syntax.Token{Kind: syntax.KindEOF, Leading: []syntax.Trivia{nl()}}),
	)

	result, err := format.Format(root, words, printer.Options{PrintWidth: 80})
	require.NoError(t, err)
	assert.Equal(t, "a (bbbb cccc)\n", result.Text)
	assert.Equal(t, result.Text, result.Tree.Text())

	result, err = format.Format(root, words, printer.Options{PrintWidth: 10, IndentStyle: printer.IndentSpace})
	require.NoError(t, err)
	assert.Equal(t, "a\n  (bbbb\n    cccc)\n", result.Text)
	assert.Equal(t, result.Text, result.Tree.Text())
}

func TestCapture(t *testing.T) {
	t.Parallel()

	root := syntax.NewNode(kindList, syntax.TokenChild(word("x")))
	rule := format.RuleFunc(func(ctx *format.Context, node *syntax.Node) {
		x := node.Child(0).Token()
		before := ctx.Len()
		shared := ctx.Arena.Intern(ctx.Capture(func() {
			ctx.Push(ir.Copy(x))
		})...)
		assert.Equal(t, before, ctx.Len())

		ctx.Push(ir.BestFitting(
			[]ir.Element{ir.Text("["), shared, ir.Text("]")},
			[]ir.Element{ir.Text("[["), shared, ir.Text("]]")},
		))
	})

	result, err := format.Format(root, rule, printer.Options{PrintWidth: 3})
	require.NoError(t, err)
	assert.Equal(t, "[x]\n", result.Text)

	result, err = format.Format(root, rule, printer.Options{PrintWidth: 2})
	require.NoError(t, err)
	assert.Equal(t, "[[x]]\n", result.Text)
}

func TestFormatErrors(t *testing.T) {
	t.Parallel()

	_, err := format.Format(nil, words, printer.Options{})
	assert.Error(t, err)

	root := syntax.NewNode(kindList, syntax.TokenChild(word("x")))
	broken := format.RuleFunc(func(ctx *format.Context, _ *syntax.Node) {
		ctx.Push(ir.End(ir.TagGroup))
	})
	_, err = format.Format(root, broken, printer.Options{})
	require.ErrorIs(t, err, printer.ErrMalformed)

	_, _, err = format.Check(root, broken, printer.Options{})
	require.ErrorIs(t, err, printer.ErrMalformed)
}
