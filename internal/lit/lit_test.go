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

package lit_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/reprint/format"
	"github.com/bufbuild/reprint/internal/lit"
	"github.com/bufbuild/reprint/printer"
	"github.com/bufbuild/reprint/syntax"
)

func spaces(width int) printer.Options {
	return printer.Options{
		PrintWidth:  width,
		IndentStyle: printer.IndentSpace,
		IndentWidth: 2,
	}
}

func TestParseIsLossless(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"   \n\n",
		"// only a comment",
		"[1,2 , 3,]\n",
		"{ a : 'b' , \"c\":[ ] }  /* end */\n\n",
		"\t-1.5e-3 ident_1 'it\\'s'\r\n",
	}
	for _, src := range inputs {
		root, err := lit.Parse(src)
		require.NoError(t, err, "%q", src)
		assert.Equal(t, src, root.Text(), "%q", src)
		assert.Equal(t, lit.KindProgram, root.Kind())
	}
}

func TestParseTree(t *testing.T) {
	t.Parallel()

	root, err := lit.Parse("[1] 'abc'")
	require.NoError(t, err)
	require.Equal(t, 2, root.Len())

	array := root.Child(0).Node()
	assert.Equal(t, lit.KindArray, array.Kind())
	assert.Equal(t, 3, array.Len())
	assert.Equal(t, lit.KindLBracket, array.Child(0).Kind())
	assert.Equal(t, lit.KindLiteral, array.Child(1).Kind())
	assert.Equal(t, lit.KindRBracket, array.Child(2).Kind())

	str := root.Child(1).Node().FirstToken()
	assert.Equal(t, lit.KindString, str.Kind)
	assert.Equal(t, "'abc'", str.Text)
	assert.Equal(t, " ", str.FullText()[:1])

	// An EOF token is only kept if it carries trivia.
	root, err = lit.Parse("x\n")
	require.NoError(t, err)
	require.Equal(t, 2, root.Len())
	assert.Equal(t, syntax.KindEOF, root.Child(1).Kind())

	assert.Equal(t, "Array", lit.Names(lit.KindArray))
	assert.Equal(t, "Colon", lit.Names(lit.KindColon))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src, want string
	}{
		{"[1, 2", "1:6: expected , or ], found end of file"},
		{"{a 1}", `1:4: expected :, found "1"`},
		{"{1: 2}", `1:2: expected key, found "1"`},
		{"[,]", `1:2: expected value or ], found ","`},
		{"'abc", "1:1: unterminated string"},
		{"/* x", "1:1: unterminated block comment"},
		{"\n  @", "2:3: unexpected character '@'"},
		{"]", `1:1: expected value, found "]"`},
	}
	for _, tt := range tests {
		_, err := lit.Parse(tt.src)
		require.Error(t, err, "%q", tt.src)
		assert.Equal(t, tt.want, err.Error(), "%q", tt.src)

		var litErr *lit.Error
		assert.True(t, errors.As(err, &litErr))
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		src   string
		want  string
	}{
		{"empty", 80, "", ""},
		{"values", 80, "1   2", "1\n2\n"},
		{"blank-lines", 80, "\n\n1\n\n\n\n2\n3", "1\n\n2\n3\n"},
		{"array", 80, "[1,2,3]", "[1, 2, 3]\n"},
		{"trailing-comma", 80, "[1,2,3,]", "[1, 2, 3]\n"},
		{"object", 80, "{a:1,'b':'c'}", "{a: 1, \"b\": \"c\"}\n"},
		{"nested", 80, "{a: [1, 2], b: {}}", "{a: [1, 2], b: {}}\n"},
		{"keep-quotes", 80, `'say "hi"'`, `'say "hi"'` + "\n"},
		{"escaped-quote", 80, `'it\'s'`, `"it's"` + "\n"},
		{"broken", 10, "[1111, 2222, 3333]", "[\n  1111,\n  2222,\n  3333\n]\n"},
		{"hug-flat", 80, "[1, 2, {a: 1, b: 2}]", "[1, 2, {a: 1, b: 2}]\n"},
		{"hug", 16, "[1, 2, {a: 1, b: 2}]", "[1, 2, {\n  a: 1,\n  b: 2\n}]\n"},
		{"hug-vertical", 7, "[1, 2, {a: 1, b: 2}]", "[\n  1,\n  2,\n  {\n    a: 1,\n    b: 2\n  }\n]\n"},
		{"hug-only", 6, "[{a: 1}]", "[{\n  a: 1\n}]\n"},
		{
			"comments", 80,
			"// head\n\n\n[1, // one\n2]\n// tail\n",
			"// head\n\n[\n  1,\n  // one\n  2\n]\n// tail\n",
		},
		{"closing-comment", 80, "[1 // c\n]", "[\n  1\n  // c\n]\n"},
		{"empty-with-comment", 80, "[/* c */]", "[\n  /* c */\n]\n"},
		{"block-comment", 80, "/* a */ 1", "/* a */ 1\n"},
		{"only-comments", 80, "// a\n\n// b", "// a\n\n// b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := lit.Format(tt.src, spaces(tt.width))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Text)
			assert.Equal(t, result.Text, result.Tree.Text())

			// Formatting is idempotent, and keeps the whole tree the second
			// time around.
			ok, again, err := format.Check(result.Tree, lit.Rule(), spaces(tt.width))
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, again.Text)
			assert.Same(t, result.Tree, again.Tree)
		})
	}
}

func TestFormatReusesUnchangedNodes(t *testing.T) {
	t.Parallel()

	root, err := lit.Parse("[1] 'abc'")
	require.NoError(t, err)

	result, err := format.Format(root, lit.Rule(), printer.Options{})
	require.NoError(t, err)
	assert.Equal(t, "[1]\n\"abc\"\n", result.Text)

	// The array did not change, so it is the original node; the string was
	// re-quoted, so it is new.
	assert.Same(t, root.Child(0).Node(), result.Tree.Child(0).Node())
	assert.NotSame(t, root.Child(1).Node(), result.Tree.Child(1).Node())
	assert.NotSame(t, root, result.Tree)
	assert.Equal(t, 2, result.Reused)

	// "'abc'" starts at 4 in the original, and at 4 in the output too.
	printed, ok := result.Map.Lookup(4)
	assert.True(t, ok)
	assert.Equal(t, 4, printed)
}

func TestFormatParseError(t *testing.T) {
	t.Parallel()

	_, err := lit.Format("[", printer.Options{})
	var litErr *lit.Error
	require.ErrorAs(t, err, &litErr)
	assert.Equal(t, 1, litErr.Line)
	assert.Equal(t, 2, litErr.Column)
}
