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

package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/reprint/ir"
	"github.com/bufbuild/reprint/syntax"
)

const kindWord = syntax.KindUser

func word(text string) ir.Element {
	return ir.Token(kindWord, text)
}

func TestBestFittingWrapsVariants(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	v0 := []ir.Element{word("a")}
	e := ir.BestFitting(v0, []ir.Element{word("b"), ir.HardLine()})
	assert.Equal(ir.KindBestFitting, e.Kind())
	assert.False(e.AllLines())

	variants := e.Variants()
	require.Len(t, variants, 2)
	for _, v := range variants {
		kind, end := v[0].Tag()
		assert.Equal(ir.TagEntry, kind)
		assert.False(end)

		kind, end = v[len(v)-1].Tag()
		assert.Equal(ir.TagEntry, kind)
		assert.True(end)
	}
	assert.Len(variants[0], 3)
	assert.Len(variants[1], 4)

	// The caller's slice is not aliased.
	v0[0] = word("z")
	assert.Equal("a", variants[0][1].Text())

	assert.True(ir.BestFittingAllLines(v0).AllLines())
	assert.Empty(ir.BestFitting().Variants())
}

func TestBuilderRegions(t *testing.T) {
	t.Parallel()

	template := syntax.NewNode(kindWord)
	elems := ir.Build(func(b *ir.Builder) {
		b.Node(template, func(b *ir.Builder) {
			b.Group(func(b *ir.Builder) {
				b.Push(word("["))
				b.Indent(func(b *ir.Builder) {
					b.Push(ir.SoftLine(), word("a"))
				})
				b.Push(ir.SoftLine(), word("]"))
			})
			b.ExpandedGroup(func(b *ir.Builder) {
				b.Dedent(func(b *ir.Builder) {})
			})
		})
	})

	type tag struct {
		kind ir.TagKind
		end  bool
	}
	var tags []tag
	for _, e := range elems {
		if e.Kind() == ir.KindTag {
			kind, end := e.Tag()
			tags = append(tags, tag{kind, end})
		}
	}
	assert.Equal(t, []tag{
		{ir.TagNode, false},
		{ir.TagGroup, false},
		{ir.TagIndent, false},
		{ir.TagIndent, true},
		{ir.TagGroup, true},
		{ir.TagGroup, false},
		{ir.TagDedent, false},
		{ir.TagDedent, true},
		{ir.TagGroup, true},
		{ir.TagNode, true},
	}, tags)

	assert.Same(t, template, elems[0].Node())
	assert.Same(t, template, elems[len(elems)-1].Node())
	assert.True(t, elems[len(elems)-5].Expanded())
}

func TestArena(t *testing.T) {
	t.Parallel()

	var a ir.Arena
	sep := a.Intern(word(","), ir.SoftLineOrSpace())
	assert.Equal(t, ir.KindInterned, sep.Kind())
	assert.Equal(t, 1, a.Len())

	seq, ok := a.Deref(sep.Handle())
	require.True(t, ok)
	assert.Len(t, seq, 2)

	// Sequences may refer to earlier ones.
	nested := a.Intern(word("a"), sep, ir.BestFitting([]ir.Element{sep}))
	_, ok = a.Deref(nested.Handle())
	assert.True(t, ok)

	var other ir.Arena
	_, ok = other.Deref(nested.Handle())
	assert.False(t, ok)
	_, ok = a.Deref(ir.Interned{})
	assert.False(t, ok)
	assert.True(t, ir.Interned{}.IsZero())

	var nilArena *ir.Arena
	_, ok = nilArena.Deref(sep.Handle())
	assert.False(t, ok)

	// A handle from a longer arena cannot be smuggled in.
	assert.Panics(t, func() { other.Intern(nested) })
	assert.Panics(t, func() { other.Intern(ir.BestFitting([]ir.Element{nested})) })
}

func TestTokenAt(t *testing.T) {
	t.Parallel()

	tok := syntax.NewToken(kindWord+1, "'x'")
	e := ir.TokenAt(tok, `"x"`)
	assert.Equal(t, kindWord+1, e.SyntaxKind())
	assert.Equal(t, `"x"`, e.Text())
	assert.Same(t, tok, e.Origin())

	e = ir.Copy(tok)
	assert.Equal(t, "'x'", e.Text())
	assert.Nil(t, word("x").Origin())
}

func TestDump(t *testing.T) {
	t.Parallel()

	var a ir.Arena
	sep := a.Intern(word(","), ir.SoftLineOrSpace())
	doc := ir.Document{
		Arena: &a,
		Elements: ir.Build(func(b *ir.Builder) {
			b.Group(func(b *ir.Builder) {
				b.Push(word("["), sep, word("a"), sep, ir.Text("// c"), ir.Space(), word("]"))
			})
			b.Push(
				ir.BestFittingAllLines([]ir.Element{ir.HardLine()}),
				ir.Interned{}.Element(),
			)
		}),
	}

	want := `<group>
    <token kind=Kind(16)>"["
    <interned id=1>
        <token kind=Kind(16)>","
        <br soft-or-space>
    </interned>
    <token kind=Kind(16)>"a"
    <interned id=1/>
    <text>"// c"
    <sp>
    <token kind=Kind(16)>"]"
</group>
<best-fitting all-lines>
    <entry>
        <br hard>
    </entry>
</best-fitting>
<interned id=0 invalid/>
`
	assert.Equal(t, want, doc.Dump(nil))
}
