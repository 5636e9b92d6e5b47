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

// Package edit computes the textual difference between two versions of a
// tree, as a minimal list of byte-range replacements.
//
// Sub-trees that the two versions share are skipped without looking at their
// text, so diffing a formatted tree against the tree it came from only costs
// as much as the parts formatting actually changed.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bufbuild/reprint/syntax"
)

// ErrOverlap is returned by [Apply] for edits that overlap, are out of
// order, or are out of bounds.
var ErrOverlap = errors.New("edit: overlapping or out-of-range edit")

// Edit replaces the bytes in [Start, End) of a text with NewText.
type Edit struct {
	Start, End int
	NewText    string
}

// String implements [fmt.Stringer].
func (e Edit) String() string {
	return fmt.Sprintf("[%d:%d]%q", e.Start, e.End, e.NewText)
}

// Diff returns the edits that turn the text of before into the text of
// after. Edits are sorted and do not overlap.
func Diff(before, after *syntax.Node) []Edit {
	d := new(differ)
	d.node(before, after)
	d.flush()
	return d.edits
}

// Apply applies edits to text.
func Apply(text string, edits []Edit) (string, error) {
	var out strings.Builder
	var last int
	for _, e := range edits {
		if e.Start < last || e.End < e.Start || e.End > len(text) {
			return "", fmt.Errorf("%w: %v", ErrOverlap, e)
		}
		out.WriteString(text[last:e.Start])
		out.WriteString(e.NewText)
		last = e.End
	}
	out.WriteString(text[last:])
	return out.String(), nil
}

// differ walks two trees in parallel.
type differ struct {
	offset int // Into the text of the old tree.

	// Changed text not yet diffed. Adjacent changes are diffed together.
	pending          bool
	start, end       int
	oldText, newText strings.Builder

	edits []Edit
}

func (d *differ) node(a, b *syntax.Node) {
	switch {
	case a == b:
		if a != nil {
			d.offset += a.Width()
		}
		return
	case a == nil || b == nil || a.Kind() != b.Kind():
		d.replace(text(a), text(b))
		return
	}

	// Children that line up at either end are compared pairwise; whatever is
	// left in the middle is replaced wholesale.
	la, lb := a.Len(), b.Len()
	var prefix, suffix int
	for prefix < min(la, lb) && similar(a.Child(prefix), b.Child(prefix)) {
		prefix++
	}
	for suffix < min(la, lb)-prefix && similar(a.Child(la-1-suffix), b.Child(lb-1-suffix)) {
		suffix++
	}

	for i := range prefix {
		d.child(a.Child(i), b.Child(i))
	}
	if prefix < la-suffix || prefix < lb-suffix {
		var from, to strings.Builder
		for i := prefix; i < la-suffix; i++ {
			from.WriteString(childText(a.Child(i)))
		}
		for i := prefix; i < lb-suffix; i++ {
			to.WriteString(childText(b.Child(i)))
		}
		d.replace(from.String(), to.String())
	}
	for i := range suffix {
		d.child(a.Child(la-suffix+i), b.Child(lb-suffix+i))
	}
}

func (d *differ) child(a, b syntax.Child) {
	if a.IsNode() {
		d.node(a.Node(), b.Node())
	} else {
		d.token(a.Token(), b.Token())
	}
}

func (d *differ) token(a, b *syntax.Token) {
	if a == b || a.Equal(b) {
		d.offset += a.Width()
		return
	}
	d.replace(a.FullText(), b.FullText())
}

// replace records that from, which starts at the current offset, became to.
func (d *differ) replace(from, to string) {
	if d.pending && d.end != d.offset {
		d.flush()
	}
	if !d.pending {
		d.pending = true
		d.start, d.end = d.offset, d.offset
	}
	d.oldText.WriteString(from)
	d.newText.WriteString(to)
	d.offset += len(from)
	d.end = d.offset
}

// flush diffs the pending change, and appends the result to the edits.
func (d *differ) flush() {
	if !d.pending {
		return
	}
	from, to := d.oldText.String(), d.newText.String()
	d.pending = false
	d.oldText.Reset()
	d.newText.Reset()

	lines := strings.Contains(from, "\n") && strings.Contains(to, "\n")
	diffs := diffmatchpatch.New().DiffMain(from, to, lines)

	pos := d.start
	var cur *Edit
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			if cur != nil {
				d.edits = append(d.edits, *cur)
				cur = nil
			}
			pos += len(diff.Text)

		case diffmatchpatch.DiffDelete:
			if cur == nil {
				cur = &Edit{Start: pos, End: pos}
			}
			pos += len(diff.Text)
			cur.End = pos

		case diffmatchpatch.DiffInsert:
			if cur == nil {
				cur = &Edit{Start: pos, End: pos}
			}
			cur.NewText += diff.Text
		}
	}
	if cur != nil {
		d.edits = append(d.edits, *cur)
	}
}

// similar returns whether two children can be compared pairwise.
func similar(a, b syntax.Child) bool {
	return a.IsNode() == b.IsNode() && a.Kind() == b.Kind()
}

func childText(c syntax.Child) string {
	if c.IsNode() {
		return c.Node().Text()
	}
	return c.Token().FullText()
}

func text(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	return n.Text()
}
