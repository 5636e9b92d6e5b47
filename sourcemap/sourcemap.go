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

// Package sourcemap relates byte offsets in a file to byte offsets in its
// formatted rendition.
package sourcemap

import (
	"iter"

	"github.com/tidwall/btree"

	"github.com/bufbuild/reprint/printer"
	"github.com/bufbuild/reprint/syntax"
)

// Map is a bidirectional mapping between offsets in an original text and
// offsets in a printed text.
//
// It consists of anchor points, usually the start of every token that
// survived printing. Offsets between anchors map relative to the nearest
// anchor before them.
//
// A zero value is ready to use.
type Map struct {
	forward, reverse btree.Map[int, int]
}

// Build constructs a map out of the positions recorded while printing a
// document built from original.
//
// Positions whose origin is not a token of original are ignored.
func Build(original *syntax.Node, positions []printer.Position) *Map {
	offsets := make(map[*syntax.Token]int)
	if original != nil {
		var offset int
		for tok := range original.Tokens() {
			offsets[tok] = offset + tok.Offset()
			offset += tok.Width()
		}
	}

	m := new(Map)
	for _, pos := range positions {
		if orig, ok := offsets[pos.Origin]; ok {
			m.Add(orig, pos.Offset)
		}
	}
	return m
}

// Add records that the original offset orig was printed at printed.
func (m *Map) Add(orig, printed int) {
	m.forward.Set(orig, printed)
	m.reverse.Set(printed, orig)
}

// Len returns the number of anchors in the map.
func (m *Map) Len() int {
	return m.forward.Len()
}

// Lookup maps an original offset to a printed offset.
//
// Returns false if orig comes before every anchor.
func (m *Map) Lookup(orig int) (printed int, ok bool) {
	return nearest(&m.forward, orig)
}

// Reverse maps a printed offset to an original offset.
//
// Returns false if printed comes before every anchor.
func (m *Map) Reverse(printed int) (orig int, ok bool) {
	return nearest(&m.reverse, printed)
}

// All returns an iterator over the anchors of this map, ordered by original
// offset.
func (m *Map) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		m.forward.Scan(yield)
	}
}

// nearest maps key through the greatest anchor at or before it.
func nearest(tree *btree.Map[int, int], key int) (value int, ok bool) {
	tree.Descend(key, func(anchor, mapped int) bool {
		value, ok = mapped+(key-anchor), true
		return false
	})
	return value, ok
}
