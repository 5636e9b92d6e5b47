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

package edit

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// ToLSP converts edits of text into LSP text edits, whose positions are
// lines and UTF-16 code units.
func ToLSP(text string, edits []Edit) []protocol.TextEdit {
	lines := []int{0}
	for i := range len(text) {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}

	out := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, protocol.TextEdit{
			Range: protocol.Range{
				Start: position(text, lines, e.Start),
				End:   position(text, lines, e.End),
			},
			NewText: e.NewText,
		})
	}
	return out
}

// position converts a byte offset into an LSP position. lines holds the
// offset at which each line starts.
func position(text string, lines []int, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	line := sort.Search(len(lines), func(i int) bool { return lines[i] > offset }) - 1

	var units int
	for rest := text[lines[line]:offset]; rest != ""; {
		r, n := utf8.DecodeRuneInString(rest)
		rest = rest[n:]
		units += utf16.RuneLen(r)
	}
	return protocol.Position{Line: uint32(line), Character: uint32(units)}
}
