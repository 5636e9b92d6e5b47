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

package ir

import (
	"fmt"
	"strings"

	"github.com/bufbuild/reprint/syntax"
)

// Dump renders the document as pseudo-HTML, one element per line. Intended
// for debugging.
//
// Regions are shown as nested tags. An interned sequence is expanded the
// first time it is referenced; later references print as self-closing tags.
// names is used to name syntax kinds and may be nil.
func (d Document) Dump(names syntax.KindNamer) string {
	p := dumper{arena: d.Arena, names: names, seen: make(map[Interned]bool)}
	p.dump(d.Elements)
	return p.out.String()
}

type dumper struct {
	out   strings.Builder
	arena *Arena
	names syntax.KindNamer
	seen  map[Interned]bool
	depth int
}

func (p *dumper) dump(elems []Element) {
	for _, e := range elems {
		switch e.kind {
		case KindToken:
			p.line("<token kind=%v>%q", e.syntax.Name(p.names), e.text)

		case KindText:
			p.line("<text>%q", e.text)

		case KindSpace:
			p.line("<sp>")

		case KindLine:
			p.line("<br %v>", e.line)

		case KindTag:
			var attrs string
			switch {
			case e.expanded:
				attrs = " expanded"
			case e.tag == TagNode:
				attrs = fmt.Sprintf(" kind=%v", e.node.Kind().Name(p.names))
			}

			if e.end {
				p.depth--
				p.line("</%v>", e.tag)
			} else {
				p.line("<%v%v>", e.tag, attrs)
				p.depth++
			}

		case KindInterned:
			id := uint32(e.handle.ptr)
			seq, ok := p.arena.Deref(e.handle)
			switch {
			case !ok:
				p.line("<interned id=%v invalid/>", id)
			case p.seen[e.handle]:
				p.line("<interned id=%v/>", id)
			default:
				p.seen[e.handle] = true
				p.line("<interned id=%v>", id)
				p.nest(seq)
				p.line("</interned>")
			}

		case KindBestFitting:
			var attrs string
			if e.allLines {
				attrs = " all-lines"
			}
			p.line("<best-fitting%v>", attrs)
			for _, v := range e.variants {
				p.nest(v)
			}
			p.line("</best-fitting>")

		case KindVerbatim:
			p.line("<verbatim kind=%v width=%v/>", e.node.Kind().Name(p.names), e.node.Width())
		}
	}
}

func (p *dumper) nest(elems []Element) {
	p.depth++
	p.dump(elems)
	p.depth--
}

func (p *dumper) line(format string, args ...any) {
	for range max(p.depth, 0) {
		p.out.WriteString("    ")
	}
	fmt.Fprintf(&p.out, format, args...)
	p.out.WriteByte('\n')
}
