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
	"github.com/bufbuild/reprint/syntax"
)

// Token returns an element that prints text as a single token of the given
// kind.
//
// Tokens are atomic: the printer never splits them, and each one becomes a
// token in the tree the printer produces.
func Token(kind syntax.Kind, text string) Element {
	return Element{kind: KindToken, syntax: kind, text: text}
}

// TokenAt is like [Token], but records that the printed token is a
// rendition of origin, an existing token of the tree being formatted.
//
// The kind is taken from origin. text may differ from origin.Text, for
// example when a rule normalizes a literal.
func TokenAt(origin *syntax.Token, text string) Element {
	return Element{kind: KindToken, syntax: origin.Kind, text: text, origin: origin}
}

// Copy is shorthand for TokenAt(tok, tok.Text).
func Copy(tok *syntax.Token) Element {
	return TokenAt(tok, tok.Text)
}

// Text returns an element that prints text without making it a token.
//
// Text is attached to the next printed token as trivia; it is how comments
// and other non-syntactic text are re-emitted. Text may contain newlines, in
// which case it is printed verbatim and the lines after the first are not
// indented.
func Text(text string) Element {
	return Element{kind: KindText, text: text}
}

// Space returns an element that prints a single space.
//
// Adjacent spaces are merged, and a space immediately followed by a line
// break is dropped, so that lines never carry trailing whitespace.
func Space() Element {
	return Element{kind: KindSpace}
}

// Line returns a potential line break.
func Line(mode LineMode) Element {
	return Element{kind: KindLine, line: mode}
}

// HardLine returns Line(LineHard).
func HardLine() Element { return Line(LineHard) }

// SoftLine returns Line(LineSoft).
func SoftLine() Element { return Line(LineSoft) }

// SoftLineOrSpace returns Line(LineSoftOrSpace).
func SoftLineOrSpace() Element { return Line(LineSoftOrSpace) }

// EmptyLine returns Line(LineEmpty).
func EmptyLine() Element { return Line(LineEmpty) }

// Start returns a start tag for a region of the given kind.
//
// Node regions need a template; use [StartNode] for those.
func Start(kind TagKind) Element {
	return Element{kind: KindTag, tag: kind}
}

// End returns an end tag for a region of the given kind.
func End(kind TagKind) Element {
	return Element{kind: KindTag, tag: kind, end: true}
}

// StartExpandedGroup returns the start of a group that is always broken.
func StartExpandedGroup() Element {
	return Element{kind: KindTag, tag: TagGroup, expanded: true}
}

// StartNode returns the start of a region whose tokens make up a node
// modeled on template.
func StartNode(template *syntax.Node) Element {
	return Element{kind: KindTag, tag: TagNode, node: template}
}

// EndNode returns the end of a region started with StartNode(template).
func EndNode(template *syntax.Node) Element {
	return Element{kind: KindTag, tag: TagNode, node: template, end: true}
}

// BestFitting returns an element that prints the first of variants that
// fits, or the last one if none does.
//
// Variants are ordered from most horizontal to most vertical. A variant
// fits if its content up to its first line break fits in the remaining
// width; every variant but the last is printed flat.
//
// Each variant is copied and wrapped in [TagEntry] tags. If no variants are
// given, the printer will reject the element.
func BestFitting(variants ...[]Element) Element {
	wrapped := make([][]Element, len(variants))
	for i, v := range variants {
		w := make([]Element, 0, len(v)+2)
		w = append(w, Start(TagEntry))
		w = append(w, v...)
		w = append(w, End(TagEntry))
		wrapped[i] = w
	}
	return Element{kind: KindBestFitting, variants: wrapped}
}

// BestFittingAllLines is like [BestFitting], but a variant only fits if
// every one of its lines does.
//
// The printer decides this by printing the variant and backtracking if it
// went over; this is more expensive than the usual check.
func BestFittingAllLines(variants ...[]Element) Element {
	e := BestFitting(variants...)
	e.allLines = true
	return e
}

// Verbatim returns an element that prints node exactly as it appears in its
// source, and places it unchanged in the produced tree.
func Verbatim(node *syntax.Node) Element {
	return Element{kind: KindVerbatim, node: node}
}
