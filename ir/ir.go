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

// Package ir defines the document model consumed by package printer.
//
// A formatting rule describes "what to print" as a flat sequence of
// [Element]s: atomic text, potential line breaks, and start/end tags that
// bound regions subject to a single layout decision. Regions are not nested
// values; a [Tag] start and its matching end simply bracket the elements
// between them, which keeps sequences cheap to splice and share.
//
// Sequences that appear in several places (for example, the separators of a
// list that is offered in several layouts by [BestFitting]) can be stored
// once in an [Arena] and referenced by handle.
package ir

import (
	"github.com/bufbuild/reprint/syntax"
)

const (
	KindNone Kind = iota

	KindToken       // See [Token].
	KindText        // See [Text].
	KindSpace       // See [Space].
	KindLine        // See [Line].
	KindTag         // See [Start] and [End].
	KindInterned    // See [Arena.Intern].
	KindBestFitting // See [BestFitting].
	KindVerbatim    // See [Verbatim].
)

// Kind is the kind of an [Element].
type Kind byte

const (
	LineHard        LineMode = iota // Always a newline.
	LineSoft                        // Nothing when flat, a newline when broken.
	LineSoftOrSpace                 // A space when flat, a newline when broken.
	LineEmpty                       // Nothing.
)

// LineMode is the kind of a [Line].
type LineMode byte

const (
	TagGroup  TagKind = iota + 1 // See [Builder.Group].
	TagIndent                    // See [Builder.Indent].
	TagDedent                    // See [Builder.Dedent].
	TagEntry                     // One variant of a [BestFitting].
	TagNode                      // See [Builder.Node].
)

// TagKind is the kind of region a [Tag] bounds.
type TagKind byte

// Element is a single element of a document.
//
// Elements are immutable values; construct them with the functions in this
// package. The zero Element has kind [KindNone] and prints nothing.
type Element struct {
	text     string
	syntax   syntax.Kind
	origin   *syntax.Token
	node     *syntax.Node
	variants [][]Element
	handle   Interned

	kind     Kind
	line     LineMode
	tag      TagKind
	end      bool
	expanded bool // Group starts only.
	allLines bool // BestFitting only.
}

// Kind returns this element's kind.
func (e Element) Kind() Kind { return e.kind }

// Text returns the text of a [KindToken] or [KindText] element.
func (e Element) Text() string { return e.text }

// SyntaxKind returns the syntax kind of a [KindToken] element.
func (e Element) SyntaxKind() syntax.Kind { return e.syntax }

// Origin returns the token of the original tree a [KindToken] element was
// printed from, if any.
func (e Element) Origin() *syntax.Token { return e.origin }

// Line returns the mode of a [KindLine] element.
func (e Element) Line() LineMode { return e.line }

// Tag returns the region kind of a [KindTag] element, and whether it is an
// end tag.
func (e Element) Tag() (kind TagKind, end bool) { return e.tag, e.end }

// Expanded returns whether this is the start of a group that is always
// broken.
func (e Element) Expanded() bool { return e.expanded }

// Node returns the template of a [TagNode] tag, or the node of a
// [KindVerbatim] element.
func (e Element) Node() *syntax.Node { return e.node }

// Handle returns the handle of a [KindInterned] element.
func (e Element) Handle() Interned { return e.handle }

// Variants returns the variants of a [KindBestFitting] element.
//
// Each variant begins with a [TagEntry] start tag and ends with the matching
// end tag. The returned slices must not be modified.
func (e Element) Variants() [][]Element { return e.variants }

// AllLines returns whether a [KindBestFitting] element requires every line
// of a variant to fit, rather than only its first.
func (e Element) AllLines() bool { return e.allLines }

// Document is a complete input to the printer.
type Document struct {
	Elements []Element

	// The arena that [KindInterned] elements are resolved against. May be nil
	// if the document contains no interned elements.
	Arena *Arena
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindToken:
		return "token"
	case KindText:
		return "text"
	case KindSpace:
		return "sp"
	case KindLine:
		return "br"
	case KindTag:
		return "tag"
	case KindInterned:
		return "interned"
	case KindBestFitting:
		return "best-fitting"
	case KindVerbatim:
		return "verbatim"
	default:
		return "unknown"
	}
}

// String implements [fmt.Stringer].
func (m LineMode) String() string {
	switch m {
	case LineHard:
		return "hard"
	case LineSoft:
		return "soft"
	case LineSoftOrSpace:
		return "soft-or-space"
	case LineEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// String implements [fmt.Stringer].
func (k TagKind) String() string {
	switch k {
	case TagGroup:
		return "group"
	case TagIndent:
		return "indent"
	case TagDedent:
		return "dedent"
	case TagEntry:
		return "entry"
	case TagNode:
		return "node"
	default:
		return "unknown"
	}
}
