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

// Builder accumulates a sequence of elements.
//
// The region methods run body in the context of a new region, and bracket
// whatever it pushes with the region's tags. A zero Builder is empty and
// ready to use.
type Builder struct {
	elems []Element
}

// Build is a convenience for running body against a fresh builder and
// returning what it pushed.
func Build(body func(*Builder)) []Element {
	b := new(Builder)
	body(b)
	return b.elems
}

// Push appends elements to the sequence.
func (b *Builder) Push(elems ...Element) {
	b.elems = append(b.elems, elems...)
}

// Len returns the number of elements pushed so far.
func (b *Builder) Len() int {
	return len(b.elems)
}

// Elements returns the elements pushed so far.
func (b *Builder) Elements() []Element {
	return b.elems
}

// Group pushes a group.
//
// Every soft line break directly inside a group resolves the same way: the
// printer lays the group out flat if everything up to the next possible
// break after it fits on the current line, and breaks it otherwise. Groups
// inside a flat group are flat.
func (b *Builder) Group(body func(*Builder)) {
	b.region(Start(TagGroup), End(TagGroup), body)
}

// ExpandedGroup pushes a group that is always broken.
//
// A group that would contain an expanded group can never be flat.
func (b *Builder) ExpandedGroup(body func(*Builder)) {
	b.region(StartExpandedGroup(), End(TagGroup), body)
}

// Indent pushes a region in which every line break is followed by one more
// level of indentation.
func (b *Builder) Indent(body func(*Builder)) {
	b.region(Start(TagIndent), End(TagIndent), body)
}

// Dedent pushes a region in which every line break is followed by one less
// level of indentation than outside of it.
func (b *Builder) Dedent(body func(*Builder)) {
	b.region(Start(TagDedent), End(TagDedent), body)
}

// Node pushes a region whose tokens and sub-nodes become the children of a
// node modeled on template.
func (b *Builder) Node(template *syntax.Node, body func(*Builder)) {
	b.region(StartNode(template), EndNode(template), body)
}

func (b *Builder) region(start, end Element, body func(*Builder)) {
	b.elems = append(b.elems, start)
	body(b)
	b.elems = append(b.elems, end)
}
