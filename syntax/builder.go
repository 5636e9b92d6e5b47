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

package syntax

import (
	"fmt"
	"slices"

	"github.com/bufbuild/reprint/internal/ext/slicesx"
)

// NodeID identifies a node opened on a [Builder].
//
// IDs are strictly increasing over the life of a builder. [Root] is the
// parent of the outermost node.
type NodeID uint32

// Root is the parent ID passed when opening the root node.
const Root NodeID = 0

// Builder reassembles a syntax tree from a pre-order stream of events,
// reusing nodes of an original tree wherever their children did not change.
//
// Nodes are closed lazily: opening a node or appending to one implicitly
// closes every node opened after the given parent. Every misuse of a
// Builder is a bug in the code driving it, and panics.
//
// A zero Builder is empty and ready to use.
type Builder struct {
	open     []openNode
	children []Child
	next     NodeID

	reused, built int
}

// openNode is a node which has been opened but not finished.
type openNode struct {
	id       NodeID
	template *Node
	start    int // Index into children where this node's children begin.
}

// Snapshot is a point in a [Builder]'s event stream that can be returned to
// with [Builder.Restore].
type Snapshot struct {
	open, children int
	reused, built  int
}

// Open closes every node opened after parent and opens a new child of
// parent, modeled on template.
//
// The new node will be template itself if its children end up shallowly
// equal to template's.
func (b *Builder) Open(parent NodeID, template *Node) NodeID {
	if template == nil {
		panic("syntax: opened node without a template")
	}
	b.enter(parent)

	b.next++
	b.open = append(b.open, openNode{
		id:       b.next,
		template: template,
		start:    len(b.children),
	})
	return b.next
}

// AppendToken appends a token to parent, after closing every node opened
// after parent.
func (b *Builder) AppendToken(parent NodeID, token *Token) {
	if token == nil {
		panic("syntax: appended nil token")
	}
	b.enter(parent)
	b.children = append(b.children, TokenChild(token))
}

// AppendNode appends an already-finished node to parent verbatim, after
// closing every node opened after parent.
func (b *Builder) AppendNode(parent NodeID, node *Node) {
	if node == nil {
		panic("syntax: appended nil node")
	}
	b.enter(parent)
	b.children = append(b.children, NodeChild(node))
}

// CloseTo finishes every open node whose ID is greater than parent.
func (b *Builder) CloseTo(parent NodeID) {
	for {
		top := slicesx.LastPointer(b.open)
		if top == nil || top.id <= parent {
			return
		}
		b.finish(*top)
		b.open = b.open[:len(b.open)-1]
	}
}

// Finish closes all open nodes and returns the root of the built tree.
//
// Panics if the events did not describe exactly one root node. The builder
// is empty afterwards.
func (b *Builder) Finish() *Node {
	b.CloseTo(Root)
	if len(b.children) != 1 || !b.children[0].IsNode() {
		panic(fmt.Sprintf("syntax: unbalanced tree: expected one root node, got %d top-level children", len(b.children)))
	}
	root := b.children[0].node
	slicesx.Truncate(&b.children, 0)
	return root
}

// Snapshot records the current position in the event stream.
func (b *Builder) Snapshot() Snapshot {
	return Snapshot{
		open:     len(b.open),
		children: len(b.children),
		reused:   b.reused,
		built:    b.built,
	}
}

// Restore discards every event since s was taken.
//
// No node that was open when s was taken may have been closed since; the
// caller must call [Builder.CloseTo] before taking the snapshot to guarantee
// this.
func (b *Builder) Restore(s Snapshot) {
	if s.open > len(b.open) || s.children > len(b.children) {
		panic(fmt.Sprintf("syntax: stale snapshot (open %d > %d or children %d > %d)",
			s.open, len(b.open), s.children, len(b.children)))
	}
	b.open = b.open[:s.open]
	slicesx.Truncate(&b.children, s.children)
	b.reused, b.built = s.reused, s.built
}

// Reused returns the number of nodes finished so far that reused their
// template.
func (b *Builder) Reused() int { return b.reused }

// Built returns the number of nodes finished so far that had to be
// allocated anew.
func (b *Builder) Built() int { return b.built }

// enter closes every node opened after parent and checks that parent is
// now the innermost open node.
func (b *Builder) enter(parent NodeID) {
	b.CloseTo(parent)
	top := slicesx.LastPointer(b.open)
	switch {
	case parent == Root && top == nil:
	case top != nil && top.id == parent:
	default:
		panic(fmt.Sprintf("syntax: node %d is not open", parent))
	}
}

// finish converts an open node into a finished one, replacing its children
// in the buffer with the node itself.
func (b *Builder) finish(open openNode) {
	children := b.children[open.start:]

	node := open.template
	if sameChildren(node, children) {
		b.reused++
	} else {
		// children aliases the buffer, which is about to be overwritten.
		node = newNode(node.kind, slices.Clone(children))
		b.built++
	}

	slicesx.Truncate(&b.children, open.start)
	b.children = append(b.children, NodeChild(node))
}
