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
	"iter"
	"slices"
	"strings"
)

// Child is a child of a [Node]: either a sub-node or a token.
//
// The zero Child is neither, and is never stored in a node.
type Child struct {
	node  *Node
	token *Token
}

// NodeChild wraps a node as a child.
func NodeChild(n *Node) Child {
	return Child{node: n}
}

// TokenChild wraps a token as a child.
func TokenChild(t *Token) Child {
	return Child{token: t}
}

// Node returns the node this child wraps, or nil.
func (c Child) Node() *Node { return c.node }

// Token returns the token this child wraps, or nil.
func (c Child) Token() *Token { return c.token }

// IsNode returns whether this child is a node.
func (c Child) IsNode() bool { return c.node != nil }

// Kind returns the kind of the wrapped node or token.
func (c Child) Kind() Kind {
	switch {
	case c.node != nil:
		return c.node.kind
	case c.token != nil:
		return c.token.Kind
	default:
		return KindNone
	}
}

// Width returns the length of the child's full text in bytes.
func (c Child) Width() int {
	switch {
	case c.node != nil:
		return c.node.width
	case c.token != nil:
		return c.token.Width()
	default:
		return 0
	}
}

// shallowEqual is the per-child half of [ShallowEqual].
func (c Child) shallowEqual(d Child) bool {
	switch {
	case c.node != nil:
		return c.node == d.node
	case c.token != nil:
		return d.token != nil && c.token.Equal(d.token)
	default:
		return d.node == nil && d.token == nil
	}
}

// Node is an interior node of a syntax tree.
//
// Nodes are immutable: every change to a tree produces new nodes along the
// path to the root, and everything else is shared.
type Node struct {
	kind     Kind
	children []Child
	width    int
}

// NewNode builds a node out of the given children.
//
// The children are copied; zero Childs are dropped.
func NewNode(kind Kind, children ...Child) *Node {
	owned := make([]Child, 0, len(children))
	for _, c := range children {
		if c.node != nil || c.token != nil {
			owned = append(owned, c)
		}
	}
	return newNode(kind, owned)
}

// newNode builds a node that takes ownership of children.
func newNode(kind Kind, children []Child) *Node {
	n := &Node{kind: kind, children: children}
	for _, c := range children {
		n.width += c.Width()
	}
	return n
}

// Kind returns this node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the ith direct child.
func (n *Node) Child(i int) Child { return n.children[i] }

// Width returns the length of this node's text in bytes.
func (n *Node) Width() int { return n.width }

// Children returns an iterator over this node's direct children.
func (n *Node) Children() iter.Seq2[int, Child] {
	return slices.All(n.children)
}

// Tokens returns an iterator over every token beneath this node, in source
// order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.tokens(yield)
	}
}

func (n *Node) tokens(yield func(*Token) bool) bool {
	for _, c := range n.children {
		if c.node != nil {
			if !c.node.tokens(yield) {
				return false
			}
		} else if !yield(c.token) {
			return false
		}
	}
	return true
}

// FirstToken returns the first token beneath this node, or nil if it has
// none.
func (n *Node) FirstToken() *Token {
	for t := range n.Tokens() {
		return t
	}
	return nil
}

// Text returns the source text of this node, including all trivia.
func (n *Node) Text() string {
	var b strings.Builder
	b.Grow(n.width)
	for t := range n.Tokens() {
		t.writeTo(&b)
	}
	return b.String()
}

// ShallowEqual returns whether a and b have the same kind and the same
// direct children, where sub-nodes are compared by identity and tokens by
// kind, text and trivia.
//
// This is the test the [Builder] uses to decide whether an original node can
// be reused.
func ShallowEqual(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	return sameChildren(a, b.children)
}

// sameChildren returns whether n's children are shallowly equal to children.
func sameChildren(n *Node, children []Child) bool {
	if len(n.children) != len(children) {
		return false
	}
	for i, c := range n.children {
		if !c.shallowEqual(children[i]) {
			return false
		}
	}
	return true
}
