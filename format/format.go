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

// Package format connects a language's formatting rules to the printer.
//
// A [Rule] describes how to print every node of a language. [Format] runs a
// rule over a tree, prints the result, and returns the formatted text along
// with a new tree that shares every unchanged node with the original.
package format

import (
	"errors"
	"fmt"

	"github.com/bufbuild/reprint/ir"
	"github.com/bufbuild/reprint/printer"
	"github.com/bufbuild/reprint/sourcemap"
	"github.com/bufbuild/reprint/syntax"
)

// Rule turns nodes of some language into document elements.
//
// Format is called once per node, and pushes that node's content onto ctx.
// It recurses into sub-nodes with [Context.Child]; it must not push node
// tags of its own.
type Rule interface {
	Format(ctx *Context, node *syntax.Node)
}

// RuleFunc adapts a function into a [Rule].
type RuleFunc func(ctx *Context, node *syntax.Node)

// Format implements [Rule].
func (f RuleFunc) Format(ctx *Context, node *syntax.Node) {
	f(ctx, node)
}

// Context is passed to a [Rule] while it builds a document.
//
// Elements are pushed onto the embedded builder.
type Context struct {
	*ir.Builder

	// Options the document will be printed with. Rules only need these for
	// decisions the printer cannot make on its own.
	Options printer.Options

	// Arena for interning sequences used in more than one place.
	Arena *ir.Arena

	rule Rule
}

// Child formats a sub-node, surrounded by its node tags.
func (c *Context) Child(node *syntax.Node) {
	c.Node(node, func(*ir.Builder) {
		c.rule.Format(c, node)
	})
}

// Capture runs body against a fresh builder and returns what it pushed,
// instead of pushing it onto the current one.
//
// This is used to build the variants of an [ir.BestFitting].
func (c *Context) Capture(body func()) []ir.Element {
	prev := c.Builder
	c.Builder = new(ir.Builder)
	defer func() { c.Builder = prev }()

	body()
	return c.Builder.Elements()
}

// Document builds the document for a tree.
func Document(root *syntax.Node, rule Rule, options printer.Options) ir.Document {
	ctx := &Context{
		Builder: new(ir.Builder),
		Options: options.WithDefaults(),
		Arena:   new(ir.Arena),
		rule:    rule,
	}
	ctx.Child(root)
	return ir.Document{Elements: ctx.Elements(), Arena: ctx.Arena}
}

// Result is the result of [Format].
type Result struct {
	// The formatted text.
	Text string

	// The formatted tree. Its text is exactly Text, and every node whose
	// content did not change is shared with the original tree.
	Tree *syntax.Node

	// Maps offsets in the original text to offsets in Text.
	Map *sourcemap.Map

	// The number of nodes that were reused from the original tree.
	Reused int
}

// Format formats a tree.
//
// If the rule produced a malformed document, the error wraps
// [printer.ErrMalformed].
func Format(root *syntax.Node, rule Rule, options printer.Options) (*Result, error) {
	if root == nil {
		return nil, errors.New("format: nil tree")
	}

	printed, err := printer.Print(Document(root, rule, options), options)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}

	return &Result{
		Text:   printed.Text,
		Tree:   printed.Tree,
		Map:    sourcemap.Build(root, printed.Positions),
		Reused: printed.Reused,
	}, nil
}

// Check formats a tree and reports whether it was already formatted.
func Check(root *syntax.Node, rule Rule, options printer.Options) (bool, *Result, error) {
	result, err := Format(root, rule, options)
	if err != nil {
		return false, nil, err
	}
	return result.Tree == root || result.Text == root.Text(), result, nil
}
