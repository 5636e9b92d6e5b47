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

// Package printer renders an [ir.Document] into text.
//
// The printer walks the document once, deciding for every group whether it
// is laid out flat or broken by measuring, without consuming anything, how
// far the group would reach if it were flat. [ir.BestFitting] elements are
// resolved the same way, one variant at a time, in order.
//
// While printing, the printer also rebuilds a syntax tree out of the tokens
// it emits and the node tags that surround them, reusing every node of the
// original tree whose children came out unchanged. See [syntax.Builder].
package printer

import (
	"fmt"
	"strings"

	"github.com/bufbuild/reprint/internal/ext/slicesx"
	"github.com/bufbuild/reprint/internal/ext/stringsx"
	"github.com/bufbuild/reprint/ir"
	"github.com/bufbuild/reprint/syntax"
)

// Printed is the result of [Print].
type Printed struct {
	// The printed text. Unless empty, it always ends in a newline.
	Text string

	// The tree rebuilt from the document's node tags; its text is exactly
	// Text. Nil if the document contained no nodes.
	Tree *syntax.Node

	// Where each token that was printed from a token of the original tree
	// ended up, in printing order.
	Positions []Position

	// The number of node tags whose node was reused from the original tree
	// rather than rebuilt.
	Reused int
}

// Position records where a token of the original tree was printed.
type Position struct {
	Origin *syntax.Token
	Offset int // Byte offset of the printed token's text.
}

// Print renders a document.
//
// If the document is malformed, returns a [*MalformedError] and no output.
func Print(doc ir.Document, options Options) (*Printed, error) {
	p := &printer{
		Options: options.WithDefaults(),
		queue:   NewPrintQueue(doc),
	}
	if err := p.run(-1); err != nil {
		return nil, err
	}
	if top, ok := slicesx.Last(p.frames); ok {
		return nil, p.malformed("unclosed %v", top.tag)
	}

	if len(p.out) > 0 && p.out[len(p.out)-1] != '\n' {
		p.out = append(p.out, '\n')
		p.trivia(syntax.TriviaNewline, "\n")
	}

	printed := &Printed{
		Text:      string(p.out),
		Positions: p.positions,
	}
	if p.root != syntax.Root {
		if len(p.pending) > 0 {
			p.builder.AppendToken(p.root, &syntax.Token{
				Kind:    syntax.KindEOF,
				Leading: p.takeTrivia(),
			})
		}
		printed.Tree = p.builder.Finish()
		printed.Reused = p.builder.Reused()
	}
	return printed, nil
}

const (
	broken mode = iota
	flat
)

// mode is whether a group is laid out flat or broken.
type mode byte

// frame is an open region of the document.
type frame struct {
	tag      ir.TagKind
	template *syntax.Node
}

// printer holds state for printing a document.
type printer struct {
	Options

	queue   *PrintQueue
	builder syntax.Builder
	index   int // Number of elements popped.

	out    []byte
	column int
	// Buffered spaces, dropped if a newline follows.
	spaces int

	// Indentation is written lazily, so that blank lines stay empty. The
	// level is fixed when the line starts.
	atLineStart bool
	lineIndent  int

	indents []int
	modes   []mode
	frames  []frame

	nodes []syntax.NodeID
	root  syntax.NodeID
	loose bool // Whether a token was printed outside of any node.

	// Trivia printed since the last token.
	pending   []syntax.Trivia
	positions []Position

	// Whether any line went past the print width. Reset by speculate.
	overflow bool
}

// run prints elements until the queue is exhausted, or until the number of
// open regions drops to depth.
func (p *printer) run(depth int) error {
	for {
		e, ok := p.queue.Pop()
		if !ok {
			return nil
		}
		p.index++

		if err := p.print(e); err != nil {
			return err
		}
		if len(p.frames) == depth {
			return nil
		}
	}
}

// print prints a single element.
func (p *printer) print(e ir.Element) error {
	switch e.Kind() {
	case ir.KindToken:
		return p.token(e)

	case ir.KindText:
		if e.Text() != "" {
			p.write(e.Text())
			p.trivia(syntax.TriviaComment, e.Text())
		}

	case ir.KindSpace:
		p.spaces = max(p.spaces, 1)

	case ir.KindLine:
		switch e.Line() {
		case ir.LineHard:
			p.newline()
		case ir.LineSoft:
			if p.mode() == broken {
				p.newline()
			}
		case ir.LineSoftOrSpace:
			if p.mode() == broken {
				p.newline()
			} else {
				p.spaces = max(p.spaces, 1)
			}
		}

	case ir.KindTag:
		kind, end := e.Tag()
		if end {
			return p.end(kind, e.Node())
		}
		return p.start(kind, e)

	case ir.KindInterned:
		return p.malformed("unknown interned handle")

	case ir.KindBestFitting:
		return p.bestFitting(e)

	case ir.KindVerbatim:
		return p.verbatim(e.Node())
	}
	return nil
}

func (p *printer) start(kind ir.TagKind, e ir.Element) error {
	switch kind {
	case ir.TagGroup:
		m := flat
		switch {
		case e.Expanded():
			m = broken
		case p.mode() == flat:
			// Everything inside a flat group is flat.
		case !p.fits(p.queue.Fits(nil), false, true, flat):
			m = broken
		}
		p.modes = append(p.modes, m)

	case ir.TagEntry:
		p.modes = append(p.modes, p.mode())

	case ir.TagIndent:
		p.indents = append(p.indents, p.indent()+1)

	case ir.TagDedent:
		p.indents = append(p.indents, max(p.indent()-1, 0))

	case ir.TagNode:
		if err := p.open(e.Node()); err != nil {
			return err
		}

	default:
		return p.malformed("unknown tag %v", kind)
	}

	p.frames = append(p.frames, frame{tag: kind, template: e.Node()})
	return nil
}

func (p *printer) end(kind ir.TagKind, template *syntax.Node) error {
	top, ok := slicesx.Last(p.frames)
	switch {
	case !ok:
		return p.malformed("unmatched end of %v", kind)
	case top.tag != kind:
		return p.malformed("end of %v inside of %v", kind, top.tag)
	case kind == ir.TagNode && top.template != template:
		return p.malformed("end of node does not match its start")
	}
	slicesx.Pop(&p.frames)

	switch kind {
	case ir.TagGroup, ir.TagEntry:
		slicesx.Pop(&p.modes)
	case ir.TagIndent, ir.TagDedent:
		slicesx.Pop(&p.indents)
	case ir.TagNode:
		slicesx.Pop(&p.nodes)
	}
	return nil
}

// open opens a node on the builder.
func (p *printer) open(template *syntax.Node) error {
	if template == nil {
		return p.malformed("node without a template")
	}

	parent, ok := slicesx.Last(p.nodes)
	switch {
	case ok:
	case p.root != syntax.Root:
		return p.malformed("second root node")
	case p.loose:
		return p.malformed("token outside of the root node")
	}

	id := p.builder.Open(parent, template)
	if parent == syntax.Root {
		p.root = id
	}
	p.nodes = append(p.nodes, id)
	return nil
}

// parent returns the node that tokens are currently appended to. Returns
// false if there is no tree to append to.
func (p *printer) parent() (syntax.NodeID, bool, error) {
	if id, ok := slicesx.Last(p.nodes); ok {
		return id, true, nil
	}
	if p.root != syntax.Root {
		return 0, false, p.malformed("token outside of the root node")
	}
	return 0, false, nil
}

func (p *printer) token(e ir.Element) error {
	parent, tree, err := p.parent()
	if err != nil {
		return err
	}

	offset := p.write(e.Text())
	tok := &syntax.Token{
		Kind:    e.SyntaxKind(),
		Text:    e.Text(),
		Leading: p.takeTrivia(),
	}

	if origin := e.Origin(); origin != nil {
		if origin.Equal(tok) {
			tok = origin
		}
		p.positions = append(p.positions, Position{Origin: origin, Offset: offset})
	}

	if tree {
		p.builder.AppendToken(parent, tok)
	} else {
		p.loose = true
	}
	return nil
}

func (p *printer) verbatim(node *syntax.Node) error {
	if node == nil {
		return p.malformed("verbatim element without a node")
	}
	parent, tree, err := p.parent()
	if err != nil {
		return err
	}
	if !tree {
		return p.malformed("verbatim node outside of any node")
	}

	p.write(node.Text())
	if len(p.pending) > 0 {
		p.builder.AppendToken(parent, &syntax.Token{
			Kind:    syntax.KindSpacer,
			Leading: p.takeTrivia(),
		})
	}
	p.builder.AppendNode(parent, node)
	return nil
}

func (p *printer) bestFitting(e ir.Element) error {
	variants := e.Variants()
	if len(variants) == 0 {
		return p.malformed("best-fitting element without variants")
	}

	if p.mode() == flat {
		p.enter(variants[0], flat)
		return nil
	}

	last := len(variants) - 1
	for i, v := range variants[:last] {
		// Only the flattest variant must be flat throughout. The others may
		// contain groups that are expanded no matter what.
		if !p.fits(p.queue.Fits(v), true, i == 0, flat) {
			continue
		}
		if !e.AllLines() {
			p.enter(v, flat)
			return nil
		}
		if ok, err := p.speculate(v); ok || err != nil {
			return err
		}
	}

	p.enter(variants[last], broken)
	return nil
}

// enter starts printing a best-fitting variant in the given mode.
func (p *printer) enter(variant []ir.Element, m mode) {
	p.frames = append(p.frames, frame{tag: ir.TagEntry})
	p.modes = append(p.modes, m)
	p.queue.Push(variant[1:]) // Skip the start tag.
}

// speculate prints a variant flat, and backtracks if any of its lines went
// past the print width. Returns whether the variant was kept.
func (p *printer) speculate(variant []ir.Element) (bool, error) {
	// Nodes that ended before this point must not be closed after the
	// snapshot.
	if id, ok := slicesx.Last(p.nodes); ok {
		p.builder.CloseTo(id)
	}

	cp := p.save()
	p.overflow = false

	p.enter(variant, flat)
	if err := p.run(cp.frames); err != nil {
		return false, err
	}

	if !p.overflow {
		p.overflow = cp.overflow
		return true, nil
	}
	p.load(cp)
	return false, nil
}

// checkpoint is a copy of a printer's state.
type checkpoint struct {
	queue   [][]ir.Element
	builder syntax.Snapshot
	index   int

	out, positions  int
	column, spaces  int
	atLineStart     bool
	lineIndent      int
	pending         []syntax.Trivia
	indents, modes  int
	frames, nodes   int
	root            syntax.NodeID
	loose, overflow bool
}

func (p *printer) save() checkpoint {
	return checkpoint{
		queue:       p.queue.save(),
		builder:     p.builder.Snapshot(),
		index:       p.index,
		out:         len(p.out),
		positions:   len(p.positions),
		column:      p.column,
		spaces:      p.spaces,
		atLineStart: p.atLineStart,
		lineIndent:  p.lineIndent,
		pending:     append([]syntax.Trivia(nil), p.pending...),
		indents:     len(p.indents),
		modes:       len(p.modes),
		frames:      len(p.frames),
		nodes:       len(p.nodes),
		root:        p.root,
		loose:       p.loose,
		overflow:    p.overflow,
	}
}

func (p *printer) load(cp checkpoint) {
	p.queue.load(cp.queue)
	p.builder.Restore(cp.builder)
	p.index = cp.index
	p.out = p.out[:cp.out]
	slicesx.Truncate(&p.positions, cp.positions)
	p.column = cp.column
	p.spaces = cp.spaces
	p.atLineStart = cp.atLineStart
	p.lineIndent = cp.lineIndent
	p.pending = cp.pending
	p.indents = p.indents[:cp.indents]
	p.modes = p.modes[:cp.modes]
	p.frames = p.frames[:cp.frames]
	p.nodes = p.nodes[:cp.nodes]
	p.root = cp.root
	p.loose = cp.loose
	p.overflow = cp.overflow
}

// write appends text to the output, after any pending indentation and
// spaces. Returns the offset text was written at.
func (p *printer) write(text string) int {
	if text == "" {
		return len(p.out)
	}

	if p.atLineStart {
		if indent := p.Options.indent(p.lineIndent); indent != "" {
			p.out = append(p.out, indent...)
			p.trivia(syntax.TriviaWhitespace, indent)
		}
		p.atLineStart = false
	}
	if p.spaces > 0 {
		spaces := strings.Repeat(" ", p.spaces)
		p.out = append(p.out, spaces...)
		p.trivia(syntax.TriviaWhitespace, spaces)
		p.column += p.spaces
		p.spaces = 0
	}

	offset := len(p.out)
	p.out = append(p.out, text...)

	first := true
	for line := range stringsx.Split(text, '\n') {
		if !first {
			p.column = 0
		}
		first = false

		p.column = p.Measure(p.column, line)
		if p.column > p.PrintWidth {
			p.overflow = true
		}
	}
	return offset
}

func (p *printer) newline() {
	p.spaces = 0
	p.out = append(p.out, '\n')
	p.trivia(syntax.TriviaNewline, "\n")

	p.atLineStart = true
	p.lineIndent = p.indent()
	p.column = p.Measure(0, p.Options.indent(p.lineIndent))
}

// trivia records printed text that is not part of a token.
func (p *printer) trivia(kind syntax.TriviaKind, text string) {
	if kind == syntax.TriviaWhitespace {
		if last := slicesx.LastPointer(p.pending); last != nil && last.Kind == kind {
			last.Text += text
			return
		}
	}
	p.pending = append(p.pending, syntax.Trivia{Kind: kind, Text: text})
}

func (p *printer) takeTrivia() []syntax.Trivia {
	t := p.pending
	p.pending = nil
	return t
}

func (p *printer) mode() mode {
	m, ok := slicesx.Last(p.modes)
	if !ok {
		return broken
	}
	return m
}

func (p *printer) indent() int {
	n, _ := slicesx.Last(p.indents)
	return n
}

func (p *printer) malformed(format string, args ...any) error {
	return &MalformedError{Index: p.index, Reason: fmt.Sprintf(format, args...)}
}
