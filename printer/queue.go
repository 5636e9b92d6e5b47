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

package printer

import (
	"slices"

	"github.com/bufbuild/reprint/internal/ext/slicesx"
	"github.com/bufbuild/reprint/ir"
)

// Queue is the remaining content of a document, as a stack of element
// sequences.
//
// Pop resolves [ir.KindInterned] elements transparently: it descends into
// the sequence they refer to instead of returning them. An interned element
// whose handle cannot be resolved is returned as-is.
type Queue interface {
	// Pop removes and returns the next element, or returns false if the
	// queue is exhausted.
	Pop() (ir.Element, bool)

	// Push places elems in front of the rest of the queue.
	Push(elems []ir.Element)
}

var (
	_ Queue = (*PrintQueue)(nil)
	_ Queue = (*FitsQueue)(nil)
)

// PrintQueue is the queue the printer commits output from.
type PrintQueue struct {
	arena *ir.Arena
	stack [][]ir.Element
}

// NewPrintQueue returns a queue over a document.
func NewPrintQueue(doc ir.Document) *PrintQueue {
	q := &PrintQueue{arena: doc.Arena}
	q.Push(doc.Elements)
	return q
}

// Pop implements [Queue].
func (q *PrintQueue) Pop() (ir.Element, bool) {
	for {
		top := slicesx.LastPointer(q.stack)
		if top == nil {
			return ir.Element{}, false
		}
		if len(*top) == 0 {
			slicesx.Pop(&q.stack)
			continue
		}

		next := (*top)[0]
		*top = (*top)[1:]
		if next.Kind() == ir.KindInterned {
			if seq, ok := q.arena.Deref(next.Handle()); ok {
				q.Push(seq)
				continue
			}
		}
		return next, true
	}
}

// Push implements [Queue].
func (q *PrintQueue) Push(elems []ir.Element) {
	if len(elems) > 0 {
		q.stack = append(q.stack, elems)
	}
}

// Fits returns a queue that reads the rest of q without consuming it, with
// elems pushed in front.
//
// The returned queue is only valid until q is next modified.
func (q *PrintQueue) Fits(elems []ir.Element) *FitsQueue {
	f := &FitsQueue{arena: q.arena, base: q.stack, depth: len(q.stack)}
	f.Push(elems)
	return f
}

// save returns a copy of the queue's position, for restoring with load.
func (q *PrintQueue) save() [][]ir.Element {
	return slices.Clone(q.stack)
}

func (q *PrintQueue) load(stack [][]ir.Element) {
	q.stack = stack
}

// FitsQueue is a disposable, read-only view of a [PrintQueue], used to
// measure content without consuming it.
//
// Elements pushed onto a FitsQueue are layered over the borrowed stack and
// are never seen by the PrintQueue.
type FitsQueue struct {
	arena *ir.Arena

	// The borrowed stack. Only base[:depth] has not been visited yet, and
	// cur is what remains of base[depth], if anything.
	base  [][]ir.Element
	depth int
	cur   []ir.Element

	own [][]ir.Element
}

// Pop implements [Queue].
func (q *FitsQueue) Pop() (ir.Element, bool) {
	for {
		var next ir.Element
		if top := slicesx.LastPointer(q.own); top != nil {
			if len(*top) == 0 {
				slicesx.Pop(&q.own)
				continue
			}
			next = (*top)[0]
			*top = (*top)[1:]
		} else if len(q.cur) > 0 {
			next = q.cur[0]
			q.cur = q.cur[1:]
		} else if q.depth > 0 {
			q.depth--
			q.cur = q.base[q.depth]
			continue
		} else {
			return ir.Element{}, false
		}

		if next.Kind() == ir.KindInterned {
			if seq, ok := q.arena.Deref(next.Handle()); ok {
				q.Push(seq)
				continue
			}
		}
		return next, true
	}
}

// Push implements [Queue].
func (q *FitsQueue) Push(elems []ir.Element) {
	if len(elems) > 0 {
		q.own = append(q.own, elems)
	}
}
