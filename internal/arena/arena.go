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

// Package arena defines an append-only Arena addressed by compressed
// pointers.
//
// Values allocated in an arena never move, so a *T obtained from
// [Arena.Deref] stays valid for the life of the arena.
package arena

import (
	"fmt"
	"iter"
	"math/bits"
)

// minLenShift is the log2 of the length of the first slice in an arena's
// table.
const (
	minLenShift = 4
	minLen      = 1 << minLenShift
)

// Pointer is a compressed pointer into an [Arena].
//
// The value of a pointer is one plus the number of values allocated before
// it. The zero value is nil.
type Pointer[T any] uint32

// Nil returns whether this pointer is nil.
func (p Pointer[T]) Nil() bool {
	return p == 0
}

// Arena is an append-only collection of T addressed by [Pointer]s.
//
// Internally it is a table of slices whose capacities double, mimicking the
// growth of an ordinary slice without ever moving an element.
//
// A zero Arena is empty and ready to use.
type Arena[T any] struct {
	// Invariants:
	// 1. cap(table[0]) == minLen.
	// 2. cap(table[n]) == 2*cap(table[n-1]).
	// 3. len(table[n]) == cap(table[n]) for all but the last slice.
	table [][]T
	len   int
}

// New allocates a value on the arena and returns a pointer to it.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.table == nil {
		a.table = [][]T{make([]T, 0, minLen)}
	}

	last := &a.table[len(a.table)-1]
	if len(*last) == cap(*last) {
		a.table = append(a.table, make([]T, 0, 2*cap(*last)))
		last = &a.table[len(a.table)-1]
	}

	*last = append(*last, value)
	a.len++
	return Pointer[T](a.len)
}

// Len returns the number of values allocated so far.
func (a *Arena[T]) Len() int {
	if a == nil {
		return 0
	}
	return a.len
}

// Contains returns whether p was allocated by an arena of this length.
//
// This cannot tell pointers from different arenas apart; it only rejects
// nil and out-of-range pointers.
func (a *Arena[T]) Contains(p Pointer[T]) bool {
	return !p.Nil() && int(p) <= a.Len()
}

// Deref returns the value p points to.
//
// Panics if p is nil or was not allocated by this arena.
func (a *Arena[T]) Deref(p Pointer[T]) *T {
	if !a.Contains(p) {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", uint32(p)))
	}
	slice, idx := coordinates(int(p) - 1)
	return &a.table[slice][idx]
}

// All returns an iterator over all values in allocation order.
func (a *Arena[T]) All() iter.Seq2[Pointer[T], *T] {
	return func(yield func(Pointer[T], *T) bool) {
		var n Pointer[T]
		for i := range a.table {
			for j := range a.table[i] {
				n++
				if !yield(n, &a.table[i][j]) {
					return
				}
			}
		}
	}
}

// coordinates maps a zero-based index to its slice in the table and its
// offset within that slice.
func coordinates(idx int) (slice, offset int) {
	// Slice n starts at index (2^n - 1) * minLen. Adding minLen turns those
	// starts into powers of two, whose bit length is n + minLenShift + 1.
	slice = bits.Len(uint(idx)+minLen) - (minLenShift + 1)
	offset = idx - (minLen<<slice - minLen)
	return slice, offset
}
