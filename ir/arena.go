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

	"github.com/bufbuild/reprint/internal/arena"
)

// Arena stores element sequences that may be referenced from several places
// in a document.
//
// A zero Arena is empty and ready to use.
type Arena struct {
	seqs arena.Arena[[]Element]
}

// Interned is a handle to a sequence stored in an [Arena].
//
// The zero handle is invalid.
type Interned struct {
	ptr arena.Pointer[[]Element]
}

// IsZero returns whether this is the zero handle.
func (h Interned) IsZero() bool { return h.ptr.Nil() }

// Element returns an element that refers to h.
func (h Interned) Element() Element {
	return Element{kind: KindInterned, handle: h}
}

// Intern stores a copy of elems in the arena and returns an element that
// refers to it.
//
// A sequence may only refer to sequences interned before it, so handles
// never form cycles. Panics if elems refers to a handle this arena has not
// yet allocated.
func (a *Arena) Intern(elems ...Element) Element {
	a.check(elems)
	ptr := a.seqs.New(append([]Element(nil), elems...))
	return Element{kind: KindInterned, handle: Interned{ptr}}
}

// Deref returns the sequence h refers to.
//
// Returns false if h is not a handle allocated by this arena. The returned
// slice must not be modified.
func (a *Arena) Deref(h Interned) ([]Element, bool) {
	if a == nil || !a.seqs.Contains(h.ptr) {
		return nil, false
	}
	return *a.seqs.Deref(h.ptr), true
}

// Len returns the number of sequences in the arena.
func (a *Arena) Len() int {
	if a == nil {
		return 0
	}
	return a.seqs.Len()
}

func (a *Arena) check(elems []Element) {
	for _, e := range elems {
		switch e.kind {
		case KindInterned:
			if !a.seqs.Contains(e.handle.ptr) {
				panic(fmt.Sprintf("ir: interned sequence refers to unknown handle %d", uint32(e.handle.ptr)))
			}
		case KindBestFitting:
			for _, v := range e.variants {
				a.check(v)
			}
		}
	}
}
