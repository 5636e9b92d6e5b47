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

package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/reprint/internal/arena"
)

func TestPointers(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var a arena.Arena[int]

	p1 := a.New(5)
	v1 := a.Deref(p1)
	assert.Equal(5, *v1)

	for i := range 16 {
		a.New(i + 6)
	}
	assert.Equal(17, a.Len())
	assert.Equal(20, *a.Deref(16))
	assert.Equal(21, *a.Deref(17))
	assert.Same(a.Deref(p1), v1)

	for i := range 32 {
		a.New(i + 22)
	}
	assert.Equal(52, *a.Deref(48))
	assert.Equal(53, *a.Deref(49))
	assert.Same(a.Deref(p1), v1)

	var n int
	for p, v := range a.All() {
		n++
		assert.Equal(arena.Pointer[int](n), p)
		assert.Equal(n+4, *v)
	}
	assert.Equal(a.Len(), n)
}

func TestContains(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var a arena.Arena[string]
	assert.False(a.Contains(0))
	assert.False(a.Contains(1))

	p := a.New("x")
	assert.True(a.Contains(p))
	assert.False(a.Contains(p + 1))

	assert.Panics(func() { a.Deref(0) })
	assert.Panics(func() { a.Deref(p + 1) })
}
