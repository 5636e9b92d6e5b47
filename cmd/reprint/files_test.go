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

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasMeta(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"*.lit", "a/**/b.lit", "x?.lit", "[ab].lit", "{a,b}.lit"} {
		assert.True(t, hasMeta(path), "%q", path)
	}
	for _, path := range []string{"a.lit", "dir/sub/b.lit", "."} {
		assert.False(t, hasMeta(path), "%q", path)
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.lit":       "1",
		"sub/b.lit":   "2",
		"sub/c.md":    "3",
		"sub/d/e.lit": "4",
	})
	a := filepath.Join(dir, "a.lit")
	b := filepath.Join(dir, "sub", "b.lit")
	e := filepath.Join(dir, "sub", "d", "e.lit")

	paths, err := expand([]string{filepath.Join(dir, "sub")})
	require.NoError(t, err)
	assert.Equal(t, []string{b, e}, paths)

	paths, err = expand([]string{filepath.Join(dir, "**", "*.lit"), a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, e}, paths)

	paths, err = expand([]string{a})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, paths)

	_, err = expand([]string{filepath.Join(dir, "*.txt")})
	require.Error(t, err)
}
