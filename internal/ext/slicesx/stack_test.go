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

package slicesx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/reprint/internal/ext/slicesx"
)

func TestStack(t *testing.T) {
	t.Parallel()

	var s []int
	_, ok := slicesx.Last(s)
	assert.False(t, ok)
	assert.Nil(t, slicesx.LastPointer(s))

	s = append(s, 1, 2, 3)
	*slicesx.LastPointer(s) = 4
	v, ok := slicesx.Pop(&s)
	assert.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, []int{1, 2}, s)

	slicesx.Truncate(&s, 1)
	assert.Equal(t, []int{1}, s)
	assert.Equal(t, 0, s[:2][1])
}
