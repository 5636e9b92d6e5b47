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
	"github.com/rivo/uniseg"

	"github.com/bufbuild/reprint/internal/ext/stringsx"
)

// TabStops returns a measuring function for [Options.Measure] that places
// tab stops every tabWidth columns.
func TabStops(tabWidth int) func(column int, text string) int {
	tabWidth = max(tabWidth, 1)
	return func(column int, text string) int {
		return stringWidth(tabWidth, column, text)
	}
}

// stringWidth calculates the column reached by rendering text at the given
// column, accounting for tabstops.
func stringWidth(tabWidth, column int, text string) int {
	// We can't just use StringWidth, because that doesn't respect tabstops
	// correctly.
	first := true
	for next := range stringsx.Split(text, '\t') {
		if !first {
			column += tabWidth - column%tabWidth
		}
		first = false
		column += uniseg.StringWidth(next)
	}
	return column
}
