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
	"fmt"
	"strings"
)

const (
	IndentTab   IndentStyle = iota // One tab per level.
	IndentSpace                    // [Options.IndentWidth] spaces per level.
)

// IndentStyle is the text used for one level of indentation.
type IndentStyle byte

// ParseIndentStyle parses "tab" or "space".
func ParseIndentStyle(s string) (IndentStyle, error) {
	switch strings.ToLower(s) {
	case "tab", "tabs":
		return IndentTab, nil
	case "space", "spaces":
		return IndentSpace, nil
	default:
		return 0, fmt.Errorf("unknown indent style %q", s)
	}
}

// String implements [fmt.Stringer].
func (s IndentStyle) String() string {
	switch s {
	case IndentTab:
		return "tab"
	case IndentSpace:
		return "space"
	default:
		return fmt.Sprintf("IndentStyle(%d)", byte(s))
	}
}

// Options specifies configuration for [Print].
type Options struct {
	// The column after which the printer prefers to break lines. Defaults
	// to 80.
	PrintWidth int

	// How each level of indentation is written. Defaults to tabs.
	IndentStyle IndentStyle

	// The number of spaces per level when IndentStyle is IndentSpace.
	// Defaults to 2.
	IndentWidth int

	// The number of columns a tab character advances to. Defaults to
	// IndentWidth.
	TabWidth int

	// Returns the column reached by printing text, which contains no
	// newlines, starting at column. Defaults to a function that honors tab
	// stops and counts East Asian wide characters as two columns.
	Measure func(column int, text string) int
}

// WithDefaults replaces any unset (read: zero value) fields of an Options which
// specify a default value with that default value.
func (o Options) WithDefaults() Options {
	if o.PrintWidth == 0 {
		o.PrintWidth = 80
	}
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	if o.TabWidth == 0 {
		o.TabWidth = o.IndentWidth
	}
	if o.Measure == nil {
		o.Measure = TabStops(o.TabWidth)
	}
	return o
}

// indent returns the text for the given number of indentation levels.
func (o Options) indent(levels int) string {
	if levels <= 0 {
		return ""
	}
	if o.IndentStyle == IndentSpace {
		return strings.Repeat(" ", levels*o.IndentWidth)
	}
	return strings.Repeat("\t", levels)
}
