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
	"github.com/bufbuild/reprint/internal/ext/stringsx"
	"github.com/bufbuild/reprint/ir"
)

// measurement is the state of one fits check.
//
// A measurement walks a [FitsQueue] from the printer's current position,
// pretending to print what it pops, and gives up as soon as the column goes
// past the print width. Reaching a point where the printer would break the
// line means everything before it fit.
type measurement struct {
	*printer
	queue *FitsQueue

	column, spaces int

	// Group modes are layered: modes holds the ones pushed during the
	// measurement, over the printer's own modes[:base].
	modes []mode
	base  int

	// If set, the measurement ends successfully at the end of the first entry
	// it enters. Otherwise, it only ends at a line break or the end of the
	// document.
	entry   bool
	entries int

	// If set, an expanded group met in flat mode fails the measurement.
	// Otherwise its content is measured broken.
	strict bool
}

// fits runs a fits check over q. modes is the initial layer of group modes
// for the content of q.
func (p *printer) fits(q *FitsQueue, entry, strict bool, modes ...mode) bool {
	m := measurement{
		printer: p,
		queue:   q,
		column:  p.column,
		spaces:  p.spaces,
		modes:   modes,
		base:    len(p.modes),
		entry:   entry,
		strict:  strict,
	}
	return m.measure()
}

func (m *measurement) measure() bool {
	for {
		e, ok := m.queue.Pop()
		if !ok {
			return true
		}

		switch e.Kind() {
		case ir.KindToken, ir.KindText:
			if fits, done := m.text(e.Text()); done {
				return fits
			}

		case ir.KindVerbatim:
			if e.Node() == nil {
				continue
			}
			if fits, done := m.text(e.Node().Text()); done {
				return fits
			}

		case ir.KindSpace:
			m.spaces = max(m.spaces, 1)

		case ir.KindLine:
			switch e.Line() {
			case ir.LineHard:
				// Only the text before the break is measured. If this group
				// goes flat, a SoftLineOrSpace after the break prints as a
				// space, and the line it is on can run past the print width.
				return true
			case ir.LineSoft, ir.LineSoftOrSpace:
				if m.mode() == broken {
					return true
				}
				if e.Line() == ir.LineSoftOrSpace {
					m.spaces = max(m.spaces, 1)
				}
			}

		case ir.KindTag:
			kind, end := e.Tag()
			switch {
			case kind == ir.TagGroup && !end:
				if !e.Expanded() {
					m.modes = append(m.modes, m.mode())
					break
				}
				if m.mode() == flat && m.strict {
					// Content that must be broken cannot be part of a flat
					// layout.
					return false
				}
				m.modes = append(m.modes, broken)

			case kind == ir.TagEntry && !end:
				m.entries++
				m.modes = append(m.modes, m.mode())

			case kind == ir.TagEntry && end:
				m.entries--
				if m.entry && m.entries == 0 {
					return true
				}
				m.pop()

			case kind == ir.TagGroup && end:
				m.pop()
			}

		case ir.KindBestFitting:
			variants := e.Variants()
			if len(variants) == 0 {
				continue
			}
			if m.mode() == flat {
				m.queue.Push(variants[0])
			} else {
				m.queue.Push(variants[len(variants)-1])
			}
		}
	}
}

// text measures some text. done is set if the measurement is over, in which
// case fits is its result.
func (m *measurement) text(text string) (fits, done bool) {
	if text == "" {
		return false, false
	}

	m.column += m.spaces
	m.spaces = 0

	line, more := stringsx.FirstLine(text)
	m.column = m.Measure(m.column, line)
	if m.column > m.PrintWidth {
		return false, true
	}
	return true, more
}

func (m *measurement) mode() mode {
	switch {
	case len(m.modes) > 0:
		return m.modes[len(m.modes)-1]
	case m.base > 0:
		return m.printer.modes[m.base-1]
	default:
		return broken
	}
}

func (m *measurement) pop() {
	switch {
	case len(m.modes) > 0:
		m.modes = m.modes[:len(m.modes)-1]
	case m.base > 0:
		m.base--
	}
}
