// Package divert implements the diversion manager (spec §4.7): numbered
// output buffers, with diversion 0 going straight to the real sink and
// negative diversions discarding text.
//
// Grounded on original_source/m4_processor.py's shipout_text (the
// start_of_output_line/output_current_line bookkeeping used to decide
// when to emit a "#line N" directive) and on the teacher's recipe.go
// printIndented, whose character-at-a-time writer loop this follows.
package divert

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Manager owns every numbered diversion buffer and the real output sink.
type Manager struct {
	out     io.Writer
	sync    bool
	current int
	buffers map[int]*bytes.Buffer

	startOfLine  bool
	expectedLine int
	shownFile    string
}

func New(out io.Writer, syncOutput bool) *Manager {
	return &Manager{
		out:         out,
		sync:        syncOutput,
		buffers:     make(map[int]*bytes.Buffer),
		startOfLine: true,
	}
}

// SetCurrent switches the current diversion (spec §4.7 make_diversion).
func (m *Manager) SetCurrent(id int) {
	m.current = id
	if id > 0 {
		m.ensure(id)
	}
}

func (m *Manager) Current() int { return m.current }

func (m *Manager) ensure(id int) *bytes.Buffer {
	b, ok := m.buffers[id]
	if !ok {
		b = &bytes.Buffer{}
		m.buffers[id] = b
	}
	return b
}

// Ship is the expander's single entry point for scanned-but-not-expanded
// text (spec §4.7 shipout_text).
func (m *Manager) Ship(text string, line int, file string) error {
	if m.current < 0 {
		return nil // black hole
	}
	if !m.sync {
		return m.write(text)
	}

	if m.startOfLine {
		m.expectedLine++
		if m.expectedLine != line || (file != "" && file != m.shownFile) {
			var stmt string
			if file != "" && file != m.shownFile {
				stmt = fmt.Sprintf("#line %d \"%s\"\n", line, file)
			} else {
				stmt = fmt.Sprintf("#line %d\n", line)
			}
			if err := m.write(stmt); err != nil {
				return err
			}
			m.expectedLine = line
			m.shownFile = file
		}
		m.startOfLine = false
	}

	for _, r := range text {
		if err := m.write(string(r)); err != nil {
			return err
		}
		m.startOfLine = r == '\n'
	}
	return nil
}

func (m *Manager) write(s string) error {
	if m.current < 0 {
		return nil // black hole
	}
	if m.current == 0 {
		_, err := io.WriteString(m.out, s)
		return err
	}
	m.ensure(m.current).WriteString(s)
	return nil
}

// Undivert moves the named diversions' buffers into the current
// diversion, in the order given, deleting them as it goes (spec §4.7).
func (m *Manager) Undivert(ids []int) error {
	for _, id := range ids {
		if id == m.current {
			continue
		}
		buf, ok := m.buffers[id]
		if !ok {
			continue
		}
		text := buf.String()
		delete(m.buffers, id)
		if err := m.write(text); err != nil {
			return errors.Wrapf(err, "undivert %d", id)
		}
	}
	return nil
}

// UndivertAll flushes every diversion except the current one, in
// ascending id order (spec §4.6 undivert() with no arguments).
func (m *Manager) UndivertAll() error {
	ids := make([]int, 0, len(m.buffers))
	for id := range m.buffers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return m.Undivert(ids)
}
