// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
	"github.com/clubdesk/clubdesk-tui/internal/util"
)

// =============================================================================
// DATA TABLE COMPONENT
// =============================================================================

// Column describes one table column. Width is in terminal cells; cell text is
// truncated with an ellipsis when it does not fit.
type Column struct {
	Title string
	Width int
}

// Table is a scrollable row table with single-row selection. The list views
// feed it pre-rendered string cells and react to the cursor themselves.
type Table struct {
	Columns []Column
	Rows    [][]string

	cursor int
	offset int
	height int // visible rows, excluding the header

	theme *styles.Theme
}

// NewTable creates a table showing ten rows until resized.
func NewTable(theme *styles.Theme, cols []Column) *Table {
	return &Table{
		Columns: cols,
		height:  10,
		theme:   theme,
	}
}

// SetRows replaces the data and clamps the cursor.
func (t *Table) SetRows(rows [][]string) {
	t.Rows = rows
	if t.cursor >= len(rows) {
		t.cursor = len(rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.clampOffset()
}

// SetHeight sets the number of visible data rows.
func (t *Table) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	t.height = h
	t.clampOffset()
}

// Cursor returns the selected row index, -1 when the table is empty.
func (t *Table) Cursor() int {
	if len(t.Rows) == 0 {
		return -1
	}
	return t.cursor
}

// MoveUp moves the selection up one row.
func (t *Table) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.clampOffset()
}

// MoveDown moves the selection down one row.
func (t *Table) MoveDown() {
	if t.cursor < len(t.Rows)-1 {
		t.cursor++
	}
	t.clampOffset()
}

// GotoTop jumps to the first row.
func (t *Table) GotoTop() {
	t.cursor = 0
	t.offset = 0
}

// GotoBottom jumps to the last row.
func (t *Table) GotoBottom() {
	if len(t.Rows) > 0 {
		t.cursor = len(t.Rows) - 1
	}
	t.clampOffset()
}

func (t *Table) clampOffset() {
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// View renders the header and the visible window of rows.
func (t *Table) View() string {
	var b strings.Builder

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = util.PadWidth(c.Title, c.Width)
	}
	b.WriteString(t.theme.TableHeader.Render(strings.Join(header, "  ")))
	b.WriteString("\n")

	if len(t.Rows) == 0 {
		b.WriteString(t.theme.ShortcutDesc.Render("  nothing to show"))
		return b.String()
	}

	end := t.offset + t.height
	if end > len(t.Rows) {
		end = len(t.Rows)
	}
	for i := t.offset; i < end; i++ {
		cells := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			cell := ""
			if j < len(t.Rows[i]) {
				cell = t.Rows[i][j]
			}
			cells[j] = util.PadWidth(cell, c.Width)
		}
		line := strings.Join(cells, "  ")
		if i == t.cursor {
			line = t.theme.TableRowSelected.Render(line)
		} else {
			line = t.theme.TableRow.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
