// Package format renders API results as fixed-width terminal tables.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// PadToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func PadToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	switch {
	case currentWidth > width:
		ellipsisWidth := runewidth.StringWidth(ellipsis)
		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis

		// Wide runes can leave the result one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	case currentWidth < width:
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}

// Table accumulates rows and writes them with aligned columns.
type Table struct {
	headers  []string
	rows     [][]string
	maxWidth int
}

// NewTable creates a table. Cells wider than maxWidth are truncated;
// maxWidth <= 0 disables truncation.
func NewTable(maxWidth int, headers ...string) *Table {
	return &Table{headers: headers, maxWidth: maxWidth}
}

// AddRow appends a row. Missing cells are rendered empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Write renders the table to w.
func (t *Table) Write(w io.Writer) error {
	widths := make([]int, len(t.headers))
	measure := func(cells []string) {
		for i := range widths {
			if i >= len(cells) {
				continue
			}
			cw := runewidth.StringWidth(cells[i])
			if t.maxWidth > 0 && cw > t.maxWidth {
				cw = t.maxWidth
			}
			if cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}

	if err := t.writeLine(w, t.headers, widths); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := t.writeLine(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) writeLine(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = PadToWidth(cell, width)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	return err
}
