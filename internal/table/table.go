// Package table renders simple bordered text tables.
package table

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Alignment controls how a cell is padded within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripAnsi(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// width is the number of runes displayed, ignoring color escapes.
func width(s string) int {
	return utf8.RuneCountInString(stripAnsi(s))
}

// Table accumulates rows and renders them to a writer.
type Table struct {
	writer          io.Writer
	header          []string
	columnAlignment []Alignment
	headerAlignment []Alignment
	rows            [][]string
}

// NewTable creates a table that renders to w.
func NewTable(w io.Writer) *Table {
	return &Table{writer: w}
}

func (t *Table) WithHeader(header []string) *Table {
	t.header = header
	return t
}

func (t *Table) WithColumnAlignment(alignment []Alignment) *Table {
	t.columnAlignment = alignment
	return t
}

func (t *Table) WithHeaderAlignment(alignment []Alignment) *Table {
	t.headerAlignment = alignment
	return t
}

// WithRows adds every row in rows.
func (t *Table) WithRows(rows [][]string) *Table {
	t.rows = append(t.rows, rows...)
	return t
}

// Append adds a row.
func (t *Table) Append(row []string) {
	t.rows = append(t.rows, row)
}

// Render writes the table.
func (t *Table) Render() error {
	widths := t.widths()
	if len(widths) == 0 {
		return nil
	}
	var sb strings.Builder
	border := t.border(widths)
	sb.WriteString(border)
	if len(t.header) > 0 {
		sb.WriteString(t.line(t.header, widths, t.headerAlignment))
		sb.WriteString(border)
	}
	for _, row := range t.rows {
		sb.WriteString(t.line(row, widths, t.columnAlignment))
	}
	sb.WriteString(border)
	_, err := io.WriteString(t.writer, sb.String())
	return err
}

func (t *Table) widths() []int {
	var widths []int
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], width(cell))
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

func (t *Table) border(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (t *Table) line(row []string, widths []int, alignment []Alignment) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, w := range widths {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		align := AlignLeft
		if i < len(alignment) {
			align = alignment[i]
		}
		sb.WriteString(" ")
		sb.WriteString(pad(cell, w, align))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
	return sb.String()
}

func pad(s string, w int, align Alignment) string {
	extra := w - width(s)
	if extra <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", extra) + s
	case AlignCenter:
		left := extra / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", extra-left)
	default:
		return s + strings.Repeat(" ", extra)
	}
}
