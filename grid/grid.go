// Package grid provides the growable two-dimensional byte matrix that holds a
// Befunge program while it runs.
package grid

import (
	"strings"
	"unicode/utf8"
)

// Default is the value of every cell that has not been written.
const Default byte = ' '

// Grid is a rectangular matrix of bytes. Every row always holds exactly Cols()
// cells. The grid only ever grows; existing cells are never moved or dropped.
type Grid struct {
	cells [][]byte
	cols  int
}

// New creates a grid with the given extents, filled with Default. Extents
// below one are raised to one so that wraparound always has a cell to land on.
func New(rows, cols int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g := &Grid{cols: cols}
	g.addRows(rows)
	return g
}

// Parse builds a grid from program text. Rows are separated by '\n' and a
// final '\n' does not start another row. The column count is the longest row
// measured in bytes. Each rune is stored truncated to its low byte, bytes that
// are not valid UTF-8 are stored as they are, and short rows are padded with
// Default.
func Parse(text string) *Grid {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	var cols int
	for _, line := range lines {
		cols = max(cols, len(line))
	}
	g := New(len(lines), cols)
	for row, line := range lines {
		for i, col := 0, 0; i < len(line); col++ {
			r, size := utf8.DecodeRuneInString(line[i:])
			if r == utf8.RuneError && size == 1 {
				g.cells[row][col] = line[i]
			} else {
				g.cells[row][col] = byte(r)
			}
			i += size
		}
	}
	return g
}

// Rows returns the current number of rows.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the current number of columns, shared by every row.
func (g *Grid) Cols() int {
	return g.cols
}

// Contains reports whether (row, col) is inside the current extents.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && col >= 0 && row < len(g.cells) && col < g.cols
}

// Get returns the byte at (row, col). Coordinates outside the grid read as
// Default and do not grow it.
func (g *Grid) Get(row, col int) byte {
	if !g.Contains(row, col) {
		return Default
	}
	return g.cells[row][col]
}

// Set writes value at (row, col), first growing the grid so the coordinate
// is valid. Negative coordinates are ignored.
func (g *Grid) Set(row, col int, value byte) {
	if row < 0 || col < 0 {
		return
	}
	if col >= g.cols {
		g.addCols(col - g.cols + 1)
	}
	if row >= len(g.cells) {
		g.addRows(row - len(g.cells) + 1)
	}
	g.cells[row][col] = value
}

// Row returns a copy of the given row, or nil when it is out of range.
func (g *Grid) Row(row int) []byte {
	if row < 0 || row >= len(g.cells) {
		return nil
	}
	out := make([]byte, g.cols)
	copy(out, g.cells[row])
	return out
}

// Lines returns every row as a string.
func (g *Grid) Lines() []string {
	lines := make([]string, len(g.cells))
	for i := range g.cells {
		lines[i] = string(g.Row(i))
	}
	return lines
}

// String returns the rows joined by newlines.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

func (g *Grid) addRows(count int) {
	for i := 0; i < count; i++ {
		row := make([]byte, g.cols)
		for j := range row {
			row[j] = Default
		}
		g.cells = append(g.cells, row)
	}
}

func (g *Grid) addCols(count int) {
	for i, row := range g.cells {
		for j := 0; j < count; j++ {
			row = append(row, Default)
		}
		g.cells[i] = row
	}
	g.cols += count
}
