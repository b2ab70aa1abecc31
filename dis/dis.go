// Package dis supports analysis of Befunge programs by listing the decoded
// instruction in every occupied cell of a grid.
package dis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/deepnoodle-ai/befunge/grid"
	"github.com/deepnoodle-ai/befunge/internal/table"
	"github.com/deepnoodle-ai/befunge/op"
	"github.com/fatih/color"
)

// Instruction is a decoded grid cell.
type Instruction struct {
	Row         int
	Col         int
	Cell        byte
	Instruction op.Instruction
}

// Name returns the opcode name of the cell.
func (i Instruction) Name() string {
	return i.Instruction.Code.String()
}

// Disassemble decodes every cell of g that does not hold the default byte,
// in row-major order. Cells are decoded as if the cursor reached them outside
// of string mode.
func Disassemble(g *grid.Grid) []Instruction {
	var instructions []Instruction
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.Get(row, col)
			if cell == grid.Default {
				continue
			}
			instructions = append(instructions, Instruction{
				Row:         row,
				Col:         col,
				Cell:        cell,
				Instruction: op.Decode(cell),
			})
		}
	}
	return instructions
}

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	cyan  = color.New(color.FgHiCyan).SprintFunc()
)

// Print a table of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) error {
	var lines [][]string
	for _, instr := range instructions {
		name := instr.Name()
		if instr.Instruction.Code == op.Nop {
			name = faint(name)
		} else {
			name = bold(name)
		}
		var info string
		if instr.Instruction.Code == op.Push {
			info = cyan(strconv.Itoa(int(instr.Instruction.Value)))
		} else if pops := op.GetInfo(instr.Instruction.Code).Pops; pops > 0 {
			info = faint(fmt.Sprintf("pops %d", pops))
		}
		lines = append(lines, []string{
			strconv.Itoa(instr.Row),
			strconv.Itoa(instr.Col),
			FormatCell(instr.Cell),
			name,
			info,
		})
	}

	return table.NewTable(writer).
		WithHeader([]string{"ROW", "COL", "CELL", "OPCODE", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignRight,
			table.AlignLeft,
			table.AlignLeft,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// FormatCell shows printable ASCII as a quoted character and anything else
// as a hex byte.
func FormatCell(b byte) string {
	if b >= 0x21 && b < 0x7f {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("0x%02x", b)
}
