package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)
	table.WithHeader([]string{"HEADER1", "H2", "h3"})
	table.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	table.WithHeaderAlignment([]Alignment{AlignCenter, AlignCenter, AlignRight})
	table.Append([]string{"ROW1", "ROW2", "foo bar"})
	table.Append([]string{"a", "b", "c"})
	require.Nil(t, table.Render())

	expected := `
+---------+------+---------+
| HEADER1 |  H2  |      h3 |
+---------+------+---------+
| ROW1    | ROW2 | foo bar |
| a       |    b | c       |
+---------+------+---------+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestTableWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)
	table.Append([]string{"x", "yy"})
	require.Nil(t, table.Render())
	expected := `
+---+----+
| x | yy |
+---+----+
`
	require.Equal(t, strings.TrimSpace(expected)+"\n", buf.String())
}

func TestEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, NewTable(&buf).Render())
	require.Equal(t, "", buf.String())
}

func TestColoredTable(t *testing.T) {
	oldNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = oldNoColor }()

	var buf bytes.Buffer

	// Create a table with colored content
	table := NewTable(&buf)
	table.WithHeader([]string{"HEADER1", "HEADER2", "HEADER3"})
	table.WithColumnAlignment([]Alignment{AlignLeft, AlignRight, AlignLeft})
	table.WithHeaderAlignment([]Alignment{AlignCenter, AlignCenter, AlignCenter})

	table.Append([]string{
		color.New(color.Bold).Sprint("Bold text"),
		"12345",
		color.GreenString("Green text"),
	})
	table.Append([]string{
		"Normal",
		color.New(color.Bold).Sprint("999"),
		color.GreenString("More color"),
	})
	require.Nil(t, table.Render())

	result := buf.String()
	require.Contains(t, result, "\x1b[")

	// Color codes must not break alignment
	lines := strings.Split(result, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	expectedLength := len(lines[0])
	for i := 1; i < len(lines)-1; i++ {
		require.Equal(t, expectedLength, len(stripAnsi(lines[i])),
			"Line %d has incorrect length after stripping ANSI codes", i)
	}
}
