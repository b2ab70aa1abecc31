package vm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/befunge/errz"
	"github.com/deepnoodle-ai/befunge/grid"
	"github.com/stretchr/testify/require"
)

// run executes source to completion with the given input and returns the VM
// and everything written to the output.
func run(t *testing.T, source, input string, opts ...Option) (*VirtualMachine, string) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithInput(strings.NewReader(input)), WithOutput(&out)}, opts...)
	machine, err := Run(context.Background(), source, opts...)
	require.Nil(t, err)
	require.Equal(t, Terminated, machine.State())
	return machine, out.String()
}

func TestStackResults(t *testing.T) {
	tests := []struct {
		name   string
		source string
		input  string
		stack  []byte
	}{
		{"digits", "0123456789@", "", []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"add on empty", "+@", "", []byte{}},
		{"add with one operand", "4+@", "", []byte{4}},
		{"swap with one operand", "5\\@", "", []byte{5}},
		{"swap", "12\\@", "", []byte{2, 1}},
		{"dup empty", ":@", "", []byte{}},
		{"dup", "3:@", "", []byte{3, 3}},
		{"pop empty", "$@", "", []byte{}},
		{"pop", "12$@", "", []byte{1}},
		{"string literal", `"abc"@`, "", []byte{'a', 'b', 'c'}},
		{"string keeps operators", `"#@1"@`, "", []byte{'#', '@', '1'}},
		{"string of raw bytes", "\"\xe9\xff\"@", "", []byte{0xE9, 0xFF}},
		{"bridge", "1#2@", "", []byte{1}},
		{"bridge over quote", `#"1@`, "", []byte{1}},
		{"input number and char", "&~@", "5\nZ\n", []byte{5, 90}},
		{"input number eof", "&@", "", []byte{0}},
		{"input number garbage", "&@", "abc\n", []byte{0}},
		{"input number out of range", "&@", "300\n", []byte{0}},
		{"input number padded", "&@", "  42 \n", []byte{42}},
		{"input number plus sign", "&@", "+7\n", []byte{7}},
		{"input char eof", "~@", "", []byte{0}},
		{"input char blank line", "~@", "\n", []byte{'\n'}},
		{"input char unicode", "~@", "é\n", []byte{0xE9}},
		{"input without newline", "&&@", "12", []byte{12, 0}},
		{"get", "00g@", "", []byte{'0'}},
		{"get missing row", "0g@", "", []byte{0}},
		{"get empty", "g@", "", []byte{}},
		{"get out of range", "99g@", "", []byte{' '}},
		{"put missing value", "99p@", "", []byte{9, 9}},
		{"put missing row", "9p@", "", []byte{9}},
		{"put empty", "p@", "", []byte{}},
		{"not zero", "0!@", "", []byte{1}},
		{"not nonzero", "7!@", "", []byte{0}},
		{"horizontal if zero", "0_2@", "", []byte{2}},
		{"horizontal if nonzero", "1_2@", "", []byte{1}},
		{"horizontal if empty", "_2@", "", []byte{2}},
		{"vertical if zero", "0|\n 2\n @", "", []byte{2}},
		{"vertical if nonzero", "1|\n 2\n @", "", []byte{}},
		{"vertical if empty", " |\n 2\n @", "", []byte{2}},
		{"unknown bytes are no-ops", "1xyz\x002@", "", []byte{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine, _ := run(t, tt.source, tt.input)
			require.Equal(t, tt.stack, machine.Stack())
		})
	}
}

func TestOutput(t *testing.T) {
	tests := []struct {
		name   string
		source string
		output string
	}{
		{"add and print", "91+.@", "10"},
		{"no separator", "12..@", "21"},
		{"print empty", ".,@", ""},
		{"chars", `"iH",,@`, "Hi"},
		{"wrapping multiply", "99*9*.@", "217"},
		{"subtract wraps", "01-.@", "255"},
		{"divide", "72/.@", "3"},
		{"divide by zero", "50/.@", "0"},
		{"modulo", "72%.@", "1"},
		{"modulo by zero", "50%.@", "0"},
		{"greater", "52`.@", "1"},
		{"not greater", "25`.@", "0"},
		{"high byte as code point", "55*8*,@", "È"},
		{"newline", "91+,@", "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := run(t, tt.source, "")
			require.Equal(t, tt.output, out)
		})
	}
}

func TestEndDoesNotMove(t *testing.T) {
	machine, _ := run(t, "@", "")
	require.Equal(t, Cursor{}, machine.Cursor())
	require.Equal(t, 1, machine.Steps())
}

func TestLoopWithDirections(t *testing.T) {
	// Counts down from 3 to 0, printing each value.
	source := strings.Join([]string{
		`3>:.:v`,
		` ^ -1_@`,
	}, "\n")
	_, out := run(t, source, "")
	require.Equal(t, "3210", out)
}

func TestPutWritesGrid(t *testing.T) {
	machine, _ := run(t, `"A"00p@`, "")
	require.Equal(t, byte('A'), machine.Grid().Get(0, 0))
	require.Empty(t, machine.Stack())
}

func TestPutGrowsGrid(t *testing.T) {
	machine, _ := run(t, "155p@", "")
	g := machine.Grid()
	require.Equal(t, 6, g.Rows())
	require.Equal(t, 6, g.Cols())
	require.Equal(t, byte(1), g.Get(5, 5))
	require.Equal(t, "155p@ ", g.Lines()[0])
	for r := 1; r < 5; r++ {
		require.Equal(t, "      ", g.Lines()[r])
	}
}

func TestSelfModifyingProgram(t *testing.T) {
	// Writes '@' into the cell after the put, so the program ends there.
	source := `"@"06p 1.`
	machine, out := run(t, source, "")
	require.Equal(t, "", out)
	require.Equal(t, Cursor{Row: 0, Col: 6}, machine.Cursor())
}

func TestWrapUsesCurrentExtents(t *testing.T) {
	// The put widens the grid to ten columns; the cursor must then continue
	// into the new columns instead of wrapping at the original width.
	machine := New(grid.Parse("109p"))
	for i := 0; i < 4; i++ {
		done, err := machine.Step()
		require.Nil(t, err)
		require.False(t, done)
	}
	require.Equal(t, 10, machine.Grid().Cols())
	require.Equal(t, Cursor{Row: 0, Col: 4}, machine.Cursor())
}

func TestRandomDirection(t *testing.T) {
	machine, _ := run(t, "?2@", "", WithSampler(&FixedSampler{Directions: []Direction{Right}}))
	require.Equal(t, []byte{2}, machine.Stack())

	machine, _ = run(t, "?2@", "", WithSampler(&FixedSampler{Directions: []Direction{Left}}))
	require.Empty(t, machine.Stack())
}

func TestRandomDirectionSeeded(t *testing.T) {
	source := strings.Join([]string{
		`v   >1.@`,
		`>   ?<`,
		`    >2.@`,
	}, "\n")
	_, first := run(t, source, "", WithSeed(7), WithMaxSteps(10000))
	for i := 0; i < 5; i++ {
		_, again := run(t, source, "", WithSeed(7), WithMaxSteps(10000))
		require.Equal(t, first, again)
	}
}

func TestStep(t *testing.T) {
	machine := New(grid.Parse("12@"))
	done, err := machine.Step()
	require.Nil(t, err)
	require.False(t, done)
	require.Equal(t, []byte{1}, machine.Stack())

	_, err = machine.Step()
	require.Nil(t, err)
	done, err = machine.Step()
	require.Nil(t, err)
	require.True(t, done)
	require.Equal(t, Terminated, machine.State())

	done, err = machine.Step()
	require.True(t, done)
	require.ErrorIs(t, err, ErrTerminated)

	// Running a finished program is a no-op.
	require.Nil(t, machine.Run(context.Background()))
}

func TestStringModeState(t *testing.T) {
	machine := New(grid.Parse(`"a"@`))
	_, err := machine.Step()
	require.Nil(t, err)
	require.Equal(t, StringMode, machine.State())
	_, err = machine.Step()
	require.Nil(t, err)
	_, err = machine.Step()
	require.Nil(t, err)
	require.Equal(t, Running, machine.State())
	require.Equal(t, []byte{'a'}, machine.Stack())
}

func TestMaxSteps(t *testing.T) {
	machine, err := Run(context.Background(), "1", WithMaxSteps(10))
	require.NotNil(t, err)
	kind, ok := errz.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errz.ErrLimit, kind)
	require.Equal(t, 10, machine.Steps())
	require.Len(t, machine.Stack(), 10)
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, " ", WithContextCheckInterval(1))
	require.NotNil(t, err)
	require.True(t, errors.Is(err, context.Canceled))
	kind, _ := errz.KindOf(err)
	require.Equal(t, errz.ErrHalted, kind)
}

type failingWriter struct{}

var errBrokenPipe = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errBrokenPipe
}

func TestOutputFailureIsFatal(t *testing.T) {
	machine, err := Run(context.Background(), "12.3@", WithOutput(failingWriter{}))
	require.NotNil(t, err)
	require.True(t, errors.Is(err, errBrokenPipe))
	kind, _ := errz.KindOf(err)
	require.Equal(t, errz.ErrIO, kind)
	require.Equal(t, Running, machine.State())
	require.Equal(t, Cursor{Row: 0, Col: 2}, machine.Cursor())
	require.Equal(t, []byte{1}, machine.Stack())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errBrokenPipe
}

func TestInputFailureIsFatal(t *testing.T) {
	_, err := Run(context.Background(), "&@", WithInput(failingReader{}))
	require.True(t, errors.Is(err, errBrokenPipe))
}

func TestSnapshot(t *testing.T) {
	machine, _ := run(t, "12\\@", "")
	snap := machine.Snapshot()
	require.Equal(t, Snapshot{
		State:     "terminated",
		Row:       0,
		Col:       3,
		Direction: "right",
		Steps:     4,
		Stack:     []int{2, 1},
		Rows:      1,
		Cols:      4,
		Grid:      []string{"12\\@"},
	}, snap)
}

func TestNilGrid(t *testing.T) {
	machine := New(nil, WithMaxSteps(3))
	err := machine.Run(context.Background())
	kind, _ := errz.KindOf(err)
	require.Equal(t, errz.ErrLimit, kind)
}
