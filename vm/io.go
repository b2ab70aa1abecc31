package vm

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	if r == nil {
		r = strings.NewReader("")
	}
	return &lineReader{r: bufio.NewReader(r)}
}

// readLine returns the next line including its '\n'. At end of input it
// returns whatever was left, possibly "", and no error.
func (lr *lineReader) readLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

// readInt reads a line and parses it as a decimal byte. Anything that is not
// a number in 0-255 reads as 0.
func (lr *lineReader) readInt() (byte, error) {
	line, err := lr.readLine()
	if err != nil {
		return 0, err
	}
	s := strings.TrimPrefix(strings.TrimSpace(line), "+")
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, nil
	}
	return byte(n), nil
}

// readChar reads a line and returns its first character truncated to a byte.
// A blank line yields '\n' and end of input yields 0.
func (lr *lineReader) readChar() (byte, error) {
	line, err := lr.readLine()
	if err != nil {
		return 0, err
	}
	if line == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(line)
	if r == utf8.RuneError && size == 1 {
		return line[0], nil
	}
	return byte(r), nil
}

type flushWriter struct {
	w *bufio.Writer
}

func newFlushWriter(w io.Writer) *flushWriter {
	if w == nil {
		w = io.Discard
	}
	return &flushWriter{w: bufio.NewWriter(w)}
}

func (fw *flushWriter) writeString(s string) error {
	if _, err := fw.w.WriteString(s); err != nil {
		return err
	}
	return fw.w.Flush()
}

// writeInt writes v in decimal with no separator.
func (fw *flushWriter) writeInt(v byte) error {
	return fw.writeString(strconv.Itoa(int(v)))
}

// writeChar writes v as the code point U+00XX, so values above 0x7f are
// UTF-8 encoded as two bytes.
func (fw *flushWriter) writeChar(v byte) error {
	return fw.writeString(string(rune(v)))
}
