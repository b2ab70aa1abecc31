package vm

// Stack is an unbounded LIFO of bytes. The operator methods implement the
// operand-recovery rules applied when the stack runs short: a missing right
// operand makes the operation a no-op, and values popped before a missing
// operand is discovered are pushed back.
type Stack struct {
	values []byte
}

// Push places v on top of the stack.
func (s *Stack) Push(v byte) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. The bool is false on an empty stack.
func (s *Stack) Pop() (byte, bool) {
	n := len(s.values)
	if n == 0 {
		return 0, false
	}
	v := s.values[n-1]
	s.values = s.values[:n-1]
	return v, true
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (byte, bool) {
	n := len(s.values)
	if n == 0 {
		return 0, false
	}
	return s.values[n-1], true
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy of the stack, bottom first.
func (s *Stack) Values() []byte {
	out := make([]byte, len(s.values))
	copy(out, s.values)
	return out
}

// Binary pops the right then the left operand and pushes fn(left, right).
// With no right operand nothing happens; with no left operand the right one
// is pushed back unchanged.
func (s *Stack) Binary(fn func(a, b byte) byte) {
	b, ok := s.Pop()
	if !ok {
		return
	}
	if a, ok := s.Pop(); ok {
		b = fn(a, b)
	}
	s.Push(b)
}

// Not replaces the top value with 1 if it was 0 and with 0 otherwise.
func (s *Stack) Not() {
	if a, ok := s.Pop(); ok {
		if a == 0 {
			s.Push(1)
		} else {
			s.Push(0)
		}
	}
}

// Dup pushes a copy of the top value.
func (s *Stack) Dup() {
	if a, ok := s.Peek(); ok {
		s.Push(a)
	}
}

// Swap exchanges the top two values. A lone value is left in place.
func (s *Stack) Swap() {
	b, ok := s.Pop()
	if !ok {
		return
	}
	if a, ok := s.Pop(); ok {
		s.Push(b)
		b = a
	}
	s.Push(b)
}

// Discard drops the top value if there is one.
func (s *Stack) Discard() {
	s.Pop()
}

// PopCondition pops a value for a conditional branch. An empty stack reads
// as zero.
func (s *Stack) PopCondition() byte {
	v, _ := s.Pop()
	return v
}

// popPut pops the column, row and value for a put. When the value or row is
// missing, whatever was popped is restored in its original order and ok is
// false.
func (s *Stack) popPut() (row, col, value byte, ok bool) {
	col, ok = s.Pop()
	if !ok {
		return
	}
	row, ok = s.Pop()
	if !ok {
		s.Push(col)
		return
	}
	value, ok = s.Pop()
	if !ok {
		s.Push(row)
		s.Push(col)
		return
	}
	return row, col, value, true
}

// popGet pops the column and row for a get, restoring the column when the
// row is missing.
func (s *Stack) popGet() (row, col byte, ok bool) {
	col, ok = s.Pop()
	if !ok {
		return
	}
	row, ok = s.Pop()
	if !ok {
		s.Push(col)
		return
	}
	return row, col, true
}

func add(a, b byte) byte { return a + b }
func sub(a, b byte) byte { return a - b }
func mul(a, b byte) byte { return a * b }

// Division and modulo by zero yield 0.
func div(a, b byte) byte {
	if b == 0 {
		return 0
	}
	return a / b
}

func mod(a, b byte) byte {
	if b == 0 {
		return 0
	}
	return a % b
}

func greater(a, b byte) byte {
	if a > b {
		return 1
	}
	return 0
}
