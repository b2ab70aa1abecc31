// Package vm provides a VirtualMachine that executes Befunge programs laid out
// on a grid.
package vm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/deepnoodle-ai/befunge/errz"
	"github.com/deepnoodle-ai/befunge/grid"
	"github.com/deepnoodle-ai/befunge/op"
)

// DefaultContextCheckInterval is the number of steps between checks of
// ctx.Done() in Run. Set to 0 with WithContextCheckInterval to disable.
const DefaultContextCheckInterval = 1000

// ErrTerminated is returned by Step when the program has already ended.
var ErrTerminated = errors.New("program has terminated")

// State is the execution state of the VM.
type State uint8

const (
	Running State = iota
	StringMode
	Terminated
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case StringMode:
		return "string"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type VirtualMachine struct {
	grid      *grid.Grid
	stack     Stack
	cursor    Cursor
	direction Direction
	state     State
	skip      bool
	steps     int

	input    *lineReader
	output   *flushWriter
	sampler  Sampler
	observer Observer

	maxSteps             int
	contextCheckInterval int

	running  bool
	runMutex sync.Mutex
}

// New creates a VM that will execute the program held in g, starting at the
// top-left cell heading right with an empty stack. The VM takes ownership of
// g and writes to it when the program uses the put instruction.
func New(g *grid.Grid, options ...Option) *VirtualMachine {
	if g == nil {
		g = grid.New(1, 1)
	}
	vm := &VirtualMachine{
		grid:                 g,
		direction:            Right,
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(vm)
	}
	if vm.input == nil {
		vm.input = newLineReader(nil)
	}
	if vm.output == nil {
		vm.output = newFlushWriter(nil)
	}
	if vm.sampler == nil {
		vm.sampler = NewRandomSampler(rand.Uint64())
	}
	return vm
}

func (vm *VirtualMachine) start() error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run executes the program until it reaches the end instruction. It returns
// nil when the program ends itself, and an error when output fails, input
// cannot be read, ctx is cancelled, the step limit is reached or an observer
// halts execution. Running an already terminated program returns nil
// immediately.
func (vm *VirtualMachine) Run(ctx context.Context) error {
	if err := vm.start(); err != nil {
		return err
	}
	defer vm.stop()

	var stepCount int
	checkInterval := vm.contextCheckInterval
	doneChan := ctx.Done()

	for vm.state != Terminated {
		// Deterministic check of ctx.Done() every N steps.
		if checkInterval > 0 && doneChan != nil {
			stepCount++
			if stepCount >= checkInterval {
				stepCount = 0
				select {
				case <-doneChan:
					return vm.runtimeError(errz.ErrHalted, "execution cancelled").WithCause(ctx.Err())
				default:
				}
			}
		}
		if vm.maxSteps > 0 && vm.steps >= vm.maxSteps {
			return vm.runtimeError(errz.ErrLimit, "step limit of %d reached", vm.maxSteps)
		}
		if _, err := vm.step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single step and reports whether the program has
// terminated. Calling Step after termination returns ErrTerminated.
func (vm *VirtualMachine) Step() (bool, error) {
	if err := vm.start(); err != nil {
		return false, err
	}
	defer vm.stop()
	if vm.state == Terminated {
		return true, ErrTerminated
	}
	return vm.step()
}

func (vm *VirtualMachine) step() (bool, error) {
	cell := vm.grid.Get(vm.cursor.Row, vm.cursor.Col)
	ins := op.Decode(cell)

	if vm.observer != nil {
		event := StepEvent{
			Step:        vm.steps,
			Row:         vm.cursor.Row,
			Col:         vm.cursor.Col,
			Cell:        cell,
			Instruction: ins,
			State:       vm.state,
			Skipping:    vm.skip,
			Direction:   vm.direction,
			StackDepth:  vm.stack.Len(),
		}
		if !vm.observer.OnStep(event) {
			return false, vm.runtimeError(errz.ErrHalted, "execution halted by observer")
		}
	}
	vm.steps++

	if vm.skip {
		vm.skip = false
		vm.advance()
		return false, nil
	}

	if vm.state == StringMode {
		if ins.Code == op.StringMode {
			vm.state = Running
		} else {
			vm.stack.Push(cell)
		}
		vm.advance()
		return false, nil
	}

	if err := vm.exec(ins); err != nil {
		return false, err
	}
	if vm.state == Terminated {
		return true, nil
	}
	vm.advance()
	return false, nil
}

// exec dispatches a decoded instruction outside of string mode.
func (vm *VirtualMachine) exec(ins op.Instruction) error {
	s := &vm.stack
	switch ins.Code {
	case op.Nop:
	case op.Push:
		s.Push(ins.Value)
	case op.Add:
		s.Binary(add)
	case op.Subtract:
		s.Binary(sub)
	case op.Multiply:
		s.Binary(mul)
	case op.Divide:
		s.Binary(div)
	case op.Modulo:
		s.Binary(mod)
	case op.Not:
		s.Not()
	case op.Greater:
		s.Binary(greater)
	case op.Right:
		vm.direction = Right
	case op.Left:
		vm.direction = Left
	case op.Up:
		vm.direction = Up
	case op.Down:
		vm.direction = Down
	case op.Random:
		vm.direction = vm.sampler.Direction()
	case op.HorizontalIf:
		if s.PopCondition() == 0 {
			vm.direction = Right
		} else {
			vm.direction = Left
		}
	case op.VerticalIf:
		if s.PopCondition() == 0 {
			vm.direction = Down
		} else {
			vm.direction = Up
		}
	case op.StringMode:
		vm.state = StringMode
	case op.Dup:
		s.Dup()
	case op.Swap:
		s.Swap()
	case op.Pop:
		s.Discard()
	case op.OutputInt:
		if v, ok := s.Pop(); ok {
			if err := vm.output.writeInt(v); err != nil {
				return vm.ioError(err, "writing output")
			}
		}
	case op.OutputChar:
		if v, ok := s.Pop(); ok {
			if err := vm.output.writeChar(v); err != nil {
				return vm.ioError(err, "writing output")
			}
		}
	case op.Bridge:
		vm.skip = true
	case op.Put:
		if row, col, value, ok := s.popPut(); ok {
			vm.grid.Set(int(row), int(col), value)
		}
	case op.Get:
		if row, col, ok := s.popGet(); ok {
			s.Push(vm.grid.Get(int(row), int(col)))
		}
	case op.InputInt:
		v, err := vm.input.readInt()
		if err != nil {
			return vm.ioError(err, "reading input")
		}
		s.Push(v)
	case op.InputChar:
		v, err := vm.input.readChar()
		if err != nil {
			return vm.ioError(err, "reading input")
		}
		s.Push(v)
	case op.End:
		vm.state = Terminated
	default:
		return fmt.Errorf("unknown opcode: %d", ins.Code)
	}
	return nil
}

// advance moves the cursor one cell using the grid's current extents.
func (vm *VirtualMachine) advance() {
	vm.cursor = vm.cursor.Advance(vm.direction, vm.grid.Rows(), vm.grid.Cols())
}

// Stack returns a copy of the stack, bottom first.
func (vm *VirtualMachine) Stack() []byte {
	return vm.stack.Values()
}

// Cursor returns the current position.
func (vm *VirtualMachine) Cursor() Cursor {
	return vm.cursor
}

// Direction returns the current heading.
func (vm *VirtualMachine) Direction() Direction {
	return vm.direction
}

// State returns the current execution state.
func (vm *VirtualMachine) State() State {
	return vm.state
}

// Grid returns the program grid, including any writes made by the program.
func (vm *VirtualMachine) Grid() *grid.Grid {
	return vm.grid
}

// Steps returns the number of steps executed so far.
func (vm *VirtualMachine) Steps() int {
	return vm.steps
}

func (vm *VirtualMachine) location() errz.Location {
	return errz.Location{Row: vm.cursor.Row, Col: vm.cursor.Col}
}

// runtimeError creates a StructuredError located at the current cell.
func (vm *VirtualMachine) runtimeError(kind errz.ErrorKind, format string, args ...any) *errz.StructuredError {
	return errz.NewStructuredErrorf(kind, vm.location(), format, args...)
}

func (vm *VirtualMachine) ioError(cause error, what string) *errz.StructuredError {
	return vm.runtimeError(errz.ErrIO, "%s", what).WithCause(cause)
}
