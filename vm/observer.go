package vm

import "github.com/deepnoodle-ai/befunge/op"

// Observer is an interface for observing VM execution events. It can be used
// for tracing, debugging or coverage without modifying the VM.
//
// Observer methods are called synchronously during execution, so
// implementations should be fast.
type Observer interface {
	// OnStep is called before each step is executed.
	// Returns false to halt execution immediately.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single step.
type StepEvent struct {
	// Step is the number of steps executed before this one.
	Step int

	// Row and Col locate the cell under the cursor.
	Row int
	Col int

	// Cell is the raw byte under the cursor.
	Cell byte

	// Instruction is the decoded cell. It is not executed when the step is a
	// bridge skip or the VM is in string mode.
	Instruction op.Instruction

	// State is the VM state at the start of the step.
	State State

	// Skipping is true when this step passes over the cell after a bridge.
	Skipping bool

	// Direction is the heading before the step.
	Direction Direction

	// StackDepth is the number of values on the stack.
	StackDepth int
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(StepEvent) bool

// OnStep calls f(event).
func (f ObserverFunc) OnStep(event StepEvent) bool {
	return f(event)
}

// NoOpObserver is an Observer implementation that does nothing.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}
