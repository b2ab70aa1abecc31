package vm

import (
	"context"

	"github.com/deepnoodle-ai/befunge/grid"
)

// Run the given program text in a new Virtual Machine. This is the low-level
// entry point; most callers should use befunge.Run, which returns a Snapshot.
// The VM is returned even when Run fails so that its final state can be
// inspected.
func Run(ctx context.Context, source string, options ...Option) (*VirtualMachine, error) {
	machine := New(grid.Parse(source), options...)
	if err := machine.Run(ctx); err != nil {
		return machine, err
	}
	return machine, nil
}
