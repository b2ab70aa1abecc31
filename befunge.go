// Package befunge runs programs written in a two-dimensional, stack-based
// language in the spirit of Befunge.
//
//	snap, err := befunge.Run(ctx, `"!iH",,,@`, befunge.WithOutput(os.Stdout))
//
// Lower-level access to the grid, instruction set and virtual machine is
// available in the grid, op and vm packages.
package befunge

import (
	"context"

	"github.com/deepnoodle-ai/befunge/grid"
	"github.com/deepnoodle-ai/befunge/vm"
)

// Load parses program text into a grid.
func Load(source string) *grid.Grid {
	return grid.Parse(source)
}

// New returns a virtual machine ready to run source.
func New(source string, opts ...Option) *vm.VirtualMachine {
	return vm.New(Load(source), collectOptions(opts...).vmOpts()...)
}

// Run executes source until it reaches the end instruction and returns a
// snapshot of the final state. The snapshot is also returned on error, so
// the state at the point of failure can be inspected.
func Run(ctx context.Context, source string, opts ...Option) (vm.Snapshot, error) {
	machine := New(source, opts...)
	err := machine.Run(ctx)
	return machine.Snapshot(), err
}
