package vm

import "io"

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithInput sets the source read by the input instructions. Each input
// instruction consumes one line. Defaults to an empty reader.
func WithInput(r io.Reader) Option {
	return func(vm *VirtualMachine) {
		vm.input = newLineReader(r)
	}
}

// WithOutput sets the sink written by the output instructions. Every write
// is flushed before execution continues. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(vm *VirtualMachine) {
		vm.output = newFlushWriter(w)
	}
}

// WithSampler sets the source of directions for the random instruction.
func WithSampler(sampler Sampler) Option {
	return func(vm *VirtualMachine) {
		vm.sampler = sampler
	}
}

// WithSeed seeds the default random sampler so that runs can be replayed.
func WithSeed(seed uint64) Option {
	return func(vm *VirtualMachine) {
		vm.sampler = NewRandomSampler(seed)
	}
}

// WithObserver sets an observer for VM execution events.
// Returning false from OnStep halts execution immediately.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}

// WithMaxSteps limits the number of steps Run may execute. Zero, the
// default, means no limit.
func WithMaxSteps(steps int) Option {
	return func(vm *VirtualMachine) {
		vm.maxSteps = steps
	}
}

// WithContextCheckInterval sets how often Run checks ctx.Done(). The interval
// is specified in number of steps. A value of 0 disables checking.
// The default is DefaultContextCheckInterval.
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}
