package befunge

import (
	"io"

	"github.com/deepnoodle-ai/befunge/vm"
)

// Option configures a program run.
type Option func(*options)

type options struct {
	input    io.Reader
	output   io.Writer
	sampler  vm.Sampler
	seed     *uint64
	observer vm.Observer
	maxSteps int
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.input != nil {
		opts = append(opts, vm.WithInput(o.input))
	}
	if o.output != nil {
		opts = append(opts, vm.WithOutput(o.output))
	}
	if o.sampler != nil {
		opts = append(opts, vm.WithSampler(o.sampler))
	} else if o.seed != nil {
		opts = append(opts, vm.WithSeed(*o.seed))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	if o.maxSteps > 0 {
		opts = append(opts, vm.WithMaxSteps(o.maxSteps))
	}
	return opts
}

// WithInput sets the reader consumed, one line per instruction, by the
// number and character input instructions.
func WithInput(r io.Reader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput sets the writer that receives program output.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithSeed makes the random direction instruction reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithSampler replaces the source of random directions. It takes precedence
// over WithSeed.
func WithSampler(sampler vm.Sampler) Option {
	return func(o *options) {
		o.sampler = sampler
	}
}

// WithObserver sets an observer that is called before every step.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithMaxSteps stops the run with an error after the given number of steps.
func WithMaxSteps(steps int) Option {
	return func(o *options) {
		o.maxSteps = steps
	}
}
