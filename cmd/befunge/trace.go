package main

import (
	"github.com/deepnoodle-ai/befunge/dis"
	"github.com/deepnoodle-ai/befunge/vm"
	"github.com/rs/zerolog"
)

// traceObserver logs every step of a run at trace level.
type traceObserver struct {
	logger zerolog.Logger
}

func newTraceObserver(logger zerolog.Logger) *traceObserver {
	return &traceObserver{logger: logger}
}

func (t *traceObserver) OnStep(event vm.StepEvent) bool {
	e := t.logger.Trace().
		Int("step", event.Step).
		Int("row", event.Row).
		Int("col", event.Col).
		Str("cell", dis.FormatCell(event.Cell)).
		Str("dir", event.Direction.String()).
		Int("depth", event.StackDepth)
	switch {
	case event.Skipping:
		e.Msg("skip")
	case event.State == vm.StringMode:
		e.Msg("string")
	default:
		e.Msg(event.Instruction.String())
	}
	return true
}

var _ vm.Observer = (*traceObserver)(nil)
