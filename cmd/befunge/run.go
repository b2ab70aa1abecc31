package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/deepnoodle-ai/befunge"
	"github.com/deepnoodle-ai/befunge/errz"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runHandler(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}
	source, err := getProgramSource(cmd, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	if id, err := uuid.NewV4(); err == nil {
		logger = logger.With().Str("run", id.String()).Logger()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug().Int("bytes", len(source)).Msg("starting program")
	snap, runErr := befunge.Run(ctx, source, getRunOptions(cmd, logger)...)
	if runErr != nil {
		event := logger.Debug().Err(runErr).Int("steps", snap.Steps)
		if kind, ok := errz.KindOf(runErr); ok {
			event = event.Str("kind", kind.String())
		}
		event.Msg("program failed")
	} else {
		logger.Debug().Int("steps", snap.Steps).Msg("program terminated")
	}

	if format := viper.GetString("state"); format != "" {
		output, err := formatState(snap, format, colorEnabled(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.ErrOrStderr(), output); err != nil {
			return err
		}
	}
	return runErr
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("log-level")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	writer := zerolog.ConsoleWriter{
		Out:     cmd.ErrOrStderr(),
		NoColor: !colorEnabled(cmd.ErrOrStderr()),
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
