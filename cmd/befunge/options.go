package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/deepnoodle-ai/befunge"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var stateFormatsCompletion = []string{"json", "yaml", "text"}

// Checks flag values that cobra cannot validate on its own. All problems are
// reported together.
func validateFlags() error {
	var result *multierror.Error
	if steps := viper.GetInt("max-steps"); steps < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid --max-steps %d: must not be negative", steps))
	}
	if format := viper.GetString("state"); format != "" && indexOf(stateFormatsCompletion, strings.ToLower(format)) < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid --state %q: expected one of %s",
			format, strings.Join(stateFormatsCompletion, ", ")))
	}
	if level := viper.GetString("log-level"); level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(level)); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid --log-level %q", level))
		}
	}
	return result.ErrorOrNil()
}

func getProgramSource(cmd *cobra.Command, args []string) (string, error) {
	// The program comes from exactly one of:
	// 1. --code <text>
	// 2. path as args[0]
	codeFlagSet := viper.IsSet("code") && viper.GetString("code") != ""
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	pathSupplied := len(args) > 0
	if pathSupplied && codeFlagSet {
		return "", errors.New("multiple input sources specified")
	}
	if pathSupplied {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}
	if !codeFlagSet {
		return "", errors.New("no input provided")
	}
	return viper.GetString("code"), nil
}

func getRunOptions(cmd *cobra.Command, logger zerolog.Logger) []befunge.Option {
	opts := []befunge.Option{
		befunge.WithInput(cmd.InOrStdin()),
		befunge.WithOutput(cmd.OutOrStdout()),
	}
	if viper.IsSet("seed") {
		opts = append(opts, befunge.WithSeed(viper.GetUint64("seed")))
	}
	if steps := viper.GetInt("max-steps"); steps > 0 {
		opts = append(opts, befunge.WithMaxSteps(steps))
	}
	if viper.GetBool("trace") {
		opts = append(opts, befunge.WithObserver(newTraceObserver(logger)))
	}
	return opts
}
