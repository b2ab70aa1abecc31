package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	viper.Reset()

	rootCmd := &cobra.Command{
		Use:   "befunge [file]",
		Short: "Run two-dimensional stack programs",
		Long: `Run programs written for a two-dimensional, stack-based language in the
spirit of Befunge. The program is read from a file or from --code, program
input is read from stdin and program output is written to stdout.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			processGlobalFlags()
			return nil
		},
		RunE: runHandler,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default is $HOME/.befunge.yaml)")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	viper.BindPFlag("config", pf.Lookup("config"))
	viper.BindPFlag("no-color", pf.Lookup("no-color"))
	viper.BindPFlag("log-level", pf.Lookup("log-level"))

	f := rootCmd.Flags()
	f.StringP("code", "c", "", "Program text to run")
	f.Uint64("seed", 0, "Seed for the random direction instruction")
	f.Int("max-steps", 0, "Stop after this many steps (0 means no limit)")
	f.Bool("trace", false, "Log every step at trace level")
	f.String("state", "", "Print the final state to stderr (json, yaml, text)")
	viper.BindPFlag("code", f.Lookup("code"))
	viper.BindPFlag("seed", f.Lookup("seed"))
	viper.BindPFlag("max-steps", f.Lookup("max-steps"))
	viper.BindPFlag("trace", f.Lookup("trace"))
	viper.BindPFlag("state", f.Lookup("state"))
	rootCmd.RegisterFlagCompletionFunc("state", cobra.FixedCompletions(
		stateFormatsCompletion, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(newDisCmd(), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
			}
			switch strings.ToLower(format) {
			case "json":
				output, err := getOutputJSON(info, colorEnabled(cmd.OutOrStdout()))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(output))
			case "", "text":
				fmt.Fprintln(cmd.OutOrStdout(), version)
			default:
				return fmt.Errorf("unknown output format: %s", format)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output format (json, text)")
	return cmd
}

func initConfig() error {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".befunge")
	}
	viper.SetEnvPrefix("befunge")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}
