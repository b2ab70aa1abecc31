package main

import (
	"errors"
	"os"

	"github.com/deepnoodle-ai/befunge"
	"github.com/deepnoodle-ai/befunge/dis"
	"github.com/spf13/cobra"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "List the decoded instruction in every occupied cell",
		Args:  cobra.MaximumNArgs(1),
		RunE:  disHandler,
	}
	cmd.Flags().StringP("code", "c", "", "Program text to disassemble")
	return cmd
}

func disHandler(cmd *cobra.Command, args []string) error {
	code, _ := cmd.Flags().GetString("code")
	codeSet := cmd.Flags().Changed("code")
	if codeSet && len(args) > 0 {
		return errors.New("multiple input sources specified")
	}
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		code = string(data)
	} else if !codeSet {
		return errors.New("no input provided")
	}
	return dis.Print(dis.Disassemble(befunge.Load(code)), cmd.OutOrStdout())
}
