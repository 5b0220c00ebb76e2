package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diagfmt"
	"quill/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ql",
	Short: "Parse a quill source file and print its parse tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), filePath, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printDiagnostics(result.Bag, result.FileSet, current.config.Output.Format); err != nil {
		return err
	}
	if err := diagfmt.FormatTree(os.Stdout, result.Builder, result.FileID); err != nil {
		return err
	}
	printTimings("parse", filePath, opts.Timer)
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
