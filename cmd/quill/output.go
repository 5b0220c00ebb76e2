package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/diag"
	"quill/internal/diagfmt"
	"quill/internal/driver"
	"quill/internal/observ"
	"quill/internal/source"
)

// printDiagnostics renders bag to stderr in the configured format.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	return writeDiagnostics(os.Stderr, bag, fs, format)
}

func writeDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	switch format {
	case "plain":
		return diagfmt.Plain(w, bag.Items())
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "pretty", "":
		if err := diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     current.color,
			Context:   2,
			ShowNotes: true,
		}); err != nil {
			return err
		}
		if n := bag.Dropped(); n > 0 {
			_, err := fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", n)
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// driverOptions builds driver options from the resolved settings. The timer
// is nil unless --timings is set.
func driverOptions(cmd *cobra.Command) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: current.config.Check.MaxDiagnostics,
		Jobs:           current.config.Check.Jobs,
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

// printTimings writes the --timings report to stderr when enabled.
func printTimings(kind, path string, timer *observ.Timer) {
	if timer == nil {
		return
	}
	payload := driver.NewTimingPayload(kind, path, timer)
	if err := driver.WriteTimings(os.Stderr, payload, timer, current.config.Output.Format == "json"); err != nil {
		fmt.Fprintf(os.Stderr, "timings: %v\n", err)
	}
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
