package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quill/internal/bound"
	"quill/internal/diag"
	"quill/internal/driver"
	"quill/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.ql|directory>",
	Short: "Lex, parse and bind quill sources and report diagnostics",
	Long: `Check runs the whole front end over a file, or over every .ql file in a
directory in parallel. Each file is an independent compilation unit.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostic format (pretty|plain|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory checks (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the disk cache")
	checkCmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
	checkCmd.Flags().Bool("dump", false, "print the bound tree of each file (disables the cache)")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return err
	}
	if current.config.Check.Cache && !dump {
		if opts.Cache, err = openCache(cmd); err != nil {
			return err
		}
	}

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		return checkSingle(cmd.Context(), target, opts, dump)
	}
	return checkDirectory(cmd, target, opts, dump, current.ui.Enabled(isTerminal(os.Stdout)))
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	cache, err := driver.OpenDiskCache("quill", current.config.Check.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open disk cache: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if clearCache {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to clear disk cache: %w", err)
		}
	}
	return cache, nil
}

func checkSingle(ctx context.Context, path string, opts driver.Options, dump bool) error {
	res, err := driver.Check(ctx, path, opts)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	if err := printDiagnostics(res.Bag, res.FileSet, current.config.Output.Format); err != nil {
		return err
	}
	if dump && res.Tree != nil {
		if err := bound.Dump(os.Stdout, res.Tree); err != nil {
			return err
		}
	}
	printTimings("check", path, opts.Timer)
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func checkDirectory(cmd *cobra.Command, dir string, opts driver.Options, dump, useUI bool) error {
	var (
		fs      *source.FileSet
		results []driver.DirResult
		err     error
	)
	if useUI && !dump {
		fs, results, err = runCheckWithUI(cmd.Context(), dir, opts)
	} else {
		fs, results, err = driver.CheckDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	merged := driver.MergeBags(results, 0)
	if err := printDiagnostics(merged, fs, current.config.Output.Format); err != nil {
		return err
	}
	if dump {
		for _, r := range results {
			if r.Result == nil || r.Result.Tree == nil {
				continue
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			if err := bound.Dump(os.Stdout, r.Result.Tree); err != nil {
				return err
			}
		}
	}
	if !quiet(cmd) && current.config.Output.Format != "json" {
		printSummary(results)
	}
	printTimings("check", dir, opts.Timer)
	if merged.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func printSummary(results []driver.DirResult) {
	files, failed, cached := len(results), 0, 0
	byStage := map[diag.Stage]int{}
	for _, r := range results {
		if r.Bag.HasErrors() {
			failed++
		}
		if r.Result != nil && r.Result.Cached {
			cached++
		}
		for stage, n := range r.Bag.CountByStage() {
			byStage[stage] += n
		}
	}
	fmt.Fprintf(os.Stderr, "checked %d file(s): %d with errors", files, failed)
	if cached > 0 {
		fmt.Fprintf(os.Stderr, ", %d from cache", cached)
	}
	for _, stage := range []diag.Stage{diag.StageLexer, diag.StageParser, diag.StageBinder, diag.StageDriver} {
		if n := byStage[stage]; n > 0 {
			fmt.Fprintf(os.Stderr, "; %s: %d", stage, n)
		}
	}
	fmt.Fprintln(os.Stderr)
}
