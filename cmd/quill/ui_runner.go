package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/driver"
	"quill/internal/source"
	"quill/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.DirResult
	err     error
}

// runCheckWithUI runs driver.CheckDir in the background while a progress
// view follows the phase events of every file.
func runCheckWithUI(ctx context.Context, dir string, opts driver.Options) (*source.FileSet, []driver.DirResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		prev := opts.Observer
		optsCopy.Observer = func(ev driver.PhaseEvent) {
			if prev != nil {
				prev(ev)
			}
			if ev.Status == driver.PhaseStart {
				events <- ui.Event{File: ev.Path, Stage: ev.Name, Status: ui.StatusWorking}
			}
		}
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy)
		for _, r := range results {
			ev := ui.Event{File: r.Path, Status: ui.StatusDone}
			if r.Bag.HasErrors() {
				ev.Status, ev.Errors = ui.StatusError, r.Bag.Len()
			}
			events <- ev
		}
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("quill check "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// модель больше не читает канал (например, после ctrl+c)
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
