package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"quill/internal/observ"
)

// TimingPayload is the --timings output of one command.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// NewTimingPayload snapshots the timer.
func NewTimingPayload(kind, path string, timer *observ.Timer) TimingPayload {
	report := timer.Report()
	if kind == "" {
		kind = "pipeline"
	}
	return TimingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
}

// WriteTimings prints the payload either as one JSON line or as the
// human-readable timer summary.
func WriteTimings(w io.Writer, payload TimingPayload, timer *observ.Timer, asJSON bool) error {
	if asJSON {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	header := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		header += " - " + payload.Path
	}
	_, err := fmt.Fprintf(w, "%s\n%s", header, timer.Summary())
	return err
}
