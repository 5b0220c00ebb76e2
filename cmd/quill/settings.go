package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"quill/internal/project"
)

// settings is the effective configuration of one command: quill.toml on
// top of the defaults, explicitly set flags on top of that.
type settings struct {
	config   project.Config
	manifest string
	color    bool
	ui       project.Toggle
}

var current settings

func loadSettings(cmd *cobra.Command, start string) (settings, error) {
	cfg := project.Default()
	var manifestPath string

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configFlag != "" {
		cfg, err = project.LoadConfig(configFlag)
		if err != nil {
			return settings{}, err
		}
		manifestPath = configFlag
	} else if start != "" {
		m, ok, err := project.LoadManifest(start)
		if err != nil {
			return settings{}, err
		}
		if ok {
			cfg, manifestPath = m.Config, m.Path
		}
	}

	if err := overrideFromFlags(cmd, &cfg); err != nil {
		return settings{}, err
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	// Validate уже проверил оба значения
	colorMode, _ := project.ParseToggle(cfg.Output.Color)
	uiMode, _ := project.ParseToggle(cfg.Output.UI)

	current = settings{
		config:   cfg,
		manifest: manifestPath,
		color:    colorMode.Enabled(isTerminal(os.Stderr)),
		ui:       uiMode,
	}
	return current, nil
}

// overrideFromFlags copies flags the user actually set.
func overrideFromFlags(cmd *cobra.Command, cfg *project.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("max-diagnostics") {
		if cfg.Check.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return err
		}
	}
	if flags.Changed("color") {
		if cfg.Output.Color, err = flags.GetString("color"); err != nil {
			return err
		}
	}
	if flags.Changed("trace-level") {
		if cfg.Trace.Level, err = flags.GetString("trace-level"); err != nil {
			return err
		}
	}
	if flags.Changed("trace-format") {
		if cfg.Trace.Format, err = flags.GetString("trace-format"); err != nil {
			return err
		}
	}
	if flags.Changed("trace") {
		if cfg.Trace.Output, err = flags.GetString("trace"); err != nil {
			return err
		}
	}
	// флаги check есть только у check
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if cfg.Check.Jobs, err = flags.GetInt("jobs"); err != nil {
			return err
		}
	}
	if flags.Lookup("cache") != nil && flags.Changed("cache") {
		if cfg.Check.Cache, err = flags.GetBool("cache"); err != nil {
			return err
		}
	}
	if flags.Lookup("ui") != nil && flags.Changed("ui") {
		if cfg.Output.UI, err = flags.GetString("ui"); err != nil {
			return err
		}
	}
	if flags.Lookup("format") != nil && flags.Changed("format") && cmd.Name() == "check" {
		if cfg.Output.Format, err = flags.GetString("format"); err != nil {
			return err
		}
	}
	return nil
}

// applyColor makes fatih/color follow the resolved mode for every writer.
func applyColor(s settings) {
	color.NoColor = !s.color
}
