package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"quill/internal/trace"
)

// Config mirrors quill.toml. Every section is optional.
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
}

type CheckConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"` // 0 = GOMAXPROCS
	Cache          bool   `toml:"cache"`
	CacheDir       string `toml:"cache_dir"`
}

type OutputConfig struct {
	Color  string `toml:"color"`  // auto|on|off
	Format string `toml:"format"` // pretty|plain|json
	UI     string `toml:"ui"`     // progress view for directories: auto|on|off
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// Default returns the configuration used without a manifest.
func Default() Config {
	return Config{
		Check:  CheckConfig{MaxDiagnostics: 100},
		Output: OutputConfig{Color: "auto", Format: "pretty", UI: "auto"},
		Trace:  TraceConfig{Level: "off", Format: "auto"},
	}
}

// Manifest is a decoded quill.toml and where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// LoadManifest finds quill.toml above start and decodes it. ok is false
// when there is no manifest; the caller then uses Default().
func LoadManifest(start string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(start)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes one manifest on top of Default(). Unknown keys are
// rejected so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	// относительный cache_dir считается от корня проекта
	if cfg.Check.CacheDir != "" && !filepath.IsAbs(cfg.Check.CacheDir) {
		cfg.Check.CacheDir = filepath.Join(filepath.Dir(path), cfg.Check.CacheDir)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must be >= 0, got %d", c.Check.MaxDiagnostics)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must be >= 0, got %d", c.Check.Jobs)
	}
	if _, err := ParseToggle(c.Output.Color); err != nil {
		return fmt.Errorf("[output].color: %w", err)
	}
	if _, err := ParseToggle(c.Output.UI); err != nil {
		return fmt.Errorf("[output].ui: %w", err)
	}
	switch c.Output.Format {
	case "pretty", "plain", "json":
	default:
		return fmt.Errorf("[output].format: unknown format %q (want pretty, plain or json)", c.Output.Format)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseFormat(c.Trace.Format); err != nil {
		return fmt.Errorf("[trace].format: %w", err)
	}
	return nil
}

// Toggle is a tri-state switch used by [output].color and [output].ui:
// auto follows the terminal.
type Toggle uint8

const (
	ToggleAuto Toggle = iota
	ToggleOn
	ToggleOff
)

func ParseToggle(s string) (Toggle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ToggleAuto, nil
	case "on", "always", "true":
		return ToggleOn, nil
	case "off", "never", "false":
		return ToggleOff, nil
	}
	return ToggleAuto, fmt.Errorf("unknown mode %q (want auto, on or off)", s)
}

// Enabled resolves auto against whether the output is a terminal.
func (t Toggle) Enabled(terminal bool) bool {
	switch t {
	case ToggleOn:
		return true
	case ToggleOff:
		return false
	default:
		return terminal
	}
}
