package version

import (
	"testing"

	"github.com/fatih/color"
)

func withVersion(t *testing.T, v, commit string) {
	t.Helper()
	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = v, commit
	t.Cleanup(func() {
		Version, GitCommit = origVersion, origCommit
	})
}

func TestColoredPlainWhenColorDisabled(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	withVersion(t, "1.2.3-rc1", "")
	if got := Colored(); got != "1.2.3-rc1" {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestColoredKeepsUnparsableVersion(t *testing.T) {
	withVersion(t, "nightly", "")
	if got := Colored(); got != "nightly" {
		t.Fatalf("Colored() = %q", got)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"1.0.0", "", "1.0.0"},
		{"1.0.0", "abc", "1.0.0 (abc)"},
		{"1.0.0", "abcdef0123456", "1.0.0 (abcdef0)"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version, tt.commit)
		if got := Short(); got != tt.want {
			t.Errorf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestCurrentPrefersLinkerValues(t *testing.T) {
	withVersion(t, " 2.0.0 ", "feedface")
	origDate := BuildDate
	BuildDate = "2026-01-02T03:04:05Z"
	t.Cleanup(func() { BuildDate = origDate })

	info := Current()
	if info.Version != "2.0.0" || info.GitCommit != "feedface" || info.BuildDate != "2026-01-02T03:04:05Z" {
		t.Fatalf("Current() = %+v", info)
	}
	// тестовый бинарник всегда несёт build info
	if info.GoVersion == "" {
		t.Fatal("GoVersion is empty")
	}
}

func TestCurrentEmptyVersion(t *testing.T) {
	withVersion(t, "  ", "x")
	if got := Current().Version; got != "dev" {
		t.Fatalf("Version = %q, want dev", got)
	}
}
