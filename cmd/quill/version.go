package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show quill build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "include commit, build date and Go version")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type versionPayload struct {
	Tool string `json:"tool"`
	version.Info
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, _ := flags.GetBool("full")
	showHash, _ := flags.GetBool("hash")
	showDate, _ := flags.GetBool("date")

	info := version.Current()
	info.GitCommit = pick(showHash || full, info.GitCommit)
	info.BuildDate = pick(showDate || full, info.BuildDate)
	if !full {
		info.GoVersion = ""
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(versionPayload{Tool: "quill", Info: info})
	case "pretty":
		printVersion(cmd.OutOrStdout(), info)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

// pick hides a field that was not asked for and marks a requested but
// unknown one.
func pick(show bool, value string) string {
	switch {
	case !show:
		return ""
	case value == "":
		return "unknown"
	default:
		return value
	}
}

func printVersion(out io.Writer, info version.Info) {
	fmt.Fprintf(out, "quill %s\n", version.Colored())
	for _, row := range [][2]string{
		{"commit", info.GitCommit},
		{"built", info.BuildDate},
		{"go", info.GoVersion},
	} {
		if row[1] != "" {
			fmt.Fprintf(out, "%-7s %s\n", row[0]+":", row[1])
		}
	}
}
