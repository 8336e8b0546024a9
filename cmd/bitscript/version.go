package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bitscript/internal/layout"
	"bitscript/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Target    string `json:"target"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include commit hash and build date")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show bitscript build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(versionFormat)
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
		payload := versionPayload{
			Tool:    "bitscript",
			Version: version.Plain(),
			Target:  layout.Bits32().Name,
		}
		if versionShowFull {
			payload.GitCommit = valueOrUnknown(strings.TrimSpace(version.GitCommit))
			payload.BuildDate = valueOrUnknown(strings.TrimSpace(version.BuildDate))
		}
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}
		renderVersionPretty(cmd.OutOrStdout(), payload)
		return nil
	},
}

func renderVersionPretty(out io.Writer, p versionPayload) {
	fmt.Fprintf(out, "bitscript %s (target %s)\n", version.Version, p.Target)
	if p.GitCommit != "" {
		fmt.Fprintf(out, "commit: %s\n", p.GitCommit)
	}
	if p.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", p.BuildDate)
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
