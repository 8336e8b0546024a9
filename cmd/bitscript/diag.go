package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bitscript/internal/diagfmt"
	"bitscript/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.bs|directory]...",
	Short: "Resolve a module and report diagnostics",
	Long: `Resolve every source of a module and report lexical, syntax and semantic diagnostics.
Without arguments the sources listed in ` + "bitscript.toml" + ` are used.`,
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	diagCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runDiag(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	if warningsAsErrors {
		s.opts.WarningsAsErrors = true
	}

	res, err := driver.Compile(cmd.Context(), s.paths, s.opts)
	if err != nil {
		return err
	}
	res.Bag.Sort()

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
		if err != nil {
			return err
		}
	default:
		diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     s.color && isTerminal(os.Stdout),
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		diagfmt.Summary(out, res.Bag, s.color && isTerminal(os.Stdout))
	}

	s.printTimings()
	if res.Bag.HasErrors() {
		return errFailed
	}
	return nil
}
