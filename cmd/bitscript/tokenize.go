package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bitscript/internal/diagfmt"
	"bitscript/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.bs",
	Short: "Tokenize a bitscript source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		color, err := useColor(cmd, os.Stderr)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: color, Context: 1})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.Tokens, result.FileSet)
	}
	return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
}
