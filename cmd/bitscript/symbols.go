package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bitscript/internal/driver"
	"bitscript/internal/symbols"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] [file.bs|directory]...",
	Short: "Dump the resolved symbol table",
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().String("format", "table", "output format (table|json)")
	symbolsCmd.Flags().Bool("natives", false, "include native symbols")
	symbolsCmd.Flags().Bool("validate", false, "check symbol table consistency")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	natives, err := cmd.Flags().GetBool("natives")
	if err != nil {
		return fmt.Errorf("failed to get natives flag: %w", err)
	}
	validate, err := cmd.Flags().GetBool("validate")
	if err != nil {
		return fmt.Errorf("failed to get validate flag: %w", err)
	}

	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	// раскладка заполняет смещения полей и слотов
	s.opts.Layout = true
	res, err := driver.Compile(cmd.Context(), s.paths, s.opts)
	if err != nil {
		return err
	}
	// таблицу печатаем даже при ошибках: она помогает их понять
	reportErr := s.report(res)
	if res.Sema == nil {
		return reportErr
	}

	table := res.Sema.Table
	if validate {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("symbol table is inconsistent: %w", err)
		}
	}

	rows := table.Rows(natives)
	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return reportErr
	}
	if err := writeRows(out, rows); err != nil {
		return err
	}
	return reportErr
}

func writeRows(w io.Writer, rows []symbols.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tKIND\tNAME\tTYPE\tMODS\tOBJECT\tOFFSET")
	for _, r := range rows {
		offset := "-"
		if r.ByteOffset >= 0 {
			offset = strconv.Itoa(r.ByteOffset)
		}
		if r.Virtual {
			offset += "v"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", r.Scope, r.ScopeKind, r.Name, r.Type, r.Mods, r.Object, offset)
	}
	return tw.Flush()
}
