package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bitscript/internal/driver"
	"bitscript/internal/layout"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [flags] [file.bs|directory]...",
	Short: "Print the binary layout of every object type",
	Long: `Resolve a module and, when it is free of errors, print field offsets,
sizes, alignments and vtable slots of every struct and class.`,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().String("format", "text", "output format (text|json|msgpack)")
	layoutCmd.Flags().Int("pointer-size", 0, "pointer size in bytes (0 keeps the target default)")
	layoutCmd.Flags().Bool("cache", false, "reuse layouts of unchanged sources from the disk cache")
	layoutCmd.Flags().Bool("drop-cache", false, "clear the disk cache before running")
}

func runLayout(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "text", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	pointerSize, err := cmd.Flags().GetInt("pointer-size")
	if err != nil {
		return fmt.Errorf("failed to get pointer-size flag: %w", err)
	}
	if pointerSize != 0 && pointerSize != 4 && pointerSize != 8 {
		return fmt.Errorf("invalid --pointer-size %d (expected 4 or 8)", pointerSize)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}

	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	s.opts.Layout = true
	s.opts.Target = s.opts.Target.WithPointerSize(pointerSize)

	if useCache || dropCache {
		cache, err := driver.OpenDiskCache("bitscript")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to drop disk cache: %w", err)
			}
		}
		if useCache {
			s.opts.Cache = cache
		}
	}

	res, err := driver.Compile(cmd.Context(), s.paths, s.opts)
	if err != nil {
		return err
	}
	if err := s.report(res); err != nil {
		return err
	}
	if res.Layout == nil {
		return nil
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return layout.EncodeJSON(out, res.Layout)
	case "msgpack":
		data, err := layout.EncodeMsgpack(res.Layout)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
	return layout.WriteText(out, res.Layout)
}
