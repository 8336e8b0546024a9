package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bitscript/internal/prof"
	"bitscript/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "bitscript",
	Short: "BitScript compiler frontend",
	Long:  `BitScript resolves names and types of a module and computes the binary layout of its objects`,

	SilenceUsage: true,

	PersistentPreRunE:  startProfiling,
	PersistentPostRunE: stopProfiling,
}

// errFailed reports that diagnostics were already printed; main only sets the exit code.
var errFailed = errors.New("compilation failed")

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel lexer workers (0=auto)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("trace", "", "write a runtime trace to file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// PostRun не вызывается при ошибке команды
		_ = profiling.Stop() //nolint:errcheck
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

var profiling *prof.Session

func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("trace"); err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	if opts == (prof.Options{}) {
		return nil
	}
	profiling, err = prof.Start(opts)
	return err
}

func stopProfiling(*cobra.Command, []string) error {
	err := profiling.Stop()
	profiling = nil
	return err
}
