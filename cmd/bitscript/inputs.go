package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bitscript/internal/diagfmt"
	"bitscript/internal/driver"
	"bitscript/internal/layout"
	"bitscript/internal/observ"
	"bitscript/internal/project"
)

const noManifestMessage = "no " + project.ManifestName + " found\nplease pass source files or directories explicitly, e.g.:\n  bitscript diag src/"

// session is the shared setup of commands that compile a module.
type session struct {
	paths    []string
	manifest *project.Manifest
	opts     driver.Options
	color    bool
	timings  bool
}

// newSession collects flags and, when no paths are given, the project manifest.
// Explicit flags win over manifest settings.
func newSession(cmd *cobra.Command, args []string) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return nil, err
	}

	s := &session{
		paths:   args,
		color:   color,
		timings: timings,
		opts: driver.Options{
			MaxDiagnostics: maxDiagnostics,
			Jobs:           jobs,
			Target:         layout.Bits32(),
		},
	}
	if timings {
		s.opts.Timer = observ.NewTimer()
	}

	if len(args) == 0 {
		m, ok, err := project.Load(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s", noManifestMessage)
		}
		files, err := m.SourceFiles()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Path, err)
		}
		s.paths = files
		s.manifest = m
		if m.Diagnostics.Max > 0 && !flags.Changed("max-diagnostics") {
			s.opts.MaxDiagnostics = m.Diagnostics.Max
		}
		s.opts.WarningsAsErrors = m.Diagnostics.WarningsAsErrors
		s.opts.Target = s.opts.Target.WithPointerSize(m.Layout.PointerSize)
	}
	return s, nil
}

// report prints diagnostics and timings to stderr. It returns errFailed when
// the module has errors.
func (s *session) report(res *driver.Result) error {
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: s.color, Context: 1, ShowNotes: true})
		diagfmt.Summary(os.Stderr, res.Bag, s.color)
	}
	s.printTimings()
	if res.Bag.HasErrors() {
		return errFailed
	}
	return nil
}

func (s *session) printTimings() {
	if !s.timings || s.opts.Timer == nil {
		return
	}
	fmt.Fprint(os.Stderr, s.opts.Timer.Summary())
}
