package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bitscript/internal/diag"
	"bitscript/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, caret   *color.Color
	note            *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	// цвет решает вызывающий, а не isatty внутри fatih/color
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	header := p.severity(d.Severity).Sprint(d.Severity.String()) + " " + p.code.Sprint(d.Code.ID()) + ": " + d.Message
	if !located(d, fs) {
		fmt.Fprintln(w, header)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", p.path.Sprint(position(fs, d.Primary, opts)), header)
	snippet(w, fs, d.Primary, opts.Context, p)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if fs.Get(n.Span.File) == nil {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			continue
		}
		fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), position(fs, n.Span, opts), n.Msg)
	}
}

func position(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	start, _ := fs.Resolve(sp)
	path := formatPath(fs.Get(sp.File).Path, opts.PathMode, opts.BaseDir)
	return path + ":" + strconv.FormatUint(uint64(start.Line), 10) + ":" + strconv.FormatUint(uint64(start.Col), 10)
}

// snippet prints the primary line with up to context lines above it and an
// underline. Spans crossing lines are underlined to the end of the first one.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, p palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	for context > 0 && first > 1 {
		first--
		context--
	}
	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))

	for ln := first; ln <= start.Line; ln++ {
		num := fmt.Sprintf("%*d", gutterWidth, ln)
		fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	startCol := int(start.Col) - 1
	endCol := len(line)
	if end.Line == start.Line {
		endCol = int(end.Col) - 1
	}
	startCol = min(max(startCol, 0), len(line))
	endCol = min(max(endCol, startCol), len(line))

	pad := runewidth.StringWidth(expandTabs(line[:startCol]))
	width := max(runewidth.StringWidth(expandTabs(line[startCol:endCol])), 1)
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", gutterWidth), p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Summary prints the closing "N error(s), M warning(s)" line.
func Summary(w io.Writer, bag *diag.Bag, useColor bool) {
	p := newPalette(useColor)
	errs, warns := 0, 0
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errs++
		case diag.SevWarning:
			warns++
		}
	}
	// часть ошибок могла не влезть в лимит
	errs = max(errs, bag.ErrorCount())
	if errs == 0 && warns == 0 {
		return
	}
	fmt.Fprintf(w, "%s, %s\n", p.err.Sprint(plural(errs, "error")), p.warn.Sprint(plural(warns, "warning")))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
