package diag

import (
	"fmt"
	"sort"
	"strings"

	"bitscript/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics one per line in a stable order:
//
//	<severity> <CODE> <path>:<line>:<col> <message>
//
// Notes are emitted as separate "note" lines when includeNotes is set.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendGolden(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendGolden(out []goldenDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenDiagnostic {
	r := fs.Range(d.Primary)
	out = append(out, goldenDiagnostic{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Path:     r.Path,
		Line:     r.Start.Line,
		Column:   r.Start.Col,
		Message:  sanitizeMessage(d.Message),
	})
	if !includeNotes {
		return out
	}
	for _, note := range d.Notes {
		nr := fs.Range(note.Span)
		out = append(out, goldenDiagnostic{
			Severity: "note",
			Code:     d.Code.ID(),
			Path:     nr.Path,
			Line:     nr.Start.Line,
			Column:   nr.Start.Col,
			Message:  sanitizeMessage(note.Msg),
		})
	}
	return out
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
