package diag

import (
	"testing"

	"bitscript/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("testdata/sample.bs", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaImpliedMove,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 testdata/sample.bs:1:1 first line second\n" +
		"note SYN2001 testdata/sample.bs:2:1 note line\n" +
		"warning SEM3013 testdata/sample.bs:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
