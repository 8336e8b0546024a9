package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bitscript/internal/lexer"
	"bitscript/internal/source"
)

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var got DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := DiagnosticsOutput{
		Diagnostics: []DiagnosticJSON{
			{
				Severity: "ERROR",
				Code:     "SEM3005",
				Title:    "Unknown symbol",
				Message:  "unknown symbol Missing",
				Location: &LocationJSON{File: "src/test.bs", StartByte: 22, EndByte: 29, StartLine: 2, StartCol: 11, EndLine: 2, EndCol: 18},
				Notes: []NoteJSON{{
					Message:  "while resolving A",
					Location: &LocationJSON{File: "src/test.bs", StartByte: 7, EndByte: 8, StartLine: 1, StartCol: 8, EndLine: 1, EndCol: 9},
				}},
			},
			{
				Severity: "ERROR",
				Code:     "IO4001",
				Title:    "I/O load file error",
				Message:  "failed to load gone.bs",
			},
		},
		Count:  2,
		Errors: 2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json (-want +got):\n%s", diff)
	}
}

func TestJSONMax(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || !out.Truncated || out.Errors != 2 {
		t.Fatalf("unexpected truncation: %+v", out)
	}
	if out.Diagnostics[0].Location == nil || out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("positions must be omitted by default: %+v", out.Diagnostics[0].Location)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatal("notes must be omitted by default")
	}
}

func TestTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.bs", []byte("int x; // c\nint y;")))
	toks := lexer.New(file, lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var got []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(got), len(toks))
	}
	if got[1].Text != "x" || got[1].Line != 1 || got[1].Col != 5 {
		t.Fatalf("unexpected second token: %+v", got[1])
	}
	if diff := cmp.Diff([]string{"space", "line_comment", "newline"}, got[3].Leading); diff != "" {
		t.Fatalf("leading trivia (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	if lines := bytes.Count(buf.Bytes(), []byte("\n")); lines != len(toks) {
		t.Fatalf("pretty printed %d lines for %d tokens", lines, len(toks))
	}
}
