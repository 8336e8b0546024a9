package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bitscript/internal/layout"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayoutCommandJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "shapes.bs", "struct P { int x; double y; }")

	out, err := execute(t, "layout", "--format", "json", path)
	if err != nil {
		t.Fatalf("layout failed: %v\n%s", err, out)
	}
	var report layout.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	p := report.Object("P")
	if p == nil || p.Size != 16 || p.Align != 8 {
		t.Fatalf("unexpected layout for P: %+v", p)
	}
}

func TestDiagCommandFailsOnErrors(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.bs", "class A { Missing m; }")

	out, err := execute(t, "diag", "--format", "json", dir)
	if !errors.Is(err, errFailed) {
		t.Fatalf("expected errFailed, got %v", err)
	}
	if !strings.Contains(out, `"SEM3005"`) {
		t.Fatalf("expected unknown symbol diagnostic, got:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	versionFormat = "pretty"
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"tool": "bitscript"`) || !strings.Contains(out, `"target": "bits32"`) {
		t.Fatalf("unexpected version payload:\n%s", out)
	}
}
