package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.bs", []byte("hello world"), 0)
	id2 := fs.Add("test.bs", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("test.bs")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("old version content = %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.bs", []byte("ab\ncd\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestRangeAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.bs", []byte("int x;\nFoo foo;"))
	span := Span{File: id, Start: 7, End: 10}

	r := fs.Range(span)
	if r.Path != "main.bs" {
		t.Errorf("path = %q", r.Path)
	}
	if r.Start.Line != 2 || r.Start.Col != 1 || r.End.Col != 4 {
		t.Errorf("unexpected range %+v", r)
	}
	if got := fs.Text(span); got != "Foo" {
		t.Errorf("Text = %q, want Foo", got)
	}
	if got := fs.Get(id).GetLine(2); got != "Foo foo;" {
		t.Errorf("GetLine(2) = %q", got)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.bs")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa;\r\nb;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a;\nb;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
}
