package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of bitscript source files.
const SourceExt = ".bs"

// Source is an in-memory input file.
type Source struct {
	Name    string
	Content []byte
}

// ListSources returns every *.bs file under dir in sorted order.
func ListSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandPaths replaces directories with the sources they contain. Files are
// kept in argument order; a path listed twice is compiled once.
func ExpandPaths(paths []string) ([]string, error) {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	add := func(p string) {
		key := filepath.Clean(p)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		files, err := ListSources(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}
