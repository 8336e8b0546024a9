package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a decoded bitscript.toml.
type Manifest struct {
	// Path is the manifest file; Root is its directory.
	Path string `toml:"-"`
	Root string `toml:"-"`

	Package     PackageConfig     `toml:"package"`
	Build       BuildConfig       `toml:"build"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Layout      LayoutConfig      `toml:"layout"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig lists source globs relative to the project root.
type BuildConfig struct {
	Sources []string `toml:"sources"`
}

type DiagnosticsConfig struct {
	Max              int  `toml:"max"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

// LayoutConfig overrides the layout target. Zero keeps 4-byte pointers.
type LayoutConfig struct {
	PointerSize int `toml:"pointer_size"`
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or blank.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrNoSources indicates that [build].sources matched no file.
	ErrNoSources = errors.New("no source files")
)

// LoadManifest decodes and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if !meta.IsDefined("package", "name") || m.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if m.Diagnostics.Max < 0 {
		return nil, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	if ps := m.Layout.PointerSize; ps != 0 && ps != 4 && ps != 8 {
		return nil, fmt.Errorf("%s: [layout].pointer_size must be 4 or 8, got %d", path, ps)
	}
	if len(m.Build.Sources) == 0 {
		m.Build.Sources = []string{"*.bs"}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = abs
	m.Root = filepath.Dir(abs)
	return &m, nil
}

// Load finds the manifest above startDir and decodes it. ok is false when
// there is no manifest.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	return m, true, err
}

// SourceFiles expands [build].sources into a sorted, duplicate free list.
func (m *Manifest) SourceFiles() ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range m.Build.Sources {
		matches, err := filepath.Glob(filepath.Join(m.Root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, fmt.Errorf("%s: bad source pattern %q: %w", m.Path, pattern, err)
		}
		for _, f := range matches {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", m.Path, ErrNoSources)
	}
	sort.Strings(files)
	return files, nil
}
