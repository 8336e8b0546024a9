package diagfmt

import (
	"os"
	"path/filepath"

	"bitscript/internal/diag"
	"bitscript/internal/source"
)

func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		if rel, err := filepath.Rel(baseDir, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		// короткий или относительный путь оставляем как есть
		if len(path) < 40 || !filepath.IsAbs(path) {
			return path
		}
		return filepath.Base(path)
	}
	return path
}

// located reports whether d points into a file. I/O and project
// diagnostics are about the compilation as a whole and carry a zero span.
func located(d *diag.Diagnostic, fs *source.FileSet) bool {
	if d.Code >= diag.IOLoadFileError || fs == nil {
		return false
	}
	return fs.Get(d.Primary.File) != nil
}
