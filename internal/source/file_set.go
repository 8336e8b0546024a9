package source

import (
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every source file of one compilation.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates a FileSet whose relative paths are resolved against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{
		files:   make([]File, 0, 4),
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores normalized content and returns a fresh FileID.
// Adding the same path twice creates a new version; the index points at the latest.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalized := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	})
	fileSet.index[normalized] = id
	return id
}

// Load reads a file from disk, strips a BOM, normalizes CRLF and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file (tests, stdin).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id, or nil when id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Len reports the number of stored files.
func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Range resolves a span into a path plus start/end markers.
func (fileSet *FileSet) Range(span Span) Range {
	start, end := fileSet.Resolve(span)
	path := ""
	if f := fileSet.Get(span.File); f != nil {
		path = f.Path
	}
	return Range{
		Path:  path,
		Start: Marker{Offset: span.Start, LineCol: start},
		End:   Marker{Offset: span.End, LineCol: end},
	}
}

// Text returns the source text covered by span.
func (fileSet *FileSet) Text(span Span) string {
	f := fileSet.Get(span.File)
	if f == nil || span.End > uint32(len(f.Content)) || span.Start > span.End {
		return ""
	}
	return string(f.Content[span.Start:span.End])
}

// GetLine returns line lineNum (1-based) without its trailing newline.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	var start uint32
	if lineNum > 1 {
		if int(lineNum-2) >= len(f.LineIdx) {
			return ""
		}
		start = f.LineIdx[lineNum-2] + 1
	}
	end := lenContent
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start > lenContent || start > end {
		return ""
	}
	return string(f.Content[start:end])
}
