package driver

import (
	"context"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/layout"
	"bitscript/internal/observ"
	"bitscript/internal/parser"
	"bitscript/internal/project"
	"bitscript/internal/sema"
	"bitscript/internal/source"
)

// Options controls one compilation.
type Options struct {
	// MaxDiagnostics caps the bag; 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds concurrent lexing; 0 uses GOMAXPROCS.
	Jobs   int
	Target layout.Target
	// Layout runs the layout phase after a clean resolve.
	Layout bool
	// Cache, when set, short-circuits layout runs over unchanged sources.
	Cache *DiskCache
	Timer *observ.Timer

	WarningsAsErrors bool
}

// Result is everything a compilation produced. On a cache hit only FileSet,
// Files, Bag, Layout and Key are filled.
type Result struct {
	FileSet *source.FileSet
	Files   []source.FileID
	Builder *ast.Builder
	Module  *ast.Module
	Bag     *diag.Bag
	Sema    *sema.Result
	Layout  *layout.Report

	CacheHit bool
	Key      project.Digest
}

// Compile loads paths (directories are expanded to their *.bs files) and runs
// the pipeline over them as one module. Unreadable files become diagnostics;
// the returned error is reserved for bad arguments and cancellation.
func Compile(ctx context.Context, paths []string, opts Options) (*Result, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, 0, len(files))

	done := opts.Timer.Track("load")
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, fmt.Sprintf("failed to load %s: %v", path, err)))
			continue
		}
		ids = append(ids, id)
	}
	done(strconv.Itoa(len(ids)) + " files")
	if len(files) == 0 {
		bag.Add(diag.NewError(diag.ProjNoSources, source.Span{}, "no source files to compile"))
	}

	return run(ctx, fileSet, ids, bag, opts)
}

// CompileSources runs the pipeline over in-memory sources.
func CompileSources(ctx context.Context, sources []Source, opts Options) (*Result, error) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, 0, len(sources))
	for _, src := range sources {
		ids = append(ids, fileSet.AddVirtual(src.Name, src.Content))
	}
	return run(ctx, fileSet, ids, bag, opts)
}

func run(ctx context.Context, fileSet *source.FileSet, ids []source.FileID, bag *diag.Bag, opts Options) (*Result, error) {
	if opts.Target.PtrSize == 0 {
		opts.Target = layout.Bits32()
	}
	res := &Result{
		FileSet: fileSet,
		Files:   ids,
		Bag:     bag,
		Key:     cacheKey(fileSet, ids, opts.Target),
	}

	useCache := opts.Layout && opts.Cache != nil && bag.Len() == 0
	if useCache {
		var payload DiskPayload
		// битый кэш не повод падать, просто пересчитаем
		if ok, err := opts.Cache.Get(res.Key, &payload); err == nil && ok {
			opts.Timer.Track("cache")("hit " + res.Key.String())
			res.Layout = payload.Report
			res.CacheHit = true
			return res, nil
		}
	}

	done := opts.Timer.Track("lex")
	lexed, err := lexFiles(ctx, fileSet, ids, opts.MaxDiagnostics, opts.Jobs)
	if err != nil {
		return nil, err
	}
	for _, lr := range lexed {
		// Merge увеличил бы лимит; добавляем по одной
		for _, d := range lr.Bag.Items() {
			bag.Add(d)
		}
	}
	done("")

	done = opts.Timer.Track("parse")
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		maxErrors = 0
	}
	reporter := diag.BagReporter{Bag: bag}
	res.Builder = ast.NewBuilder(ast.Hints{})
	parsed := make([]parser.Result, 0, len(lexed))
	for _, lr := range lexed {
		current, convErr := safecast.Conv[uint](bag.ErrorCount())
		if convErr != nil {
			current = 0
		}
		parsed = append(parsed, parser.ParseTokens(lr.Tokens, res.Builder, parser.Options{
			MaxErrors:     maxErrors,
			CurrentErrors: current,
			Reporter:      reporter,
		}))
	}
	res.Module = parser.JoinModule(res.Builder, parsed)
	done("")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done = opts.Timer.Track("resolve")
	res.Sema = sema.Check(res.Module, sema.Options{Reporter: reporter})
	done(strconv.Itoa(len(res.Sema.Objects)) + " objects")

	if opts.WarningsAsErrors {
		res.Bag = promoteWarnings(bag, opts.MaxDiagnostics)
		bag = res.Bag
	}

	if !opts.Layout || bag.HasErrors() {
		return res, nil
	}

	done = opts.Timer.Track("layout")
	res.Layout = layout.New(opts.Target).Compute(res.Sema.SortedObjects)
	done("")

	if useCache && bag.Len() == 0 {
		// ошибка записи кэша не ломает компиляцию
		_ = opts.Cache.Put(res.Key, &DiskPayload{Files: fileNames(fileSet, ids), Report: res.Layout}) //nolint:errcheck
	}
	return res, nil
}

// cacheKey covers the target and every file's name and content in order.
func cacheKey(fileSet *source.FileSet, ids []source.FileID, target layout.Target) project.Digest {
	h := project.NewHasher()
	h.AddString(target.Name).AddString(strconv.Itoa(target.PtrSize)).AddString(strconv.Itoa(target.PtrAlign))
	for _, id := range ids {
		f := fileSet.Get(id)
		h.AddString(f.Path).Add(f.Content)
	}
	return h.Sum()
}

func fileNames(fileSet *source.FileSet, ids []source.FileID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fileSet.Get(id).Path)
	}
	return out
}

func promoteWarnings(bag *diag.Bag, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			d.Severity = diag.SevError
		}
		out.Add(d)
	}
	return out
}
