package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"bitscript/internal/diag"
	"bitscript/internal/lexer"
	"bitscript/internal/source"
	"bitscript/internal/token"
)

type lexResult struct {
	Tokens []token.Token
	Bag    *diag.Bag
}

// lexFiles lexes every file concurrently. Each worker owns its bag; results
// are indexed like ids so the caller merges them in input order.
func lexFiles(ctx context.Context, fileSet *source.FileSet, ids []source.FileID, maxDiagnostics, jobs int) ([]lexResult, error) {
	results := make([]lexResult, len(ids))
	if len(ids) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(ids)))
	for i, id := range ids {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(maxDiagnostics)
			lx := lexer.New(fileSet.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = lexResult{Tokens: lx.All(), Bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
