package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bitscript/internal/ast"
	"bitscript/internal/sema"
	"bitscript/internal/source"
	"bitscript/internal/types"
)

// CheckSpanInvariants walks a parsed module and checks that every node span
// 1) points to a file of fs,
// 2) is not inverted,
// 3) ends within that file's content.
func CheckSpanInvariants(mod *ast.Module, fs *source.FileSet) error {
	if mod == nil || fs == nil {
		return fmt.Errorf("nil module or file set")
	}
	var firstErr error
	ast.Inspect(mod.Body, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		sp := n.Span()
		f := fs.Get(sp.File)
		if f == nil {
			firstErr = fmt.Errorf("node %d: span points to unknown file %d", n.ID(), sp.File)
			return false
		}
		if sp.End < sp.Start {
			firstErr = fmt.Errorf("node %d: inverted span %v", n.ID(), sp)
			return false
		}
		lenContent, err := safecast.Conv[uint32](len(f.Content))
		if err != nil {
			firstErr = fmt.Errorf("len content overflow: %w", err)
			return false
		}
		if sp.End > lenContent {
			firstErr = fmt.Errorf("node %d: span end beyond content: %d > %d", n.ID(), sp.End, lenContent)
			return false
		}
		return true
	})
	return firstErr
}

// CheckResolved verifies the resolver artefacts of a module: every declaration
// has a typed symbol and the symbol table is internally consistent.
func CheckResolved(res *sema.Result) error {
	if res == nil {
		return fmt.Errorf("nil resolver result")
	}
	for id, sym := range res.Symbols {
		if sym == nil {
			return fmt.Errorf("declaration %d has a nil symbol", id)
		}
		if sym.Type == nil || sym.Type.IsCircular() {
			return fmt.Errorf("symbol %s of declaration %d has no resolved type", sym.Name, id)
		}
	}
	for _, obj := range res.Objects {
		if obj.State() == types.ObjectInitializing {
			return fmt.Errorf("object %s is stuck in initialization", obj.Name)
		}
	}
	return res.Table.Validate()
}
