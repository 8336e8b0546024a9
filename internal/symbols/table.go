package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"bitscript/internal/types"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table registers every scope and symbol the resolver creates so they can be
// addressed by ID, validated and dumped.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Root    ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
	}
}

// AddScope registers scope; the first scope registered becomes the root.
func (t *Table) AddScope(scope *types.Scope) ScopeID {
	id := t.Scopes.New(scope)
	if !t.Root.IsValid() {
		t.Root = id
	}
	return id
}

// AddSymbol registers sym, registering its declaring scope first when needed.
func (t *Table) AddSymbol(sym *types.Symbol) SymbolID {
	if sym.Scope != nil && sym.Scope.ID == 0 {
		t.AddScope(sym.Scope)
	}
	return t.Symbols.New(sym)
}

// ScopeOf returns the ID of the scope that declared sym.
func (t *Table) ScopeOf(sym *types.Symbol) ScopeID {
	if sym == nil || sym.Scope == nil {
		return NoScopeID
	}
	return ScopeID(sym.Scope.ID)
}

// Lookup walks the scope chain starting at id.
func (t *Table) Lookup(id ScopeID, name string) *types.Symbol {
	scope := t.Scopes.Get(id)
	if scope == nil {
		return nil
	}
	return scope.LexicalFind(name)
}
