package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"bitscript/internal/types"
)

// Scopes stores every registered scope; the slice index is the ID.
type Scopes struct {
	data     []*types.Scope
	children [][]ScopeID
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data:     make([]*types.Scope, 1, capacity+1), // index 0 reserved for NoScopeID
		children: make([][]ScopeID, 1, capacity+1),
	}
}

// New registers scope and stamps its ID. The parent, if any, must already be registered.
func (s *Scopes) New(scope *types.Scope) ScopeID {
	if scope == nil {
		panic("scopes.New: nil scope")
	}
	if scope.ID != 0 {
		return ScopeID(scope.ID)
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	scope.ID = value
	s.data = append(s.data, scope)
	s.children = append(s.children, nil)
	if scope.Parent != nil && scope.Parent.ID != 0 {
		parent := ScopeID(scope.Parent.ID)
		s.children[parent] = append(s.children[parent], id)
	}
	return id
}

// Get returns the scope or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *types.Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return s.data[id]
}

// Children lists scopes registered with id as their parent.
func (s *Scopes) Children(id ScopeID) []ScopeID {
	if !id.IsValid() || int(id) >= len(s.children) {
		return nil
	}
	return s.children[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Data exposes the underlying slice without the sentinel.
func (s *Scopes) Data() []*types.Scope {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}

// Symbols stores declared symbols in a compact arena.
type Symbols struct {
	data []*types.Symbol
}

// NewSymbols creates a symbol arena with optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{
		data: make([]*types.Symbol, 1, capacity+1), // index 0 reserved for NoSymbolID
	}
}

// New registers sym and stamps its ID.
func (s *Symbols) New(sym *types.Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	if sym.ID != 0 {
		return SymbolID(sym.ID)
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	sym.ID = value
	s.data = append(s.data, sym)
	return SymbolID(value)
}

// Get returns a symbol or nil for invalid ID.
func (s *Symbols) Get(id SymbolID) *types.Symbol {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return s.data[id]
}

// Len reports number of stored symbols excluding sentinel.
func (s *Symbols) Len() int { return len(s.data) - 1 }

// Data exposes the arena storage without the sentinel.
func (s *Symbols) Data() []*types.Symbol {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}
