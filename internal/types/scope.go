package types

// ScopeKind tells what introduced a scope.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeObject
	ScopeFunction
	ScopeBlock
	ScopeNative
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeObject:
		return "object"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "native"
	}
}

// Scope maps names to symbols and links to its lexical parent.
// Iteration follows insertion order so every pass over a scope is deterministic.
type Scope struct {
	Parent *Scope
	Kind   ScopeKind
	// Object is set for object body scopes.
	Object *ObjectType
	// ID is assigned by the symbols table.
	ID uint32

	symbols map[string]*Symbol
	order   []*Symbol
}

func NewScope(parent *Scope, kind ScopeKind) *Scope {
	return &Scope{Parent: parent, Kind: kind, symbols: make(map[string]*Symbol)}
}

// Find looks only in this scope.
func (s *Scope) Find(name string) *Symbol {
	return s.symbols[name]
}

// LexicalFind walks the parent chain and returns the first match.
func (s *Scope) LexicalFind(name string) *Symbol {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym := cur.symbols[name]; sym != nil {
			return sym
		}
	}
	return nil
}

// Replace inserts sym or overwrites the symbol with the same name.
func (s *Scope) Replace(sym *Symbol) {
	if old := s.symbols[sym.Name]; old != nil {
		for i, o := range s.order {
			if o == old {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym)
}

// Symbols returns the symbols in insertion order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// Len returns the number of names bound in this scope.
func (s *Scope) Len() int { return len(s.order) }

// IsOwn reports whether sym was declared in this scope rather than inherited.
func (s *Scope) IsOwn(sym *Symbol) bool { return sym.Scope == s }

// EnclosingObject returns the nearest object scope's type.
func (s *Scope) EnclosingObject() *ObjectType {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Object != nil {
			return cur.Object
		}
	}
	return nil
}
