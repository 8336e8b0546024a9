package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	// Check scopes.
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := t.Scopes.data[idx]
		if scope.ID != uint32(scopeID) {
			errs = append(errs, fmt.Errorf("scope %d carries id %d", scopeID, scope.ID))
		}
		if scope.Parent == nil {
			continue
		}
		parent := ScopeID(scope.Parent.ID)
		if !parent.IsValid() || int(parent) >= len(t.Scopes.data) || parent == scopeID {
			errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, parent))
			continue
		}
		found := false
		for _, child := range t.Scopes.children[parent] {
			if child == scopeID {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, parent))
		}
	}

	// Check symbols.
	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sym := t.Symbols.data[idx]
		if sym.ID != uint32(symbolID) {
			errs = append(errs, fmt.Errorf("symbol %d carries id %d", symbolID, sym.ID))
		}
		if sym.Scope == nil || sym.Scope.ID == 0 || int(sym.Scope.ID) >= len(t.Scopes.data) {
			errs = append(errs, fmt.Errorf("symbol %d (%s) has unregistered scope", symbolID, sym.Name))
			continue
		}
		if sym.Type != nil && sym.Type.IsCircular() {
			errs = append(errs, fmt.Errorf("symbol %d (%s) is still being resolved", symbolID, sym.Name))
		}
		if sym.Overridden != nil {
			linked := false
			for _, o := range sym.Overridden.OverriddenBy {
				if o == sym {
					linked = true
					break
				}
			}
			if !linked {
				errs = append(errs, fmt.Errorf("symbol %d (%s) missing override backlink", symbolID, sym.Name))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
