package symbols

import (
	"sort"
	"strings"

	"bitscript/internal/types"
)

// Row is one line of a symbol table dump.
type Row struct {
	Scope      ScopeID
	ScopeKind  string
	Symbol     SymbolID
	Name       string
	Type       string
	Mods       string
	Object     string
	ByteOffset int
	Virtual    bool
}

// Rows lists user symbols grouped by scope, in registration order.
// Native symbols are skipped unless includeNative is set.
func (t *Table) Rows(includeNative bool) []Row {
	rows := make([]Row, 0, t.Symbols.Len())
	for _, sym := range t.Symbols.Data() {
		if sym.IsNative && !includeNative {
			continue
		}
		row := Row{
			Scope:      t.ScopeOf(sym),
			Symbol:     SymbolID(sym.ID),
			Name:       sym.Name,
			Mods:       sym.Mods.String(),
			ByteOffset: sym.ByteOffset,
			Virtual:    sym.IsVirtual(),
		}
		if sym.Scope != nil {
			row.ScopeKind = sym.Scope.Kind.String()
		}
		if sym.Type != nil {
			row.Type = sym.Type.String()
		}
		if sym.EnclosingObject != nil {
			row.Object = sym.EnclosingObject.Name
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Scope < rows[j].Scope })
	return rows
}

// Path renders the chain of object names enclosing scope, e.g. "Outer.Inner".
func Path(scope *types.Scope) string {
	var parts []string
	for cur := scope; cur != nil; cur = cur.Parent {
		if cur.Object != nil {
			parts = append(parts, cur.Object.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}
