package symbols

import (
	"strings"
	"testing"

	"bitscript/internal/types"
)

func TestTableRegistersScopesOnce(t *testing.T) {
	table := NewTable(Hints{})
	root := types.NewScope(nil, types.ScopeModule)
	first := table.AddScope(root)
	second := table.AddScope(root)

	if !first.IsValid() {
		t.Fatalf("expected valid scope ID")
	}
	if first != second || table.Root != first {
		t.Fatalf("expected AddScope to reuse existing id, got %v and %v", first, second)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestTableSymbolsAndChildren(t *testing.T) {
	table := NewTable(Hints{Scopes: 4, Symbols: 4})
	root := types.NewScope(nil, types.ScopeModule)
	rootID := table.AddScope(root)

	objScope := types.NewScope(root, types.ScopeObject)
	foo := types.NewObjectType("Foo", objScope, nil)
	sym := types.NewNativeSymbol("x", objScope, types.WrapValue(types.Int), 0)
	sym.EnclosingObject = foo
	objScope.Replace(sym)

	symID := table.AddSymbol(sym)
	if table.Symbols.Get(symID) != sym {
		t.Fatalf("symbol lookup by id failed")
	}
	children := table.Scopes.Children(rootID)
	if len(children) != 1 || table.Scopes.Get(children[0]) != objScope {
		t.Fatalf("expected object scope as child, got %v", children)
	}
	if table.Lookup(table.ScopeOf(sym), "x") != sym {
		t.Fatalf("lookup failed")
	}
	if got := Path(objScope); got != "Foo" {
		t.Fatalf("path: got %q", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	rows := table.Rows(true)
	if len(rows) != 1 || rows[0].Object != "Foo" || rows[0].Type != "int" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if len(table.Rows(false)) != 0 {
		t.Fatalf("native symbols should be hidden")
	}
}

func TestValidateReportsCircularLeftovers(t *testing.T) {
	table := NewTable(Hints{})
	root := types.NewScope(nil, types.ScopeModule)
	table.AddScope(root)
	sym := types.NewSymbol("A", root, nil)
	sym.Type = types.CircularType()
	table.AddSymbol(sym)

	err := table.Validate()
	if err == nil || !strings.Contains(err.Error(), "still being resolved") {
		t.Fatalf("expected circular leftover error, got %v", err)
	}
}
