package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/symbols"
	"bitscript/internal/types"
)

// Natives is the environment every module is resolved in: the primitive type
// names, the static Math object and the generic List<T>.
type Natives struct {
	Prelude *types.Scope
	Math    *types.ObjectType
	List    *types.ObjectType
	ListT   *types.TypeParameter
}

// NewNatives builds the environment and registers it in table.
func NewNatives(table *symbols.Table) *Natives {
	n := &Natives{Prelude: types.NewScope(nil, types.ScopeNative)}
	table.AddScope(n.Prelude)

	for _, prim := range []*types.SpecialType{types.Int, types.Bool, types.Float, types.Double, types.Void} {
		n.bind(table, n.Prelude, prim.String(), types.WrapValue(prim), ast.ModFinal)
	}

	n.Math = n.object(table, "Math")
	double := types.Wrap(types.Double, types.KindValue, types.ModInstance, nil)
	unary := fnType(double, double)
	binary := fnType(double, double, double)
	for _, fn := range []struct {
		name string
		typ  *types.Wrapped
	}{
		{"sqrt", unary},
		{"abs", unary},
		{"floor", unary},
		{"min", binary},
		{"max", binary},
	} {
		sym := n.bind(table, n.Math.Scope, fn.name, fn.typ, ast.ModStatic|ast.ModFinal)
		sym.EnclosingObject = n.Math
	}
	pi := n.bind(table, n.Math.Scope, "PI", double.WithModifiers(types.ModStorage|types.ModFinal), ast.ModStatic|ast.ModFinal)
	pi.EnclosingObject = n.Math

	n.ListT = types.NewTypeParameter("T")
	n.List = n.object(table, "List")
	n.List.Params = []*types.TypeParameter{n.ListT}
	elem := types.Wrap(n.ListT, types.KindPointer, types.ModInstance, nil)
	integer := types.Wrap(types.Int, types.KindValue, types.ModInstance, nil)
	void := types.WrapValue(types.Void).AsInstance()
	for _, fn := range []struct {
		name string
		typ  *types.Wrapped
	}{
		{"push", fnType(void, elem)},
		{"get", fnType(elem, integer)},
		{"set", fnType(void, integer, elem)},
		{"count", fnType(integer)},
	} {
		sym := n.bind(table, n.List.Scope, fn.name, fn.typ, ast.ModFinal)
		sym.EnclosingObject = n.List
	}
	return n
}

func (n *Natives) object(table *symbols.Table, name string) *types.ObjectType {
	scope := types.NewScope(n.Prelude, types.ScopeNative)
	table.AddScope(scope)
	obj := types.NewObjectType(name, scope, nil)
	obj.IsNative = true
	obj.IsSealed = true
	// нативные объекты живут за указателем, их поля невидимы для раскладки
	obj.Size, obj.Alignment = 4, 4
	obj.MarkInitialized(false, types.NewFunctionType(types.WrapValue(types.Void).AsInstance(), nil))
	n.bind(table, n.Prelude, name, types.WrapType(obj), ast.ModFinal)
	return obj
}

func (n *Natives) bind(table *symbols.Table, scope *types.Scope, name string, typ *types.Wrapped, mods ast.SymbolMods) *types.Symbol {
	sym := types.NewNativeSymbol(name, scope, typ, mods)
	scope.Replace(sym)
	table.AddSymbol(sym)
	return sym
}

func fnType(result *types.Wrapped, args ...*types.Wrapped) *types.Wrapped {
	return types.Wrap(types.NewFunctionType(result, args), types.KindValue,
		types.ModInstance|types.ModStorage|types.ModFinal, nil)
}
