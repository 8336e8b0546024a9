package sema

import (
	"bitscript/internal/ast"
	"bitscript/internal/diag"
	"bitscript/internal/types"
)

// valueFieldTypes lists the object types embedded by value in obj: its base
// and every own field of value kind.
func (c *Checker) valueFieldTypes(obj *types.ObjectType) []valueEdge {
	var edges []valueEdge
	if obj.Base != nil {
		edges = append(edges, valueEdge{to: obj.Base})
	}
	for _, member := range obj.Scope.Symbols() {
		if member.Scope != obj.Scope || !member.IsField() || !member.IsResolved() {
			continue
		}
		t := member.Type
		if to := t.AsObject(); to != nil && t.IsValue() {
			edges = append(edges, valueEdge{to: to, field: member})
		}
	}
	return edges
}

type valueEdge struct {
	to    *types.ObjectType
	field *types.Symbol // nil for the base edge
}

// checkValueCycles rejects value types that contain themselves, which would
// have infinite size.
func (c *Checker) checkValueCycles() {
	const (
		white = iota
		gray
		black
	)
	color := make(map[*types.ObjectType]int, len(c.result.Objects))
	var visit func(obj *types.ObjectType)
	visit = func(obj *types.ObjectType) {
		color[obj] = gray
		for _, edge := range c.valueFieldTypes(obj) {
			switch color[edge.to] {
			case gray:
				if edge.field != nil {
					span := edge.field.Span
					if v, ok := edge.field.Decl.(*ast.VariableDecl); ok {
						span = v.Type.Span()
					}
					c.report(diag.SemaRecursiveValueType, span,
						"value type %s contains itself through field %s", edge.to.Name, edge.field.Name)
					// разрываем цикл, чтобы раскладка и сортировка видели конечный граф
					edge.field.Type = types.ErrorType()
				}
			case white:
				visit(edge.to)
			}
		}
		color[obj] = black
	}
	for _, obj := range c.result.Objects {
		if color[obj] == white {
			visit(obj)
		}
	}
}

// sortObjects orders objects so that every base type and every value field
// type precedes its users. Ties keep declaration order.
func sortObjects(objects []*types.ObjectType, edges func(*types.ObjectType) []valueEdge) []*types.ObjectType {
	out := make([]*types.ObjectType, 0, len(objects))
	seen := make(map[*types.ObjectType]bool, len(objects))
	user := make(map[*types.ObjectType]bool, len(objects))
	for _, obj := range objects {
		user[obj] = true
	}
	var visit func(obj *types.ObjectType)
	visit = func(obj *types.ObjectType) {
		if seen[obj] || !user[obj] {
			return
		}
		seen[obj] = true
		for _, edge := range edges(obj) {
			visit(edge.to)
		}
		out = append(out, obj)
	}
	for _, obj := range objects {
		visit(obj)
	}
	return out
}
