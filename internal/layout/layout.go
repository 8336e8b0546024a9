package layout

import (
	"sort"

	"bitscript/internal/types"
)

// Engine computes alignment, vtables and field offsets of object types and
// writes them into the types and their symbols.
type Engine struct {
	Target Target
}

// New creates an Engine for target. A zero pointer size falls back to Bits32.
func New(target Target) *Engine {
	if target.PtrSize <= 0 {
		target = Bits32()
	}
	if target.PtrAlign <= 0 {
		target.PtrAlign = target.PtrSize
	}
	return &Engine{Target: target}
}

// Compute runs the layout passes over objects, which must list every base type
// and value field type before its users. The resolver must have finished
// without errors; violations of that contract panic with *LayoutError.
func (e *Engine) Compute(objects []*types.ObjectType) *Report {
	for _, obj := range objects {
		e.computeAlignment(obj)
	}
	for _, obj := range objects {
		propagateAlignmentToBase(obj)
	}
	for _, obj := range objects {
		inheritAlignment(obj)
	}
	for _, obj := range objects {
		e.computeVTable(obj)
	}
	for _, obj := range objects {
		e.computeSize(obj)
	}
	return e.report(objects)
}

// computeAlignment: at least 1, at least the base alignment, at least the
// alignment of every own field. A type that carries a vtable pointer is at
// least pointer aligned.
func (e *Engine) computeAlignment(obj *types.ObjectType) {
	if obj.Alignment != 0 {
		panic(&LayoutError{Kind: LayoutErrRelayout, Object: obj.Name, Pass: "alignment"})
	}
	align := 1
	if obj.Base != nil {
		if obj.Base.Alignment == 0 {
			panic(&LayoutError{Kind: LayoutErrOrder, Object: obj.Name, Dep: obj.Base.Name, Pass: "alignment"})
		}
		align = max(align, obj.Base.Alignment)
	}
	if hasVirtual(obj) {
		align = max(align, e.Target.PtrAlign)
	}
	for _, f := range ownFields(obj) {
		_, fa := e.fieldLayout(obj, f, "alignment")
		align = max(align, fa)
	}
	obj.Alignment = align
}

// propagateAlignmentToBase widens every ancestor to the alignment of obj:
// objects are reached through base pointers, so a hierarchy shares one
// alignment even when siblings disagree.
func propagateAlignmentToBase(obj *types.ObjectType) {
	for base := obj.Base; base != nil; base = base.Base {
		if base.Alignment < obj.Alignment {
			base.Alignment = obj.Alignment
		}
	}
}

// inheritAlignment widens obj to the alignment of its base. Run in base-first
// order after propagateAlignmentToBase, it gives every class of a hierarchy
// the alignment of its root, siblings of a widened class included.
func inheritAlignment(obj *types.ObjectType) {
	if obj.Base != nil && obj.Base.Alignment > obj.Alignment {
		obj.Alignment = obj.Base.Alignment
	}
}

// computeVTable copies the base table; an override reuses the slot of the
// member it overrides, any other virtual function appends a slot.
func (e *Engine) computeVTable(obj *types.ObjectType) {
	if obj.Vtable != nil {
		panic(&LayoutError{Kind: LayoutErrRelayout, Object: obj.Name, Pass: "vtable"})
	}
	vtable := make([]*types.Symbol, 0, 4)
	if obj.Base != nil {
		vtable = append(vtable, obj.Base.Vtable...)
	}
	for _, sym := range obj.Scope.Symbols() {
		if sym.Scope != obj.Scope || !sym.IsFunction() || sym.IsStatic() || !sym.IsVirtual() {
			continue
		}
		if over := sym.Overridden; over != nil && over.ByteOffset >= 0 {
			sym.ByteOffset = over.ByteOffset
			vtable[over.ByteOffset/e.Target.PtrSize] = sym
			continue
		}
		sym.ByteOffset = len(vtable) * e.Target.PtrSize
		vtable = append(vtable, sym)
	}
	obj.Vtable = vtable
}

// computeSize places the vtable pointer (only at the root of a virtual
// hierarchy) and the own fields, largest first, after the base part.
func (e *Engine) computeSize(obj *types.ObjectType) {
	if obj.Size != 0 {
		panic(&LayoutError{Kind: LayoutErrRelayout, Object: obj.Name, Pass: "size"})
	}
	offset := 0
	if obj.Base != nil {
		if obj.Base.Size == 0 {
			panic(&LayoutError{Kind: LayoutErrOrder, Object: obj.Name, Dep: obj.Base.Name, Pass: "size"})
		}
		offset = obj.Base.Size
	}

	if obj.NeedsVtable() {
		if obj.Base == nil || !obj.Base.NeedsVtable() {
			offset = roundUp(offset, e.Target.PtrAlign)
			obj.VtableByteOffset = offset
			offset += e.Target.PtrSize
		} else {
			obj.VtableByteOffset = obj.Base.VtableByteOffset
		}
	}

	type placed struct {
		sym         *types.Symbol
		size, align int
	}
	fields := ownFields(obj)
	items := make([]placed, 0, len(fields))
	for _, f := range fields {
		size, align := e.fieldLayout(obj, f, "size")
		items = append(items, placed{sym: f, size: size, align: align})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].size > items[j].size })
	for _, it := range items {
		offset = roundUp(offset, it.align)
		it.sym.ByteOffset = offset
		offset += it.size
	}

	obj.Size = roundUp(max(offset, 1), obj.Alignment)
}

// fieldLayout returns the size and alignment of a field slot.
func (e *Engine) fieldLayout(obj *types.ObjectType, f *types.Symbol, pass string) (int, int) {
	t := f.Type
	if !f.IsResolved() || t.IsError() {
		panic(&LayoutError{Kind: LayoutErrUnresolved, Object: obj.Name, Field: f.Name, Pass: pass})
	}
	if !t.IsValue() {
		return e.Target.PtrSize, e.Target.PtrAlign
	}
	switch inner := t.Inner().(type) {
	case *types.ObjectType:
		// в проходе выравнивания размеры ещё не посчитаны
		if inner.Alignment == 0 || (pass == "size" && inner.Size == 0) {
			panic(&LayoutError{Kind: LayoutErrOrder, Object: obj.Name, Dep: inner.Name, Pass: pass})
		}
		return inner.Size, inner.Alignment
	case *types.SpecialType:
		return inner.ByteSize(), inner.ByteAlignment()
	default:
		// функции и параметры типов хранятся как указатели
		return e.Target.PtrSize, e.Target.PtrAlign
	}
}

// ownFields lists the data members declared by obj itself in declaration order.
func ownFields(obj *types.ObjectType) []*types.Symbol {
	var out []*types.Symbol
	for _, sym := range obj.Scope.Symbols() {
		if sym.Scope == obj.Scope && sym.IsField() {
			out = append(out, sym)
		}
	}
	return out
}

func hasVirtual(obj *types.ObjectType) bool {
	for _, sym := range obj.Scope.Symbols() {
		if sym.IsFunction() && !sym.IsStatic() && sym.IsVirtual() {
			return true
		}
	}
	return false
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}
