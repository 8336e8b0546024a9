package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"bitscript/internal/parser"
	"bitscript/internal/types"
)

// Report is a plain snapshot of computed layouts, safe to serialize and cache.
type Report struct {
	Target  Target         `json:"target" msgpack:"target"`
	Objects []ObjectLayout `json:"objects" msgpack:"objects"`
}

// ObjectLayout describes one object type. VtableOffset is -1 for types
// without a vtable pointer.
type ObjectLayout struct {
	Name         string        `json:"name" msgpack:"name"`
	Kind         string        `json:"kind" msgpack:"kind"`
	Base         string        `json:"base,omitempty" msgpack:"base,omitempty"`
	Size         int           `json:"size" msgpack:"size"`
	Align        int           `json:"align" msgpack:"align"`
	VtableOffset int           `json:"vtable_offset" msgpack:"vtable_offset"`
	Fields       []FieldLayout `json:"fields,omitempty" msgpack:"fields,omitempty"`
	Vtable       []Slot        `json:"vtable,omitempty" msgpack:"vtable,omitempty"`
}

// FieldLayout is an own field in offset order.
type FieldLayout struct {
	Name   string `json:"name" msgpack:"name"`
	Type   string `json:"type" msgpack:"type"`
	Offset int    `json:"offset" msgpack:"offset"`
}

// Slot is one vtable entry; Owner is the type that declares the implementation.
type Slot struct {
	Offset int    `json:"offset" msgpack:"offset"`
	Name   string `json:"name" msgpack:"name"`
	Owner  string `json:"owner" msgpack:"owner"`
}

func (e *Engine) report(objects []*types.ObjectType) *Report {
	r := &Report{Target: e.Target, Objects: make([]ObjectLayout, 0, len(objects))}
	for _, obj := range objects {
		ol := ObjectLayout{
			Name:         obj.Name,
			Kind:         "class",
			Size:         obj.Size,
			Align:        obj.Alignment,
			VtableOffset: obj.VtableByteOffset,
		}
		if obj.IsValueType {
			ol.Kind = "struct"
		}
		if obj.Base != nil {
			ol.Base = obj.Base.Name
		}
		fields := ownFields(obj)
		sortByOffset(fields)
		for _, f := range fields {
			ol.Fields = append(ol.Fields, FieldLayout{Name: f.Name, Type: f.Type.String(), Offset: f.ByteOffset})
		}
		for _, sym := range obj.Vtable {
			owner := ""
			if sym.EnclosingObject != nil {
				owner = sym.EnclosingObject.Name
			}
			ol.Vtable = append(ol.Vtable, Slot{Offset: sym.ByteOffset, Name: memberName(sym.Name), Owner: owner})
		}
		r.Objects = append(r.Objects, ol)
	}
	return r
}

func sortByOffset(fields []*types.Symbol) {
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].ByteOffset < fields[j].ByteOffset })
}

func memberName(name string) string {
	switch name {
	case parser.DestructorName:
		return "~destructor"
	case parser.MoveDestructorName:
		return "~move"
	}
	return name
}

// Object returns the layout of the named object or nil.
func (r *Report) Object(name string) *ObjectLayout {
	for i := range r.Objects {
		if r.Objects[i].Name == name {
			return &r.Objects[i]
		}
	}
	return nil
}

// EncodeJSON writes r as indented JSON.
func EncodeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// EncodeMsgpack serializes r for the disk cache and the msgpack output format.
func EncodeMsgpack(r *Report) ([]byte, error) {
	return msgpack.Marshal(r)
}

// DecodeMsgpack is the inverse of EncodeMsgpack.
func DecodeMsgpack(data []byte) (*Report, error) {
	var r Report
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("layout: decode report: %w", err)
	}
	return &r, nil
}

// WriteText prints a human readable report.
func WriteText(w io.Writer, r *Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "target %s (pointer %d/%d)\n", r.Target.Name, r.Target.PtrSize, r.Target.PtrAlign)
	for _, obj := range r.Objects {
		fmt.Fprintf(&b, "\n%s %s", obj.Kind, obj.Name)
		if obj.Base != "" {
			fmt.Fprintf(&b, " : %s", obj.Base)
		}
		fmt.Fprintf(&b, "  size=%d align=%d\n", obj.Size, obj.Align)
		if obj.VtableOffset >= 0 {
			fmt.Fprintf(&b, "  %4d  <vtable>\n", obj.VtableOffset)
		}
		for _, f := range obj.Fields {
			fmt.Fprintf(&b, "  %4d  %s %s\n", f.Offset, f.Type, f.Name)
		}
		for _, s := range obj.Vtable {
			fmt.Fprintf(&b, "  slot %d  %s.%s\n", s.Offset, s.Owner, s.Name)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
