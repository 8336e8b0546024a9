package layout

import "fmt"

// LayoutErrorKind enumerates violated preconditions of the layout passes.
type LayoutErrorKind uint8

const (
	// LayoutErrRelayout means a pass found a type whose layout was already set.
	LayoutErrRelayout LayoutErrorKind = iota + 1
	// LayoutErrOrder means a base or value field type came after its user.
	LayoutErrOrder
	// LayoutErrUnresolved means a field still carries an error type.
	LayoutErrUnresolved
)

// LayoutError describes a broken precondition. Layout runs only on programs
// that resolved without errors, so the engine panics with it instead of
// reporting a diagnostic.
type LayoutError struct {
	Kind   LayoutErrorKind
	Object string
	Field  string // for LayoutErrUnresolved
	Dep    string // for LayoutErrOrder
	Pass   string
}

func (e *LayoutError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case LayoutErrRelayout:
		return fmt.Sprintf("layout: %s: %s already computed", e.Pass, e.Object)
	case LayoutErrOrder:
		return fmt.Sprintf("layout: %s: %s is laid out before %s", e.Pass, e.Object, e.Dep)
	case LayoutErrUnresolved:
		return fmt.Sprintf("layout: %s: field %s.%s has no resolved type", e.Pass, e.Object, e.Field)
	default:
		return fmt.Sprintf("layout error kind=%d object=%s", e.Kind, e.Object)
	}
}
