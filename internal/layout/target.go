package layout

// Target describes the pointer model layouts are computed for.
//
// Only the 32-bit model is used today; PtrSize is kept configurable for the
// manifest's [layout] table.
type Target struct {
	Name     string `json:"name" msgpack:"name"`
	PtrSize  int    `json:"ptr_size" msgpack:"ptr_size"`
	PtrAlign int    `json:"ptr_align" msgpack:"ptr_align"`
}

// Bits32 is the default target: every pointer, reference and vtable slot
// takes 4 bytes.
func Bits32() Target {
	return Target{
		Name:     "bits32",
		PtrSize:  4,
		PtrAlign: 4,
	}
}

// WithPointerSize returns a copy of t using size for pointers and alignment.
func (t Target) WithPointerSize(size int) Target {
	if size <= 0 {
		return t
	}
	t.PtrSize, t.PtrAlign = size, size
	if size != 4 {
		t.Name = "custom"
	}
	return t
}
