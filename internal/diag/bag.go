package diag

import (
	"fmt"
	"math"
	"sort"

	"fortio.org/safecast"
)

// Bag is the append-only diagnostic log of a compilation.
type Bag struct {
	items  []Diagnostic
	max    uint16
	errors int
}

// NewBag creates a bag that keeps at most max diagnostics (0 means unlimited).
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil || max == 0 {
		limit = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 16)),
		max:   limit,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
// Errors are counted even when dropped so HasErrors stays truthful.
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity >= SevError {
		b.errors++
	}
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any error was recorded.
func (b *Bag) HasErrors() bool {
	return b.errors > 0
}

// ErrorCount returns the number of recorded errors, including dropped ones.
func (b *Bag) ErrorCount() int {
	return b.errors
}

// HasWarnings возвращает true, если есть хотя бы одна диагностика с Severity >= Warning
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// Не модифицируйте возвращаемый срез: он указывает на внутренний массив Bag.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends every diagnostic of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		if limit, err := safecast.Conv[uint16](total); err == nil {
			b.max = limit
		}
	}
	b.items = append(b.items, other.items...)
	b.errors += other.errors
}

// Sort orders diagnostics by file, start, end, severity (desc) and code
// for stable output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated Code+Primary pairs, keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	kept := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	kept := b.items[:0]
	errors := 0
	for _, d := range b.items {
		if !keep(d) {
			continue
		}
		if d.Severity >= SevError {
			errors++
		}
		kept = append(kept, d)
	}
	b.items = kept
	b.errors = errors
}
