package diag

import (
	"testing"

	"bitscript/internal/source"
)

func TestBagTracksErrorsPastLimit(t *testing.T) {
	bag := NewBag(1)
	r := BagReporter{Bag: bag}

	ReportWarning(r, SemaImpliedMove, source.Span{}, "w").Emit()
	ReportError(r, SemaUnknownSymbol, source.Span{}, "e").Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected limit to keep one diagnostic, got %d", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatalf("dropped error must still be counted")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	b := ReportError(BagReporter{Bag: bag}, SemaCircularType, source.Span{Start: 1, End: 2}, "cycle").
		WithNote(source.Span{Start: 0, End: 1}, "declared here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	if got := bag.Items()[0].Notes; len(got) != 1 || got[0].Msg != "declared here" {
		t.Fatalf("unexpected notes %+v", got)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	span := source.Span{Start: 4, End: 8}
	r.Report(SemaUnknownSymbol, SevError, span, "x", nil)
	r.Report(SemaUnknownSymbol, SevError, span, "x", nil)
	r.Report(SemaUnknownSymbol, SevError, span, "y", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestSortAndFilter(t *testing.T) {
	bag := NewBag(0)
	bag.Add(Diagnostic{Severity: SevWarning, Code: SemaImpliedMove, Primary: source.Span{Start: 5, End: 6}})
	bag.Add(Diagnostic{Severity: SevError, Code: SemaUnknownSymbol, Primary: source.Span{Start: 1, End: 2}})
	bag.Sort()
	if bag.Items()[0].Code != SemaUnknownSymbol {
		t.Fatalf("sort did not order by start offset")
	}
	bag.Filter(func(d Diagnostic) bool { return d.Severity != SevError })
	if bag.HasErrors() || bag.Len() != 1 {
		t.Fatalf("filter must drop errors and recount: len=%d errors=%v", bag.Len(), bag.HasErrors())
	}
}

func TestCodeID(t *testing.T) {
	if got := SemaAbstractNew.ID(); got != "SEM3046" {
		t.Fatalf("ID() = %q", got)
	}
	if SemaAbstractNew.Title() == codeDescription[UnknownCode] {
		t.Fatalf("missing description for %d", SemaAbstractNew)
	}
}
