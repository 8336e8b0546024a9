package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	clock := time.Unix(0, 0)
	timer := NewTimer()
	timer.now = func() time.Time { return clock }

	end := timer.Track("lex")
	clock = clock.Add(2 * time.Millisecond)
	end("3 files")

	idx := timer.Begin("resolve")
	clock = clock.Add(5 * time.Millisecond)
	timer.End(idx, "")

	report := timer.Report()
	if len(report.Phases) != 2 || report.TotalMS != 7 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Phases[0].Note != "3 files" || report.Phases[1].DurationMS != 5 {
		t.Fatalf("unexpected phases: %+v", report.Phases)
	}
	summary := timer.Summary()
	for _, want := range []string{"lex", "// 3 files", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary misses %q:\n%s", want, summary)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.Track("noop")("")
	if timer.Phases() != nil || len(timer.Report().Phases) != 0 {
		t.Fatal("nil timer should record nothing")
	}
}
