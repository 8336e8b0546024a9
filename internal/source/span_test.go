package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{1, 2, 4}, Span{1, 8, 10}, Span{1, 2, 10}},
		{"nested", Span{1, 0, 10}, Span{1, 3, 4}, Span{1, 0, 10}},
		{"other file", Span{1, 2, 4}, Span{2, 0, 10}, Span{1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 5, End: 20}
	if !outer.Contains(Span{File: 0, Start: 5, End: 20}) {
		t.Error("span must contain itself")
	}
	if outer.Contains(Span{File: 0, Start: 4, End: 6}) {
		t.Error("overlapping span reported as contained")
	}
	if (Span{Start: 3, End: 3}).Len() != 0 || !(Span{Start: 3, End: 3}).Empty() {
		t.Error("zero-length span")
	}
}
