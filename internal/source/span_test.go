package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint", Span{1, 2, 4}, Span{1, 8, 9}, Span{1, 2, 9}},
		{"nested", Span{1, 2, 10}, Span{1, 4, 5}, Span{1, 2, 10}},
		{"other file ignored", Span{1, 2, 4}, Span{2, 0, 9}, Span{1, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 0, Start: 5, End: 20}
	if !outer.Contains(Span{File: 0, Start: 5, End: 5}) {
		t.Error("zero-width span at start must be contained")
	}
	if outer.Contains(Span{File: 0, Start: 4, End: 6}) {
		t.Error("overlapping span must not be contained")
	}
	if outer.Contains(Span{File: 1, Start: 6, End: 7}) {
		t.Error("span of another file must not be contained")
	}
	if z := outer.ZeroAt(); !z.Empty() || z.Start != 5 {
		t.Errorf("ZeroAt = %v", z)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("alpha")
	b := in.Intern("beta")
	if a == NoStringID || b == NoStringID || a == b {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if again := in.Intern("alpha"); again != a {
		t.Errorf("Intern is not idempotent: %d vs %d", again, a)
	}
	if s := in.MustLookup(b); s != "beta" {
		t.Errorf("MustLookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("Lookup of unknown id must fail")
	}
	if id, ok := in.Find("gamma"); ok || id != NoStringID {
		t.Error("Find must not insert")
	}
	if in.Len() != 3 {
		t.Errorf("Len = %d, want 3", in.Len())
	}
}
