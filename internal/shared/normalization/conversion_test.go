package normalization

import "testing"

func TestAsInt(t *testing.T) {
	cases := []struct {
		value any
		want  int
		ok    bool
	}{
		{float64(4), 4, true},
		{7, 7, true},
		{int64(9), 9, true},
		{" 12 ", 12, true},
		{"four", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, c := range cases {
		got, ok := AsInt(c.value)
		if got != c.want || ok != c.ok {
			t.Fatalf("AsInt(%v) = (%d, %v), want (%d, %v)", c.value, got, ok, c.want, c.ok)
		}
	}
}

func TestAsFloat64(t *testing.T) {
	if got, ok := AsFloat64(3.5); !ok || got != 3.5 {
		t.Fatalf("AsFloat64(3.5) = (%v, %v)", got, ok)
	}
	if got, ok := AsFloat64(" 4.25 "); !ok || got != 4.25 {
		t.Fatalf("AsFloat64 string = (%v, %v)", got, ok)
	}
	if _, ok := AsFloat64("high"); ok {
		t.Fatal("non-numeric string should fail")
	}
	if _, ok := AsFloat64(nil); ok {
		t.Fatal("nil should fail")
	}
}

func TestAsMapAndString(t *testing.T) {
	if m, ok := AsMap(map[string]any{"food": 4.0}); !ok || m["food"] != 4.0 {
		t.Fatal("AsMap should unwrap a JSON object")
	}
	if _, ok := AsMap("nope"); ok {
		t.Fatal("AsMap should reject non-objects")
	}
	if got := AsString("  hi  "); got != "hi" {
		t.Fatalf("AsString = %q, want hi", got)
	}
	if got := AsString(42); got != "" {
		t.Fatalf("AsString non-string = %q, want empty", got)
	}
}
