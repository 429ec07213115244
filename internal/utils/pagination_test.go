package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		// empty -> default
		{"", 10, 10},
		// valid ints
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		// invalid -> default (no trim)
		{"x", 5, 5},
		{" 42", 7, 7},
		// overflow -> default
		{"999999999999999999999999", -1, -1},
	}

	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		n, def, max int
		want        int
	}{
		{0, 24, 50, 24},
		{-3, 24, 50, 24},
		{1, 24, 50, 1},
		{24, 24, 50, 24},
		{50, 24, 50, 50},
		{51, 24, 50, 50},
		{1000, 24, 50, 50},
	}
	for _, tc := range cases {
		if got := ClampLimit(tc.n, tc.def, tc.max); got != tc.want {
			t.Fatalf("ClampLimit(%d, %d, %d) = %d; want %d", tc.n, tc.def, tc.max, got, tc.want)
		}
	}
}

func TestClampOffset(t *testing.T) {
	if got := ClampOffset(-1); got != 0 {
		t.Fatalf("ClampOffset(-1) = %d; want 0", got)
	}
	if got := ClampOffset(0); got != 0 {
		t.Fatalf("ClampOffset(0) = %d; want 0", got)
	}
	if got := ClampOffset(7); got != 7 {
		t.Fatalf("ClampOffset(7) = %d; want 7", got)
	}
}
