package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"1.0", 1, true},
		{"1.23", 1.23, true},
		{"1,23", 1.23, true},
		{"0.01", 0.01, true},
		{"1.005", 1.01, true}, // half-up rounding
		{" 2.50 ", 2.5, true},
		{"₹99.99", 99.99, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(1234.5); got != "₹1234.50" {
		t.Fatalf("FormatAmount(1234.5) = %q", got)
	}
	if got := FormatAmount(0); got != "₹0.00" {
		t.Fatalf("FormatAmount(0) = %q", got)
	}
}

func TestRoundAmount(t *testing.T) {
	if got := RoundAmount(10.005); got != 10.01 {
		t.Fatalf("RoundAmount(10.005) = %v, want 10.01", got)
	}
	if got := RoundAmount(10.004); got != 10.0 {
		t.Fatalf("RoundAmount(10.004) = %v, want 10", got)
	}
}
