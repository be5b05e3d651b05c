package http

import (
	"net/url"
	"testing"
	"time"
)

func TestParseMonthKey(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"absent defaults to current month", "", "2026-08", false},
		{"explicit month", "2026-03", "2026-03", false},
		{"malformed", "March 2026", "", true},
		{"day included", "2026-03-15", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			if tt.raw != "" {
				q.Set("month", tt.raw)
			}
			got, err := parseMonthKey(q, now)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseDateParam(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	q := url.Values{}
	d, err := parseDateParam(q, "end", now)
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2026-08-26" {
		t.Errorf("default = %s, want today", d)
	}

	q.Set("end", "2026-01-05")
	d, err = parseDateParam(q, "end", now)
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2026-01-05" {
		t.Errorf("got %s", d)
	}

	q.Set("end", "05-01-2026")
	if _, err := parseDateParam(q, "end", now); err == nil {
		t.Error("malformed date should error")
	}
}

func TestParseCountParam(t *testing.T) {
	q := url.Values{}

	n, err := parseCountParam(q, "days", 30, 365)
	if err != nil || n != 30 {
		t.Errorf("default: n=%d err=%v", n, err)
	}

	q.Set("days", "90")
	n, err = parseCountParam(q, "days", 30, 365)
	if err != nil || n != 90 {
		t.Errorf("explicit: n=%d err=%v", n, err)
	}

	q.Set("days", "9999")
	n, _ = parseCountParam(q, "days", 30, 365)
	if n != 365 {
		t.Errorf("cap: n=%d, want 365", n)
	}

	q.Set("days", "-1")
	if _, err := parseCountParam(q, "days", 30, 365); err == nil {
		t.Error("negative should error")
	}
	q.Set("days", "lots")
	if _, err := parseCountParam(q, "days", 30, 365); err == nil {
		t.Error("non-numeric should error")
	}
}
