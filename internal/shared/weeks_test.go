package shared

import (
	"errors"
	"testing"
	"time"
)

func TestMondayOf(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "monday maps to itself",
			in:   "2026-08-10",
			want: "2026-08-10",
		},
		{
			name: "midweek maps back to monday",
			in:   "2026-08-13",
			want: "2026-08-10",
		},
		{
			name: "sunday maps back six days",
			in:   "2026-08-16",
			want: "2026-08-10",
		},
		{
			name: "year boundary",
			in:   "2026-01-01",
			want: "2025-12-29",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.in)
			if err != nil {
				t.Fatalf("bad test date: %v", err)
			}
			got := FormatWeek(MondayOf(d))
			if got != tt.want {
				t.Errorf("MondayOf(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWeek(t *testing.T) {
	t.Run("round trips the wire format", func(t *testing.T) {
		week, err := ParseWeek("2026-08-10")
		if err != nil {
			t.Fatalf("ParseWeek failed: %v", err)
		}
		if FormatWeek(week) != "2026-08-10" {
			t.Errorf("round trip produced %s", FormatWeek(week))
		}
	})

	t.Run("rejects malformed labels", func(t *testing.T) {
		for _, bad := range []string{"", "10/08/2026", "2026-8-10", "next monday"} {
			if _, err := ParseWeek(bad); err == nil {
				t.Errorf("expected error for %q", bad)
			} else if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput for %q, got %v", bad, err)
			}
		}
	})
}

func TestWeekLabelRange(t *testing.T) {
	week, err := ParseWeek("2026-08-10")
	if err != nil {
		t.Fatalf("ParseWeek failed: %v", err)
	}

	got := WeekLabelRange(week)
	want := "10/08/2026 - 16/08/2026"
	if got != want {
		t.Errorf("WeekLabelRange() = %v, want %v", got, want)
	}
}
