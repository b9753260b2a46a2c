package scan

import (
	"testing"
	"time"
)

// TestBuildWindow verifies clamping and the radius around the target
func TestBuildWindow(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		day       int
		wantStart string
		wantEnd   string
	}{
		{"mid month", 1924, time.October, 15, "1924-10-12", "1924-10-18"},
		{"clamped leap day", 2023, time.February, 29, "2023-02-25", "2023-03-03"},
		{"valid leap day", 1924, time.February, 29, "1924-02-26", "1924-03-03"},
		{"crosses year start", 1950, time.January, 1, "1949-12-29", "1950-01-04"},
		{"crosses year end", 1950, time.December, 31, "1950-12-28", "1951-01-03"},
		{"day past month end", 1950, time.April, 31, "1950-04-27", "1950-05-03"},
		{"day below one", 1950, time.April, 0, "1950-03-29", "1950-04-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := BuildWindow(tt.year, tt.month, tt.day, WindowRadius)
			if got := w.Start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("BuildWindow(%d, %s, %d) start = %s, want %s", tt.year, tt.month, tt.day, got, tt.wantStart)
			}
			if got := w.End.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("BuildWindow(%d, %s, %d) end = %s, want %s", tt.year, tt.month, tt.day, got, tt.wantEnd)
			}
			if w.Start.After(w.End) {
				t.Errorf("BuildWindow() start %s after end %s", w.Start, w.End)
			}
		})
	}
}

func TestBuildWindow_Radius(t *testing.T) {
	if w := BuildWindow(1924, time.October, 15, 0); !w.Start.Equal(w.End) {
		t.Errorf("zero radius window = %s, want a single day", w)
	}

	if got := BuildWindow(1924, time.October, 15, -2).String(); got != "1924-10-13..1924-10-17" {
		t.Errorf("negative radius window = %s, want 1924-10-13..1924-10-17", got)
	}

	target := time.Date(1924, time.October, 15, 0, 0, 0, 0, time.UTC)
	if !BuildWindow(1924, time.October, 15, WindowRadius).Contains(target) {
		t.Errorf("window does not contain its target %s", target)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2023, time.February, 28},
		{1924, time.September, 30},
		{1924, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
