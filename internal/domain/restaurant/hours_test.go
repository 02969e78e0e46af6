package restaurant

import (
	"testing"
	"time"
)

func mustInterval(t *testing.T, open, close int) Interval {
	t.Helper()
	iv, err := NewInterval(open, close)
	if err != nil {
		t.Fatalf("NewInterval(%d, %d): %v", open, close, err)
	}
	return iv
}

// at builds a time on a fixed week so weekdays are predictable.
// 2024-01-01 is a Monday.
func at(day time.Weekday, hour, minute int) time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(day) - int(time.Monday) + 7) % 7
	return base.AddDate(0, 0, offset).Add(
		time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute,
	)
}

func TestNewInterval_OutOfRange(t *testing.T) {
	if _, err := NewInterval(-1, 600); err == nil {
		t.Error("expected error for negative open")
	}
	if _, err := NewInterval(600, 1440); err == nil {
		t.Error("expected error for close >= 1440")
	}
}

func TestOpenAt_RegularHours(t *testing.T) {
	h := Hours{
		time.Monday: {mustInterval(t, 9*60, 22*60)},
	}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before_open", at(time.Monday, 8, 59), false},
		{"at_open", at(time.Monday, 9, 0), true},
		{"midday", at(time.Monday, 13, 30), true},
		{"at_close", at(time.Monday, 22, 0), false},
		{"closed_day", at(time.Tuesday, 13, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := h.OpenAt(tc.now); got != tc.want {
				t.Errorf("OpenAt(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestOpenAt_OvernightWraparound(t *testing.T) {
	// Friday 18:00 - 02:00 Saturday.
	h := Hours{
		time.Friday: {mustInterval(t, 18*60, 2*60)},
	}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"friday_evening", at(time.Friday, 20, 0), true},
		{"friday_before_open", at(time.Friday, 17, 59), false},
		{"saturday_early_morning", at(time.Saturday, 1, 30), true},
		{"saturday_after_close", at(time.Saturday, 2, 0), false},
		{"saturday_evening", at(time.Saturday, 20, 0), false},
		{"thursday_early_morning", at(time.Thursday, 1, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := h.OpenAt(tc.now); got != tc.want {
				t.Errorf("OpenAt(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestOpenAt_SundayToMondayWraparound(t *testing.T) {
	h := Hours{
		time.Sunday: {mustInterval(t, 22*60, 3*60)},
	}
	if !h.OpenAt(at(time.Monday, 2, 0)) {
		t.Error("expected open Monday 02:00 from Sunday overnight interval")
	}
	if h.OpenAt(at(time.Monday, 3, 0)) {
		t.Error("expected closed Monday 03:00")
	}
}

func TestOpenAt_MultipleIntervals(t *testing.T) {
	h := Hours{
		time.Wednesday: {
			mustInterval(t, 11*60, 14*60),
			mustInterval(t, 17*60, 22*60),
		},
	}
	if !h.OpenAt(at(time.Wednesday, 12, 0)) {
		t.Error("expected open during lunch interval")
	}
	if h.OpenAt(at(time.Wednesday, 15, 0)) {
		t.Error("expected closed between intervals")
	}
	if !h.OpenAt(at(time.Wednesday, 19, 0)) {
		t.Error("expected open during dinner interval")
	}
}

func TestOpenAt_NoHours(t *testing.T) {
	var h Hours
	if h.OpenAt(at(time.Monday, 12, 0)) {
		t.Error("empty hours should never be open")
	}
}
