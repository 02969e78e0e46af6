package restaurant

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// Interval is a single open/close range within a day, in minutes since
// midnight. close < open means the interval wraps past midnight.
type Interval struct {
	open  int
	close int
}

// NewInterval validates and creates an operating interval.
func NewInterval(open, close int) (Interval, error) {
	if open < 0 || open >= minutesPerDay {
		return Interval{}, fmt.Errorf("open minute %d out of range", open)
	}
	if close < 0 || close >= minutesPerDay {
		return Interval{}, fmt.Errorf("close minute %d out of range", close)
	}
	return Interval{open: open, close: close}, nil
}

// Open returns the opening minute of day.
func (iv Interval) Open() int { return iv.open }

// Close returns the closing minute of day.
func (iv Interval) Close() int { return iv.close }

// WrapsMidnight reports whether the interval closes on the following day.
func (iv Interval) WrapsMidnight() bool { return iv.close < iv.open }

// Hours maps weekdays to operating intervals. A weekday with no intervals
// means closed all day.
type Hours map[time.Weekday][]Interval

// OpenAt reports whether the venue is open at the given instant.
//
// An interval wrapping past midnight yields two candidate segments: the
// evening segment of its own day (open..24:00) and the early-morning tail
// (00:00..close) of the following day.
func (h Hours) OpenAt(now time.Time) bool {
	if len(h) == 0 {
		return false
	}
	day := now.Weekday()
	minute := now.Hour()*60 + now.Minute()

	for _, iv := range h[day] {
		if iv.WrapsMidnight() {
			if minute >= iv.open {
				return true
			}
		} else if minute >= iv.open && minute < iv.close {
			return true
		}
	}

	// Tail of an overnight interval that started yesterday.
	prev := (day + 6) % 7
	for _, iv := range h[prev] {
		if iv.WrapsMidnight() && minute < iv.close {
			return true
		}
	}

	return false
}
