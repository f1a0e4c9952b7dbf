package salary

import "time"

// OverlapCalculator counts the leave days that fall inside a billing window.
type OverlapCalculator struct {
}

func NewOverlapCalculator() *OverlapCalculator {
	return &OverlapCalculator{}
}

// OverlapDays returns the inclusive number of calendar days shared by
// [leaveStart, leaveEnd] and [windowStart, windowEnd]. All bounds are
// truncated to midnight before counting; disjoint intervals yield 0.
func (c *OverlapCalculator) OverlapDays(leaveStart, leaveEnd, windowStart, windowEnd time.Time) int {
	effectiveStart := truncateToDay(maxTime(leaveStart, windowStart))
	effectiveEnd := truncateToDay(minTime(leaveEnd, windowEnd))

	if effectiveEnd.Before(effectiveStart) {
		return 0
	}

	return int(effectiveEnd.Sub(effectiveStart).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
