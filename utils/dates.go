package utils

import "time"

// WeekBuckets is how many week-of-month slots a Sunday-start month grid can
// need. A 31-day month starting on Saturday spills into a 6th row; that row
// is clamped into the last bucket.
const WeekBuckets = 5

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, 0, t.Location())
}

// MonthRange returns the first instant and the last second (23:59:59) of
// t's month in t's location.
func MonthRange(t time.Time) (time.Time, time.Time) {
	year, month, _ := t.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, -1)
	return start, EndOfDay(end)
}

// WeekOfMonth assigns t to a 0-based calendar-week row of a Sunday-start
// month grid: floor((day + weekday-of-the-1st - 1) / 7), clamped to the
// last bucket.
func WeekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	offset := int(first.Weekday())
	index := (t.Day() + offset - 1) / 7
	if index >= WeekBuckets {
		index = WeekBuckets - 1
	}
	return index
}

// WeeksInMonth returns how many grid rows t's month actually occupies,
// capped at WeekBuckets.
func WeeksInMonth(t time.Time) int {
	start, end := MonthRange(t)
	n := (end.Day() + int(start.Weekday()) + 6) / 7
	if n > WeekBuckets {
		n = WeekBuckets
	}
	return n
}

// WeekBounds returns the day span covered by week index within t's month,
// clamped to the month itself.
func WeekBounds(t time.Time, index int) (time.Time, time.Time) {
	start, end := MonthRange(t)
	firstDay := index*7 - int(start.Weekday()) + 1
	wStart := time.Date(t.Year(), t.Month(), firstDay, 0, 0, 0, 0, t.Location())
	if wStart.Before(start) {
		wStart = start
	}
	wEnd := time.Date(t.Year(), t.Month(), firstDay+6, 23, 59, 59, 0, t.Location())
	if index == WeekBuckets-1 || wEnd.After(end) {
		wEnd = end
	}
	return wStart, wEnd
}
