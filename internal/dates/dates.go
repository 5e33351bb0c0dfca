// Package dates provides pure calendar-interval helpers used by the
// report engine: month/year boundaries, month-range enumeration and
// transaction-date scanning.
//
// Every function stays in the time zone of its input. The rest of the
// codebase feeds it UTC dates, so bucket edges are computed in one
// consistent zone.
package dates

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// StartOfDay truncates an instant to midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first instant of t's month.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month (inclusive bound).
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// StartOfYear returns the first instant of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// EndOfYear returns the last instant of t's year (inclusive bound).
func EndOfYear(t time.Time) time.Time {
	return StartOfYear(t).AddDate(1, 0, 0).Add(-time.Nanosecond)
}

// MonthInterval returns the inclusive [start, end] bounds of t's month.
func MonthInterval(t time.Time) (start, end time.Time) {
	return StartOfMonth(t), EndOfMonth(t)
}

// YearInterval returns the inclusive [start, end] bounds of t's year.
func YearInterval(t time.Time) (start, end time.Time) {
	return StartOfYear(t), EndOfYear(t)
}

// MonthsInRange enumerates month-start anchors from the month containing
// from through the month containing to, inclusive of both endpoints.
// The sequence is ordered, gap-free and non-overlapping; it is empty
// when to precedes from's month.
func MonthsInRange(from, to time.Time) []time.Time {
	first := StartOfMonth(from)
	last := StartOfMonth(to)
	if last.Before(first) {
		return nil
	}
	var months []time.Time
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// DaysInMonth enumerates every day of t's month as midnight instants.
func DaysInMonth(t time.Time) []time.Time {
	start, end := MonthInterval(t)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// UniqueYears returns the distinct years present in the transaction
// list, sorted ascending.
func UniqueYears(txs []core.Transaction) []int {
	seen := make(map[int]struct{})
	for _, tx := range txs {
		seen[tx.Date.Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// EarliestDate returns the earliest transaction date, or now when the
// list is empty so derived ranges stay bounded.
func EarliestDate(txs []core.Transaction, now time.Time) time.Time {
	if len(txs) == 0 {
		return now
	}
	earliest := txs[0].Date.Time
	for _, tx := range txs[1:] {
		if tx.Date.Before(earliest) {
			earliest = tx.Date.Time
		}
	}
	return earliest
}

// LatestDate returns the latest transaction date, or now when the list
// is empty.
func LatestDate(txs []core.Transaction, now time.Time) time.Time {
	if len(txs) == 0 {
		return now
	}
	latest := txs[0].Date.Time
	for _, tx := range txs[1:] {
		if tx.Date.After(latest) {
			latest = tx.Date.Time
		}
	}
	return latest
}
