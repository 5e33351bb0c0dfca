package report

import (
	"time"

	"fintrack/internal/core"
)

// ProjectCurrentYearSavings forward-fills the per-month savings curve of
// the current year past the current month so a chart can show a flat
// dashed continuation instead of a drop to zero.
//
// Months at or before now keep their actual value; the month exactly at
// now additionally carries its value in SavingsProjected so the dashed
// line connects to the last actual point. Every later month takes the
// last actual value, flagged IsProjected.
//
// Callers must apply this only to the ViewYear series of the year
// containing now; any other series stays actual-only.
func ProjectCurrentYearSavings(points []SavingsPoint, now time.Time) []SavingsPoint {
	currentMonth := now.UTC().Format("2006-01")

	lastKnown := -1
	var lastSavings core.Money
	for i, p := range points {
		if p.Date != "" && p.Date <= currentMonth {
			lastKnown = i
			lastSavings = p.Savings
		}
	}

	out := make([]SavingsPoint, len(points))
	for i, p := range points {
		if i <= lastKnown {
			p.IsProjected = false
			p.SavingsProjected = nil
			if i == lastKnown {
				v := p.Savings
				p.SavingsProjected = &v
			}
		} else {
			p.Savings = lastSavings
			p.IsProjected = true
			v := lastSavings
			p.SavingsProjected = &v
		}
		out[i] = p
	}
	return out
}
