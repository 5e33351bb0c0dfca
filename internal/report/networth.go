package report

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// NetWorthPoint is one day's closing balance on the running curve.
type NetWorthPoint struct {
	Date     string     `json:"date"`
	NetWorth core.Money `json:"netWorth"`
}

// NetWorthOverTime walks the transactions in date order, accumulating a
// running signed balance from the starting baseline, and emits one
// point per distinct calendar day touched. Multiple transactions on the
// same day coalesce into that day's closing balance. An empty list
// yields a single point at now holding the baseline.
func NetWorthOverTime(txs []core.Transaction, startingBalance core.Money, now time.Time) []NetWorthPoint {
	if len(txs) == 0 {
		return []NetWorthPoint{{
			Date:     core.DateOf(now).String(),
			NetWorth: startingBalance,
		}}
	}

	sorted := append([]core.Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	var points []NetWorthPoint
	running := startingBalance.Cents
	for _, tx := range sorted {
		if tx.Type == core.Credit {
			running += tx.Amount.Cents
		} else {
			running -= tx.Amount.Cents
		}
		day := tx.Date.String()
		if n := len(points); n > 0 && points[n-1].Date == day {
			points[n-1].NetWorth = core.Money{Cents: running}
			continue
		}
		points = append(points, NetWorthPoint{Date: day, NetWorth: core.Money{Cents: running}})
	}
	return points
}
