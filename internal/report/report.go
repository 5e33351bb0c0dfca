// Package report is the aggregation engine: pure functions deriving
// financial summaries and time series from a flat transaction list.
//
// Every function is deterministic: the current time is always an
// explicit parameter, inputs are never mutated, and the same inputs
// always produce the same outputs.
package report

import (
	"time"

	"fintrack/internal/core"
	"fintrack/internal/dates"
)

const (
	// ViewYear buckets one calendar year by month, Jan-Dec.
	ViewYear View = "year"
	// ViewAll buckets every month from the earliest transaction
	// through the current month.
	ViewAll View = "all"
	// ViewFiveYear buckets the current year and the 4 preceding ones.
	ViewFiveYear View = "fiveyear"

	// Uncategorized is the bucket label for transactions with no
	// category. Matches the literal the charts expect.
	Uncategorized = "Uncategorized"

	lastNYears = 5
)

type (
	// View selects the time-series bucketing strategy.
	View string

	// TimeBucket is one month or year slice of a spending series.
	TimeBucket struct {
		Month  int        `json:"month,omitempty"`
		Year   int        `json:"year,omitempty"`
		Label  string     `json:"label"`
		Date   string     `json:"date,omitempty"`
		Amount core.Money `json:"amount"`
	}

	// SavingsPoint is one slice of a savings series, possibly
	// forward-filled for the current year's projection.
	SavingsPoint struct {
		Month            int         `json:"month,omitempty"`
		Year             int         `json:"year,omitempty"`
		Label            string      `json:"label"`
		Date             string      `json:"date,omitempty"`
		Savings          core.Money  `json:"savings"`
		IsProjected      bool        `json:"isProjected,omitempty"`
		SavingsProjected *core.Money `json:"savingsProjected,omitempty"`
	}

	// CategorySlice is the summed amount for one category.
	CategorySlice struct {
		Name  string     `json:"name"`
		Value core.Money `json:"value"`
	}
)

// IsValid reports whether v names a known view.
func (v View) IsValid() bool {
	switch v {
	case ViewYear, ViewAll, ViewFiveYear:
		return true
	default:
		return false
	}
}

// TotalCredits sums the amounts of all credit transactions.
func TotalCredits(txs []core.Transaction) core.Money {
	return totalOfType(txs, core.Credit)
}

// TotalDebits sums the amounts of all debit transactions.
func TotalDebits(txs []core.Transaction) core.Money {
	return totalOfType(txs, core.Debit)
}

func totalOfType(txs []core.Transaction, t core.TxType) core.Money {
	var sum int64
	for _, tx := range txs {
		if tx.Type == t {
			sum += tx.Amount.Cents
		}
	}
	return core.Money{Cents: sum}
}

// NetSavings returns credits minus debits.
func NetSavings(txs []core.Transaction) core.Money {
	return core.Money{Cents: TotalCredits(txs).Cents - TotalDebits(txs).Cents}
}

// NetWorth returns the starting balance plus net savings.
func NetWorth(txs []core.Transaction, startingBalance core.Money) core.Money {
	return core.Money{Cents: startingBalance.Cents + NetSavings(txs).Cents}
}

// FilterByMonth returns the transactions dated within the calendar
// month containing anchor. Boundary instants are included.
func FilterByMonth(txs []core.Transaction, anchor time.Time) []core.Transaction {
	start, end := dates.MonthInterval(anchor)
	return filterRange(txs, start, end)
}

// FilterByYear returns the transactions dated within the calendar year
// containing anchor. Boundary instants are included.
func FilterByYear(txs []core.Transaction, anchor time.Time) []core.Transaction {
	start, end := dates.YearInterval(anchor)
	return filterRange(txs, start, end)
}

// FilterBeforeOrOn returns the transactions dated at or before the day
// containing ref.
func FilterBeforeOrOn(txs []core.Transaction, ref time.Time) []core.Transaction {
	cutoff := dates.StartOfDay(ref)
	var out []core.Transaction
	for _, tx := range txs {
		if !tx.Date.After(cutoff) {
			out = append(out, tx)
		}
	}
	return out
}

func filterRange(txs []core.Transaction, start, end time.Time) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if !tx.Date.Before(start) && !tx.Date.After(end) {
			out = append(out, tx)
		}
	}
	return out
}

// CategoryBreakdown groups transactions of the given type by category,
// summing amounts per group. A missing category folds into the
// Uncategorized bucket. Slices come out in first-occurrence order;
// display sorting is the caller's job.
func CategoryBreakdown(txs []core.Transaction, t core.TxType) []CategorySlice {
	index := make(map[string]int)
	var out []CategorySlice
	for _, tx := range txs {
		if tx.Type != t {
			continue
		}
		name := tx.Category
		if name == "" {
			name = Uncategorized
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategorySlice{Name: name})
		}
		out[i].Value.Cents += tx.Amount.Cents
	}
	return out
}
