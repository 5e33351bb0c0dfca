package report

import (
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/dates"
)

// SpendingByMonthInYear returns one bucket per calendar month of the
// year containing anchor, Jan through Dec, zero-filled for months with
// no debit transactions.
func SpendingByMonthInYear(txs []core.Transaction, anchor time.Time) []TimeBucket {
	start, end := dates.YearInterval(anchor)
	return spendingByMonths(txs, dates.MonthsInRange(start, end), false)
}

// SpendingByMonthAllTime returns one bucket per calendar month from the
// earliest transaction's month through the month containing now. With
// no transactions the range degenerates to the current month alone.
func SpendingByMonthAllTime(txs []core.Transaction, now time.Time) []TimeBucket {
	months := dates.MonthsInRange(dates.EarliestDate(txs, now), now)
	return spendingByMonths(txs, months, true)
}

func spendingByMonths(txs []core.Transaction, months []time.Time, withYear bool) []TimeBucket {
	out := make([]TimeBucket, 0, len(months))
	for _, m := range months {
		bucket := TimeBucket{
			Month:  int(m.Month()),
			Label:  m.Format("Jan"),
			Date:   m.Format("2006-01"),
			Amount: TotalDebits(FilterByMonth(txs, m)),
		}
		if withYear {
			bucket.Year = m.Year()
		}
		out = append(out, bucket)
	}
	return out
}

// SpendingByYearLast5 returns exactly 5 yearly debit buckets ending at
// the year containing now, regardless of data presence.
func SpendingByYearLast5(txs []core.Transaction, now time.Time) []TimeBucket {
	out := make([]TimeBucket, 0, lastNYears)
	for _, y := range lastYears(now) {
		anchor := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		out = append(out, TimeBucket{
			Year:   y,
			Label:  strconv.Itoa(y),
			Amount: TotalDebits(FilterByYear(txs, anchor)),
		})
	}
	return out
}

// SavingsByMonthInYear returns the per-month net (credits minus debits)
// for the year containing anchor, Jan through Dec, zero-filled.
func SavingsByMonthInYear(txs []core.Transaction, anchor time.Time) []SavingsPoint {
	start, end := dates.YearInterval(anchor)
	return savingsByMonths(txs, dates.MonthsInRange(start, end), false)
}

// SavingsByMonthAllTime returns the per-month net from the earliest
// transaction's month through the month containing now. Each bucket
// holds the month's own net, not a running cumulative total.
func SavingsByMonthAllTime(txs []core.Transaction, now time.Time) []SavingsPoint {
	months := dates.MonthsInRange(dates.EarliestDate(txs, now), now)
	return savingsByMonths(txs, months, true)
}

func savingsByMonths(txs []core.Transaction, months []time.Time, withYear bool) []SavingsPoint {
	out := make([]SavingsPoint, 0, len(months))
	for _, m := range months {
		point := SavingsPoint{
			Month:   int(m.Month()),
			Label:   m.Format("Jan"),
			Date:    m.Format("2006-01"),
			Savings: NetSavings(FilterByMonth(txs, m)),
		}
		if withYear {
			point.Year = m.Year()
		}
		out = append(out, point)
	}
	return out
}

// SavingsByYearLast5 returns the per-year net for the current year and
// the 4 preceding ones, regardless of data presence.
func SavingsByYearLast5(txs []core.Transaction, now time.Time) []SavingsPoint {
	out := make([]SavingsPoint, 0, lastNYears)
	for _, y := range lastYears(now) {
		anchor := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		out = append(out, SavingsPoint{
			Year:    y,
			Label:   strconv.Itoa(y),
			Savings: NetSavings(FilterByYear(txs, anchor)),
		})
	}
	return out
}

func lastYears(now time.Time) []int {
	current := now.Year()
	years := make([]int, 0, lastNYears)
	for y := current - lastNYears + 1; y <= current; y++ {
		years = append(years, y)
	}
	return years
}

// DayBucket is one day's debit total within a month.
type DayBucket struct {
	Date   string     `json:"date"`
	Day    int        `json:"day"`
	Amount core.Money `json:"amount"`
}

// SpendingByDayInMonth returns one zero-filled bucket per day of the
// month containing anchor, each holding the day's debit total.
func SpendingByDayInMonth(txs []core.Transaction, anchor time.Time) []DayBucket {
	days := dates.DaysInMonth(anchor)
	out := make([]DayBucket, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := d.Format("2006-01-02")
		out[i] = DayBucket{Date: key, Day: d.Day()}
		index[key] = i
	}
	for _, tx := range FilterByMonth(txs, anchor) {
		if tx.Type != core.Debit {
			continue
		}
		if i, ok := index[tx.Date.String()]; ok {
			out[i].Amount.Cents += tx.Amount.Cents
		}
	}
	return out
}

// DaySavings is one day of a month's savings curve: the day's credit
// and debit totals plus the cumulative savings within the month.
type DaySavings struct {
	Date    string     `json:"date"`
	Day     int        `json:"day"`
	Credit  core.Money `json:"credit"`
	Debit   core.Money `json:"debit"`
	Savings core.Money `json:"savings"`
}

// SavingsByDayInMonth returns one point per day of the month containing
// anchor. Savings accumulates day over day within the month, starting
// from zero.
func SavingsByDayInMonth(txs []core.Transaction, anchor time.Time) []DaySavings {
	days := dates.DaysInMonth(anchor)
	out := make([]DaySavings, len(days))
	index := make(map[string]int, len(days))
	for i, d := range days {
		key := d.Format("2006-01-02")
		out[i] = DaySavings{Date: key, Day: d.Day()}
		index[key] = i
	}
	for _, tx := range FilterByMonth(txs, anchor) {
		i, ok := index[tx.Date.String()]
		if !ok {
			continue
		}
		if tx.Type == core.Credit {
			out[i].Credit.Cents += tx.Amount.Cents
		} else {
			out[i].Debit.Cents += tx.Amount.Cents
		}
	}
	var running int64
	for i := range out {
		running += out[i].Credit.Cents - out[i].Debit.Cents
		out[i].Savings = core.Money{Cents: running}
	}
	return out
}
