package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/dates"
	"fintrack/internal/report"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	txs := s.svc.Transactions()
	settings := s.svc.Settings()

	// An optional asOf date scopes the figures to transactions at or
	// before that day.
	if v := strings.TrimSpace(r.URL.Query().Get("asOf")); v != "" {
		asOf, err := core.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid asOf date: expected YYYY-MM-DD")
			return
		}
		txs = report.FilterBeforeOrOn(txs, asOf.Time)
	}

	now := s.now()
	writeJSON(w, http.StatusOK, map[string]any{
		"currency":     settings.Currency,
		"totalCredits": report.TotalCredits(txs),
		"totalDebits":  report.TotalDebits(txs),
		"savings":      report.NetSavings(txs),
		"netWorth":     report.NetWorth(txs, settings.StartingBalance),
		"firstDate":    core.DateOf(dates.EarliestDate(txs, now)).String(),
		"lastDate":     core.DateOf(dates.LatestDate(txs, now)).String(),
	})
}

// handleYears lists the years with data, for the year-view picker. The
// current year is always present so the picker has a default.
func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	years := dates.UniqueYears(s.svc.Transactions())
	current := s.now().Year()
	found := false
	for _, y := range years {
		if y == current {
			found = true
			break
		}
	}
	if !found {
		years = append(years, current)
		sort.Ints(years)
	}
	writeJSON(w, http.StatusOK, years)
}

func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	s.serveSeries(w, r, "spending", func(txs []core.Transaction, view report.View, yearAnchor, now time.Time) any {
		switch view {
		case report.ViewYear:
			return report.SpendingByMonthInYear(txs, yearAnchor)
		case report.ViewFiveYear:
			return report.SpendingByYearLast5(txs, now)
		default:
			return report.SpendingByMonthAllTime(txs, now)
		}
	})
}

func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	s.serveSeries(w, r, "savings", func(txs []core.Transaction, view report.View, yearAnchor, now time.Time) any {
		switch view {
		case report.ViewYear:
			points := report.SavingsByMonthInYear(txs, yearAnchor)
			// Projection only applies to the current year's curve.
			if yearAnchor.Year() == now.Year() {
				points = report.ProjectCurrentYearSavings(points, now)
			}
			return points
		case report.ViewFiveYear:
			return report.SavingsByYearLast5(txs, now)
		default:
			return report.SavingsByMonthAllTime(txs, now)
		}
	})
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	txType := core.TxType(strings.TrimSpace(r.URL.Query().Get("type")))
	if txType == "" {
		txType = core.Debit
	}
	if err := txType.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid type: must be 'credit' or 'debit'")
		return
	}

	now := s.now()
	view, err := parseView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, err := parseYear(r, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := s.cacheKey("breakdown", string(txType), view, year)
	if data, ok := s.reportCache.Get(key); ok {
		writeRawJSON(w, http.StatusOK, data)
		return
	}

	txs := s.transactionsForView(view, year, now)
	slices := report.CategoryBreakdown(txs, txType)
	s.respondCached(w, r, key, slices)
}

func (s *Server) handleNetWorthHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	key := s.cacheKey("networth", "", report.ViewAll, 0)
	if data, ok := s.reportCache.Get(key); ok {
		writeRawJSON(w, http.StatusOK, data)
		return
	}

	points := report.NetWorthOverTime(s.svc.Transactions(), s.svc.Settings().StartingBalance, s.now())
	s.respondCached(w, r, key, points)
}

// handleSpendingDaily serves the day-by-day debit totals of one month.
func (s *Server) handleSpendingDaily(w http.ResponseWriter, r *http.Request) {
	s.serveDailySeries(w, r, "spending-daily", func(txs []core.Transaction, anchor time.Time) any {
		return report.SpendingByDayInMonth(txs, anchor)
	})
}

// handleSavingsDaily serves one month's cumulative savings curve.
func (s *Server) handleSavingsDaily(w http.ResponseWriter, r *http.Request) {
	s.serveDailySeries(w, r, "savings-daily", func(txs []core.Transaction, anchor time.Time) any {
		return report.SavingsByDayInMonth(txs, anchor)
	})
}

func (s *Server) serveDailySeries(w http.ResponseWriter, r *http.Request, kind string, build func(txs []core.Transaction, anchor time.Time) any) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := s.now()
	year, err := parseYear(r, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := parseMonth(r, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := s.cacheKey(kind, strconv.Itoa(month), "", year)
	if data, ok := s.reportCache.Get(key); ok {
		writeRawJSON(w, http.StatusOK, data)
		return
	}

	anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	s.respondCached(w, r, key, build(s.svc.Transactions(), anchor))
}

// serveSeries handles the shared view/year parsing and caching of the
// spending and savings endpoints.
func (s *Server) serveSeries(w http.ResponseWriter, r *http.Request, kind string, build func(txs []core.Transaction, view report.View, yearAnchor, now time.Time) any) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := s.now()
	view, err := parseView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	year, err := parseYear(r, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := s.cacheKey(kind, "", view, year)
	if data, ok := s.reportCache.Get(key); ok {
		writeRawJSON(w, http.StatusOK, data)
		return
	}

	yearAnchor := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	series := build(s.svc.Transactions(), view, yearAnchor, now)
	s.respondCached(w, r, key, series)
}

// transactionsForView scopes the breakdown input to the chart period,
// mirroring what the series endpoints show.
func (s *Server) transactionsForView(view report.View, year int, now time.Time) []core.Transaction {
	txs := s.svc.Transactions()
	switch view {
	case report.ViewYear:
		return report.FilterByYear(txs, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	case report.ViewFiveYear:
		var out []core.Transaction
		first := now.Year() - 4
		for _, tx := range txs {
			if y := tx.Date.Year(); y >= first && y <= now.Year() {
				out = append(out, tx)
			}
		}
		return out
	default:
		return txs
	}
}

func (s *Server) cacheKey(kind, sub string, view report.View, year int) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", s.svc.Mode(), kind, sub, view, year)
}

func (s *Server) respondCached(w http.ResponseWriter, r *http.Request, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode report", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.reportCache.Set(key, data)
	writeRawJSON(w, http.StatusOK, data)
}
