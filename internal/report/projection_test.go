package report

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func TestProjectCurrentYearSavings(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		mk("a", core.Credit, 2024, 1, 10, 50000, "Salary"),
		mk("b", core.Debit, 2024, 2, 10, 10000, "Rent"),
		mk("c", core.Credit, 2024, 3, 10, 20000, "Salary"),
	}
	points := ProjectCurrentYearSavings(SavingsByMonthInYear(txs, now), now)
	if len(points) != 12 {
		t.Fatalf("expected 12 points, got %d", len(points))
	}

	// Months at or before March keep their actual values.
	for i, want := range []int64{50000, -10000, 20000} {
		p := points[i]
		if p.Savings.Cents != want || p.IsProjected {
			t.Fatalf("month %d: expected actual %d, got %+v", i+1, want, p)
		}
	}
	// SavingsProjected connects the dashed line at the last actual
	// month and nowhere earlier.
	if points[0].SavingsProjected != nil || points[1].SavingsProjected != nil {
		t.Fatal("earlier months must not carry a projected value")
	}
	if points[2].SavingsProjected == nil || points[2].SavingsProjected.Cents != 20000 {
		t.Fatalf("march must carry its own value as projected, got %+v", points[2].SavingsProjected)
	}

	// Every later month forward-fills March's value.
	for i := 3; i < 12; i++ {
		p := points[i]
		if !p.IsProjected {
			t.Fatalf("month %d should be projected", i+1)
		}
		if p.Savings.Cents != 20000 {
			t.Fatalf("month %d: expected forward-filled 20000, got %d", i+1, p.Savings.Cents)
		}
		if p.SavingsProjected == nil || p.SavingsProjected.Cents != 20000 {
			t.Fatalf("month %d: unexpected projected value %+v", i+1, p.SavingsProjected)
		}
	}
}

func TestProjectCurrentYearSavingsDecember(t *testing.T) {
	// In December there is nothing left to project.
	now := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	points := ProjectCurrentYearSavings(SavingsByMonthInYear(fixture(), now), now)
	for i, p := range points {
		if p.IsProjected {
			t.Fatalf("month %d should not be projected", i+1)
		}
	}
	if points[11].SavingsProjected == nil {
		t.Fatal("december should still carry its projected anchor")
	}
}

func TestProjectCurrentYearSavingsNoActuals(t *testing.T) {
	// Points all dated after now (a future-year series fed by mistake)
	// leave the forward-fill at zero.
	points := SavingsByMonthInYear(nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	out := ProjectCurrentYearSavings(points, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	for i, p := range out {
		if !p.IsProjected || p.Savings.Cents != 0 {
			t.Fatalf("point %d: expected zero projection, got %+v", i, p)
		}
	}
}
