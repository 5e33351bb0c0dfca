// Package core holds the domain types of the finance tracker: dated
// credit/debit transactions, category labels, settings and the dataset
// aggregate, plus the money representation shared by all of them.
//
// Money is held as int64 cents to keep arithmetic exact; the JSON wire
// format stays a plain decimal number, converted through
// shopspring/decimal so no float rounding leaks into the dataset.
package core

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Money is an exact monetary value in cents of the dataset's single
// currency. It may be negative for balances; transaction amounts are
// validated to be positive separately.
type Money struct {
	Cents int64
}

var centsFactor = decimal.NewFromInt(100)

// Decimal returns the value as an exact decimal (e.g. 1234 -> 12.34).
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float64 returns the value for display. Use cents for calculations.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// MarshalJSON encodes money as a decimal number, matching the dataset
// wire format ("amount": 12.34).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string. Anything
// else is rejected; unparseable amounts never enter the dataset.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if len(raw) >= 2 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		raw = strings.TrimSpace(s)
	}
	if raw == "" || raw == "null" {
		return ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return ErrInvalidAmount
	}
	// Half-up rounding on the third decimal place.
	m.Cents = d.Mul(centsFactor).Round(0).IntPart()
	return nil
}

// ParseAmountToCents converts a user-entered decimal string to positive
// cents. It accepts both dot (12.34) and comma (12,34) separators and
// rounds half-up on the third decimal place. Zero, negative and
// malformed values are rejected.
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return 0, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Mul(centsFactor).Round(0).IntPart()
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
