package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0.01", 1, true},
		{"1234.5", 123450, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5.00", 0, false},
		{"0", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmountToCents(tc.in)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				if got != tc.want {
					t.Fatalf("expected %d cents, got %d", tc.want, got)
				}
				return
			}
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
		})
	}
}

func TestMoneyUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{`19.99`, 1999, true},
		{`1000`, 100000, true},
		{`"42.50"`, 4250, true},
		{`0.005`, 1, true}, // third decimal rounds half up
		{`-12.34`, -1234, true},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, false},
		{`true`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var m Money
			err := json.Unmarshal([]byte(tc.in), &m)
			if tc.ok {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				if m.Cents != tc.want {
					t.Fatalf("expected %d cents, got %d", tc.want, m.Cents)
				}
				return
			}
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
		})
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1999, `19.99`},
		{100000, `1000`},
		{1, `0.01`},
		{-50, `-0.5`},
		{0, `0`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(Money{Cents: tc.cents})
		if err != nil {
			t.Fatalf("marshal %d: %v", tc.cents, err)
		}
		if string(b) != tc.want {
			t.Fatalf("marshal %d: expected %s, got %s", tc.cents, tc.want, b)
		}
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	in := Money{Cents: 123456}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Money
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("round trip changed value: %v -> %v", in, out)
	}
}
