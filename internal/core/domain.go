package core

import (
	"errors"
	"strings"
)

const (
	Credit TxType = "credit"
	Debit  TxType = "debit"
)

type (
	// TxType marks a transaction as incoming or outgoing money.
	TxType string

	// Transaction is a single dated credit or debit. Amount is always
	// positive; the direction is carried by Type.
	Transaction struct {
		ID          string `json:"id"`
		Type        TxType `json:"type"`
		Date        Date   `json:"date"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}

	// Category is an advisory label with a display color. Transactions
	// are never validated against the category lists.
	Category struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	// Settings holds the display currency and the net worth baseline.
	Settings struct {
		Currency        string `json:"currency"`
		StartingBalance Money  `json:"startingBalance"`
	}
)

var (
	ErrInvalidType    = errors.New("invalid transaction type")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrEmptyCategory  = errors.New("empty category")
	ErrEmptyID        = errors.New("empty transaction id")
	ErrDuplicateID    = errors.New("duplicate transaction id")
	ErrUnknownID      = errors.New("unknown transaction id")
	ErrInvalidColor   = errors.New("color must be in hex format (#RRGGBB)")
	ErrNoTransactions = errors.New("transactions must be an array")
)

func (t TxType) Validate() error {
	switch t {
	case Credit, Debit:
		return nil
	default:
		return ErrInvalidType
	}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Normalize fills the description from the category when absent.
func (t Transaction) Normalize() Transaction {
	if strings.TrimSpace(t.Description) == "" {
		t.Description = t.Category
	}
	return t
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCategory
	}
	if c.Color != "" {
		return validateHexColor(c.Color)
	}
	return nil
}

func validateHexColor(color string) error {
	if len(color) != 7 || color[0] != '#' {
		return ErrInvalidColor
	}
	for _, r := range color[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return ErrInvalidColor
		}
	}
	return nil
}
