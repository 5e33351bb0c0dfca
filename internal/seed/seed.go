// Package seed provides the initial datasets: an embedded demo dataset,
// built-in defaults for real mode, and an optional remote JSON source.
package seed

import (
	_ "embed"
	"fmt"

	"fintrack/internal/core"
)

//go:embed demo.json
var demoJSON []byte

// Demo returns the bundled demo dataset.
func Demo() (core.Dataset, error) {
	ds, err := core.DecodeDataset(demoJSON)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("embedded demo seed: %w", err)
	}
	return ds, nil
}

// EmptyReal returns the built-in defaults for real mode: no
// transactions, sensible advisory category lists.
func EmptyReal() core.Dataset {
	return core.Dataset{
		Settings: core.Settings{Currency: "EUR"},
		CreditCategories: core.CategoryList{
			{Name: "Salary", Color: "#22c55e"},
			{Name: "Bonus", Color: "#4ade80"},
			{Name: "Investment", Color: "#86efac"},
			{Name: "Lump sum", Color: "#bbf7d0"},
			{Name: "Miscellaneous", Color: "#94a3b8"},
		},
		DebitCategories: core.CategoryList{
			{Name: "Rent", Color: "#ef4444"},
			{Name: "Wi-Fi", Color: "#f87171"},
			{Name: "Electricity", Color: "#fb923c"},
			{Name: "Gym membership", Color: "#fbbf24"},
			{Name: "Health insurance", Color: "#f59e0b"},
			{Name: "Groceries", Color: "#84cc16"},
			{Name: "Transport", Color: "#22d3ee"},
			{Name: "Entertainment", Color: "#a78bfa"},
			{Name: "Subscription", Color: "#c084fc"},
			{Name: "Clothing", Color: "#ec4899"},
			{Name: "Eating out", Color: "#f472b6"},
			{Name: "Miscellaneous", Color: "#94a3b8"},
		},
		Transactions: []core.Transaction{},
	}
}
