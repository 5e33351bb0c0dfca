package core

import (
	"encoding/json"
	"fmt"
)

// Dataset is the aggregate root: settings, advisory category lists and
// the flat transaction list. It is owned by the provisioning layer and
// mutated only through whole-dataset replacement or transaction edits.
type Dataset struct {
	Settings         Settings      `json:"settings"`
	CreditCategories CategoryList  `json:"creditCategories"`
	DebitCategories  CategoryList  `json:"debitCategories"`
	Transactions     []Transaction `json:"transactions"`
}

// CategoryList accepts both the legacy plain-string form and the
// {name, color} object form on the wire, normalizing to Category.
type CategoryList []Category

func (l *CategoryList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("category list: %w", err)
	}
	if raw == nil {
		// null means the list was never set, which is distinct from an
		// explicitly emptied list.
		*l = nil
		return nil
	}
	out := make(CategoryList, 0, len(raw))
	for _, item := range raw {
		if len(item) > 0 && item[0] == '"' {
			var name string
			if err := json.Unmarshal(item, &name); err != nil {
				return fmt.Errorf("category name: %w", err)
			}
			out = append(out, Category{Name: name})
			continue
		}
		var c Category
		if err := json.Unmarshal(item, &c); err != nil {
			return fmt.Errorf("category object: %w", err)
		}
		out = append(out, c)
	}
	*l = out
	return nil
}

// Names returns the normalized name strings for matching.
func (l CategoryList) Names() []string {
	names := make([]string, len(l))
	for i, c := range l {
		names[i] = c.Name
	}
	return names
}

// DecodeDataset parses and validates a dataset wire document. A missing
// or non-array transactions field fails with ErrNoTransactions so
// callers can treat the document as absent. Every transaction must
// validate; malformed records are rejected here, never coerced.
func DecodeDataset(data []byte) (Dataset, error) {
	var probe struct {
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	if len(probe.Transactions) == 0 || probe.Transactions[0] != '[' {
		return Dataset{}, ErrNoTransactions
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	seen := make(map[string]struct{}, len(ds.Transactions))
	for i, tx := range ds.Transactions {
		if err := tx.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("transaction %d (%q): %w", i, tx.ID, err)
		}
		if _, dup := seen[tx.ID]; dup {
			return Dataset{}, fmt.Errorf("transaction %d (%q): %w", i, tx.ID, ErrDuplicateID)
		}
		seen[tx.ID] = struct{}{}
		ds.Transactions[i] = tx.Normalize()
	}
	return ds, nil
}

// EncodeDataset serializes a dataset in the wire format.
func EncodeDataset(ds Dataset) ([]byte, error) {
	data, err := json.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}
	return data, nil
}

// Clone returns a deep enough copy for safe handoff across goroutines:
// slices are copied, element values are plain data.
func (ds Dataset) Clone() Dataset {
	out := ds
	out.CreditCategories = append(CategoryList(nil), ds.CreditCategories...)
	out.DebitCategories = append(CategoryList(nil), ds.DebitCategories...)
	out.Transactions = append([]Transaction(nil), ds.Transactions...)
	return out
}
