// Package sheets mirrors the transaction log to a backup Google
// spreadsheet. The backup worker drives it after dataset changes; the
// API process never blocks on it.
package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"fintrack/internal/core"
)

type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Config holds the spreadsheet target and service account credentials.
// Exactly one of CredentialsJSON or CredentialsFile must be set.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, fmt.Errorf("missing spreadsheet ID")
	}
	sheetName := strings.TrimSpace(cfg.SheetName)
	if sheetName == "" {
		sheetName = "Transactions"
	}

	credentials := []byte(cfg.CredentialsJSON)
	if len(credentials) == 0 && cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		credentials = data
	}
	if len(credentials) == 0 {
		return nil, fmt.Errorf("missing sheets credentials")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Export replaces the backup sheet's contents with the full transaction
// log: one header row, one row per transaction in dataset order.
func (e *Exporter) Export(ctx context.Context, ds core.Dataset) error {
	rows := make([][]interface{}, 0, len(ds.Transactions)+1)
	rows = append(rows, []interface{}{"ID", "Type", "Date", "Amount", "Category", "Description"})
	for _, tx := range ds.Transactions {
		rows = append(rows, []interface{}{
			tx.ID,
			string(tx.Type),
			tx.Date.String(),
			tx.Amount.Decimal().String(),
			tx.Category,
			tx.Description,
		})
	}

	rangeRef := fmt.Sprintf("%s!A1", e.sheetName)

	_, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, e.sheetName, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear backup sheet: %w", err)
	}

	_, err = e.svc.Spreadsheets.Values.Update(e.spreadsheetID, rangeRef, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write backup sheet: %w", err)
	}
	return nil
}
