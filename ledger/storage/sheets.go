package storage

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// GoogleSheetStore implements SheetStore against the Google Sheets API.
// This is the production backend: sheet IDs are spreadsheet IDs and range
// specs are A1 ranges like "Sheet1!A:B".
type GoogleSheetStore struct {
	svc *sheets.Service
}

// NewGoogleSheetStore authenticates with a service-account credentials file.
func NewGoogleSheetStore(ctx context.Context, credentialsPath string) (*GoogleSheetStore, error) {
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleSheetStore{svc: svc}, nil
}

func (g *GoogleSheetStore) ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(sheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rangeSpec, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (g *GoogleSheetStore) AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.
		Append(sheetID, rangeSpec, &sheets.ValueRange{Range: rangeSpec, Values: toCells(rows)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to range %s: %w", rangeSpec, err)
	}
	return nil
}

func (g *GoogleSheetStore) OverwriteRange(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.
		Update(sheetID, rangeSpec, &sheets.ValueRange{Range: rangeSpec, Values: toCells(rows)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to overwrite range %s: %w", rangeSpec, err)
	}
	return nil
}

func toCells(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		out[i] = cells
	}
	return out
}
