package storage

import (
	"context"
	"errors"
	"sync"
)

// SheetStore is the narrow surface the ledger needs from a row-oriented
// spreadsheet backend. Rows are untyped cell values; all coercion and
// validation happens in the ledger layer.
type SheetStore interface {
	ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error)
	AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error
	OverwriteRange(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error
}

// TestSheetStore is a simple in-memory implementation for testing. The
// range spec is ignored; each sheet is treated as a whole.
type TestSheetStore struct {
	mu     sync.Mutex
	sheets map[string][][]string
	err    error
}

func NewTestSheetStore() *TestSheetStore {
	return &TestSheetStore{sheets: make(map[string][][]string)}
}

func NewTestSheetStoreWithError() *TestSheetStore {
	return &TestSheetStore{err: errors.New("not found")}
}

// Seed replaces the rows of a sheet outside the SheetStore interface.
func (t *TestSheetStore) Seed(sheetID string, rows [][]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sheets[sheetID] = cloneRows(rows)
}

// Rows returns a copy of a sheet's current rows for assertions.
func (t *TestSheetStore) Rows(sheetID string) [][]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneRows(t.sheets[sheetID])
}

func (t *TestSheetStore) ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	return cloneRows(t.sheets[sheetID]), nil
}

func (t *TestSheetStore) AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.sheets[sheetID] = append(t.sheets[sheetID], cloneRows(rows)...)
	return nil
}

func (t *TestSheetStore) OverwriteRange(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	t.sheets[sheetID] = cloneRows(rows)
	return nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
