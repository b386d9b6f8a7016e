package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// FileSheetStore keeps each sheet as a CSV file under a directory, named
// by sheet ID. Range specs are ignored; file sheets are whole-file. Meant
// for local runs and fixtures, not shared state.
type FileSheetStore struct {
	Dir string
}

func NewFileSheetStore(dir string) *FileSheetStore {
	return &FileSheetStore{Dir: dir}
}

func (f *FileSheetStore) path(sheetID string) string {
	return filepath.Join(f.Dir, sheetID+".csv")
}

func (f *FileSheetStore) ReadRange(ctx context.Context, sheetID, rangeSpec string) ([][]string, error) {
	file, err := os.Open(f.path(sheetID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open sheet file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet file: %w", err)
	}
	return rows, nil
}

func (f *FileSheetStore) AppendRows(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	existing, err := f.ReadRange(ctx, sheetID, rangeSpec)
	if err != nil {
		return err
	}
	return f.OverwriteRange(ctx, sheetID, rangeSpec, append(existing, rows...))
}

func (f *FileSheetStore) OverwriteRange(ctx context.Context, sheetID, rangeSpec string, rows [][]string) error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create sheet dir: %w", err)
	}

	file, err := os.Create(f.path(sheetID))
	if err != nil {
		return fmt.Errorf("failed to create sheet file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write sheet file: %w", err)
	}
	w.Flush()
	return w.Error()
}
