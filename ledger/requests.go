package ledger

import (
	"context"
	"strconv"
	"strings"

	"guildledger"
	"guildledger/ledger/storage"
)

// Row statuses for persisted request lines. Status only ever moves
// in_progress -> completed.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Row is one persisted resource line of a posted request. Multiple rows
// share a RequestID, one row per resource line; the rows are the source of
// truth for settlement status.
type Row struct {
	RequestID string
	Product   string
	Resource  string
	Amount    uint64
	Status    string
	ThreadRef string
}

// Requests adapts the requests sheet (columns: requestId, product,
// resource name, amount, status, thread reference).
type Requests struct {
	store   storage.SheetStore
	sheetID string
	rng     string
}

func NewRequests(store storage.SheetStore, sheetID, rng string) *Requests {
	return &Requests{store: store, sheetID: sheetID, rng: rng}
}

// Append persists rows for a freshly posted request.
func (r *Requests) Append(ctx context.Context, rows []Row) error {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.RequestID,
			row.Product,
			row.Resource,
			strconv.FormatUint(row.Amount, 10),
			row.Status,
			row.ThreadRef,
		})
	}
	if err := r.store.AppendRows(ctx, r.sheetID, r.rng, cells); err != nil {
		return guildledger.CollaboratorError("failed to append request rows", err)
	}
	return nil
}

// Load returns every persisted row for a request, in sheet order. Rows
// shorter than five cells are skipped; unparseable amounts count as zero,
// matching the inventory sheet's tolerance for hand edits.
func (r *Requests) Load(ctx context.Context, requestID string) ([]Row, error) {
	cells, err := r.store.ReadRange(ctx, r.sheetID, r.rng)
	if err != nil {
		return nil, guildledger.CollaboratorError("failed to read requests sheet", err)
	}

	var rows []Row
	for _, row := range cells {
		if len(row) < 5 || row[0] != requestID {
			continue
		}
		amount, perr := strconv.ParseUint(strings.TrimSpace(row[3]), 10, 64)
		if perr != nil {
			amount = 0
		}
		parsed := Row{
			RequestID: row[0],
			Product:   row[1],
			Resource:  row[2],
			Amount:    amount,
			Status:    row[4],
		}
		if len(row) > 5 {
			parsed.ThreadRef = row[5]
		}
		rows = append(rows, parsed)
	}
	return rows, nil
}

// MarkCompleted flips every row of a request to completed and writes the
// whole sheet back. Rows already completed stay completed.
func (r *Requests) MarkCompleted(ctx context.Context, requestID string) error {
	cells, err := r.store.ReadRange(ctx, r.sheetID, r.rng)
	if err != nil {
		return guildledger.CollaboratorError("failed to read requests sheet", err)
	}

	for _, row := range cells {
		if len(row) >= 5 && row[0] == requestID {
			row[4] = StatusCompleted
		}
	}

	if err := r.store.OverwriteRange(ctx, r.sheetID, r.rng, cells); err != nil {
		return guildledger.CollaboratorError("failed to update requests sheet", err)
	}
	return nil
}
