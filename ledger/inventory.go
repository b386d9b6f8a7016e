package ledger

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"guildledger"
	"guildledger/ledger/storage"
	"guildledger/resource"
)

// Snapshot is a point-in-time view of stock keyed by normalized resource
// name. It is rebuilt on every read and never kept live: external edits
// between snapshot and use are accepted (see the settlement caveats).
type Snapshot map[resource.Key]uint64

// Stock returns the quantity on hand for a raw resource name, zero if absent.
func (s Snapshot) Stock(name string) uint64 {
	return s[resource.Normalize(name)]
}

// Clone returns an independent copy that can be debited without touching
// the original.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Inventory adapts the inventory sheet (columns: resource name, quantity)
// to snapshot reads and whole-sheet writes.
type Inventory struct {
	store   storage.SheetStore
	sheetID string
	rng     string
}

func NewInventory(store storage.SheetStore, sheetID, rng string) *Inventory {
	return &Inventory{store: store, sheetID: sheetID, rng: rng}
}

// Load builds a fresh Snapshot from the sheet. Rows shorter than two cells
// are skipped; unparseable quantities count as zero stock, matching how the
// sheet is hand-edited in practice.
func (inv *Inventory) Load(ctx context.Context) (Snapshot, error) {
	rows, err := inv.store.ReadRange(ctx, inv.sheetID, inv.rng)
	if err != nil {
		return nil, guildledger.CollaboratorError("failed to read inventory sheet", err)
	}

	snap := make(Snapshot, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		amount, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 64)
		if err != nil {
			amount = 0
		}
		snap[resource.Normalize(row[0])] = amount
	}
	return snap, nil
}

// Write overwrites the inventory sheet with the snapshot, sorted by name so
// repeated writes produce identical sheets.
func (inv *Inventory) Write(ctx context.Context, snap Snapshot) error {
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, strconv.FormatUint(snap[resource.Key(k)], 10)})
	}

	if err := inv.store.OverwriteRange(ctx, inv.sheetID, inv.rng, rows); err != nil {
		return guildledger.CollaboratorError("failed to write inventory sheet", err)
	}
	return nil
}

// AddStock credits amount to a resource directly on the sheet: the first
// row whose name normalizes to the same key is incremented in place, or a
// new row is appended at the bottom.
func (inv *Inventory) AddStock(ctx context.Context, name string, amount uint64) error {
	rows, err := inv.store.ReadRange(ctx, inv.sheetID, inv.rng)
	if err != nil {
		return guildledger.CollaboratorError("failed to read inventory sheet", err)
	}

	key := resource.Normalize(name)
	found := false
	for _, row := range rows {
		if len(row) < 2 || found {
			continue
		}
		if resource.Normalize(row[0]) == key {
			current, perr := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 64)
			if perr != nil {
				current = 0
			}
			row[1] = strconv.FormatUint(current+amount, 10)
			found = true
		}
	}
	if !found {
		rows = append(rows, []string{string(key), strconv.FormatUint(amount, 10)})
	}

	if err := inv.store.OverwriteRange(ctx, inv.sheetID, inv.rng, rows); err != nil {
		return guildledger.CollaboratorError("failed to write inventory sheet", err)
	}
	return nil
}
