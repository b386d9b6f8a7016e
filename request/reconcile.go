package request

import (
	"guildledger/ledger"
	"guildledger/resource"
)

// Reconcile splits requested lines into completed and remaining against a
// stock snapshot. Each line is judged independently and the snapshot is
// never mutated: two lines for the same resource both see the same stock.
// A line whose stock covers the requested amount (inclusive) is completed
// and reported with the requested amount; otherwise it is remaining,
// reported with the shortfall. Pure function, no I/O.
func Reconcile(items []resource.Quantity, snap ledger.Snapshot) (completed, remaining []resource.Quantity) {
	for _, it := range items {
		stock := snap.Stock(it.Name)
		if stock >= it.Amount {
			completed = append(completed, it)
		} else {
			remaining = append(remaining, resource.Quantity{Amount: it.Amount - stock, Name: it.Name})
		}
	}
	return completed, remaining
}

// Debit walks lines in order against a working copy of the snapshot,
// subtracting as it goes, so duplicate lines for one resource draw from
// the same stock. If every line is covered it returns the debited copy and
// no shortfalls; otherwise it returns a nil snapshot and the per-line
// shortfalls, and nothing is debited.
func Debit(snap ledger.Snapshot, items []resource.Quantity) (ledger.Snapshot, []resource.Quantity) {
	working := snap.Clone()
	var short []resource.Quantity
	for _, it := range items {
		key := resource.Normalize(it.Name)
		stock := working[key]
		if stock < it.Amount {
			short = append(short, resource.Quantity{Amount: it.Amount - stock, Name: it.Name})
			working[key] = 0
			continue
		}
		working[key] = stock - it.Amount
	}
	if short != nil {
		return nil, short
	}
	return working, nil
}
