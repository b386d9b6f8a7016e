package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"guildledger/ledger"
	"guildledger/resource"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name          string
		items         []resource.Quantity
		snap          ledger.Snapshot
		wantCompleted []resource.Quantity
		wantRemaining []resource.Quantity
	}{
		{
			name:          "exact stock counts as completed",
			items:         []resource.Quantity{{Amount: 10, Name: "iron ore"}},
			snap:          ledger.Snapshot{"iron ore": 10},
			wantCompleted: []resource.Quantity{{Amount: 10, Name: "iron ore"}},
		},
		{
			name:          "shortfall is reported, not the requested amount",
			items:         []resource.Quantity{{Amount: 10, Name: "iron ore"}},
			snap:          ledger.Snapshot{"iron ore": 4},
			wantRemaining: []resource.Quantity{{Amount: 6, Name: "iron ore"}},
		},
		{
			name:          "absent resource counts as zero stock",
			items:         []resource.Quantity{{Amount: 2, Name: "spice residue"}},
			snap:          ledger.Snapshot{"iron ore": 100},
			wantRemaining: []resource.Quantity{{Amount: 2, Name: "spice residue"}},
		},
		{
			name: "lines split independently in input order",
			items: []resource.Quantity{
				{Amount: 50, Name: "iron ore"},
				{Amount: 2, Name: "spice residue"},
			},
			snap:          ledger.Snapshot{"iron ore": 100, "spice residue": 0},
			wantCompleted: []resource.Quantity{{Amount: 50, Name: "iron ore"}},
			wantRemaining: []resource.Quantity{{Amount: 2, Name: "spice residue"}},
		},
		{
			name: "duplicate lines both see the same unmutated stock",
			items: []resource.Quantity{
				{Amount: 10, Name: "iron ore"},
				{Amount: 10, Name: "iron ore"},
			},
			snap: ledger.Snapshot{"iron ore": 10},
			wantCompleted: []resource.Quantity{
				{Amount: 10, Name: "iron ore"},
				{Amount: 10, Name: "iron ore"},
			},
		},
		{
			name:  "lookup goes through normalization",
			items: []resource.Quantity{{Amount: 5, Name: `"Iron Ore"`}},
			snap:  ledger.Snapshot{"iron ore": 5},
			wantCompleted: []resource.Quantity{
				{Amount: 5, Name: `"Iron Ore"`},
			},
		},
		{
			name: "empty request",
			snap: ledger.Snapshot{"iron ore": 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completed, remaining := Reconcile(tt.items, tt.snap)
			assert.Equal(t, tt.wantCompleted, completed)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}
}

func TestReconcile_DoesNotMutateSnapshot(t *testing.T) {
	snap := ledger.Snapshot{"iron ore": 10}
	Reconcile([]resource.Quantity{{Amount: 7, Name: "iron ore"}, {Amount: 7, Name: "iron ore"}}, snap)
	assert.Equal(t, uint64(10), snap.Stock("iron ore"))
}

func TestDebit(t *testing.T) {
	tests := []struct {
		name      string
		snap      ledger.Snapshot
		items     []resource.Quantity
		wantSnap  ledger.Snapshot
		wantShort []resource.Quantity
	}{
		{
			name:     "covered lines debit exactly the requested amounts",
			snap:     ledger.Snapshot{"iron ore": 100, "spice residue": 2},
			items:    []resource.Quantity{{Amount: 50, Name: "iron ore"}, {Amount: 2, Name: "spice residue"}},
			wantSnap: ledger.Snapshot{"iron ore": 50, "spice residue": 0},
		},
		{
			name:      "any short line fails the whole debit",
			snap:      ledger.Snapshot{"iron ore": 100},
			items:     []resource.Quantity{{Amount: 50, Name: "iron ore"}, {Amount: 2, Name: "spice residue"}},
			wantShort: []resource.Quantity{{Amount: 2, Name: "spice residue"}},
		},
		{
			name: "duplicate lines draw from the same stock",
			snap: ledger.Snapshot{"iron ore": 15},
			items: []resource.Quantity{
				{Amount: 10, Name: "iron ore"},
				{Amount: 10, Name: "iron ore"},
			},
			wantShort: []resource.Quantity{{Amount: 5, Name: "iron ore"}},
		},
		{
			name: "duplicate lines that fit both debit",
			snap: ledger.Snapshot{"iron ore": 20},
			items: []resource.Quantity{
				{Amount: 10, Name: "iron ore"},
				{Amount: 10, Name: "iron ore"},
			},
			wantSnap: ledger.Snapshot{"iron ore": 0},
		},
		{
			name:     "empty request debits nothing",
			snap:     ledger.Snapshot{"iron ore": 10},
			wantSnap: ledger.Snapshot{"iron ore": 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, short := Debit(tt.snap, tt.items)
			assert.Equal(t, tt.wantSnap, got)
			assert.Equal(t, tt.wantShort, short)
		})
	}
}

func TestDebit_DoesNotMutateInput(t *testing.T) {
	snap := ledger.Snapshot{"iron ore": 10}
	Debit(snap, []resource.Quantity{{Amount: 4, Name: "iron ore"}})
	assert.Equal(t, uint64(10), snap.Stock("iron ore"))
}
