package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildledger"
	"guildledger/ledger/storage"
)

const invSheet = "inventory-sheet"

func newInventory(t *testing.T) (*Inventory, *storage.TestSheetStore) {
	t.Helper()
	store := storage.NewTestSheetStore()
	return NewInventory(store, invSheet, "Sheet1!A:B"), store
}

func TestInventory_Load(t *testing.T) {
	inv, store := newInventory(t)
	store.Seed(invSheet, [][]string{
		{"Iron Ore", "100"},
		{` "Water" `, "90000"},
		{"spice residue"},          // short row skipped
		{"plastanium ingot", "??"}, // bad quantity reads as zero
	})

	snap, err := inv.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(100), snap.Stock("iron ore"))
	assert.Equal(t, uint64(100), snap.Stock("Iron Ore"))
	assert.Equal(t, uint64(90000), snap.Stock("water"))
	assert.Equal(t, uint64(0), snap.Stock("plastanium ingot"))
	assert.Equal(t, uint64(0), snap.Stock("spice residue"))
	assert.Equal(t, uint64(0), snap.Stock("never seen"))
}

func TestInventory_Load_StoreError(t *testing.T) {
	inv := NewInventory(storage.NewTestSheetStoreWithError(), invSheet, "")

	_, err := inv.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, guildledger.KindCollaborator, guildledger.KindOf(err))
}

func TestInventory_Write_SortedAndReloadable(t *testing.T) {
	inv, store := newInventory(t)

	require.NoError(t, inv.Write(context.Background(), Snapshot{
		"water":    90000,
		"corpse":   2,
		"iron ore": 58,
	}))

	assert.Equal(t, [][]string{
		{"corpse", "2"},
		{"iron ore", "58"},
		{"water", "90000"},
	}, store.Rows(invSheet))

	snap, err := inv.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(58), snap.Stock("iron ore"))
}

func TestSnapshot_Clone(t *testing.T) {
	snap := Snapshot{"iron ore": 10}
	clone := snap.Clone()
	clone["iron ore"] = 3

	assert.Equal(t, uint64(10), snap.Stock("iron ore"))
	assert.Equal(t, uint64(3), clone.Stock("iron ore"))
}

func TestInventory_AddStock(t *testing.T) {
	tests := []struct {
		name   string
		seed   [][]string
		res    string
		amount uint64
		want   [][]string
	}{
		{
			name:   "existing row incremented in place",
			seed:   [][]string{{"iron ore", "40"}, {"water", "100"}},
			res:    "Iron Ore",
			amount: 10,
			want:   [][]string{{"iron ore", "50"}, {"water", "100"}},
		},
		{
			name:   "unknown resource appended",
			seed:   [][]string{{"iron ore", "40"}},
			res:    "Spice Residue",
			amount: 2,
			want:   [][]string{{"iron ore", "40"}, {"spice residue", "2"}},
		},
		{
			name:   "empty sheet",
			seed:   nil,
			res:    "corpse",
			amount: 1,
			want:   [][]string{{"corpse", "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, store := newInventory(t)
			store.Seed(invSheet, tt.seed)

			require.NoError(t, inv.AddStock(context.Background(), tt.res, tt.amount))
			assert.Equal(t, tt.want, store.Rows(invSheet))
		})
	}
}
