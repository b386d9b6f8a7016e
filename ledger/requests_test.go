package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildledger"
	"guildledger/ledger/storage"
)

const reqSheet = "requests-sheet"

func newRequests(t *testing.T) (*Requests, *storage.TestSheetStore) {
	t.Helper()
	store := storage.NewTestSheetStore()
	return NewRequests(store, reqSheet, "Sheet1!A:F"), store
}

func TestRequests_AppendAndLoad(t *testing.T) {
	reqs, store := newRequests(t)
	ctx := context.Background()

	require.NoError(t, reqs.Append(ctx, []Row{
		{RequestID: "req-1", Product: "Thumper", Resource: "iron ore", Amount: 50, Status: StatusInProgress, ThreadRef: "thread-9"},
		{RequestID: "req-1", Product: "Thumper", Resource: "spice residue", Amount: 2, Status: StatusInProgress, ThreadRef: "thread-9"},
	}))
	require.NoError(t, reqs.Append(ctx, []Row{
		{RequestID: "req-2", Product: "Ornithopter", Resource: "corpse", Amount: 1, Status: StatusInProgress, ThreadRef: "thread-10"},
	}))

	rows, err := reqs.Load(ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{RequestID: "req-1", Product: "Thumper", Resource: "iron ore", Amount: 50, Status: StatusInProgress, ThreadRef: "thread-9"}, rows[0])
	assert.Equal(t, "spice residue", rows[1].Resource)

	rows, err = reqs.Load(ctx, "req-2")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = reqs.Load(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Two requests share the sheet, one row per resource line.
	assert.Len(t, store.Rows(reqSheet), 3)
}

func TestRequests_Load_ToleratesHandEdits(t *testing.T) {
	reqs, store := newRequests(t)
	store.Seed(reqSheet, [][]string{
		{"req-1", "Thumper", "iron ore", "not-a-number", StatusInProgress},
		{"req-1", "Thumper"}, // short row skipped
		{"req-1", "Thumper", "corpse", "2", StatusInProgress, "thread-9"},
	})

	rows, err := reqs.Load(context.Background(), "req-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint64(0), rows[0].Amount)
	assert.Equal(t, "", rows[0].ThreadRef)
	assert.Equal(t, "thread-9", rows[1].ThreadRef)
}

func TestRequests_MarkCompleted(t *testing.T) {
	reqs, store := newRequests(t)
	ctx := context.Background()
	store.Seed(reqSheet, [][]string{
		{"req-1", "Thumper", "iron ore", "50", StatusInProgress, "thread-9"},
		{"req-2", "Ornithopter", "corpse", "1", StatusInProgress, "thread-10"},
		{"req-1", "Thumper", "spice residue", "2", StatusInProgress, "thread-9"},
	})

	require.NoError(t, reqs.MarkCompleted(ctx, "req-1"))

	rows := store.Rows(reqSheet)
	assert.Equal(t, StatusCompleted, rows[0][4])
	assert.Equal(t, StatusInProgress, rows[1][4])
	assert.Equal(t, StatusCompleted, rows[2][4])

	// Monotonic: marking again leaves everything completed.
	require.NoError(t, reqs.MarkCompleted(ctx, "req-1"))
	assert.Equal(t, StatusCompleted, store.Rows(reqSheet)[0][4])
}

func TestRequests_CollaboratorErrors(t *testing.T) {
	reqs := NewRequests(storage.NewTestSheetStoreWithError(), reqSheet, "")
	ctx := context.Background()

	_, err := reqs.Load(ctx, "req-1")
	assert.Equal(t, guildledger.KindCollaborator, guildledger.KindOf(err))
	assert.Equal(t, guildledger.KindCollaborator, guildledger.KindOf(reqs.Append(ctx, []Row{{}})))
	assert.Equal(t, guildledger.KindCollaborator, guildledger.KindOf(reqs.MarkCompleted(ctx, "req-1")))
}
