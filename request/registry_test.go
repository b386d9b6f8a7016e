package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildledger"
	"guildledger/resource"
)

func TestRegistry_OpenTwice(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Open("u1", "Thumper"))

	err := reg.Open("u1", "Ornithopter")
	require.Error(t, err)
	assert.Equal(t, guildledger.KindAlreadyOpen, guildledger.KindOf(err))

	// Another user is unaffected.
	assert.NoError(t, reg.Open("u2", "Ornithopter"))
}

func TestRegistry_NoOpenRequest(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Peek("u1")
	assert.Equal(t, guildledger.KindNoOpenRequest, guildledger.KindOf(err))

	_, err = reg.Take("u1")
	assert.Equal(t, guildledger.KindNoOpenRequest, guildledger.KindOf(err))

	err = reg.MutateResources("u1", []resource.Quantity{{Amount: 1, Name: "iron ore"}})
	assert.Equal(t, guildledger.KindNoOpenRequest, guildledger.KindOf(err))

	err = reg.SetAnchor("u1", "m1")
	assert.Equal(t, guildledger.KindNoOpenRequest, guildledger.KindOf(err))
}

func TestRegistry_TakeClearsTheSlot(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Open("u1", "Thumper"))
	require.NoError(t, reg.SetAnchor("u1", "m1"))
	require.NoError(t, reg.MutateResources("u1", []resource.Quantity{{Amount: 10, Name: "iron ore"}}))

	entry, err := reg.Take("u1")
	require.NoError(t, err)
	assert.Equal(t, "Thumper", entry.Product)
	assert.Equal(t, "m1", entry.AnchorMessageID)
	assert.Equal(t, []resource.Quantity{{Amount: 10, Name: "iron ore"}}, entry.Resources)

	_, err = reg.Take("u1")
	assert.Equal(t, guildledger.KindNoOpenRequest, guildledger.KindOf(err))

	// The slot is free again.
	assert.NoError(t, reg.Open("u1", "Ornithopter"))
}

func TestRegistry_PeekReturnsACopy(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Open("u1", "Thumper"))
	require.NoError(t, reg.MutateResources("u1", []resource.Quantity{{Amount: 10, Name: "iron ore"}}))

	peeked, err := reg.Peek("u1")
	require.NoError(t, err)
	peeked.Resources[0].Amount = 999
	peeked.Product = "mutated"

	again, err := reg.Peek("u1")
	require.NoError(t, err)
	assert.Equal(t, "Thumper", again.Product)
	assert.Equal(t, uint64(10), again.Resources[0].Amount)
}

func TestRegistry_MutateReplacesWholesale(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Open("u1", "Thumper"))
	require.NoError(t, reg.MutateResources("u1", []resource.Quantity{{Amount: 10, Name: "iron ore"}}))
	require.NoError(t, reg.MutateResources("u1", []resource.Quantity{{Amount: 3, Name: "spice residue"}}))

	entry, err := reg.Peek("u1")
	require.NoError(t, err)
	assert.Equal(t, []resource.Quantity{{Amount: 3, Name: "spice residue"}}, entry.Resources)
}
