package commands

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"guildledger"
	"guildledger/ledger"
)

// Submit credits donated stock straight to the inventory sheet.
type Submit struct {
	inventory *ledger.Inventory
	transport guildledger.Transport
}

func NewSubmit(inventory *ledger.Inventory, transport guildledger.Transport) *Submit {
	return &Submit{inventory: inventory, transport: transport}
}

func (c *Submit) Name() string { return "submit" }
func (c *Submit) Description() string {
	return "Records a donation of a resource, adding it to the inventory sheet."
}

func (c *Submit) InputSchema() *jsonschema.Schema {
	minAmount := 1.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"resource": {Type: "string", Description: "Resource name"},
			"amount":   {Type: "integer", Minimum: &minAmount, Description: "Quantity donated"},
		},
		Required: []string{"resource", "amount"},
	}
}

func (c *Submit) Run(ctx context.Context, inv Invocation) error {
	name, err := inv.stringOption("resource")
	if err != nil {
		return err
	}
	amount, err := inv.uintOption("amount")
	if err != nil {
		return err
	}

	if err := c.inventory.AddStock(ctx, name, amount); err != nil {
		return err
	}

	if _, err := c.transport.Reply(ctx, inv.ChannelID, guildledger.Message{
		Content: fmt.Sprintf("✅ Submitted %d of %s to the sheet!", amount, name),
	}); err != nil {
		return guildledger.CollaboratorError("failed to confirm submission", err)
	}
	return nil
}

// NewRegistry creates the command registry backed by the given lifecycle
// and inventory.
func NewRegistry(lifecycle guildledger.Lifecycle, inventory *ledger.Inventory, transport guildledger.Transport) Registry {
	cmds := []Command{
		NewRequestStart(lifecycle),
		NewRequestBulkAdd(lifecycle),
		NewRequestUpdate(lifecycle),
		NewRequestFinish(lifecycle),
		NewSubmit(inventory, transport),
	}

	registry := make(Registry, len(cmds))
	for _, cmd := range cmds {
		registry[cmd.Name()] = cmd
	}
	return registry
}
