package commands

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"guildledger"
)

// RequestStart opens a new crafting request for the invoking user.
type RequestStart struct{ lifecycle guildledger.Lifecycle }

func NewRequestStart(lifecycle guildledger.Lifecycle) *RequestStart {
	return &RequestStart{lifecycle: lifecycle}
}

func (c *RequestStart) Name() string { return "request_start" }
func (c *RequestStart) Description() string {
	return "Starts a crafting request for a product. One open request per user."
}

func (c *RequestStart) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"product": {Type: "string", Description: "Name of the item being crafted"},
		},
		Required: []string{"product"},
	}
}

func (c *RequestStart) Run(ctx context.Context, inv Invocation) error {
	product, err := inv.stringOption("product")
	if err != nil {
		return err
	}
	return c.lifecycle.Start(ctx, inv.UserID, inv.ChannelID, product)
}

// RequestBulkAdd records a pasted resource list on the open request.
type RequestBulkAdd struct{ lifecycle guildledger.Lifecycle }

func NewRequestBulkAdd(lifecycle guildledger.Lifecycle) *RequestBulkAdd {
	return &RequestBulkAdd{lifecycle: lifecycle}
}

func (c *RequestBulkAdd) Name() string { return "request_bulk_add" }
func (c *RequestBulkAdd) Description() string {
	return "Replaces the open request's resource list from pasted text like \"50 x Iron Ore\"."
}

func (c *RequestBulkAdd) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"resources": {Type: "string", Description: "Resource list, one or more amount/name pairs"},
		},
		Required: []string{"resources"},
	}
}

func (c *RequestBulkAdd) Run(ctx context.Context, inv Invocation) error {
	resources, err := inv.stringOption("resources")
	if err != nil {
		return err
	}
	return c.lifecycle.BulkAdd(ctx, inv.UserID, inv.ChannelID, resources)
}

// RequestUpdate previews the open request against current stock.
type RequestUpdate struct{ lifecycle guildledger.Lifecycle }

func NewRequestUpdate(lifecycle guildledger.Lifecycle) *RequestUpdate {
	return &RequestUpdate{lifecycle: lifecycle}
}

func (c *RequestUpdate) Name() string { return "request_update" }
func (c *RequestUpdate) Description() string {
	return "Shows which of the open request's resources are in stock and which are still needed."
}

func (c *RequestUpdate) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (c *RequestUpdate) Run(ctx context.Context, inv Invocation) error {
	return c.lifecycle.Update(ctx, inv.UserID, inv.ChannelID)
}

// RequestFinish posts the open request to the requests channel.
type RequestFinish struct{ lifecycle guildledger.Lifecycle }

func NewRequestFinish(lifecycle guildledger.Lifecycle) *RequestFinish {
	return &RequestFinish{lifecycle: lifecycle}
}

func (c *RequestFinish) Name() string { return "request_finish" }
func (c *RequestFinish) Description() string {
	return "Finalizes the open request: posts it with a submissions thread and persists its rows."
}

func (c *RequestFinish) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (c *RequestFinish) Run(ctx context.Context, inv Invocation) error {
	return c.lifecycle.Finish(ctx, inv.UserID, inv.ChannelID)
}
