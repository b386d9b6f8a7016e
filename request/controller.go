package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"guildledger"
	"guildledger/ledger"
	"guildledger/resource"
)

// Controller drives the request lifecycle: NONE -> OPEN (resources staged
// in the registry) -> POSTED (rows persisted, thread created) -> settled.
// It owns all success-path messaging; for user-state failures it sends the
// corrective hint and still returns the kind-tagged error so callers can
// branch.
type Controller struct {
	registry  *Registry
	inventory *ledger.Inventory
	requests  *ledger.Requests
	transport guildledger.Transport
	// channelID is the pre-defined channel request threads are posted to.
	channelID string
	actions   guildledger.ActionLogger
	newID     func() string
}

// NewController initializes a new lifecycle controller.
func NewController(registry *Registry, inventory *ledger.Inventory, requests *ledger.Requests, transport guildledger.Transport, requestsChannelID string, actions guildledger.ActionLogger) *Controller {
	return &Controller{
		registry:  registry,
		inventory: inventory,
		requests:  requests,
		transport: transport,
		channelID: requestsChannelID,
		actions:   actions,
		newID:     uuid.NewString,
	}
}

// Start opens an in-flight request with an empty resource list. Fails with
// an already_open error if the requester has one going.
func (c *Controller) Start(ctx context.Context, userID, channelID, product string) error {
	slog.Info("LIFECYCLE: Starting request", "user_id", userID, "product", product)

	if err := c.registry.Open(userID, product); err != nil {
		c.hint(ctx, channelID, err)
		return c.logged("start", userID, "", product, err)
	}

	messageID, err := c.transport.Reply(ctx, channelID, startMessage(product))
	if err != nil {
		// Roll the slot back so the requester is not stuck with an entry
		// they never saw confirmed.
		_, _ = c.registry.Take(userID)
		return c.logged("start", userID, "", product, guildledger.CollaboratorError("failed to confirm request start", err))
	}

	if err := c.registry.SetAnchor(userID, messageID); err != nil {
		slog.Warn("LIFECYCLE: Request vanished before anchoring", "user_id", userID, "error", err)
	}
	return c.logged("start", userID, "", product, nil)
}

// BulkAdd parses a pasted resource list and replaces the staged resources
// wholesale. On a parse failure the previous list is left untouched.
func (c *Controller) BulkAdd(ctx context.Context, userID, channelID, rawList string) error {
	slog.Info("LIFECYCLE: Bulk add", "user_id", userID, "raw_bytes", len(rawList))

	if _, err := c.registry.Peek(userID); err != nil {
		c.hint(ctx, channelID, err)
		return c.logged("bulk_add", userID, "", "", err)
	}

	parsed, err := resource.Parse(rawList)
	if err != nil {
		c.hint(ctx, channelID, err)
		return c.logged("bulk_add", userID, "", "", err)
	}

	if err := c.registry.MutateResources(userID, resource.Convert(parsed)); err != nil {
		c.hint(ctx, channelID, err)
		return c.logged("bulk_add", userID, "", "", err)
	}

	if _, err := c.transport.Reply(ctx, channelID, bulkAddMessage(previewBody(parsed))); err != nil {
		return c.logged("bulk_add", userID, "", "", guildledger.CollaboratorError("failed to send resource preview", err))
	}
	return c.logged("bulk_add", userID, "", "", nil)
}

// Update reconciles the staged resources against a fresh inventory
// snapshot and reports the completed/remaining split. Nothing is mutated.
func (c *Controller) Update(ctx context.Context, userID, channelID string) error {
	slog.Info("LIFECYCLE: Live update", "user_id", userID)

	entry, err := c.registry.Peek(userID)
	if err != nil {
		c.hint(ctx, channelID, err)
		return c.logged("update", userID, "", "", err)
	}

	snap, err := c.inventory.Load(ctx)
	if err != nil {
		return c.logged("update", userID, "", entry.Product, err)
	}

	completed, remaining := Reconcile(entry.Resources, snap)
	msg := guildledger.Message{Embeds: []guildledger.Embed{updateEmbed(entry.Product, completed, remaining)}}
	if _, err := c.transport.Reply(ctx, channelID, msg); err != nil {
		return c.logged("update", userID, "", entry.Product, guildledger.CollaboratorError("failed to send update", err))
	}
	return c.logged("update", userID, "", entry.Product, nil)
}

// Finish posts the staged request: mints a request ID, publishes the
// request embed with a submissions thread, and persists one in_progress
// row per resource line. The in-flight entry is consumed up front, so a
// collaborator failure after that point loses the staging (at-most-once
// toward the sheet; the rows are the source of truth from here on).
func (c *Controller) Finish(ctx context.Context, userID, channelID string) error {
	entry, err := c.registry.Take(userID)
	if err != nil {
		c.hint(ctx, channelID, err)
		return c.logged("finish", userID, "", "", err)
	}

	requestID := c.newID()
	slog.Info("LIFECYCLE: Finishing request", "user_id", userID, "request_id", requestID, "product", entry.Product, "lines", len(entry.Resources))

	msg := guildledger.Message{Embeds: []guildledger.Embed{requestEmbed(entry.Product, entry.Resources)}}
	messageID, err := c.transport.Reply(ctx, c.channelID, msg)
	if err != nil {
		return c.logged("finish", userID, requestID, entry.Product, guildledger.CollaboratorError("failed to post request", err))
	}

	threadID, err := c.transport.CreateThread(ctx, c.channelID, messageID, entry.Product+" - submissions")
	if err != nil {
		return c.logged("finish", userID, requestID, entry.Product, guildledger.CollaboratorError("failed to create request thread", err))
	}

	rows := make([]ledger.Row, 0, len(entry.Resources))
	for _, it := range entry.Resources {
		rows = append(rows, ledger.Row{
			RequestID: requestID,
			Product:   entry.Product,
			Resource:  it.Name,
			Amount:    it.Amount,
			Status:    ledger.StatusInProgress,
			ThreadRef: threadID,
		})
	}
	if err := c.requests.Append(ctx, rows); err != nil {
		return c.logged("finish", userID, requestID, entry.Product, err)
	}

	if _, err := c.transport.SendToThread(ctx, threadID, welcomeMessage()); err != nil {
		return c.logged("finish", userID, requestID, entry.Product, guildledger.CollaboratorError("failed to send thread welcome", err))
	}
	if _, err := c.transport.SendToThread(ctx, threadID, buttonsMessage(requestID)); err != nil {
		return c.logged("finish", userID, requestID, entry.Product, guildledger.CollaboratorError("failed to send thread buttons", err))
	}
	return c.logged("finish", userID, requestID, entry.Product, nil)
}

// Settle debits the inventory by every in_progress row of a posted request
// and marks the rows completed. All-or-nothing against the snapshot taken
// here: if any line is short, nothing is debited. Settling a request whose
// rows are already completed is a no-op and never double-debits.
func (c *Controller) Settle(ctx context.Context, channelID, requestID string) error {
	slog.Info("LIFECYCLE: Settling request", "request_id", requestID)

	rows, err := c.requests.Load(ctx, requestID)
	if err != nil {
		return c.logged("settle", "", requestID, "", err)
	}
	if len(rows) == 0 {
		err := guildledger.NoOpenRequest("no request found for that id")
		c.hint(ctx, channelID, err)
		return c.logged("settle", "", requestID, "", err)
	}

	product := rows[0].Product
	channelID = orThreadRef(channelID, rows)

	pending := pendingRows(rows)
	if len(pending) == 0 {
		slog.Info("LIFECYCLE: Request already settled", "request_id", requestID)
		if _, err := c.transport.Reply(ctx, channelID, guildledger.Message{
			Content: fmt.Sprintf("✅ %s was already completed.", product),
		}); err != nil {
			return c.logged("settle", "", requestID, product, guildledger.CollaboratorError("failed to send settle notice", err))
		}
		return c.logged("settle", "", requestID, product, nil)
	}

	snap, err := c.inventory.Load(ctx)
	if err != nil {
		return c.logged("settle", "", requestID, product, err)
	}

	debited, short := Debit(snap, rowQuantities(pending))
	if short != nil {
		serr := guildledger.InsufficientStock("not enough resources in inventory to complete this request")
		if _, rerr := c.transport.Reply(ctx, channelID, guildledger.Message{
			Content: "❌ Not enough resources in inventory to complete this request.",
		}); rerr != nil {
			slog.Error("LIFECYCLE: Failed to send insufficient stock notice", "request_id", requestID, "error", rerr)
		}
		return c.logged("settle", "", requestID, product, serr)
	}

	// Debit first, then flip the rows; a failure in between leaves the
	// sheet pair inconsistent and is reported, not retried.
	if err := c.inventory.Write(ctx, debited); err != nil {
		return c.logged("settle", "", requestID, product, err)
	}
	if err := c.requests.MarkCompleted(ctx, requestID); err != nil {
		return c.logged("settle", "", requestID, product, err)
	}

	msg := guildledger.Message{Embeds: []guildledger.Embed{completeEmbed(product)}}
	if _, err := c.transport.Reply(ctx, channelID, msg); err != nil {
		return c.logged("settle", "", requestID, product, guildledger.CollaboratorError("failed to announce completion", err))
	}
	return c.logged("settle", "", requestID, product, nil)
}

// Refresh re-reconciles a posted request's rows against live stock and
// posts the completed/remaining report to its thread.
func (c *Controller) Refresh(ctx context.Context, channelID, requestID string) error {
	slog.Info("LIFECYCLE: Refreshing posted request", "request_id", requestID)

	rows, err := c.requests.Load(ctx, requestID)
	if err != nil {
		return c.logged("refresh", "", requestID, "", err)
	}
	if len(rows) == 0 {
		err := guildledger.NoOpenRequest("no request found for that id")
		c.hint(ctx, channelID, err)
		return c.logged("refresh", "", requestID, "", err)
	}

	product := rows[0].Product
	channelID = orThreadRef(channelID, rows)

	snap, err := c.inventory.Load(ctx)
	if err != nil {
		return c.logged("refresh", "", requestID, product, err)
	}

	completed, remaining := Reconcile(rowQuantities(rows), snap)
	msg := guildledger.Message{Embeds: []guildledger.Embed{updateEmbed(product, completed, remaining)}}
	if _, err := c.transport.Reply(ctx, channelID, msg); err != nil {
		return c.logged("refresh", "", requestID, product, guildledger.CollaboratorError("failed to send refresh", err))
	}
	return c.logged("refresh", "", requestID, product, nil)
}

// hint sends the corrective one-liner for user-recoverable failures.
// Collaborator failures are never surfaced this way; their details stay in
// the logs.
func (c *Controller) hint(ctx context.Context, channelID string, err error) {
	kind := guildledger.KindOf(err)
	if kind == "" || kind == guildledger.KindCollaborator {
		return
	}
	var le *guildledger.LifecycleError
	if !errors.As(err, &le) {
		return
	}
	if _, rerr := c.transport.Reply(ctx, channelID, guildledger.Message{Content: "❌ " + upperFirst(le.Message) + "."}); rerr != nil {
		slog.Error("LIFECYCLE: Failed to send hint", "error", rerr)
	}
}

func (c *Controller) logged(op, userID, requestID, product string, err error) error {
	entry := guildledger.ActionLog{
		Op:        op,
		UserID:    userID,
		RequestID: requestID,
		Product:   product,
		Timestamp: time.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if c.actions != nil {
		if lerr := c.actions.LogAction(entry); lerr != nil {
			slog.Error("Failed to log lifecycle action", "error", lerr, "op", op)
		}
	}
	return err
}

func rowQuantities(rows []ledger.Row) []resource.Quantity {
	items := make([]resource.Quantity, 0, len(rows))
	for _, row := range rows {
		items = append(items, resource.Quantity{Amount: row.Amount, Name: row.Resource})
	}
	return items
}

func pendingRows(rows []ledger.Row) []ledger.Row {
	var pending []ledger.Row
	for _, row := range rows {
		if row.Status == ledger.StatusInProgress {
			pending = append(pending, row)
		}
	}
	return pending
}

func orThreadRef(channelID string, rows []ledger.Row) string {
	if channelID != "" {
		return channelID
	}
	return rows[0].ThreadRef
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
