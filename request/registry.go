package request

import (
	"sync"

	"guildledger"
	"guildledger/resource"
)

// InProgress is a requester's staged request between start and finish. It
// lives only in process memory; a restart loses it.
type InProgress struct {
	Product   string
	Resources []resource.Quantity
	// AnchorMessageID is the confirmation message the eventual request
	// thread is created from.
	AnchorMessageID string
}

// Registry holds at most one in-flight request per requester. All
// operations are atomic check-and-sets on the requester key, so a start
// racing a finish for the same user cannot both succeed.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*InProgress
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*InProgress)}
}

// Open reserves the requester's slot with an empty resource list.
func (r *Registry) Open(userID, product string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[userID]; exists {
		return guildledger.AlreadyOpen("you already have a pending request; finish it before starting a new one")
	}
	r.entries[userID] = &InProgress{Product: product}
	return nil
}

// SetAnchor records the confirmation message for the open request.
func (r *Registry) SetAnchor(userID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, exists := r.entries[userID]
	if !exists {
		return guildledger.NoOpenRequest("you have no active request; start one first")
	}
	entry.AnchorMessageID = messageID
	return nil
}

// MutateResources replaces the open request's resource list wholesale.
func (r *Registry) MutateResources(userID string, items []resource.Quantity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, exists := r.entries[userID]
	if !exists {
		return guildledger.NoOpenRequest("you have no active request; start one first")
	}
	entry.Resources = append([]resource.Quantity(nil), items...)
	return nil
}

// Peek returns a copy of the requester's open request.
func (r *Registry) Peek(userID string) (InProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, exists := r.entries[userID]
	if !exists {
		return InProgress{}, guildledger.NoOpenRequest("you have no active request; start one first")
	}
	return copyEntry(entry), nil
}

// Take removes and returns the requester's open request.
func (r *Registry) Take(userID string) (InProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, exists := r.entries[userID]
	if !exists {
		return InProgress{}, guildledger.NoOpenRequest("you have no active request; start one first")
	}
	delete(r.entries, userID)
	return copyEntry(entry), nil
}

func copyEntry(entry *InProgress) InProgress {
	return InProgress{
		Product:         entry.Product,
		Resources:       append([]resource.Quantity(nil), entry.Resources...),
		AnchorMessageID: entry.AnchorMessageID,
	}
}
