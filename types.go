package guildledger

import (
	"context"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport is the chat front-end surface consumed by the request lifecycle.
// Implementations return the provider's message/thread identifiers so the
// core can anchor threads and settle posted requests later.
type Transport interface {
	Reply(ctx context.Context, channelID string, msg Message) (messageID string, err error)
	CreateThread(ctx context.Context, channelID, messageID, title string) (threadID string, err error)
	SendToThread(ctx context.Context, threadID string, msg Message) (messageID string, err error)
}

// Lifecycle is the request lifecycle controller surface: one method per
// user-triggered operation plus the two button-triggered ones.
type Lifecycle interface {
	Start(ctx context.Context, userID, channelID, product string) error
	BulkAdd(ctx context.Context, userID, channelID, rawList string) error
	Update(ctx context.Context, userID, channelID string) error
	Finish(ctx context.Context, userID, channelID string) error
	Settle(ctx context.Context, channelID, requestID string) error
	Refresh(ctx context.Context, channelID, requestID string) error
}

// Message is a provider-agnostic outbound chat message.
type Message struct {
	Content string
	Embeds  []Embed
	Buttons []Button
}

// Embed is a titled rich section with labeled fields.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Button carries an opaque correlation token in CustomID; clicking it comes
// back to us as an interaction event.
type Button struct {
	Label    string
	CustomID string
	Style    ButtonStyle
}

type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = 1
	ButtonSuccess ButtonStyle = 3
	ButtonDanger  ButtonStyle = 4
)
