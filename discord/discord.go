package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"guildledger"
)

const defaultBaseURL = "https://discord.com/api/v10"

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a minimal Discord REST client covering what the request
// lifecycle needs: channel messages with embeds and buttons, and threads
// spawned from a message.
type Client struct {
	token      string
	baseURL    string
	httpClient doer
}

func NewClient(token string, httpClient doer) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// wire types for the Discord REST payloads

type wireEmbed struct {
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Color       int              `json:"color,omitempty"`
	Fields      []wireEmbedField `json:"fields,omitempty"`
}

type wireEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type wireComponent struct {
	Type       int          `json:"type"`
	Components []wireButton `json:"components,omitempty"`
}

type wireButton struct {
	Type     int    `json:"type"`
	Label    string `json:"label"`
	Style    int    `json:"style"`
	CustomID string `json:"custom_id"`
}

type wireMessage struct {
	Content    string          `json:"content,omitempty"`
	Embeds     []wireEmbed     `json:"embeds,omitempty"`
	Components []wireComponent `json:"components,omitempty"`
}

type wireID struct {
	ID string `json:"id"`
}

func encodeMessage(msg guildledger.Message) wireMessage {
	out := wireMessage{Content: msg.Content}
	for _, e := range msg.Embeds {
		we := wireEmbed{Title: e.Title, Description: e.Description, Color: e.Color}
		for _, f := range e.Fields {
			we.Fields = append(we.Fields, wireEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
		}
		out.Embeds = append(out.Embeds, we)
	}
	if len(msg.Buttons) > 0 {
		// Buttons ride in a single action row (component type 1, button type 2).
		row := wireComponent{Type: 1}
		for _, b := range msg.Buttons {
			row.Components = append(row.Components, wireButton{
				Type:     2,
				Label:    b.Label,
				Style:    int(b.Style),
				CustomID: b.CustomID,
			})
		}
		out.Components = []wireComponent{row}
	}
	return out
}

// Reply posts a message to a channel and returns its message ID.
func (c *Client) Reply(ctx context.Context, channelID string, msg guildledger.Message) (string, error) {
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	return c.post(ctx, path, encodeMessage(msg))
}

// CreateThread starts a public thread off an existing message and returns
// the thread's channel ID.
func (c *Client) CreateThread(ctx context.Context, channelID, messageID, title string) (string, error) {
	path := fmt.Sprintf("/channels/%s/messages/%s/threads", channelID, messageID)
	return c.post(ctx, path, map[string]any{"name": title})
}

// SendToThread posts a message into a thread. Threads are channels on the
// wire, so this is Reply under a clearer name at the call site.
func (c *Client) SendToThread(ctx context.Context, threadID string, msg guildledger.Message) (string, error) {
	return c.Reply(ctx, threadID, msg)
}

func (c *Client) post(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("failed to post to %s: %s", path, resp.Status)
	}

	var created wireID
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return created.ID, nil
}
