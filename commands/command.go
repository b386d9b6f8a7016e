package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
)

// Command is one chat-invokable operation. The schema describes its options
// so the bot's slash-command definitions can be generated from the registry.
type Command interface {
	Name() string
	Description() string
	InputSchema() *jsonschema.Schema
	Run(ctx context.Context, inv Invocation) error
}

// Invocation is one user's use of a command, with options already decoded
// by the gateway layer.
type Invocation struct {
	UserID    string
	ChannelID string
	Options   map[string]any
}

func (inv Invocation) stringOption(name string) (string, error) {
	v, ok := inv.Options[name]
	if !ok {
		return "", fmt.Errorf("missing required option %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("option %q must be a string", name)
	}
	return s, nil
}

func (inv Invocation) uintOption(name string) (uint64, error) {
	v, ok := inv.Options[name]
	if !ok {
		return 0, fmt.Errorf("missing required option %q", name)
	}
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		if t < 0 {
			return 0, fmt.Errorf("option %q must be non-negative", name)
		}
		return uint64(t), nil
	case int64:
		if t < 0 {
			return 0, fmt.Errorf("option %q must be non-negative", name)
		}
		return uint64(t), nil
	case float64:
		if t < 0 || t != float64(uint64(t)) {
			return 0, fmt.Errorf("option %q must be a non-negative integer", name)
		}
		return uint64(t), nil
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("option %q must be a non-negative integer", name)
		}
		return n, nil
	}
	return 0, fmt.Errorf("option %q must be an integer", name)
}

// Registry maps command names to implementations
type Registry map[string]Command

// GetCommands returns all commands in the registry as a slice
func (r Registry) GetCommands() []Command {
	cmds := make([]Command, 0, len(r))
	for _, cmd := range r {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// GetCommand retrieves a command by name from the registry
func (r Registry) GetCommand(name string) (Command, error) {
	cmd, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("command %q not found in registry", name)
	}
	return cmd, nil
}
