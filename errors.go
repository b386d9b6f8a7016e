package guildledger

import (
	"errors"
	"fmt"
)

// Kind classifies lifecycle failures so callers can branch on the category
// instead of matching message text.
type Kind string

const (
	KindAlreadyOpen       Kind = "already_open"
	KindNoOpenRequest     Kind = "no_open_request"
	KindParseError        Kind = "parse_error"
	KindInsufficientStock Kind = "insufficient_stock"
	KindCollaborator      Kind = "collaborator_error"
)

// LifecycleError is a kind-tagged error. Message is safe to show to the
// requester; Err holds the underlying cause, if any.
type LifecycleError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *LifecycleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LifecycleError) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or "" if err carries no kind.
func KindOf(err error) Kind {
	var le *LifecycleError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// AlreadyOpen reports that the requester already has an in-flight request.
func AlreadyOpen(message string) *LifecycleError {
	return &LifecycleError{Kind: KindAlreadyOpen, Message: message}
}

// NoOpenRequest reports that the requester has no in-flight request.
func NoOpenRequest(message string) *LifecycleError {
	return &LifecycleError{Kind: KindNoOpenRequest, Message: message}
}

// ParseError reports an unusable resource list.
func ParseError(message string, err error) *LifecycleError {
	return &LifecycleError{Kind: KindParseError, Message: message, Err: err}
}

// InsufficientStock reports that settlement could not cover every line.
func InsufficientStock(message string) *LifecycleError {
	return &LifecycleError{Kind: KindInsufficientStock, Message: message}
}

// CollaboratorError reports a transport or persistence failure.
func CollaboratorError(message string, err error) *LifecycleError {
	return &LifecycleError{Kind: KindCollaborator, Message: message, Err: err}
}
