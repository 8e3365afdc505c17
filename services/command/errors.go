package command

import (
	"errors"
	"fmt"
)

// ErrBadDateTime covers unparsable date or clock-time arguments.
var ErrBadDateTime = errors.New("invalid date or time format")

// UsageError signals bad arity or argument shape; the message echoes the
// expected syntax.
type UsageError struct {
	Syntax string
}

func (e UsageError) Error() string {
	return "Usage: " + e.Syntax
}

// NotFoundError signals a referenced client does not exist.
type NotFoundError struct {
	ClientID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Client with ID '%s' not found.", e.ClientID)
}

// AlreadyExistsError signals a create with a taken client ID.
type AlreadyExistsError struct {
	ClientID string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("Client with ID '%s' already exists.", e.ClientID)
}

// AccessDeniedError signals a role/ownership violation. Verb names the
// attempted action for the caller-facing message.
type AccessDeniedError struct {
	Verb string
}

func (e AccessDeniedError) Error() string {
	return fmt.Sprintf("Access denied. You can only %s your own clients.", e.Verb)
}

// NoContextError signals an implicit-subject command with no prior open_user.
type NoContextError struct{}

func (NoContextError) Error() string {
	return `No client selected. Use "open_user <clientId>" first.`
}

// ConflictError signals that a candidate session overlaps an existing one
// for the same client. Creation is blocked; nothing is rescheduled.
type ConflictError struct {
	ClientID string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("Warning: This session overlaps with an existing session for client '%s'.", e.ClientID)
}

// UnknownCommandError signals an unrecognized command name.
type UnknownCommandError struct {
	Name string
}

func (e UnknownCommandError) Error() string {
	return fmt.Sprintf("Unknown command: %q.", e.Name)
}
