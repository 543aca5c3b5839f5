package cmusprotocol

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyReply indicates the daemon closed the stream before replying.
	ErrEmptyReply = errors.New("empty reply")

	// ErrInvalidCommand indicates a command line could not be parsed.
	ErrInvalidCommand = errors.New("invalid command")
)

// TransportError represents a failed dial, write or read on the control
// socket. It is recorded on the Conn and never returned from Send.
type TransportError struct {
	Op    string // "dial", "write" or "read"
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

func newTransportError(op, path string, cause error) error {
	return &TransportError{Op: op, Path: path, Cause: cause}
}

// ValidationError reports metadata keys required by PlayByMetadata that
// were not supplied.
type ValidationError struct {
	Missing []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing metadata: %s", strings.Join(e.Missing, ", "))
}

// CommandError describes a command line that the parser rejected.
type CommandError struct {
	Line   string
	Reason string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("invalid command '%s': %s", e.Line, e.Reason)
}

// Is reports ErrInvalidCommand as a match.
func (e *CommandError) Is(target error) bool {
	return target == ErrInvalidCommand
}

func newCommandError(line, reason string) error {
	return &CommandError{Line: line, Reason: reason}
}
