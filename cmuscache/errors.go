package cmuscache

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic indicates the file does not start with the cache signature.
	ErrBadMagic = errors.New("unexpected cache magic")

	// ErrShortFile indicates the file is too short to hold the header.
	ErrShortFile = errors.New("cache file too short")

	// ErrCorruptRecord indicates a record whose framing cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt cache record")
)

// FormatError reports a cache file that cannot be decoded. It is fatal to
// the scan in progress.
type FormatError struct {
	Offset int64  // Byte offset of the header or record at fault
	Reason string // Additional context
	Err    error  // ErrBadMagic, ErrShortFile or ErrCorruptRecord
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cache format error at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("cache format error at offset %d: %v: %s", e.Offset, e.Err, e.Reason)
}

// Unwrap returns the sentinel for errors.Is support.
func (e *FormatError) Unwrap() error {
	return e.Err
}

func newCorruptRecordError(offset int64, format string, args ...any) error {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...), Err: ErrCorruptRecord}
}
