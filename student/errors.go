package student

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller-recoverable conditions. They are returned
// wrapped with context, so match them with errors.Is.
var (
	// ErrNotFound is returned when an operation targets an id or record
	// code that does not exist.
	ErrNotFound = errors.New("student record not found")

	// ErrDuplicateCode is returned when a create or update would violate
	// record code uniqueness.
	ErrDuplicateCode = errors.New("record code already exists")
)

// ValidationError describes a rejected input field. It is returned for score
// bounds, malformed codes, emails and the like; the store performs no retries
// for these since they are caller input problems.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// StoreUnavailableError wraps persistence backend failures (connectivity,
// driver errors). The underlying cause is preserved for errors.Is/As; the
// store itself never retries, backoff belongs to the caller.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// newUnavailable tags a backend failure with the operation it interrupted.
func newUnavailable(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}
