package graph

import (
	"errors"
	"fmt"
)

// Every operation reports one of these kinds, so callers can tell
// "nothing to do" apart from "the store is broken".
var (
	// ErrNotFound is returned when a referenced vertex, edge or
	// property does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned by creates that require uniqueness.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument is returned for malformed identifiers, types,
	// names and oversized values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorage wraps failures of the underlying engine. Operations
	// are not retried internally; the caller owns the retry policy.
	ErrStorage = errors.New("storage failure")

	// ErrIndexInconsistency signals that an index entry and its
	// property record disagree. This should be unreachable given
	// atomic batching; it is surfaced rather than repaired, since a
	// silent repair could mask data loss.
	ErrIndexInconsistency = errors.New("index inconsistency")
)

func storageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func invalidErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func indexErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrIndexInconsistency, fmt.Sprintf(format, args...))
}
