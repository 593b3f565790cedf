package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest wraps every validation and budgeting failure.
	// Always pre-commit: no backend call has been made.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrChannelNotFound is returned when no usable backend channel
	// matches the request.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrPartialCommit marks the dangerous failure class: one or more
	// files' bytes are durably staged in the backend, but the single
	// transaction that would make them reachable was never registered.
	ErrPartialCommit = errors.New("staged bytes not committed")
)

// PartialCommitError carries the list of target paths whose bytes are
// already durably staged when the batch failed. The caller decides whether
// to retry the whole batch or abandon it.
type PartialCommitError struct {
	// Staged lists the full target paths with durably staged bytes, in
	// batch order.
	Staged []string

	// Err is the underlying backend failure.
	Err error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("%d file(s) staged but not committed: %v", len(e.Staged), e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrPartialCommit) match without losing the
// underlying failure chain exposed through Unwrap.
func (e *PartialCommitError) Is(target error) bool { return target == ErrPartialCommit }
