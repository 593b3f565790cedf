package batch

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by normalization and budgeting. Callers should
// match with [errors.Is]; every one of them means the batch was rejected
// before any backend call was made.
var (
	// ErrEmptyBatch is returned when the file list is missing or empty.
	ErrEmptyBatch = errors.New("batch contains no files")

	// ErrTooManyFiles is returned when the file count exceeds the
	// configured maximum.
	ErrTooManyFiles = errors.New("too many files in batch")

	// ErrInvalidName is returned for empty names, names over 255 chars,
	// "." / "..", names containing path separators, and names starting
	// with the reserved prefix.
	ErrInvalidName = errors.New("invalid file name")

	// ErrInvalidFolder is returned when a folder segment is "." / ".." or
	// starts with the reserved prefix.
	ErrInvalidFolder = errors.New("invalid upload folder")

	// ErrInvalidContent is returned when the base64 payload cannot be
	// decoded.
	ErrInvalidContent = errors.New("invalid base64 content")

	// ErrEmptyFile is returned when a payload decodes to zero bytes.
	ErrEmptyFile = errors.New("file is empty")

	// ErrFileTooLarge is returned when a single decoded payload exceeds
	// the per-file limit.
	ErrFileTooLarge = errors.New("file exceeds single-file size limit")

	// ErrBatchTooLarge is returned when the running sum of decoded sizes
	// exceeds the batch limit. Reported against the entry that pushed the
	// total over, so the batch fails fast.
	ErrBatchTooLarge = errors.New("batch exceeds total size limit")

	// ErrDuplicatePath is returned when two entries resolve to the same
	// full target path. Duplicates are never silently overwritten.
	ErrDuplicatePath = errors.New("duplicate target path in batch")
)

// EntryError wraps a sentinel error with the zero-based index of the
// offending batch entry for diagnosability.
type EntryError struct {
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("file %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

func entryErr(index int, err error) error {
	return &EntryError{Index: index, Err: err}
}
