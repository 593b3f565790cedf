// Package batch validates and budgets incoming upload batches. Everything in
// this package is pure: no I/O, deterministic output for identical input.
package batch

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ReservedPrefix marks names reserved for internal bookkeeping. No user file
// name or folder segment may start with it.
const ReservedPrefix = "__"

// MaxNameLength is the longest accepted file name.
const MaxNameLength = 255

const defaultMimeType = "application/octet-stream"

// NormalizeFolder canonicalizes an upload folder: leading/trailing slashes
// stripped, repeated slashes collapsed. Empty input yields the empty folder,
// meaning files land at the repository root.
//
// Normalization is idempotent: normalizing an already-normalized folder
// returns it unchanged.
func NormalizeFolder(folder string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(folder), "/")
	if trimmed == "" {
		return "", nil
	}

	segments := make([]string, 0, 4)
	for _, segment := range strings.Split(trimmed, "/") {
		if segment == "" {
			continue
		}
		if segment == "." || segment == ".." {
			return "", fmt.Errorf("%w: segment %q", ErrInvalidFolder, segment)
		}
		if strings.HasPrefix(segment, ReservedPrefix) {
			return "", fmt.Errorf("%w: segment %q uses reserved prefix", ErrInvalidFolder, segment)
		}
		segments = append(segments, segment)
	}

	return strings.Join(segments, "/"), nil
}

// NormalizeName canonicalizes a file name. Rejected: empty names, names over
// [MaxNameLength] chars, "." and "..", embedded path separators, and the
// reserved prefix.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	case len(trimmed) > MaxNameLength:
		return "", fmt.Errorf("%w: longer than %d chars", ErrInvalidName, MaxNameLength)
	case trimmed == "." || trimmed == "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, trimmed)
	case strings.ContainsAny(trimmed, "/\\"):
		return "", fmt.Errorf("%w: %q contains path separator", ErrInvalidName, trimmed)
	case strings.HasPrefix(trimmed, ReservedPrefix):
		return "", fmt.Errorf("%w: %q uses reserved prefix", ErrInvalidName, trimmed)
	}

	return trimmed, nil
}

// NormalizeMime trims the declared content type and substitutes
// application/octet-stream when it is blank.
func NormalizeMime(mime string) string {
	trimmed := strings.TrimSpace(mime)
	if trimmed == "" {
		return defaultMimeType
	}
	return trimmed
}

// stripPayload removes an optional data-URL header and all whitespace from a
// base64 payload. When a comma-delimited header is present
// ("data:image/png;base64,...."), only the portion after the first comma is
// the payload.
func stripPayload(content string) string {
	payload := content
	if idx := strings.IndexByte(content, ','); idx >= 0 && strings.Contains(content[:idx], ";base64") {
		payload = content[idx+1:]
	}

	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, payload)
}

// EstimateDecodedSize computes the decoded byte size of a base64 payload from
// its encoded length and padding, without decoding. Used to enforce budgets
// cheaply before allocating decoded buffers; the exact size is re-measured
// after decoding.
func EstimateDecodedSize(content string) int64 {
	payload := stripPayload(content)
	n := int64(len(payload))
	if n == 0 {
		return 0
	}

	padding := int64(0)
	if strings.HasSuffix(payload, "==") {
		padding = 2
	} else if strings.HasSuffix(payload, "=") {
		padding = 1
	}

	if n%4 == 0 {
		return n/4*3 - padding
	}
	// unpadded payload
	return n * 3 / 4
}

// DecodeContent strips an optional data-URL header and all whitespace, then
// base64-decodes the payload. Malformed encoding yields [ErrInvalidContent],
// never a silent empty result.
func DecodeContent(content string) ([]byte, error) {
	payload := stripPayload(content)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}
	if len(payload)%4 != 0 {
		if data, rawErr := base64.RawStdEncoding.DecodeString(payload); rawErr == nil {
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
}
