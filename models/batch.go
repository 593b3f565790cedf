// Package models defines the request, response, and persistence types shared
// between the HTTP handlers, the upload services, and the storage layer.
package models

// BatchRequest is the caller input for one upload batch. All files in the
// batch are written to the backend in exactly one commit transaction.
type BatchRequest struct {
	// UploadFolder is the target directory for every file in the batch.
	// Empty means the repository root. Normalized before use.
	UploadFolder string `json:"uploadFolder,omitempty"`

	// ChannelName optionally pins the batch to a configured channel.
	// When empty, the channel selection strategy picks one.
	ChannelName string `json:"channelName,omitempty"`

	// Files is the non-empty list of files to commit.
	Files []FileInput `json:"files"`

	// CommitMessage optionally overrides the generated commit summary.
	CommitMessage string `json:"commitMessage,omitempty"`

	// RequestID is the caller-supplied idempotency key (max 128 chars).
	// Resubmitting a successful batch under the same RequestID replays the
	// original response without a second commit.
	RequestID string `json:"requestId,omitempty"`
}

// FileInput is one raw file entry as submitted by the caller.
type FileInput struct {
	// Name is the display name of the file. Must not contain path
	// separators and must not be "." or "..".
	Name string `json:"name"`

	// MimeType is the declared content type. Blank falls back to
	// application/octet-stream.
	MimeType string `json:"mimeType,omitempty"`

	// ContentBase64 is the base64-encoded payload, optionally wrapped in a
	// data-URL header ("data:<mime>;base64,<payload>").
	ContentBase64 string `json:"contentBase64"`

	// SHA256 is an optional precomputed hex digest of the decoded payload.
	// When present it is verified against the decoded bytes; a mismatch
	// fails the batch.
	SHA256 string `json:"sha256,omitempty"`
}
