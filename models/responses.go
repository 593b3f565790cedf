package models

// UploadedFile is one entry of a successful upload response.
type UploadedFile struct {
	// Name is the canonical file name.
	Name string `json:"name"`

	// Src is the public access URL of the committed file.
	Src string `json:"src"`

	// FullID is the channel-qualified identifier, "<channel>:<path>".
	FullID string `json:"fullId"`
}

// UploadResponse is the success payload of the upload endpoint. It is also
// the value stored verbatim in the idempotency ledger, so replays return the
// exact files and commit identifier of the first completion.
type UploadResponse struct {
	Success     bool           `json:"success"`
	RequestID   string         `json:"requestId,omitempty"`
	CommitID    string         `json:"commitId"`
	ChannelName string         `json:"channelName"`
	Repo        string         `json:"repo"`
	Files       []UploadedFile `json:"files"`

	// Replayed marks responses served from the idempotency ledger without
	// a new backend transaction.
	Replayed bool `json:"replayed,omitempty"`
}

// ErrorResponse is the failure payload of the upload endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`

	// RetryAfter carries the backend's raw retry-after hint on rate-limit
	// failures, in seconds.
	RetryAfter int `json:"retryAfter,omitempty"`

	// StagedFiles lists the target paths whose bytes are already durably
	// staged when the transaction itself failed. These bytes are not
	// reachable by any public path until a transaction references them.
	StagedFiles []string `json:"stagedFiles,omitempty"`
}

// ListResponse is the payload of the directory listing endpoint.
type ListResponse struct {
	Success bool          `json:"success"`
	Dir     string        `json:"dir"`
	Files   []IndexRecord `json:"files"`
}
