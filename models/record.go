package models

import "time"

// LabelUnclassified is the sentinel moderation label every record starts
// with. It is replaced at most once, when moderation enrichment completes.
const LabelUnclassified = "unclassified"

// IndexRecord is the per-file metadata record persisted right after the
// aggregated commit succeeds. It makes the file listable and resolvable
// immediately, before any enrichment has run.
type IndexRecord struct {
	// Path is the full target path within the channel. Together with
	// Channel it uniquely identifies the record.
	Path string `json:"path"`

	// Name is the file name component of Path.
	Name string `json:"name"`

	// Dir is the directory component of Path ("" for root).
	Dir string `json:"dir"`

	// MimeType is the normalized content type.
	MimeType string `json:"mimeType"`

	// Size is the decoded payload size in bytes.
	Size int64 `json:"size"`

	// UploaderIP is the network origin of the upload request.
	UploaderIP string `json:"uploaderIp,omitempty"`

	// Label is the moderation label. Starts as [LabelUnclassified] and is
	// overwritten at most once by the moderation worker.
	Label string `json:"label"`

	// Channel is the name of the channel the file was committed through.
	Channel string `json:"channel"`

	// Repo is the backend repository the file lives in.
	Repo string `json:"repo"`

	// URL is the backend access URL for the file.
	URL string `json:"url"`

	// Width and Height hold sniffed image dimensions, zero when unknown.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// CreatedAt is the record creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}
