// Package backend contains the client for the remote commit-oriented content
// store: staging of large objects, submission of a single multi-operation
// transaction, and public URL derivation.
package backend

import (
	"context"

	"github.com/adilgabb/commitgate/models"
)

// Operation is one file write inside a transaction. Exactly one of Content
// and OID is set: small payloads travel embedded in the transaction body,
// large ones are staged first and referenced by object identifier.
type Operation struct {
	// Path is the full target path inside the repository.
	Path string `json:"path"`

	// ContentBase64 is the embedded payload. Empty for staged objects.
	ContentBase64 string `json:"contentBase64,omitempty"`

	// OID is the content address of a previously staged object.
	OID string `json:"oid,omitempty"`

	// Size is the decoded payload size in bytes.
	Size int64 `json:"size"`
}

// Client is the only surface the commit aggregator depends on.
//
// StageObject uploads the bytes of one large object ahead of the transaction
// that will reference them. Staging calls do not consume commit quota.
//
// SubmitCommit performs the single quota-consuming transaction registering
// every operation atomically. Implementations must not retry a failed
// submission: side effects may already be applied, and a retry could
// double-charge quota or create duplicate references.
//
// PublicURL derives the public access URL for a committed path.
type Client interface {
	StageObject(ctx context.Context, ch models.Channel, sha256Hex string, data []byte) (oid string, err error)
	SubmitCommit(ctx context.Context, ch models.Channel, message string, ops []Operation) (models.CommitResult, error)
	PublicURL(ch models.Channel, path string) string
}
