package store

import (
	"context"

	"github.com/adilgabb/commitgate/models"
)

// KVStore is the string key-value surface used by the idempotency ledger.
// Get returns ErrKeyNotFound for missing keys.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// RecordRepository persists the per-file index records written after a
// successful commit and serves the directory listing read path.
type RecordRepository interface {
	// Save inserts the record, replacing any previous record for the same
	// (channel, path) pair.
	Save(ctx context.Context, record models.IndexRecord) error

	// UpdateLabel overwrites only the moderation label of an existing
	// record. Returns ErrRecordNotFound when no record matches.
	UpdateLabel(ctx context.Context, channel, path, label string) error

	// ListDir returns all records of a channel directory, newest first.
	ListDir(ctx context.Context, channel, dir string) ([]models.IndexRecord, error)
}
