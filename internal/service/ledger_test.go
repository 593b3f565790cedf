package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilgabb/commitgate/internal/store"
	"github.com/adilgabb/commitgate/models"
)

func TestLedgerRoundTrip(t *testing.T) {
	kv := store.NewMemoryKV()
	ledger := NewLedger(kv, zerolog.Nop())
	ctx := context.Background()

	resp := &models.UploadResponse{
		Success:     true,
		RequestID:   "req-1",
		CommitID:    "c-42",
		ChannelName: "alpha",
		Repo:        "org/alpha",
		Files: []models.UploadedFile{
			{Name: "a.txt", Src: "https://cdn/org/alpha/a.txt", FullID: "alpha:a.txt"},
		},
	}
	ledger.Store(ctx, "req-1", resp)

	got, err := ledger.Lookup(ctx, "req-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Replayed)
	assert.Equal(t, "c-42", got.CommitID)
	assert.Equal(t, resp.Files, got.Files)
}

func TestLedgerMiss(t *testing.T) {
	ledger := NewLedger(store.NewMemoryKV(), zerolog.Nop())

	got, err := ledger.Lookup(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLedgerEmptyRequestID(t *testing.T) {
	kv := store.NewMemoryKV()
	ledger := NewLedger(kv, zerolog.Nop())
	ctx := context.Background()

	ledger.Store(ctx, "", &models.UploadResponse{Success: true})

	got, err := ledger.Lookup(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, got, "requests without an identifier are never replayed")
}

func TestLedgerCorruptEntryTreatedAsMiss(t *testing.T) {
	kv := store.NewMemoryKV()
	ctx := context.Background()
	key := store.Key(store.NamespaceIdempotency, "req-bad")
	require.NoError(t, kv.Put(ctx, key, "{not json"))

	ledger := NewLedger(kv, zerolog.Nop())

	got, err := ledger.Lookup(ctx, "req-bad")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = kv.Get(ctx, key)
	assert.ErrorIs(t, err, store.ErrKeyNotFound, "corrupt entry should be deleted")
}
