// Copyright 2026 Adil Gabbasov
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adilgabb/commitgate/internal/store"
	"github.com/adilgabb/commitgate/models"
)

// Ledger is the idempotency ledger over a key-value store. Only successful
// responses are recorded: a failed batch leaves no entry, so the same
// request identifier may be retried until it succeeds once.
//
// Writes are best-effort. A lost ledger write costs one duplicated commit
// on replay, never a lost one.
type Ledger struct {
	kv  store.KVStore
	log zerolog.Logger
}

func NewLedger(kv store.KVStore, log zerolog.Logger) *Ledger {
	return &Ledger{kv: kv, log: log}
}

// Lookup returns the recorded response for requestID, or nil on a miss.
// Corrupt entries are deleted and treated as a miss. The returned response
// has Replayed set.
func (l *Ledger) Lookup(ctx context.Context, requestID string) (*models.UploadResponse, error) {
	if requestID == "" {
		return nil, nil
	}

	key := store.Key(store.NamespaceIdempotency, requestID)
	raw, err := l.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var resp models.UploadResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		l.log.Warn().Err(err).Str("func", "Ledger.Lookup").Str("requestID", requestID).Msg("dropping corrupt ledger entry")
		if delErr := l.kv.Delete(ctx, key); delErr != nil {
			l.log.Err(delErr).Str("func", "Ledger.Lookup").Msg("failed to delete corrupt ledger entry")
		}
		return nil, nil
	}

	resp.Replayed = true
	return &resp, nil
}

// Store records a successful response under requestID. No-op when the
// request carried no identifier.
func (l *Ledger) Store(ctx context.Context, requestID string, resp *models.UploadResponse) {
	if requestID == "" {
		return
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		l.log.Err(err).Str("func", "Ledger.Store").Msg("failed to marshal ledger entry")
		return
	}

	if err := l.kv.Put(ctx, store.Key(store.NamespaceIdempotency, requestID), string(raw)); err != nil {
		l.log.Err(err).Str("func", "Ledger.Store").Str("requestID", requestID).Msg("failed to record ledger entry")
	}
}
