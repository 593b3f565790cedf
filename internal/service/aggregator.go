// Copyright 2026 Adil Gabbasov
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/adilgabb/commitgate/internal/backend"
	"github.com/adilgabb/commitgate/models"
)

// CommitAggregator turns a prepared batch into exactly one backend
// transaction. Files at or below the embed threshold travel inside the
// transaction body; larger ones are staged by content address first and
// referenced by object identifier.
type CommitAggregator struct {
	client backend.Client

	// embedThreshold is the largest decoded size still embedded directly.
	embedThreshold int64

	// stagingConcurrency bounds parallel staging uploads.
	stagingConcurrency int

	log zerolog.Logger
}

func NewCommitAggregator(client backend.Client, embedThreshold int64, stagingConcurrency int, log zerolog.Logger) *CommitAggregator {
	if stagingConcurrency < 1 {
		stagingConcurrency = 1
	}

	return &CommitAggregator{
		client:             client,
		embedThreshold:     embedThreshold,
		stagingConcurrency: stagingConcurrency,
		log:                log,
	}
}

// Commit stages what must be staged, then submits the single transaction
// covering every file. On success every file is marked FileCommitted.
//
// Any failure after at least one file reached FileStaged is wrapped in a
// PartialCommitError listing the staged paths; the underlying backend error
// stays reachable through Unwrap. The transaction is never retried here.
func (a *CommitAggregator) Commit(ctx context.Context, ch models.Channel, message string, files []models.PreparedFile) (models.CommitResult, error) {
	if err := a.verifyDigests(files); err != nil {
		return models.CommitResult{}, err
	}

	if err := a.stage(ctx, ch, files); err != nil {
		return models.CommitResult{}, a.wrapStaged(files, err)
	}

	ops := make([]backend.Operation, len(files))
	for i := range files {
		op := backend.Operation{
			Path: files[i].Path,
			Size: files[i].Size,
		}
		if files[i].OID != "" {
			op.OID = files[i].OID
		} else {
			op.ContentBase64 = base64.StdEncoding.EncodeToString(files[i].Data)
		}
		ops[i] = op
	}

	result, err := a.client.SubmitCommit(ctx, ch, message, ops)
	if err != nil {
		return models.CommitResult{}, a.wrapStaged(files, err)
	}

	for i := range files {
		files[i].State = models.FileCommitted
	}
	if len(result.Paths) == 0 {
		result.Paths = make([]string, len(files))
		for i := range files {
			result.Paths[i] = files[i].Path
		}
	}

	a.log.Info().
		Str("func", "CommitAggregator.Commit").
		Str("channel", ch.Name).
		Str("commitID", result.CommitID).
		Int("files", len(files)).
		Msg("transaction committed")

	return result, nil
}

// verifyDigests fills in missing digests and rejects caller-supplied ones
// that do not match the decoded bytes. A mismatch is a pre-commit validation
// failure: nothing has touched the backend yet.
func (a *CommitAggregator) verifyDigests(files []models.PreparedFile) error {
	for i := range files {
		sum := sha256.Sum256(files[i].Data)
		digest := hex.EncodeToString(sum[:])
		if files[i].SHA256 != "" && files[i].SHA256 != digest {
			return fmt.Errorf("%w: file %q: sha256 mismatch", ErrInvalidRequest, files[i].Path)
		}
		files[i].SHA256 = digest
	}
	return nil
}

// stage uploads every over-threshold file, bounded by stagingConcurrency.
// Successful uploads mark their file FileStaged even when a sibling fails,
// so the caller can report exactly which bytes are already durable.
func (a *CommitAggregator) stage(ctx context.Context, ch models.Channel, files []models.PreparedFile) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.stagingConcurrency)

	for i := range files {
		if files[i].Size <= a.embedThreshold {
			continue
		}

		f := &files[i]
		g.Go(func() error {
			oid, err := a.client.StageObject(ctx, ch, f.SHA256, f.Data)
			if err != nil {
				return fmt.Errorf("staging %q: %w", f.Path, err)
			}
			f.OID = oid
			f.State = models.FileStaged
			return nil
		})
	}

	return g.Wait()
}

// wrapStaged wraps err in a PartialCommitError when any file's bytes are
// already durable; with nothing staged the error passes through unchanged.
func (a *CommitAggregator) wrapStaged(files []models.PreparedFile, err error) error {
	var staged []string
	for i := range files {
		if files[i].State == models.FileStaged {
			staged = append(staged, files[i].Path)
		}
	}
	if len(staged) == 0 {
		return err
	}
	return &PartialCommitError{Staged: staged, Err: err}
}
