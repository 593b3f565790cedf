// Copyright 2026 Adil Gabbasov
// SPDX-License-Identifier: Apache-2.0

// Package service implements the batched commit pipeline: validation and
// budgeting, idempotent replay, channel selection, the single aggregated
// backend transaction, and post-commit recording.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adilgabb/commitgate/internal/batch"
	"github.com/adilgabb/commitgate/models"
)

// maxRequestIDLength bounds the caller-supplied idempotency key.
const maxRequestIDLength = 128

// BatchUploadService is the default UploadService: it wires the batch
// budgeter, idempotency ledger, channel selector, commit aggregator, and
// post-commit recorder into one pipeline.
type BatchUploadService struct {
	limits     batch.Limits
	ledger     *Ledger
	selector   *ChannelSelector
	aggregator *CommitAggregator
	recorder   *Recorder
	log        zerolog.Logger
}

func NewBatchUploadService(limits batch.Limits, ledger *Ledger, selector *ChannelSelector, aggregator *CommitAggregator, recorder *Recorder, log zerolog.Logger) *BatchUploadService {
	return &BatchUploadService{
		limits:     limits,
		ledger:     ledger,
		selector:   selector,
		aggregator: aggregator,
		recorder:   recorder,
		log:        log,
	}
}

// Upload runs the full pipeline for one batch.
//
// Validation and budgeting run before the ledger lookup, so a malformed
// resubmission is rejected rather than replayed. The aggregator performs at
// most one backend transaction per call; a ledger hit performs zero.
func (s *BatchUploadService) Upload(ctx context.Context, req models.BatchRequest, uploaderIP string) (*models.UploadResponse, error) {
	if len(req.RequestID) > maxRequestIDLength {
		return nil, fmt.Errorf("%w: requestId exceeds %d characters", ErrInvalidRequest, maxRequestIDLength)
	}

	files, err := batch.Prepare(req.UploadFolder, req.Files, s.limits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if replay, err := s.ledger.Lookup(ctx, req.RequestID); err != nil {
		return nil, err
	} else if replay != nil {
		s.log.Info().
			Str("func", "BatchUploadService.Upload").
			Str("requestID", req.RequestID).
			Msg("replaying recorded response")
		return replay, nil
	}

	ch, err := s.selector.Resolve(req.ChannelName)
	if err != nil {
		return nil, err
	}

	message := req.CommitMessage
	if message == "" {
		message = fmt.Sprintf("Upload %d file(s)", len(files))
	}

	result, err := s.aggregator.Commit(ctx, ch, message, files)
	if err != nil {
		return nil, err
	}

	uploaded := make([]models.UploadedFile, 0, len(files))
	for _, f := range files {
		uploaded = append(uploaded, s.recorder.Record(ctx, ch, f, uploaderIP))
	}

	resp := &models.UploadResponse{
		Success:     true,
		RequestID:   req.RequestID,
		CommitID:    result.CommitID,
		ChannelName: ch.Name,
		Repo:        ch.Repo,
		Files:       uploaded,
	}
	s.ledger.Store(ctx, req.RequestID, resp)

	return resp, nil
}
