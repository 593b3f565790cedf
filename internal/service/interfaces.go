package service

import (
	"context"

	"github.com/adilgabb/commitgate/models"
)

// UploadService runs the batched commit pipeline for one upload request.
type UploadService interface {
	// Upload validates and budgets the batch, short-circuits idempotent
	// replays, performs exactly one backend transaction, and records every
	// committed file. uploaderIP is the network origin stored on the
	// per-file index records.
	Upload(ctx context.Context, req models.BatchRequest, uploaderIP string) (*models.UploadResponse, error)
}

// RecordService serves the read path over the per-file index records.
type RecordService interface {
	// List returns the records of one channel directory, newest first.
	// An empty channelName resolves the same way an upload without an
	// explicit channel does.
	List(ctx context.Context, channelName, dir string) (*models.ListResponse, error)
}
