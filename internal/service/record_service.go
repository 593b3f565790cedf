package service

import (
	"context"
	"fmt"

	"github.com/adilgabb/commitgate/internal/batch"
	"github.com/adilgabb/commitgate/internal/store"
	"github.com/adilgabb/commitgate/models"
)

// FileRecordService serves the listing read path over the per-file index
// records.
type FileRecordService struct {
	records  store.RecordRepository
	selector *ChannelSelector
}

func NewFileRecordService(records store.RecordRepository, selector *ChannelSelector) *FileRecordService {
	return &FileRecordService{records: records, selector: selector}
}

// List returns the records of one channel directory, newest first. The dir
// argument is normalized the same way upload folders are, so listing and
// uploading agree on what a directory is.
func (s *FileRecordService) List(ctx context.Context, channelName, dir string) (*models.ListResponse, error) {
	ch, err := s.selector.Resolve(channelName)
	if err != nil {
		return nil, err
	}

	normalized, err := batch.NormalizeFolder(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	records, err := s.records.ListDir(ctx, ch.Name, normalized)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.IndexRecord{}
	}

	return &models.ListResponse{
		Success: true,
		Dir:     normalized,
		Files:   records,
	}, nil
}
