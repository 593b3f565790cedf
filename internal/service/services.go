package service

import (
	"github.com/adilgabb/commitgate/internal/backend"
	"github.com/adilgabb/commitgate/internal/batch"
	"github.com/adilgabb/commitgate/internal/config"
	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/moderation"
	"github.com/adilgabb/commitgate/internal/store"
	"github.com/adilgabb/commitgate/internal/workers"
)

// Services aggregates every application service behind its interface.
type Services struct {
	Upload  UploadService
	Records RecordService
}

// NewServices assembles the pipeline from configuration and the shared
// infrastructure collaborators. classifier may be nil when moderation is
// disabled.
func NewServices(cfg *config.StructuredConfig, repos *store.Repositories, client backend.Client, classifier moderation.Classifier, runner *workers.Runner, log *logger.Logger) *Services {
	limits := batch.Limits{
		MaxFiles:      cfg.Limits.MaxFiles,
		MaxFileBytes:  cfg.Limits.MaxFileBytes,
		MaxTotalBytes: cfg.Limits.MaxTotalBytes,
	}

	selector := NewChannelSelector(cfg.Channels.List, cfg.Channels.LoadBalancing, nil)
	ledger := NewLedger(repos.KV, log.Logger)
	aggregator := NewCommitAggregator(client, cfg.Limits.EmbedThresholdBytes, cfg.Backend.StagingConcurrency, log.Logger)
	recorder := NewRecorder(repos.Records, repos.KV, client, classifier, runner, log.Logger)

	return &Services{
		Upload:  NewBatchUploadService(limits, ledger, selector, aggregator, recorder, log.Logger),
		Records: NewFileRecordService(repos.Records, selector),
	}
}
