package http

import (
	"github.com/adilgabb/commitgate/internal/config"
	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	// bodyLimit bounds the raw upload body. Set above the decoded batch
	// budget to leave room for base64 overhead and JSON framing.
	bodyLimit int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		app:       cfg.App,
		bodyLimit: cfg.Limits.MaxTotalBytes*2 + 1<<20,
		logger:    logger,
	}
}
