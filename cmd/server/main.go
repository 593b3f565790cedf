package main

import (
	"context"
	"fmt"

	"github.com/adilgabb/commitgate/internal/backend"
	"github.com/adilgabb/commitgate/internal/config"
	handler "github.com/adilgabb/commitgate/internal/handler/http"
	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/moderation"
	"github.com/adilgabb/commitgate/internal/server"
	"github.com/adilgabb/commitgate/internal/service"
	"github.com/adilgabb/commitgate/internal/store"
	"github.com/adilgabb/commitgate/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("commitgate")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Int("channels", len(cfg.Channels.List)).Msg("received configs")

	ctx := context.Background()

	repositories, err := store.NewRepositories(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}

	client := backend.NewHTTPClient(backend.ClientConfig{
		BaseURL:         cfg.Backend.BaseURL,
		PublicBaseURL:   cfg.Backend.PublicBaseURL,
		InternalBaseURL: cfg.Backend.InternalBaseURL,
		Timeout:         cfg.Backend.Timeout,
	})

	var classifier moderation.Classifier
	if cfg.Moderation.Enabled {
		classifier = moderation.NewHTTPClassifier(moderation.ClassifierConfig{
			URL:     cfg.Moderation.URL,
			Timeout: cfg.Moderation.Timeout,
		})
	}

	runner := workers.NewRunner(log)

	services := service.NewServices(cfg, repositories, client, classifier, runner, log)
	handlers := handler.NewHandler(services, cfg, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()

	// drain background moderation tasks before exiting
	runner.Stop()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
