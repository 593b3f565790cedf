// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Adil Gabbasov

package config

import "time"

// Defaults applied by the config builder after all sources are merged.
const (
	DefaultMaxFiles            = 20
	DefaultMaxFileBytes        = 25 << 20  // 25 MiB
	DefaultMaxTotalBytes       = 100 << 20 // 100 MiB
	DefaultEmbedThresholdBytes = 1 << 20   // 1 MiB

	defaultHTTPAddress        = ":8080"
	defaultRequestTimeout     = 60 * time.Second
	defaultBackendTimeout     = 30 * time.Second
	defaultModerationTimeout  = 10 * time.Second
	defaultStagingConcurrency = 4
	defaultDSN                = "commitgate.db"
)

// applyDefaults fills every zero-valued field that has a sensible default.
// Runs after merging, so explicit values from any source win.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Limits.MaxFiles == 0 {
		cfg.Limits.MaxFiles = DefaultMaxFiles
	}
	if cfg.Limits.MaxFileBytes == 0 {
		cfg.Limits.MaxFileBytes = DefaultMaxFileBytes
	}
	if cfg.Limits.MaxTotalBytes == 0 {
		cfg.Limits.MaxTotalBytes = DefaultMaxTotalBytes
	}
	if cfg.Limits.EmbedThresholdBytes == 0 {
		cfg.Limits.EmbedThresholdBytes = DefaultEmbedThresholdBytes
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = defaultBackendTimeout
	}
	if cfg.Backend.StagingConcurrency == 0 {
		cfg.Backend.StagingConcurrency = defaultStagingConcurrency
	}
	if cfg.Moderation.Timeout == 0 {
		cfg.Moderation.Timeout = defaultModerationTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDSN
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.Channels.List) == 0 {
		return ErrNoChannelsConfigured
	}
	for _, ch := range cfg.Channels.List {
		if !ch.Usable() {
			return ErrInvalidChannelConfigured
		}
	}

	if cfg.Backend.BaseURL == "" {
		return ErrNoBackendConfigured
	}

	if cfg.Limits.MaxFileBytes > cfg.Limits.MaxTotalBytes {
		return ErrInvalidLimitsConfigured
	}

	if cfg.Moderation.Enabled && cfg.Moderation.URL == "" {
		return ErrInvalidModerationConfigs
	}

	return nil
}
