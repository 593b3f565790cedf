package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrNoChannelsConfigured indicates that the JSON config file declares
	// no backend channels at all.
	ErrNoChannelsConfigured = errors.New("no channels configured")
	// ErrInvalidChannelConfigured indicates a channel entry missing its
	// name, credential, or repository.
	ErrInvalidChannelConfigured = errors.New("invalid channel configuration")
	// ErrInvalidLimitsConfigured indicates contradictory batch limits
	// (a single file allowed to exceed the whole batch budget).
	ErrInvalidLimitsConfigured = errors.New("invalid limits configuration")
	// ErrInvalidModerationConfigs indicates moderation enabled without a
	// classifier URL.
	ErrInvalidModerationConfigs = errors.New("invalid moderation configuration")
	// ErrNoBackendConfigured indicates a missing commit-store base URL.
	ErrNoBackendConfigured = errors.New("no backend base URL configured")
)
