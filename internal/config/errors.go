package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidProviderConfigs indicates an unknown provider kind, a rate
	// outside [0,1], negative or inverted delays, or a bridge provider
	// without address.
	ErrInvalidProviderConfigs = errors.New("invalid provider configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates a non-positive sync interval or
	// history limit.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// ErrInvalidEnvConfigs wraps caarlos0/env failures such as an unparsable
// PROVIDER_FAILURE_RATE or WORKERS_SYNC_INTERVAL.
var ErrInvalidEnvConfigs = errors.New("invalid environment configuration")
