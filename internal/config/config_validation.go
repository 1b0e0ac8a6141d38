// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the merged and defaulted [StructuredConfig] satisfies
// all invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	p := cfg.Provider
	switch p.Kind {
	case ProviderSimulated:
		if !validRate(p.FailureRate) || !validRate(p.ConnectFailureRate) {
			return fmt.Errorf("%w: failure rates must be within [0,1]", ErrInvalidProviderConfigs)
		}
		lo, hi := DurationOrZero(p.MinFetchDelay), DurationOrZero(p.MaxFetchDelay)
		if lo < 0 || hi < lo {
			return fmt.Errorf("%w: fetch delay range [%s,%s]", ErrInvalidProviderConfigs, lo, hi)
		}
		if DurationOrZero(p.ConnectDelay) < 0 || DurationOrZero(p.PermissionDelay) < 0 {
			return fmt.Errorf("%w: negative delay", ErrInvalidProviderConfigs)
		}
	case ProviderHTTP:
		if p.HTTPAddress == "" {
			return fmt.Errorf("%w: http provider requires an address", ErrInvalidProviderConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidProviderConfigs, p.Kind)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.HistoryLimit <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func validRate(r *float64) bool {
	return r != nil && *r >= 0 && *r <= 1
}
