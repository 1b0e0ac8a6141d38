// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from APP_*, PROVIDER_*, STORAGE_DB_*, SERVER_* and
// WORKERS_* variables. Unset variables leave fields zero (or nil for the
// optional rates and delays) so that later sources and defaults apply.
func parseEnv(cfg *StructuredConfig) error {
	parsed, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnvConfigs, err)
	}

	*cfg = parsed
	return nil
}
