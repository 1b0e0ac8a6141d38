// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"

	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/service"
)

// syncWorker owns the sync controller lifetime inside the worker group.
type syncWorker struct {
	sync   service.SyncService
	logger *logger.Logger
}

// NewSyncWorker returns a Worker that initializes sync, keeps it running
// until ctx is done and then stops its timer.
//
// A refused permission is not a worker failure: the controller stays idle
// with lastError set and the rest of the process keeps serving.
func NewSyncWorker(sync service.SyncService, logger *logger.Logger) Worker {
	return &syncWorker{sync: sync, logger: logger}
}

func (w *syncWorker) Run(ctx context.Context) error {
	defer w.sync.Stop()

	if err := w.sync.Initialize(ctx); err != nil {
		if !errors.Is(err, service.ErrPermissionDenied) {
			return err
		}
		w.logger.Warn().Err(err).Msg("sync controller idle: health data permission denied")
	}

	<-ctx.Done()
	w.logger.Info().Msg("sync worker stopping")
	return nil
}
