package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/wear-health-sync/internal/app"
	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/models"
)

// SyncController owns the sync state and runs fetch-and-persist cycles.
//
// At most one cycle is in flight at any time. Triggers that arrive while a
// cycle is running (timer, manual, foreground) are dropped, not queued.
// Readers only ever see copies of the state through [SyncController.Snapshot].
type SyncController struct {
	provider DataProvider
	store    RecordStore
	metrics  SyncMetrics
	job      SyncJob

	interval     time.Duration
	historyLimit int
	now          func() time.Time

	// isSyncing is the cycle guard and the only source of the snapshot's
	// IsSyncing; initialized is the one-time setup guard.
	isSyncing   atomic.Bool
	initialized atomic.Bool

	mu           sync.RWMutex
	latest       *models.HealthRecord
	history      []models.HealthRecord
	lastError    string
	lastSyncTime *time.Time
	appState     models.AppState

	logger *logger.Logger
}

// SyncControllerOption customises a [SyncController].
type SyncControllerOption func(*SyncController)

// WithMetrics attaches a metrics sink.
func WithMetrics(m SyncMetrics) SyncControllerOption {
	return func(c *SyncController) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock replaces the clock used for lastSyncTime and durations.
func WithClock(now func() time.Time) SyncControllerOption {
	return func(c *SyncController) {
		c.now = now
	}
}

// WithSyncJob replaces the recurring timer.
func WithSyncJob(job SyncJob) SyncControllerOption {
	return func(c *SyncController) {
		c.job = job
	}
}

// NewSyncController wires a controller around provider and store. Zero
// values in cfg fall back to a 5 minute interval and a history of 20.
func NewSyncController(provider DataProvider, store RecordStore, cfg config.Workers, logger *logger.Logger, opts ...SyncControllerOption) *SyncController {
	c := &SyncController{
		provider:     provider,
		store:        store,
		metrics:      nopMetrics{},
		interval:     cfg.SyncInterval,
		historyLimit: cfg.HistoryLimit,
		now:          time.Now,
		appState:     models.AppStateActive,
		history:      []models.HealthRecord{},
		logger:       logger,
	}
	if c.interval <= 0 {
		c.interval = config.DefaultSyncInterval
	}
	if c.historyLimit <= 0 {
		c.historyLimit = config.DefaultHistoryLimit
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.job == nil {
		c.job = NewSyncJob(func(ctx context.Context) {
			_, _ = c.SyncOnce(ctx)
		})
	}

	logger.Debug().
		Dur("interval", c.interval).
		Int("history_limit", c.historyLimit).
		Msg("creating sync controller")

	return c
}

// Initialize performs one-time setup: permission request, history load, an
// immediate cycle and the recurring timer. Calls after the first are no-ops.
//
// A denied (or failed) permission request sets lastError, schedules nothing
// and returns [ErrPermissionDenied]. A failing first cycle does not make
// Initialize fail, its error is reported through lastError.
func (c *SyncController) Initialize(ctx context.Context) error {
	log := logger.FromContextOr(ctx, c.logger)

	// claimed before the permission request so concurrent callers back off
	if !c.initialized.CompareAndSwap(false, true) {
		log.Debug().Str("func", "*SyncController.Initialize").Msg("already initialized")
		return nil
	}

	granted, err := c.provider.RequestPermission(ctx)
	if err != nil || !granted {
		c.setLastError(app.MsgPermissionDenied)
		if err != nil {
			log.Err(err).Str("func", "*SyncController.Initialize").Msg("permission request failed")
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		}
		log.Warn().Str("func", "*SyncController.Initialize").Msg("health data permission denied")
		return ErrPermissionDenied
	}

	c.reloadHistory(ctx)

	if _, err := c.runCycle(ctx, models.TriggerInitial); err != nil {
		log.Warn().Err(err).Str("func", "*SyncController.Initialize").Msg("initial sync did not succeed")
	}

	c.job.Start(ctx, c.interval)
	log.Info().Dur("interval", c.interval).Msg("sync controller initialized")

	return nil
}

// SyncOnce runs one scheduled cycle. It is what the recurring timer calls.
func (c *SyncController) SyncOnce(ctx context.Context) (models.SyncOutcome, error) {
	return c.runCycle(ctx, models.TriggerTimer)
}

// TriggerManual runs one cycle on behalf of a user action and returns its
// outcome so the caller can show immediate feedback. A dropped trigger
// returns [models.OutcomeDropped] and [ErrAlreadySyncing].
func (c *SyncController) TriggerManual(ctx context.Context) (models.SyncOutcome, error) {
	return c.runCycle(ctx, models.TriggerManual)
}

// OnAppForegrounded runs one cycle for a background-to-active transition.
// Failures surface through lastError only.
func (c *SyncController) OnAppForegrounded(ctx context.Context) {
	_, _ = c.runCycle(ctx, models.TriggerForeground)
}

// AppStateChanged records the host lifecycle state and calls
// OnAppForegrounded on every background|inactive to active edge. Repeated
// active notifications trigger nothing. Returns whether a cycle was run.
func (c *SyncController) AppStateChanged(ctx context.Context, next models.AppState) bool {
	c.mu.Lock()
	prev := c.appState
	c.appState = next
	c.mu.Unlock()

	if prev.IsActive() || !next.IsActive() {
		return false
	}

	logger.FromContextOr(ctx, c.logger).Debug().
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("app returned to foreground")

	c.OnAppForegrounded(ctx)
	return true
}

// ClearError clears lastError and nothing else.
func (c *SyncController) ClearError() {
	c.setLastError("")
}

// Snapshot returns a copy of the current state.
func (c *SyncController) Snapshot() models.SyncSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := models.SyncSnapshot{
		History:   slices.Clone(c.history),
		IsSyncing: c.isSyncing.Load(),
		LastError: c.lastError,
	}
	if c.latest != nil {
		latest := *c.latest
		snap.Latest = &latest
	}
	if c.lastSyncTime != nil {
		t := *c.lastSyncTime
		snap.LastSyncTime = &t
	}
	if snap.History == nil {
		snap.History = []models.HealthRecord{}
	}

	return snap
}

// Stop cancels the recurring timer and waits for its goroutine. An
// in-flight cycle is allowed to finish.
func (c *SyncController) Stop() {
	c.job.Stop()
	c.logger.Debug().Msg("sync controller stopped")
}

func (c *SyncController) runCycle(ctx context.Context, trigger models.TriggerSource) (models.SyncOutcome, error) {
	log := logger.FromContextOr(ctx, c.logger)

	if !c.isSyncing.CompareAndSwap(false, true) {
		log.Debug().Str("trigger", string(trigger)).Msg("sync already in progress, trigger dropped")
		c.metrics.TriggerDropped(trigger)
		return models.OutcomeDropped, ErrAlreadySyncing
	}
	defer c.isSyncing.Store(false)

	// once started, a cycle runs to completion regardless of the caller
	ctx = context.WithoutCancel(ctx)
	started := c.now()

	c.setLastError("")

	log.Debug().Str("trigger", string(trigger)).Msg("sync cycle started")

	outcome, err := c.cycle(ctx)

	if err != nil {
		c.setLastError(userMessage(outcome))
	}

	took := c.now().Sub(started)
	c.metrics.ObserveCycle(trigger, outcome, took)

	event := log.Info()
	if outcome.Failed() {
		event = log.Warn().Err(err)
	}
	event.
		Str("trigger", string(trigger)).
		Str("outcome", string(outcome)).
		Dur("duration", took).
		Msg("sync cycle finished")

	return outcome, err
}

func (c *SyncController) cycle(ctx context.Context) (models.SyncOutcome, error) {
	connected, err := c.provider.Connect(ctx)
	if err != nil {
		return models.OutcomeConnectionFailed, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if !connected {
		return models.OutcomeConnectionFailed, fmt.Errorf("%w: %w", ErrConnection, errDeviceNotConnected)
	}

	rec, err := c.provider.Fetch(ctx)
	if err != nil {
		return models.OutcomeFetchFailed, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	// latest reflects the read even if the write below fails
	c.mu.Lock()
	c.latest = &rec
	c.mu.Unlock()

	if err := c.store.Save(ctx, rec); err != nil {
		return models.OutcomePersistFailed, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	syncedAt := c.now()
	c.mu.Lock()
	c.lastSyncTime = &syncedAt
	c.mu.Unlock()

	c.reloadHistory(ctx)

	return models.OutcomeSuccess, nil
}

// reloadHistory replaces the cached history with the newest records from
// the store. Failures are logged and leave the cache untouched.
func (c *SyncController) reloadHistory(ctx context.Context) {
	records, err := c.store.QueryRecent(ctx, c.historyLimit)
	if err != nil {
		logger.FromContextOr(ctx, c.logger).Err(fmt.Errorf("%w: %w", ErrQuery, err)).
			Str("func", "*SyncController.reloadHistory").
			Msg("failed to load history")
		return
	}

	history := slices.Clone(records)
	slices.SortStableFunc(history, func(a, b models.HealthRecord) int {
		switch {
		case a.NewerThan(b):
			return -1
		case b.NewerThan(a):
			return 1
		}
		return 0
	})
	if len(history) > c.historyLimit {
		history = history[:c.historyLimit]
	}

	c.mu.Lock()
	c.history = history
	c.mu.Unlock()
}

func (c *SyncController) setLastError(msg string) {
	c.mu.Lock()
	c.lastError = msg
	c.mu.Unlock()
}

func userMessage(outcome models.SyncOutcome) string {
	switch outcome {
	case models.OutcomeConnectionFailed:
		return app.MsgConnectionError
	case models.OutcomeFetchFailed:
		return app.MsgFetchError
	case models.OutcomePersistFailed:
		return app.MsgPersistError
	default:
		return ""
	}
}

// UserMessage maps a controller error to the message shown to users.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadySyncing):
		return app.MsgAlreadySyncing
	case errors.Is(err, ErrPermissionDenied):
		return app.MsgPermissionDenied
	case errors.Is(err, ErrConnection):
		return app.MsgConnectionError
	case errors.Is(err, ErrFetch):
		return app.MsgFetchError
	case errors.Is(err, ErrPersist):
		return app.MsgPersistError
	default:
		return app.MsgInternalServerError
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveCycle(models.TriggerSource, models.SyncOutcome, time.Duration) {}
func (nopMetrics) TriggerDropped(models.TriggerSource)                                  {}

var _ SyncService = (*SyncController)(nil)
