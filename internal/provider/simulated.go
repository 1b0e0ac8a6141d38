package provider

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/models"
)

// Generator baselines for simulated metrics.
const (
	baseHeartRate       = 70
	heartRateVariation  = 15
	minHeartRate        = 50
	maxHeartRate        = 120
	baseScreenTime      = 45
	screenTimeVariation = 90
	baseSleepHours      = 7.5
	sleepVariation      = 1.5
	minSleepHours       = 4
	maxSleepHours       = 12
	baseSteps           = 6000
	stepsVariation      = 8000
)

// SimulatedProvider generates plausible random readings with configurable
// latency and failure probabilities. Safe for concurrent use.
type SimulatedProvider struct {
	cfg config.Provider

	mu  sync.Mutex
	rnd *rand.Rand

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	logger *logger.Logger
}

// SimulatedOption customises a [SimulatedProvider].
type SimulatedOption func(*SimulatedProvider)

// WithRand replaces the random source, e.g. with a seeded one in tests.
func WithRand(r *rand.Rand) SimulatedOption {
	return func(p *SimulatedProvider) {
		p.rnd = r
	}
}

// WithClock replaces the clock used to timestamp records.
func WithClock(now func() time.Time) SimulatedOption {
	return func(p *SimulatedProvider) {
		p.now = now
	}
}

// NewSimulatedProvider builds a simulated provider from cfg. Nil rates and
// delays are treated as zero.
func NewSimulatedProvider(cfg config.Provider, logger *logger.Logger, opts ...SimulatedOption) *SimulatedProvider {
	p := &SimulatedProvider{
		cfg:    cfg,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
		sleep:  sleepContext,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RequestPermission implements [DataProvider].
func (p *SimulatedProvider) RequestPermission(ctx context.Context) (bool, error) {
	if err := p.sleep(ctx, config.DurationOrZero(p.cfg.PermissionDelay)); err != nil {
		return false, err
	}

	granted := !p.cfg.DenyPermission
	p.logger.Debug().Str("func", "*SimulatedProvider.RequestPermission").Bool("granted", granted).Msg("permission requested")
	return granted, nil
}

// Connect implements [DataProvider].
func (p *SimulatedProvider) Connect(ctx context.Context) (bool, error) {
	if err := p.sleep(ctx, config.DurationOrZero(p.cfg.ConnectDelay)); err != nil {
		return false, err
	}

	connected := p.float64() >= rate(p.cfg.ConnectFailureRate)
	if !connected {
		p.logger.Warn().Str("func", "*SimulatedProvider.Connect").Msg("watch is not reachable")
	}
	return connected, nil
}

// Fetch implements [DataProvider].
func (p *SimulatedProvider) Fetch(ctx context.Context) (models.HealthRecord, error) {
	if err := p.sleep(ctx, p.fetchDelay()); err != nil {
		return models.HealthRecord{}, err
	}

	if p.float64() < rate(p.cfg.FailureRate) {
		p.logger.Warn().Str("func", "*SimulatedProvider.Fetch").Msg("simulated read failure")
		return models.HealthRecord{}, fmt.Errorf("%w: failed to read data from the watch", ErrDeviceUnavailable)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return models.HealthRecord{
		HeartRate:         p.heartRate(),
		Steps:             p.steps(),
		SleepHours:        p.sleepHours(),
		ScreenTimeMinutes: p.screenTime(),
		Timestamp:         p.now().UTC(),
	}, nil
}

func (p *SimulatedProvider) fetchDelay() time.Duration {
	lo, hi := config.DurationOrZero(p.cfg.MinFetchDelay), config.DurationOrZero(p.cfg.MaxFetchDelay)
	if hi <= lo {
		return lo
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return lo + time.Duration(p.rnd.Int64N(int64(hi-lo)))
}

func (p *SimulatedProvider) float64() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Float64()
}

// generators below expect p.mu to be held

func (p *SimulatedProvider) heartRate() int {
	variation := p.rnd.Float64()*2*heartRateVariation - heartRateVariation
	return clampInt(int(math.Round(baseHeartRate+variation)), minHeartRate, maxHeartRate)
}

func (p *SimulatedProvider) screenTime() int {
	return int(math.Round(baseScreenTime + p.rnd.Float64()*screenTimeVariation))
}

func (p *SimulatedProvider) sleepHours() float64 {
	variation := p.rnd.Float64()*2*sleepVariation - sleepVariation
	halfHours := math.Round((baseSleepHours + variation) * 2)
	return math.Max(minSleepHours, math.Min(maxSleepHours, halfHours/2))
}

func (p *SimulatedProvider) steps() int {
	return int(math.Round(baseSteps + p.rnd.Float64()*stepsVariation))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func rate(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
