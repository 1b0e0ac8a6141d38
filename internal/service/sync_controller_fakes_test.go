package service

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/wear-health-sync/models"
)

// fakeProvider is a scriptable DataProvider. When gate is set, Fetch signals
// entered and then blocks until gate is closed.
type fakeProvider struct {
	mu            sync.Mutex
	permission    bool
	permissionErr error
	connected     bool
	connectErr    error
	record        models.HealthRecord
	fetchErr      error
	gate          chan struct{}
	entered       chan struct{}

	permissionCalls atomic.Int32
	connectCalls    atomic.Int32
	fetchCalls      atomic.Int32

	inFlight    atomic.Int32
	maxInFlight atomic.Int32

	connectCtxErr atomic.Value
}

func newFakeProvider(rec models.HealthRecord) *fakeProvider {
	return &fakeProvider{permission: true, connected: true, record: rec}
}

func (p *fakeProvider) RequestPermission(context.Context) (bool, error) {
	p.permissionCalls.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission, p.permissionErr
}

func (p *fakeProvider) Connect(ctx context.Context) (bool, error) {
	p.connectCalls.Add(1)
	if err := ctx.Err(); err != nil {
		p.connectCtxErr.Store(err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected, p.connectErr
}

func (p *fakeProvider) Fetch(context.Context) (models.HealthRecord, error) {
	p.fetchCalls.Add(1)

	n := p.inFlight.Add(1)
	defer p.inFlight.Add(-1)
	for {
		m := p.maxInFlight.Load()
		if n <= m || p.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	p.mu.Lock()
	gate, entered := p.gate, p.entered
	rec, err := p.record, p.fetchErr
	p.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		<-gate
	} else {
		time.Sleep(time.Millisecond)
	}
	return rec, err
}

func (p *fakeProvider) set(fn func(p *fakeProvider)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p)
}

// block makes the next Fetch calls wait. It returns a channel that receives
// once per Fetch that reached the gate, and a release func.
func (p *fakeProvider) block() (<-chan struct{}, func()) {
	gate := make(chan struct{})
	entered := make(chan struct{}, 16)
	p.set(func(p *fakeProvider) {
		p.gate = gate
		p.entered = entered
	})

	var once sync.Once
	return entered, func() {
		once.Do(func() {
			p.set(func(p *fakeProvider) {
				p.gate = nil
				p.entered = nil
			})
			close(gate)
		})
	}
}

// fakeStore keeps saved records and returns them in insertion order,
// which is deliberately not sorted.
type fakeStore struct {
	mu       sync.Mutex
	records  []models.HealthRecord
	saveErr  error
	queryErr error

	// overfetch makes QueryRecent ignore limit.
	overfetch bool

	saveCalls  atomic.Int32
	queryCalls atomic.Int32
}

func (s *fakeStore) Save(_ context.Context, rec models.HealthRecord) error {
	s.saveCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *fakeStore) QueryRecent(_ context.Context, limit int) ([]models.HealthRecord, error) {
	s.queryCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	out := slices.Clone(s.records)
	if !s.overfetch && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *fakeStore) set(fn func(s *fakeStore)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// recordingMetrics captures metric observations.
type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []models.SyncOutcome
	triggers []models.TriggerSource
	dropped  []models.TriggerSource
}

func (m *recordingMetrics) ObserveCycle(trigger models.TriggerSource, outcome models.SyncOutcome, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
	m.triggers = append(m.triggers, trigger)
}

func (m *recordingMetrics) TriggerDropped(trigger models.TriggerSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped = append(m.dropped, trigger)
}

// idleJob is a SyncJob that never ticks.
type idleJob struct {
	starts atomic.Int32
	stops  atomic.Int32
	last   atomic.Int64
}

func (j *idleJob) Start(_ context.Context, interval time.Duration) {
	j.starts.Add(1)
	j.last.Store(int64(interval))
}

func (j *idleJob) Stop() {
	j.stops.Add(1)
}
