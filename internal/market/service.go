package market

import (
	"context"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"brand-voice-studio/internal/apperr"
	"brand-voice-studio/internal/logging"
)

const (
	// DefaultCacheTTL is how long a successful snapshot is served without refetching
	DefaultCacheTTL = time.Hour
	breakerDelay    = time.Minute
)

// Fetch outcomes reported to the FetchRecorder
const (
	OutcomeHit      = "cache_hit"
	OutcomeFetched  = "fetched"
	OutcomeStale    = "stale"
	OutcomeFallback = "fallback"
)

// Fetcher downloads the raw stats page
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
	URL() string
}

// FetchRecorder observes how each snapshot request was served
type FetchRecorder interface {
	RecordFetch(outcome string)
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithCacheTTL sets the snapshot lifetime
func WithCacheTTL(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithClock sets the time source
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) ServiceOption {
	return func(s *Service) {
		s.log = logging.Component(logger, "market")
	}
}

// WithFetchRecorder sets a fetch outcome observer
func WithFetchRecorder(r FetchRecorder) ServiceOption {
	return func(s *Service) {
		s.recorder = r
	}
}

// Service serves market snapshots from an hour-long cache. Failed fetches
// fall back to the last good snapshot, then to fixed defaults, so callers
// always get data.
type Service struct {
	fetcher  Fetcher
	ttl      time.Duration
	now      func() time.Time
	log      *logrus.Entry
	recorder FetchRecorder
	breaker  circuitbreaker.CircuitBreaker[*Snapshot]
	group    singleflight.Group

	mu       sync.RWMutex
	cached   *Snapshot
	cachedAt time.Time
}

// NewService creates a service reading from fetcher
func NewService(fetcher Fetcher, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher: fetcher,
		ttl:     DefaultCacheTTL,
		now:     time.Now,
		log:     logging.Component(nil, "market"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.breaker = circuitbreaker.NewBuilder[*Snapshot]().
		WithFailureThresholdRatio(3, 5).
		WithDelay(breakerDelay).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			s.log.WithFields(logrus.Fields{
				"from_state": stateName(e.OldState),
				"to_state":   stateName(e.NewState),
			}).Warn("Market circuit breaker state change")
		}).
		Build()
	return s
}

// Snapshot returns current statistics. It never fails; upstream problems
// are logged and answered from cache or defaults.
//
// The shared fetch outlives the caller that started it, so it runs detached
// from ctx cancellation and is bounded by the client timeout instead.
func (s *Service) Snapshot(ctx context.Context) *Snapshot {
	if snap, ok := s.fresh(); ok {
		s.record(OutcomeHit)
		return snap
	}

	v, _, _ := s.group.Do("snapshot", func() (any, error) {
		if snap, ok := s.fresh(); ok {
			return snap, nil
		}
		return s.load(context.WithoutCancel(ctx)), nil
	})
	return copySnapshot(v.(*Snapshot))
}

func (s *Service) load(ctx context.Context) *Snapshot {
	snap, err := failsafe.With[*Snapshot](s.breaker).WithContext(ctx).Get(func() (*Snapshot, error) {
		body, err := s.fetcher.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return Parse(body, s.fetcher.URL(), s.now().UTC())
	})
	if err == nil {
		s.mu.Lock()
		s.cached = snap
		s.cachedAt = s.now()
		s.mu.Unlock()
		s.record(OutcomeFetched)
		s.log.WithFields(logrus.Fields{
			"status":        snap.Status,
			"report_period": snap.ReportPeriod,
		}).Info("Market data fetched")
		return snap
	}

	upstream := apperr.Upstream("market data", err)
	s.log.WithError(upstream).Warn("Market data fetch failed, serving fallback")

	s.mu.RLock()
	stale := s.cached
	s.mu.RUnlock()
	if stale != nil {
		s.record(OutcomeStale)
		return stale
	}
	s.record(OutcomeFallback)
	return Defaults("Error fetching data: "+err.Error(), s.now().UTC())
}

func (s *Service) fresh() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || s.now().Sub(s.cachedAt) >= s.ttl {
		return nil, false
	}
	return copySnapshot(s.cached), true
}

// CacheActive reports whether a snapshot younger than the TTL is cached
func (s *Service) CacheActive() bool {
	_, ok := s.fresh()
	return ok
}

// ClearCache drops the cached snapshot
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cached = nil
	s.cachedAt = time.Time{}
	s.mu.Unlock()
	s.log.Debug("Market cache cleared")
}

// Refresh fetches again regardless of cache age. The previous snapshot is
// kept as the fallback if the fetch fails.
func (s *Service) Refresh(ctx context.Context) *Snapshot {
	v, _, _ := s.group.Do("refresh", func() (any, error) {
		return s.load(context.WithoutCancel(ctx)), nil
	})
	return copySnapshot(v.(*Snapshot))
}

// Trends returns the current trend summary with the snapshot it came from
func (s *Service) Trends(ctx context.Context) (Trends, *Snapshot) {
	snap := s.Snapshot(ctx)
	return BuildTrends(snap), snap
}

// Outlook returns buyer and seller advice with the snapshot it came from
func (s *Service) Outlook(ctx context.Context) (Outlook, *Snapshot) {
	snap := s.Snapshot(ctx)
	return BuildOutlook(snap), snap
}

// DataStatus describes the health of the market data feed
type DataStatus struct {
	ServiceStatus string    `json:"service_status"`
	DataSource    string    `json:"data_source"`
	LastUpdated   time.Time `json:"last_updated"`
	DataStatus    string    `json:"data_status"`
	CacheActive   bool      `json:"cache_active"`
	BreakerState  string    `json:"circuit_breaker"`
	Error         string    `json:"error,omitempty"`
}

// Status reports whether data is live or degraded
func (s *Service) Status(ctx context.Context) DataStatus {
	snap := s.Snapshot(ctx)
	st := DataStatus{
		ServiceStatus: "operational",
		DataSource:    SourceName,
		LastUpdated:   snap.LastUpdated,
		DataStatus:    snap.Status,
		CacheActive:   s.CacheActive(),
		BreakerState:  stateName(s.breaker.State()),
	}
	if snap.Error != "" {
		st.ServiceStatus = "degraded"
		st.Error = snap.Error
	}
	return st
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordFetch(outcome)
	}
}

func stateName(state circuitbreaker.State) string {
	switch state {
	case circuitbreaker.OpenState:
		return "open"
	case circuitbreaker.HalfOpenState:
		return "half-open"
	default:
		return "closed"
	}
}

func copySnapshot(snap *Snapshot) *Snapshot {
	cp := *snap
	cp.Insights.KeyPoints = append([]string(nil), snap.Insights.KeyPoints...)
	return &cp
}
