package rates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"curex/internal/adapters"
	"curex/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// QuotaGate is the part of quota.Tracker the service needs.
type QuotaGate interface {
	TryRecord(ctx context.Context) (domain.QuotaState, bool)
}

const defaultFetchTimeout = 30 * time.Second

// Status describes the last refresh attempt. Base is the base the caller
// asked for most recently, which may differ from the table's base after a
// failed switch.
type Status struct {
	Base        string    `json:"base"`
	Failed      bool      `json:"failed"`
	LastError   string    `json:"last_error,omitempty"`
	LastAttempt time.Time `json:"last_attempt"`
	LastSuccess time.Time `json:"last_success"`
}

type Service struct {
	source  adapters.RateSource
	history adapters.HistorySource
	cache   adapters.RateTableCache
	quota   QuotaGate
	now     func() time.Time

	// fetchTimeout bounds a shared fetch, which does not follow any caller's ctx.
	fetchTimeout time.Duration

	group singleflight.Group

	mu         sync.RWMutex
	generation uint64
	table      domain.RateTable
	status     Status
	onApply    []func()
}

// Refresh fetches rates for base and applies them if no newer refresh was
// started in the meantime. On failure the current table is kept.
func (s *Service) Refresh(ctx context.Context, base string) (domain.RateTable, error) {
	base = domain.NormalizeCode(base)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.status.Base = base
	s.status.LastAttempt = s.now()
	s.mu.Unlock()

	fetchID := uuid.NewString()
	table, err := s.fetch(ctx, base)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		logrus.WithFields(logrus.Fields{"fetch_id": fetchID, "base": base}).Debug("Discarding superseded rates fetch")
		return domain.RateTable{}, domain.ErrFetchSuperseded
	}
	if err != nil {
		s.status.Failed = true
		s.status.LastError = err.Error()
		s.mu.Unlock()
		logrus.WithError(err).WithFields(logrus.Fields{"fetch_id": fetchID, "base": base}).Warn("Rates refresh failed, keeping previous table")
		return domain.RateTable{}, err
	}
	s.table = table
	s.status.Failed = false
	s.status.LastError = ""
	s.status.LastSuccess = s.now()
	hooks := s.onApply
	s.mu.Unlock()

	logrus.WithFields(logrus.Fields{"fetch_id": fetchID, "base": base, "rates": table.Len()}).Info("Rates refreshed")
	for _, h := range hooks {
		h()
	}
	return table, nil
}

// fetch serves from cache when possible; otherwise one network call per base
// is in flight at a time and each one counts against the daily quota.
// The flight is shared by every caller that joins it, so it runs detached from
// the caller's ctx. A caller whose ctx ends stops waiting, the flight goes on.
func (s *Service) fetch(ctx context.Context, base string) (domain.RateTable, error) {
	if cached, ok := s.cache.Get(base); ok {
		return cached, nil
	}

	ch := s.group.DoChan(base, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()

		if _, ok := s.quota.TryRecord(flightCtx); !ok {
			return nil, domain.ErrQuotaExceeded
		}
		table, err := s.source.FetchRates(flightCtx, base)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch rates for %s: %w", base, err)
		}
		s.cache.Set(table)
		return table, nil
	})

	select {
	case <-ctx.Done():
		return domain.RateTable{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.RateTable{}, res.Err
		}
		return res.Val.(domain.RateTable), nil
	}
}

// Current returns the applied table (zero before the first success) and the status.
func (s *Service) Current() (domain.RateTable, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.status
}

// Base is the base the next scheduled refresh should use.
func (s *Service) Base() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status.Base
}

// OnApply registers fn to run after every applied refresh.
func (s *Service) OnApply(fn func()) {
	s.mu.Lock()
	s.onApply = append(s.onApply, fn)
	s.mu.Unlock()
}

// History returns daily rates of quote against base over rng, oldest first.
func (s *Service) History(ctx context.Context, base, quote, rng string) ([]domain.HistoricalRate, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}
	days, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}
	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)

	points, err := s.history.FetchHistory(ctx, domain.NormalizeCode(base), domain.NormalizeCode(quote), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history %s/%s: %w", base, quote, err)
	}
	return points, nil
}

var (
	ErrHistoryUnavailable = errors.New("rate history is not supported by the configured provider")
	ErrInvalidRange       = errors.New("invalid history range")
)

var ranges = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
	"1y":  365,
}

// ParseRange maps a chart range to a number of days. Empty means 30d.
func ParseRange(rng string) (int, error) {
	if rng == "" {
		return ranges["30d"], nil
	}
	days, ok := ranges[rng]
	if !ok {
		return 0, fmt.Errorf("%w %q: want 7d, 30d, 90d or 1y", ErrInvalidRange, rng)
	}
	return days, nil
}

// NewService builds a service whose first refresh targets initialBase.
// history may be nil when the provider has no time series endpoint.
func NewService(source adapters.RateSource, history adapters.HistorySource, cache adapters.RateTableCache, quota QuotaGate, initialBase string) *Service {
	return &Service{
		source:       source,
		history:      history,
		cache:        cache,
		quota:        quota,
		now:          time.Now,
		fetchTimeout: defaultFetchTimeout,
		status:       Status{Base: domain.NormalizeCode(initialBase)},
	}
}
