package quota

import (
	"context"
	"sync"
	"time"

	"curex/internal/domain"

	"github.com/sirupsen/logrus"
)

type Saver interface {
	SaveQuota(ctx context.Context, state domain.QuotaState) error
}

// Tracker serializes access to the quota counter and persists every recorded
// request. Persistence failures are logged, the in-memory count stays authoritative.
type Tracker struct {
	policy Policy
	saver  Saver
	now    func() time.Time

	mu    sync.Mutex
	state domain.QuotaState
}

func NewTracker(policy Policy, initial *domain.QuotaState, saver Saver, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	state := domain.QuotaState{DailyLimit: policy.DailyLimit, LastResetDate: dateOf(now())}
	if initial != nil {
		state = *initial
		// the configured limit wins over whatever was persisted
		state.DailyLimit = policy.DailyLimit
	}
	return &Tracker{policy: policy, saver: saver, now: now, state: state}
}

// TryRecord counts one request when the daily limit allows it. The check and
// the increment happen under one lock, so concurrent callers cannot overshoot.
func (t *Tracker) TryRecord(ctx context.Context) (domain.QuotaState, bool) {
	t.mu.Lock()
	now := t.now()
	if !CanMakeRequest(Rollover(t.state, now)) {
		state := t.state
		t.mu.Unlock()
		return state, false
	}
	t.state = RecordRequest(t.state, now)
	state := t.state
	t.mu.Unlock()

	if t.saver != nil {
		if err := t.saver.SaveQuota(ctx, state); err != nil {
			logrus.WithError(err).WithField("daily_used", state.DailyUsed).Warn("Failed to persist api quota")
		}
	}
	return state, true
}

func (t *Tracker) State() domain.QuotaState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Rollover(t.state, t.now())
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Summarize(t.state, t.now(), t.policy)
}
