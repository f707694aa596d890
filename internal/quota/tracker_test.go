package quota

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"curex/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSaver struct{ mock.Mock }

func (m *MockSaver) SaveQuota(ctx context.Context, state domain.QuotaState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestTracker_RecordsAndPersists(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)}
	saver := new(MockSaver)
	tr := NewTracker(Policy{DailyLimit: 2, ResetDay: 9}, nil, saver, clock.Now)

	saver.On("SaveQuota", mock.Anything, mock.MatchedBy(func(s domain.QuotaState) bool { return s.DailyUsed == 1 })).Return(nil).Once()
	saver.On("SaveQuota", mock.Anything, mock.MatchedBy(func(s domain.QuotaState) bool { return s.DailyUsed == 2 })).Return(nil).Once()

	_, ok := tr.TryRecord(context.Background())
	require.True(t, ok)
	state, ok := tr.TryRecord(context.Background())
	require.True(t, ok)
	require.Equal(t, 2, state.DailyUsed)

	state, ok = tr.TryRecord(context.Background())
	require.False(t, ok)
	require.Equal(t, 2, state.DailyUsed)
	saver.AssertExpectations(t)
}

func TestTracker_NewDayReopens(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 5, 23, 0, 0, 0, time.UTC)}
	initial := domain.QuotaState{DailyUsed: 48, DailyLimit: 48, LastResetDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)}
	tr := NewTracker(Policy{DailyLimit: 48}, &initial, nil, clock.Now)

	_, ok := tr.TryRecord(context.Background())
	require.False(t, ok)

	clock.now = clock.now.Add(2 * time.Hour)
	require.Equal(t, 0, tr.State().DailyUsed)

	state, ok := tr.TryRecord(context.Background())
	require.True(t, ok)
	require.Equal(t, 1, state.DailyUsed)
}

func TestTracker_ConfiguredLimitOverridesPersisted(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)}
	initial := domain.QuotaState{DailyUsed: 10, DailyLimit: 10, LastResetDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)}
	tr := NewTracker(Policy{DailyLimit: 48}, &initial, nil, clock.Now)

	require.Equal(t, 38, tr.Status().Remaining)
	_, ok := tr.TryRecord(context.Background())
	require.True(t, ok)
}

func TestTracker_SaveErrorDoesNotLoseCount(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)}
	saver := new(MockSaver)
	saver.On("SaveQuota", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	tr := NewTracker(Policy{DailyLimit: 48}, nil, saver, clock.Now)

	state, ok := tr.TryRecord(context.Background())

	require.True(t, ok)
	require.Equal(t, 1, state.DailyUsed)
	require.Equal(t, 1, tr.State().DailyUsed)
	saver.AssertExpectations(t)
}

func TestTracker_TryRecord_ConcurrentCallersNeverExceedLimit(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)}
	initial := domain.QuotaState{DailyUsed: 47, DailyLimit: 48, LastResetDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)}
	tr := NewTracker(Policy{DailyLimit: 48}, &initial, nil, clock.Now)

	var granted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := tr.TryRecord(context.Background()); ok {
				granted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), granted.Load())
	require.Equal(t, 48, tr.State().DailyUsed)
}
