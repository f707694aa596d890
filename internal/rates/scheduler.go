package rates

import (
	"context"
	"errors"
	"sync"
	"time"

	"curex/internal/domain"
	"curex/internal/quota"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultCheckInterval = 15 * time.Minute

// QuotaStatus supplies the quota-derived refresh interval.
type QuotaStatus interface {
	Status() quota.Status
}

// Scheduler wakes up every check interval and refreshes the current base once
// the applied table is older than the refresh interval the quota allows.
type Scheduler struct {
	service       *Service
	quota         QuotaStatus
	checkInterval time.Duration
	now           func() time.Time
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if runErr := s.runOnce(jobCtx, execID); runErr != nil {
			logrus.WithError(runErr).WithField("exec_id", execID).Error("Scheduled rates refresh failed")
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.checkInterval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.WithError(sdErr).Error("Scheduler shutdown error")
		}
	}()
	return nil
}

// runOnce refreshes unless the current table is still fresh enough.
// A superseded fetch is not an error: a newer refresh owns the result.
func (s *Scheduler) runOnce(ctx context.Context, execID string) error {
	base := s.service.Base()
	table, _ := s.service.Current()
	interval := s.quota.Status().RefreshInterval

	if !table.IsZero() && table.Base == base && s.now().Sub(table.AsOf) < interval {
		logrus.WithFields(logrus.Fields{"exec_id": execID, "base": base, "interval": interval}).Debug("Rates are fresh, nothing to do")
		return nil
	}

	_, err := s.service.Refresh(ctx, base)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrFetchSuperseded):
		logrus.WithField("exec_id", execID).Info("Scheduled refresh superseded by a newer one")
		return nil
	case errors.Is(err, domain.ErrQuotaExceeded):
		logrus.WithField("exec_id", execID).Warn("Daily api quota exhausted, skipping scheduled refresh")
		return nil
	default:
		return err
	}
}

// Shutdown stops the scheduler. Safe to call more than once and concurrently
// with the ctx-driven shutdown started by Start.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(service *Service, quota QuotaStatus, checkInterval time.Duration) *Scheduler {
	if checkInterval <= 0 {
		checkInterval = defaultCheckInterval
	}
	return &Scheduler{service: service, quota: quota, checkInterval: checkInterval, now: time.Now}
}
