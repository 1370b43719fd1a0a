package sweeper

import (
	"context"
	"log/slog"
	"time"

	"conference-booking/internal/pkg/config"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/pkg/metrics"
	"conference-booking/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

const lockKey = "conference-booking:sweep"

var ErrLockHeld = errs.New("sweep lock held by another replica")

// Sweeper owns the reconciliation cadence. The operations it triggers hold no
// scheduling logic of their own.
type Sweeper struct {
	reconciliation commands.ReconciliationCommands
	locker         Locker
	schedule       string
	lockTTL        time.Duration
	logger         *slog.Logger

	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func New(reconciliation commands.ReconciliationCommands, locker Locker, cfg config.SweeperConfig, logger *slog.Logger) (*Sweeper, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sweeper{
		reconciliation: reconciliation,
		locker:         locker,
		schedule:       cfg.Schedule,
		lockTTL:        cfg.LockTTL,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
	}

	cronLogger := cronSlog{logger: logger}
	s.cron = cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	if _, err := s.cron.AddFunc(cfg.Schedule, s.tick); err != nil {
		cancel()
		return nil, errs.Wrapf(err, "invalid sweep schedule %q", cfg.Schedule)
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
	s.logger.Info("sweeper started", "schedule", s.schedule)
}

// Stop cancels the running pass and waits for it until ctx is done.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) tick() {
	err := s.RunOnce(s.ctx)
	if err != nil && !errs.Is(err, ErrLockHeld) {
		s.logger.Error("sweep pass failed", "error", err.Error())
	}
}

// RunOnce requeues expired promotions and then cancels the waitlists of
// started conferences. Both steps run even if the first one fails.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	locked, err := s.locker.TryLock(ctx, lockKey, s.lockTTL)
	if err != nil {
		return errs.Wrap(err, "failed to acquire sweep lock")
	}
	if !locked {
		s.logger.Debug("sweep skipped, lock held elsewhere")
		return ErrLockHeld
	}
	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.Warn("failed to release sweep lock", "error", err.Error())
		}
	}()

	start := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	requeued, expiredErr := s.reconciliation.HandleExpiredPromotions(ctx)
	canceled, startedErr := s.reconciliation.AutoCancelStartedConferences(ctx)

	total := 0
	for _, n := range canceled {
		total += n
	}
	s.logger.Info("sweep pass finished",
		"requeued", requeued,
		"canceled", total,
		"conferences", len(canceled),
		"duration_ms", time.Since(start).Milliseconds())

	return errs.Join(expiredErr, startedErr)
}

// cronSlog adapts slog to the cron.Logger interface.
type cronSlog struct {
	logger *slog.Logger
}

func (l cronSlog) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronSlog) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
