package commands

import (
	"context"
	"log/slog"

	"conference-booking/internal/pkg/clock"
	"conference-booking/internal/pkg/config"
	"conference-booking/internal/pkg/errs"
	"conference-booking/internal/pkg/metrics"
	"conference-booking/internal/usecase/shared"
)

// ReconciliationCommands are the maintenance operations driven by the sweeper.
// Each conference is reconciled in its own transaction. A failure is joined
// into the returned error while the pass moves on.
type ReconciliationCommands interface {
	// HandleExpiredPromotions requeues every waitlisted booking whose deadline
	// passed and promotes the new heads. It returns the number requeued.
	HandleExpiredPromotions(ctx context.Context) (int, error)
	// AutoCancelStartedConferences cancels the waitlisted bookings of conferences
	// that have started. Confirmed bookings are left alone. It returns the number
	// canceled per conference.
	AutoCancelStartedConferences(ctx context.Context) (map[string]int, error)
}

type reconciliationUseCaseImpl struct {
	queueOps
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReconciliationUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.EngineConfig, logger *slog.Logger) ReconciliationCommands {
	return &reconciliationUseCaseImpl{
		queueOps: queueOps{gracePeriod: cfg.PromotionGracePeriod, logger: logger},
		uow:      uow,
		clock:    clk,
	}
}

func (uc *reconciliationUseCaseImpl) HandleExpiredPromotions(ctx context.Context) (int, error) {
	var conferenceIDs []string
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		conferenceIDs, err = tx.Bookings().ListConferencesWithExpiredPromotions(ctx, uc.clock.Now())
		return err
	})
	if err != nil {
		return 0, classify(errs.Wrap(err, "list expired promotions"))
	}

	total := 0
	failures := uc.forEach(ctx, metrics.SweepKindExpiredPromotion, conferenceIDs, func(ctx context.Context, tx shared.Tx, conferenceID string) (int, error) {
		return uc.requeueExpired(ctx, tx, conferenceID)
	}, func(_ string, n int) { total += n })

	return total, classify(failures)
}

// requeueExpired moves expired heads to the tail, clears their deadline and
// promotes whoever is first afterwards. A sole entry is requeued onto itself
// and promoted again.
func (uc *reconciliationUseCaseImpl) requeueExpired(ctx context.Context, tx shared.Tx, conferenceID string) (int, error) {
	now := uc.clock.Now()
	if _, err := lockConference(ctx, tx, conferenceID); err != nil {
		return 0, err
	}

	expired, err := tx.Bookings().ListExpiredPromotions(ctx, conferenceID, now)
	if err != nil || len(expired) == 0 {
		return 0, err
	}

	q, err := tx.Waitlist().Load(ctx, conferenceID)
	if err != nil {
		return 0, err
	}
	for _, b := range expired {
		if err := b.RevokePromotion(now); err != nil {
			return 0, err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return 0, err
		}
		q.MoveToTail(b.ID())
	}
	if err := uc.reorder(ctx, tx, q); err != nil {
		return 0, err
	}
	if err := uc.promote(ctx, tx, q, now); err != nil {
		return 0, err
	}
	return len(expired), nil
}

func (uc *reconciliationUseCaseImpl) AutoCancelStartedConferences(ctx context.Context) (map[string]int, error) {
	var conferenceIDs []string
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		conferenceIDs, err = tx.Conferences().ListStartedWithWaitlist(ctx, uc.clock.Now())
		return err
	})
	if err != nil {
		return nil, classify(errs.Wrap(err, "list started conferences"))
	}

	counts := make(map[string]int, len(conferenceIDs))
	failures := uc.forEach(ctx, metrics.SweepKindStartedCancel, conferenceIDs, uc.cancelWaitlist, func(id string, n int) {
		if n > 0 {
			counts[id] = n
		}
	})

	return counts, classify(failures)
}

func (uc *reconciliationUseCaseImpl) cancelWaitlist(ctx context.Context, tx shared.Tx, conferenceID string) (int, error) {
	now := uc.clock.Now()
	conf, err := lockConference(ctx, tx, conferenceID)
	if err != nil {
		return 0, err
	}
	if !conf.HasStarted(now) {
		return 0, nil
	}

	waitlisted, err := tx.Bookings().ListWaitlistedByConference(ctx, conferenceID)
	if err != nil {
		return 0, err
	}
	q, err := tx.Waitlist().Load(ctx, conferenceID)
	if err != nil {
		return 0, err
	}
	for _, b := range waitlisted {
		if _, err := b.Cancel(now); err != nil {
			return 0, err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return 0, err
		}
		q.Remove(b.ID())
	}
	if err := uc.reorder(ctx, tx, q); err != nil {
		return 0, err
	}
	return len(waitlisted), nil
}

// forEach runs fn for each conference in its own transaction. done receives the
// count of every committed transaction.
func (uc *reconciliationUseCaseImpl) forEach(
	ctx context.Context,
	kind string,
	conferenceIDs []string,
	fn func(ctx context.Context, tx shared.Tx, conferenceID string) (int, error),
	done func(conferenceID string, n int),
) error {
	var failures []error
	for _, id := range conferenceIDs {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		var n int
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			n, err = fn(ctx, tx, id)
			return err
		})
		if err != nil {
			metrics.SweepFailures.WithLabelValues(kind).Inc()
			uc.logger.ErrorContext(ctx, "sweep failed for conference",
				"kind", kind,
				"conference_id", id,
				"error", err.Error())
			failures = append(failures, errs.Wrapf(err, "conference %s", id))
			continue
		}

		metrics.SweepProcessed.WithLabelValues(kind).Add(float64(n))
		if n > 0 {
			uc.logger.InfoContext(ctx, "sweep reconciled conference",
				"kind", kind,
				"conference_id", id,
				"bookings", n)
		}
		done(id, n)
	}
	return errs.Join(failures...)
}
