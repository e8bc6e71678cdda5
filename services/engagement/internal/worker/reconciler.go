// Package worker contains the background maintenance jobs for the
// engagement service: a JetStream consumer that recomputes statistics
// rows when rating events arrive, and a periodic sweep that rebuilds
// every statistics row from the rating rows.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/studyshare/internal/platform/events"
	"github.com/example/studyshare/services/engagement/internal/store"
)

const (
	durableName   = "engagement_stats_reconciler"
	fetchBatch    = 64
	fetchInterval = 2 * time.Second
)

// StatsReconciler consumes engagement.rating.* events and recomputes
// the statistics row for the affected resource. The write path already
// keeps statistics consistent in the same transaction; the reconciler
// is a safety net for rows touched outside the service (migrations,
// manual fixes) and a dedup-friendly replay target.
type StatsReconciler struct {
	js    nats.JetStreamContext
	store store.RatingStore
	log   *zap.Logger
}

func NewStatsReconciler(js nats.JetStreamContext, st store.RatingStore, log *zap.Logger) *StatsReconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsReconciler{js: js, store: st, log: log}
}

// Run pulls rating events until ctx is cancelled. A message is acked
// once the recompute succeeds; failures are naked so JetStream
// redelivers them.
func (w *StatsReconciler) Run(ctx context.Context) error {
	sub, err := w.js.PullSubscribe("engagement.rating.*", durableName)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgs, err := sub.Fetch(fetchBatch, nats.MaxWait(fetchInterval))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.Canceled) {
				continue
			}
			w.log.Warn("fetch failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		for _, m := range msgs {
			w.handle(ctx, m)
		}
	}
}

func (w *StatsReconciler) handle(ctx context.Context, m *nats.Msg) {
	var ev events.Event
	if err := json.Unmarshal(m.Data, &ev); err != nil {
		w.log.Warn("dropping malformed event", zap.Error(err))
		// Malformed payloads never become valid; ack so they stop
		// redelivering.
		_ = m.Ack()
		return
	}
	if ev.ResourceID == "" {
		_ = m.Ack()
		return
	}

	if err := w.store.RecomputeStats(ctx, ev.ResourceID); err != nil {
		w.log.Error("recompute failed",
			zap.String("resource_id", ev.ResourceID),
			zap.String("event", ev.EventName),
			zap.Error(err))
		_ = m.Nak()
		return
	}
	_ = m.Ack()
}

// Sweeper periodically rebuilds every statistics row from the rating
// rows, clearing any skew regardless of its origin.
type Sweeper struct {
	store    store.RatingStore
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(st store.RatingStore, interval time.Duration, log *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{store: st, interval: interval, log: log}
}

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			touched, err := s.store.ReconcileAll(ctx)
			if err != nil {
				s.log.Error("statistics sweep failed", zap.Error(err))
				continue
			}
			s.log.Info("statistics sweep completed", zap.Int("rows", touched))
		}
	}
}
