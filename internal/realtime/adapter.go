// Package realtime keeps one provider's order view fresh. It listens on two
// channels at once — the push change feed, which is fast but unreliable, and
// a fixed-interval poll, which is slow but certain — and funnels both into a
// single reload path.
package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is the safety-net poll period. It bounds the staleness
// window to one interval when the push feed goes quiet.
const DefaultPollInterval = 60 * time.Second

// Snapshot is one full re-fetch of the provider's orders, newest first.
type Snapshot = []queries.GetProviderOrdersQueryResponse

// OrderLoader is the reload source, satisfied by
// queries.GetProviderOrdersQueryHandler.
type OrderLoader interface {
	Handle(ctx context.Context, query queries.GetProviderOrdersQuery) (Snapshot, error)
}

// SyncAdapter subscribes to order changes for one provider and re-fetches the
// full order list on every signal.
//
// Both the push feed and the poll feed a single-slot signal channel drained
// by one worker, so reload runs at most once at a time and a burst of events
// arriving during a reload collapses into exactly one follow-up reload.
// Reload is always a full re-fetch: events carry no row data and nothing is
// merged client-side.
type SyncAdapter struct {
	feed         ports.OrderChangeFeed
	player       ports.NotificationPlayer
	orders       OrderLoader
	logger       *slog.Logger
	pollInterval time.Duration
}

// NewSyncAdapter creates a realtime sync adapter.
func NewSyncAdapter(
	feed ports.OrderChangeFeed,
	player ports.NotificationPlayer,
	orders OrderLoader,
	logger *slog.Logger,
	pollInterval time.Duration,
) *SyncAdapter {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &SyncAdapter{
		feed:         feed,
		player:       player,
		orders:       orders,
		logger:       logger.With("component", "realtime_sync"),
		pollInterval: pollInterval,
	}
}

// Run keeps the provider's order view fresh until ctx is cancelled, invoking
// onReload with a fresh snapshot after every coalesced change signal. An
// initial reload fires immediately. Run blocks; it returns nil on context
// cancellation.
func (a *SyncAdapter) Run(
	ctx context.Context,
	providerID kernel.UUID,
	onReload func(Snapshot),
) error {
	query, err := queries.NewGetProviderOrdersQuery(providerID)
	if err != nil {
		return err
	}

	signal := make(chan struct{}, 1)
	request := func() {
		select {
		case signal <- struct{}{}:
		default:
		}
	}

	// First paint before any change arrives.
	request()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.pumpPush(ctx, providerID, request)
	})

	g.Go(func() error {
		return a.pumpPoll(ctx, request)
	})

	g.Go(func() error {
		return a.drain(ctx, query, signal, onReload)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// pumpPush forwards change feed events into the signal channel. A dead or
// unavailable feed is tolerated: the poll keeps firing the same signal.
func (a *SyncAdapter) pumpPush(ctx context.Context, providerID kernel.UUID, request func()) error {
	events, err := a.feed.Subscribe(ctx, providerID)
	if err != nil {
		a.logger.Warn("change feed unavailable, relying on poll", "error", err)
		return nil
	}

	for event := range events {
		if event.Op == ports.OpInsert {
			a.playNotification(ctx)
		}
		request()
	}
	return nil
}

// playNotification fires the new-order sound. Strictly cosmetic: a failure is
// logged at debug and otherwise ignored.
func (a *SyncAdapter) playNotification(ctx context.Context) {
	if a.player == nil {
		return
	}
	if err := a.player.Play(ctx); err != nil {
		a.logger.Debug("notification sound failed", "error", err)
	}
}

func (a *SyncAdapter) pumpPoll(ctx context.Context, request func()) error {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", a.pollInterval), request)
	if err != nil {
		return err
	}

	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

func (a *SyncAdapter) drain(
	ctx context.Context,
	query queries.GetProviderOrdersQuery,
	signal <-chan struct{},
	onReload func(Snapshot),
) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-signal:
			snapshot, err := a.orders.Handle(ctx, query)
			if err != nil {
				// The next signal (poll at the latest) retries.
				a.logger.Error("order reload failed", "error", err)
				continue
			}
			onReload(snapshot)
		}
	}
}
