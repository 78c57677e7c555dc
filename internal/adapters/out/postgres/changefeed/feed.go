// Package changefeed implements the push half of the realtime sync as a
// Postgres LISTEN/NOTIFY subscription. A row trigger on the orders table
// publishes a small JSON payload per INSERT/UPDATE; the feed filters it down
// to one provider's events.
//
// Delivery is best-effort: NOTIFY is lost on disconnect and the listener
// reconnects silently. Consumers must pair the feed with an independent poll.
package changefeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const channelName = "orders_changed"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// PqOrderChangeFeed implements ports.OrderChangeFeed over a lib/pq listener.
// Each subscription owns its own database connection.
type PqOrderChangeFeed struct {
	dsn    string
	logger *slog.Logger
}

// NewPqOrderChangeFeed creates a change feed connecting with the given DSN.
func NewPqOrderChangeFeed(dsn string, logger *slog.Logger) *PqOrderChangeFeed {
	return &PqOrderChangeFeed{
		dsn:    dsn,
		logger: logger.With("component", "order_change_feed"),
	}
}

type notifyPayload struct {
	Op         string `json:"op"`
	OrderID    string `json:"order_id"`
	ProviderID string `json:"provider_id"`
}

// Subscribe starts delivering the provider's order change events until ctx is
// cancelled, at which point the returned channel is closed.
func (f *PqOrderChangeFeed) Subscribe(
	ctx context.Context,
	providerID kernel.UUID,
) (<-chan ports.OrderChangeEvent, error) {
	if err := providerID.Validate(); err != nil {
		return nil, err
	}

	listener := pq.NewListener(f.dsn, minReconnectInterval, maxReconnectInterval,
		func(_ pq.ListenerEventType, err error) {
			if err != nil {
				f.logger.Warn("listener connection event", "error", err)
			}
		})

	if err := listener.Listen(channelName); err != nil {
		_ = listener.Close()
		return nil, err
	}

	events := make(chan ports.OrderChangeEvent, 16)
	go f.pump(ctx, listener, providerID, events)
	return events, nil
}

func (f *PqOrderChangeFeed) pump(
	ctx context.Context,
	listener *pq.Listener,
	providerID kernel.UUID,
	events chan<- ports.OrderChangeEvent,
) {
	defer close(events)
	defer func() { _ = listener.Close() }()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case n, ok := <-listener.Notify:
			if !ok {
				return
			}
			// A nil notification marks a reconnect; notifications sent
			// while disconnected are gone. The poll covers the gap.
			if n == nil {
				continue
			}

			event, ok := f.parse(n.Extra)
			if !ok || !event.ProviderID.IsEqual(providerID) {
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}

		case <-ping.C:
			if err := listener.Ping(); err != nil {
				f.logger.Warn("listener ping failed", "error", err)
			}
		}
	}
}

func (f *PqOrderChangeFeed) parse(raw string) (ports.OrderChangeEvent, bool) {
	var payload notifyPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		f.logger.Warn("malformed change notification", "error", err)
		return ports.OrderChangeEvent{}, false
	}

	op := ports.ChangeOp(payload.Op)
	if op != ports.OpInsert && op != ports.OpUpdate {
		return ports.OrderChangeEvent{}, false
	}

	orderID, err := kernel.UUIDFromString(payload.OrderID)
	if err != nil {
		f.logger.Warn("malformed change notification", "error", err)
		return ports.OrderChangeEvent{}, false
	}

	changedProviderID, err := kernel.UUIDFromString(payload.ProviderID)
	if err != nil {
		f.logger.Warn("malformed change notification", "error", err)
		return ports.OrderChangeEvent{}, false
	}

	return ports.OrderChangeEvent{
		Op:         op,
		OrderID:    orderID,
		ProviderID: changedProviderID,
	}, true
}

// EnsureTrigger installs the NOTIFY trigger on the orders table. Idempotent;
// called once at startup after the schema is migrated.
func EnsureTrigger(db *gorm.DB) error {
	const fn = `
		CREATE OR REPLACE FUNCTION notify_order_change() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('orders_changed', json_build_object(
				'op', TG_OP,
				'order_id', NEW.id,
				'provider_id', NEW.provider_id
			)::text);
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`

	const trigger = `
		CREATE OR REPLACE TRIGGER orders_changed_notify
		AFTER INSERT OR UPDATE ON orders
		FOR EACH ROW EXECUTE FUNCTION notify_order_change()`

	if err := db.Exec(fn).Error; err != nil {
		return err
	}
	return db.Exec(trigger).Error
}
