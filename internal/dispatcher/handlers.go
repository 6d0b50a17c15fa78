package dispatcher

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/timour/delivery-service/api"
	"github.com/timour/delivery-service/internal/apperr"
	"github.com/timour/delivery-service/internal/broker"
	"github.com/timour/delivery-service/internal/core"
	"github.com/timour/delivery-service/internal/metrics"
	"github.com/timour/delivery-service/internal/statuscache"
	"github.com/timour/delivery-service/internal/store"
)

// Notifier is the rider-notification capability. The Design Notes flag
// real push notifications as a stubbed-out concern: one capability
// interface, one logging implementation, no fan-out/backpressure yet.
type Notifier interface {
	NotifyRiders(ctx context.Context, riders []api.Rider, pickup api.PickupInfo) error
}

// LogNotifier is the only Notifier implementation this service ships: it
// logs the candidate riders instead of pushing to them.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) NotifyRiders(ctx context.Context, riders []api.Rider, pickup api.PickupInfo) error {
	n.Logger.InfoContext(ctx, "notifying candidate riders",
		slog.Int("rider_count", len(riders)),
		slog.String("pickup_code", pickup.PickupCode),
	)
	return nil
}

// Handlers binds the Core, Store, Status Cache, Event Bus, and Notifier
// together into the two handlers the dispatcher registry requires
// (spec.md §4.2).
type Handlers struct {
	Store    *store.Store
	Status   *statuscache.Cache
	Bus      *broker.Bus
	Notifier Notifier
	Logger   *slog.Logger
	Business *metrics.BusinessMetrics
}

// OrderPlaced implements handle_order_placed (spec.md §4.2.1).
func (h *Handlers) OrderPlaced(ctx context.Context, body []byte, _ amqp.Table) error {
	var event api.OrderPlacedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return apperr.Wrap(apperr.KindInvalidPayload, "failed to decode OrderPlacedEvent", err)
	}
	if event.Order == nil {
		return apperr.New(apperr.KindInvalidPayload, "OrderPlacedEvent missing nested order")
	}
	order := event.Order

	// Idempotent: setting the same status field to the same value twice
	// has no observable difference (spec.md §4.2.1 step 2).
	if err := h.Status.Set(ctx, order.OrderID, api.StatusRiderUnaccept); err != nil {
		return err
	}

	prepared, err := core.PrepareOrderDelivery(order)
	if err != nil {
		return err
	}

	err = h.Store.CreateDelivery(ctx, store.NewDelivery{
		OrderID:         order.OrderID,
		PickupCode:      prepared.PickupInfo.PickupCode,
		PickupLocation:  *prepared.PickupInfo.PickupLocation,
		DropOffLocation: *prepared.PickupInfo.DropOffLocation,
	})
	// AlreadyExists on redelivery is success (spec.md §4.2.1 step 4, §9).
	if err != nil && !apperr.Is(err, apperr.KindAlreadyExists) {
		return err
	}
	if err == nil && h.Business != nil {
		h.Business.DeliveriesCreated.Inc()
	}

	if err := h.Notifier.NotifyRiders(ctx, prepared.Riders, prepared.PickupInfo); err != nil {
		h.Logger.WarnContext(ctx, "notify riders failed, continuing (best effort)", slog.Any("error", err))
	}

	payload, err := json.Marshal(api.RiderNotifiedEvent{
		OrderID:    order.OrderID,
		NotifyTime: time.Now(),
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInvalidPayload, "failed to encode RiderNotifiedEvent", err)
	}

	if err := h.Bus.Publish(ctx, broker.RoutingKeyRiderNotified, payload); err != nil {
		return apperr.Wrap(apperr.KindPublishRejected, "failed to publish rider.notified.event", err)
	}

	return nil
}

// RiderCreated implements handle_rider_created (spec.md §4.2.2).
func (h *Handlers) RiderCreated(ctx context.Context, body []byte, _ amqp.Table) error {
	var event api.SyncRiderCreated
	if err := json.Unmarshal(body, &event); err != nil {
		return apperr.Wrap(apperr.KindInvalidPayload, "failed to decode SyncRiderCreated", err)
	}

	username, ok := usernameFromEmail(event.Email)
	if !ok {
		return apperr.New(apperr.KindInvalidPayload, "failed to split email to username")
	}

	err := h.Store.CreateRider(ctx, store.NewRider{
		RiderID:     event.RiderID,
		Username:    username,
		PhoneNumber: "",
	})
	// Duplicate rider on redelivery is success.
	if err != nil && !apperr.Is(err, apperr.KindAlreadyExists) {
		return err
	}

	return nil
}

func usernameFromEmail(email string) (string, bool) {
	at := strings.Index(email, "@")
	if at < 0 {
		return "", false
	}
	return email[:at], true
}
