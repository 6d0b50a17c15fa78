// Package dispatcher is the Event Dispatcher: one consumer loop per
// registered (queue, routing_key), fanning each delivery out to a handler
// under a shared concurrency bound. Grounded on orders/consumer.go's
// goroutine-per-subscription shape and on original_source's delivery.rs /
// event_impl.rs EventDispatcher, whose task_limiter Semaphore this package's
// golang.org/x/sync/semaphore.Weighted directly translates.
package dispatcher

import (
	"context"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/semaphore"

	"github.com/timour/delivery-service/internal/apperr"
	"github.com/timour/delivery-service/internal/broker"
)

// defaultConcurrency is the default semaphore size gating in-flight handler
// tasks across the whole dispatcher (spec.md §4.2, §5).
const defaultConcurrency = 100

// Handler processes one delivery's raw body. Returning nil acks. Returning an
// InvalidPayload error also acks (the message is unprocessable and dropped);
// any other error nacks the message with requeue so the broker redelivers it.
type Handler func(ctx context.Context, body []byte, headers amqp.Table) error

type subscription struct {
	queue      string
	routingKey string
	handler    Handler
}

// Dispatcher owns the consumer loop for every registered subscription.
type Dispatcher struct {
	bus  *broker.Bus
	sem  *semaphore.Weighted
	log  *slog.Logger
	subs []subscription
}

// New builds a Dispatcher with the given concurrency bound. A concurrency of
// 0 selects the default of 100 permits (spec.md §5).
func New(bus *broker.Bus, logger *slog.Logger, concurrency int64) *Dispatcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Dispatcher{
		bus: bus,
		sem: semaphore.NewWeighted(concurrency),
		log: logger,
	}
}

// Register binds routingKey consumed off queue to handler. Two keys are
// mandatory per spec.md §4.2: order.placed.event and sync.rider.created.
func (d *Dispatcher) Register(queue, routingKey string, handler Handler) {
	d.subs = append(d.subs, subscription{queue: queue, routingKey: routingKey, handler: handler})
}

// Run starts one consumer loop per registered subscription and blocks until
// ctx is canceled. Any message whose routing key has no registered handler
// never reaches Run — Register is the only way to wire one in, so an
// unregistered key simply has no consumer loop at all (poison-pill avoidance
// happens structurally rather than per-message).
func (d *Dispatcher) Run(ctx context.Context) error {
	for _, sub := range d.subs {
		msgs, err := d.bus.Subscribe(sub.queue, sub.routingKey)
		if err != nil {
			return err
		}
		go d.consume(ctx, sub, msgs)
	}

	<-ctx.Done()
	return ctx.Err()
}

// consume pulls deliveries off msgs and launches one task per message under
// the shared semaphore. The pull loop itself never blocks on a slow
// handler — only the semaphore acquire can stall it (spec.md §4.2 step 4).
func (d *Dispatcher) consume(ctx context.Context, sub subscription, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-msgs:
			if !ok {
				return
			}

			if err := d.sem.Acquire(ctx, 1); err != nil {
				return
			}

			go d.handle(ctx, sub, delivery)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, sub subscription, delivery amqp.Delivery) {
	defer d.sem.Release(1)

	msgCtx := broker.ExtractTraceContext(ctx, delivery.Headers)

	err := sub.handler(msgCtx, delivery.Body, delivery.Headers)
	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			d.log.Error("failed to ack delivery", slog.String("routing_key", sub.routingKey), slog.Any("error", ackErr))
		}
		return
	}

	if isInvalidPayload(err) {
		d.log.Warn("dropping unprocessable message",
			slog.String("routing_key", sub.routingKey),
			slog.Any("error", err),
		)
		if ackErr := delivery.Ack(false); ackErr != nil {
			d.log.Error("failed to ack unprocessable delivery", slog.Any("error", ackErr))
		}
		return
	}

	d.log.Error("handler failed, leaving unacked for redelivery",
		slog.String("routing_key", sub.routingKey),
		slog.Any("error", err),
	)
	if nackErr := delivery.Nack(false, true); nackErr != nil {
		d.log.Error("failed to nack delivery", slog.Any("error", nackErr))
	}
}

func isInvalidPayload(err error) bool {
	return apperr.Is(err, apperr.KindInvalidPayload)
}
