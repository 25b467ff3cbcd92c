package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"valet/internal/core/domain/model/kernel"
	"valet/internal/core/domain/model/order"
	"valet/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// eventsChannel is the Redis pub/sub channel lifecycle events travel on.
const eventsChannel = "valet:events"

// wireEvent is the JSON form of ports.Event. The domain value objects do
// not serialize directly, so the bus flattens them to primitives.
type wireEvent struct {
	Kind       string    `json:"kind"`
	OrderSeq   int64     `json:"orderSeq"`
	ActorID    string    `json:"actorId"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toWire(event ports.Event) wireEvent {
	w := wireEvent{
		Kind:       string(event.Kind),
		OrderSeq:   event.OrderNumber.Seq(),
		ActorID:    event.ActorID.String(),
		OccurredAt: event.OccurredAt,
	}
	if event.Status != order.Unknown {
		w.Status = event.Status.String()
	}
	return w
}

func fromWire(w wireEvent) (ports.Event, error) {
	number, err := kernel.NewOrderNumber(w.OrderSeq)
	if err != nil {
		return ports.Event{}, err
	}
	actorID, err := kernel.UUIDFromString(w.ActorID)
	if err != nil {
		return ports.Event{}, err
	}

	event := ports.Event{
		Kind:        ports.EventKind(w.Kind),
		OrderNumber: number,
		ActorID:     actorID,
		OccurredAt:  w.OccurredAt,
	}
	if w.Status != "" {
		status, statusErr := order.StatusFromString(w.Status)
		if statusErr != nil {
			return ports.Event{}, statusErr
		}
		event.Status = status
	}
	return event, nil
}

// RedisBus publishes events over Redis pub/sub so that any instance of the
// service can dispatch them. Used instead of ChannelBus when the service
// runs more than one replica.
type RedisBus struct {
	client     *redis.Client
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewRedisBus creates the bus. Call Run on one goroutine per instance to
// consume.
func NewRedisBus(client *redis.Client, dispatcher *Dispatcher, logger *slog.Logger) *RedisBus {
	return &RedisBus{
		client:     client,
		dispatcher: dispatcher,
		logger:     logger.With("component", "notify_redis_bus"),
	}
}

// Publish serializes the event onto the Redis channel.
func (b *RedisBus) Publish(ctx context.Context, event ports.Event) error {
	payload, err := json.Marshal(toWire(event))
	if err != nil {
		return err
	}
	if err = b.client.Publish(ctx, eventsChannel, payload).Err(); err != nil {
		// best effort: log and swallow so the committed command still succeeds
		b.logger.ErrorContext(ctx, "publishing event failed",
			"kind", event.Kind, "order", event.OrderNumber.String(), "error", err)
	}
	return nil
}

// Run consumes the channel until the context is cancelled.
func (b *RedisBus) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, eventsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var w wireEvent
			if err := json.Unmarshal([]byte(msg.Payload), &w); err != nil {
				b.logger.ErrorContext(ctx, "decoding event failed", "error", err)
				continue
			}
			event, err := fromWire(w)
			if err != nil {
				b.logger.ErrorContext(ctx, "rebuilding event failed", "error", err)
				continue
			}
			b.dispatcher.Dispatch(ctx, event)
		}
	}
}
