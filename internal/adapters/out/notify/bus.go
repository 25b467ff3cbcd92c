package notify

import (
	"context"
	"log/slog"
	"sync"

	"valet/internal/core/ports"
)

// busBuffer bounds how many undelivered events queue up before Publish
// starts dropping. Notifications are best effort, so dropping beats
// blocking a committed command.
const busBuffer = 256

// ChannelBus is the in-process event bus: Publish enqueues, a single worker
// goroutine drains the queue through the dispatcher.
type ChannelBus struct {
	dispatcher *Dispatcher
	logger     *slog.Logger

	events chan ports.Event
	done   chan struct{}
	once   sync.Once
}

// NewChannelBus creates the bus and starts its worker.
func NewChannelBus(dispatcher *Dispatcher, logger *slog.Logger) *ChannelBus {
	b := &ChannelBus{
		dispatcher: dispatcher,
		logger:     logger.With("component", "notify_bus"),
		events:     make(chan ports.Event, busBuffer),
		done:       make(chan struct{}),
	}
	go b.run()
	return b
}

// Publish enqueues the event. Never blocks: when the queue is full the
// event is dropped and logged.
func (b *ChannelBus) Publish(ctx context.Context, event ports.Event) error {
	select {
	case b.events <- event:
	default:
		b.logger.WarnContext(ctx, "notification queue full, dropping event",
			"kind", event.Kind, "order", event.OrderNumber.String())
	}
	return nil
}

// Close stops the worker after the queue drains.
func (b *ChannelBus) Close() {
	b.once.Do(func() {
		close(b.events)
		<-b.done
	})
}

func (b *ChannelBus) run() {
	defer close(b.done)
	for event := range b.events {
		b.dispatcher.Dispatch(context.Background(), event)
	}
}
