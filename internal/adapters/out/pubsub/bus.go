package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"marketplace/internal/core/ports"
)

const listenerBuffer = 64

// Bus fans changes out to every listener of this process. Notify never blocks:
// a listener that falls behind by more than its buffer loses the change, which
// the periodic refresh makes up for.
type Bus struct {
	mu        sync.RWMutex
	listeners map[chan ports.OrderChange]struct{}
	logger    *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		listeners: make(map[chan ports.OrderChange]struct{}),
		logger:    logger.With("component", "change_bus"),
	}
}

// Notify delivers change to the current listeners.
func (b *Bus) Notify(_ context.Context, change ports.OrderChange) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.listeners {
		select {
		case ch <- change:
		default:
			b.logger.Warn("listener is behind, change dropped", "number", change.Number)
		}
	}
	return nil
}

// Listen calls handle for every change until ctx is done.
func (b *Bus) Listen(ctx context.Context, handle func(ports.OrderChange)) error {
	ch := make(chan ports.OrderChange, listenerBuffer)

	b.mu.Lock()
	b.listeners[ch] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.listeners, ch)
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-ch:
			handle(change)
		}
	}
}
