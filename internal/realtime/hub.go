package realtime

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/ports"
)

var (
	// ErrTooManySubscribers is returned by Subscribe when the hub is full.
	ErrTooManySubscribers = errors.New("realtime: subscriber limit reached")

	// ErrHubClosed is returned by Subscribe after Close.
	ErrHubClosed = errors.New("realtime: hub closed")
)

const (
	DefaultMaxSubscribers = 1024
	DefaultBufferSize     = 8
)

// Observer receives hub activity, typically for metrics.
type Observer interface {
	SubscriberAdded(kind string)
	SubscriberRemoved(kind string)
	FrameDropped()
	Broadcast()
	TopicRefreshed(kind string, elapsed time.Duration, err error)
}

// Config bounds the hub.
type Config struct {
	// MaxSubscribers caps concurrent subscriptions over all topics.
	MaxSubscribers int
	// BufferSize is the number of frames a subscriber may have pending; when
	// full, the oldest pending frame is dropped.
	BufferSize int
}

type topicState struct {
	subscribers map[*Subscription]struct{}
	last        []byte
}

// Hub fans topic snapshots out to subscribers.
type Hub struct {
	source   Source
	observer Observer
	logger   *slog.Logger
	cfg      Config

	mu     sync.Mutex
	topics map[Topic]*topicState
	count  int
	closed bool

	// refreshMu serializes snapshot queries so that an older payload can never
	// overwrite a newer one.
	refreshMu sync.Mutex
}

// NewHub creates a hub. A nil observer is allowed.
func NewHub(source Source, cfg Config, observer Observer, logger *slog.Logger) *Hub {
	if cfg.MaxSubscribers <= 0 {
		cfg.MaxSubscribers = DefaultMaxSubscribers
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Hub{
		source:   source,
		observer: observer,
		logger:   logger.With("component", "realtime_hub"),
		cfg:      cfg,
		topics:   make(map[Topic]*topicState),
	}
}

// Subscribe registers a subscriber and queues the current snapshot of topic
// for it. The caller must Close the subscription when done.
func (h *Hub) Subscribe(ctx context.Context, topic Topic) (*Subscription, error) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	if h.count >= h.cfg.MaxSubscribers {
		h.mu.Unlock()
		return nil, ErrTooManySubscribers
	}
	sub := &Subscription{
		topic:  topic,
		hub:    h,
		frames: make(chan []byte, h.cfg.BufferSize),
	}
	state, ok := h.topics[topic]
	if !ok {
		state = &topicState{subscribers: make(map[*Subscription]struct{})}
		h.topics[topic] = state
	}
	state.subscribers[sub] = struct{}{}
	h.count++
	h.mu.Unlock()

	h.observer.SubscriberAdded(topic.Kind())
	h.refreshTopic(ctx, topic, sub)
	return sub, nil
}

// Refresh queries every active topic once and broadcasts what changed.
func (h *Hub) Refresh(ctx context.Context) {
	h.RefreshTopics(ctx, h.activeTopics()...)
}

// RefreshTopics refreshes the given topics; those without subscribers are skipped.
func (h *Hub) RefreshTopics(ctx context.Context, topics ...Topic) {
	for _, topic := range topics {
		if ctx.Err() != nil {
			return
		}
		h.refreshTopic(ctx, topic, nil)
	}
}

// HandleChange refreshes the topics a committed change may affect.
func (h *Hub) HandleChange(ctx context.Context, change ports.OrderChange) {
	h.RefreshTopics(ctx, topicsFor(change)...)
}

// Run consumes the change feed until ctx is done.
func (h *Hub) Run(ctx context.Context, feed ports.ChangeFeed) error {
	return feed.Listen(ctx, func(change ports.OrderChange) {
		h.HandleChange(ctx, change)
	})
}

// Close ends every subscription; their frame channels are closed so writers
// can say goodbye to their clients. Subscribe fails afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for topic, state := range h.topics {
		for sub := range state.subscribers {
			close(sub.frames)
			h.observer.SubscriberRemoved(topic.Kind())
		}
	}
	h.topics = make(map[Topic]*topicState)
	h.count = 0
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

func (h *Hub) activeTopics() []Topic {
	h.mu.Lock()
	defer h.mu.Unlock()

	topics := make([]Topic, 0, len(h.topics))
	for topic := range h.topics {
		topics = append(topics, topic)
	}
	return topics
}

func (h *Hub) hasSubscribers(topic Topic) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.topics[topic]
	return ok
}

// refreshTopic queries topic and broadcasts the payload when it changed.
// newcomer, when set, gets the payload even if nothing changed.
func (h *Hub) refreshTopic(ctx context.Context, topic Topic, newcomer *Subscription) {
	if !h.hasSubscribers(topic) {
		return
	}

	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	started := time.Now()
	payload, err := h.source.Snapshot(ctx, topic)
	h.observer.TopicRefreshed(topic.Kind(), time.Since(started), err)
	if err != nil {
		h.logger.Warn("topic refresh failed", "topic", topic, "error", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.topics[topic]
	if !ok {
		return
	}

	switch {
	case err == nil && !bytes.Equal(payload, state.last):
		state.last = payload
		for sub := range state.subscribers {
			h.push(sub, payload)
		}
		h.observer.Broadcast()
	case newcomer != nil && state.last != nil:
		if _, live := state.subscribers[newcomer]; live {
			h.push(newcomer, state.last)
		}
	}
}

// push queues frame for sub, dropping the oldest pending frame when full.
// Must be called with h.mu held.
func (h *Hub) push(sub *Subscription, frame []byte) {
	for {
		select {
		case sub.frames <- frame:
			return
		default:
		}
		select {
		case <-sub.frames:
			h.observer.FrameDropped()
		default:
		}
	}
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	if _, live := state.subscribers[sub]; !live {
		return
	}
	delete(state.subscribers, sub)
	close(sub.frames)
	h.count--
	if len(state.subscribers) == 0 {
		delete(h.topics, sub.topic)
	}
	h.observer.SubscriberRemoved(sub.topic.Kind())
}

// Subscription is one subscriber's stream of frames.
type Subscription struct {
	topic  Topic
	hub    *Hub
	frames chan []byte
	once   sync.Once
}

func (s *Subscription) Topic() Topic {
	return s.topic
}

// Frames yields encoded payloads. It is closed by Close or when the hub closes.
func (s *Subscription) Frames() <-chan []byte {
	return s.frames
}

// Close unsubscribes. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.unsubscribe(s) })
}

type nopObserver struct{}

func (nopObserver) SubscriberAdded(string)                      {}
func (nopObserver) SubscriberRemoved(string)                    {}
func (nopObserver) FrameDropped()                               {}
func (nopObserver) Broadcast()                                  {}
func (nopObserver) TopicRefreshed(string, time.Duration, error) {}
