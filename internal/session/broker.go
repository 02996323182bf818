package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/launchpad-labs/project-starter/internal/logging"
	"github.com/launchpad-labs/project-starter/internal/session/domain"
)

// Handler observes session-change events.
type Handler func(domain.Event)

// Subscription is a live observer registration.
type Subscription interface {
	// Unsubscribe stops delivery. Safe to call more than once.
	Unsubscribe()
}

// Broker fans session-change events out to observers of a browser context.
type Broker interface {
	Publish(ctx context.Context, ev domain.Event) error
	Subscribe(ctx context.Context, contextID string, h Handler) (Subscription, error)
}

// MemoryBroker delivers events synchronously inside one process.
type MemoryBroker struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string]map[uint64]Handler
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[uint64]Handler)}
}

func (b *MemoryBroker) Publish(_ context.Context, ev domain.Event) error {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[ev.ContextID]))
	for _, h := range b.subs[ev.ContextID] {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, contextID string, h Handler) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if b.subs[contextID] == nil {
		b.subs[contextID] = make(map[uint64]Handler)
	}
	b.subs[contextID][id] = h

	return &memorySubscription{broker: b, contextID: contextID, id: id}, nil
}

// Subscribers reports how many observers are registered for contextID.
func (b *MemoryBroker) Subscribers(contextID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[contextID])
}

type memorySubscription struct {
	broker    *MemoryBroker
	contextID string
	id        uint64
	once      sync.Once
}

func (s *memorySubscription) Unsubscribe() {
	s.once.Do(func() {
		s.broker.mu.Lock()
		defer s.broker.mu.Unlock()
		delete(s.broker.subs[s.contextID], s.id)
		if len(s.broker.subs[s.contextID]) == 0 {
			delete(s.broker.subs, s.contextID)
		}
	})
}

const eventChannelPrefix = "session:events:" // Pub/Sub channel: session:events:{context_id}

// RedisBroker delivers events through Redis Pub/Sub so every replica sees them.
type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, ev domain.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, eventChannelPrefix+ev.ContextID, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, contextID string, h Handler) (Subscription, error) {
	ps := b.client.Subscribe(ctx, eventChannelPrefix+contextID)
	// Wait for the subscription confirmation so no event published after
	// Subscribe returns can be missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	sub := &redisSubscription{ps: ps, done: make(chan struct{})}
	go func() {
		defer close(sub.done)
		for msg := range ps.Channel() {
			var ev domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logging.NewLogger(ctx).LogWarnf("session_event", "dropping malformed event: %v", err)
				continue
			}
			h(ev)
		}
	}()
	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	done chan struct{}
	once sync.Once
}

func (s *redisSubscription) Unsubscribe() {
	s.once.Do(func() {
		_ = s.ps.Close()
		<-s.done
	})
}
