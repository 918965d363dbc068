package bus

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type event struct {
	typ    string
	source string
	ts     time.Time
	data   any
}

func (e event) Type() string         { return e.typ }
func (e event) Source() string       { return e.source }
func (e event) Timestamp() time.Time { return e.ts }
func (e event) Data() any            { return e.data }

// NewEvent stamps a new event with the current time.
func NewEvent(typ, source string, data any) Event {
	return event{typ: typ, source: source, ts: time.Now(), data: data}
}

type subscription struct {
	id        string
	topic     string
	eventType string
	handler   EventHandler
	bus       *inMemoryBus

	mu     sync.Mutex
	active bool
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) EventType() string { return s.eventType }

func (s *subscription) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *subscription) Cancel() error {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.mu.Unlock()
	if wasActive {
		s.bus.remove(s)
	}
	return nil
}

type routeKey struct {
	topic     string
	eventType string
}

type inMemoryBus struct {
	mu        sync.RWMutex
	routes    map[routeKey][]*subscription
	topics    map[string]TopicConfig
	observers []Observer
	metrics   Metrics
}

func New() EventBus {
	return &inMemoryBus{
		routes: make(map[routeKey][]*subscription),
		topics: make(map[string]TopicConfig),
	}
}

func (b *inMemoryBus) CreateTopic(name string, config TopicConfig) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.topics[name]; !ok {
		b.topics[name] = config
	}
	return nil
}

func (b *inMemoryBus) SubscribeTopic(topic, eventType string, handler EventHandler) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	s := &subscription{
		id:        uuid.NewString(),
		topic:     topic,
		eventType: eventType,
		handler:   handler,
		bus:       b,
		active:    true,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.topics[topic]; !ok {
		b.topics[topic] = TopicConfig{}
	}
	key := routeKey{topic, eventType}
	b.routes[key] = append(b.routes[key], s)
	return s, nil
}

func (b *inMemoryBus) remove(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := routeKey{s.topic, s.eventType}
	subs := b.routes[key]
	for i, other := range subs {
		if other == s {
			b.routes[key] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (b *inMemoryBus) PublishToTopic(topic string, e Event) error {
	if e == nil {
		return ErrNilEvent
	}
	start := time.Now()
	b.mu.RLock()
	// Copy so handlers may subscribe or cancel while we deliver.
	subs := append([]*subscription(nil), b.routes[routeKey{topic, e.Type()}]...)
	observers := append([]Observer(nil), b.observers...)
	b.mu.RUnlock()

	var all error
	delivered := 0
	for _, s := range subs {
		if !s.IsActive() {
			continue
		}
		delivered++
		if err := s.handler(e); err != nil {
			all = errors.Join(all, err)
		}
	}

	b.mu.Lock()
	b.metrics.Published++
	b.metrics.DeliveredHandlers += uint64(delivered)
	if all != nil {
		b.metrics.Errors++
	}
	b.mu.Unlock()

	took := time.Since(start)
	for _, obs := range observers {
		obs.OnDelivered(topic, e.Type(), delivered, all, took)
	}
	return all
}

func (b *inMemoryBus) AddObserver(obs Observer) {
	b.mu.Lock()
	b.observers = append(b.observers, obs)
	b.mu.Unlock()
}

func (b *inMemoryBus) GetMetrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := b.metrics
	m.Topics = uint64(len(b.topics))
	for _, subs := range b.routes {
		m.Subscribers += uint64(len(subs))
	}
	return m
}
