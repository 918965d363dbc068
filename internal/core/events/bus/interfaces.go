package bus

import "time"

// EventBus is an in-process, synchronous pub/sub bus.
//
// Events are routed by topic and then by Event.Type(). PublishToTopic calls
// every matching handler in the publishing goroutine, in subscription order,
// and joins their errors. All methods are safe for concurrent use.
type EventBus interface {
	// CreateTopic declares a topic. Repeat declarations are no-ops.
	CreateTopic(name string, config TopicConfig) error
	// SubscribeTopic registers handler for eventType within topic, declaring
	// the topic when needed.
	SubscribeTopic(topic, eventType string, handler EventHandler) (Subscription, error)
	PublishToTopic(topic string, event Event) error

	// AddObserver registers an observer called after every delivery.
	AddObserver(obs Observer)
	// GetMetrics returns a snapshot of the delivery counters.
	GetMetrics() Metrics
}

// Event is an immutable message carried by the bus.
//
// Fields:
// - Type: routing key within a topic.
// - Source: free-form publisher name.
// - Timestamp: creation time.
// - Data: payload for handlers.
//
// Collision events travel with Data set to the collision.Event value and
// Type derived from the receiving object's type tag.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler is invoked once per delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}

type TopicConfig struct {
	// Description is informational only.
	Description string
}

// Observer sees the outcome of every delivery. It runs in the publishing
// goroutine and should return quickly.
type Observer interface {
	OnDelivered(topic, eventType string, handlers int, err error, took time.Duration)
}

type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	Subscribers       uint64
	Topics            uint64
}
