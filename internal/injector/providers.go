package injector

import (
	"time"

	"github.com/google/wire"

	"github.com/zeusync/collision/internal/config"
	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/events/bus"
	"github.com/zeusync/collision/internal/core/observability/log"
	"github.com/zeusync/collision/internal/core/systems"
	"github.com/zeusync/collision/internal/sim"
	"github.com/zeusync/collision/internal/vizfeed"
)

// CollisionTopic is the bus topic collision events are published on.
const CollisionTopic = "collision"

// App is the wired collisiond object graph.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Bus     bus.EventBus
	Handler *collision.Handler
	Scene   *sim.Scene
	Runner  *systems.Runner
	Hub     *vizfeed.Hub
	Tally   *sim.ContactTally
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	collision.NewArena,
	ProvideHandler,
	ProvideScene,
	ProvideRunner,
	ProvideHub,
	ProvideTally,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	if cfg.Log.Encoding == "json" {
		return log.New(cfg.LogLevel())
	}
	return log.NewConsole(cfg.LogLevel())
}

// deliveryLogger reports failed bus deliveries.
type deliveryLogger struct {
	logger log.Log
}

func (d deliveryLogger) OnDelivered(topic, eventType string, handlers int, err error, took time.Duration) {
	if err == nil {
		return
	}
	d.logger.Warn("bus delivery failed",
		log.String("topic", topic),
		log.String("type", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", took),
		log.Error(err),
	)
}

func ProvideBus(logger *log.Logger) (bus.EventBus, error) {
	b := bus.New()
	b.AddObserver(deliveryLogger{logger: logger.Named("bus")})
	if err := b.CreateTopic(CollisionTopic, bus.TopicConfig{Description: "collision events keyed by receiver type"}); err != nil {
		return nil, err
	}
	return b, nil
}

func ProvideHandler(arena *collision.Arena, logger *log.Logger, b bus.EventBus) *collision.Handler {
	return collision.NewHandler(arena,
		collision.WithLogger(logger.Named("collision")),
		collision.WithSink(collision.NewBusSink(b, CollisionTopic)),
	)
}

func ProvideScene(h *collision.Handler, logger *log.Logger) *sim.Scene {
	return sim.NewScene(h, logger.Named("scene"))
}

func ProvideRunner(logger *log.Logger) *systems.Runner {
	return systems.NewRunner(logger.Named("systems"))
}

func ProvideTally(b bus.EventBus) (*sim.ContactTally, error) {
	return sim.NewContactTally(b, CollisionTopic)
}

func ProvideHub(logger *log.Logger) *vizfeed.Hub {
	return vizfeed.NewHub(logger.Named("vizfeed"))
}
