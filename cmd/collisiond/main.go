package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/collision/internal/config"
	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/observability/log"
	"github.com/zeusync/collision/internal/injector"
	"github.com/zeusync/collision/internal/level"
	"github.com/zeusync/collision/internal/sim"
	"github.com/zeusync/collision/internal/vizfeed"
)

const wallType = 1

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "collisiond:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFile(configPath); err != nil {
			return err
		}
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()
	logger := app.Logger

	lvl, err := loadLevel(cfg)
	if err != nil {
		return err
	}
	if err = lvl.Apply(app.Handler); err != nil {
		return err
	}
	logger.Info("level loaded", log.String("name", lvl.Name), log.Int("static", len(lvl.Geometry)))

	sc := cfg.Simulation
	if err = app.Scene.Spawn(sim.Options{
		Bodies:   sc.Bodies,
		Seed:     sc.Seed,
		Width:    sc.Width,
		Height:   sc.Height,
		MaxSpeed: sc.MaxSpeed,
	}); err != nil {
		return err
	}

	var frames chan vizfeed.Frame
	if cfg.Viz.Enabled {
		frames = make(chan vizfeed.Frame, 1)
	}
	onReport := func(r collision.Report) {
		if frames == nil || r.Frame%uint64(cfg.Viz.FrameStride) != 0 {
			return
		}
		select {
		case frames <- vizfeed.NewFrame(r, app.Scene.Snapshot()):
		default:
		}
	}
	if err = app.Scene.Install(app.Runner, onReport); err != nil {
		return err
	}
	app.Runner.OnSystemError(func(name string, err error) {
		logger.Warn("system failed", log.String("system", name), log.Error(err))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if sc.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sc.Duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer func() {
			if frames != nil {
				close(frames)
			}
		}()
		return tick(ctx, app, sc.TickInterval())
	})
	if cfg.Viz.Enabled {
		g.Go(func() error { return app.Hub.Serve(ctx, cfg.Viz.Addr) })
		g.Go(func() error {
			for f := range frames {
				if err := app.Hub.Broadcast(f); err != nil {
					logger.Warn("broadcast failed", log.Error(err))
				}
			}
			return nil
		})
	}

	err = g.Wait()
	m := app.Handler.Metrics()
	bm := app.Bus.GetMetrics()
	logger.Info("stopped",
		log.Uint64("sweeps", m.Sweeps),
		log.Uint64("contacts", m.Contacts),
		log.Duration("avg_sweep", m.AverageSweepTime),
		log.Uint64("dropped_frames", app.Hub.Dropped()),
		log.Uint64("bus_published", bm.Published),
		log.Uint64("bus_errors", bm.Errors),
	)
	for _, tc := range app.Tally.Counts() {
		logger.Info("body contacts", log.Int("other_type", int(tc.Type)), log.Uint64("count", tc.Count))
	}
	return err
}

func tick(ctx context.Context, app *injector.App, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := app.Runner.Update(dt); err != nil {
				app.Logger.Debug("tick errors", log.Error(err))
			}
		}
	}
}

func loadLevel(cfg *config.Config) (*level.Level, error) {
	if cfg.Level.Path != "" {
		return level.LoadFile(cfg.Level.Path)
	}
	s := cfg.Simulation
	return level.WalledArena(s.Width, s.Height, 20, wallType), nil
}
