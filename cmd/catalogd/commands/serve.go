package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"

	"github.com/yigityalim/imperial-tobacco-web/internal/config"
	"github.com/yigityalim/imperial-tobacco-web/internal/eventlog"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
	"github.com/yigityalim/imperial-tobacco-web/internal/metrics"
	"github.com/yigityalim/imperial-tobacco-web/internal/server"
	"github.com/yigityalim/imperial-tobacco-web/internal/watch"
)

// ServeCmd implements the 'serve' command: build a snapshot and serve it,
// rebuilding on content changes and on the optional schedule.
type ServeCmd struct {
	Addr string `help:"Override server listen address from config"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder()

	var events *eventlog.Store
	if cfg.Server.EventLogPath != "" {
		events, err = eventlog.Open(cfg.Server.EventLogPath)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer events.Close()
	}

	snap, _, err := buildSnapshot(ctx, cfg.Content.Dir, "startup", recorder, events)
	if err != nil {
		return err
	}
	holder := index.NewHolder(snap)

	rebuild := func(trigger string) {
		next, _, err := buildSnapshot(ctx, cfg.Content.Dir, trigger, recorder, events)
		if err != nil {
			// Keep serving the previous snapshot; a broken content edit must
			// not take the site down.
			slog.Error("Snapshot rebuild failed, keeping previous snapshot", "trigger", trigger, "error", err)
			return
		}
		holder.Swap(next)
	}

	if cfg.Rebuild.Watch {
		watcher, err := watch.New(cfg.Content.Dir, func() { rebuild("watch") })
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	if interval := cfg.Rebuild.Interval.Std(); interval > 0 {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return fmt.Errorf("create scheduler: %w", err)
		}
		if _, err := scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(func() { rebuild("schedule") }),
		); err != nil {
			return fmt.Errorf("schedule rebuild: %w", err)
		}
		scheduler.Start()
		defer func() { _ = scheduler.Shutdown() }()
		slog.Info("Scheduled periodic rebuild", "interval", interval)
	}

	srv := server.New(cfg, server.Options{
		Holder:   holder,
		Recorder: recorder,
		Events:   events,
	})
	return srv.Start(ctx)
}
