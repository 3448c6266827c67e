// Package commands implements the catalogd CLI commands.
package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/yigityalim/imperial-tobacco-web/internal/eventlog"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
	"github.com/yigityalim/imperial-tobacco-web/internal/loader"
	"github.com/yigityalim/imperial-tobacco-web/internal/metrics"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"catalog.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Build a content snapshot and report its contents"`
	Validate ValidateCmd `cmd:"" help:"Validate content documents without serving"`
	Serve    ServeCmd    `cmd:"" help:"Build a snapshot and serve the catalog API"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// buildSnapshot runs one full load + index build, recording metrics and an
// event log entry when those collaborators are present.
func buildSnapshot(ctx context.Context, contentDir, trigger string, recorder *metrics.Recorder, events *eventlog.Store) (*index.Snapshot, *loader.Result, error) {
	start := time.Now()

	result, err := loader.Load(ctx, contentDir)
	if err != nil {
		return nil, nil, err
	}

	snap, err := index.Build(result.Documents)
	if err != nil {
		return nil, result, err
	}

	elapsed := time.Since(start)
	slog.Info("Snapshot built",
		"snapshot_id", snap.ID,
		"documents", snap.Len(),
		"problems", len(result.Problems),
		"duration", elapsed,
		"trigger", trigger)

	if recorder != nil {
		recorder.ObserveSnapshotBuild(elapsed, snap.Len(), len(result.Problems))
		recorder.IncRebuild(trigger)
	}
	if events != nil {
		if err := events.Append(ctx, eventlog.Event{
			SnapshotID: snap.ID,
			Trigger:    trigger,
			Documents:  snap.Len(),
			Problems:   len(result.Problems),
			Duration:   elapsed,
		}); err != nil {
			slog.Warn("Failed to record rebuild event", "error", err)
		}
	}

	return snap, result, nil
}
