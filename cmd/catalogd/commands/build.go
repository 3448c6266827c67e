package commands

import (
	"context"
	"fmt"

	"github.com/yigityalim/imperial-tobacco-web/internal/config"
	"github.com/yigityalim/imperial-tobacco-web/internal/content"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	ContentDir string `short:"d" help:"Override content directory from config"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dir := cfg.Content.Dir
	if b.ContentDir != "" {
		dir = b.ContentDir
	}

	snap, result, err := buildSnapshot(context.Background(), dir, "build", nil, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Snapshot %s\n", snap.ID)
	for _, kind := range content.Kinds() {
		fmt.Printf("  %-10s %d published\n", kind, len(snap.ByKind(kind)))
	}
	if len(result.Problems) > 0 {
		fmt.Printf("Excluded documents:\n")
		for _, p := range result.Problems {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
