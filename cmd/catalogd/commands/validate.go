package commands

import (
	"context"
	"fmt"

	"github.com/yigityalim/imperial-tobacco-web/internal/config"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
	"github.com/yigityalim/imperial-tobacco-web/internal/loader"
)

// ValidateCmd implements the 'validate' command: load and validate the
// content tree, list every problem, and exit non-zero when any exists.
type ValidateCmd struct {
	ContentDir string `short:"d" help:"Override content directory from config"`
}

func (v *ValidateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dir := cfg.Content.Dir
	if v.ContentDir != "" {
		dir = v.ContentDir
	}

	result, err := loader.Load(context.Background(), dir)
	if err != nil {
		return err
	}

	// Slug collisions are build-time problems too; surface them here rather
	// than letting serve mode hit them first.
	if _, err := index.Build(result.Documents); err != nil {
		fmt.Printf("FAIL %v\n", err)
		return err
	}

	if len(result.Problems) == 0 {
		fmt.Printf("OK %d documents\n", len(result.Documents))
		return nil
	}

	for _, p := range result.Problems {
		fmt.Printf("FAIL %s\n", p)
	}
	return fmt.Errorf("%d document(s) failed validation", len(result.Problems))
}
