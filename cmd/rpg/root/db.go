package root

import (
	"context"
	"log/slog"
	"os"

	"github.com/jwebster45206/rpg-engine/internal/config"
	"github.com/jwebster45206/rpg-engine/internal/storage"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
)

func openRepo(ctx context.Context, opts *options) (*storage.PlayerRepo, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	path := opts.dbPath
	if path == "" {
		path = cfg.DBPath
	}

	level := slog.LevelError
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	db, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return storage.NewPlayerRepo(db, logger), cleanup, nil
}

// seedFor returns the configured seed, or a fresh one when none is set.
func seedFor(flag uint64) (uint64, error) {
	if flag != 0 {
		return flag, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	if cfg.RNGSeed != 0 {
		return cfg.RNGSeed, nil
	}
	return dice.NewSeed()
}
