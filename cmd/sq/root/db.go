package root

import (
	"context"
	"database/sql"

	"github.com/OGaCu/madventure/internal/config"
	"github.com/OGaCu/madventure/internal/engine"
	"github.com/OGaCu/madventure/internal/storage"
)

func openDB(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	override := cfg.DBPath
	if dbPathFlag != "" {
		override = dbPathFlag
	}
	path, err := storage.ResolveDBPath(override)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load(envFileFlag)
	if err != nil {
		return nil, nil, err
	}
	db, cleanup, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []engine.Option{
		engine.WithLogger(cfg.Logger()),
		engine.WithPlayerName(cfg.PlayerName),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithGenerator(engine.NewSeededGenerator(cfg.Seed)))
	}

	svc, err := engine.NewService(ctx, storage.NewSnapshotRepo(db), opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
