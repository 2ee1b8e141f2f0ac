package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/seatmap/internal/config"
	"github.com/rpggio/seatmap/internal/domain/activity"
	"github.com/rpggio/seatmap/internal/domain/editor"
	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/rpggio/seatmap/internal/domain/geometry"
	"github.com/rpggio/seatmap/internal/domain/session"
	"github.com/rpggio/seatmap/internal/mongostore"
	"github.com/rpggio/seatmap/internal/redisstore"
	"github.com/rpggio/seatmap/internal/sqlite"
)

// app holds the wired services for one process.
type app struct {
	layout   *session.Service
	floors   *floor.Service
	activity *activity.Service
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// openApp connects the stores and builds the services. The furniture layout
// lives in the configured backend; floor settings and the activity log
// always live in SQLite. mode overrides the configured start mode when set.
func openApp(ctx context.Context, cfg config.Config, mode editor.Mode, logger *slog.Logger) (*app, error) {
	a := &app{}

	if err := ensureDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, err
	}

	furnitureRepo, err := openFurniture(ctx, cfg, db, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	if mode == "" {
		mode = editor.Mode(cfg.Layout.StartMode)
	}
	ed := editor.New(editor.Options{
		Grid:         cfg.Grid.Grid(),
		DefaultFloor: cfg.Layout.DefaultFloor,
		ViewRotation: geometry.NormalizeRotation(cfg.Layout.ViewRotation),
		Mode:         mode,
	})

	a.activity = activity.NewService(sqlite.NewActivityRepository(db), logger)
	a.floors = floor.NewService(sqlite.NewFloorRepository(db), a.activity, logger)
	a.layout = session.NewService(ed, furnitureRepo, a.activity, logger)

	logger.Info("stores ready", "backend", cfg.Store.Backend, "db", cfg.DB.Path)
	return a, nil
}

func openFurniture(ctx context.Context, cfg config.Config, db *sqlite.DB, a *app) (furniture.Repository, error) {
	switch cfg.Store.Backend {
	case "", "sqlite":
		return sqlite.NewFurnitureRepository(db), nil
	case "redis":
		rdb, err := redisstore.NewClient(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		return redisstore.NewFurnitureRepository(rdb, cfg.Redis.Prefix), nil
	case "mongo":
		client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
		database := cfg.Mongo.Database
		if database == "" {
			database = mongostore.DefaultDatabase
		}
		collection := cfg.Mongo.Collection
		if collection == "" {
			collection = mongostore.DefaultCollection
		}
		repo := mongostore.NewFurnitureRepository(client.Database(database).Collection(collection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalidConfig, cfg.Store.Backend)
	}
}
