package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/config"
	"github.com/KirkDiggler/rpg-battle/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
)

const redisPingTimeout = 5 * time.Second

// runtime is the wired battle service and the resources backing it
type runtime struct {
	service encounter.Service
	closers []func() error
}

// runtimeOptions lets tests swap the id generator and stores
type runtimeOptions struct {
	idGen idgen.Generator
	repo  battles.Repository
}

func newRuntime(ctx context.Context, cfg *config.Config, opts *runtimeOptions) (*runtime, error) {
	if opts == nil {
		opts = &runtimeOptions{}
	}
	rt := &runtime{}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	bus.SubscribeFunc(rpgtoolkit.EventTypeBattleEnded, 0, func(_ context.Context, e events.Event) error {
		slog.Debug("Battle event published", "event_type", e.Type())
		return nil
	})

	adapter, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus: bus,
		Catalog:  cat,
	})
	if err != nil {
		return nil, err
	}

	repo := opts.repo
	if repo == nil {
		repo, err = rt.openStore(ctx, cfg)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
	}

	var archive battles.Repository
	if cfg.ArchivePath != "" {
		db, err := battles.OpenSQLite(ctx, &battles.SQLiteConfig{Path: cfg.ArchivePath})
		if err != nil {
			_ = rt.Close()
			return nil, errors.Wrap(err, "failed to open archive")
		}
		rt.closers = append(rt.closers, db.Close)
		archive = db
	}

	gen := opts.idGen
	if gen == nil {
		gen = idgen.NewUUID("battle")
	}

	svc, err := encounter.NewOrchestrator(&encounter.Config{
		Engine:      adapter,
		BattleRepo:  repo,
		IDGenerator: gen,
		Archive:     archive,
	})
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.service = svc

	slog.Debug("Battle service ready",
		"store", cfg.Store,
		"archive", cfg.ArchivePath != "",
	)
	return rt, nil
}

func loadCatalog(cfg *config.Config) (catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Standard()
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

func (rt *runtime) openStore(ctx context.Context, cfg *config.Config) (battles.Repository, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redisclient.Connect(ctx, redisclient.Settings{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			PingTimeout: redisPingTimeout,
		})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
		}
		rt.closers = append(rt.closers, client.Close)
		return battles.NewRedis(&battles.RedisConfig{
			Client: client,
			Clock:  clock.New(),
			TTL:    cfg.SnapshotTTL,
		})
	case config.StoreSQLite:
		db, err := battles.OpenSQLite(ctx, &battles.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, db.Close)
		return db, nil
	default:
		return battles.NewInMemory(), nil
	}
}

// Close releases store connections in reverse order of opening
func (rt *runtime) Close() error {
	var first error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	rt.closers = nil
	return first
}
