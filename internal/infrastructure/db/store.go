// Package db selects and opens the record store configured by STORE_DRIVER.
package db

import (
	"context"
	"fmt"

	"github.com/animetrack/anime-tracker/internal/core/ports"
	"github.com/animetrack/anime-tracker/internal/infrastructure/db/gormdb"
	mongostore "github.com/animetrack/anime-tracker/internal/infrastructure/db/mongo"
	"github.com/animetrack/anime-tracker/internal/pkg/config"
)

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Driver string
	Users  ports.UserRepository
	Animes ports.AnimeRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error  { return s.ping(ctx) }
func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		return openGorm(ctx, gormdb.DriverSQLite, cfg.SQLitePath)
	case config.StorePostgres:
		return openGorm(ctx, gormdb.DriverPostgres, cfg.DatabaseURL)
	case config.StoreMongo:
		return openMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func openGorm(ctx context.Context, driver, dsn string) (*Store, error) {
	gdb, err := gormdb.Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{
		Driver: driver,
		Users:  gormdb.NewUserRepository(gdb),
		Animes: gormdb.NewAnimeRepository(gdb),
		ping:   func(ctx context.Context) error { return gormdb.Ping(ctx, gdb) },
		close:  func(context.Context) error { return gormdb.Close(gdb) },
	}, nil
}

func openMongo(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	client, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.MongoURI, Database: cfg.MongoDB})
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Store{
		Driver: config.StoreMongo,
		Users:  mongostore.NewUserRepository(mdb),
		Animes: mongostore.NewAnimeRepository(mdb),
		ping:   func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:  client.Disconnect,
	}, nil
}
