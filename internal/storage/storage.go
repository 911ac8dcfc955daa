package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ArowuTest/lottery-insights/internal/config"
	"github.com/ArowuTest/lottery-insights/internal/repositories"
	"github.com/ArowuTest/lottery-insights/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/lottery-insights/internal/repositories/mongodb"
	sqliterepo "github.com/ArowuTest/lottery-insights/internal/repositories/sqlite"
	"github.com/ArowuTest/lottery-insights/pkg/mongodb"
	"github.com/ArowuTest/lottery-insights/pkg/sqlite"
)

// Supported storage drivers
const (
	DriverSQLite  = "sqlite"
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Store is an opened draw repository and the connection behind it
type Store struct {
	Draws  repositories.DrawRepository
	Driver string
	close  func(ctx context.Context) error
}

// Close releases the underlying connection
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects the draw repository selected by cfg.Storage.Driver
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch driver {
	case DriverSQLite, "":
		client, err := sqlite.NewClient(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo, err := sqliterepo.NewDrawRepository(ctx, client.DB())
		if err != nil {
			client.Close()
			return nil, err
		}
		slog.Info("Using sqlite draw store", "path", client.Path())
		return &Store{
			Draws:  repo,
			Driver: DriverSQLite,
			close:  func(context.Context) error { return client.Close() },
		}, nil

	case DriverMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
		if err != nil {
			return nil, err
		}
		repo, err := mongorepo.NewDrawRepository(ctx, client.Database(cfg.MongoDB.Database))
		if err != nil {
			client.Disconnect(ctx)
			return nil, err
		}
		slog.Info("Using MongoDB draw store", "database", cfg.MongoDB.Database)
		return &Store{
			Draws:  repo,
			Driver: DriverMongoDB,
			close:  client.Disconnect,
		}, nil

	case DriverMemory:
		slog.Warn("Using in-memory draw store, history is lost on restart")
		return &Store{Draws: memory.NewDrawRepository(), Driver: DriverMemory}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q (want sqlite, mongodb or memory)", cfg.Storage.Driver)
	}
}
