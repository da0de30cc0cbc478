package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/GatherNode_Go/internal/config"
	"github.com/osse101/GatherNode_Go/internal/database"
	"github.com/osse101/GatherNode_Go/internal/database/memory"
	"github.com/osse101/GatherNode_Go/internal/database/postgres"
	"github.com/osse101/GatherNode_Go/internal/repository"
)

// Storage holds the depletion repository the authority server persists to
type Storage struct {
	Depletions repository.Depletion
	pool       *pgxpool.Pool
}

// HealthPool returns the pool readiness checks should ping, or nil for
// in-memory storage
func (s *Storage) HealthPool() database.Pool {
	if s.pool == nil {
		return nil
	}
	return s.pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitializeStorage opens the backend named by cfg.Storage. Postgres storage
// is migrated to the latest schema before use.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage {
	case StorageMemory:
		slog.Info(LogMsgStorageInitialized, "backend", StorageMemory)
		return &Storage{Depletions: memory.NewDepletionRepository()}, nil

	case StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: DBMaxIdleTime,
			MaxConnLifetime: DBMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDB, err)
		}
		slog.Info(LogMsgStorageInitialized, "backend", StoragePostgres, "db_host", cfg.DBHost, "db_name", cfg.DBName)
		return &Storage{Depletions: postgres.NewDepletionRepository(pool), pool: pool}, nil
	}

	return nil, fmt.Errorf(ErrMsgUnknownStorage, cfg.Storage)
}
