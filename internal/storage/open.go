package storage

import (
	"fmt"

	"github.com/hperssn/spinwheel/internal/config"
)

// Open builds the repository selected by cfg.Driver.
func Open(cfg config.StorageConfig) (Repository, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemoryRepository(), nil
	case config.DriverSQLite:
		return NewSQLiteRepository(cfg.SQLite.Path)
	case config.DriverPostgres:
		return NewPostgresRepository(cfg.Postgres.URL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
