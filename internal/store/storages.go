package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
)

// Backend names returned by [BackendForDSN].
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Storages groups the repositories the application uses together with the
// connection that backs them.
type Storages struct {
	// HealthRecords persists synced health records.
	HealthRecords HealthRecordRepository

	// Backend is one of BackendMemory, BackendPostgres or BackendSQLite.
	Backend string

	db *DB
}

// NewStorages selects a backend from cfg.DB.DSN, opens it, runs migrations
// for the SQL backends and wires the repositories.
//
//   - "memory" selects [MemoryHealthRecordRepository];
//   - "postgres://" and "postgresql://" select PostgreSQL via pgx;
//   - anything else is treated as a SQLite file path or "file:" DSN.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	backend, err := BackendForDSN(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	var db *DB
	switch backend {
	case BackendMemory:
		return &Storages{
			HealthRecords: NewMemoryHealthRecordRepository(logger),
			Backend:       backend,
		}, nil
	case BackendPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
	default:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		HealthRecords: NewHealthRecordRepository(db, logger),
		Backend:       backend,
		db:            db,
	}, nil
}

// BackendForDSN maps a DSN to the backend that serves it.
func BackendForDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", ErrUnsupportedDSN
	case strings.EqualFold(dsn, BackendMemory):
		return BackendMemory, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres, nil
	default:
		return BackendSQLite, nil
	}
}

// Close releases the underlying connection, if any.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
