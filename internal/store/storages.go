package store

import (
	"context"
	"strings"

	"github.com/MKhiriev/mn-config/internal/config"
	"github.com/MKhiriev/mn-config/internal/logger"
)

// Storages aggregates the repositories backing the service layer.
type Storages struct {
	Documents DocumentRepository

	db *DB
}

// NewStorages selects and initializes the document store backend from the
// storage configuration:
//   - a DSN starting with "postgres" selects PostgreSQL (pgx driver);
//   - any other non-empty DSN is treated as a SQLite database file;
//   - no DSN at all selects the JSON file store at Files.DocumentsPath.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch {
	case strings.HasPrefix(cfg.DB.DSN, "postgres"):
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			Documents: NewConfigDocumentRepository(db, log),
			db:        db,
		}, nil

	case cfg.DB.DSN != "":
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		return &Storages{
			Documents: NewConfigDocumentRepository(db, log),
			db:        db,
		}, nil

	default:
		repo, err := NewFileDocumentRepository(cfg.Files.DocumentsPath, log)
		if err != nil {
			return nil, err
		}
		return &Storages{Documents: repo}, nil
	}
}

// Close releases the underlying database connection if one was opened. The
// file-backed store holds no long-lived resources.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
