// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/models"
)

const configDocumentsTable = "config_documents"

var configDocumentColumns = []string{
	"tenant", "env", "component_key", "scope_type", "scope_key",
	"version", "value", "created_at", "created_by",
}

// ConfigDocumentRepository persists configuration documents in a SQL table.
// Writes are serialized by a mutex so that the read-max-version/insert pair in
// SaveNewVersion behaves atomically even on backends without row locking.
type ConfigDocumentRepository struct {
	db     *DB
	logger *logger.Logger

	writeMu sync.Mutex
}

// NewConfigDocumentRepository returns a SQL-backed document repository.
func NewConfigDocumentRepository(db *DB, log *logger.Logger) *ConfigDocumentRepository {
	return &ConfigDocumentRepository{db: db, logger: log}
}

// SaveNewVersion appends doc with the next version for its identity+scope
// tuple inside a single transaction and returns the assigned version.
func (r *ConfigDocumentRepository) SaveNewVersion(ctx context.Context, doc models.ConfigDocument) (int64, error) {
	encodedValue, err := json.Marshal(doc.Value)
	if err != nil {
		r.logger.Err(err).Str("func", "SaveNewVersion").Msg("error encoding document value")
		return 0, errors.Join(ErrEncodingValue, err)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Err(err).Str("func", "SaveNewVersion").Msg("error beginning transaction")
		return 0, errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	maxVersionQuery, args, err := r.db.builder.
		Select("COALESCE(MAX(version), 0)").
		From(configDocumentsTable).
		Where(sq.Eq{
			"tenant":        doc.Tenant,
			"env":           doc.Env,
			"component_key": doc.ComponentKey,
			"scope_type":    doc.ScopeType,
			"scope_key":     doc.ScopeKey,
		}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "SaveNewVersion").Msg("error building max version query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	var maxVersion int64
	if err = tx.QueryRowContext(ctx, maxVersionQuery, args...).Scan(&maxVersion); err != nil {
		r.logger.Err(err).Str("func", "SaveNewVersion").Msg("error querying max version")
		return 0, errors.Join(ErrExecutingQuery, err)
	}
	nextVersion := maxVersion + 1

	insertQuery, insertArgs, err := r.db.builder.
		Insert(configDocumentsTable).
		Columns(configDocumentColumns...).
		Values(
			doc.Tenant, doc.Env, doc.ComponentKey, string(doc.ScopeType), doc.ScopeKey,
			nextVersion, encodedValue, doc.CreatedAt, doc.CreatedBy,
		).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "SaveNewVersion").Msg("error building insert query")
		return 0, errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			r.logger.Err(err).Str("func", "SaveNewVersion").Int64("version", nextVersion).Msg("version conflict on insert")
			return 0, ErrVersionConflict
		}
		r.logger.Err(err).Str("func", "SaveNewVersion").Msg("error inserting document")
		return 0, errors.Join(ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		r.logger.Err(err).Str("func", "SaveNewVersion").Msg("error committing transaction")
		return 0, errors.Join(ErrCommitingTransaction, err)
	}

	return nextVersion, nil
}

// Scan returns every stored version of every scope for the identity triple.
func (r *ConfigDocumentRepository) Scan(ctx context.Context, tenant, env, componentKey string) ([]models.ConfigDocument, error) {
	query, args, err := r.db.builder.
		Select(configDocumentColumns...).
		From(configDocumentsTable).
		Where(sq.Eq{"tenant": tenant, "env": env, "component_key": componentKey}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "Scan").Msg("error building select query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "Scan").Msg("error querying documents")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var docs []models.ConfigDocument
	for rows.Next() {
		doc, scanErr := scanConfigDocument(rows)
		if scanErr != nil {
			r.logger.Err(scanErr).Str("func", "Scan").Msg("error scanning document row")
			return nil, scanErr
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "Scan").Msg("error iterating document rows")
		return nil, errors.Join(ErrScanningRows, err)
	}

	return docs, nil
}

// ComponentKeys returns the distinct component keys stored under tenant/env.
func (r *ConfigDocumentRepository) ComponentKeys(ctx context.Context, tenant, env string) ([]string, error) {
	query, args, err := r.db.builder.
		Select("DISTINCT component_key").
		From(configDocumentsTable).
		Where(sq.Eq{"tenant": tenant, "env": env}).
		OrderBy("component_key").
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "ComponentKeys").Msg("error building select query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "ComponentKeys").Msg("error querying component keys")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			r.logger.Err(err).Str("func", "ComponentKeys").Msg("error scanning component key")
			return nil, errors.Join(ErrScanningRows, err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "ComponentKeys").Msg("error iterating component key rows")
		return nil, errors.Join(ErrScanningRows, err)
	}

	return keys, nil
}

// DeleteAll removes every document from the table.
func (r *ConfigDocumentRepository) DeleteAll(ctx context.Context) error {
	query, args, err := r.db.builder.Delete(configDocumentsTable).ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "DeleteAll").Msg("error building delete query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "DeleteAll").Msg("error deleting documents")
		return errors.Join(ErrExecutingQuery, err)
	}

	return nil
}

// DeleteWhere removes all documents matching the exact identity triple.
func (r *ConfigDocumentRepository) DeleteWhere(ctx context.Context, tenant, env, componentKey string) error {
	query, args, err := r.db.builder.
		Delete(configDocumentsTable).
		Where(sq.Eq{"tenant": tenant, "env": env, "component_key": componentKey}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "DeleteWhere").Msg("error building delete query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "DeleteWhere").Msg("error deleting documents")
		return errors.Join(ErrExecutingQuery, err)
	}

	return nil
}

func scanConfigDocument(rows *sql.Rows) (models.ConfigDocument, error) {
	var (
		doc          models.ConfigDocument
		scopeType    string
		encodedValue []byte
	)
	if err := rows.Scan(
		&doc.Tenant, &doc.Env, &doc.ComponentKey, &scopeType, &doc.ScopeKey,
		&doc.Version, &encodedValue, &doc.CreatedAt, &doc.CreatedBy,
	); err != nil {
		return models.ConfigDocument{}, errors.Join(ErrScanningRow, err)
	}

	doc.ScopeType = models.ScopeType(scopeType)
	if len(encodedValue) > 0 {
		if err := json.Unmarshal(encodedValue, &doc.Value); err != nil {
			return models.ConfigDocument{}, errors.Join(ErrDecodingValue, err)
		}
	}

	return doc, nil
}
