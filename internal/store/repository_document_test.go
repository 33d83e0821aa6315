package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/models"
)

func newTestDocumentRepo(t *testing.T) (*ConfigDocumentRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := NewConfigDocumentRepository(&DB{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  l,
	}, l)
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testDocument() models.ConfigDocument {
	return models.ConfigDocument{
		Tenant:       "default",
		Env:          "dev",
		ComponentKey: "mn-table",
		ScopeType:    models.ScopeGlobal,
		ScopeKey:     "*",
		Value:        models.Value{"pageSize": float64(25)},
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		CreatedBy:    "dev",
	}
}

func TestSaveNewVersion_FirstVersion(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec("INSERT INTO config_documents").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	version, err := repo.SaveNewVersion(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version=1, got %d", version)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveNewVersion_IncrementsExistingVersion(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4))
	mock.ExpectExec("INSERT INTO config_documents").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	version, err := repo.SaveNewVersion(context.Background(), testDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version=5, got %d", version)
	}
}

func TestSaveNewVersion_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))
	mock.ExpectExec("INSERT INTO config_documents").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.SaveNewVersion(context.Background(), testDocument())
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestSaveNewVersion_BeginError(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("db is down"))

	_, err := repo.SaveNewVersion(context.Background(), testDocument())
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

func TestScan_ReturnsAllVersions(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(configDocumentColumns).
		AddRow("default", "dev", "mn-table", "global", "*", int64(1), []byte(`{"pageSize":10}`), now, "dev").
		AddRow("default", "dev", "mn-table", "page", "dashboard", int64(1), []byte(`{"pageSize":50}`), now, "alice")

	// squirrel orders Eq arguments by sorted column name
	mock.ExpectQuery("SELECT tenant, env, component_key").
		WithArgs("mn-table", "dev", "default").
		WillReturnRows(rows)

	docs, err := repo.Scan(context.Background(), "default", "dev", "mn-table")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ScopeType != models.ScopeGlobal {
		t.Errorf("expected global scope, got %q", docs[0].ScopeType)
	}
	if got := docs[1].Value["pageSize"]; got != float64(50) {
		t.Errorf("expected pageSize=50, got %v", got)
	}
}

func TestScan_DecodeError(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(configDocumentColumns).
		AddRow("default", "dev", "mn-table", "global", "*", int64(1), []byte(`{not json`), time.Now(), "dev")

	mock.ExpectQuery("SELECT tenant, env, component_key").
		WillReturnRows(rows)

	_, err := repo.Scan(context.Background(), "default", "dev", "mn-table")
	if !errors.Is(err, ErrDecodingValue) {
		t.Fatalf("expected ErrDecodingValue, got %v", err)
	}
}

func TestComponentKeys(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"component_key"}).
		AddRow("mn-chart").
		AddRow("mn-table")

	mock.ExpectQuery("SELECT DISTINCT component_key").
		WithArgs("dev", "default").
		WillReturnRows(rows)

	keys, err := repo.ComponentKeys(context.Background(), "default", "dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "mn-chart" || keys[1] != "mn-table" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestDeleteAll(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM config_documents").
		WillReturnResult(sqlmock.NewResult(0, 7))

	if err := repo.DeleteAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteWhere_DBError(t *testing.T) {
	repo, mock, db := newTestDocumentRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM config_documents").
		WithArgs("mn-table", "dev", "default").
		WillReturnError(errors.New("db is down"))

	err := repo.DeleteWhere(context.Background(), "default", "dev", "mn-table")
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
