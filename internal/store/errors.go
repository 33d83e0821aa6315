package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrVersionConflict is returned when the append of a freshly numbered
	// document collides with a concurrently written version. Under the
	// store's write serialization this should never surface; the unique
	// constraint that raises it is a correctness backstop.
	ErrVersionConflict = errors.New("config document version conflict occurred")

	// ErrEncodingValue is returned when a document value cannot be encoded
	// to its persisted JSON representation.
	ErrEncodingValue = errors.New("error encoding document value")

	// ErrDecodingValue is returned when a persisted document value cannot be
	// decoded back into a structured mapping.
	ErrDecodingValue = errors.New("error decoding document value")

	// ErrPersistingStore is returned by the file-backed store when rewriting
	// the underlying JSON file fails. The in-memory state is rolled back so
	// that the failed write leaves no trace.
	ErrPersistingStore = errors.New("error persisting document store file")

	// ErrLoadingStore is returned by the file-backed store when the existing
	// JSON file cannot be read or decoded at startup.
	ErrLoadingStore = errors.New("error loading document store file")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan config document row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan config document rows")
)
