package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/mn-config/internal/logger"
)

// DB bundles an open database connection with the squirrel statement builder
// configured for the driver's placeholder format ($1 for postgres, ? for
// sqlite) and a logger for connection-level events.
type DB struct {
	*sql.DB

	builder sq.StatementBuilderType
	logger  *logger.Logger
}
