package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/migrations"
)

// DB wraps the shared database handle together with the statement builder
// configured for the active driver's placeholder format ($1 for postgres,
// ? for sqlite).
type DB struct {
	*sql.DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// Migrate applies the embedded goose migrations. Only meaningful for the
// postgres driver; the sqlite connector bootstraps its schema on open.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
