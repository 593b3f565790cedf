package store

import (
	"context"
	"strings"

	"github.com/adilgabb/commitgate/internal/config"
	"github.com/adilgabb/commitgate/internal/logger"
)

// NewRepositories connects to the configured database and wires both
// repositories over the shared handle. The driver is chosen from the DSN
// scheme: postgres URIs go through pgx (with goose migrations), anything
// else is treated as a sqlite file path.
func NewRepositories(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	var (
		db  *DB
		err error
	)

	if strings.HasPrefix(cfg.DB.DSN, "postgres://") || strings.HasPrefix(cfg.DB.DSN, "postgresql://") {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	return &Repositories{
		KV:      NewKVRepository(db, log),
		Records: NewRecordRepository(db, log),
	}, nil
}
