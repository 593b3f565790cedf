package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adilgabb/commitgate/internal/logger"
)

// kvRepository is the SQL-backed implementation of [KVStore] over the
// kv_entries table. Keys are expected to be pre-namespaced via [Key].
type kvRepository struct {
	*DB
	logger *logger.Logger
}

// NewKVRepository constructs a [KVStore] backed by the provided database
// connection and logger.
func NewKVRepository(db *DB, logger *logger.Logger) KVStore {
	return &kvRepository{
		DB:     db,
		logger: logger,
	}
}

func (k *kvRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := k.builder.
		Select("value").
		From("kv_entries").
		Where("key = ?", key).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Get").Str("key", key).Msg("failed to build query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = k.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Get").Str("key", key).Msg("failed to execute query")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (k *kvRepository) Put(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := k.builder.
		Insert("kv_entries").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Put").Str("key", key).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = k.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "kvRepository.Put").Str("key", key).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (k *kvRepository) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := k.builder.
		Delete("kv_entries").
		Where("key = ?", key).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "kvRepository.Delete").Str("key", key).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = k.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "kvRepository.Delete").Str("key", key).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
