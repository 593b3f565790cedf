package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/models"
)

// recordRepository is the SQL-backed implementation of [RecordRepository]
// over the file_records table.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so all database interactions are traced with
// structured fields (channel, path).
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

var recordColumns = []string{
	"channel", "path", "name", "dir", "mime_type", "size_bytes",
	"uploader_ip", "label", "repo", "url", "width", "height", "created_at",
}

func (r *recordRepository) Save(ctx context.Context, record models.IndexRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert("file_records").
		Columns(recordColumns...).
		Values(
			record.Channel, record.Path, record.Name, record.Dir,
			record.MimeType, record.Size, record.UploaderIP, record.Label,
			record.Repo, record.URL, record.Width, record.Height,
			record.CreatedAt,
		).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "recordRepository.Save").Str("path", record.Path).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.DB.ExecContext(ctx, query, args...)
	if err != nil && isDuplicateKey(err) {
		// same target path committed again in a later batch: the backend
		// file was overwritten, so the record follows
		return r.replace(ctx, record)
	}
	if err != nil {
		log.Err(err).Str("func", "recordRepository.Save").Str("path", record.Path).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *recordRepository) replace(ctx context.Context, record models.IndexRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update("file_records").
		Set("name", record.Name).
		Set("dir", record.Dir).
		Set("mime_type", record.MimeType).
		Set("size_bytes", record.Size).
		Set("uploader_ip", record.UploaderIP).
		Set("label", record.Label).
		Set("repo", record.Repo).
		Set("url", record.URL).
		Set("width", record.Width).
		Set("height", record.Height).
		Set("created_at", record.CreatedAt).
		Where("channel = ? AND path = ?", record.Channel, record.Path).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "recordRepository.replace").Str("path", record.Path).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "recordRepository.replace").Str("path", record.Path).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *recordRepository) UpdateLabel(ctx context.Context, channel, path, label string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Update("file_records").
		Set("label", label).
		Where("channel = ? AND path = ?", channel, path).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "recordRepository.UpdateLabel").Str("path", path).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.UpdateLabel").Str("path", path).Msg("failed to execute query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, channel, path)
	}

	return nil
}

func (r *recordRepository) ListDir(ctx context.Context, channel, dir string) ([]models.IndexRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(recordColumns...).
		From("file_records").
		Where("channel = ? AND dir = ?", channel, dir).
		OrderBy("created_at DESC", "path ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "recordRepository.ListDir").Str("dir", dir).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.ListDir").Str("dir", dir).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.IndexRecord, 0, 16)
	for rows.Next() {
		var rec models.IndexRecord
		scanErr := rows.Scan(
			&rec.Channel, &rec.Path, &rec.Name, &rec.Dir,
			&rec.MimeType, &rec.Size, &rec.UploaderIP, &rec.Label,
			&rec.Repo, &rec.URL, &rec.Width, &rec.Height, &rec.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "recordRepository.ListDir").Str("dir", dir).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// isDuplicateKey reports whether err is a primary-key violation from either
// supported driver.
func isDuplicateKey(err error) bool {
	if isUniqueViolation(err) {
		return true
	}
	// mattn/go-sqlite3 reports constraint failures as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
