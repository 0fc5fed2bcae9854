package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/garyjia/listing-compliance/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

var validationColumns = []string{
	"id", "listing_id", "result_json", "score", "combined_score", "can_publish", "copy_hash", "created_at",
}

// ValidationRepository implements port.ValidationRepository
type ValidationRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewValidationRepository creates a new validation repository
func NewValidationRepository(db *sqlite.DB, logger *zap.Logger) port.ValidationRepository {
	return &ValidationRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a validation snapshot
func (r *ValidationRepository) Create(ctx context.Context, record *entity.ValidationRecord) error {
	if record.Result == nil {
		return fmt.Errorf("validation record for listing %d has no result", record.ListingID)
	}

	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to encode validation result: %w", err)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	query, args, err := sq.Insert("validations").
		Columns(validationColumns[1:]...).
		Values(record.ListingID, string(resultJSON), record.Score, record.CombinedScore,
			record.CanPublish, record.CopyHash, record.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to create validation", zap.Int64("listing_id", record.ListingID), zap.Error(err))
		return fmt.Errorf("failed to create validation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	record.ID = id
	return nil
}

// GetLatest returns nil when the listing was never validated
func (r *ValidationRepository) GetLatest(ctx context.Context, listingID int64) (*entity.ValidationRecord, error) {
	records, err := r.GetByListingID(ctx, listingID, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// GetByListingID returns validations newest first. A limit <= 0 returns all.
func (r *ValidationRepository) GetByListingID(ctx context.Context, listingID int64, limit int) ([]*entity.ValidationRecord, error) {
	builder := sq.Select(validationColumns...).
		From("validations").
		Where(sq.Eq{"listing_id": listingID}).
		OrderBy("id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to get validations", zap.Int64("listing_id", listingID), zap.Error(err))
		return nil, fmt.Errorf("failed to get validations: %w", err)
	}
	defer rows.Close()

	records := make([]*entity.ValidationRecord, 0)
	for rows.Next() {
		var record entity.ValidationRecord
		var resultJSON string
		if err := rows.Scan(
			&record.ID,
			&record.ListingID,
			&resultJSON,
			&record.Score,
			&record.CombinedScore,
			&record.CanPublish,
			&record.CopyHash,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan validation: %w", err)
		}

		record.Result = &compliance.CombinedValidation{}
		if err := json.Unmarshal([]byte(resultJSON), record.Result); err != nil {
			return nil, fmt.Errorf("failed to decode validation result: %w", err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

var _ port.ValidationRepository = (*ValidationRepository)(nil)
