package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/garyjia/listing-compliance/internal/infrastructure/persistence/sqlite"
	"go.uber.org/zap"
)

const defaultListLimit = 50

var listingColumns = []string{
	"id", "address", "suburb", "city", "property_type", "bedrooms", "bathrooms",
	"cv", "rv", "draft_copy", "variants_json", "features_json", "notes", "status",
	"created_at", "updated_at",
}

// ListingRepository implements port.ListingRepository
type ListingRepository struct {
	db     *sqlite.DB
	logger *zap.Logger
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *sqlite.DB, logger *zap.Logger) port.ListingRepository {
	return &ListingRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a listing and sets its ID and timestamps
func (r *ListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	variantsJSON, err := encodeVariants(listing.Variants)
	if err != nil {
		return err
	}
	featuresJSON, err := encodeFeatures(listing.Features)
	if err != nil {
		return err
	}

	if listing.Status == "" {
		listing.Status = entity.ListingStatusDraft
	}
	now := time.Now().UTC()

	query, args, err := sq.Insert("listings").
		Columns(listingColumns[1:]...).
		Values(
			listing.Address, listing.Suburb, listing.City, listing.PropertyType,
			listing.Bedrooms, listing.Bathrooms, listing.CV, listing.RV,
			listing.DraftCopy, variantsJSON, featuresJSON, listing.Notes, listing.Status,
			now, now,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to create listing", zap.String("address", listing.Address), zap.Error(err))
		return fmt.Errorf("failed to create listing: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	listing.ID = id
	listing.CreatedAt = now
	listing.UpdatedAt = now
	return nil
}

// GetByID returns port.ErrListingNotFound when no row matches
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*entity.Listing, error) {
	query, args, err := sq.Select(listingColumns...).
		From("listings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	listing, err := scanListing(r.db.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrListingNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get listing", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// List returns listings newest first
func (r *ListingRepository) List(ctx context.Context, filter port.ListingFilter) ([]*entity.Listing, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	builder := sq.Select(listingColumns...).
		From("listings").
		OrderBy("id DESC").
		Limit(uint64(limit))
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list listings", zap.Error(err))
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	listings := make([]*entity.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

// UpdateCopy replaces the draft copy and variants
func (r *ListingRepository) UpdateCopy(ctx context.Context, id int64, draftCopy string, variants *entity.Variants) error {
	variantsJSON, err := encodeVariants(variants)
	if err != nil {
		return err
	}

	affected, err := r.update(ctx, sq.Eq{"id": id}, sq.Eq{
		"draft_copy":    draftCopy,
		"variants_json": variantsJSON,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return port.ErrListingNotFound
	}
	return nil
}

// UpdateStatus is a compare-and-set on the status column
func (r *ListingRepository) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	affected, err := r.update(ctx, sq.Eq{"id": id, "status": from}, sq.Eq{"status": to})
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	r.logger.Warn("Listing status changed concurrently",
		zap.Int64("id", id), zap.String("from", from), zap.String("to", to))
	return port.ErrStatusConflict
}

func (r *ListingRepository) update(ctx context.Context, where sq.Eq, fields sq.Eq) (int64, error) {
	builder := sq.Update("listings").
		Set("updated_at", time.Now().UTC()).
		Where(where)
	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build update: %w", err)
	}

	result, err := r.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.Any("where", where), zap.Error(err))
		return 0, fmt.Errorf("failed to update listing: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*entity.Listing, error) {
	var listing entity.Listing
	var cv, rv sql.NullFloat64
	var variantsJSON sql.NullString
	var featuresJSON string

	err := row.Scan(
		&listing.ID,
		&listing.Address,
		&listing.Suburb,
		&listing.City,
		&listing.PropertyType,
		&listing.Bedrooms,
		&listing.Bathrooms,
		&cv,
		&rv,
		&listing.DraftCopy,
		&variantsJSON,
		&featuresJSON,
		&listing.Notes,
		&listing.Status,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cv.Valid {
		listing.CV = &cv.Float64
	}
	if rv.Valid {
		listing.RV = &rv.Float64
	}
	if variantsJSON.Valid && variantsJSON.String != "" {
		listing.Variants = &entity.Variants{}
		if err := json.Unmarshal([]byte(variantsJSON.String), listing.Variants); err != nil {
			return nil, fmt.Errorf("failed to decode variants: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(featuresJSON), &listing.Features); err != nil {
		return nil, fmt.Errorf("failed to decode features: %w", err)
	}
	if listing.Features == nil {
		listing.Features = []string{}
	}

	return &listing, nil
}

func encodeVariants(variants *entity.Variants) (interface{}, error) {
	if variants == nil {
		return nil, nil
	}
	data, err := json.Marshal(variants)
	if err != nil {
		return nil, fmt.Errorf("failed to encode variants: %w", err)
	}
	return string(data), nil
}

func encodeFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	data, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}
	return string(data), nil
}

var _ port.ListingRepository = (*ListingRepository)(nil)
