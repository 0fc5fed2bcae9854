package port

import (
	"context"
	"errors"

	"github.com/garyjia/listing-compliance/internal/domain/entity"
)

var (
	// ErrListingNotFound is returned when a listing does not exist
	ErrListingNotFound = errors.New("listing not found")

	// ErrStatusConflict is returned when a listing is no longer in the expected status
	ErrStatusConflict = errors.New("listing status changed concurrently")
)

// ListingFilter narrows a listing query
type ListingFilter struct {
	Status string
	Limit  int
	Offset int
}

// ListingRepository defines persistence operations for Listing
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id int64) (*entity.Listing, error)
	List(ctx context.Context, filter ListingFilter) ([]*entity.Listing, error)

	// UpdateCopy replaces the draft copy and variants of a listing
	UpdateCopy(ctx context.Context, id int64, draftCopy string, variants *entity.Variants) error

	// UpdateStatus moves a listing from one status to another. It returns
	// ErrStatusConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id int64, from, to string) error
}

// ValidationRepository defines persistence operations for ValidationRecord
type ValidationRepository interface {
	Create(ctx context.Context, record *entity.ValidationRecord) error

	// GetLatest returns the most recent validation of a listing, or nil if it was never validated
	GetLatest(ctx context.Context, listingID int64) (*entity.ValidationRecord, error)

	GetByListingID(ctx context.Context, listingID int64, limit int) ([]*entity.ValidationRecord, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
