package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/garyjia/listing-compliance/internal/domain/workflow"
	"github.com/garyjia/listing-compliance/pkg/utils"
)

var propertyTypes = []string{
	entity.PropertyTypeHouse,
	entity.PropertyTypeApartment,
	entity.PropertyTypeTownhouse,
	entity.PropertyTypeUnit,
	entity.PropertyTypeSection,
}

// CreateListingInput carries the fields of a new listing
type CreateListingInput struct {
	Address      string           `json:"address" yaml:"address"`
	Suburb       string           `json:"suburb" yaml:"suburb"`
	City         string           `json:"city" yaml:"city"`
	PropertyType string           `json:"property_type" yaml:"property_type"`
	Bedrooms     int              `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms    int              `json:"bathrooms" yaml:"bathrooms"`
	CV           *float64         `json:"cv" yaml:"cv"`
	RV           *float64         `json:"rv" yaml:"rv"`
	DraftCopy    string           `json:"draft_copy" yaml:"draft_copy"`
	Variants     *entity.Variants `json:"variants" yaml:"variants"`
	Features     []string         `json:"features" yaml:"features"`
	Notes        string           `json:"notes" yaml:"notes"`
}

// ListingService manages listings and their copy
type ListingService interface {
	CreateListing(ctx context.Context, input CreateListingInput) (*entity.Listing, error)
	GetListing(ctx context.Context, id int64) (*entity.Listing, error)
	ListListings(ctx context.Context, filter port.ListingFilter) ([]*entity.Listing, error)
	UpdateCopy(ctx context.Context, id int64, draftCopy string, variants *entity.Variants) (*entity.Listing, error)
	PublishListing(ctx context.Context, id int64) (*entity.Listing, error)
}

type listingServiceImpl struct {
	listingRepo    port.ListingRepository
	validationRepo port.ValidationRepository
	txManager      port.TransactionManager
	logger         Logger
}

// NewListingService creates a new ListingService
func NewListingService(
	listingRepo port.ListingRepository,
	validationRepo port.ValidationRepository,
	txManager port.TransactionManager,
	logger Logger,
) ListingService {
	return &listingServiceImpl{
		listingRepo:    listingRepo,
		validationRepo: validationRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateListing validates and normalizes input, then stores a DRAFT listing
func (s *listingServiceImpl) CreateListing(ctx context.Context, input CreateListingInput) (*entity.Listing, error) {
	listing, err := NormalizeListing(input)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.logger.Error("Failed to create listing", "error", err, "address", listing.Address)
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.logger.Info("Listing created", "listing_id", listing.ID, "address", listing.Address)
	return listing, nil
}

// GetListing retrieves a listing by ID
func (s *listingServiceImpl) GetListing(ctx context.Context, id int64) (*entity.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return listing, nil
}

// ListListings returns listings matching the filter
func (s *listingServiceImpl) ListListings(ctx context.Context, filter port.ListingFilter) ([]*entity.Listing, error) {
	listings, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list listings", "error", err)
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// UpdateCopy replaces the copy and returns the listing to DRAFT, since any
// earlier validation no longer describes it.
func (s *listingServiceImpl) UpdateCopy(ctx context.Context, id int64, draftCopy string, variants *entity.Variants) (*entity.Listing, error) {
	cleanDraft, err := utils.CleanCopy(draftCopy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	cleanVariants, err := normalizeVariants(variants)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		listing, err := s.listingRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		lifecycle, err := workflow.ListingLifecycle(listing.Status)
		if err != nil {
			return err
		}
		if err := lifecycle.Fire(txCtx, workflow.TriggerEditCopy); err != nil {
			return ErrListingPublished
		}

		if err := s.listingRepo.UpdateCopy(txCtx, id, cleanDraft, cleanVariants); err != nil {
			return err
		}
		if status := lifecycle.State().String(); status != listing.Status {
			return s.listingRepo.UpdateStatus(txCtx, id, listing.Status, status)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, port.ErrListingNotFound) && !errors.Is(err, ErrListingPublished) {
			s.logger.Error("Failed to update listing copy", "error", err, "listing_id", id)
		}
		return nil, fmt.Errorf("update copy: %w", err)
	}

	s.logger.Info("Listing copy updated", "listing_id", id)
	return s.GetListing(ctx, id)
}

// PublishListing marks a READY listing as published. The latest validation
// must allow publishing and must have been computed from the current copy.
// The checks and the status change share one transaction, and the status
// change only applies while the listing is still READY. Publishing twice is
// a no-op.
func (s *listingServiceImpl) PublishListing(ctx context.Context, id int64) (*entity.Listing, error) {
	var published *entity.Listing
	var latest *entity.ValidationRecord

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		listing, err := s.listingRepo.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get listing: %w", err)
		}
		if listing.IsPublished() {
			published = listing
			return nil
		}

		latest, err = s.validationRepo.GetLatest(txCtx, id)
		if err != nil {
			return fmt.Errorf("get latest validation: %w", err)
		}
		if latest == nil {
			return ErrNotValidated
		}

		approved := latest.CanPublish && latest.Validates(listing)
		lifecycle, err := workflow.ListingLifecycle(listing.Status)
		if err != nil {
			return err
		}
		if err := lifecycle.Fire(workflow.WithPublishApproval(txCtx, approved), workflow.TriggerPublish); err != nil {
			s.logger.Info("Publish blocked", "listing_id", id, "can_publish", latest.CanPublish,
				"current_copy", latest.Validates(listing), "status", listing.Status)
			return ErrPublishBlocked
		}

		status := lifecycle.State().String()
		if err := s.listingRepo.UpdateStatus(txCtx, id, listing.Status, status); err != nil {
			if errors.Is(err, port.ErrStatusConflict) {
				return ErrPublishBlocked
			}
			return fmt.Errorf("publish listing: %w", err)
		}

		listing.Status = status
		published = listing
		return nil
	})
	if err != nil {
		if !errors.Is(err, port.ErrListingNotFound) && !errors.Is(err, ErrNotValidated) && !errors.Is(err, ErrPublishBlocked) {
			s.logger.Error("Failed to publish listing", "error", err, "listing_id", id)
		}
		return nil, err
	}

	if latest != nil {
		s.logger.Info("Listing published", "listing_id", id, "combined_score", latest.CombinedScore)
	}
	return published, nil
}

// NormalizeListing validates input and builds a DRAFT listing with cleaned
// copy. Errors wrap ErrInvalidInput.
func NormalizeListing(input CreateListingInput) (*entity.Listing, error) {
	address := strings.TrimSpace(utils.SanitizeString(input.Address))

	checks := []error{
		utils.ValidateAddress(address),
		utils.ValidateRoomCount("bedrooms", input.Bedrooms, utils.MaxBedrooms),
		utils.ValidateRoomCount("bathrooms", input.Bathrooms, utils.MaxBathrooms),
		utils.ValidateValuation("cv", input.CV),
		utils.ValidateValuation("rv", input.RV),
		utils.ValidatePropertyType(input.PropertyType, propertyTypes),
		utils.ValidateNotes(input.Notes),
	}
	if err := errors.Join(checks...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	draft, err := utils.CleanCopy(input.DraftCopy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	variants, err := normalizeVariants(input.Variants)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	features, err := cleanAll(input.Features)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &entity.Listing{
		Address:      address,
		Suburb:       strings.TrimSpace(input.Suburb),
		City:         strings.TrimSpace(input.City),
		PropertyType: input.PropertyType,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		CV:           input.CV,
		RV:           input.RV,
		DraftCopy:    draft,
		Variants:     variants,
		Features:     features,
		Notes:        utils.NormalizeText(strings.TrimSpace(utils.SanitizeString(input.Notes))),
		Status:       entity.ListingStatusDraft,
	}, nil
}

func normalizeVariants(v *entity.Variants) (*entity.Variants, error) {
	if v == nil {
		return nil, nil
	}

	standard, err := utils.CleanCopy(v.Standard)
	if err != nil {
		return nil, err
	}
	long, err := utils.CleanCopy(v.Long)
	if err != nil {
		return nil, err
	}
	headlines, err := cleanAll(v.Headlines)
	if err != nil {
		return nil, err
	}
	bullets, err := cleanAll(v.Bullets)
	if err != nil {
		return nil, err
	}

	return &entity.Variants{
		Standard:  standard,
		Long:      long,
		Headlines: headlines,
		Bullets:   bullets,
		Social:    v.Social,
	}, nil
}

// cleanAll cleans each entry and drops the ones left empty
func cleanAll(items []string) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		clean, err := utils.CleanCopy(item)
		if err != nil {
			return nil, err
		}
		if clean != "" {
			out = append(out, clean)
		}
	}
	return out, nil
}
