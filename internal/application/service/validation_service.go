package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/garyjia/listing-compliance/internal/domain/workflow"
	"github.com/garyjia/listing-compliance/pkg/utils"
)

// DefaultHistoryLimit bounds validation history queries
const DefaultHistoryLimit = 20

// ValidationService runs compliance validation over listings and ad-hoc text
type ValidationService interface {
	ValidateListing(ctx context.Context, listingID int64) (*entity.ValidationRecord, error)
	LatestValidation(ctx context.Context, listingID int64) (*entity.ValidationRecord, error)
	History(ctx context.Context, listingID int64, limit int) ([]*entity.ValidationRecord, error)

	CheckText(text string) ([]compliance.Issue, error)
	Alternatives(phrase string) []string
	Suggestions() []string
	Rules() []compliance.Rule
}

type validationServiceImpl struct {
	listingRepo    port.ListingRepository
	validationRepo port.ValidationRepository
	txManager      port.TransactionManager
	aiValidator    port.AIValidator
	notifier       port.ReviewNotifier
	logger         Logger
}

// NewValidationService creates a new ValidationService
func NewValidationService(
	listingRepo port.ListingRepository,
	validationRepo port.ValidationRepository,
	txManager port.TransactionManager,
	aiValidator port.AIValidator,
	notifier port.ReviewNotifier,
	logger Logger,
) ValidationService {
	return &validationServiceImpl{
		listingRepo:    listingRepo,
		validationRepo: validationRepo,
		txManager:      txManager,
		aiValidator:    aiValidator,
		notifier:       notifier,
		logger:         logger,
	}
}

// ValidateListing checks the draft against the facts, runs the rule engine
// over all listing copy, combines both and stores the snapshot. The listing
// moves to READY when it can publish and back to DRAFT when it cannot. A
// supervisor is notified when the listing cannot publish.
func (s *validationServiceImpl) ValidateListing(ctx context.Context, listingID int64) (*entity.ValidationRecord, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	copyHash := listing.CopyHash()

	aiResult, err := s.aiValidator.ValidateDraft(ctx, listing.Facts(), listing.DraftCopy)
	if err != nil {
		s.logger.Error("AI validation failed", "error", err, "listing_id", listingID)
		return nil, fmt.Errorf("validate draft: %w", err)
	}

	result := compliance.ValidateCompliance(listing.ComplianceInput())
	combined := compliance.Combine(*aiResult, result)

	record := &entity.ValidationRecord{
		ListingID:     listingID,
		Result:        &combined,
		Score:         result.Score,
		CombinedScore: combined.Overall.CombinedScore,
		CanPublish:    combined.Overall.CanPublish,
		CopyHash:      copyHash,
	}

	// The AI call runs outside the transaction, so the copy is read again
	// before the result is allowed to move the listing.
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.listingRepo.GetByID(txCtx, listingID)
		if err != nil {
			return err
		}
		if !record.Validates(current) {
			return ErrCopyChanged
		}

		if err := s.validationRepo.Create(txCtx, record); err != nil {
			return err
		}
		status, err := nextStatus(txCtx, current.Status, record.CanPublish)
		if err != nil {
			return err
		}
		if status != current.Status {
			return s.listingRepo.UpdateStatus(txCtx, listingID, current.Status, status)
		}
		return nil
	})
	if errors.Is(err, ErrCopyChanged) {
		s.logger.Info("Listing copy changed during validation, discarding result", "listing_id", listingID)
		return nil, err
	}
	if err != nil {
		s.logger.Error("Failed to store validation", "error", err, "listing_id", listingID)
		return nil, fmt.Errorf("store validation: %w", err)
	}

	s.logger.Info("Listing validated",
		"listing_id", listingID,
		"score", result.Score,
		"ai_score", aiResult.ComplianceScore,
		"combined_score", record.CombinedScore,
		"can_publish", record.CanPublish)

	if !record.CanPublish {
		// a failed notification must not lose the stored validation
		if err := s.notifier.NotifyReviewRequired(ctx, listing, &combined); err != nil {
			s.logger.Error("Failed to notify reviewer", "error", err, "listing_id", listingID)
		}
	}

	return record, nil
}

// nextStatus moves a listing through its lifecycle after a validation.
// Published listings keep their status.
func nextStatus(ctx context.Context, current string, canPublish bool) (string, error) {
	lifecycle, err := workflow.ListingLifecycle(current)
	if err != nil {
		return "", err
	}
	if lifecycle.State().IsTerminal() {
		return current, nil
	}

	trigger := workflow.TriggerValidationFailed
	if canPublish {
		trigger = workflow.TriggerValidationPassed
	}
	if err := lifecycle.Fire(ctx, trigger); err != nil {
		return "", err
	}
	return lifecycle.State().String(), nil
}

// LatestValidation returns the most recent validation, or ErrNotValidated
func (s *validationServiceImpl) LatestValidation(ctx context.Context, listingID int64) (*entity.ValidationRecord, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}

	latest, err := s.validationRepo.GetLatest(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("get latest validation: %w", err)
	}
	if latest == nil {
		return nil, ErrNotValidated
	}
	return latest, nil
}

// History returns past validations newest first
func (s *validationServiceImpl) History(ctx context.Context, listingID int64, limit int) ([]*entity.ValidationRecord, error) {
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := s.validationRepo.GetByListingID(ctx, listingID, limit)
	if err != nil {
		return nil, fmt.Errorf("get validations: %w", err)
	}
	return records, nil
}

// CheckText runs the phrase rules over a fragment of copy. Markup and
// typographic quotes are normalized first.
func (s *validationServiceImpl) CheckText(text string) ([]compliance.Issue, error) {
	clean, err := utils.CleanCopy(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return compliance.CheckTextCompliance(clean), nil
}

func (s *validationServiceImpl) Alternatives(phrase string) []string {
	return compliance.SuggestAlternatives(utils.NormalizeText(phrase))
}

func (s *validationServiceImpl) Suggestions() []string {
	return compliance.ComplianceSuggestions()
}

func (s *validationServiceImpl) Rules() []compliance.Rule {
	return compliance.Rules()
}
