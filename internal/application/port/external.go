package port

import (
	"context"

	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
)

// AIValidator checks a draft against the locked facts of a listing
type AIValidator interface {
	ValidateDraft(ctx context.Context, facts entity.Facts, draft string) (*compliance.AIResult, error)
}

// ReviewNotifier tells a supervisor that a listing needs review before publication
type ReviewNotifier interface {
	NotifyReviewRequired(ctx context.Context, listing *entity.Listing, validation *compliance.CombinedValidation) error
}
