package service

import (
	"context"
	"errors"
	"testing"

	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationFixture struct {
	listing     *entity.Listing
	stored      *entity.ValidationRecord
	status      string
	notifier    *mockNotifier
	aiValidator *mockAIValidator
	svc         ValidationService
}

func newValidationFixture(listing *entity.Listing) *validationFixture {
	f := &validationFixture{
		listing:     listing,
		notifier:    &mockNotifier{},
		aiValidator: &mockAIValidator{},
	}
	listings := &mockListingRepo{
		getByIDFunc: func(_ context.Context, id int64) (*entity.Listing, error) {
			return f.listing, nil
		},
		updateStatusFunc: func(_ context.Context, _ int64, from, to string) error {
			if from != f.listing.Status {
				return port.ErrStatusConflict
			}
			f.status = to
			return nil
		},
	}
	validations := &mockValidationRepo{createFunc: func(_ context.Context, record *entity.ValidationRecord) error {
		record.ID = 11
		f.stored = record
		return nil
	}}
	f.svc = NewValidationService(listings, validations, &mockTxManager{}, f.aiValidator, f.notifier, &mockLogger{})
	return f
}

func TestValidationService_ValidateListing_Clean(t *testing.T) {
	f := newValidationFixture(&entity.Listing{
		ID:        1,
		Address:   "12 Queen Street",
		Bedrooms:  3,
		DraftCopy: "A well-presented 3 bedroom house in a popular suburb, close to local schools.",
		CV:        float(700000),
		RV:        float(680000),
		Status:    entity.ListingStatusDraft,
	})

	var gotDraft string
	f.aiValidator.validateFunc = func(_ context.Context, facts entity.Facts, draft string) (*compliance.AIResult, error) {
		gotDraft = draft
		assert.Equal(t, 3, facts.Bedrooms)
		return &compliance.AIResult{Unsupported: []string{}, RiskyPhrases: []string{}, Suggestions: []string{}, ComplianceScore: 90}, nil
	}

	record, err := f.svc.ValidateListing(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, f.listing.DraftCopy, gotDraft)
	assert.Same(t, f.stored, record)
	assert.Equal(t, 100, record.Score)
	assert.Equal(t, 96, record.CombinedScore)
	assert.True(t, record.CanPublish)
	assert.True(t, record.Result.Overall.IsValid)
	assert.Equal(t, entity.ListingStatusReady, f.status)
	assert.Zero(t, f.notifier.calls)
}

func TestValidationService_ValidateListing_ProhibitedNotifiesReviewer(t *testing.T) {
	f := newValidationFixture(&entity.Listing{
		ID:        2,
		Address:   "12 Queen Street",
		DraftCopy: "This stunning 3 bedroom house is the best deal, won't last long!",
		Status:    entity.ListingStatusReady,
	})

	record, err := f.svc.ValidateListing(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 10, record.Score)
	assert.False(t, record.CanPublish)
	assert.False(t, record.Result.Overall.IsValid)
	assert.Equal(t, 3, record.Result.Compliance.Summary.Errors)
	assert.Equal(t, entity.ListingStatusDraft, f.status)
	assert.Equal(t, 1, f.notifier.calls)
}

func TestValidationService_ValidateListing_NotifyFailureKeepsResult(t *testing.T) {
	f := newValidationFixture(&entity.Listing{ID: 3, Address: "12 Queen Street", DraftCopy: "Must sell!"})
	f.notifier.notifyFunc = func(context.Context, *entity.Listing, *compliance.CombinedValidation) error {
		return errors.New("lark down")
	}

	record, err := f.svc.ValidateListing(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, f.stored)
	assert.False(t, record.CanPublish)
}

func TestValidationService_ValidateListing_UnsupportedClaimBlocksPublish(t *testing.T) {
	f := newValidationFixture(&entity.Listing{
		ID:        4,
		Address:   "12 Queen Street",
		DraftCopy: "A tidy home with a heat pump.",
		Status:    entity.ListingStatusDraft,
	})
	f.aiValidator.validateFunc = func(context.Context, entity.Facts, string) (*compliance.AIResult, error) {
		return &compliance.AIResult{Unsupported: []string{`"heat pump" not listed in property features`}, ComplianceScore: 85}, nil
	}

	record, err := f.svc.ValidateListing(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, 100, record.Score)
	assert.False(t, record.CanPublish)
	assert.Empty(t, f.status, "status unchanged")
	assert.Equal(t, 1, f.notifier.calls)
}

func TestValidationService_ValidateListing_AIError(t *testing.T) {
	f := newValidationFixture(&entity.Listing{ID: 5, Address: "12 Queen Street"})
	f.aiValidator.validateFunc = func(context.Context, entity.Facts, string) (*compliance.AIResult, error) {
		return nil, errors.New("provider failure")
	}

	_, err := f.svc.ValidateListing(context.Background(), 5)
	assert.Error(t, err)
	assert.Nil(t, f.stored)
}

func TestValidationService_PublishedListingKeepsStatus(t *testing.T) {
	f := newValidationFixture(&entity.Listing{ID: 6, Address: "12 Queen Street", DraftCopy: "Must sell!", Status: entity.ListingStatusPublished})

	_, err := f.svc.ValidateListing(context.Background(), 6)
	require.NoError(t, err)
	assert.Empty(t, f.status)
}

func TestValidationService_CheckText(t *testing.T) {
	svc := newValidationFixture(nil).svc

	issues, err := svc.CheckText("<p>Won’t last long!</p>")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, `Potentially unsubstantiated claim: "Won't last long"`, issues[0].Message)
}

func TestValidationService_Helpers(t *testing.T) {
	svc := newValidationFixture(nil).svc

	assert.Equal(t, []string{"expected to attract interest", "likely to be popular"}, svc.Alternatives("Won’t last long"))
	assert.Len(t, svc.Suggestions(), 8)
	assert.Len(t, svc.Rules(), 27)
}

func TestValidationService_LatestValidation_NeverValidated(t *testing.T) {
	svc := newValidationFixture(&entity.Listing{ID: 7}).svc

	_, err := svc.LatestValidation(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotValidated)
}

func TestValidationService_ValidateListing_CopyEditedDuringAICall(t *testing.T) {
	f := newValidationFixture(&entity.Listing{
		ID:        7,
		Address:   "12 Queen Street",
		DraftCopy: "A well-presented family home.",
		Status:    entity.ListingStatusDraft,
	})
	f.aiValidator.validateFunc = func(context.Context, entity.Facts, string) (*compliance.AIResult, error) {
		edited := *f.listing
		edited.DraftCopy = "Stunning, best street, must sell, won't last long!"
		f.listing = &edited
		return &compliance.AIResult{Unsupported: []string{}, RiskyPhrases: []string{}, Suggestions: []string{}, ComplianceScore: 95}, nil
	}

	record, err := f.svc.ValidateListing(context.Background(), 7)
	assert.ErrorIs(t, err, ErrCopyChanged)
	assert.Nil(t, record)
	assert.Nil(t, f.stored, "result for the old copy is discarded")
	assert.Empty(t, f.status, "listing stays a draft")
	assert.Zero(t, f.notifier.calls)
}

func TestValidationService_ValidateListing_StoresCopyHash(t *testing.T) {
	listing := &entity.Listing{ID: 8, Address: "12 Queen Street", DraftCopy: "A tidy home."}
	f := newValidationFixture(listing)

	record, err := f.svc.ValidateListing(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, listing.CopyHash(), record.CopyHash)
	assert.True(t, record.Validates(listing))
}
