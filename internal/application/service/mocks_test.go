package service

import (
	"context"

	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
)

// Mock repositories
type mockListingRepo struct {
	createFunc       func(ctx context.Context, listing *entity.Listing) error
	getByIDFunc      func(ctx context.Context, id int64) (*entity.Listing, error)
	listFunc         func(ctx context.Context, filter port.ListingFilter) ([]*entity.Listing, error)
	updateCopyFunc   func(ctx context.Context, id int64, draftCopy string, variants *entity.Variants) error
	updateStatusFunc func(ctx context.Context, id int64, from, to string) error
}

func (m *mockListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, listing)
	}
	listing.ID = 1
	return nil
}

func (m *mockListingRepo) GetByID(ctx context.Context, id int64) (*entity.Listing, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, port.ErrListingNotFound
}

func (m *mockListingRepo) List(ctx context.Context, filter port.ListingFilter) ([]*entity.Listing, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return []*entity.Listing{}, nil
}

func (m *mockListingRepo) UpdateCopy(ctx context.Context, id int64, draftCopy string, variants *entity.Variants) error {
	if m.updateCopyFunc != nil {
		return m.updateCopyFunc(ctx, id, draftCopy, variants)
	}
	return nil
}

func (m *mockListingRepo) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return nil
}

type mockValidationRepo struct {
	createFunc         func(ctx context.Context, record *entity.ValidationRecord) error
	getLatestFunc      func(ctx context.Context, listingID int64) (*entity.ValidationRecord, error)
	getByListingIDFunc func(ctx context.Context, listingID int64, limit int) ([]*entity.ValidationRecord, error)
}

func (m *mockValidationRepo) Create(ctx context.Context, record *entity.ValidationRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	record.ID = 1
	return nil
}

func (m *mockValidationRepo) GetLatest(ctx context.Context, listingID int64) (*entity.ValidationRecord, error) {
	if m.getLatestFunc != nil {
		return m.getLatestFunc(ctx, listingID)
	}
	return nil, nil
}

func (m *mockValidationRepo) GetByListingID(ctx context.Context, listingID int64, limit int) ([]*entity.ValidationRecord, error) {
	if m.getByListingIDFunc != nil {
		return m.getByListingIDFunc(ctx, listingID, limit)
	}
	return []*entity.ValidationRecord{}, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockAIValidator struct {
	validateFunc func(ctx context.Context, facts entity.Facts, draft string) (*compliance.AIResult, error)
}

func (m *mockAIValidator) ValidateDraft(ctx context.Context, facts entity.Facts, draft string) (*compliance.AIResult, error) {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, facts, draft)
	}
	return &compliance.AIResult{
		Unsupported:     []string{},
		RiskyPhrases:    []string{},
		Suggestions:     []string{},
		ComplianceScore: 90,
	}, nil
}

type mockNotifier struct {
	calls      int
	notifyFunc func(ctx context.Context, listing *entity.Listing, validation *compliance.CombinedValidation) error
}

func (m *mockNotifier) NotifyReviewRequired(ctx context.Context, listing *entity.Listing, validation *compliance.CombinedValidation) error {
	m.calls++
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, listing, validation)
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
