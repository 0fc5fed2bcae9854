package lark

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockSender struct {
	sendFunc func(ctx context.Context, openID, text string) (string, error)
}

func (m *mockSender) SendText(ctx context.Context, openID, text string) (string, error) {
	return m.sendFunc(ctx, openID, text)
}

func failingValidation() *compliance.CombinedValidation {
	result := compliance.ValidateCompliance(compliance.Listing{
		Address:   "12 Queen Street",
		DraftCopy: "This stunning 3 bedroom house is the best deal, won't last long!",
	})
	combined := compliance.Combine(compliance.AIResult{ComplianceScore: 90, Unsupported: []string{}}, result)
	return &combined
}

func TestNotifier_SendsReviewMessage(t *testing.T) {
	var gotID, gotText string
	sender := &mockSender{sendFunc: func(_ context.Context, openID, text string) (string, error) {
		gotID, gotText = openID, text
		return "om_123", nil
	}}
	listing := &entity.Listing{ID: 7, Address: "12 Queen Street"}

	err := NewNotifier(sender, "ou_reviewer", zap.NewNop()).NotifyReviewRequired(context.Background(), listing, failingValidation())
	require.NoError(t, err)

	assert.Equal(t, "ou_reviewer", gotID)
	assert.Contains(t, gotText, "Listing review required: 12 Queen Street (#7)")
	assert.Contains(t, gotText, "Compliance score 10, AI score 90, combined 42")
	assert.Contains(t, gotText, `- [error] Potentially unsubstantiated claim: "stunning"`)
	assert.True(t, strings.HasSuffix(gotText, "before publication"))
}

func TestNotifier_PropagatesSendError(t *testing.T) {
	sender := &mockSender{sendFunc: func(context.Context, string, string) (string, error) {
		return "", errors.New("API error: code=230001")
	}}

	err := NewNotifier(sender, "ou_reviewer", zap.NewNop()).NotifyReviewRequired(context.Background(), &entity.Listing{ID: 1}, failingValidation())
	assert.ErrorContains(t, err, "failed to notify reviewer")
}

func TestReviewMessage_TruncatesIssues(t *testing.T) {
	result := compliance.ValidateCompliance(compliance.Listing{
		Address:   "1 Main Road",
		DraftCopy: "best perfect amazing stunning incredible unbeatable once in a lifetime",
	})
	combined := compliance.Combine(compliance.AIResult{ComplianceScore: 50}, result)

	msg := ReviewMessage(&entity.Listing{ID: 2, Address: "1 Main Road"}, &combined)

	assert.Equal(t, maxListedIssues, strings.Count(msg, "\n- ["))
	assert.Contains(t, msg, "... and ")
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{AppID: "cli_a", AppSecret: "s"}.Enabled())
	assert.True(t, Config{AppID: "cli_a", AppSecret: "s", ReviewerOpenID: "ou_x"}.Enabled())
}

func TestNoopNotifier(t *testing.T) {
	err := NewNoopNotifier(zap.NewNop()).NotifyReviewRequired(context.Background(), &entity.Listing{ID: 1}, failingValidation())
	assert.NoError(t, err)
}
