package lark

import (
	"context"
	"fmt"
	"strings"

	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"go.uber.org/zap"
)

// maxListedIssues caps how many issues are quoted in one message
const maxListedIssues = 5

// TextSender sends a text message to a Lark user
type TextSender interface {
	SendText(ctx context.Context, openID, text string) (string, error)
}

// Notifier implements port.ReviewNotifier by messaging a supervisor on Lark
type Notifier struct {
	sender     TextSender
	reviewerID string
	logger     *zap.Logger
}

// NewNotifier creates a notifier that messages reviewerOpenID
func NewNotifier(sender TextSender, reviewerOpenID string, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:     sender,
		reviewerID: reviewerOpenID,
		logger:     logger,
	}
}

// NotifyReviewRequired implements port.ReviewNotifier
func (n *Notifier) NotifyReviewRequired(ctx context.Context, listing *entity.Listing, validation *compliance.CombinedValidation) error {
	if listing == nil || validation == nil {
		return fmt.Errorf("listing and validation are required")
	}

	messageID, err := n.sender.SendText(ctx, n.reviewerID, ReviewMessage(listing, validation))
	if err != nil {
		return fmt.Errorf("failed to notify reviewer: %w", err)
	}

	n.logger.Info("Review notification sent",
		zap.Int64("listing_id", listing.ID),
		zap.String("message_id", messageID))
	return nil
}

// ReviewMessage formats the supervisor notification
func ReviewMessage(listing *entity.Listing, validation *compliance.CombinedValidation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Listing review required: %s (#%d)\n", listing.Address, listing.ID)
	fmt.Fprintf(&b, "Compliance score %d, AI score %.0f, combined %d\n",
		validation.Compliance.Score, validation.AI.ComplianceScore, validation.Overall.CombinedScore)

	summary := validation.Compliance.Summary
	fmt.Fprintf(&b, "Errors %d, warnings %d, unsupported claims %d\n",
		summary.Errors, summary.Warnings, len(validation.AI.Unsupported))

	for i, issue := range validation.Compliance.Issues {
		if i == maxListedIssues {
			fmt.Fprintf(&b, "... and %d more\n", len(validation.Compliance.Issues)-maxListedIssues)
			break
		}
		fmt.Fprintf(&b, "- [%s] %s\n", issue.Type, issue.Message)
	}

	b.WriteString("Have supervisor review all marketing materials before publication")
	return b.String()
}

// NoopNotifier is used when Lark is not configured
type NoopNotifier struct {
	logger *zap.Logger
}

// NewNoopNotifier creates a notifier that only logs
func NewNoopNotifier(logger *zap.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

// NotifyReviewRequired implements port.ReviewNotifier
func (n *NoopNotifier) NotifyReviewRequired(_ context.Context, listing *entity.Listing, _ *compliance.CombinedValidation) error {
	n.logger.Debug("Review notification skipped, Lark not configured", zap.Int64("listing_id", listing.ID))
	return nil
}

var (
	_ port.ReviewNotifier = (*Notifier)(nil)
	_ port.ReviewNotifier = (*NoopNotifier)(nil)
	_ TextSender          = (*SDKClient)(nil)
)
