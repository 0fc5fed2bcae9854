package workflow

import (
	"context"
	"fmt"
	"sync"
)

type publishApprovalKey struct{}

// WithPublishApproval records whether the latest validation allows publishing.
// The PUBLISH transition is only taken when it does.
func WithPublishApproval(ctx context.Context, canPublish bool) context.Context {
	return context.WithValue(ctx, publishApprovalKey{}, canPublish)
}

func publishApproved(ctx context.Context) bool {
	ok, _ := ctx.Value(publishApprovalKey{}).(bool)
	return ok
}

var listingLifecycle = sync.OnceValue(newListingBuilder)

// Listing lifecycle:
//
//	DRAFT --VALIDATION_PASSED--> READY --PUBLISH[approved]--> PUBLISHED
//	READY --VALIDATION_FAILED|EDIT_COPY--> DRAFT
//
// Validation and edits on a draft keep it a draft; a passing revalidation
// keeps a ready listing ready. Nothing leaves PUBLISHED.
func newListingBuilder() StateMachineBuilder {
	b := NewBuilder()

	b.Configure(StateDraft).
		Permit(TriggerValidationPassed, StateReady).
		Permit(TriggerValidationFailed, StateDraft).
		Permit(TriggerEditCopy, StateDraft)

	b.Configure(StateReady).
		Permit(TriggerValidationPassed, StateReady).
		Permit(TriggerValidationFailed, StateDraft).
		Permit(TriggerEditCopy, StateDraft).
		PermitIf(TriggerPublish, StatePublished, publishApproved)

	b.Configure(StatePublished)

	return b
}

// ListingLifecycle returns a machine positioned at a stored listing status.
// An empty status is a new draft.
func ListingLifecycle(status string) (StateMachine, error) {
	state := State(status)
	if status == "" {
		state = StateDraft
	}
	if !state.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, status)
	}
	return listingLifecycle().Build(state), nil
}
