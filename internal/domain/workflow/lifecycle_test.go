package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingLifecycle_Statuses(t *testing.T) {
	m, err := ListingLifecycle("")
	require.NoError(t, err)
	assert.Equal(t, StateDraft, m.State())

	m, err = ListingLifecycle("READY")
	require.NoError(t, err)
	assert.Equal(t, StateReady, m.State())

	_, err = ListingLifecycle("ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestListingLifecycle_Transitions(t *testing.T) {
	approved := WithPublishApproval(context.Background(), true)

	tests := []struct {
		name    string
		from    State
		trigger Trigger
		ctx     context.Context
		want    State
		wantErr error
	}{
		{name: "draft passes", from: StateDraft, trigger: TriggerValidationPassed, want: StateReady},
		{name: "draft fails", from: StateDraft, trigger: TriggerValidationFailed, want: StateDraft},
		{name: "draft edited", from: StateDraft, trigger: TriggerEditCopy, want: StateDraft},
		{name: "draft cannot publish", from: StateDraft, trigger: TriggerPublish, ctx: approved, wantErr: ErrInvalidTransition},
		{name: "ready revalidated", from: StateReady, trigger: TriggerValidationPassed, want: StateReady},
		{name: "ready fails", from: StateReady, trigger: TriggerValidationFailed, want: StateDraft},
		{name: "ready edited", from: StateReady, trigger: TriggerEditCopy, want: StateDraft},
		{name: "ready publishes", from: StateReady, trigger: TriggerPublish, ctx: approved, want: StatePublished},
		{name: "ready without approval", from: StateReady, trigger: TriggerPublish, wantErr: ErrGuardFailed},
		{name: "published is final", from: StatePublished, trigger: TriggerEditCopy, wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx
			if ctx == nil {
				ctx = context.Background()
			}
			m, err := ListingLifecycle(tt.from.String())
			require.NoError(t, err)

			err = m.Fire(ctx, tt.trigger)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, m.State())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.State())
		})
	}
}

func TestWithPublishApproval(t *testing.T) {
	assert.False(t, publishApproved(context.Background()))
	assert.False(t, publishApproved(WithPublishApproval(context.Background(), false)))
	assert.True(t, publishApproved(WithPublishApproval(context.Background(), true)))
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state    State
		valid    bool
		terminal bool
	}{
		{StateDraft, true, false},
		{StateReady, true, false},
		{StatePublished, true, true},
		{State("ARCHIVED"), false, false},
		{State(""), false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.state.IsValid())
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}
}

func TestListingLifecycle_MachinesAreIndependent(t *testing.T) {
	first, err := ListingLifecycle("DRAFT")
	require.NoError(t, err)
	second, err := ListingLifecycle("DRAFT")
	require.NoError(t, err)

	require.NoError(t, first.Fire(context.Background(), TriggerValidationPassed))
	assert.Equal(t, StateReady, first.State())
	assert.Equal(t, StateDraft, second.State())
}
