package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

func TestTransitionTableIntegrity(t *testing.T) {
	seen := map[[2]string]bool{}
	for _, tr := range Transitions {
		assert.True(t, types.IsValidProjectStatus(tr.From), "unknown from status %q", tr.From)
		assert.True(t, types.IsValidProjectStatus(tr.To), "unknown to status %q", tr.To)
		assert.NotEqual(t, tr.From, tr.To, "self-transition %s", tr.From)
		assert.NotEmpty(t, tr.ActionID, "transition %s -> %s has no action", tr.From, tr.To)
		assert.Contains(t, []string{types.RoleClient, types.RoleDesigner, types.RoleBoth}, tr.RequiredRole)

		pair := [2]string{tr.From, tr.To}
		assert.False(t, seen[pair], "duplicate transition %s -> %s", tr.From, tr.To)
		seen[pair] = true
	}
}

func TestTerminalStatusesHaveNoOutboundTransitions(t *testing.T) {
	for _, tr := range Transitions {
		assert.False(t, types.IsTerminalStatus(tr.From),
			"terminal status %s must not have outbound transitions", tr.From)
	}
}

func TestDesignerReviewPendingIsIsolated(t *testing.T) {
	for _, tr := range Transitions {
		assert.NotEqual(t, types.StatusDesignerReviewPending, tr.From)
		assert.NotEqual(t, types.StatusDesignerReviewPending, tr.To)
	}
}

func TestFindTransition(t *testing.T) {
	tr := FindTransition(types.StatusCreationPending, types.StatusReviewRequested)
	require.NotNil(t, tr)
	assert.Equal(t, "submit_for_review", tr.ActionID)
	assert.Equal(t, types.RoleDesigner, tr.RequiredRole)

	// Skipping a state is not a declared edge.
	assert.Nil(t, FindTransition(types.StatusCreationPending, types.StatusClientReviewPending))
	assert.Nil(t, FindTransition(types.StatusCompleted, types.StatusInProgress))
	assert.Nil(t, FindTransition("nonsense", types.StatusCompleted))
}

func TestRoleAllowed(t *testing.T) {
	approve := FindTransition(types.StatusClientReviewPending, types.StatusInProgress)
	require.NotNil(t, approve)
	assert.True(t, approve.RoleAllowed(types.RoleClient))
	assert.False(t, approve.RoleAllowed(types.RoleDesigner))

	archive := FindTransition(types.StatusCompleted, types.StatusArchived)
	require.NotNil(t, archive)
	assert.True(t, archive.RoleAllowed(types.RoleClient))
	assert.True(t, archive.RoleAllowed(types.RoleDesigner))
}

func TestAvailableActions(t *testing.T) {
	clientActions := AvailableActions(types.StatusFeedbackPeriod, types.RoleClient)
	require.Len(t, clientActions, 1)
	assert.Equal(t, "start_modification", clientActions[0].ActionID)

	designerActions := AvailableActions(types.StatusFeedbackPeriod, types.RoleDesigner)
	require.Len(t, designerActions, 1)
	assert.Equal(t, "request_completion", designerActions[0].ActionID)

	assert.Empty(t, AvailableActions(types.StatusArchived, types.RoleClient))
	assert.Empty(t, AvailableActions("nonsense", types.RoleClient))
}

func TestAutoProgressTransition(t *testing.T) {
	tr := AutoProgressTransition(types.StatusReviewRequested)
	require.NotNil(t, tr)
	assert.Equal(t, types.StatusClientReviewPending, tr.To)

	tr = AutoProgressTransition(types.StatusCompleted)
	require.NotNil(t, tr)
	assert.Equal(t, types.StatusArchived, tr.To)

	assert.Nil(t, AutoProgressTransition(types.StatusInProgress))
	assert.Nil(t, AutoProgressTransition(types.StatusFeedbackPeriod))
}

func TestAuthorizeHappyPath(t *testing.T) {
	vctx := ValidationContext{HasDraftFiles: true}

	tr, err := Authorize(types.StatusInProgress, types.StatusFeedbackPeriod, types.RoleDesigner, vctx)
	require.NoError(t, err)
	assert.Equal(t, "open_feedback", tr.ActionID)
}

func TestAuthorizeRejectsUndeclaredEdge(t *testing.T) {
	_, err := Authorize(types.StatusCreationPending, types.StatusCompleted, types.RoleDesigner, ValidationContext{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAuthorizeRoleGate(t *testing.T) {
	vctx := ValidationContext{HasDraftFiles: true}

	_, err := Authorize(types.StatusInProgress, types.StatusFeedbackPeriod, types.RoleClient, vctx)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthorizeCollectsAllFailedRules(t *testing.T) {
	// Both rules of start_modification fail: no feedback and no quota.
	_, err := Authorize(types.StatusFeedbackPeriod, types.StatusModificationInProgress, types.RoleClient, ValidationContext{})
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{RuleFeedbackReceived, RuleModificationCountAvailable}, ve.FailedRules)
}

func TestAuthorizeSingleRuleFailure(t *testing.T) {
	vctx := ValidationContext{HasFeedback: true, RemainingModifications: 0}

	_, err := Authorize(types.StatusFeedbackPeriod, types.StatusModificationInProgress, types.RoleClient, vctx)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{RuleModificationCountAvailable}, ve.FailedRules)
}

func TestEvaluateRulesUnknownRuleFailsClosed(t *testing.T) {
	failed := EvaluateRules([]string{"no_such_rule"}, ValidationContext{
		HasDraftFiles:        true,
		HasFinalDeliverables: true,
		HasFeedback:          true,
	})
	assert.Equal(t, []string{"no_such_rule"}, failed)
}

func TestFullLifecyclePath(t *testing.T) {
	// The canonical happy path from creation to archive.
	path := []struct {
		to   string
		role string
		vctx ValidationContext
	}{
		{types.StatusReviewRequested, types.RoleDesigner, ValidationContext{}},
		{types.StatusClientReviewPending, types.RoleDesigner, ValidationContext{HasDraftFiles: true}},
		{types.StatusInProgress, types.RoleClient, ValidationContext{}},
		{types.StatusFeedbackPeriod, types.RoleDesigner, ValidationContext{HasDraftFiles: true}},
		{types.StatusModificationInProgress, types.RoleClient, ValidationContext{HasFeedback: true, RemainingModifications: 2}},
		{types.StatusFeedbackPeriod, types.RoleDesigner, ValidationContext{}},
		{types.StatusCompletionRequested, types.RoleDesigner, ValidationContext{HasFinalDeliverables: true}},
		{types.StatusCompleted, types.RoleClient, ValidationContext{}},
		{types.StatusArchived, types.RoleClient, ValidationContext{}},
	}

	status := types.StatusCreationPending
	for _, step := range path {
		tr, err := Authorize(status, step.to, step.role, step.vctx)
		require.NoError(t, err, "%s -> %s", status, step.to)
		status = tr.To
	}
	assert.Equal(t, types.StatusArchived, status)
}

func TestEveryStatusHasDisplayInfo(t *testing.T) {
	for _, status := range types.ValidProjectStatuses {
		info, err := StatusDisplayInfo(status)
		require.NoError(t, err, status)
		assert.Equal(t, status, info.Status)
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.Color)
	}

	_, err := StatusDisplayInfo("nonsense")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	assert.Len(t, AllDisplayInfo(), len(types.ValidProjectStatuses))
}
