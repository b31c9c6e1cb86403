package workflow

import (
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// Transition is one declared, role-gated edge of the project lifecycle.
// ActionID doubles as the UI action identifier, so the action catalogue and
// the transition table cannot drift apart.
type Transition struct {
	From                 string
	To                   string
	ActionID             string
	Label                string
	Description          string
	RequiredRole         string
	ValidationRules      []string
	AutoProgress         bool
	RequiresConfirmation bool
	ConfirmationMessage  string
}

// Transitions is the full lifecycle table. There is exactly one entry per
// ordered (From, To) pair.
//
// designer_review_pending is deliberately absent: it exists in the status
// enumeration and display table for stored-data compatibility but has no
// inbound or outbound edges.
var Transitions = []Transition{
	{
		From:         types.StatusCreationPending,
		To:           types.StatusReviewRequested,
		ActionID:     "submit_for_review",
		Label:        "Submit for review",
		Description:  "Hand the project brief over for an initial review",
		RequiredRole: types.RoleDesigner,
	},
	{
		From:                 types.StatusCreationPending,
		To:                   types.StatusCancelled,
		ActionID:             "cancel_project",
		Label:                "Cancel project",
		Description:          "Cancel the project before any work begins",
		RequiredRole:         types.RoleBoth,
		RequiresConfirmation: true,
		ConfirmationMessage:  "Cancel this project? This cannot be undone.",
	},
	{
		From:            types.StatusReviewRequested,
		To:              types.StatusClientReviewPending,
		ActionID:        "send_to_client",
		Label:           "Send to client",
		Description:     "Forward the first draft to the client for review",
		RequiredRole:    types.RoleDesigner,
		ValidationRules: []string{RuleDraftFilesRequired},
		AutoProgress:    true,
	},
	{
		From:                 types.StatusReviewRequested,
		To:                   types.StatusCancelled,
		ActionID:             "cancel_project",
		Label:                "Cancel project",
		Description:          "Cancel the project during initial review",
		RequiredRole:         types.RoleBoth,
		RequiresConfirmation: true,
		ConfirmationMessage:  "Cancel this project? This cannot be undone.",
	},
	{
		From:         types.StatusClientReviewPending,
		To:           types.StatusInProgress,
		ActionID:     "approve_draft",
		Label:        "Approve draft",
		Description:  "Approve the draft direction and start full design work",
		RequiredRole: types.RoleClient,
	},
	{
		From:         types.StatusClientReviewPending,
		To:           types.StatusReviewRequested,
		ActionID:     "request_draft_changes",
		Label:        "Request draft changes",
		Description:  "Send the draft back with change requests",
		RequiredRole: types.RoleClient,
	},
	{
		From:                 types.StatusClientReviewPending,
		To:                   types.StatusCancelled,
		ActionID:             "cancel_project",
		Label:                "Cancel project",
		Description:          "Decline the draft and cancel the project",
		RequiredRole:         types.RoleClient,
		RequiresConfirmation: true,
		ConfirmationMessage:  "Cancel this project? This cannot be undone.",
	},
	{
		From:            types.StatusInProgress,
		To:              types.StatusFeedbackPeriod,
		ActionID:        "open_feedback",
		Label:           "Open feedback period",
		Description:     "Publish the current design round and collect feedback",
		RequiredRole:    types.RoleDesigner,
		ValidationRules: []string{RuleDraftFilesRequired},
	},
	{
		From:                 types.StatusInProgress,
		To:                   types.StatusCancelled,
		ActionID:             "cancel_project",
		Label:                "Cancel project",
		Description:          "Cancel the project mid-work",
		RequiredRole:         types.RoleBoth,
		RequiresConfirmation: true,
		ConfirmationMessage:  "Cancel this project? Work done so far will be kept but the project closes.",
	},
	{
		From:            types.StatusFeedbackPeriod,
		To:              types.StatusModificationInProgress,
		ActionID:        "start_modification",
		Label:           "Start modification round",
		Description:     "Turn collected feedback into a modification round",
		RequiredRole:    types.RoleClient,
		ValidationRules: []string{RuleFeedbackReceived, RuleModificationCountAvailable},
	},
	{
		From:                 types.StatusFeedbackPeriod,
		To:                   types.StatusCompletionRequested,
		ActionID:             "request_completion",
		Label:                "Request completion",
		Description:          "Deliver final files and ask the client to sign off",
		RequiredRole:         types.RoleDesigner,
		ValidationRules:      []string{RuleFinalDeliverablesRequired},
		RequiresConfirmation: true,
		ConfirmationMessage:  "Request completion? The client will be asked to approve the final deliverables.",
	},
	{
		From:         types.StatusModificationInProgress,
		To:           types.StatusFeedbackPeriod,
		ActionID:     "complete_modification",
		Label:        "Complete modification round",
		Description:  "Publish the reworked design and reopen feedback",
		RequiredRole: types.RoleDesigner,
	},
	{
		From:                 types.StatusCompletionRequested,
		To:                   types.StatusCompleted,
		ActionID:             "approve_completion",
		Label:                "Approve completion",
		Description:          "Accept the final deliverables and close the engagement",
		RequiredRole:         types.RoleClient,
		RequiresConfirmation: true,
		ConfirmationMessage:  "Approve completion? The project will be marked as delivered.",
	},
	{
		From:         types.StatusCompletionRequested,
		To:           types.StatusFeedbackPeriod,
		ActionID:     "decline_completion",
		Label:        "Decline completion",
		Description:  "Reopen the feedback period instead of signing off",
		RequiredRole: types.RoleClient,
	},
	{
		From:         types.StatusCompleted,
		To:           types.StatusArchived,
		ActionID:     "archive_project",
		Label:        "Archive project",
		Description:  "Move the delivered project into the archive",
		RequiredRole: types.RoleBoth,
		AutoProgress: true,
	},
}

// FindTransition returns the unique transition for an ordered (from, to)
// pair, or nil when the pair is not declared.
func FindTransition(from, to string) *Transition {
	for i := range Transitions {
		if Transitions[i].From == from && Transitions[i].To == to {
			return &Transitions[i]
		}
	}
	return nil
}

// RoleAllowed reports whether actingRole satisfies the transition's gate.
func (t *Transition) RoleAllowed(actingRole string) bool {
	return t.RequiredRole == types.RoleBoth || t.RequiredRole == actingRole
}

// AvailableActions returns the transitions leaving status that actingRole may
// take, in declaration order. Unknown statuses yield an empty slice.
func AvailableActions(status, role string) []Transition {
	var actions []Transition
	for _, t := range Transitions {
		if t.From == status && t.RoleAllowed(role) {
			actions = append(actions, t)
		}
	}
	return actions
}

// AutoProgressTransition returns the auto-progress transition leaving status,
// if one is declared.
func AutoProgressTransition(status string) *Transition {
	for i := range Transitions {
		if Transitions[i].From == status && Transitions[i].AutoProgress {
			return &Transitions[i]
		}
	}
	return nil
}
