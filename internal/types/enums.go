package types

// Project Status values
const (
	StatusCreationPending        = "creation_pending"
	StatusReviewRequested        = "review_requested"
	StatusClientReviewPending    = "client_review_pending"
	StatusDesignerReviewPending  = "designer_review_pending"
	StatusInProgress             = "in_progress"
	StatusFeedbackPeriod         = "feedback_period"
	StatusModificationInProgress = "modification_in_progress"
	StatusCompletionRequested    = "completion_requested"
	StatusCompleted              = "completed"
	StatusArchived               = "archived"
	StatusCancelled              = "cancelled"
)

// Actor roles
const (
	RoleClient   = "client"
	RoleDesigner = "designer"
	RoleBoth     = "both"
)

// Modification Request Status values
const (
	ModificationPending    = "pending"
	ModificationApproved   = "approved"
	ModificationInProgress = "in_progress"
	ModificationCompleted  = "completed"
	ModificationRejected   = "rejected"
)

// Modification urgency values
const (
	UrgencyLow    = "low"
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
)

// Feedback change types
const (
	ChangeAdded    = "added"
	ChangeModified = "modified"
	ChangeRemoved  = "removed"
)

// Valid values for validation
var ValidProjectStatuses = []string{
	StatusCreationPending, StatusReviewRequested, StatusClientReviewPending,
	StatusDesignerReviewPending, StatusInProgress, StatusFeedbackPeriod,
	StatusModificationInProgress, StatusCompletionRequested, StatusCompleted,
	StatusArchived, StatusCancelled,
}

var ValidRoles = []string{RoleClient, RoleDesigner}

var ValidModificationStatuses = []string{
	ModificationPending, ModificationApproved, ModificationInProgress,
	ModificationCompleted, ModificationRejected,
}

var ValidUrgencies = []string{UrgencyLow, UrgencyNormal, UrgencyHigh}

// Helper functions for validation
func IsValidProjectStatus(status string) bool {
	for _, s := range ValidProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidModificationStatus(status string) bool {
	for _, s := range ValidModificationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidUrgency(urgency string) bool {
	for _, u := range ValidUrgencies {
		if u == urgency {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a project can no longer leave the status.
func IsTerminalStatus(status string) bool {
	return status == StatusArchived || status == StatusCancelled
}
