package workflow

import (
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// DisplayInfo is presentation metadata for a status. Other components key off
// Color to decide urgency styling; nothing here carries business logic.
type DisplayInfo struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

var displayTable = map[string]DisplayInfo{
	types.StatusCreationPending: {
		Status:      types.StatusCreationPending,
		Label:       "Awaiting kickoff",
		Description: "The project has been created and is waiting for the designer to submit it for review",
		Icon:        "sparkles",
		Color:       "gray",
	},
	types.StatusReviewRequested: {
		Status:      types.StatusReviewRequested,
		Label:       "Review requested",
		Description: "The designer is preparing the first draft for client review",
		Icon:        "clipboard",
		Color:       "blue",
	},
	types.StatusClientReviewPending: {
		Status:      types.StatusClientReviewPending,
		Label:       "Waiting on client review",
		Description: "The client is reviewing the first draft",
		Icon:        "eye",
		Color:       "blue",
	},
	types.StatusDesignerReviewPending: {
		Status:      types.StatusDesignerReviewPending,
		Label:       "Waiting on designer review",
		Description: "The designer is reviewing the client's brief",
		Icon:        "eye",
		Color:       "blue",
	},
	types.StatusInProgress: {
		Status:      types.StatusInProgress,
		Label:       "In progress",
		Description: "Full design work is underway",
		Icon:        "pencil",
		Color:       "indigo",
	},
	types.StatusFeedbackPeriod: {
		Status:      types.StatusFeedbackPeriod,
		Label:       "Feedback period",
		Description: "The client is reviewing the current round and leaving feedback",
		Icon:        "chat",
		Color:       "amber",
	},
	types.StatusModificationInProgress: {
		Status:      types.StatusModificationInProgress,
		Label:       "Modification in progress",
		Description: "The designer is working through a requested modification round",
		Icon:        "refresh",
		Color:       "amber",
	},
	types.StatusCompletionRequested: {
		Status:      types.StatusCompletionRequested,
		Label:       "Completion requested",
		Description: "Final deliverables are waiting for client sign-off",
		Icon:        "flag",
		Color:       "purple",
	},
	types.StatusCompleted: {
		Status:      types.StatusCompleted,
		Label:       "Completed",
		Description: "The client approved the final deliverables",
		Icon:        "check-circle",
		Color:       "green",
	},
	types.StatusArchived: {
		Status:      types.StatusArchived,
		Label:       "Archived",
		Description: "The project has been moved to the archive",
		Icon:        "archive",
		Color:       "gray",
	},
	types.StatusCancelled: {
		Status:      types.StatusCancelled,
		Label:       "Cancelled",
		Description: "The project was cancelled before delivery",
		Icon:        "x-circle",
		Color:       "red",
	},
}

// StatusDisplayInfo returns the presentation metadata for status.
func StatusDisplayInfo(status string) (DisplayInfo, error) {
	info, ok := displayTable[status]
	if !ok {
		return DisplayInfo{}, ErrUnknownStatus
	}
	return info, nil
}

// AllDisplayInfo returns display metadata for every status in lifecycle order.
func AllDisplayInfo() []DisplayInfo {
	infos := make([]DisplayInfo, 0, len(displayTable))
	for _, status := range types.ValidProjectStatuses {
		infos = append(infos, displayTable[status])
	}
	return infos
}
