package workflow

import (
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// ProgressData carries the optional inputs that refine the base progress
// value for certain statuses.
type ProgressData struct {
	MilestonesCompleted int
	TotalMilestones     int
	FeedbackRounds      int
}

var progressBase = map[string]int{
	types.StatusCreationPending:        5,
	types.StatusReviewRequested:        10,
	types.StatusClientReviewPending:    20,
	types.StatusDesignerReviewPending:  20,
	types.StatusInProgress:             30,
	types.StatusFeedbackPeriod:         60,
	types.StatusModificationInProgress: 70,
	types.StatusCompletionRequested:    90,
	types.StatusCompleted:              100,
	types.StatusArchived:               100,
	types.StatusCancelled:              0,
}

// CalculateProgress maps a status to a 0-100 completion percentage.
//
// While in_progress, milestone data replaces the base value with
// 30 + 30*(completed/total). During feedback_period, each feedback round adds
// 5 points up to a cap of 15. The result is always clamped to [0, 100].
func CalculateProgress(status string, data *ProgressData) int {
	progress, ok := progressBase[status]
	if !ok {
		return 0
	}

	if data != nil {
		switch status {
		case types.StatusInProgress:
			if data.TotalMilestones > 0 {
				progress = 30 + (30*data.MilestonesCompleted)/data.TotalMilestones
			}
		case types.StatusFeedbackPeriod:
			bonus := data.FeedbackRounds * 5
			if bonus > 15 {
				bonus = 15
			}
			progress += bonus
		}
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress
}
