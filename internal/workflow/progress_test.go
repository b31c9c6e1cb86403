package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

func TestCalculateProgressBaseValues(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{types.StatusCreationPending, 5},
		{types.StatusReviewRequested, 10},
		{types.StatusClientReviewPending, 20},
		{types.StatusDesignerReviewPending, 20},
		{types.StatusInProgress, 30},
		{types.StatusFeedbackPeriod, 60},
		{types.StatusModificationInProgress, 70},
		{types.StatusCompletionRequested, 90},
		{types.StatusCompleted, 100},
		{types.StatusArchived, 100},
		{types.StatusCancelled, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateProgress(tt.status, nil), tt.status)
	}
}

func TestCalculateProgressMilestones(t *testing.T) {
	// Milestones refine the in_progress value between 30 and 60.
	assert.Equal(t, 30, CalculateProgress(types.StatusInProgress, &ProgressData{TotalMilestones: 4}))
	assert.Equal(t, 45, CalculateProgress(types.StatusInProgress, &ProgressData{MilestonesCompleted: 2, TotalMilestones: 4}))
	assert.Equal(t, 60, CalculateProgress(types.StatusInProgress, &ProgressData{MilestonesCompleted: 4, TotalMilestones: 4}))

	// Zero total milestones falls back to the base value.
	assert.Equal(t, 30, CalculateProgress(types.StatusInProgress, &ProgressData{MilestonesCompleted: 3}))

	// Milestone data is ignored outside in_progress.
	assert.Equal(t, 60, CalculateProgress(types.StatusFeedbackPeriod, &ProgressData{MilestonesCompleted: 4, TotalMilestones: 4}))
}

func TestCalculateProgressFeedbackRounds(t *testing.T) {
	assert.Equal(t, 60, CalculateProgress(types.StatusFeedbackPeriod, &ProgressData{}))
	assert.Equal(t, 65, CalculateProgress(types.StatusFeedbackPeriod, &ProgressData{FeedbackRounds: 1}))
	assert.Equal(t, 70, CalculateProgress(types.StatusFeedbackPeriod, &ProgressData{FeedbackRounds: 2}))

	// The round bonus caps at 15.
	assert.Equal(t, 75, CalculateProgress(types.StatusFeedbackPeriod, &ProgressData{FeedbackRounds: 3}))
	assert.Equal(t, 75, CalculateProgress(types.StatusFeedbackPeriod, &ProgressData{FeedbackRounds: 10}))
}

func TestCalculateProgressClampAndUnknown(t *testing.T) {
	assert.Equal(t, 0, CalculateProgress("nonsense", nil))

	// Over-complete milestone data clamps at 100.
	assert.Equal(t, 100, CalculateProgress(types.StatusInProgress, &ProgressData{MilestonesCompleted: 20, TotalMilestones: 2}))
}
