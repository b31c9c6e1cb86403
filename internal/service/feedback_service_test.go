package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

func TestCreateFeedbackSeedsVersionOne(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, svcs, 3)

	history, err := svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{
		"overall": "Looks good",
		"rating":  4,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, history.CurrentVersion)
	require.Len(t, history.Versions, 1)
	assert.Empty(t, history.Versions[0].Changes)
	assert.Equal(t, testClientID, history.Versions[0].UpdatedBy)

	// Numbers normalize through JSON so later diffs compare like with like.
	assert.Equal(t, float64(4), history.Versions[0].Snapshot["rating"])

	_, err = svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateFeedbackDerivesChangeTypes(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, svcs, 3)

	history, err := svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{
		"overall":  "Looks good",
		"priority": "high",
	})
	require.NoError(t, err)

	updated, err := svcs.Feedback.UpdateFeedback(ctx, history.FeedbackID, map[string]interface{}{
		"overall":  "Needs a darker palette", // modified
		"logo":     "Too small",              // added
		"priority": nil,                      // removed
	}, testClientID)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.CurrentVersion)
	require.Len(t, updated.Versions, 2)

	// Changes come back sorted by field name.
	changes := updated.Versions[1].Changes
	require.Len(t, changes, 3)
	assert.Equal(t, "logo", changes[0].Field)
	assert.Equal(t, types.ChangeAdded, changes[0].ChangeType)
	assert.Equal(t, "overall", changes[1].Field)
	assert.Equal(t, types.ChangeModified, changes[1].ChangeType)
	assert.Equal(t, "Looks good", changes[1].OldValue)
	assert.Equal(t, "priority", changes[2].Field)
	assert.Equal(t, types.ChangeRemoved, changes[2].ChangeType)

	// The removed field is gone from the new snapshot.
	snapshot := updated.Versions[1].Snapshot
	_, exists := snapshot["priority"]
	assert.False(t, exists)
	assert.Equal(t, "Too small", snapshot["logo"])

	// The earlier snapshot is untouched.
	assert.Equal(t, "high", updated.Versions[0].Snapshot["priority"])
}

func TestUpdateFeedbackNoOpSuppressed(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, svcs, 3)

	history, err := svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{
		"overall": "Looks good",
		"rounds":  2,
	})
	require.NoError(t, err)

	// Same values, including an equal number arriving as int again, and a
	// removal of a field that never existed.
	same, err := svcs.Feedback.UpdateFeedback(ctx, history.FeedbackID, map[string]interface{}{
		"overall": "Looks good",
		"rounds":  2,
		"ghost":   nil,
	}, testClientID)
	require.NoError(t, err)
	assert.Equal(t, 1, same.CurrentVersion)
	assert.Len(t, same.Versions, 1)
}

func TestCompareVersions(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, svcs, 3)

	history, err := svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{
		"overall": "v1 text",
		"old":     "kept for now",
	})
	require.NoError(t, err)

	_, err = svcs.Feedback.UpdateFeedback(ctx, history.FeedbackID, map[string]interface{}{
		"overall": "v2 text",
		"old":     nil,
		"fresh":   "new field",
	}, testClientID)
	require.NoError(t, err)

	changes, err := svcs.Feedback.CompareVersions(ctx, history.FeedbackID, 1, 2)
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, types.ChangeAdded, changes[0].ChangeType)   // fresh
	assert.Equal(t, types.ChangeRemoved, changes[1].ChangeType) // old
	assert.Equal(t, types.ChangeModified, changes[2].ChangeType)

	// Comparing a version against itself yields nothing.
	self, err := svcs.Feedback.CompareVersions(ctx, history.FeedbackID, 2, 2)
	require.NoError(t, err)
	assert.Empty(t, self)

	// Reverse comparison flips add/remove.
	reverse, err := svcs.Feedback.CompareVersions(ctx, history.FeedbackID, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, types.ChangeRemoved, reverse[0].ChangeType) // fresh
	assert.Equal(t, types.ChangeAdded, reverse[1].ChangeType)   // old

	_, err = svcs.Feedback.CompareVersions(ctx, history.FeedbackID, 1, 99)
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestRollbackAppendsVersion(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, svcs, 3)

	history, err := svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{
		"overall": "original",
	})
	require.NoError(t, err)

	_, err = svcs.Feedback.UpdateFeedback(ctx, history.FeedbackID, map[string]interface{}{
		"overall": "edited",
	}, testClientID)
	require.NoError(t, err)

	rolled, err := svcs.Feedback.RollbackToVersion(ctx, history.FeedbackID, 1, testDesignerID)
	require.NoError(t, err)

	// Rollback appends; it never truncates.
	assert.Equal(t, 3, rolled.CurrentVersion)
	require.Len(t, rolled.Versions, 3)
	assert.Equal(t, "original", rolled.Versions[2].Snapshot["overall"])
	assert.Equal(t, testDesignerID, rolled.Versions[2].UpdatedBy)
	require.Len(t, rolled.Versions[2].Changes, 1)
	assert.Equal(t, types.ChangeModified, rolled.Versions[2].Changes[0].ChangeType)

	// Rolling back to the snapshot already in force is a no-op.
	again, err := svcs.Feedback.RollbackToVersion(ctx, history.FeedbackID, 1, testDesignerID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.CurrentVersion)

	_, err = svcs.Feedback.RollbackToVersion(ctx, history.FeedbackID, 99, testDesignerID)
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestFeedbackHistoryInvariants(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, svcs, 3)

	history, err := svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{"a": 1})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		history, err = svcs.Feedback.UpdateFeedback(ctx, history.FeedbackID, map[string]interface{}{
			"a": i + 2,
		}, testClientID)
		require.NoError(t, err)
	}

	// CurrentVersion always equals len(Versions); numbers are contiguous.
	assert.Equal(t, len(history.Versions), history.CurrentVersion)
	for i, v := range history.Versions {
		assert.Equal(t, i+1, v.Version)
	}
}

func TestListFeedbackByProject(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, svcs, 3)

	_, err := svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{"a": 1})
	require.NoError(t, err)
	_, err = svcs.Feedback.CreateFeedback(ctx, project.ID, testClientID, map[string]interface{}{"b": 2})
	require.NoError(t, err)

	histories, err := svcs.Feedback.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, histories, 2)

	histories, err = svcs.Feedback.ListByProject(ctx, "other-project")
	require.NoError(t, err)
	assert.Empty(t, histories)
}

func TestChangesSummary(t *testing.T) {
	assert.Equal(t, "No changes", ChangesSummary(nil))

	summary := ChangesSummary([]models.FeedbackChange{
		{Field: "logo", ChangeType: types.ChangeAdded},
		{Field: "overall", ChangeType: types.ChangeModified},
		{Field: "palette", ChangeType: types.ChangeModified},
		{Field: "priority", ChangeType: types.ChangeRemoved},
	})
	assert.Equal(t, "added: logo; modified: overall, palette; removed: priority", summary)
}
