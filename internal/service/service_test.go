package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

const (
	testClientID   = "client-1"
	testDesignerID = "designer-1"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()

	cfg := &config.Config{
		AdditionalModificationFee: decimal.NewFromInt(50),
		AutoArchiveAfterDays:      30,
	}
	return NewServices(&ServiceDeps{
		Config: cfg,
		Store:  store.NewMemoryStore(),
	})
}

func createTestProject(t *testing.T, svcs *Services, modifications int) *models.Project {
	t.Helper()

	project, err := svcs.Project.Create(context.Background(), &models.CreateProjectRequest{
		Name:                   "Test project",
		ClientID:               testClientID,
		DesignerID:             testDesignerID,
		TotalModificationCount: modifications,
	})
	require.NoError(t, err)
	return project
}

// publishTestVersion publishes a single-file draft so file-gated transitions
// can pass.
func publishTestVersion(t *testing.T, svcs *Services, projectID string) *models.DesignVersion {
	t.Helper()

	version, err := svcs.Version.CreateVersion(context.Background(), projectID, testDesignerID, &models.CreateVersionRequest{
		Files: []models.CreateVersionFileInput{
			{Name: "draft.pdf", URL: "https://files.example.com/draft.pdf"},
		},
	})
	require.NoError(t, err)
	return version
}

// advanceToFeedbackPeriod walks a fresh project to feedback_period.
func advanceToFeedbackPeriod(t *testing.T, svcs *Services, projectID string) {
	t.Helper()
	ctx := context.Background()

	publishTestVersion(t, svcs, projectID)

	steps := []struct {
		target string
		role   string
		actor  string
	}{
		{types.StatusReviewRequested, types.RoleDesigner, testDesignerID},
		{types.StatusClientReviewPending, types.RoleDesigner, testDesignerID},
		{types.StatusInProgress, types.RoleClient, testClientID},
		{types.StatusFeedbackPeriod, types.RoleDesigner, testDesignerID},
	}
	for _, step := range steps {
		_, err := svcs.Workflow.RequestTransition(ctx, projectID, step.target, step.role, step.actor, nil)
		require.NoError(t, err, "transition to %s", step.target)
	}
}

func TestProjectCreateDefaults(t *testing.T) {
	svcs := newTestServices(t)
	project := createTestProject(t, svcs, 3)

	require.Equal(t, types.StatusCreationPending, project.Status)
	require.Equal(t, 3, project.TotalModificationCount)
	require.Equal(t, 3, project.RemainingModificationCount)
	require.Equal(t, 0, project.FeedbackRounds)
	require.WithinDuration(t, time.Now(), project.CreatedAt, time.Minute)

	loaded, err := svcs.Project.GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	require.Equal(t, project.ID, loaded.ID)
}

func TestProjectCreateValidation(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Project.Create(ctx, &models.CreateProjectRequest{
		Name: "  ", ClientID: testClientID, DesignerID: testDesignerID,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svcs.Project.Create(ctx, &models.CreateProjectRequest{
		Name: "x", ClientID: testClientID, DesignerID: testDesignerID, TotalModificationCount: -1,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectListForUser(t *testing.T) {
	svcs := newTestServices(t)
	ctx := context.Background()

	mine := createTestProject(t, svcs, 1)

	_, err := svcs.Project.Create(ctx, &models.CreateProjectRequest{
		Name: "Other", ClientID: "someone-else", DesignerID: testDesignerID,
	})
	require.NoError(t, err)

	asClient, err := svcs.Project.ListForUser(ctx, testClientID, types.RoleClient)
	require.NoError(t, err)
	require.Len(t, asClient, 1)
	require.Equal(t, mine.ID, asClient[0].ID)

	asDesigner, err := svcs.Project.ListForUser(ctx, testDesignerID, types.RoleDesigner)
	require.NoError(t, err)
	require.Len(t, asDesigner, 2)
}
