package socket_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

const (
	wsClientID   = "client-1"
	wsDesignerID = "designer-1"
)

func newWiredServices(t *testing.T) (*service.Services, *socket.Hub) {
	t.Helper()

	hub := socket.NewHub()
	go hub.Run()

	st := store.NewMemoryStore()
	broadcaster := socket.NewBroadcaster(hub)
	notifSvc := notification.NewService(st)
	notifSvc.SetBroadcaster(broadcaster)

	svcs := service.NewServices(&service.ServiceDeps{
		Config: &config.Config{
			AdditionalModificationFee: decimal.NewFromInt(50),
			AutoArchiveAfterDays:      30,
		},
		Store:       st,
		NotifSvc:    notifSvc,
		Broadcaster: broadcaster,
	})
	return svcs, hub
}

// subscribe registers a connection-less client and joins the given rooms.
func subscribe(t *testing.T, hub *socket.Hub, userID, role string, rooms ...string) *socket.Client {
	t.Helper()

	client := socket.NewClient(hub, userID, role, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.IsUserOnline(userID) }, 2*time.Second, 5*time.Millisecond)

	for _, room := range rooms {
		hub.JoinRoom(client, room)
	}
	return client
}

// awaitMessage reads frames until one of the wanted type arrives. Presence
// broadcasts and other engine events may interleave.
func awaitMessage(t *testing.T, client *socket.Client, want socket.MessageType) map[string]interface{} {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case raw, ok := <-client.Send:
			require.True(t, ok, "send channel closed")
			var msg socket.Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			if msg.Type == want {
				return msg.Payload
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s message", want)
			return nil
		}
	}
}

func createWiredProject(t *testing.T, svcs *service.Services) *models.Project {
	t.Helper()

	project, err := svcs.Project.Create(context.Background(), &models.CreateProjectRequest{
		Name:                   "Socket test project",
		ClientID:               wsClientID,
		DesignerID:             wsDesignerID,
		TotalModificationCount: 3,
	})
	require.NoError(t, err)
	return project
}

func TestProjectCreatedReachesBothParties(t *testing.T) {
	svcs, hub := newWiredServices(t)

	client := subscribe(t, hub, wsClientID, types.RoleClient)
	designer := subscribe(t, hub, wsDesignerID, types.RoleDesigner)

	project := createWiredProject(t, svcs)

	payload := awaitMessage(t, client, socket.MessageProjectCreated)
	require.Equal(t, project.ID, payload["projectId"])

	payload = awaitMessage(t, designer, socket.MessageProjectCreated)
	require.Equal(t, project.ID, payload["projectId"])
}

func TestVersionEventsReachProjectRoom(t *testing.T) {
	svcs, hub := newWiredServices(t)
	ctx := context.Background()
	project := createWiredProject(t, svcs)

	watcher := subscribe(t, hub, wsClientID, types.RoleClient, "project:"+project.ID)

	version, err := svcs.Version.CreateVersion(ctx, project.ID, wsDesignerID, &models.CreateVersionRequest{
		Files: []models.CreateVersionFileInput{
			{Name: "draft.pdf", URL: "https://files.example.com/draft.pdf"},
		},
	})
	require.NoError(t, err)

	payload := awaitMessage(t, watcher, socket.MessageVersionCreated)
	require.Equal(t, version.ID, payload["versionId"])

	_, err = svcs.Version.ApproveVersion(ctx, version.ID, wsClientID)
	require.NoError(t, err)

	payload = awaitMessage(t, watcher, socket.MessageVersionApproved)
	require.Equal(t, version.ID, payload["versionId"])

	// Publish a second version, then move the current pointer back.
	_, err = svcs.Version.CreateVersion(ctx, project.ID, wsDesignerID, &models.CreateVersionRequest{
		Files: []models.CreateVersionFileInput{
			{Name: "rework.pdf", URL: "https://files.example.com/rework.pdf"},
		},
	})
	require.NoError(t, err)

	_, err = svcs.Version.SetCurrentVersion(ctx, version.ID)
	require.NoError(t, err)

	payload = awaitMessage(t, watcher, socket.MessageVersionRestored)
	require.Equal(t, version.ID, payload["versionId"])
	require.Equal(t, float64(1), payload["versionNumber"])
}

func TestFeedbackEventsReachProjectRoom(t *testing.T) {
	svcs, hub := newWiredServices(t)
	ctx := context.Background()
	project := createWiredProject(t, svcs)

	watcher := subscribe(t, hub, wsDesignerID, types.RoleDesigner, "project:"+project.ID)

	history, err := svcs.Feedback.CreateFeedback(ctx, project.ID, wsClientID, map[string]interface{}{
		"overall": "first pass",
	})
	require.NoError(t, err)

	payload := awaitMessage(t, watcher, socket.MessageFeedbackCreated)
	require.Equal(t, history.FeedbackID, payload["feedbackId"])

	_, err = svcs.Feedback.UpdateFeedback(ctx, history.FeedbackID, map[string]interface{}{
		"overall": "second pass",
	}, wsClientID)
	require.NoError(t, err)

	payload = awaitMessage(t, watcher, socket.MessageFeedbackUpdated)
	require.Equal(t, history.FeedbackID, payload["feedbackId"])
	require.Equal(t, float64(2), payload["version"])
}

func TestNotificationCountFollowsReadState(t *testing.T) {
	svcs, hub := newWiredServices(t)
	ctx := context.Background()
	project := createWiredProject(t, svcs)

	designer := subscribe(t, hub, wsDesignerID, types.RoleDesigner)

	version, err := svcs.Version.CreateVersion(ctx, project.ID, wsDesignerID, &models.CreateVersionRequest{
		Files: []models.CreateVersionFileInput{
			{Name: "draft.pdf", URL: "https://files.example.com/draft.pdf"},
		},
	})
	require.NoError(t, err)

	// Approval notifies the designer; the badge count follows the push.
	_, err = svcs.Version.ApproveVersion(ctx, version.ID, wsClientID)
	require.NoError(t, err)

	awaitMessage(t, designer, socket.MessageNotification)
	payload := awaitMessage(t, designer, socket.MessageNotificationCount)
	require.Equal(t, float64(1), payload["total"])
	require.Equal(t, float64(1), payload["unread"])

	require.NoError(t, svcs.Notification.MarkAllRead(ctx, wsDesignerID))

	payload = awaitMessage(t, designer, socket.MessageNotificationCount)
	require.Equal(t, float64(1), payload["total"])
	require.Equal(t, float64(0), payload["unread"])
}
