package notification

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
)

// Notification types
const (
	TypeProjectStatusChanged  = "PROJECT_STATUS_CHANGED"
	TypeVersionApproved       = "VERSION_APPROVED"
	TypeFeedbackUpdated       = "FEEDBACK_UPDATED"
	TypeModificationRequested = "MODIFICATION_REQUESTED"
	TypeModificationCompleted = "MODIFICATION_COMPLETED"
	TypeDeadlineReminder      = "DEADLINE_REMINDER"
)

// Service handles creating, persisting and pushing notifications
type Service struct {
	store       store.Store
	broadcaster *socket.Broadcaster
}

// NewService creates a new notification service
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

func (s *Service) SetBroadcaster(b *socket.Broadcaster) {
	s.broadcaster = b
}

// ============================================
// WebSocket Helper
// ============================================

// sendWebSocketNotification sends real-time notification via WebSocket
func (s *Service) sendWebSocketNotification(notification *models.Notification) {
	if s.broadcaster == nil || notification == nil {
		return
	}

	s.broadcaster.SendNotification(notification.UserID, map[string]interface{}{
		"id":        notification.ID,
		"type":      notification.Type,
		"title":     notification.Title,
		"message":   notification.Message,
		"data":      notification.Data,
		"read":      notification.Read,
		"createdAt": notification.CreatedAt,
	})
}

// pushCount pushes the user's current badge counts over WebSocket.
func (s *Service) pushCount(ctx context.Context, userID string) {
	if s.broadcaster == nil {
		return
	}
	count, err := s.Count(ctx, userID)
	if err != nil {
		return
	}
	s.broadcaster.SendNotificationCount(userID, count.Total, count.Unread)
}

// deliver persists a notification, pushes it over WebSocket and updates the
// recipient's badge counts.
func (s *Service) deliver(ctx context.Context, n *models.Notification) error {
	if n.UserID == "" {
		return nil // Skip if no user to notify
	}
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()

	if err := store.PutJSON(ctx, s.store, store.NotificationKey(n.UserID, n.ID), n); err != nil {
		return err
	}

	s.sendWebSocketNotification(n)
	s.pushCount(ctx, n.UserID)
	return nil
}

// ============================================
// Lifecycle Notifications
// ============================================

// SendStatusChanged notifies the project's other party about a status change.
// When the actor is unknown (auto-progress) both parties are notified.
func (s *Service) SendStatusChanged(ctx context.Context, project *models.Project, fromStatus, actorID string) error {
	recipients := []string{}
	switch actorID {
	case project.ClientID:
		recipients = append(recipients, project.DesignerID)
	case project.DesignerID:
		recipients = append(recipients, project.ClientID)
	default:
		recipients = append(recipients, project.ClientID, project.DesignerID)
	}

	for _, userID := range recipients {
		n := &models.Notification{
			UserID:  userID,
			Type:    TypeProjectStatusChanged,
			Title:   "Project Status Changed",
			Message: fmt.Sprintf("Project %q moved from %s to %s", project.Name, fromStatus, project.Status),
			Data: map[string]interface{}{
				"projectId":  project.ID,
				"fromStatus": fromStatus,
				"toStatus":   project.Status,
				"action":     "view_project",
			},
		}
		if err := s.deliver(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// SendVersionApproved notifies the designer that a design version was approved
func (s *Service) SendVersionApproved(ctx context.Context, projectID string, versionNumber int, approvedBy string) error {
	project, err := s.loadProject(ctx, projectID)
	if err != nil || project == nil {
		return err
	}

	return s.deliver(ctx, &models.Notification{
		UserID:  project.DesignerID,
		Type:    TypeVersionApproved,
		Title:   "Design Version Approved",
		Message: fmt.Sprintf("Version %d of %q was approved", versionNumber, project.Name),
		Data: map[string]interface{}{
			"projectId":     projectID,
			"versionNumber": versionNumber,
			"approvedBy":    approvedBy,
			"action":        "view_versions",
		},
	})
}

// SendFeedbackUpdated notifies the designer that feedback content changed
func (s *Service) SendFeedbackUpdated(ctx context.Context, projectID, feedbackID, updatedBy string, changeCount int) error {
	project, err := s.loadProject(ctx, projectID)
	if err != nil || project == nil {
		return err
	}

	// The counterpart of whoever edited gets the notification.
	userID := project.DesignerID
	if updatedBy == project.DesignerID {
		userID = project.ClientID
	}

	return s.deliver(ctx, &models.Notification{
		UserID:  userID,
		Type:    TypeFeedbackUpdated,
		Title:   "Feedback Updated",
		Message: fmt.Sprintf("Feedback on %q was updated (%d changes)", project.Name, changeCount),
		Data: map[string]interface{}{
			"projectId":  projectID,
			"feedbackId": feedbackID,
			"updatedBy":  updatedBy,
			"action":     "view_feedback",
		},
	})
}

// SendModificationRequested notifies the designer about a new modification request
func (s *Service) SendModificationRequested(ctx context.Context, project *models.Project, request *models.ModificationRequest) error {
	title := "Modification Requested"
	message := fmt.Sprintf("Modification #%d requested on %q", request.RequestNumber, project.Name)
	if request.IsAdditionalCost {
		title = "Paid Modification Requested"
		message = fmt.Sprintf("Modification #%d on %q exceeds the included quota", request.RequestNumber, project.Name)
	}

	return s.deliver(ctx, &models.Notification{
		UserID:  project.DesignerID,
		Type:    TypeModificationRequested,
		Title:   title,
		Message: message,
		Data: map[string]interface{}{
			"projectId":        project.ID,
			"requestId":        request.ID,
			"requestNumber":    request.RequestNumber,
			"urgency":          request.Urgency,
			"isAdditionalCost": request.IsAdditionalCost,
			"action":           "view_modification",
		},
	})
}

// SendModificationCompleted notifies the client that a modification is done
func (s *Service) SendModificationCompleted(ctx context.Context, project *models.Project, request *models.ModificationRequest) error {
	return s.deliver(ctx, &models.Notification{
		UserID:  project.ClientID,
		Type:    TypeModificationCompleted,
		Title:   "Modification Completed",
		Message: fmt.Sprintf("Modification #%d on %q has been completed", request.RequestNumber, project.Name),
		Data: map[string]interface{}{
			"projectId":     project.ID,
			"requestId":     request.ID,
			"requestNumber": request.RequestNumber,
			"action":        "view_modification",
		},
	})
}

// SendDeadlineReminder notifies a user about an approaching project deadline
func (s *Service) SendDeadlineReminder(ctx context.Context, userID string, project *models.Project, deadlineName string, daysLeft int) error {
	message := fmt.Sprintf("%s for %q is due in %d days", deadlineName, project.Name, daysLeft)
	if daysLeft <= 0 {
		message = fmt.Sprintf("%s for %q is due today", deadlineName, project.Name)
	}

	return s.deliver(ctx, &models.Notification{
		UserID:  userID,
		Type:    TypeDeadlineReminder,
		Title:   "Deadline Reminder",
		Message: message,
		Data: map[string]interface{}{
			"projectId": project.ID,
			"deadline":  deadlineName,
			"daysLeft":  daysLeft,
			"action":    "view_project",
		},
	})
}

// ============================================
// Query / Maintenance
// ============================================

// List returns a user's notifications, newest first
func (s *Service) List(ctx context.Context, userID string, unreadOnly bool) ([]*models.Notification, error) {
	keys, err := s.store.ListKeysByPrefix(ctx, store.NotificationPrefix(userID))
	if err != nil {
		return nil, err
	}

	notifications := make([]*models.Notification, 0, len(keys))
	for _, key := range keys {
		n := &models.Notification{}
		if err := store.GetJSON(ctx, s.store, key, n); err != nil {
			if err == store.ErrKeyNotFound {
				continue
			}
			return nil, err
		}
		if unreadOnly && n.Read {
			continue
		}
		notifications = append(notifications, n)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// Count returns total and unread notification counts for a user
func (s *Service) Count(ctx context.Context, userID string) (*models.NotificationCountResponse, error) {
	all, err := s.List(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	count := &models.NotificationCountResponse{Total: len(all)}
	for _, n := range all {
		if !n.Read {
			count.Unread++
		}
	}
	return count, nil
}

// MarkRead marks a single notification as read
func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) error {
	key := store.NotificationKey(userID, notificationID)
	n := &models.Notification{}
	if err := store.GetJSON(ctx, s.store, key, n); err != nil {
		return err
	}
	if n.Read {
		return nil
	}
	n.Read = true
	if err := store.PutJSON(ctx, s.store, key, n); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	all, err := s.List(ctx, userID, true)
	if err != nil {
		return err
	}
	for _, n := range all {
		n.Read = true
		if err := store.PutJSON(ctx, s.store, store.NotificationKey(userID, n.ID), n); err != nil {
			return err
		}
	}
	s.pushCount(ctx, userID)
	return nil
}

// Delete removes a single notification
func (s *Service) Delete(ctx context.Context, userID, notificationID string) error {
	return s.store.Delete(ctx, store.NotificationKey(userID, notificationID))
}

// DeleteOlderThan removes read notifications created before the cutoff.
// Used by the weekly cleanup job.
func (s *Service) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	keys, err := s.store.ListKeysByPrefix(ctx, "notification:")
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, key := range keys {
		n := &models.Notification{}
		if err := store.GetJSON(ctx, s.store, key, n); err != nil {
			continue
		}
		if n.Read && n.CreatedAt.Before(cutoff) {
			if err := s.store.Delete(ctx, key); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

func (s *Service) loadProject(ctx context.Context, projectID string) (*models.Project, error) {
	project := &models.Project{}
	err := store.GetJSON(ctx, s.store, store.ProjectKey(projectID), project)
	if err == store.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}
