package socket

import (
	"fmt"
	"log"
)

// Broadcaster provides high-level methods for broadcasting events
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// ============================================
// Notification Broadcasting
// ============================================

// SendNotification sends a notification to a specific user
func (b *Broadcaster) SendNotification(userID string, notification map[string]interface{}) {
	b.hub.SendToUser(userID, MessageNotification, notification)
}

// SendNotificationCount updates notification count for a user
func (b *Broadcaster) SendNotificationCount(userID string, total, unread int) {
	b.hub.SendToUser(userID, MessageNotificationCount, map[string]interface{}{
		"total":  total,
		"unread": unread,
	})
}

// ============================================
// Project Lifecycle Broadcasting
// ============================================

// BroadcastProjectCreated broadcasts project creation to both parties
func (b *Broadcaster) BroadcastProjectCreated(projectID, clientID, designerID, name string) {
	payload := map[string]interface{}{
		"projectId":  projectID,
		"name":       name,
		"clientId":   clientID,
		"designerId": designerID,
	}
	b.hub.SendToUser(clientID, MessageProjectCreated, payload)
	b.hub.SendToUser(designerID, MessageProjectCreated, payload)
}

// BroadcastProjectStatusChanged broadcasts a lifecycle transition to project members
func (b *Broadcaster) BroadcastProjectStatusChanged(projectID, fromStatus, toStatus, changedByUser string) {
	room := fmt.Sprintf("project:%s", projectID)

	payload := map[string]interface{}{
		"projectId":     projectID,
		"fromStatus":    fromStatus,
		"toStatus":      toStatus,
		"changedByUser": changedByUser,
	}

	log.Printf("📡 BroadcastProjectStatusChanged: room=%s, %s -> %s",
		room, fromStatus, toStatus)

	b.hub.SendToRoom(room, MessageProjectStatusChanged, payload, "")
}

// ============================================
// Design Version Broadcasting
// ============================================

// BroadcastVersionCreated broadcasts a new design version to project members
func (b *Broadcaster) BroadcastVersionCreated(projectID, versionID string, versionNumber int, createdBy string) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageVersionCreated, map[string]interface{}{
		"projectId":     projectID,
		"versionId":     versionID,
		"versionNumber": versionNumber,
		"createdBy":     createdBy,
	}, createdBy)
}

// BroadcastVersionApproved broadcasts a version approval to project members
func (b *Broadcaster) BroadcastVersionApproved(projectID, versionID string, versionNumber int, approvedBy string) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageVersionApproved, map[string]interface{}{
		"projectId":     projectID,
		"versionId":     versionID,
		"versionNumber": versionNumber,
		"approvedBy":    approvedBy,
	}, "")
}

// BroadcastVersionRestored broadcasts a current-pointer move to project members
func (b *Broadcaster) BroadcastVersionRestored(projectID, versionID string, versionNumber int) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageVersionRestored, map[string]interface{}{
		"projectId":     projectID,
		"versionId":     versionID,
		"versionNumber": versionNumber,
	}, "")
}

// ============================================
// Feedback Broadcasting
// ============================================

// BroadcastFeedbackCreated broadcasts new feedback to project members
func (b *Broadcaster) BroadcastFeedbackCreated(projectID, feedbackID, createdBy string) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageFeedbackCreated, map[string]interface{}{
		"projectId":  projectID,
		"feedbackId": feedbackID,
		"createdBy":  createdBy,
	}, createdBy)
}

// BroadcastFeedbackUpdated broadcasts a feedback edit to project members
func (b *Broadcaster) BroadcastFeedbackUpdated(projectID, feedbackID string, version int, updatedBy string) {
	room := fmt.Sprintf("project:%s", projectID)

	log.Printf("📡 BroadcastFeedbackUpdated: room=%s, feedbackId=%s, version=%d",
		room, feedbackID, version)

	b.hub.SendToRoom(room, MessageFeedbackUpdated, map[string]interface{}{
		"projectId":  projectID,
		"feedbackId": feedbackID,
		"version":    version,
		"updatedBy":  updatedBy,
	}, updatedBy)
}

// ============================================
// Modification Broadcasting
// ============================================

// BroadcastModificationUpdated broadcasts a modification request status change
func (b *Broadcaster) BroadcastModificationUpdated(projectID, requestID, status, changedByUser string) {
	room := fmt.Sprintf("project:%s", projectID)
	b.hub.SendToRoom(room, MessageModificationUpdated, map[string]interface{}{
		"projectId":     projectID,
		"requestId":     requestID,
		"status":        status,
		"changedByUser": changedByUser,
	}, "")
}
