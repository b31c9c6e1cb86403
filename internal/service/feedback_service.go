package service

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// ============================================
// Feedback History Ledger Service
// ============================================

type FeedbackService interface {
	CreateFeedback(ctx context.Context, projectID, createdBy string, content map[string]interface{}) (*models.FeedbackHistory, error)
	GetHistory(ctx context.Context, feedbackID string) (*models.FeedbackHistory, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.FeedbackHistory, error)
	UpdateFeedback(ctx context.Context, feedbackID string, updates map[string]interface{}, updatedBy string) (*models.FeedbackHistory, error)
	CompareVersions(ctx context.Context, feedbackID string, v1, v2 int) ([]models.FeedbackChange, error)
	RollbackToVersion(ctx context.Context, feedbackID string, targetVersion int, rolledBackBy string) (*models.FeedbackHistory, error)
}

type feedbackService struct {
	store       store.Store
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewFeedbackService(s store.Store, notifSvc *notification.Service, broadcaster *socket.Broadcaster) FeedbackService {
	return &feedbackService{store: s, notifSvc: notifSvc, broadcaster: broadcaster}
}

// CreateFeedback seeds a history with version 1 and an empty change list.
func (s *feedbackService) CreateFeedback(ctx context.Context, projectID, createdBy string, content map[string]interface{}) (*models.FeedbackHistory, error) {
	if len(content) == 0 {
		return nil, ErrInvalidInput
	}

	snapshot, err := normalizeSnapshot(content)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	history := &models.FeedbackHistory{
		FeedbackID:     uuid.New().String(),
		ProjectID:      projectID,
		CurrentVersion: 1,
		Versions: []models.FeedbackVersion{{
			Version:   1,
			Snapshot:  snapshot,
			Changes:   []models.FeedbackChange{},
			UpdatedBy: createdBy,
			UpdatedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := store.PutJSON(ctx, s.store, store.FeedbackHistoryKey(history.FeedbackID), history); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, store.ProjectFeedbackKey(projectID, history.FeedbackID), []byte(history.FeedbackID)); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastFeedbackCreated(projectID, history.FeedbackID, createdBy)
	}
	return history, nil
}

func (s *feedbackService) GetHistory(ctx context.Context, feedbackID string) (*models.FeedbackHistory, error) {
	history := &models.FeedbackHistory{}
	err := store.GetJSON(ctx, s.store, store.FeedbackHistoryKey(feedbackID), history)
	if err == store.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s *feedbackService) ListByProject(ctx context.Context, projectID string) ([]*models.FeedbackHistory, error) {
	keys, err := s.store.ListKeysByPrefix(ctx, store.ProjectFeedbackPrefix(projectID))
	if err != nil {
		return nil, err
	}

	histories := make([]*models.FeedbackHistory, 0, len(keys))
	for _, key := range keys {
		id, err := s.store.Get(ctx, key)
		if err != nil {
			continue
		}
		h, err := s.GetHistory(ctx, string(id))
		if err != nil {
			continue
		}
		histories = append(histories, h)
	}
	return histories, nil
}

// UpdateFeedback diffs updates against the latest snapshot and appends a new
// version when at least one field actually changed. A nil update value
// removes the field. No-op updates leave the history untouched.
func (s *feedbackService) UpdateFeedback(ctx context.Context, feedbackID string, updates map[string]interface{}, updatedBy string) (*models.FeedbackHistory, error) {
	history, err := s.GetHistory(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeSnapshot(updates)
	if err != nil {
		return nil, err
	}

	latest := history.Versions[len(history.Versions)-1].Snapshot
	changes := diffUpdates(latest, normalized)
	if len(changes) == 0 {
		return history, nil
	}

	merged := copySnapshot(latest)
	for field, value := range normalized {
		if value == nil {
			delete(merged, field)
		} else {
			merged[field] = value
		}
	}

	now := time.Now()
	history.Versions = append(history.Versions, models.FeedbackVersion{
		Version:   history.CurrentVersion + 1,
		Snapshot:  merged,
		Changes:   changes,
		UpdatedBy: updatedBy,
		UpdatedAt: now,
	})
	history.CurrentVersion = len(history.Versions)
	history.UpdatedAt = now

	if err := store.PutJSON(ctx, s.store, store.FeedbackHistoryKey(feedbackID), history); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.SendFeedbackUpdated(ctx, history.ProjectID, feedbackID, updatedBy, len(changes))
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastFeedbackUpdated(history.ProjectID, feedbackID, history.CurrentVersion, updatedBy)
	}
	return history, nil
}

// CompareVersions diffs two arbitrary historical snapshots over the union of
// their fields.
func (s *feedbackService) CompareVersions(ctx context.Context, feedbackID string, v1, v2 int) ([]models.FeedbackChange, error) {
	history, err := s.GetHistory(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	from, ok := history.Version(v1)
	if !ok {
		return nil, ErrUnknownVersion
	}
	to, ok := history.Version(v2)
	if !ok {
		return nil, ErrUnknownVersion
	}

	return diffSnapshots(from.Snapshot, to.Snapshot), nil
}

// RollbackToVersion appends a new version whose snapshot equals the target's.
// History is never truncated; rolling back to an identical snapshot is a
// no-op.
func (s *feedbackService) RollbackToVersion(ctx context.Context, feedbackID string, targetVersion int, rolledBackBy string) (*models.FeedbackHistory, error) {
	history, err := s.GetHistory(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	targetEntry, ok := history.Version(targetVersion)
	if !ok {
		return nil, ErrUnknownVersion
	}
	target := targetEntry.Snapshot

	current := history.Versions[len(history.Versions)-1].Snapshot
	changes := diffSnapshots(current, target)
	if len(changes) == 0 {
		return history, nil
	}

	now := time.Now()
	history.Versions = append(history.Versions, models.FeedbackVersion{
		Version:   history.CurrentVersion + 1,
		Snapshot:  copySnapshot(target),
		Changes:   changes,
		UpdatedBy: rolledBackBy,
		UpdatedAt: now,
	})
	history.CurrentVersion = len(history.Versions)
	history.UpdatedAt = now

	if err := store.PutJSON(ctx, s.store, store.FeedbackHistoryKey(feedbackID), history); err != nil {
		return nil, err
	}
	return history, nil
}

// ============================================
// Diff helpers
// ============================================

// diffUpdates compares an update map against the latest snapshot. Only keys
// present in updates are considered; nil values request field removal.
func diffUpdates(snapshot, updates map[string]interface{}) []models.FeedbackChange {
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var changes []models.FeedbackChange
	for _, field := range fields {
		newValue := updates[field]
		oldValue, exists := snapshot[field]

		switch {
		case newValue == nil && !exists:
			// Removing an absent field changes nothing.
		case newValue == nil:
			changes = append(changes, models.FeedbackChange{
				Field:      field,
				OldValue:   oldValue,
				ChangeType: types.ChangeRemoved,
			})
		case !exists:
			changes = append(changes, models.FeedbackChange{
				Field:      field,
				NewValue:   newValue,
				ChangeType: types.ChangeAdded,
			})
		case !reflect.DeepEqual(oldValue, newValue):
			changes = append(changes, models.FeedbackChange{
				Field:      field,
				OldValue:   oldValue,
				NewValue:   newValue,
				ChangeType: types.ChangeModified,
			})
		}
	}
	return changes
}

// diffSnapshots compares two full snapshots over the union of their fields.
func diffSnapshots(from, to map[string]interface{}) []models.FeedbackChange {
	fieldSet := make(map[string]bool, len(from)+len(to))
	for field := range from {
		fieldSet[field] = true
	}
	for field := range to {
		fieldSet[field] = true
	}

	fields := make([]string, 0, len(fieldSet))
	for field := range fieldSet {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var changes []models.FeedbackChange
	for _, field := range fields {
		oldValue, inFrom := from[field]
		newValue, inTo := to[field]

		switch {
		case inFrom && !inTo:
			changes = append(changes, models.FeedbackChange{
				Field:      field,
				OldValue:   oldValue,
				ChangeType: types.ChangeRemoved,
			})
		case !inFrom && inTo:
			changes = append(changes, models.FeedbackChange{
				Field:      field,
				NewValue:   newValue,
				ChangeType: types.ChangeAdded,
			})
		case !reflect.DeepEqual(oldValue, newValue):
			changes = append(changes, models.FeedbackChange{
				Field:      field,
				OldValue:   oldValue,
				NewValue:   newValue,
				ChangeType: types.ChangeModified,
			})
		}
	}
	return changes
}

// ChangesSummary groups changes by type and renders a one-line human-readable
// summary.
func ChangesSummary(changes []models.FeedbackChange) string {
	if len(changes) == 0 {
		return "No changes"
	}

	grouped := make(map[string][]string)
	for _, c := range changes {
		grouped[c.ChangeType] = append(grouped[c.ChangeType], c.Field)
	}

	var parts []string
	for _, changeType := range []string{types.ChangeAdded, types.ChangeModified, types.ChangeRemoved} {
		fields, ok := grouped[changeType]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", changeType, strings.Join(fields, ", ")))
	}
	return strings.Join(parts, "; ")
}

// normalizeSnapshot round-trips a map through JSON so stored and freshly
// supplied values compare with the same types.
func normalizeSnapshot(m map[string]interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("invalid feedback content: %w", err)
	}
	out := make(map[string]interface{}, len(m))
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func copySnapshot(snapshot map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(snapshot))
	for field, value := range snapshot {
		out[field] = value
	}
	return out
}
