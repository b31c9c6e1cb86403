package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
)

// ============================================
// Version Ledger Service
// ============================================

type VersionService interface {
	CreateVersion(ctx context.Context, projectID, createdBy string, req *models.CreateVersionRequest) (*models.DesignVersion, error)
	GetByID(ctx context.Context, versionID string) (*models.DesignVersion, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.DesignVersion, error)
	ApproveVersion(ctx context.Context, versionID, approvedBy string) (*models.DesignVersion, error)
	SetCurrentVersion(ctx context.Context, versionID string) (*models.DesignVersion, error)
	DeleteVersion(ctx context.Context, versionID string) (bool, error)
	GetCurrentVersion(ctx context.Context, projectID string) (*models.DesignVersion, error)
}

type versionService struct {
	store       store.Store
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewVersionService(s store.Store, notifSvc *notification.Service, broadcaster *socket.Broadcaster) VersionService {
	return &versionService{store: s, notifSvc: notifSvc, broadcaster: broadcaster}
}

// CreateVersion appends a new version numbered max(existing)+1, makes it the
// sole current version and marks the first file as primary.
func (s *versionService) CreateVersion(ctx context.Context, projectID, createdBy string, req *models.CreateVersionRequest) (*models.DesignVersion, error) {
	if len(req.Files) == 0 {
		return nil, ErrEmptyFileSet
	}

	existing, err := s.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	nextNumber := 1
	for _, v := range existing {
		if v.VersionNumber >= nextNumber {
			nextNumber = v.VersionNumber + 1
		}
	}

	now := time.Now()
	version := &models.DesignVersion{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		VersionNumber: nextNumber,
		Title:         req.Title,
		Description:   req.Description,
		IsCurrent:     true,
		CreatedBy:     createdBy,
		CreatedAt:     now,
	}
	for i, f := range req.Files {
		version.Files = append(version.Files, models.DesignFile{
			ID:        uuid.New().String(),
			Name:      f.Name,
			URL:       f.URL,
			SizeBytes: f.SizeBytes,
			MimeType:  f.MimeType,
			IsPrimary: i == 0,
			CreatedAt: now,
		})
	}

	// Demote the previous current version before publishing the new one.
	for _, v := range existing {
		if v.IsCurrent {
			v.IsCurrent = false
			if err := store.PutJSON(ctx, s.store, store.VersionKey(projectID, v.ID), v); err != nil {
				return nil, err
			}
		}
	}

	if err := store.PutJSON(ctx, s.store, store.VersionKey(projectID, version.ID), version); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, store.VersionIndexKey(version.ID), []byte(projectID)); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastVersionCreated(projectID, version.ID, version.VersionNumber, createdBy)
	}
	return version, nil
}

func (s *versionService) GetByID(ctx context.Context, versionID string) (*models.DesignVersion, error) {
	projectID, err := s.resolveProject(ctx, versionID)
	if err != nil {
		return nil, err
	}

	version := &models.DesignVersion{}
	err = store.GetJSON(ctx, s.store, store.VersionKey(projectID, versionID), version)
	if err == store.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return version, nil
}

func (s *versionService) ListByProject(ctx context.Context, projectID string) ([]*models.DesignVersion, error) {
	keys, err := s.store.ListKeysByPrefix(ctx, store.VersionPrefix(projectID))
	if err != nil {
		return nil, err
	}

	versions := make([]*models.DesignVersion, 0, len(keys))
	for _, key := range keys {
		v := &models.DesignVersion{}
		if err := store.GetJSON(ctx, s.store, key, v); err != nil {
			if err == store.ErrKeyNotFound {
				continue
			}
			return nil, err
		}
		versions = append(versions, v)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].VersionNumber < versions[j].VersionNumber
	})
	return versions, nil
}

// ApproveVersion marks a version approved. Approval is monotonic: approving
// an already-approved version returns it unchanged.
func (s *versionService) ApproveVersion(ctx context.Context, versionID, approvedBy string) (*models.DesignVersion, error) {
	version, err := s.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}

	if version.IsApproved {
		return version, nil
	}

	now := time.Now()
	version.IsApproved = true
	version.ApprovedBy = &approvedBy
	version.ApprovedAt = &now

	if err := store.PutJSON(ctx, s.store, store.VersionKey(version.ProjectID, version.ID), version); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.SendVersionApproved(ctx, version.ProjectID, version.VersionNumber, approvedBy)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastVersionApproved(version.ProjectID, version.ID, version.VersionNumber, approvedBy)
	}
	return version, nil
}

// SetCurrentVersion moves the current pointer to versionID. It creates no new
// version; applying it twice in a row is a no-op the second time.
func (s *versionService) SetCurrentVersion(ctx context.Context, versionID string) (*models.DesignVersion, error) {
	target, err := s.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}

	versions, err := s.ListByProject(ctx, target.ProjectID)
	if err != nil {
		return nil, err
	}

	moved := false
	for _, v := range versions {
		shouldBeCurrent := v.ID == target.ID
		if v.IsCurrent == shouldBeCurrent {
			continue
		}
		v.IsCurrent = shouldBeCurrent
		if err := store.PutJSON(ctx, s.store, store.VersionKey(v.ProjectID, v.ID), v); err != nil {
			return nil, err
		}
		if v.ID == target.ID {
			target = v
			moved = true
		}
	}

	target.IsCurrent = true
	if moved && s.broadcaster != nil {
		s.broadcaster.BroadcastVersionRestored(target.ProjectID, target.ID, target.VersionNumber)
	}
	return target, nil
}

// DeleteVersion removes a version. When the current version is deleted, the
// highest-numbered remaining version becomes current. Returns false when the
// version does not exist.
func (s *versionService) DeleteVersion(ctx context.Context, versionID string) (bool, error) {
	version, err := s.GetByID(ctx, versionID)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.store.Delete(ctx, store.VersionKey(version.ProjectID, version.ID)); err != nil {
		return false, err
	}
	if err := s.store.Delete(ctx, store.VersionIndexKey(version.ID)); err != nil {
		return false, err
	}

	if version.IsCurrent {
		remaining, err := s.ListByProject(ctx, version.ProjectID)
		if err != nil {
			return false, err
		}
		if len(remaining) > 0 {
			latest := remaining[len(remaining)-1]
			latest.IsCurrent = true
			if err := store.PutJSON(ctx, s.store, store.VersionKey(latest.ProjectID, latest.ID), latest); err != nil {
				return false, err
			}
		}
	}

	return true, nil
}

// GetCurrentVersion returns the version flagged current. If no version
// carries the flag the highest-numbered version is returned as a fallback.
func (s *versionService) GetCurrentVersion(ctx context.Context, projectID string) (*models.DesignVersion, error) {
	versions, err := s.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, ErrNotFound
	}

	for _, v := range versions {
		if v.IsCurrent {
			return v, nil
		}
	}
	return versions[len(versions)-1], nil
}

func (s *versionService) resolveProject(ctx context.Context, versionID string) (string, error) {
	projectID, err := s.store.Get(ctx, store.VersionIndexKey(versionID))
	if err == store.ErrKeyNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(projectID), nil
}
