package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/quota"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// ============================================
// Modification Request Service
// ============================================

type ModificationService interface {
	Create(ctx context.Context, projectID, requestedBy string, req *models.CreateModificationRequest) (*models.ModificationRequest, error)
	GetByID(ctx context.Context, requestID string) (*models.ModificationRequest, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.ModificationRequest, error)
	Approve(ctx context.Context, requestID, approvedBy string) (*models.ModificationRequest, error)
	Reject(ctx context.Context, requestID, rejectedBy, reason string) (*models.ModificationRequest, error)
	Start(ctx context.Context, requestID string) (*models.ModificationRequest, error)
	Complete(ctx context.Context, requestID string) (*models.ModificationRequest, error)
	Quota(ctx context.Context, projectID string) (*quota.Summary, error)
}

type modificationService struct {
	cfg         *config.Config
	store       store.Store
	locks       *projectLocks
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewModificationService(cfg *config.Config, s store.Store, locks *projectLocks, notifSvc *notification.Service, broadcaster *socket.Broadcaster) ModificationService {
	return &modificationService{
		cfg:         cfg,
		store:       s,
		locks:       locks,
		notifSvc:    notifSvc,
		broadcaster: broadcaster,
	}
}

// Create registers a new modification request. The project must be in its
// feedback or modification phase. A request raised after the free quota is
// spent is flagged as additional cost at creation time.
func (s *modificationService) Create(ctx context.Context, projectID, requestedBy string, req *models.CreateModificationRequest) (*models.ModificationRequest, error) {
	unlock := s.locks.lock(projectID)
	defer unlock()

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != types.StatusFeedbackPeriod && project.Status != types.StatusModificationInProgress {
		return nil, ErrProjectNotModifiable
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = types.UrgencyNormal
	}
	if !types.IsValidUrgency(urgency) {
		return nil, ErrInvalidInput
	}

	existing, err := s.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	nextNumber := 1
	for _, r := range existing {
		if r.RequestNumber >= nextNumber {
			nextNumber = r.RequestNumber + 1
		}
	}

	summary := quota.Compute(project.TotalModificationCount, s.cfg.AdditionalModificationFee, existing)

	request := &models.ModificationRequest{
		ID:               uuid.New().String(),
		ProjectID:        projectID,
		RequestNumber:    nextNumber,
		Description:      req.Description,
		Status:           types.ModificationPending,
		Urgency:          urgency,
		IsAdditionalCost: summary.IsLimitExceeded,
		FeedbackIDs:      req.FeedbackIDs,
		RequestedBy:      requestedBy,
		RequestedAt:      time.Now(),
	}

	if err := s.save(ctx, request); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.SendModificationRequested(ctx, project, request)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastModificationUpdated(projectID, request.ID, request.Status, requestedBy)
	}
	return request, nil
}

func (s *modificationService) GetByID(ctx context.Context, requestID string) (*models.ModificationRequest, error) {
	projectID, err := s.store.Get(ctx, store.ModificationIndexKey(requestID))
	if err == store.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	request := &models.ModificationRequest{}
	err = store.GetJSON(ctx, s.store, store.ModificationKey(string(projectID), requestID), request)
	if err == store.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *modificationService) ListByProject(ctx context.Context, projectID string) ([]*models.ModificationRequest, error) {
	keys, err := s.store.ListKeysByPrefix(ctx, store.ModificationPrefix(projectID))
	if err != nil {
		return nil, err
	}

	requests := make([]*models.ModificationRequest, 0, len(keys))
	for _, key := range keys {
		r := &models.ModificationRequest{}
		if err := store.GetJSON(ctx, s.store, key, r); err != nil {
			if err == store.ErrKeyNotFound {
				continue
			}
			return nil, err
		}
		requests = append(requests, r)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestNumber < requests[j].RequestNumber
	})
	return requests, nil
}

func (s *modificationService) Approve(ctx context.Context, requestID, approvedBy string) (*models.ModificationRequest, error) {
	return s.advance(ctx, requestID, func(r *models.ModificationRequest) error {
		if r.Status != types.ModificationPending {
			return ErrInvalidModificationState
		}
		now := time.Now()
		r.Status = types.ModificationApproved
		r.ApprovedAt = &now
		return nil
	})
}

func (s *modificationService) Reject(ctx context.Context, requestID, rejectedBy, reason string) (*models.ModificationRequest, error) {
	if reason == "" {
		return nil, ErrInvalidInput
	}
	return s.advance(ctx, requestID, func(r *models.ModificationRequest) error {
		if r.Status != types.ModificationPending {
			return ErrInvalidModificationState
		}
		r.Status = types.ModificationRejected
		r.RejectionReason = &reason
		return nil
	})
}

func (s *modificationService) Start(ctx context.Context, requestID string) (*models.ModificationRequest, error) {
	return s.advance(ctx, requestID, func(r *models.ModificationRequest) error {
		if r.Status != types.ModificationApproved {
			return ErrInvalidModificationState
		}
		r.Status = types.ModificationInProgress
		return nil
	})
}

// Complete finishes a request. This is the only operation that decrements the
// project's remaining modification count; a completion past the free quota is
// marked additional cost instead.
func (s *modificationService) Complete(ctx context.Context, requestID string) (*models.ModificationRequest, error) {
	request, err := s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(request.ProjectID)
	defer unlock()

	// Re-read under the lock.
	request, err = s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != types.ModificationApproved && request.Status != types.ModificationInProgress {
		return nil, ErrInvalidModificationState
	}

	project, err := s.loadProject(ctx, request.ProjectID)
	if err != nil {
		return nil, err
	}

	all, err := s.ListByProject(ctx, request.ProjectID)
	if err != nil {
		return nil, err
	}
	completedBefore := 0
	for _, r := range all {
		if r.ID != request.ID && r.Status == types.ModificationCompleted {
			completedBefore++
		}
	}

	now := time.Now()
	request.Status = types.ModificationCompleted
	request.CompletedAt = &now
	request.IsAdditionalCost = completedBefore >= project.TotalModificationCount

	if err := s.save(ctx, request); err != nil {
		return nil, err
	}

	if project.RemainingModificationCount > 0 {
		project.RemainingModificationCount--
		project.UpdatedAt = now
		if err := store.PutJSON(ctx, s.store, store.ProjectKey(project.ID), project); err != nil {
			return nil, err
		}
	}

	if s.notifSvc != nil {
		s.notifSvc.SendModificationCompleted(ctx, project, request)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastModificationUpdated(project.ID, request.ID, request.Status, project.DesignerID)
	}
	return request, nil
}

func (s *modificationService) Quota(ctx context.Context, projectID string) (*quota.Summary, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	requests, err := s.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary := quota.Compute(project.TotalModificationCount, s.cfg.AdditionalModificationFee, requests)
	return &summary, nil
}

func (s *modificationService) advance(ctx context.Context, requestID string, mutate func(*models.ModificationRequest) error) (*models.ModificationRequest, error) {
	request, err := s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(request.ProjectID)
	defer unlock()

	request, err = s.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := mutate(request); err != nil {
		return nil, err
	}
	if err := s.save(ctx, request); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastModificationUpdated(request.ProjectID, request.ID, request.Status, "")
	}
	return request, nil
}

func (s *modificationService) save(ctx context.Context, request *models.ModificationRequest) error {
	if err := store.PutJSON(ctx, s.store, store.ModificationKey(request.ProjectID, request.ID), request); err != nil {
		return err
	}
	return s.store.Put(ctx, store.ModificationIndexKey(request.ID), []byte(request.ProjectID))
}

func (s *modificationService) loadProject(ctx context.Context, projectID string) (*models.Project, error) {
	project := &models.Project{}
	err := store.GetJSON(ctx, s.store, store.ProjectKey(projectID), project)
	if err == store.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}
