package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// ============================================
// Project Service
// ============================================

type ProjectService interface {
	Create(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	ListForUser(ctx context.Context, userID, role string) ([]*models.Project, error)
}

type projectService struct {
	store       store.Store
	broadcaster *socket.Broadcaster
}

func NewProjectService(s store.Store, broadcaster *socket.Broadcaster) ProjectService {
	return &projectService{store: s, broadcaster: broadcaster}
}

func (s *projectService) Create(ctx context.Context, req *models.CreateProjectRequest) (*models.Project, error) {
	if strings.TrimSpace(req.Name) == "" || req.ClientID == "" || req.DesignerID == "" {
		return nil, ErrInvalidInput
	}
	if req.TotalModificationCount < 0 {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	project := &models.Project{
		ID:                         uuid.New().String(),
		ClientID:                   req.ClientID,
		DesignerID:                 req.DesignerID,
		Name:                       req.Name,
		Status:                     types.StatusCreationPending,
		StartDate:                  req.StartDate,
		DraftDeadline:              req.DraftDeadline,
		FirstReviewDeadline:        req.FirstReviewDeadline,
		FinalDeadline:              req.FinalDeadline,
		TotalModificationCount:     req.TotalModificationCount,
		RemainingModificationCount: req.TotalModificationCount,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}

	if err := store.PutJSON(ctx, s.store, store.ProjectKey(project.ID), project); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectCreated(project.ID, project.ClientID, project.DesignerID, project.Name)
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	project := &models.Project{}
	err := store.GetJSON(ctx, s.store, store.ProjectKey(id), project)
	if err == store.ErrKeyNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]*models.Project, error) {
	keys, err := s.store.ListKeysByPrefix(ctx, store.ProjectPrefix)
	if err != nil {
		return nil, err
	}

	projects := make([]*models.Project, 0, len(keys))
	for _, key := range keys {
		p := &models.Project{}
		if err := store.GetJSON(ctx, s.store, key, p); err != nil {
			if err == store.ErrKeyNotFound {
				continue
			}
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *projectService) ListForUser(ctx context.Context, userID, role string) ([]*models.Project, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	projects := make([]*models.Project, 0, len(all))
	for _, p := range all {
		switch role {
		case types.RoleClient:
			if p.ClientID == userID {
				projects = append(projects, p)
			}
		case types.RoleDesigner:
			if p.DesignerID == userID {
				projects = append(projects, p)
			}
		}
	}
	return projects, nil
}
