package service

import (
	"context"
	"time"

	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
	"github.com/pixelbrief/pixelbrief-backend/internal/workflow"
)

// ============================================
// Workflow Controller Service
// ============================================

// TransitionOptions carries the optional payload of a transition request.
// Completion fields are only consumed when the target is
// completion_requested.
type TransitionOptions struct {
	CompletionNote    *string
	FinalDeliverables []string
}

// TransitionResult reports an applied transition.
type TransitionResult struct {
	Project    *models.Project
	Transition *workflow.Transition
}

type WorkflowService interface {
	RequestTransition(ctx context.Context, projectID, targetStatus, actingRole, actorID string, opts *TransitionOptions) (*TransitionResult, error)
	AutoAdvance(ctx context.Context, projectID string) (*TransitionResult, error)
	AvailableActions(ctx context.Context, projectID, role string) ([]workflow.Transition, error)
	Progress(ctx context.Context, projectID string, data *workflow.ProgressData) (*models.ProgressResponse, error)
}

type workflowService struct {
	store           store.Store
	locks           *projectLocks
	versionSvc      VersionService
	feedbackSvc     FeedbackService
	modificationSvc ModificationService
	notifSvc        *notification.Service
	broadcaster     *socket.Broadcaster
}

func NewWorkflowService(
	s store.Store,
	locks *projectLocks,
	versionSvc VersionService,
	feedbackSvc FeedbackService,
	modificationSvc ModificationService,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
) WorkflowService {
	return &workflowService{
		store:           s,
		locks:           locks,
		versionSvc:      versionSvc,
		feedbackSvc:     feedbackSvc,
		modificationSvc: modificationSvc,
		notifSvc:        notifSvc,
		broadcaster:     broadcaster,
	}
}

// RequestTransition applies a single lifecycle transition. The project is
// either moved to the target status with its side fields updated, or left
// completely untouched.
func (s *workflowService) RequestTransition(ctx context.Context, projectID, targetStatus, actingRole, actorID string, opts *TransitionOptions) (*TransitionResult, error) {
	unlock := s.locks.lock(projectID)
	defer unlock()

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := s.checkActor(project, actingRole, actorID); err != nil {
		return nil, err
	}

	vctx, err := s.buildValidationContext(ctx, project, opts)
	if err != nil {
		return nil, err
	}

	transition, err := workflow.Authorize(project.Status, targetStatus, actingRole, vctx)
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, project, transition, actorID, opts)
}

// AutoAdvance applies the auto-progress transition leaving the project's
// current status, if any. The role gate is skipped; validation rules still
// run. Returns ErrNotFound semantics via ErrInvalidTransition when no
// auto-progress edge exists.
func (s *workflowService) AutoAdvance(ctx context.Context, projectID string) (*TransitionResult, error) {
	unlock := s.locks.lock(projectID)
	defer unlock()

	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	transition := workflow.AutoProgressTransition(project.Status)
	if transition == nil {
		return nil, workflow.ErrInvalidTransition
	}

	vctx, err := s.buildValidationContext(ctx, project, nil)
	if err != nil {
		return nil, err
	}
	if failed := workflow.EvaluateRules(transition.ValidationRules, vctx); len(failed) > 0 {
		return nil, &workflow.ValidationError{FailedRules: failed}
	}

	return s.apply(ctx, project, transition, "", nil)
}

func (s *workflowService) AvailableActions(ctx context.Context, projectID, role string) ([]workflow.Transition, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return workflow.AvailableActions(project.Status, role), nil
}

func (s *workflowService) Progress(ctx context.Context, projectID string, data *workflow.ProgressData) (*models.ProgressResponse, error) {
	project, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = &workflow.ProgressData{}
	}
	data.FeedbackRounds = project.FeedbackRounds

	return &models.ProgressResponse{
		ProjectID: project.ID,
		Status:    project.Status,
		Progress:  workflow.CalculateProgress(project.Status, data),
	}, nil
}

// apply mutates the project for an authorized transition and persists it.
func (s *workflowService) apply(ctx context.Context, project *models.Project, transition *workflow.Transition, actorID string, opts *TransitionOptions) (*TransitionResult, error) {
	now := time.Now()
	fromStatus := project.Status
	project.Status = transition.To
	project.UpdatedAt = now

	switch transition.To {
	case types.StatusCompletionRequested:
		project.CompletionRequestedAt = &now
		if opts != nil {
			project.CompletionNote = opts.CompletionNote
			if len(opts.FinalDeliverables) > 0 {
				project.FinalDeliverables = opts.FinalDeliverables
			}
		}
	case types.StatusFeedbackPeriod:
		if fromStatus == types.StatusCompletionRequested {
			// Declined completion: the request is withdrawn.
			project.CompletionRequestedAt = nil
			project.CompletionNote = nil
			project.FinalDeliverables = nil
		} else {
			project.FeedbackRounds++
		}
	}

	if err := store.PutJSON(ctx, s.store, store.ProjectKey(project.ID), project); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.SendStatusChanged(ctx, project, fromStatus, actorID)
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectStatusChanged(project.ID, fromStatus, project.Status, actorID)
	}

	return &TransitionResult{Project: project, Transition: transition}, nil
}

// buildValidationContext derives the rule inputs from the ledgers instead of
// trusting the caller.
func (s *workflowService) buildValidationContext(ctx context.Context, project *models.Project, opts *TransitionOptions) (workflow.ValidationContext, error) {
	vctx := workflow.ValidationContext{}

	current, err := s.versionSvc.GetCurrentVersion(ctx, project.ID)
	if err != nil && err != ErrNotFound {
		return vctx, err
	}
	vctx.HasDraftFiles = current != nil && len(current.Files) > 0

	histories, err := s.feedbackSvc.ListByProject(ctx, project.ID)
	if err != nil {
		return vctx, err
	}
	vctx.HasFeedback = len(histories) > 0

	summary, err := s.modificationSvc.Quota(ctx, project.ID)
	if err != nil {
		return vctx, err
	}
	vctx.RemainingModifications = summary.Remaining

	vctx.HasFinalDeliverables = len(project.FinalDeliverables) > 0
	if opts != nil && len(opts.FinalDeliverables) > 0 {
		vctx.HasFinalDeliverables = true
	}

	return vctx, nil
}

// checkActor binds the acting role to the project's own client or designer.
func (s *workflowService) checkActor(project *models.Project, actingRole, actorID string) error {
	if actorID == "" {
		return nil
	}
	switch actingRole {
	case types.RoleClient:
		if project.ClientID != actorID {
			return ErrForbidden
		}
	case types.RoleDesigner:
		if project.DesignerID != actorID {
			return ErrForbidden
		}
	default:
		return ErrForbidden
	}
	return nil
}

func (s *workflowService) loadProject(ctx context.Context, projectID string) (*models.Project, error) {
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
