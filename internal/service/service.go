package service

import (
	"errors"

	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
)

var (
	ErrNotFound                 = errors.New("resource not found")
	ErrForbidden                = errors.New("forbidden")
	ErrInvalidInput             = errors.New("invalid input")
	ErrEmptyFileSet             = errors.New("a design version requires at least one file")
	ErrInvalidModificationState = errors.New("modification request is not in a state that allows this operation")
	ErrProjectNotModifiable     = errors.New("project status does not allow modification requests")
	ErrUnknownVersion           = errors.New("feedback history has no such version")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Project      ProjectService
	Workflow     WorkflowService
	Version      VersionService
	Feedback     FeedbackService
	Modification ModificationService
	Notification *notification.Service
	Broadcaster  *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Store       store.Store
	NotifSvc    *notification.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	locks := newProjectLocks()

	versionService := NewVersionService(deps.Store, deps.NotifSvc, deps.Broadcaster)
	feedbackService := NewFeedbackService(deps.Store, deps.NotifSvc, deps.Broadcaster)
	modificationService := NewModificationService(deps.Config, deps.Store, locks, deps.NotifSvc, deps.Broadcaster)
	projectService := NewProjectService(deps.Store, deps.Broadcaster)

	workflowService := NewWorkflowService(
		deps.Store,
		locks,
		versionService,
		feedbackService,
		modificationService,
		deps.NotifSvc,
		deps.Broadcaster,
	)

	return &Services{
		Project:      projectService,
		Workflow:     workflowService,
		Version:      versionService,
		Feedback:     feedbackService,
		Modification: modificationService,
		Notification: deps.NotifSvc,
		Broadcaster:  deps.Broadcaster,
	}
}
