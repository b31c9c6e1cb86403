package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
	"github.com/pixelbrief/pixelbrief-backend/internal/workflow"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	services *service.Services
	notifSvc *notification.Service
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.Config, services *service.Services, notifSvc *notification.Service) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		cfg:      cfg,
		services: services,
		notifSvc: notifSvc,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 9 AM - Deadline reminders
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running deadline reminder check...")
		s.checkDeadlineReminders()
	})

	// Run every hour - Apply pending auto-progress transitions
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running auto-progress sweep...")
		s.sweepAutoProgress()
	})

	// Clean up old notifications - Run every Sunday at midnight
	s.cron.AddFunc("0 0 * * 0", func() {
		log.Println("[Cron] Running notification cleanup...")
		s.cleanupOldNotifications()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

// checkDeadlineReminders scans active projects for deadlines within 3 days
// and notifies the designer.
func (s *Scheduler) checkDeadlineReminders() {
	ctx := context.Background()

	projects, err := s.services.Project.List(ctx)
	if err != nil {
		log.Printf("[Cron] Error listing projects for deadline check: %v", err)
		return
	}

	now := time.Now()
	for _, project := range projects {
		if types.IsTerminalStatus(project.Status) {
			continue
		}

		deadlines := []struct {
			name string
			at   *time.Time
		}{
			{"Draft deadline", project.DraftDeadline},
			{"First review deadline", project.FirstReviewDeadline},
			{"Final deadline", project.FinalDeadline},
		}

		for _, d := range deadlines {
			if d.at == nil || d.at.Before(now) {
				continue
			}

			daysLeft := int(d.at.Sub(now).Hours() / 24)
			if daysLeft > 3 {
				continue
			}

			if err := s.notifSvc.SendDeadlineReminder(ctx, project.DesignerID, project, d.name, daysLeft); err != nil {
				log.Printf("[Cron] Error sending deadline reminder for project %s: %v", project.ID, err)
			} else {
				log.Printf("[Cron] Sent %s reminder for project %s (due in %d days)", d.name, project.ID, daysLeft)
			}
		}
	}
}

// sweepAutoProgress applies pending auto-progress transitions. Completed
// projects are only archived after the configured retention period.
func (s *Scheduler) sweepAutoProgress() {
	ctx := context.Background()

	projects, err := s.services.Project.List(ctx)
	if err != nil {
		log.Printf("[Cron] Error listing projects for auto-progress sweep: %v", err)
		return
	}

	advanced := 0
	for _, project := range projects {
		if workflow.AutoProgressTransition(project.Status) == nil {
			continue
		}
		if !s.readyToAdvance(project) {
			continue
		}

		result, err := s.services.Workflow.AutoAdvance(ctx, project.ID)
		if err != nil {
			// Validation rules may legitimately hold a project back.
			if _, ok := workflow.AsValidationError(err); ok {
				continue
			}
			log.Printf("[Cron] Error auto-advancing project %s: %v", project.ID, err)
			continue
		}

		advanced++
		log.Printf("[Cron] ⏩ Auto-advanced project %s: %s -> %s",
			project.ID, result.Transition.From, result.Transition.To)
	}

	if advanced > 0 {
		log.Printf("[Cron] Auto-progress sweep advanced %d projects", advanced)
	}
}

// readyToAdvance gates time-based auto-progress edges.
func (s *Scheduler) readyToAdvance(project *models.Project) bool {
	if project.Status != types.StatusCompleted {
		return true
	}
	age := time.Since(project.UpdatedAt)
	return age >= time.Duration(s.cfg.AutoArchiveAfterDays)*24*time.Hour
}

// cleanupOldNotifications deletes read notifications older than 30 days
func (s *Scheduler) cleanupOldNotifications() {
	ctx := context.Background()

	cutoff := time.Now().AddDate(0, 0, -30)
	deleted, err := s.notifSvc.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[Cron] Error cleaning up notifications: %v", err)
		return
	}
	log.Printf("[Cron] Cleaned up %d old notifications", deleted)
}
