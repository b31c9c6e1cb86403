// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"time"

	"github.com/pixelbrief/pixelbrief-backend/internal/api/middleware"
	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/models"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
	"github.com/pixelbrief/pixelbrief-backend/internal/types"
)

// Demo identities. Stable IDs so seeded tokens survive restarts.
const (
	ClientID   = "client-ava-demo"
	DesignerID = "designer-noah-demo"
)

// SeedData creates development data covering the main lifecycle stages.
// Everything goes through the services so all invariants hold.
func SeedData(cfg *config.Config, services *service.Services) {
	ctx := context.Background()

	// Check if data already exists
	existing, err := services.Project.List(ctx)
	if err == nil && len(existing) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating development data...")

	// ============================================
	// SCENARIO 1: Brand-new project, nothing submitted yet
	// ============================================
	deadline := time.Now().AddDate(0, 1, 0)
	fresh, err := services.Project.Create(ctx, &models.CreateProjectRequest{
		Name:                   "Aurora Coffee rebrand",
		ClientID:               ClientID,
		DesignerID:             DesignerID,
		FinalDeadline:          &deadline,
		TotalModificationCount: 3,
	})
	if err != nil {
		log.Printf("[Seed] Failed to create project: %v", err)
		return
	}
	log.Printf("[Seed] ✅ Project %q created (%s)", fresh.Name, fresh.Status)

	// ============================================
	// SCENARIO 2: Project in its feedback period with a draft,
	// feedback and one completed modification round
	// ============================================
	active, err := services.Project.Create(ctx, &models.CreateProjectRequest{
		Name:                   "Harbor & Pine packaging",
		ClientID:               ClientID,
		DesignerID:             DesignerID,
		TotalModificationCount: 2,
	})
	if err != nil {
		log.Printf("[Seed] Failed to create project: %v", err)
		return
	}

	title := "First draft"
	description := "Initial packaging concepts"
	version, err := services.Version.CreateVersion(ctx, active.ID, DesignerID, &models.CreateVersionRequest{
		Title:       &title,
		Description: &description,
		Files: []models.CreateVersionFileInput{
			{Name: "concepts-v1.pdf", URL: "https://files.pixelbrief.dev/demo/concepts-v1.pdf"},
			{Name: "moodboard.png", URL: "https://files.pixelbrief.dev/demo/moodboard.png"},
		},
	})
	if err != nil {
		log.Printf("[Seed] Failed to create version: %v", err)
		return
	}
	log.Printf("[Seed] ✅ Version %d published for %q", version.VersionNumber, active.Name)

	// Walk the project into its feedback period.
	steps := []struct {
		target string
		role   string
		actor  string
	}{
		{types.StatusReviewRequested, types.RoleDesigner, DesignerID},
		{types.StatusClientReviewPending, types.RoleDesigner, DesignerID},
		{types.StatusInProgress, types.RoleClient, ClientID},
		{types.StatusFeedbackPeriod, types.RoleDesigner, DesignerID},
	}
	for _, step := range steps {
		if _, err := services.Workflow.RequestTransition(ctx, active.ID, step.target, step.role, step.actor, nil); err != nil {
			log.Printf("[Seed] Transition to %s failed: %v", step.target, err)
			return
		}
	}
	log.Printf("[Seed] ✅ Project %q advanced to feedback_period", active.Name)

	feedback, err := services.Feedback.CreateFeedback(ctx, active.ID, ClientID, map[string]interface{}{
		"overall":  "Strong direction, the palette feels right",
		"logo":     "Try a heavier weight on the wordmark",
		"priority": "high",
	})
	if err != nil {
		log.Printf("[Seed] Failed to create feedback: %v", err)
		return
	}

	if _, err := services.Feedback.UpdateFeedback(ctx, feedback.FeedbackID, map[string]interface{}{
		"logo":     "Heavier wordmark approved, keep the icon as is",
		"priority": nil,
	}, ClientID); err != nil {
		log.Printf("[Seed] Failed to update feedback: %v", err)
	}

	request, err := services.Modification.Create(ctx, active.ID, ClientID, &models.CreateModificationRequest{
		Description: "Adjust wordmark weight across all packaging sizes",
		Urgency:     types.UrgencyHigh,
		FeedbackIDs: []string{feedback.FeedbackID},
	})
	if err != nil {
		log.Printf("[Seed] Failed to create modification request: %v", err)
		return
	}
	if _, err := services.Modification.Approve(ctx, request.ID, DesignerID); err == nil {
		if _, err := services.Modification.Complete(ctx, request.ID); err != nil {
			log.Printf("[Seed] Failed to complete modification: %v", err)
		}
	}
	log.Printf("[Seed] ✅ Modification round #%d completed for %q", request.RequestNumber, active.Name)

	// ============================================
	// Development tokens
	// ============================================
	clientToken, err := middleware.GenerateToken(cfg.JWTSecret, ClientID, types.RoleClient, cfg.JWTExpiry)
	if err == nil {
		log.Printf("[Seed] 🔑 Client token:   Bearer %s", clientToken)
	}
	designerToken, err := middleware.GenerateToken(cfg.JWTSecret, DesignerID, types.RoleDesigner, cfg.JWTExpiry)
	if err == nil {
		log.Printf("[Seed] 🔑 Designer token: Bearer %s", designerToken)
	}

	log.Println("[Seed] 🌱 Development data ready")
}
