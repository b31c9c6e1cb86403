// main.go
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pixelbrief/pixelbrief-backend/internal/api/handlers"
	"github.com/pixelbrief/pixelbrief-backend/internal/api/middleware"
	"github.com/pixelbrief/pixelbrief-backend/internal/config"
	"github.com/pixelbrief/pixelbrief-backend/internal/cron"
	"github.com/pixelbrief/pixelbrief-backend/internal/notification"
	"github.com/pixelbrief/pixelbrief-backend/internal/seed"
	"github.com/pixelbrief/pixelbrief-backend/internal/service"
	"github.com/pixelbrief/pixelbrief-backend/internal/socket"
	"github.com/pixelbrief/pixelbrief-backend/internal/store"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Initialize Revision Store
	// ============================================
	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	defer st.Close()
	log.Printf("✅ Revision store ready (backend: %s)", cfg.StoreBackend)

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)

	// WebSocket handler with JWT secret for self-authentication
	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Initialize Notification Service
	// ============================================
	notificationSvc := notification.NewService(st)
	notificationSvc.SetBroadcaster(broadcaster)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Store:       st,
		NotifSvc:    notificationSvc,
		Broadcaster: broadcaster,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		seed.SeedData(cfg, services)
	}

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(cfg, services, notificationSvc)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.Default()
	r.Use(middleware.RequestLogger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"store":      cfg.StoreBackend,
			"websocket":  "active",
			"ws_clients": hub.GetConnectedClientsCount(),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// WebSocket route (self-authenticating via token query param)
		api.GET("/ws", wsHandler.HandleWebSocket)

		// Status catalogue is public presentation metadata
		api.GET("/statuses", h.Workflow.StatusCatalogue)
		api.GET("/statuses/:status", h.Workflow.StatusDisplay)

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			// Project routes
			projects := protected.Group("/projects")
			{
				projects.GET("", h.Project.List)
				projects.POST("", h.Project.Create)
				projects.GET("/:id", h.Project.Get)

				// Workflow
				projects.POST("/:id/transition", h.Workflow.Transition)
				projects.GET("/:id/actions", h.Workflow.Actions)
				projects.GET("/:id/progress", h.Workflow.Progress)

				// Design versions
				projects.GET("/:id/versions", h.Version.List)
				projects.POST("/:id/versions", h.Version.Create)
				projects.GET("/:id/versions/current", h.Version.Current)

				// Feedback
				projects.GET("/:id/feedback", h.Feedback.List)
				projects.POST("/:id/feedback", h.Feedback.Create)

				// Modification requests
				projects.GET("/:id/modifications", h.Modification.List)
				projects.POST("/:id/modifications", h.Modification.Create)
				projects.GET("/:id/quota", h.Modification.Quota)
			}

			// Version routes
			versions := protected.Group("/versions")
			{
				versions.GET("/:id", h.Version.Get)
				versions.POST("/:id/approve", h.Version.Approve)
				versions.POST("/:id/restore", h.Version.Restore)
				versions.DELETE("/:id", h.Version.Delete)
			}

			// Feedback routes
			feedback := protected.Group("/feedback")
			{
				feedback.GET("/:id/history", h.Feedback.History)
				feedback.PUT("/:id", h.Feedback.Update)
				feedback.GET("/:id/compare", h.Feedback.Compare)
				feedback.POST("/:id/rollback", h.Feedback.Rollback)
			}

			// Modification routes
			modifications := protected.Group("/modifications")
			{
				modifications.GET("/:id", h.Modification.Get)
				modifications.POST("/:id/approve", h.Modification.Approve)
				modifications.POST("/:id/reject", h.Modification.Reject)
				modifications.POST("/:id/start", h.Modification.Start)
				modifications.POST("/:id/complete", h.Modification.Complete)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/count", h.Notification.Count)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("/:id", h.Notification.Delete)
			}
		}
	}

	// ============================================
	// Start Server
	// ============================================
	log.Printf("🚀 PixelBrief API starting on port %s (env: %s)", cfg.Port, cfg.Environment)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

// openStore picks the revision store backend from configuration. Postgres
// runs its migrations before the pool is handed out.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return store.NewRedisStore(cfg.RedisURL, "pixelbrief")

	case "postgres":
		log.Println("🔄 Running database migrations...")
		if err := store.RunMigrations(cfg.DatabaseURL, "./internal/store/migrations"); err != nil {
			return nil, err
		}
		log.Println("✅ Database migrations completed")
		return store.NewPostgresStore(cfg.DatabaseURL)

	default:
		return store.NewMemoryStore(), nil
	}
}
