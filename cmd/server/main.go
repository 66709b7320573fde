package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/homechores/chores-api/internal/config"
	"github.com/homechores/chores-api/internal/constants"
	"github.com/homechores/chores-api/internal/database"
	"github.com/homechores/chores-api/internal/handlers"
	"github.com/homechores/chores-api/internal/middleware"
	"github.com/homechores/chores-api/internal/services"
	"github.com/homechores/chores-api/internal/store"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The record store over the Items and Completions tables
	recordStore := store.NewGormStore(database.GetDB())

	// Initialize services
	taskService := services.NewTaskService(recordStore, cfg.Roster)
	completionService := services.NewCompletionService(recordStore)

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService, completionService)
	sessionHandler := handlers.NewSessionHandler(cfg.Roster)
	metaHandler := handlers.NewMetaHandler(cfg.Roster)

	// Initialize Gin router
	r := gin.Default()

	// Setup cookie session middleware for the active household member
	cookieStore := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, cookieStore))
	r.Use(middleware.ActiveMember())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Household Chores API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.GET("/meta", metaHandler.GetMeta)

		session := api.Group("/session")
		{
			session.POST("", sessionHandler.SetMember)
			session.GET("", sessionHandler.GetMember)
			session.DELETE("", sessionHandler.ClearMember)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/complete", taskHandler.CompleteTask)
			tasks.GET("/:id/completions", taskHandler.ListCompletions)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
