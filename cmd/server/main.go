package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/KhairnarLokesh/hackmate-ai/internal/config"
	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/database"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/handlers"
	"github.com/KhairnarLokesh/hackmate-ai/internal/identity"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/realtime"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to the accounts database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Open the document store
	store, err := docstore.Open(cfg.RedisAddr())
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	sessionStore, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		cfg.RedisAddr(),           // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Initialize services
	activityService := services.NewActivityService(store)
	milestoneService := services.NewMilestoneService(store)
	projectService := services.NewProjectService(store, milestoneService, activityService)
	taskService := services.NewTaskService(store, activityService)
	chatService := services.NewChatService(store)
	memberService := services.NewMemberService(store)
	scheduleService := services.NewScheduleService(store)
	resourceService := services.NewResourceService(store, activityService)
	notificationService := services.NewNotificationService(store)

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	provider := identity.NewProvider(database.GetDB(), store, nil)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(provider)
	projectHandler := handlers.NewProjectHandler(projectService, memberService)
	taskHandler := handlers.NewTaskHandler(taskService, aiService)
	chatHandler := handlers.NewChatHandler(chatService, provider, aiService)
	workspaceHandler := handlers.NewWorkspaceHandler(milestoneService, scheduleService, resourceService, notificationService)
	aiHandler := handlers.NewAIHandler(projectService, aiService)
	streamHandler := handlers.NewStreamHandler(realtime.Services{
		Projects:      projectService,
		Tasks:         taskService,
		Chat:          chatService,
		Members:       memberService,
		Milestones:    milestoneService,
		Resources:     resourceService,
		Activities:    activityService,
		Notifications: notificationService,
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "HackMate API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleLogin)
			auth.POST("/guest", authHandler.GuestLogin)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PATCH("/profile", middleware.RequireAuth(), authHandler.UpdateProfile)
			auth.PUT("/skills", middleware.RequireAuth(), authHandler.UpdateSkills)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.POST("/join", projectHandler.JoinProject)

			project := projects.Group("/:id")
			project.Use(middleware.RequireProjectAccess(projectService))
			{
				project.GET("", projectHandler.GetProject)
				project.DELETE("", projectHandler.DeleteProject)
				project.PATCH("/status", projectHandler.UpdateStatus)
				project.PATCH("/urls", projectHandler.UpdateURLs)
				project.DELETE("/members/:user_id", projectHandler.RemoveMember)

				// Sub-resource routes check the document belongs to
				// this project before the handler runs.
				taskAccess := middleware.RequireResourceAccess("task_id", taskService)
				project.POST("/tasks", taskHandler.CreateTask)
				project.POST("/tasks/generate", taskHandler.GenerateTasks)
				project.PATCH("/tasks/:task_id", taskAccess, taskHandler.UpdateTask)
				project.PATCH("/tasks/:task_id/status", taskAccess, taskHandler.UpdateTaskStatus)
				project.POST("/tasks/:task_id/assign", taskAccess, taskHandler.AssignTask)
				project.DELETE("/tasks/:task_id", taskAccess, taskHandler.DeleteTask)

				project.POST("/messages", chatHandler.SendMessage)
				project.POST("/assistant", chatHandler.AskAssistant)

				project.PATCH("/milestones/:milestone_id",
					middleware.RequireResourceAccess("milestone_id", milestoneService),
					workspaceHandler.UpdateMilestoneStatus)

				eventAccess := middleware.RequireResourceAccess("event_id", scheduleService)
				project.POST("/events", workspaceHandler.CreateEvent)
				project.POST("/events/:event_id/complete", eventAccess, workspaceHandler.CompleteEvent)
				project.DELETE("/events/:event_id", eventAccess, workspaceHandler.DeleteEvent)
				project.GET("/wellness", workspaceHandler.GetWellnessSettings)
				project.PUT("/wellness", workspaceHandler.UpsertWellnessSettings)

				project.POST("/resources", workspaceHandler.AddResource)
				project.DELETE("/resources/:resource_id",
					middleware.RequireResourceAccess("resource_id", resourceService),
					workspaceHandler.DeleteResource)

				project.POST("/notifications/:notification_id/read",
					middleware.RequireResourceAccess("notification_id", notificationService),
					workspaceHandler.MarkNotificationRead)

				project.POST("/ai", aiHandler.Invoke)
				project.GET("/ai/document", aiHandler.ExportDocument)

				project.GET("/stream", streamHandler.Stream)
			}
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
