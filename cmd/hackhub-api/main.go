package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hackhub/hackhub-api/internal/ai"
	"github.com/hackhub/hackhub-api/internal/config"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/handlers"
	"github.com/hackhub/hackhub-api/internal/hub"
	authmw "github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/hackhub/hackhub-api/internal/rbac"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	teamService := services.NewTeamService(db)
	projectService := services.NewProjectService(db)
	memberService := services.NewMemberService(db)
	taskService := services.NewTaskService(db)
	snippetService := services.NewSnippetService(db)
	decisionService := services.NewDecisionService(db)
	chatService := services.NewChatService(db)
	emailService := services.NewEmailService(cfg.SMTP)
	aiClient := ai.NewClient(cfg.Gemini)

	guard := rbac.NewGuard(memberService)

	eventHub := hub.NewHub()
	go eventHub.Run()

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, userService)
	projectHandler := handlers.NewProjectHandler(projectService, teamService)
	memberHandler := handlers.NewMemberHandler(memberService, projectService, userService, emailService, eventHub)
	taskHandler := handlers.NewTaskHandler(taskService, eventHub)
	snippetHandler := handlers.NewSnippetHandler(snippetService, aiClient, eventHub)
	decisionHandler := handlers.NewDecisionHandler(decisionService, eventHub)
	chatHandler := handlers.NewChatHandler(chatService, projectService, eventHub)
	aiHandler := handlers.NewAIHandler(aiClient, projectService, taskService)
	sseHandler := handlers.NewSSEHandler(eventHub)
	wsHandler := handlers.NewWebSocketHandler(eventHub, guard, chatService, projectService, userService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-Project-Id"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	if cfg.DevAuth {
		auth.Post("/dev-login", authHandler.DevLogin)
	}

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Get("/teams/:id/members", teamHandler.GetMembers)
	protected.Post("/teams/:id/members", teamHandler.AddMember)
	protected.Delete("/teams/:id/members/:memberId", teamHandler.RemoveMember)

	protected.Get("/teams/:id/projects", projectHandler.List)
	protected.Post("/teams/:id/projects", projectHandler.Create)

	// Project routes are split by minimum role. The guard resolves the
	// acting user and project from the request and rejects with the
	// appropriate status before the handler runs.
	viewer := api.Group("/projects")
	viewer.Use(authmw.Auth(jwtService))
	viewer.Use(authmw.RequireProjectRole(guard, rbac.RoleViewer))

	editor := api.Group("/projects")
	editor.Use(authmw.Auth(jwtService))
	editor.Use(authmw.RequireProjectRole(guard, rbac.RoleEditor))

	owner := api.Group("/projects")
	owner.Use(authmw.Auth(jwtService))
	owner.Use(authmw.RequireProjectRole(guard, rbac.RoleOwner))

	viewer.Get("/:projectId", projectHandler.Get)
	editor.Patch("/:projectId", projectHandler.Update)
	owner.Delete("/:projectId", projectHandler.Delete)

	viewer.Get("/:projectId/members", memberHandler.List)
	owner.Post("/:projectId/members", memberHandler.Invite)
	owner.Patch("/:projectId/members/:userId", memberHandler.UpdateRole)
	owner.Delete("/:projectId/members/:userId", memberHandler.Remove)

	viewer.Get("/:projectId/tasks", taskHandler.List)
	viewer.Get("/:projectId/tasks/burndown", taskHandler.Burndown)
	viewer.Get("/:projectId/tasks/:taskId", taskHandler.Get)
	editor.Post("/:projectId/tasks", taskHandler.Create)
	editor.Patch("/:projectId/tasks/:taskId", taskHandler.Update)
	editor.Delete("/:projectId/tasks/:taskId", taskHandler.Delete)

	viewer.Get("/:projectId/snippets", snippetHandler.List)
	viewer.Get("/:projectId/snippets/:snippetId", snippetHandler.Get)
	viewer.Get("/:projectId/snippets/:snippetId/explain", snippetHandler.Explain)
	editor.Post("/:projectId/snippets", snippetHandler.Create)
	editor.Patch("/:projectId/snippets/:snippetId", snippetHandler.Update)
	editor.Delete("/:projectId/snippets/:snippetId", snippetHandler.Delete)

	viewer.Get("/:projectId/decisions", decisionHandler.List)
	viewer.Get("/:projectId/decisions/:decisionId", decisionHandler.Get)
	viewer.Get("/:projectId/decisions/:decisionId/notes", decisionHandler.GetNotes)
	editor.Post("/:projectId/decisions", decisionHandler.Create)
	editor.Post("/:projectId/decisions/:decisionId/notes", decisionHandler.AddNote)
	editor.Delete("/:projectId/decisions/:decisionId", decisionHandler.Delete)

	viewer.Get("/:projectId/chat/messages", chatHandler.GetHistory)
	viewer.Get("/:projectId/chat/pinned", chatHandler.GetPinned)
	editor.Post("/:projectId/chat/messages/:messageId/pin", chatHandler.PinMessage)

	viewer.Post("/:projectId/ai/chat", aiHandler.Chat)
	viewer.Get("/:projectId/ai/summary", aiHandler.SummarizeProject)
	editor.Post("/:projectId/ai/generate-tasks", aiHandler.GenerateTasks)
	editor.Post("/:projectId/ai/explain", aiHandler.ExplainSnippet)

	viewer.Get("/:projectId/events", sseHandler.Connect)

	protected.Get("/ws", wsHandler.Connect)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
