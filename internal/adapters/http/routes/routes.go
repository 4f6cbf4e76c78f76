package routes

import (
	"edumigrate/internal/adapters/http/handlers"
	"edumigrate/internal/adapters/http/middleware"
	"edumigrate/internal/adapters/persistence/repositories"
	"edumigrate/internal/config"
	"edumigrate/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	studentRepo := repositories.NewAgentStudentRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	programRepo := repositories.NewProgramRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	agentApplicationRepo := repositories.NewAgentApplicationRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	activityLogRepo := repositories.NewActivityLogRepository(db)
	configRepo := repositories.NewConfigRepository(db)

	// Initialize services
	authService := services.NewAuthService(memberRepo, agentRepo, refreshTokenRepo, cfg)
	notifyService := services.NewNotifyService(notificationRepo)
	emailService := services.NewEmailService()
	profileService := services.NewProfileService(memberRepo, studentRepo)
	documentService := services.NewDocumentService(documentRepo, notifyService)
	studentService := services.NewStudentService(studentRepo)
	programService := services.NewProgramService(programRepo)
	walletService := services.NewWalletService(db, walletRepo)
	dashboardService := services.NewDashboardService(db)
	applicationService := services.NewApplicationService(
		db,
		applicationRepo,
		agentApplicationRepo,
		memberRepo,
		agentRepo,
		studentRepo,
		programRepo,
		configRepo,
		activityLogRepo,
		documentService,
		notifyService,
		emailService,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	profileHandler := handlers.NewProfileHandler(profileService, authService)
	studentHandler := handlers.NewStudentHandler(studentService, profileService)
	programHandler := handlers.NewProgramHandler(programService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	documentHandler := handlers.NewDocumentHandler(documentService, studentService)
	walletHandler := handlers.NewWalletHandler(walletService)
	notificationHandler := handlers.NewNotificationHandler(notifyService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	configHandler := handlers.NewConfigHandler(configRepo)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// ============================================================
	// Auth routes (public, stricter rate limit)
	// ============================================================
	auth := apiV1.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.RegisterMember)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.LoginMember)
	auth.Post("/agent/register", middleware.AuthRateLimiter(), authHandler.RegisterAgent)
	auth.Post("/agent/login", middleware.AuthRateLimiter(), authHandler.LoginAgent)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)

	// ============================================================
	// Public program catalog
	// ============================================================
	programs := apiV1.Group("/programs", middleware.CatalogCache())
	programs.Get("/", programHandler.List)
	programs.Get("/:id", programHandler.Get)

	// ============================================================
	// Member routes
	// ============================================================
	profile := apiV1.Group("/profile", middleware.AuthMiddleware(cfg), middleware.MemberOnly())
	profile.Get("/", profileHandler.Me)
	profile.Put("/", profileHandler.Update)
	profile.Get("/status", profileHandler.Status)

	apiV1.Get("/dashboard", middleware.AuthMiddleware(cfg), middleware.MemberOnly(), dashboardHandler.Member)

	applications := apiV1.Group("/applications", middleware.AuthMiddleware(cfg), middleware.MemberOnly())
	applications.Post("/", applicationHandler.Create)
	applications.Get("/", applicationHandler.ListMine)
	applications.Get("/:id", applicationHandler.GetMine)

	documents := apiV1.Group("/documents", middleware.AuthMiddleware(cfg), middleware.MemberOnly())
	documents.Post("/", middleware.StrictRateLimiter(), documentHandler.Upload)
	documents.Get("/", documentHandler.ListMine)
	documents.Get("/completeness/:category", documentHandler.CheckCompleteness)

	// ============================================================
	// Agent routes
	// ============================================================
	agent := apiV1.Group("/agent", middleware.AuthMiddleware(cfg), middleware.AgentOnly())
	agent.Get("/dashboard", dashboardHandler.Agent)

	agent.Post("/students", studentHandler.Create)
	agent.Get("/students", studentHandler.List)
	agent.Get("/students/:id", studentHandler.Get)
	agent.Put("/students/:id/profile", studentHandler.UpdateProfile)
	agent.Get("/students/:id/profile/status", studentHandler.ProfileStatus)
	agent.Post("/students/:studentId/documents", middleware.StrictRateLimiter(), documentHandler.UploadForStudent)
	agent.Get("/students/:studentId/documents", documentHandler.ListForStudent)

	agent.Post("/applications", applicationHandler.CreateForStudent)
	agent.Get("/applications", applicationHandler.ListForAgent)
	agent.Get("/applications/:id", applicationHandler.GetForAgent)

	// ============================================================
	// Shared authenticated routes (members and agents)
	// ============================================================
	wallet := apiV1.Group("/wallet", middleware.AuthMiddleware(cfg))
	wallet.Get("/", walletHandler.Get)
	wallet.Get("/transactions", walletHandler.Statement)
	wallet.Post("/withdraw", middleware.StrictRateLimiter(), walletHandler.Withdraw)

	notifications := apiV1.Group("/notifications", middleware.AuthMiddleware(cfg))
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	// ============================================================
	// Admin routes
	// ============================================================
	admin := apiV1.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/dashboard", dashboardHandler.Admin)

	admin.Get("/applications/:type", applicationHandler.AdminList)
	admin.Patch("/applications/:type/:id/status", applicationHandler.AdminUpdateStatus)
	admin.Get("/applications/:type/:id/history", applicationHandler.AdminHistory)

	admin.Patch("/documents/:id/review", documentHandler.AdminReview)

	admin.Post("/wallets/credit", walletHandler.AdminCredit)

	admin.Get("/programs", programHandler.AdminList)
	admin.Post("/programs", programHandler.AdminCreate)
	admin.Put("/programs/:id", programHandler.AdminUpdate)
	admin.Delete("/programs/:id", programHandler.AdminDelete)

	admin.Get("/config", configHandler.List)
	admin.Put("/config", configHandler.Set)
}
