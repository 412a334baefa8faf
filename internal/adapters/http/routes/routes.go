package routes

import (
	"time"

	"fieldside/internal/adapters/http/handlers"
	"fieldside/internal/adapters/http/middleware"
	"fieldside/internal/adapters/persistence/repositories"
	"fieldside/internal/config"
	"fieldside/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application. It returns the cron
// service so main can start and stop the scheduled jobs.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	directoryRepo := repositories.NewDirectoryRepository(db)
	schoolRepo := repositories.NewSchoolRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	billingRepo := repositories.NewBillingRepository(db)
	payrollRepo := repositories.NewPayrollRepository(db)
	medicalRepo := repositories.NewMedicalRepository(db)

	// Initialize services. The scope service comes first: the auth
	// middleware and most other services depend on it.
	scopeService := services.NewScopeService(userRepo, directoryRepo, schoolRepo, teamRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, directoryRepo, schoolRepo, cfg)
	userService := services.NewUserService(userRepo, refreshTokenRepo, directoryRepo)
	schoolService := services.NewSchoolService(schoolRepo, directoryRepo)
	teamService := services.NewTeamService(teamRepo, directoryRepo, schoolRepo, scopeService)
	sessionService := services.NewSessionService(sessionRepo, attendanceRepo, teamRepo, directoryRepo, scopeService)
	billingService := services.NewBillingService(billingRepo, teamRepo, directoryRepo, scopeService)
	payrollService := services.NewPayrollService(payrollRepo, directoryRepo)
	medicalService := services.NewMedicalService(medicalRepo, sessionRepo, teamRepo, directoryRepo, scopeService)
	directoryService := services.NewDirectoryService(directoryRepo, scopeService)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	schoolHandler := handlers.NewSchoolHandler(schoolService)
	teamHandler := handlers.NewTeamHandler(teamService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	billingHandler := handlers.NewBillingHandler(billingService)
	payrollHandler := handlers.NewPayrollHandler(payrollService)
	medicalHandler := handlers.NewMedicalHandler(medicalService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService, userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	protected := middleware.AuthMiddleware(cfg, scopeService)

	// ============================================================
	// Public routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := api.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", protected, authHandler.LogoutAll)

	// ============================================================
	// User routes
	// ============================================================
	users := api.Group("/users", protected)
	users.Get("/me", userHandler.GetProfile)
	users.Put("/me", userHandler.UpdateProfile)
	users.Put("/me/password", userHandler.ChangePassword)
	users.Post("/me/badge", middleware.NoCacheHeaders(), userHandler.RotateBadge)
	users.Get("/", middleware.AdminOnly(), userHandler.ListUsers)
	users.Patch("/:id/active", middleware.AdminOnly(), userHandler.SetUserActive)

	// ============================================================
	// School routes
	// ============================================================
	schools := api.Group("/schools", protected)
	schools.Post("/", middleware.ManagerOnly(), schoolHandler.CreateSchool)
	schools.Get("/", middleware.AdminOnly(), schoolHandler.ListSchools)
	schools.Get("/:id", schoolHandler.GetSchool)
	schools.Put("/:id", schoolHandler.UpdateSchool)
	schools.Post("/:id/activate", schoolHandler.ActivateSchool)
	schools.Post("/:id/deactivate", schoolHandler.DeactivateSchool)
	schools.Post("/:id/semesters", schoolHandler.CreateSemester)
	schools.Get("/:id/semesters", schoolHandler.ListSemesters)
	schools.Delete("/:id/semesters/:semesterId", schoolHandler.DeleteSemester)

	// ============================================================
	// Team routes
	// ============================================================
	teams := api.Group("/teams", protected)
	teams.Post("/", middleware.ManagerOnly(), teamHandler.CreateTeam)
	teams.Get("/", teamHandler.ListTeams)
	teams.Get("/:id", teamHandler.GetTeam)
	teams.Put("/:id", teamHandler.UpdateTeam)
	teams.Delete("/:id", teamHandler.DeleteTeam)
	teams.Post("/:id/players/:playerId", teamHandler.AddPlayer)
	teams.Delete("/:id/players/:playerId", teamHandler.RemovePlayer)

	// ============================================================
	// Training session and attendance routes
	// ============================================================
	sessions := api.Group("/sessions", protected)
	sessions.Post("/", middleware.CoachOrManager(), sessionHandler.CreateSession)
	sessions.Get("/", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Put("/:id", sessionHandler.UpdateSession)
	sessions.Post("/:id/cancel", sessionHandler.CancelSession)
	sessions.Delete("/:id", sessionHandler.DeleteSession)
	sessions.Post("/:id/attendance", sessionHandler.RecordAttendance)
	sessions.Get("/:id/attendance", sessionHandler.ListSessionAttendance)

	attendance := api.Group("/attendance", protected)
	attendance.Put("/:attendanceId", sessionHandler.UpdateAttendance)

	// ============================================================
	// Directory routes
	// ============================================================
	players := api.Group("/players", protected)
	players.Get("/", directoryHandler.ListPlayers)
	players.Get("/:id", directoryHandler.GetPlayer)
	players.Put("/:id", directoryHandler.UpdatePlayer)
	players.Delete("/:id", middleware.ManagerOnly(), directoryHandler.DeletePlayer)
	players.Get("/:id/attendance", sessionHandler.ListPlayerAttendance)
	players.Get("/:id/medical-records", medicalHandler.ListPlayerMedicalRecords)

	coaches := api.Group("/coaches", protected)
	coaches.Get("/", middleware.ManagerOnly(), directoryHandler.ListCoaches)
	coaches.Get("/:id", directoryHandler.GetCoach)
	coaches.Put("/:id", directoryHandler.UpdateCoach)
	coaches.Delete("/:id", middleware.ManagerOnly(), directoryHandler.DeleteCoach)

	managers := api.Group("/managers", protected)
	managers.Delete("/:id", middleware.AdminOnly(), directoryHandler.DeleteManager)

	// ============================================================
	// Billing routes
	// ============================================================
	invoices := api.Group("/invoices", protected)
	invoices.Post("/", middleware.CoachOrManager(), billingHandler.CreateInvoice)
	invoices.Get("/", billingHandler.ListInvoices)
	invoices.Get("/:id", billingHandler.GetInvoice)
	invoices.Post("/:id/payments", billingHandler.RecordPayment)
	invoices.Get("/:id/payments", billingHandler.ListPayments)
	invoices.Post("/:id/cancel", billingHandler.CancelInvoice)

	// ============================================================
	// Payroll routes
	// ============================================================
	contracts := api.Group("/contracts", protected)
	contracts.Post("/", middleware.ManagerOnly(), payrollHandler.CreateContract)
	contracts.Get("/", payrollHandler.ListContracts)
	contracts.Get("/:id", payrollHandler.GetContract)
	contracts.Put("/:id", middleware.ManagerOnly(), payrollHandler.UpdateContract)
	contracts.Delete("/:id", middleware.ManagerOnly(), payrollHandler.DeleteContract)
	contracts.Get("/:id/salaries", payrollHandler.ListSalaryRecords)

	salaries := api.Group("/salaries", protected)
	salaries.Post("/:recordId/pay", middleware.ManagerOnly(), payrollHandler.PaySalary)

	// ============================================================
	// Medical record routes
	// ============================================================
	medical := api.Group("/medical-records", protected)
	medical.Post("/", middleware.CoachOrManager(), medicalHandler.CreateMedicalRecord)
	medical.Get("/:id", medicalHandler.GetMedicalRecord)
	medical.Put("/:id", medicalHandler.UpdateMedicalRecord)
	medical.Delete("/:id", medicalHandler.DeleteMedicalRecord)

	// ============================================================
	// Dashboard routes
	// ============================================================
	dashboard := api.Group("/dashboard", protected, middleware.PrivateCacheHeaders(30*time.Second))
	dashboard.Get("/", dashboardHandler.GetDashboard)
	dashboard.Get("/admin", middleware.AdminOnly(), dashboardHandler.GetAdminDashboard)

	return services.NewCronService(billingService, payrollService)
}
