package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Onboarding-api/internal/application/analytics"
	"github.com/jhoicas/Onboarding-api/internal/application/auth"
	"github.com/jhoicas/Onboarding-api/internal/application/onboarding"
	"github.com/jhoicas/Onboarding-api/internal/application/report"
	"github.com/jhoicas/Onboarding-api/internal/application/usecase"
	"github.com/jhoicas/Onboarding-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName        string
	Workflow       *onboarding.WorkflowUseCase
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	SummaryUC      *analytics.SummaryUseCase
	ReportUC       *report.ReportUseCase
	DocumentUC     *usecase.DocumentUseCase
	NotificationUC *usecase.NotificationUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	// Candidates (solo RRHH)
	candidates := protected.Group("/candidates", RequireStaff())
	candidateHandler := NewCandidateHandler(deps.Workflow, deps.SummaryUC, deps.ReportUC, deps.DocumentUC)
	candidates.Post("/add", candidateHandler.Enroll)
	candidates.Get("/", candidateHandler.List)
	candidates.Get("/summary", candidateHandler.Summary)
	candidates.Get("/:id", candidateHandler.GetByID)
	candidates.Get("/:id/documents", candidateHandler.Documents)
	candidates.Get("/:id/report.pdf", candidateHandler.ReportPDF)
	candidates.Get("/:id/timeline.xml", candidateHandler.TimelineXML)

	// Onboarding: las rutas estáticas van antes que las parametrizadas
	steps := protected.Group("/onboarding")
	onboardingHandler := NewOnboardingHandler(deps.Workflow)
	steps.Get("/activities/all", RequireStaff(), onboardingHandler.AllRecentActivities)
	steps.Get("/by-id/:candidateId", onboardingHandler.Timeline)
	steps.Post("/step-completed", onboardingHandler.StepCompleted)
	steps.Get("/:candidateEmail", onboardingHandler.LatestSteps)
	steps.Get("/:candidateEmail/activities", onboardingHandler.RecentActivities)
	steps.Post("/:candidateId/step", onboardingHandler.UpdateStep)
	steps.Post("/:candidateEmail/force-complete", RequireStaff(), onboardingHandler.ForceComplete)

	// Documents
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	protected.Post("/documents/upload", documentHandler.Upload)

	// Notifications
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Post("/", notificationHandler.Create)
	notifications.Get("/:userEmail", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)
}
