package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barberpro/internal/infra/repository"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barberpro/internal/usecase/appointment"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

// Deps carries the long-lived singletons built in main.
type Deps struct {
	DB         *gorm.DB
	Config     *config.Config
	AuditStore *audit.Logger
	Audit      *audit.Dispatcher
	Limiter    *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, deps Deps) error {
	cfg := deps.Config
	if err := validators.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(deps.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(deps.DB)
	opts := ucAppointment.OptionsFromConfig(cfg)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, opts)
	bookUC := ucAppointment.NewBook(appointmentRepo, deps.Audit, opts)
	confirmationUC := ucAppointment.NewGetConfirmation(appointmentRepo, opts)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, deps.Audit, opts)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, deps.Audit, opts)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, deps.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, deps.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(catalogRepo, deps.Audit, cfg)
	meHandler := handlers.NewMeHandler(catalogRepo)
	barbershopHandler := handlers.NewBarbershopHandler(catalogRepo, deps.Audit)
	serviceHandler := handlers.NewServiceHandler(catalogRepo, deps.Audit)
	clientHandler := handlers.NewClientHandler(catalogRepo, deps.Audit, cfg.PhoneRegion)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsUC,
		getAppointmentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditStore)

	publicHandler := handlers.NewPublicHandler(
		catalogRepo,
		availabilityUC,
		bookUC,
		confirmationUC,
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST(
				"/:slug/services/:serviceID/bookings",
				deps.Limiter.Middleware(),
				publicHandler.Book,
			)
			publicAPI.GET("/bookings/:reference", publicHandler.Confirmation)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// OWNER
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)
			secured.DELETE("/barbershop", barbershopHandler.DeleteMeBarbershop)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
