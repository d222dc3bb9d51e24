package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/bookora/booking-api/internal/audit"
	"github.com/bookora/booking-api/internal/cache"
	"github.com/bookora/booking-api/internal/config"
	"github.com/bookora/booking-api/internal/handlers"
	infraRepo "github.com/bookora/booking-api/internal/infra/repository"
	"github.com/bookora/booking-api/internal/media"
	"github.com/bookora/booking-api/internal/middleware"
	ucAppointment "github.com/bookora/booking-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	searchCache := cache.NewSearchCache(cfg.RedisAddr, cfg.RedisPassword)
	storage := media.NewStorage(cfg)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	availableTimesUC := ucAppointment.NewGetAvailableTimes(appointmentRepo)
	availableDatesUC := ucAppointment.NewGetAvailableDates(appointmentRepo)
	timeAvailableUC := ucAppointment.NewIsTimeAvailable(appointmentRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	providerHandler := handlers.NewProviderHandler(db, storage, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, searchCache, providerHandler)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		availableTimesUC,
		availableDatesUC,
		timeAvailableUC,
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		deleteAppointmentUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC BROWSE
		// ------------------------------
		api.GET("/serviceproviders", providerHandler.List)
		api.GET("/serviceproviders/:id", providerHandler.Get)
		api.GET("/serviceproviders/:id/business-hours", providerHandler.GetBusinessHours)

		api.GET("/serviceproviders/:id/services", serviceHandler.ListForProvider)
		api.GET("/serviceproviders/:id/services/:serviceId", serviceHandler.Get)

		api.GET("/services/search/:query", serviceHandler.Search)
		api.GET("/services/topsearch/:query", serviceHandler.TopSearch)

		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		api.GET("/serviceproviders/:id/services/:serviceId/available-slots",
			appointmentHandler.GetAvailableSlots)
		api.GET("/serviceproviders/:id/services/:serviceId/available-dates",
			appointmentHandler.GetAvailableDates)
		api.GET("/serviceproviders/:id/services/:serviceId/time-available",
			appointmentHandler.CheckTimeAvailable)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.GetMe)
			secured.PUT("/me", authHandler.UpdateProfile)
			secured.PUT("/auth/change-password", authHandler.ChangePassword)

			secured.GET("/serviceproviders/mine", providerHandler.ListMine)
			secured.GET("/serviceproviders/city", providerHandler.ListInMyCity)
			secured.POST("/serviceproviders", providerHandler.Create)
			secured.PUT("/serviceproviders/:id", providerHandler.Update)
			secured.DELETE("/serviceproviders/:id", providerHandler.Delete)
			secured.POST("/serviceproviders/:id/image", providerHandler.UploadImage)

			secured.POST("/serviceproviders/:id/services", serviceHandler.Create)
			secured.PUT("/serviceproviders/:id/services/:serviceId", serviceHandler.Update)
			secured.PUT("/serviceproviders/:id/services/:serviceId/availability",
				serviceHandler.ToggleAvailability)
			secured.DELETE("/serviceproviders/:id/services/:serviceId", serviceHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListMine)
			secured.GET("/appointments/provider", appointmentHandler.ListForMyProviders)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
		}
	}
}
