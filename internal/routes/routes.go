package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/config"
	"medibook-server/internal/handlers"
	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/services"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Services
	notificationStore := services.NewNotificationStore(db)
	availabilityService := services.NewAvailabilityService(db)
	appointmentService := services.NewAppointmentService(db, notificationStore)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db, availabilityService)
	appointmentHandler := handlers.NewAppointmentHandler(db, appointmentService, availabilityService)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	notificationHandler := handlers.NewNotificationHandler(notificationStore)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", middleware.RoleAuthMiddleware(models.RolePatient), authHandler.UpdateProfile)
		}

		// Doctor directory and availability
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.GET("/:id", doctorHandler.GetDoctorByID)
			doctorRoutes.GET("/:id/availability", doctorHandler.GetAvailability)
		}

		// Doctor self-service: leave management
		leaveRoutes := private.Group("/leaves")
		leaveRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			leaveRoutes.GET("", doctorHandler.GetLeaves)
			leaveRoutes.POST("", doctorHandler.AddLeave)
			leaveRoutes.DELETE("/:leaveId", doctorHandler.DeleteLeave)
		}

		// Appointment lifecycle
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/cancel", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.CancelAppointment)
			appointmentRoutes.POST("/:id/rating", middleware.RoleAuthMiddleware(models.RolePatient), appointmentHandler.RateAppointment)
			appointmentRoutes.PATCH("/:id/complete", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.CompleteAppointment)
		}

		// Medical records (read-only surface; writes go through completion)
		medicalRecordRoutes := private.Group("/medical-records")
		{
			medicalRecordRoutes.GET("", medicalRecordHandler.GetMedicalRecords)
			medicalRecordRoutes.GET("/:id", medicalRecordHandler.GetMedicalRecordByID)
		}

		// Notifications
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetNotifications)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkNotificationRead)
		}

		// Lookup tables (read for everyone, writes admin-only below)
		private.GET("/cities", userHandler.GetCities)
		private.GET("/specializations", userHandler.GetSpecializations)

		// Admin
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/users", userHandler.GetUsers)
			adminRoutes.GET("/users/:id", userHandler.GetUserByID)
			adminRoutes.DELETE("/users/:id", userHandler.DeleteUser)
			adminRoutes.POST("/doctors", userHandler.CreateDoctor)
			adminRoutes.PATCH("/doctors/:id/status", userHandler.SetDoctorStatus)
			adminRoutes.POST("/cities", userHandler.CreateCity)
			adminRoutes.POST("/specializations", userHandler.CreateSpecialization)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
