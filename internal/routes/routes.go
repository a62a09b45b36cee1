package routes

import (
	"log"

	"vetclinic-admin-server/internal/config"
	"vetclinic-admin-server/internal/handlers"
	"vetclinic-admin-server/internal/middleware"
	"vetclinic-admin-server/internal/models"
	"vetclinic-admin-server/internal/store"
	"vetclinic-admin-server/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the shared components the handlers are built from.
type Deps struct {
	DB           *gorm.DB
	Config       *config.Config
	Logger       *log.Logger
	Workflow     *workflow.Workflow
	Appointments *store.AppointmentStore
	Histories    *store.MedicalHistoryStore
	Directory    *store.DirectoryStore
	Dashboard    *store.DashboardRepository
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Deps) {
	cfg := deps.Config

	authHandler := handlers.NewAuthHandler(deps.DB, cfg)
	userHandler := handlers.NewUserHandler(deps.DB)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments, deps.Workflow, deps.Logger)
	historyHandler := handlers.NewMedicalHistoryHandler(deps.Histories)
	directoryHandler := handlers.NewDirectoryHandler(deps.Directory)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)

	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
			authRoutes.POST("/logout", authHandler.Logout)
		}
	}

	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		userRoutes := private.Group("/users")
		{
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.POST("", appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.DeleteAppointment)

			appointmentRoutes.GET("/:id/status-change", appointmentHandler.PreviewStatusChange)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
		}

		customerRoutes := private.Group("/customers")
		{
			customerRoutes.GET("", directoryHandler.GetCustomers)
			customerRoutes.POST("", directoryHandler.CreateCustomer)
			customerRoutes.GET("/:id", directoryHandler.GetCustomerByID)
			customerRoutes.PUT("/:id", directoryHandler.UpdateCustomer)
			customerRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), directoryHandler.DeleteCustomer)
		}

		petRoutes := private.Group("/pets")
		{
			petRoutes.GET("", directoryHandler.GetPets)
			petRoutes.POST("", directoryHandler.CreatePet)
			petRoutes.GET("/:id", directoryHandler.GetPetByID)
			petRoutes.PUT("/:id", directoryHandler.UpdatePet)
			petRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), directoryHandler.DeletePet)
			petRoutes.GET("/:id/medical-history", historyHandler.GetPetMedicalHistory)
		}

		serviceRoutes := private.Group("/services")
		{
			serviceRoutes.GET("", directoryHandler.GetServices)
			serviceRoutes.GET("/:id", directoryHandler.GetServiceByID)

			catalogue := serviceRoutes.Group("")
			catalogue.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				catalogue.POST("", directoryHandler.CreateService)
				catalogue.PUT("/:id", directoryHandler.UpdateService)
				catalogue.DELETE("/:id", directoryHandler.DeleteService)
			}
		}

		historyRoutes := private.Group("/medical-history")
		{
			historyRoutes.GET("/:id", historyHandler.GetMedicalHistoryByID)

			clinical := historyRoutes.Group("")
			clinical.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor))
			{
				clinical.POST("", historyHandler.CreateMedicalHistory)
				clinical.PUT("/:id", historyHandler.UpdateMedicalHistory)
				clinical.DELETE("/:id", historyHandler.DeleteMedicalHistory)
			}
		}

		private.GET("/dashboard/summary", dashboardHandler.GetSummary)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
