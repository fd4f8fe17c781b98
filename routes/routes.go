package routes

import (
	"os"
	"strings"

	"glowdesk-backend/config"
	"glowdesk-backend/controllers"
	"glowdesk-backend/services"
	"glowdesk-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps carries everything the router wires into controllers. No controller
// reaches for a global.
type Deps struct {
	DB           *gorm.DB
	Logger       *zap.Logger
	Availability *services.AvailabilityService
	Appointments *services.AppointmentService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(deps.Logger))

	authController := controllers.NewAuthController(deps.DB)
	profileController := controllers.NewProfileController(deps.DB)
	professionalController := controllers.NewProfessionalController(deps.DB)
	serviceController := controllers.NewServiceController(deps.DB)
	customerController := controllers.NewCustomerController(deps.DB)
	scheduleController := controllers.NewScheduleController(deps.DB)
	availabilityController := controllers.NewAvailabilityController(deps.DB, deps.Availability)
	appointmentController := controllers.NewAppointmentController(deps.DB, deps.Appointments)
	dashboardController := controllers.NewDashboardController(deps.DB)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		professionals := api.Group("/professionals")
		{
			professionals.POST("", professionalController.Create)
			professionals.GET("", professionalController.List)
			professionals.GET("/:id", professionalController.Get)
			professionals.PUT("/:id", professionalController.Update)
			professionals.DELETE("/:id", professionalController.Deactivate)
		}

		servicesGroup := api.Group("/services")
		{
			servicesGroup.POST("", serviceController.Create)
			servicesGroup.GET("", serviceController.List)
			servicesGroup.GET("/:id", serviceController.Get)
			servicesGroup.PUT("/:id", serviceController.Update)
			servicesGroup.DELETE("/:id", serviceController.Delete)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", customerController.Create)
			customers.POST("/identify", customerController.Identify)
			customers.GET("", customerController.List)
			customers.GET("/:id", customerController.Get)
			customers.PUT("/:id", customerController.Update)
			customers.DELETE("/:id", customerController.Delete)
		}

		rules := api.Group("/availability-rules")
		{
			rules.POST("", scheduleController.CreateRule)
			rules.GET("", scheduleController.ListRules)
			rules.DELETE("/:id", scheduleController.DeleteRule)
		}

		overrides := api.Group("/overrides")
		{
			overrides.POST("", scheduleController.CreateOverride)
			overrides.GET("", scheduleController.ListOverrides)
			overrides.DELETE("/:id", scheduleController.DeleteOverride)
		}

		api.GET("/availability", availabilityController.GetSlots)

		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentController.Create)
			appointments.GET("", appointmentController.List)
			appointments.GET("/:id", appointmentController.Get)
			appointments.PUT("/:id", appointmentController.Update)
			appointments.POST("/:id/cancel", appointmentController.Cancel)
			appointments.POST("/:id/complete", appointmentController.Complete)
			appointments.DELETE("/:id", appointmentController.Delete)
		}

		api.GET("/dashboard", dashboardController.GetOverview)

		profile := api.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.PUT("/update-salon", profileController.UpdateSalonProfile)
			profile.PUT("/update-hours", profileController.UpdateBusinessHours)
			profile.PUT("/update-settings", profileController.UpdateSettings)
		}
	}

	return r
}
