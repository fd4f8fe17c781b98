package main

import (
	"fmt"
	"log"
	"os"

	"glowdesk-backend/config"
	"glowdesk-backend/models"
	"glowdesk-backend/repositories"
	"glowdesk-backend/routes"
	"glowdesk-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger, err := config.NewLogger()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		logger.Fatal("Failed to connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Professional{},
		&models.Service{},
		&models.Customer{},
		&models.AvailabilityRule{},
		&models.ScheduleOverride{},
		&models.Appointment{},
		&models.ReminderLog{},
	); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	appointmentRepo := repositories.NewAppointmentRepository(db)
	ruleRepo := repositories.NewAvailabilityRuleRepository(db)
	overrideRepo := repositories.NewScheduleOverrideRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)

	calendarSync := services.NewCalendarSyncService(logger)
	availabilityService := services.NewAvailabilityService(ruleRepo, overrideRepo, appointmentRepo, catalogRepo, logger)
	appointmentService := services.NewAppointmentService(appointmentRepo, catalogRepo, availabilityService, calendarSync, logger)

	reminderService := services.NewReminderService(db, logger)
	reminderService.StartScheduler()

	r := routes.SetupRouter(routes.Deps{
		DB:           db,
		Logger:       logger,
		Availability: availabilityService,
		Appointments: appointmentService,
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
