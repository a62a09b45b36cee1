package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vetclinic-admin-server/internal/config"
	"vetclinic-admin-server/internal/models"
	"vetclinic-admin-server/internal/routes"
	"vetclinic-admin-server/internal/store"
	"vetclinic-admin-server/internal/utils"
	"vetclinic-admin-server/internal/workflow"
)

func main() {
	logger := log.New(os.Stdout, "[vetclinic] ", log.LstdFlags)

	// A missing .env is fine when the variables come from the environment.
	if err := godotenv.Load(); err != nil {
		logger.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Error loading config: %v", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		AutoMigrate: cfg.Database.AutoMigrate,
	})
	if err != nil {
		logger.Fatalf("Error connecting to database: %v", err)
	}

	appointments := store.NewAppointmentStore(db)
	histories := store.NewMedicalHistoryStore(db)
	dashboard, err := store.NewDashboardRepository(db, cfg.Database.Driver)
	if err != nil {
		logger.Fatalf("Error preparing dashboard queries: %v", err)
	}

	wf := workflow.New(appointments, histories, workflow.Options{
		GuardDelay:  cfg.Workflow.GuardDelay,
		LookupLimit: cfg.Workflow.LookupLimit,
		Logger:      logger,
	})
	defer wf.Close()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	utils.RegisterValidations()
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Deps{
		DB:           db,
		Config:       cfg,
		Logger:       logger,
		Workflow:     wf,
		Appointments: appointments,
		Histories:    histories,
		Directory:    store.NewDirectoryStore(db),
		Dashboard:    dashboard,
	})

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Printf("Server running on port %s", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
