package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-portal/config"
	deliveryHttp "clinic-portal/internal/delivery/http"
	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/infrastructure/cache"
	"clinic-portal/internal/infrastructure/database"
	"clinic-portal/internal/repository"
	"clinic-portal/internal/service"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	slotSvc *service.SlotReservationService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply pending migrations
	if err := database.RunMigrations(db, cfg.DB); err != nil {
		return nil, err
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, slotSvc := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.slotSvc = slotSvc

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SlotReservationService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	vitalsRepo := repository.NewVitalsRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	slotSvc := service.NewSlotReservationService(db, redisClient, log)
	auditSvc := service.NewAuditService(db, log, auditLogRepo)
	reportSvc := service.NewReportService(log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, customValidator, jwtService, redisClient, userRepo, patientProfileRepo, doctorProfileRepo, auditSvc)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, customValidator, appointmentRepo, doctorProfileRepo, slotSvc, auditSvc)
	vitalsUsecase := usecase.NewVitalsUsecase(db, log, customValidator, vitalsRepo, auditSvc)
	medicalRecordUsecase := usecase.NewMedicalRecordUsecase(db, log, customValidator, medicalRecordRepo, patientProfileRepo, auditSvc)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, customValidator, prescriptionRepo, patientProfileRepo, auditSvc)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, customValidator, doctorProfileRepo, userRepo, auditSvc)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, customValidator, patientProfileRepo, userRepo, auditSvc)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, patientProfileRepo, appointmentRepo, medicalRecordRepo, vitalsRepo, prescriptionRepo)
	reportUsecase := usecase.NewReportUsecase(db, log, reportSvc, patientProfileRepo, medicalRecordRepo, prescriptionRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	vitalsHandler := handler.NewVitalsHandler(vitalsUsecase, customValidator)
	medicalRecordHandler := handler.NewMedicalRecordHandler(medicalRecordUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(dashboardUsecase, patientProfileUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		appointmentHandler,
		vitalsHandler,
		medicalRecordHandler,
		prescriptionHandler,
		doctorHandler,
		patientHandler,
		reportHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, slotSvc
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Rebuild slot claims from scheduled appointments before taking traffic,
	// so a flushed Redis cannot hand out already-booked slots.
	syncCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.slotSvc.SyncOnStartup(syncCtx); err != nil {
		cancel()
		logrus.Fatalf("Failed to sync slot reservations: %v", err)
	}
	cancel()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
