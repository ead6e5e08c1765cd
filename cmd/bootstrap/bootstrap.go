package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-medical-appointment/config"
	deliveryHttp "go-medical-appointment/internal/delivery/http"
	"go-medical-appointment/internal/delivery/http/handler"
	"go-medical-appointment/internal/delivery/http/middleware"
	"go-medical-appointment/internal/infrastructure/cache"
	"go-medical-appointment/internal/infrastructure/database"
	"go-medical-appointment/internal/repository"
	"go-medical-appointment/internal/service"
	"go-medical-appointment/internal/usecase"
	"go-medical-appointment/pkg/jwt"
	"go-medical-appointment/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server = initializeServer(cfg, log, db, redisClient)

	return app, nil
}

// NewLogger configures a JSON logrus logger at the configured level.
// An unknown level falls back to info.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	txManager := repository.NewTxManager(db)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	specialtyRepo := repository.NewSpecialtyRepository()
	doctorSpecialtyRepo := repository.NewDoctorSpecialtyRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewRedisTokenStore(redisClient)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(txManager, log, userRepo, roleRepo, jwtService, tokenStore, auditService)
	patientUsecase := usecase.NewPatientUsecase(txManager, log, patientRepo, appointmentRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(txManager, log, doctorRepo, specialtyRepo, doctorSpecialtyRepo, appointmentRepo, auditService)
	specialtyUsecase := usecase.NewSpecialtyUsecase(txManager, log, specialtyRepo, doctorSpecialtyRepo, appointmentRepo, auditService)
	doctorSpecialtyUsecase := usecase.NewDoctorSpecialtyUsecase(txManager, log, doctorRepo, specialtyRepo, doctorSpecialtyRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(txManager, log, appointmentRepo, patientRepo, doctorRepo, specialtyRepo, doctorSpecialtyUsecase, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(txManager, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, doctorSpecialtyUsecase, customValidator)
	specialtyHandler := handler.NewSpecialtyHandler(specialtyUsecase, customValidator)
	doctorSpecialtyHandler := handler.NewDoctorSpecialtyHandler(doctorSpecialtyUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		authHandler,
		patientHandler,
		doctorHandler,
		specialtyHandler,
		doctorSpecialtyHandler,
		appointmentHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then
// shuts down gracefully.
func (app *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		app.Log.WithFields(logrus.Fields{
			"port": app.Config.App.Port,
			"env":  app.Config.App.Env,
		}).Info("Server starting")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()
	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Warnf("Failed to close database: %+v", err)
			}
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis: %+v", err)
		}
	}
}
