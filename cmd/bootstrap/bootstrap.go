package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-management/config"
	deliveryHttp "go-clinic-management/internal/delivery/http"
	"go-clinic-management/internal/delivery/http/handler"
	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/infrastructure/cache"
	"go-clinic-management/internal/infrastructure/database"
	"go-clinic-management/internal/infrastructure/storage"
	"go-clinic-management/internal/repository"
	"go-clinic-management/internal/service"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"
	"go-clinic-management/pkg/jwt"
	"go-clinic-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := NewLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	db, err := OpenDatabase(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	sessionStore := service.NewMemorySessionStore()
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis, log)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		sessionStore = service.NewRedisSessionStore(redisClient)
	} else {
		log.Warn("REDIS_HOST is not set; sessions are kept in process memory")
	}

	images, err := storage.NewImageStore(cfg.Storage)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}

	server, err := initializeServer(cfg, log, db, sessionStore, images)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// NewLogger configures the JSON logger used by every layer.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	if !cfg.IsProduction() {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// OpenDatabase connects to the configured store and creates the schema.
func OpenDatabase(cfg config.DBConfig, log *logrus.Logger) (*gorm.DB, error) {
	db, err := database.NewConnection(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database connected successfully")
	return db, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	sessionStore service.SessionStore,
	images storage.ImageStore,
) (*http.Server, error) {
	// Initialize services
	jwtService := jwt.NewJWTService(cfg.App.SecretKey, cfg.Session.TTL)
	sessions := service.NewSessionService(jwtService, sessionStore, log)
	exporter := service.NewAppointmentExporter()

	customValidator := validator.NewValidator()
	flashStore := flash.NewStore(cfg.App.SecretKey, cfg.App.IsProduction())

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	siteSettingsRepo := repository.NewSiteSettingsRepository()
	homeContentRepo := repository.NewHomeContentRepository()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, sessions)
	bookingUsecase := usecase.NewPatientBookingUsecase(db, log, appointmentRepo)
	doctorUsecase := usecase.NewDoctorConsoleUsecase(db, log, appointmentRepo)
	adminUsecase := usecase.NewAdminUsecase(db, log, userRepo, appointmentRepo, sessions, exporter)
	settingsUsecase := usecase.NewSiteSettingsUsecase(db, log, siteSettingsRepo)
	homeContentUsecase := usecase.NewHomeContentUsecase(db, log, homeContentRepo, images)

	renderer, err := view.NewRenderer(flashStore, settingsUsecase, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	// Initialize handlers
	sessionCookie := middleware.NewSessionCookie(cfg.Session.CookieName, cfg.App.IsProduction())
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, renderer, flashStore, sessionCookie, sessions.TTL())
	homeHandler := handler.NewHomeHandler(homeContentUsecase, renderer)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator, renderer, flashStore)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator, renderer, flashStore)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator, renderer, flashStore)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase, customValidator, renderer, flashStore)
	homeContentHandler := handler.NewHomeContentHandler(homeContentUsecase, customValidator, renderer, flashStore, cfg.Storage.MaxUploadSize)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase, sessionCookie, flashStore, log)

	opts := deliveryHttp.Options{
		SecretKey:   cfg.App.SecretKey,
		Secure:      cfg.App.IsProduction(),
		MaxBodySize: cfg.Storage.MaxUploadSize,
		UploadsPath: cfg.Storage.PublicBaseURL,
	}
	if local, ok := images.(storage.LocalDirProvider); ok {
		opts.UploadsDir = local.LocalDir()
	}

	// Initialize router
	router := deliveryHttp.NewRouter(
		opts, log, flashStore,
		authHandler, homeHandler, bookingHandler, doctorHandler, adminHandler, settingsHandler, homeContentHandler,
		authMiddleware,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
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
