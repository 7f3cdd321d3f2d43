package app

import (
	"context"
	"fmt"

	"github.com/hari2128-cell/CureVox/database"
	"github.com/hari2128-cell/CureVox/internal/auth"
	"github.com/hari2128-cell/CureVox/internal/config"
	"github.com/hari2128-cell/CureVox/internal/handlers"
	"github.com/hari2128-cell/CureVox/internal/identity"
	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/metrics"
	"github.com/hari2128-cell/CureVox/internal/middleware"
	"github.com/hari2128-cell/CureVox/internal/repositories"
	"github.com/hari2128-cell/CureVox/internal/routes"
	"github.com/hari2128-cell/CureVox/internal/services"
	"github.com/hari2128-cell/CureVox/internal/storage"
	"github.com/hari2128-cell/CureVox/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run wires the whole application and blocks serving HTTP.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	return SetupRouterWithVerifier(cfg, gormDB, buildVerifier(cfg))
}

// SetupRouterWithVerifier is SetupRouter with an injected identity verifier.
// Tests pass a static verifier here so sign-in works without the real
// provider.
func SetupRouterWithVerifier(cfg *config.Config, gormDB *gorm.DB, verifier identity.Verifier) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	collector := metrics.NewCollector()

	serviceContainer := services.NewServiceContainer(verifier, tokens, storageInstance, collector)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance, verifier)

	janitor := services.NewSessionJanitor(repositories.NewSessionRepository(), collector, cfg.JWT.RefreshTTL)
	janitor.Start(context.Background(), gormDB)

	ginRouter := initializeGinRouter(cfg, gormDB, collector)
	routes.RegisterRoutes(ginRouter, cfg, appHandlers, tokens, serviceContainer.AuthService, collector)

	return ginRouter
}

// buildVerifier picks the identity verifier. Development without a project
// ID gets the static verifier so the stack runs fully offline.
func buildVerifier(cfg *config.Config) identity.Verifier {
	if cfg.Identity.ProjectID == "" || cfg.Identity.InsecureSkipVerify {
		logger.Warn("Identity verification disabled, using static verifier (development only)")
		return identity.NewStaticVerifier()
	}
	return identity.NewGoogleVerifier(cfg.Identity.ProjectID, cfg.Identity.CertsURL, cfg.Identity.Timeout)
}

func initializeHandlers(cfg *config.Config, sc *services.ServiceContainer, store storage.Storage, verifier identity.Verifier) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, sc.AuthService, sc.UserService),
		DiagnosisHandler: handlers.NewDiagnosisHandler(
			baseHandler,
			sc.DiagnosisService,
			cfg.Upload.ImageExtensions,
			cfg.Upload.AudioExtensions,
			cfg.Upload.MaxSize,
		),
		ReportHandler: handlers.NewReportHandler(baseHandler, sc.ReportService),
		HealthHandler: handlers.NewHealthHandler(baseHandler, store, verifier),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, collector *metrics.Collector) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(collector))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	return router
}
