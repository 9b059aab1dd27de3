package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/eventsphere/eventsphere-api/docs"
	"github.com/eventsphere/eventsphere-api/internal/api/handler"
	"github.com/eventsphere/eventsphere-api/internal/api/middleware"
	"github.com/eventsphere/eventsphere-api/internal/core/service"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/config"
	mongodb "github.com/eventsphere/eventsphere-api/internal/infrastructure/db/mongo"
	redisdb "github.com/eventsphere/eventsphere-api/internal/infrastructure/db/redis"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, uploads *storage.DiskStore, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("eventsphere"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(db)
	eventRepo := mongodb.NewEventRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb, log)

	tokenService := service.NewTokenService(cfg.JWTSecret)
	authService := service.NewAuthService(identityRepo, tokenService, limiter, log)
	eventService := service.NewEventService(eventRepo, uploads, log)

	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	authGate := middleware.Auth(tokenService)

	// --- Identity routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/profile", authHandler.Profile, authGate)
	e.POST("/admin-register", authHandler.AdminRegister)
	e.POST("/admin-login", authHandler.AdminLogin)
	e.GET("/users", authHandler.ListUsers)

	// --- Event routes ---
	e.POST("/events", eventHandler.Create, authGate)
	e.GET("/events", eventHandler.List)
	e.GET("/events/:id", eventHandler.GetByID)
	e.GET("/my-events", eventHandler.MyEvents, authGate)
	e.PUT("/events/:id", eventHandler.Update, authGate)
	e.DELETE("/events/:id", eventHandler.Delete, authGate)

	// --- Static image assets ---
	e.Static("/uploads", uploads.Dir())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
