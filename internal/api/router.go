package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/startkit/accounts-api/docs"
	"github.com/startkit/accounts-api/internal/api/handler"
	"github.com/startkit/accounts-api/internal/api/middleware"
	"github.com/startkit/accounts-api/internal/core/ports"
	"github.com/startkit/accounts-api/internal/core/service"
	"github.com/startkit/accounts-api/internal/pkg/config"
	mongodb "github.com/startkit/accounts-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// All dependencies are constructed here, once, and passed down explicitly;
// there are no lazily initialised globals. rdb may be nil when no secret
// store is configured.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	userService := service.NewUserService(userRepo, log)
	tokenIssuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())

	registerAPIRoutes(e, userService, tokenIssuer, tokenIssuer)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// registerAPIRoutes mounts the versioned API onto e. The three-tier
// middleware chain (authenticated → active → superuser) mirrors the
// authorization model: each tier is a strict superset of the previous one.
func registerAPIRoutes(e *echo.Echo, users ports.UserService, issuer ports.TokenIssuer, verifier ports.TokenVerifier) {
	authHandler := handler.NewAuthHandler(users, issuer)
	userHandler := handler.NewUserHandler(users)

	authn := middleware.Auth(verifier, users)
	active := middleware.RequireActive()
	superuser := middleware.RequireSuperuser()

	v1 := e.Group("/api/v1")

	v1.POST("/auth/login", authHandler.Login)

	group := v1.Group("/users", authn)
	group.GET("/me", userHandler.Me, active)
	group.PUT("/me", userHandler.UpdateMe, active)
	group.POST("", userHandler.Create, active, superuser)
	group.GET("", userHandler.List, active, superuser)
	group.GET("/:id", userHandler.Get, active, superuser)
	group.PUT("/:id", userHandler.Update, active, superuser)
	group.DELETE("/:id", userHandler.Deactivate, active, superuser)
}
