package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/andestravel/travel-requests/internal/api/handler"
	"github.com/andestravel/travel-requests/internal/api/middleware"
	"github.com/andestravel/travel-requests/internal/core/domain"
	"github.com/andestravel/travel-requests/internal/core/ports"
	"github.com/andestravel/travel-requests/internal/core/service"
	healthhandlers "github.com/andestravel/travel-requests/internal/infrastructure/http/handlers"
)

// Dependencies bundles everything the router needs wired in.
type Dependencies struct {
	Mongo       *mongo.Database
	Redis       *redis.Client
	Tokens      *service.TokenService
	AuthService ports.AuthService
	Requests    ports.RequestService
	GitHub      ports.OAuthProvider
	States      handler.StateStore
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddleware("travel_requests"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.GitHub, deps.States)
	requestHandler := handler.NewRequestHandler(deps.Requests)
	authRequired := middleware.Auth(deps.Tokens)
	agentOnly := middleware.RBAC(domain.RoleAgent)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authRequired)
	auth.GET("/clients", authHandler.Clients, authRequired, agentOnly)
	auth.GET("/github/login", authHandler.GitHubLogin)
	auth.GET("/github/callback", authHandler.GitHubCallback)
	auth.POST("/github/callback", authHandler.GitHubCallback)

	// --- Trip request routes (all authenticated) ---
	requests := e.Group("/api/requests", authRequired)
	requests.GET("", requestHandler.List)
	requests.POST("", requestHandler.Create)
	requests.PUT("/:id", requestHandler.Update)
	requests.DELETE("/:id", requestHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
