package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chanwihad/DashboardAppApi/internal/core/domain"
	"github.com/chanwihad/DashboardAppApi/internal/infra/config"
	"github.com/chanwihad/DashboardAppApi/internal/infra/security"
	"github.com/chanwihad/DashboardAppApi/internal/transport/http/handlers"
	"github.com/chanwihad/DashboardAppApi/internal/transport/http/middleware"
	"github.com/chanwihad/DashboardAppApi/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Auth         *usecase.AuthService
	Verification *usecase.VerificationService
	Permissions  *usecase.PermissionService
	Users        *usecase.UserService
	Roles        *usecase.RoleService
	Menus        *usecase.MenuService
	Products     *usecase.ProductService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	RateLimiter *middleware.RateLimiter
	Services    ServiceSet
	Tokens      *security.TokenIssuer
	Signer      *security.Signer
	Database    DatabaseChecker
	Cache       CacheChecker
	Metrics     *middleware.HTTPMetrics
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	requireAuth := middleware.RequireAuth(deps.Tokens)
	gate := middleware.NewSignatureGate(deps.Signer, deps.Services.Permissions, deps.Logger)

	checks := map[string]handlers.ReadinessChecker{}
	if deps.Database != nil {
		checks["database"] = deps.Database.Ping
	}
	if deps.Cache != nil {
		checks["redis"] = deps.Cache.HealthCheck
	}
	healthHandler := handlers.NewHealthHandler(checks)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		authHandler := handlers.NewAuthHandler(deps.Services.Auth, deps.Services.Verification)
		authHandler.RegisterRoutes(api.Group("/auth"), requireAuth, gate.RequireSignature(),
			loginLimiter(deps), resetLimiter(deps))

		userHandler := handlers.NewUserHandler(deps.Services.Users)
		userGroup := api.Group("/user", requireAuth)
		userHandler.RegisterRoutes(userGroup, crudGates(gate, "api/user"))

		roleHandler := handlers.NewRoleHandler(deps.Services.Roles)
		roleGroup := api.Group("/role", requireAuth)
		roleHandler.RegisterRoutes(roleGroup, crudGates(gate, "api/role"))

		menuHandler := handlers.NewMenuHandler(deps.Services.Menus)
		menuGroup := api.Group("/menu", requireAuth)
		menuHandler.RegisterRoutes(menuGroup, crudGates(gate, "api/menu"))

		productHandler := handlers.NewProductHandler(deps.Services.Products)
		productGroup := api.Group("/product", requireAuth)
		productHandler.RegisterRoutes(productGroup, crudGates(gate, "api/product"))
	}

	return r
}

// crudGates maps each HTTP verb to the action checked against the resource
// template. The template never includes record ids; the signed path does.
func crudGates(gate *middleware.SignatureGate, resource string) handlers.CRUDGates {
	return handlers.CRUDGates{
		View:   gate.Require(domain.ActionView, resource),
		Create: gate.Require(domain.ActionCreate, resource),
		Update: gate.Require(domain.ActionUpdate, resource),
		Delete: gate.Require(domain.ActionDelete, resource),
	}
}

func loginLimiter(deps Dependencies) gin.HandlerFunc {
	if deps.RateLimiter == nil {
		return nil
	}
	return deps.RateLimiter.RateLimit(middleware.RateLimitRule{
		Name:       "login",
		Limit:      deps.Config.RateLimit.LoginMaxAttempts,
		Window:     deps.Config.RateLimit.WindowDuration,
		Identifier: middleware.ClientIPIdentifier(),
	})
}

func resetLimiter(deps Dependencies) gin.HandlerFunc {
	if deps.RateLimiter == nil {
		return nil
	}
	return deps.RateLimiter.RateLimit(middleware.RateLimitRule{
		Name:       "reset",
		Limit:      deps.Config.RateLimit.ResetMaxAttempts,
		Window:     deps.Config.RateLimit.WindowDuration,
		Identifier: middleware.ClientIPIdentifier(),
	})
}
