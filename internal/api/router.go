package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/jigyasu/commerce-system/docs"
	"github.com/jigyasu/commerce-system/internal/api/handler"
	"github.com/jigyasu/commerce-system/internal/api/middleware"
	"github.com/jigyasu/commerce-system/internal/core/domain"
	"github.com/jigyasu/commerce-system/internal/core/ports"
	"github.com/jigyasu/commerce-system/internal/core/service"
	"github.com/jigyasu/commerce-system/internal/infrastructure/config"
	"github.com/jigyasu/commerce-system/internal/infrastructure/db/postgres"
	"github.com/jigyasu/commerce-system/internal/infrastructure/db/redis"
	"github.com/jigyasu/commerce-system/internal/infrastructure/pricing"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	pool *pgxpool.Pool,
	rdb *goredis.Client,
	mail ports.MailDispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echoprometheus.NewMiddleware("commerce"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	requestRepo := postgres.NewRoleRequestRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	priceCache := redis.NewPriceCache(rdb)
	pricingClient := pricing.NewWebhookClient(cfg.Pricing.WebhookURL, cfg.Pricing.Timeout)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, requestRepo, tokens, log)
	roleService := service.NewRoleService(userRepo, requestRepo, log)
	cartService := service.NewCartService(userRepo, cartRepo, pricingClient, mail, priceCache, log)

	authHandler := handler.NewAuthHandler(authService)
	roleHandler := handler.NewRoleHandler(roleService)
	cartHandler := handler.NewCartHandler(cartService)

	authMW := middleware.Auth(cfg.JWTSecret)
	superuserMW := middleware.RBAC(domain.RoleSuperuser)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/role", authHandler.Role, authMW)

	// --- Role workflow (superuser only) ---
	roles := e.Group("/api/auth", authMW, superuserMW)
	roles.PUT("/update-role/:username", roleHandler.UpdateRole)
	roles.GET("/role-requests", roleHandler.ListRequests)
	roles.GET("/role-requests/search", roleHandler.SearchRequests)
	roles.PUT("/role-requests/:id", roleHandler.Decide)

	// --- Cart routes ---
	cart := e.Group("/api/cart", authMW)
	cart.POST("/submit-cart", cartHandler.Submit)
	cart.GET("/cart-submissions", cartHandler.ListSubmissions, superuserMW)
	cart.GET("/calculate-price/:id", cartHandler.CalculatePrice, superuserMW)
	cart.POST("/quote-price/:id", cartHandler.QuotePrice, superuserMW)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
