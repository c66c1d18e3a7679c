package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/stockroom/inventory-api/internal/api/handler"
	"github.com/stockroom/inventory-api/internal/api/middleware"
	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers and
// gates.
type Dependencies struct {
	Auth     ports.AuthService
	Products ports.ProductService
	Verifier ports.TokenVerifier
	// Denylist enables the revocation check on protected routes. Leave it
	// nil, not a typed nil pointer, to disable revocation.
	Denylist ports.TokenDenylist
	// Checks are the readiness probes, keyed by dependency name.
	Checks map[string]handler.Check
	// Registerer receives the HTTP metrics and, when it is also a Gatherer,
	// backs /metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	// Serve what was registered; a registerer that cannot be gathered from
	// falls back to the global registry.
	gatherer, ok := registerer.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "inventory",
		Subsystem:  "http",
		Registerer: registerer,
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	productHandler := handler.NewProductHandler(deps.Products)
	healthHandler := handler.NewHealthHandler(deps.Checks, deps.Logger)

	// Every protected route goes through a single gate middleware that
	// authenticates before it checks roles.
	authenticated := middleware.Auth(deps.Verifier, deps.Denylist)
	allow := func(roles ...domain.Role) echo.MiddlewareFunc {
		return middleware.Protect(deps.Verifier, deps.Denylist, roles...)
	}

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/me", authHandler.Me, authenticated)
	e.POST("/logout", authHandler.Logout, authenticated)

	// --- Product routes ---
	products := e.Group("/products")
	products.POST("", productHandler.Create, allow(domain.RoleAdmin))
	products.GET("", productHandler.List, allow(domain.RoleAdmin, domain.RoleManager))
	products.GET("/:productId", productHandler.Get, allow(domain.RoleAdmin, domain.RoleManager))
	products.PUT("/:productId", productHandler.Update, allow(domain.RoleAdmin, domain.RoleManager))
	products.DELETE("/:productId", productHandler.Delete, allow(domain.RoleAdmin))

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
