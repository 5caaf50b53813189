package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ryzetech/lifestyle-api/docs"
	"github.com/ryzetech/lifestyle-api/internal/api/handler"
	"github.com/ryzetech/lifestyle-api/internal/api/middleware"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Sessions ports.SessionService
	Tokens   middleware.TokenParser
	// Mongo and Redis are optional; they only feed the readiness check.
	Mongo *mongo.Database
	Redis *redis.Client
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "http",
		Registerer:                deps.Registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	authHandler := handler.NewAuthHandler(deps.Sessions)
	catalogHandler := handler.NewCatalogHandler(deps.Sessions)
	purchaseHandler := handler.NewPurchaseHandler(deps.Sessions)
	documentHandler := handler.NewDocumentHandler(deps.Sessions)
	tutorHandler := handler.NewTutorHandler(deps.Sessions)

	withSession := middleware.Session(deps.Tokens)
	loggedIn := middleware.RequireLogin(deps.Sessions)

	v1 := e.Group("/v1")

	// --- Public routes ---
	v1.POST("/sessions", sessionHandler.Create)
	v1.GET("/catalog/packages", catalogHandler.Packages)
	v1.GET("/catalog/subscriptions", catalogHandler.Subscriptions)
	v1.POST("/mixer/quote", catalogHandler.Quote)

	// --- Session routes (anonymous sessions allowed) ---
	v1.GET("/session", sessionHandler.Get, withSession)
	v1.GET("/notification", sessionHandler.Notification, withSession)
	v1.POST("/navigate", sessionHandler.Navigate, withSession)
	v1.POST("/auth/login", authHandler.Login, withSession)
	v1.POST("/auth/logout", authHandler.Logout, withSession)
	v1.GET("/confirmation", purchaseHandler.Pending, withSession)
	v1.POST("/confirmation/cancel", purchaseHandler.Cancel, withSession)
	v1.GET("/documents", documentHandler.Search, withSession)

	// --- Logged-in routes ---
	v1.POST("/onboarding", authHandler.Onboard, withSession, loggedIn)

	purchases := v1.Group("/purchases", withSession, loggedIn)
	purchases.POST("/packages", purchaseHandler.Package)
	purchases.POST("/mixer", purchaseHandler.Mix)
	purchases.POST("/documents", purchaseHandler.Document)
	purchases.POST("/subscriptions", purchaseHandler.Subscription)

	v1.POST("/confirmation/confirm", purchaseHandler.Confirm, withSession, loggedIn)

	v1.GET("/documents/library", documentHandler.Library, withSession, loggedIn)
	v1.POST("/documents", documentHandler.Upload, withSession, loggedIn)
	v1.POST("/documents/:id/preview", documentHandler.OpenPreview, withSession, loggedIn)
	v1.GET("/preview", documentHandler.Preview, withSession, loggedIn)
	v1.DELETE("/preview", documentHandler.ClosePreview, withSession)

	v1.GET("/tutor/messages", tutorHandler.Messages, withSession, loggedIn)
	v1.POST("/tutor/messages", tutorHandler.Send, withSession, loggedIn)

	// --- Health checks, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
