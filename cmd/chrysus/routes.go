package main

import (
	"github.com/MGabeD/chrysus/internal/config"
	"github.com/MGabeD/chrysus/internal/demo"
	"github.com/MGabeD/chrysus/internal/handlers"
	"github.com/MGabeD/chrysus/internal/middleware"
	"github.com/MGabeD/chrysus/internal/session"
	"github.com/MGabeD/chrysus/internal/views"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const demoHolderCount = 4

func newDemoBackend() views.BackendInterface {
	return demo.NewStub(demoHolderCount, 0)
}

// newRouter wires the echo instance: global middleware, session and
// view routes, upload, health, and the metrics endpoint.
func newRouter(cfg *config.Config, store *session.Store, manager *views.Manager) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst).Middleware())

	sessionHandler := handlers.NewSessionHandler(store, manager)
	viewHandler := handlers.NewViewHandler(manager, cfg.Views.TopCategories)
	uploadHandler := handlers.NewUploadHandler(manager)
	healthHandler := handlers.NewHealthCheckHandler()

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	sessionGroup := api.Group("/session")
	sessionGroup.GET("", sessionHandler.GetSession)
	sessionGroup.PUT("/holder", sessionHandler.SelectHolder)
	sessionGroup.DELETE("/holder", sessionHandler.ClearHolder)
	sessionGroup.PUT("/mode", sessionHandler.SelectMode)
	sessionGroup.POST("/roster/refresh", sessionHandler.RefreshRoster)

	viewGroup := api.Group("/views")
	viewGroup.GET("/aggregate", viewHandler.GetAggregate)
	viewGroup.GET("/transactions", viewHandler.GetTransactions)
	viewGroup.GET("/tables", viewHandler.GetTables)
	viewGroup.GET("/recommendations", viewHandler.GetRecommendations)
	viewGroup.POST("/:mode/retry", viewHandler.Retry)

	api.POST("/upload", uploadHandler.Upload)

	return e
}
