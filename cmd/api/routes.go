package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ligandscope/core/cmd/api/middleware"
	"github.com/ligandscope/core/internal/handlers"
)

func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogging(a.log.Named("http"), "/health", "/metrics"),
		middleware.Metrics(a.metrics),
		middleware.Cors(a.cfg.Server.AllowedOrigin),
	)

	r.GET("/health", handlers.HealthHandler(a.store))
	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	api := handlers.NewAPI(a.explorer, a.store, a.cfg.Render, a.metrics, a.log)
	api.Register(r.Group("/api/v1"))
	return r
}
