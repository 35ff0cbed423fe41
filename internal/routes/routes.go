package routes

import (
	"campcrew-funnel/internal/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	r *gin.Engine,
	submitHandler *handlers.SubmitHandler,
	sessionHandler *handlers.SessionHandler,
	catalogHandler *handlers.CatalogHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	// ---- ops
	r.GET("/healthz", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ---- record store proxy
	r.Any("/api/submit", submitHandler.Handle)

	// ---- catalog
	r.GET("/api/budgets", catalogHandler.Budgets)
	r.GET("/api/catalog/:budget", catalogHandler.Plans)
	r.GET("/api/agreements", catalogHandler.Agreements)

	// ---- sessions
	sessions := r.Group("/api/sessions")
	{
		sessions.POST("", sessionHandler.Create)
		sessions.GET("/:id", sessionHandler.Get)
		sessions.DELETE("/:id", sessionHandler.Delete)
		sessions.POST("/:id/actions", sessionHandler.Dispatch)
		sessions.GET("/:id/summary", sessionHandler.Summary)
	}

	return r
}
