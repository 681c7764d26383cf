package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/bookkeeping_core/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_core/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterValidators()

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	RegisterAccountRoutes(v1, services.Account, services.Ledger)
	RegisterLedgerRoutes(v1, services.Ledger)
	RegisterExportRoutes(v1, services.Export)
}

// corsConfig admits the desktop shell's webview origins.
func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		CustomSchemas:    []string{"tauri"},
		MaxAge:           12 * time.Hour,
	}
}
