package httpserver

import (
	"fmt"
	"net/http"

	"customer-service/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// buildRouter wires routes for the API.
func buildRouter(log *zap.Logger, deps Deps) (*gin.Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	corsCfg := corsConfig(deps.AllowOrigins)
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors config: %w", err)
	}

	router := gin.New()
	router.Use(logger.GinMiddleware(log), logger.Recovery(log), cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Customers))

	if deps.Customers != nil {
		h := &customerHandler{svc: deps.Customers}
		group := router.Group("/Customer")
		group.GET("/all", h.list)
		group.GET("/:id", h.get)
		group.POST("", h.create)
		group.PUT("/:id", h.update)
		group.DELETE("/:id", h.remove)
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Accept", logger.RequestIDHeader)
	cfg.ExposeHeaders = []string{"Location", logger.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
