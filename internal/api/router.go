package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/app"
	iauth "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/auth"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/handlers"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/live"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/middleware"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, liveReg *live.Registry, pipeline *alarm.Pipeline, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if liveReg == nil {
		return nil, fmt.Errorf("live registry must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// Health endpoint (public)
	r.GET("/health", handlers.Health())

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	if err := registerAuthRoutes(r, db, jwt); err != nil {
		return nil, err
	}

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.Auth(jwt))

	if err := registerCommunityRoutes(api, db, pipeline); err != nil {
		return nil, err
	}
	if err := registerAlarmRoutes(api, db, liveReg, cfg); err != nil {
		return nil, err
	}

	return r, nil
}
