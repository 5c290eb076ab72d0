// Package router 提供 HTTP 路由配置
package router

import (
	"pagesmith-ai-api/internal/config"
	"pagesmith-ai-api/internal/interfaces/http/handler"
	"pagesmith-ai-api/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router HTTP 路由器
type Router struct {
	engine      *gin.Engine
	cfg         *config.Config
	rateLimiter middleware.RateLimiter

	health    *handler.HealthHandler
	provider  *handler.ProviderHandler
	generate  *handler.GenerateHandler
	deploy    *handler.DeployHandler
	remix     *handler.RemixHandler
}

// New 创建新的路由器
func New(
	cfg *config.Config,
	rateLimiter middleware.RateLimiter,
	healthHandler *handler.HealthHandler,
	providerHandler *handler.ProviderHandler,
	generateHandler *handler.GenerateHandler,
	deployHandler *handler.DeployHandler,
	remixHandler *handler.RemixHandler,
) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := &Router{
		engine:      gin.New(),
		cfg:         cfg,
		rateLimiter: rateLimiter,
		health:      healthHandler,
		provider:    providerHandler,
		generate:    generateHandler,
		deploy:      deployHandler,
		remix:       remixHandler,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	r.engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: r.cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: r.cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: r.cfg.Security.CORS.AllowedHeaders,
	}))

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name))
		r.engine.Use(middleware.TraceContext())
	}

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           r.cfg.RateLimit.Enabled,
		RequestsPerSecond: r.cfg.RateLimit.RequestsPerSecond,
		KeyPrefix:         r.cfg.RateLimit.KeyPrefix,
	}, r.rateLimiter))

	r.engine.Use(middleware.Identity())
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	// 系统端点
	r.engine.GET("/health", r.health.Health)
	r.engine.GET("/ready", r.health.Ready)
	r.engine.GET("/live", r.health.Live)

	// Prometheus 指标端点
	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	v1 := r.engine.Group("/v1")
	RegisterV1Routes(v1, r.provider, r.generate, r.deploy, r.remix)
}
