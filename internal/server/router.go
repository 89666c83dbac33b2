package server

import (
	"time"

	"wsgateway/internal/auth"
	"wsgateway/internal/config"
	"wsgateway/internal/metrics"
	"wsgateway/internal/mw"
	"wsgateway/internal/service"
	"wsgateway/internal/store"
	"wsgateway/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// SetupRouter 统一初始化 Gin 中间件、REST API 以及 WebSocket 端点。
func SetupRouter(cfg config.Config, users store.Users, q ws.Queue) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(mw.CORS())
	r.Use(mw.RateLimit(rate.Every(time.Second/20), 40))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := NewHandler(service.NewUserService(users, cfg), q)

	api := r.Group("/api/v1")
	api.GET("/health", h.Health)
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.GET("/ws", ws.Serve(cfg, q))

	authed := api.Group("")
	authed.Use(auth.Middleware(cfg))
	authed.POST("/logout", h.Logout)
	authed.GET("/user", h.UserInfo)

	return r
}
