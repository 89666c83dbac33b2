package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"wsgateway/internal/auth"
	"wsgateway/internal/service"
	"wsgateway/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler 聚合所有 HTTP handler，依赖注入 service 层与队列。
type Handler struct {
	userSvc *service.UserService
	queue   ws.Queue
}

func NewHandler(userSvc *service.UserService, queue ws.Queue) *Handler {
	return &Handler{userSvc: userSvc, queue: queue}
}

// fail 输出统一的 JSON 错误响应 {error, status, ok:false}。
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg, "status": status, "ok": false})
}

// Register 处理用户注册请求。
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Username) < 2 || len(req.Username) > 64 {
		fail(c, http.StatusBadRequest, "invalid username")
		return
	}
	if len(req.Password) < 4 || len(req.Password) > 128 {
		fail(c, http.StatusBadRequest, "invalid password")
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			fail(c, http.StatusConflict, "username taken")
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("register")
		fail(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// Login 处理用户登录请求。
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "invalid payload")
		return
	}
	token, err := h.userSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "user does not exist")
			return
		}
		if errors.Is(err, service.ErrWrongPassword) {
			fail(c, http.StatusUnauthorized, "password does not match")
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("login")
		fail(c, http.StatusInternalServerError, "login failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authToken": token})
}

// Logout 清空当前身份的持久化 token。
func (h *Handler) Logout(c *gin.Context) {
	username := auth.GetUsername(c)
	if err := h.userSvc.Logout(c.Request.Context(), username); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "user does not exist")
			return
		}
		log.Error().Err(err).Str("username", username).Msg("logout")
		fail(c, http.StatusInternalServerError, "logout failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "authToken": nil})
}

// UserInfo 返回当前身份的只读投影。
func (h *Handler) UserInfo(c *gin.Context) {
	username := auth.GetUsername(c)
	user, err := h.userSvc.Info(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "user does not exist")
			return
		}
		log.Error().Err(err).Str("username", username).Msg("user info")
		fail(c, http.StatusInternalServerError, "user info failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username})
}

// Health 探测队列后端连通性。
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.queue.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("health check")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "queue": "disconnected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "queue": "connected"})
}
