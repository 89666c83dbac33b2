package ws

import (
	"net/http"

	"wsgateway/internal/auth"
	"wsgateway/internal/config"
	"wsgateway/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Serve 处理 websocket 升级：token 先于升级校验，校验失败不会启动任何循环。
func Serve(cfg config.Config, q Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.BearerToken(c)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "status": http.StatusUnauthorized, "ok": false})
			return
		}
		username, err := auth.ParseToken(tokenStr, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "status": http.StatusUnauthorized, "ok": false})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Str("username", username).Msg("ws upgrade")
			return
		}

		metrics.WsSessions.Inc()
		defer metrics.WsSessions.Dec()
		log.Info().Str("username", username).Msg("ws session opened")

		sess := NewSession(username, conn, q, DefaultPingInterval)
		sess.Run(c.Request.Context())

		log.Info().Str("username", username).Msg("ws session closed")
	}
}
