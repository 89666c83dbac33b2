package main

import (
	"context"
	"time"

	"wsgateway/internal/config"
	"wsgateway/internal/db"
	clog "wsgateway/internal/log"
	"wsgateway/internal/queue"
	"wsgateway/internal/server"
	"wsgateway/internal/store"

	"github.com/rs/zerolog/log"
)

func main() {
	// main 负责加载配置、初始化日志、连接数据库与 Redis 并启动 Gin 服务。
	cfg := config.Load()
	clog.Init(cfg.Env)

	gdb, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	q := queue.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	defer func() { _ = q.Close() }()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := q.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis not reachable yet")
	}
	cancel()

	r := server.SetupRouter(cfg, store.NewGormUsers(gdb), q)
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server run")
	}
}
