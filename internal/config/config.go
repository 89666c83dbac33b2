package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             string
	DatabaseDSN      string
	RedisAddr        string
	RedisPassword    string
	JWTSecret        string
	Env              string
	AuthTokenTTLDays int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	port := getenv("APP_PORT", "8080")
	dsn := getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=wsgateway port=5432 sslmode=disable TimeZone=UTC")
	redisAddr := getenv("REDIS_ADDR", "localhost:6379")
	redisPassword := getenv("REDIS_PASSWORD", "")
	secret := getenv("JWT_SECRET", "dev-secret-change-me")
	env := getenv("APP_ENV", "dev")
	ttlStr := getenv("AUTH_TOKEN_EXPIRE_DAYS", "30")
	ttl, _ := strconv.Atoi(ttlStr)
	return Config{
		Port:             port,
		DatabaseDSN:      dsn,
		RedisAddr:        redisAddr,
		RedisPassword:    redisPassword,
		JWTSecret:        secret,
		Env:              env,
		AuthTokenTTLDays: ttl,
	}
}
