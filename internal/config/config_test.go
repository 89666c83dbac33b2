package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_PORT")
	os.Unsetenv("DATABASE_DSN")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_PASSWORD")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("APP_ENV")
	os.Unsetenv("AUTH_TOKEN_EXPIRE_DAYS")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Load() Port = %v, want 8080", cfg.Port)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Load() RedisAddr = %v, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.Env != "dev" {
		t.Errorf("Load() Env = %v, want dev", cfg.Env)
	}
	if cfg.AuthTokenTTLDays != 30 {
		t.Errorf("Load() AuthTokenTTLDays = %v, want 30", cfg.AuthTokenTTLDays)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("APP_PORT", "9090")
	os.Setenv("DATABASE_DSN", "host=db user=x dbname=y")
	os.Setenv("REDIS_ADDR", "redis:6380")
	os.Setenv("REDIS_PASSWORD", "pw")
	os.Setenv("JWT_SECRET", "my-secret")
	os.Setenv("APP_ENV", "prod")
	os.Setenv("AUTH_TOKEN_EXPIRE_DAYS", "7")
	defer func() {
		os.Unsetenv("APP_PORT")
		os.Unsetenv("DATABASE_DSN")
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("REDIS_PASSWORD")
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("APP_ENV")
		os.Unsetenv("AUTH_TOKEN_EXPIRE_DAYS")
	}()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Load() Port = %v, want 9090", cfg.Port)
	}
	if cfg.DatabaseDSN != "host=db user=x dbname=y" {
		t.Errorf("Load() DatabaseDSN = %v", cfg.DatabaseDSN)
	}
	if cfg.RedisAddr != "redis:6380" {
		t.Errorf("Load() RedisAddr = %v, want redis:6380", cfg.RedisAddr)
	}
	if cfg.RedisPassword != "pw" {
		t.Errorf("Load() RedisPassword = %v, want pw", cfg.RedisPassword)
	}
	if cfg.JWTSecret != "my-secret" {
		t.Errorf("Load() JWTSecret = %v, want my-secret", cfg.JWTSecret)
	}
	if cfg.Env != "prod" {
		t.Errorf("Load() Env = %v, want prod", cfg.Env)
	}
	if cfg.AuthTokenTTLDays != 7 {
		t.Errorf("Load() AuthTokenTTLDays = %v, want 7", cfg.AuthTokenTTLDays)
	}
}
