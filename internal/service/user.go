package service

import (
	"context"
	"errors"

	"wsgateway/internal/auth"
	"wsgateway/internal/config"
	"wsgateway/internal/models"
	"wsgateway/internal/store"
)

// UserService 封装注册/登录/登出等用户业务逻辑。
type UserService struct {
	users store.Users
	cfg   config.Config
}

func NewUserService(users store.Users, cfg config.Config) *UserService {
	return &UserService{users: users, cfg: cfg}
}

// Register 注册新用户；用户名已存在时返回 ErrUsernameTaken。
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	_, err := s.users.Load(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 校验用户名密码，签发 token 并持久化到用户记录后返回。
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.Load(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", ErrWrongPassword
	}
	token, err := auth.GenerateToken(username, s.cfg.JWTSecret, s.cfg.AuthTokenTTLDays)
	if err != nil {
		return "", err
	}
	user.AuthToken = token
	if err := s.users.Save(ctx, user); err != nil {
		return "", err
	}
	return token, nil
}

// Logout 清空当前身份的持久化 token。
func (s *UserService) Logout(ctx context.Context, username string) error {
	user, err := s.users.Load(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	user.AuthToken = ""
	return s.users.Save(ctx, user)
}

// Info 只读投影，返回用户记录。
func (s *UserService) Info(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.Load(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
