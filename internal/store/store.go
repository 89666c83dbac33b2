package store

import (
	"context"
	"errors"

	"wsgateway/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 表示凭据库中不存在该用户名。
var ErrNotFound = errors.New("user not found")

// Users 凭据存储接口：一个用户名对应一条 {username, password_hash, auth_token} 记录。
// 认证操作的状态变更必须落盘成功才算完成。
type Users interface {
	Load(ctx context.Context, username string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
}

// GormUsers 基于 gorm/Postgres 的凭据存储实现。
type GormUsers struct {
	db *gorm.DB
}

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (s *GormUsers) Load(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Save 按 username 做 upsert，整条记录写入。
func (s *GormUsers) Save(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "auth_token", "updated_at"}),
	}).Create(u).Error
}
