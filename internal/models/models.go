package models

import "time"

// User 凭据记录，username 是唯一键，AuthToken 为空表示已登出。
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"not null"`
	AuthToken    string `gorm:"size:512"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
