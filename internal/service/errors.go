package service

import "errors"

// 业务层通用错误，handler 根据错误类型映射到对应的 HTTP 状态码。
var (
	ErrUsernameTaken = errors.New("username taken")
	ErrUserNotFound  = errors.New("user does not exist")
	ErrWrongPassword = errors.New("password does not match")
)
