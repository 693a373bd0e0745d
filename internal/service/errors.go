package service

import (
	"errors"

	"blog-server/internal/store"
)

var (
	// ErrNotFound 使用者或文章不存在
	ErrNotFound = store.ErrNotFound
	// ErrInvalidCredentials 密碼不符
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidStatus 審核狀態只能是 pending 或 approved
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidRole 角色只能是 admin 或 user
	ErrInvalidRole = errors.New("invalid role")
	// ErrTooManyAttributes 額外欄位超過上限
	ErrTooManyAttributes = errors.New("too many attributes")
)
