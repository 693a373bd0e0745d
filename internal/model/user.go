// File: internal/model/user.go
package model

import "time"

// Role 使用者角色標籤
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role tag.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// MaxAttributes 額外欄位數量上限
const MaxAttributes = 32

// Attributes 不透明的額外欄位，以 JSONB 儲存
type Attributes map[string]any

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         Role       `db:"role" json:"role"`
	Attributes   Attributes `db:"attributes" json:"attributes,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// IsAdmin 未設定角色時視為一般使用者
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserInput 註冊時由呼叫端提供的欄位
type UserInput struct {
	Email      string
	Name       string
	Password   string
	Role       Role
	Attributes Attributes
}
