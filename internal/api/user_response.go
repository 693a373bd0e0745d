package api

import (
	"time"

	"blog-server/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID         string         `json:"id" example:"7f1c9a0e-3b8e-4c55-9a57-0c1f7d2f4e11"`
	Name       string         `json:"name" example:"Alice"`
	Email      string         `json:"email" example:"alice@example.com"`
	Role       string         `json:"role" example:"user"`
	Attributes map[string]any `json:"attributes,omitempty" swaggertype:"object"`
	CreatedAt  time.Time      `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse 轉換 model.User，不含密碼雜湊
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Attributes: u.Attributes,
		CreatedAt:  u.CreatedAt,
	}
}

func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// swagger:model api.RegisterResponse
type RegisterResponse struct {
	Created bool          `json:"created" example:"true"`
	Message string        `json:"message" example:"User created successfully"`
	User    *UserResponse `json:"user,omitempty"`
}

// swagger:model api.IsAdminResponse
type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin" example:"false"`
}
