package api

// swagger:model api.RegisterUserRequest
type RegisterUserRequest struct {
	Name       string         `json:"name" form:"name" example:"Alice"`
	Email      string         `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password   string         `json:"password" form:"password" validate:"required" example:"Secret123!"`
	Role       string         `json:"role" form:"role" validate:"omitempty,oneof=admin user" example:"user"`
	Attributes map[string]any `json:"attributes,omitempty" form:"-" swaggertype:"object"`
}
