package api

import (
	"time"

	"blog-server/internal/model"
)

// SubmitBlogRequest 投稿內容；status 欄位即使送出也會被忽略
// swagger:model api.SubmitBlogRequest
type SubmitBlogRequest struct {
	Title      string         `json:"title" form:"title" validate:"required,max=300" example:"Hello"`
	Content    string         `json:"content" form:"content" validate:"max=100000" example:"First post"`
	Status     string         `json:"status,omitempty" form:"status" swaggerignore:"true"`
	Attributes map[string]any `json:"attributes,omitempty" form:"-" swaggertype:"object"`
}

// swagger:model api.BlogResponse
type BlogResponse struct {
	ID          string         `json:"id" example:"2b0f6c1e-5d0c-4a8e-8f8a-3f0e4b1d9c77"`
	Title       string         `json:"title" example:"Hello"`
	Content     string         `json:"content" example:"First post"`
	AuthorEmail string         `json:"author_email" example:"alice@example.com"`
	Status      string         `json:"status" example:"pending"`
	Attributes  map[string]any `json:"attributes,omitempty" swaggertype:"object"`
	CreatedAt   time.Time      `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

func NewBlogResponse(b model.Blog) BlogResponse {
	return BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Content:     b.Content,
		AuthorEmail: b.AuthorEmail,
		Status:      string(b.Status),
		Attributes:  b.Attributes,
		CreatedAt:   b.CreatedAt,
	}
}

func NewBlogResponses(blogs []model.Blog) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, NewBlogResponse(b))
	}
	return out
}

// swagger:model api.DeleteResponse
type DeleteResponse struct {
	Deleted bool `json:"deleted" example:"true"`
}

// swagger:model api.ApproveResponse
type ApproveResponse struct {
	Updated  bool `json:"updated" example:"true"`
	Modified bool `json:"modified" example:"true"`
}
