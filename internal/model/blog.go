// File: internal/model/blog.go
package model

import "time"

// Status 文章審核狀態
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Valid reports whether s is one of the two moderation states.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved
}

type Blog struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	AuthorEmail string     `db:"author_email" json:"author_email"`
	Status      Status     `db:"status" json:"status"`
	Attributes  Attributes `db:"attributes" json:"attributes,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// BlogInput 投稿內容，status 一律由伺服器決定
type BlogInput struct {
	Title       string
	Content     string
	AuthorEmail string
	Attributes  Attributes
}
