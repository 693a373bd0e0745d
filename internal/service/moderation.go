package service

import (
	"context"
	"fmt"

	"blog-server/internal/database"
	"blog-server/internal/metrics"
	"blog-server/internal/model"
	"blog-server/internal/store"

	"go.uber.org/zap"
)

var (
	createBlog        = store.CreateBlog
	listBlogs         = store.ListBlogs
	listBlogsByStatus = store.ListBlogsByStatus
	getBlogByID       = store.GetBlogByID
	deleteBlogByID    = store.DeleteBlogByID
	approveBlogByID   = store.ApproveBlogByID
)

// DeleteResult Deleted=false 表示文章本來就不存在
type DeleteResult struct {
	Deleted bool
}

// UpdateResult Updated 表示找到文章；Modified 表示狀態確實改變
type UpdateResult struct {
	Updated  bool
	Modified bool
}

// BlogModeration 管理文章與審核狀態機：
// pending --approve--> approved；任一狀態皆可刪除
type BlogModeration struct {
	db       database.DB
	notifier Notifier
	logger   *zap.Logger
}

// NewBlogModeration notifier 可為 nil
func NewBlogModeration(db database.DB, notifier Notifier, logger *zap.Logger) *BlogModeration {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogModeration{db: db, notifier: notifier, logger: logger}
}

func (m *BlogModeration) notify(ctx context.Context, t EventType, blogID string) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(ctx, newEvent(t, blogID))
}

// Submit 無論呼叫端提供什麼狀態，新文章一律為 pending
func (m *BlogModeration) Submit(ctx context.Context, in model.BlogInput) (*model.Blog, error) {
	if len(in.Attributes) > model.MaxAttributes {
		return nil, ErrTooManyAttributes
	}
	b, err := createBlog(ctx, m.db, &model.Blog{
		Title:       in.Title,
		Content:     in.Content,
		AuthorEmail: normalizeEmail(in.AuthorEmail),
		Status:      model.StatusPending,
		Attributes:  in.Attributes,
	})
	if err != nil {
		return nil, fmt.Errorf("Submit: %w", err)
	}
	metrics.ModerationActionsTotal.WithLabelValues("submit", "created").Inc()
	m.notify(ctx, EventBlogSubmitted, b.ID)
	return b, nil
}

func (m *BlogModeration) ListAll(ctx context.Context) ([]model.Blog, error) {
	blogs, err := listBlogs(ctx, m.db)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return blogs, nil
}

func (m *BlogModeration) ListByStatus(ctx context.Context, status model.Status) ([]model.Blog, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	blogs, err := listBlogsByStatus(ctx, m.db, status)
	if err != nil {
		return nil, fmt.Errorf("ListByStatus: %w", err)
	}
	return blogs, nil
}

func (m *BlogModeration) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	b, err := getBlogByID(ctx, m.db, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return b, nil
}

// DeleteByID 不存在的文章回傳 Deleted=false，不視為錯誤
func (m *BlogModeration) DeleteByID(ctx context.Context, id string) (*DeleteResult, error) {
	deleted, err := deleteBlogByID(ctx, m.db, id)
	if err != nil {
		return nil, fmt.Errorf("DeleteByID: %w", err)
	}
	if !deleted {
		metrics.ModerationActionsTotal.WithLabelValues("delete", "missing").Inc()
		return &DeleteResult{Deleted: false}, nil
	}
	metrics.ModerationActionsTotal.WithLabelValues("delete", "deleted").Inc()
	m.logger.Info("blog deleted", zap.String("blog_id", id))
	m.notify(ctx, EventBlogDeleted, id)
	return &DeleteResult{Deleted: true}, nil
}

// ApproveByID 無條件設為 approved；重複核准為冪等操作
func (m *BlogModeration) ApproveByID(ctx context.Context, id string) (*UpdateResult, error) {
	matched, modified, err := approveBlogByID(ctx, m.db, id)
	if err != nil {
		return nil, fmt.Errorf("ApproveByID: %w", err)
	}
	switch {
	case !matched:
		metrics.ModerationActionsTotal.WithLabelValues("approve", "missing").Inc()
	case !modified:
		metrics.ModerationActionsTotal.WithLabelValues("approve", "unchanged").Inc()
	default:
		metrics.ModerationActionsTotal.WithLabelValues("approve", "modified").Inc()
		m.logger.Info("blog approved", zap.String("blog_id", id))
		m.notify(ctx, EventBlogApproved, id)
	}
	return &UpdateResult{Updated: matched, Modified: modified}, nil
}
