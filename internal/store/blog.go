package store

import (
	"context"
	"errors"
	"fmt"

	"blog-server/internal/database"
	"blog-server/internal/model"

	"github.com/jackc/pgx/v5"
)

const blogColumns = `id, title, content, author_email, status, attributes, created_at`

func scanBlog(row scanner) (*model.Blog, error) {
	b := &model.Blog{}
	if err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Content,
		&b.AuthorEmail,
		&b.Status,
		&b.Attributes,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return b, nil
}

func queryBlogs(ctx context.Context, db database.DB, sql string, args ...any) ([]model.Blog, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []model.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *b)
	}
	return blogs, rows.Err()
}

func CreateBlog(ctx context.Context, db database.DB, b *model.Blog) (*model.Blog, error) {
	b.ID = newID()
	b.Attributes = attributesOrEmpty(b.Attributes)
	row := db.QueryRow(ctx,
		`INSERT INTO blogs (id, title, content, author_email, status, attributes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		b.ID,
		b.Title,
		b.Content,
		b.AuthorEmail,
		b.Status,
		b.Attributes,
	)
	if err := row.Scan(&b.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateBlog: %w", err)
	}
	return b, nil
}

func ListBlogs(ctx context.Context, db database.DB) ([]model.Blog, error) {
	blogs, err := queryBlogs(ctx, db,
		`SELECT `+blogColumns+`
		 FROM blogs ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListBlogs: %w", err)
	}
	return blogs, nil
}

func ListBlogsByStatus(ctx context.Context, db database.DB, status model.Status) ([]model.Blog, error) {
	blogs, err := queryBlogs(ctx, db,
		`SELECT `+blogColumns+`
		 FROM blogs WHERE status = $1 ORDER BY seq`,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("ListBlogsByStatus: %w", err)
	}
	return blogs, nil
}

func GetBlogByID(ctx context.Context, db database.DB, id string) (*model.Blog, error) {
	row := db.QueryRow(ctx,
		`SELECT `+blogColumns+`
		 FROM blogs WHERE id = $1`,
		id,
	)
	b, err := scanBlog(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("GetBlogByID: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetBlogByID: %w", err)
	}
	return b, nil
}

// DeleteBlogByID 回傳是否真的刪除了一筆資料，不存在時不視為錯誤
func DeleteBlogByID(ctx context.Context, db database.DB, id string) (bool, error) {
	tag, err := db.Exec(ctx,
		`DELETE FROM blogs WHERE id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("DeleteBlogByID: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ApproveBlogByID 無條件將狀態設為 approved
// matched 表示找到該文章；modified 表示狀態確實由其他值改變
// prev 以 FOR UPDATE 鎖列，並發核准時只有第一個會看到非 approved 的舊狀態
func ApproveBlogByID(ctx context.Context, db database.DB, id string) (matched bool, modified bool, err error) {
	row := db.QueryRow(ctx,
		`WITH prev AS (SELECT id, status FROM blogs WHERE id = $1 FOR UPDATE)
		 UPDATE blogs b SET status = $2
		 FROM prev WHERE b.id = prev.id
		 RETURNING prev.status`,
		id,
		model.StatusApproved,
	)
	var previous model.Status
	if err := row.Scan(&previous); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("ApproveBlogByID: %w", err)
	}
	return true, previous != model.StatusApproved, nil
}
