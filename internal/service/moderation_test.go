package service

import (
	"context"
	"errors"
	"testing"

	"blog-server/internal/database"
	"blog-server/internal/model"

	"github.com/stretchr/testify/require"
)

func titles(blogs []model.Blog) []string {
	out := make([]string, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, b.Title)
	}
	return out
}

func TestSubmitForcesPending(t *testing.T) {
	t.Cleanup(restoreGlobals)
	installMemStore()
	n := &recordingNotifier{}
	m := NewBlogModeration(nil, n, nil)
	ctx := context.Background()

	b, err := m.Submit(ctx, model.BlogInput{
		Title:       "A",
		AuthorEmail: "Alice@Example.com",
		Attributes:  model.Attributes{"status": "approved"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	require.Equal(t, model.StatusPending, b.Status)
	require.Equal(t, "alice@example.com", b.AuthorEmail)
	require.Equal(t, []EventType{EventBlogSubmitted}, n.types())
}

func TestApproveLifecycle(t *testing.T) {
	t.Cleanup(restoreGlobals)
	installMemStore()
	n := &recordingNotifier{}
	m := NewBlogModeration(nil, n, nil)
	ctx := context.Background()

	b, err := m.Submit(ctx, model.BlogInput{Title: "A"})
	require.NoError(t, err)
	_, err = m.Submit(ctx, model.BlogInput{Title: "B"})
	require.NoError(t, err)

	res, err := m.ApproveByID(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, res.Updated)
	require.True(t, res.Modified)

	approved, err := m.ListByStatus(ctx, model.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, titles(approved))

	pending, err := m.ListByStatus(ctx, model.StatusPending)
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, titles(pending))

	all, err := m.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, titles(all))

	// 冪等：再核准一次結果相同，也不再發事件
	res, err = m.ApproveByID(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, res.Updated)
	require.False(t, res.Modified)
	again, err := m.ListByStatus(ctx, model.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, approved, again)

	require.Equal(t, []EventType{EventBlogSubmitted, EventBlogSubmitted, EventBlogApproved}, n.types())
}

func TestApproveMissing(t *testing.T) {
	t.Cleanup(restoreGlobals)
	installMemStore()
	m := NewBlogModeration(nil, nil, nil)
	res, err := m.ApproveByID(context.Background(), "nope")
	require.NoError(t, err)
	require.False(t, res.Updated)
	require.False(t, res.Modified)
}

func TestDeleteByID(t *testing.T) {
	t.Cleanup(restoreGlobals)
	installMemStore()
	n := &recordingNotifier{}
	m := NewBlogModeration(nil, n, nil)
	ctx := context.Background()

	keep, err := m.Submit(ctx, model.BlogInput{Title: "keep"})
	require.NoError(t, err)
	drop, err := m.Submit(ctx, model.BlogInput{Title: "drop"})
	require.NoError(t, err)
	_, err = m.ApproveByID(ctx, drop.ID)
	require.NoError(t, err)

	res, err := m.DeleteByID(ctx, "missing")
	require.NoError(t, err)
	require.False(t, res.Deleted)
	all, err := m.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	// approved 狀態也可刪除
	res, err = m.DeleteByID(ctx, drop.ID)
	require.NoError(t, err)
	require.True(t, res.Deleted)

	_, err = m.GetByID(ctx, drop.ID)
	require.ErrorIs(t, err, ErrNotFound)
	got, err := m.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	require.Equal(t, "keep", got.Title)

	require.Equal(t, EventBlogDeleted, n.types()[len(n.types())-1])
}

func TestListByStatusRejectsUnknown(t *testing.T) {
	t.Cleanup(restoreGlobals)
	installMemStore()
	m := NewBlogModeration(nil, nil, nil)
	_, err := m.ListByStatus(context.Background(), "rejected")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListByStatusExcludesForeignValues(t *testing.T) {
	t.Cleanup(restoreGlobals)
	mem := installMemStore()
	mem.blogs = append(mem.blogs,
		model.Blog{ID: "x", Title: "legacy", Status: "draft"},
		model.Blog{ID: "y", Title: "ok", Status: model.StatusPending},
	)
	m := NewBlogModeration(nil, nil, nil)
	pending, err := m.ListByStatus(context.Background(), model.StatusPending)
	require.NoError(t, err)
	require.Equal(t, []string{"ok"}, titles(pending))
}

func TestModerationStoreErrors(t *testing.T) {
	t.Cleanup(restoreGlobals)
	boom := errors.New("boom")
	createBlog = func(context.Context, database.DB, *model.Blog) (*model.Blog, error) { return nil, boom }
	listBlogs = func(context.Context, database.DB) ([]model.Blog, error) { return nil, boom }
	listBlogsByStatus = func(context.Context, database.DB, model.Status) ([]model.Blog, error) { return nil, boom }
	getBlogByID = func(context.Context, database.DB, string) (*model.Blog, error) { return nil, boom }
	deleteBlogByID = func(context.Context, database.DB, string) (bool, error) { return false, boom }
	approveBlogByID = func(context.Context, database.DB, string) (bool, bool, error) { return false, false, boom }

	n := &recordingNotifier{}
	m := NewBlogModeration(nil, n, nil)
	ctx := context.Background()

	_, err := m.Submit(ctx, model.BlogInput{})
	require.ErrorIs(t, err, boom)
	_, err = m.ListAll(ctx)
	require.ErrorIs(t, err, boom)
	_, err = m.ListByStatus(ctx, model.StatusApproved)
	require.ErrorIs(t, err, boom)
	_, err = m.GetByID(ctx, "x")
	require.ErrorIs(t, err, boom)
	_, err = m.DeleteByID(ctx, "x")
	require.ErrorIs(t, err, boom)
	_, err = m.ApproveByID(ctx, "x")
	require.ErrorIs(t, err, boom)
	require.Empty(t, n.types())
}

func TestSubmitTooManyAttributes(t *testing.T) {
	t.Cleanup(restoreGlobals)
	installMemStore()
	attrs := model.Attributes{}
	for i := 0; i <= model.MaxAttributes; i++ {
		attrs[string(rune('A'+i%26))+string(rune('0'+i/26))] = true
	}
	m := NewBlogModeration(nil, nil, nil)
	_, err := m.Submit(context.Background(), model.BlogInput{Attributes: attrs})
	require.ErrorIs(t, err, ErrTooManyAttributes)
}
