package blogs

import (
	"context"
	"errors"
	"net/http"

	"blog-server/internal/api"
	"blog-server/internal/middleware"
	"blog-server/internal/model"
	"blog-server/internal/service"

	"github.com/labstack/echo/v4"
)

// Moderation 由 service.BlogModeration 實作
type Moderation interface {
	Submit(ctx context.Context, in model.BlogInput) (*model.Blog, error)
	ListAll(ctx context.Context) ([]model.Blog, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Blog, error)
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	DeleteByID(ctx context.Context, id string) (*service.DeleteResult, error)
	ApproveByID(ctx context.Context, id string) (*service.UpdateResult, error)
}

// SubmitBlogHandler 投稿新文章，作者取自登入令牌，狀態一律為 pending
// @Summary     Submit a blog post
// @Tags        blogs
// @Accept      json
// @Produce     json
// @Param       body body     api.SubmitBlogRequest true "文章內容"
// @Success     201  {object} api.BlogResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /blogs [post]
func SubmitBlogHandler(m Moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := middleware.ClaimsFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "unauthorized"})
		}

		var req api.SubmitBlogRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		blog, err := m.Submit(c.Request().Context(), model.BlogInput{
			Title:       req.Title,
			Content:     req.Content,
			AuthorEmail: claims.Email,
			Attributes:  req.Attributes,
		})
		switch {
		case errors.Is(err, service.ErrTooManyAttributes):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to submit blog"})
		}
		return c.JSON(http.StatusCreated, api.NewBlogResponse(*blog))
	}
}

// ListBlogsHandler 列出所有文章，可用 ?status= 篩選
// @Summary     List blog posts
// @Tags        blogs
// @Produce     json
// @Param       status query    string false "pending 或 approved"
// @Success     200    {array}  api.BlogResponse
// @Failure     400    {object} api.ErrorResponse
// @Failure     500    {object} api.ErrorResponse
// @Router      /blogs [get]
func ListBlogsHandler(m Moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := c.QueryParam("status")
		if status == "" {
			blogs, err := m.ListAll(c.Request().Context())
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list blogs"})
			}
			return c.JSON(http.StatusOK, api.NewBlogResponses(blogs))
		}
		return listByStatus(c, m, model.Status(status))
	}
}

// ListPendingBlogsHandler 待審核文章（需管理員）
// @Summary     List pending posts
// @Tags        blogs
// @Produce     json
// @Success     200 {array}  api.BlogResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /blogs/pending [get]
func ListPendingBlogsHandler(m Moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		return listByStatus(c, m, model.StatusPending)
	}
}

// ListApprovedBlogsHandler 已核准文章
// @Summary     List approved posts
// @Tags        blogs
// @Produce     json
// @Success     200 {array}  api.BlogResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /blogs/approved [get]
func ListApprovedBlogsHandler(m Moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		return listByStatus(c, m, model.StatusApproved)
	}
}

func listByStatus(c echo.Context, m Moderation, status model.Status) error {
	blogs, err := m.ListByStatus(c.Request().Context(), status)
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "status must be pending or approved"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list blogs"})
	}
	return c.JSON(http.StatusOK, api.NewBlogResponses(blogs))
}

// GetBlogHandler 取得單篇文章
// @Summary     Get a blog post
// @Tags        blogs
// @Produce     json
// @Param       id  path     string true "文章 ID"
// @Success     200 {object} api.BlogResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /blogs/{id} [get]
func GetBlogHandler(m Moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		blog, err := m.GetByID(c.Request().Context(), c.Param("id"))
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "blog not found"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to get blog"})
		}
		return c.JSON(http.StatusOK, api.NewBlogResponse(*blog))
	}
}

// DeleteBlogHandler 刪除文章（需管理員）；不存在時 deleted=false
// @Summary     Delete a blog post
// @Tags        blogs
// @Produce     json
// @Param       id  path     string true "文章 ID"
// @Success     200 {object} api.DeleteResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /blogs/{id} [delete]
func DeleteBlogHandler(m Moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := m.DeleteByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to delete blog"})
		}
		return c.JSON(http.StatusOK, api.DeleteResponse{Deleted: res.Deleted})
	}
}

// ApproveBlogHandler 核准文章（需管理員）；重複核准回傳 modified=false
// @Summary     Approve a blog post
// @Tags        blogs
// @Produce     json
// @Param       id  path     string true "文章 ID"
// @Success     200 {object} api.ApproveResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /blogs/{id}/approve [patch]
func ApproveBlogHandler(m Moderation) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := m.ApproveByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to approve blog"})
		}
		return c.JSON(http.StatusOK, api.ApproveResponse{Updated: res.Updated, Modified: res.Modified})
	}
}
