// File: internal/router/router.go
package router

import (
	"time"

	"blog-server/internal/cache"
	"blog-server/internal/database"
	"blog-server/internal/handler"
	"blog-server/internal/handler/auth"
	"blog-server/internal/handler/blogs"
	"blog-server/internal/handler/users"
	"blog-server/internal/middleware"
	"blog-server/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps 路由所需的依賴
type Deps struct {
	DB         database.DB
	Cache      cache.Cache
	Directory  *service.UserDirectory
	Moderation *service.BlogModeration
	TokenTTL   time.Duration
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	requireAdmin := middleware.RequireAdmin(d.Directory)

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 使用者登入
	api.POST("/auth/login", auth.LoginHandler(d.Directory, d.TokenTTL))

	// 註冊與角色查詢公開；列出所有使用者需管理員
	api.POST("/users", users.RegisterUserHandler(d.Directory))
	api.GET("/users", users.ListUsersHandler(d.Directory), requireAdmin)
	api.GET("/users/:email/admin", users.IsAdminHandler(d.Directory))

	// 文章審核
	apiBlogs := api.Group("/blogs")
	apiBlogs.POST("", blogs.SubmitBlogHandler(d.Moderation), middleware.RequireAuth)
	apiBlogs.GET("", blogs.ListBlogsHandler(d.Moderation))
	apiBlogs.GET("/pending", blogs.ListPendingBlogsHandler(d.Moderation), requireAdmin)
	apiBlogs.GET("/approved", blogs.ListApprovedBlogsHandler(d.Moderation))
	apiBlogs.GET("/:id", blogs.GetBlogHandler(d.Moderation))
	apiBlogs.DELETE("/:id", blogs.DeleteBlogHandler(d.Moderation), requireAdmin)
	apiBlogs.PATCH("/:id/approve", blogs.ApproveBlogHandler(d.Moderation), requireAdmin)
}
