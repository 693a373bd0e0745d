// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blog-server/internal/api"
	"blog-server/internal/model"
	"blog-server/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	issueAccessToken = service.IssueAccessToken
	timeNow          = time.Now
)

// Authenticator 由 service.UserDirectory 實作
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

// LoginHandler 使用 Email/Password 驗證並回傳使用者資料與 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳使用者資料、存取令牌與到期時間
// @Tags        auth
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(authn Authenticator, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: fmt.Sprintf("無效的表單資料: %v", err)})
		}
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		// 帳號不存在與密碼錯誤回傳相同訊息
		user, err := authn.Authenticate(c.Request().Context(), req.Email, req.Password)
		switch {
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to authenticate"})
		}

		// 發行存取令牌
		expiresAt := timeNow().Add(ttl)
		token, err := issueAccessToken(*user, ttl)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: fmt.Sprintf("failed to issue token: %v", err)})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			User:        api.NewUserResponse(*user),
			AccessToken: token,
			ExpiresAt:   expiresAt,
		})
	}
}
