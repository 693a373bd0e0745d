package users

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"blog-server/internal/api"
	"blog-server/internal/model"
	"blog-server/internal/service"

	"github.com/labstack/echo/v4"
)

// Directory 由 service.UserDirectory 實作
type Directory interface {
	Register(ctx context.Context, in model.UserInput) (*service.RegisterResult, error)
	ListAll(ctx context.Context) ([]model.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RegisterUserHandler 註冊新使用者；email 已存在時回傳 200 與既有資料
// @Summary     Register a user
// @Description 以 email 為唯一鍵建立帳號 (Email 會自動轉小寫)。已存在時 created=false
// @Tags        users
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.RegisterUserRequest true "使用者資料"
// @Success     201  {object} api.RegisterResponse
// @Success     200  {object} api.RegisterResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users [post]
func RegisterUserHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		res, err := dir.Register(c.Request().Context(), model.UserInput{
			Email:      req.Email,
			Name:       req.Name,
			Password:   req.Password,
			Role:       model.Role(req.Role),
			Attributes: req.Attributes,
		})
		switch {
		case errors.Is(err, service.ErrInvalidRole), errors.Is(err, service.ErrTooManyAttributes):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to register user"})
		}

		user := api.NewUserResponse(*res.User)
		if !res.Created {
			return c.JSON(http.StatusOK, api.RegisterResponse{Created: false, Message: "User already exists", User: &user})
		}
		return c.JSON(http.StatusCreated, api.RegisterResponse{Created: true, Message: "User created successfully", User: &user})
	}
}

// ListUsersHandler 列出所有使用者（需管理員）
// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := dir.ListAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list users"})
		}
		return c.JSON(http.StatusOK, api.NewUserResponses(users))
	}
}

// IsAdminHandler 查詢 email 對應的使用者是否為管理員
// @Summary     Check admin role
// @Tags        users
// @Produce     json
// @Param       email path     string true "使用者 Email"
// @Success     200   {object} api.IsAdminResponse
// @Failure     404   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Router      /users/{email}/admin [get]
func IsAdminHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, err := url.PathUnescape(c.Param("email"))
		if err != nil || email == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email"})
		}
		isAdmin, err := dir.IsAdmin(c.Request().Context(), email)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error"})
		}
		return c.JSON(http.StatusOK, api.IsAdminResponse{IsAdmin: isAdmin})
	}
}
