package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"blog-server/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// AdminChecker 由 UserDirectory 實作，管理員權限一律以目錄中的角色為準
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

var verifyAccessToken = service.VerifyAccessToken

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	tokenString := parts[1]
	claims, err := verifyAccessToken(tokenString)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	return claims, nil
}

// ClaimsFrom 取出 RequireAuth 放入 context 的 claims
func ClaimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims, ok
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := extractClaims(c)
		if err != nil {
			return err
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// RequireAdmin 驗證 JWT 後再向目錄確認該 email 目前是否為 admin
func RequireAdmin(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return RequireAuth(func(c echo.Context) error {
			claims, _ := ClaimsFrom(c)
			isAdmin, err := checker.IsAdmin(c.Request().Context(), claims.Email)
			switch {
			case errors.Is(err, service.ErrNotFound):
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			case err != nil:
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to check role")
			case !isAdmin:
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}
