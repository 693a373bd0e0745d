package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-server/internal/model"
	"blog-server/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type checkerFunc func(ctx context.Context, email string) (bool, error)

func (f checkerFunc) IsAdmin(ctx context.Context, email string) (bool, error) { return f(ctx, email) }

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}

func TestExtractClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	// missing header
	ctx, _ := newContext("")
	_, err := extractClaims(ctx)
	require.Error(t, err)

	// bad format
	ctx, _ = newContext("BadHeader")
	_, err = extractClaims(ctx)
	require.Error(t, err)

	// invalid token
	ctx, _ = newContext("Bearer invalid")
	_, err = extractClaims(ctx)
	requireStatus(t, err, http.StatusUnauthorized)

	// valid token
	tok, err := service.IssueAccessToken(model.User{ID: "u1", Email: "a@b.com", Role: model.RoleAdmin}, time.Minute)
	require.NoError(t, err)
	ctx, _ = newContext("Bearer " + tok)
	claims, err := extractClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
	require.True(t, claims.IsAdmin)
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	tok, err := service.IssueAccessToken(model.User{ID: "u2", Email: "u2@b.com"}, time.Minute)
	require.NoError(t, err)

	// success path
	ctx, rec := newContext("Bearer " + tok)
	called := false
	handler := RequireAuth(func(c echo.Context) error {
		called = true
		cl, ok := ClaimsFrom(c)
		require.True(t, ok)
		require.Equal(t, "u2", cl.UserID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err = RequireAuth(func(echo.Context) error { called = true; return nil })(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
	require.False(t, called)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "adminsecret")
	// token 內的 IsAdmin 不作數，以 checker 結果為準
	tok, err := service.IssueAccessToken(model.User{ID: "u3", Email: "boss@b.com", Role: model.RoleUser}, time.Minute)
	require.NoError(t, err)

	t.Run("admin ok", func(t *testing.T) {
		var asked string
		checker := checkerFunc(func(_ context.Context, email string) (bool, error) { asked = email; return true, nil })
		ctx, rec := newContext("Bearer " + tok)
		called := false
		err := RequireAdmin(checker)(func(c echo.Context) error { called = true; return c.String(http.StatusOK, "admin") })(ctx)
		require.NoError(t, err)
		require.True(t, called)
		require.Equal(t, "boss@b.com", asked)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	cases := []struct {
		name    string
		checker checkerFunc
		code    int
	}{
		{"not admin", func(context.Context, string) (bool, error) { return false, nil }, http.StatusForbidden},
		{"unknown user", func(context.Context, string) (bool, error) { return false, service.ErrNotFound }, http.StatusForbidden},
		{"lookup error", func(context.Context, string) (bool, error) { return false, errors.New("db") }, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := newContext("Bearer " + tok)
			called := false
			err := RequireAdmin(tc.checker)(func(echo.Context) error { called = true; return nil })(ctx)
			requireStatus(t, err, tc.code)
			require.False(t, called)
		})
	}

	t.Run("no token", func(t *testing.T) {
		ctx, _ := newContext("")
		checker := checkerFunc(func(context.Context, string) (bool, error) {
			t.Fatal("checker should not run")
			return false, nil
		})
		err := RequireAdmin(checker)(func(echo.Context) error { return nil })(ctx)
		requireStatus(t, err, http.StatusUnauthorized)
	})
}
