package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog-server/internal/cache"
	"blog-server/internal/database"
	"blog-server/internal/metrics"
	"blog-server/internal/model"
	"blog-server/internal/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	hashPassword    = HashPassword
	comparePassword = ComparePassword
	getUserByEmail  = store.GetUserByEmail
	createUser      = store.CreateUser
	listUsers       = store.ListUsers
)

const roleCachePrefix = "user:role:"

// RegisterResult Created=false 表示 email 已註冊，User 為既有紀錄
type RegisterResult struct {
	Created bool
	User    *model.User
}

// UserDirectory 管理使用者並回答身分與角色查詢
type UserDirectory struct {
	db      database.DB
	cache   cache.Cache
	roleTTL time.Duration
	logger  *zap.Logger
}

// NewUserDirectory cache 可為 nil，此時每次都查詢資料庫
func NewUserDirectory(db database.DB, c cache.Cache, roleTTL time.Duration, logger *zap.Logger) *UserDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserDirectory{db: db, cache: c, roleTTL: roleTTL, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 以 email 查重後新增使用者；重複註冊為軟性結果而非錯誤
func (d *UserDirectory) Register(ctx context.Context, in model.UserInput) (*RegisterResult, error) {
	email := normalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if len(in.Attributes) > model.MaxAttributes {
		return nil, ErrTooManyAttributes
	}

	existing, err := getUserByEmail(ctx, d.db, email)
	if err == nil {
		metrics.RegistrationsTotal.WithLabelValues("exists").Inc()
		return &RegisterResult{Created: false, User: existing}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("Register: %w", err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("Register: hash password: %w", err)
	}

	created, ok, err := createUser(ctx, d.db, &model.User{
		Email:        email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		Attributes:   in.Attributes,
	})
	if err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}
	if !ok {
		// 併發註冊時由唯一索引擋下，回傳先寫入的那一筆
		winner, err := getUserByEmail(ctx, d.db, email)
		if err != nil {
			return nil, fmt.Errorf("Register: %w", err)
		}
		metrics.RegistrationsTotal.WithLabelValues("exists").Inc()
		return &RegisterResult{Created: false, User: winner}, nil
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	d.logger.Info("user registered", zap.String("user_id", created.ID), zap.String("role", string(created.Role)))
	return &RegisterResult{Created: true, User: created}, nil
}

// ListAll 依寫入順序回傳所有使用者
func (d *UserDirectory) ListAll(ctx context.Context) ([]model.User, error) {
	users, err := listUsers(ctx, d.db)
	if err != nil {
		return nil, fmt.Errorf("ListAll: %w", err)
	}
	return users, nil
}

// IsAdmin 查無使用者時回傳 ErrNotFound
// 本服務不會修改既有使用者，因此角色可安全快取
func (d *UserDirectory) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	key := roleCachePrefix + email

	if d.cache != nil {
		v, err := d.cache.Get(ctx, key).Result()
		switch {
		case err == nil:
			metrics.RoleCacheLookupsTotal.WithLabelValues("hit").Inc()
			return model.Role(v) == model.RoleAdmin, nil
		case errors.Is(err, redis.Nil):
			metrics.RoleCacheLookupsTotal.WithLabelValues("miss").Inc()
		default:
			metrics.RoleCacheLookupsTotal.WithLabelValues("error").Inc()
			d.logger.Warn("role cache read failed", zap.Error(err))
		}
	}

	u, err := getUserByEmail(ctx, d.db, email)
	if err != nil {
		return false, fmt.Errorf("IsAdmin: %w", err)
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, string(u.Role), d.roleTTL).Err(); err != nil {
			d.logger.Warn("role cache write failed", zap.Error(err))
		}
	}
	return u.IsAdmin(), nil
}

// Authenticate 以 email 與密碼驗證使用者
func (d *UserDirectory) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := getUserByEmail(ctx, d.db, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}
	if err := comparePassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
