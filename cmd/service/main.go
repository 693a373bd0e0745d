// File: cmd/service/main.go
// @title        Blog Server API
// @version      1.0
// @description  部落格投稿與審核的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-server/internal/cache"
	"blog-server/internal/config"
	"blog-server/internal/database"
	"blog-server/internal/logger"
	"blog-server/internal/middleware"
	"blog-server/internal/router"
	"blog-server/internal/service"
	"blog-server/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "blog-server/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	notifyContext   = signal.NotifyContext
	exitFunc        = os.Exit
)

func newEcho(cfg *config.Config, lg *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				lg.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			lg.Info("request", fields...)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(middleware.Metrics())
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lg, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("Logger 建立失敗: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			lg.Warn("關閉 Redis 連線失敗", zap.Error(err))
		}
	}()

	// 回滾並執行遷移
	if cfg.ResetMigrations {
		if err := rollbackAllFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
	}
	if cfg.RunMigrations {
		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	publisher := service.NewEventPublisher(wp, rdb, cfg.EventsChannel, lg)
	e := newEcho(cfg, lg)
	router.Setup(e, router.Deps{
		DB:         db,
		Cache:      rdb,
		Directory:  service.NewUserDirectory(db, rdb, cfg.RoleCacheTTL, lg),
		Moderation: service.NewBlogModeration(db, publisher, lg),
		TokenTTL:   cfg.TokenTTL,
	})

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg.Addr()) }()
	lg.Info("blog server started", zap.String("addr", cfg.Addr()))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP 服務失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("HTTP 服務關閉失敗: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		zap.NewExample().Error("service exited", zap.Error(err))
		exitFunc(1)
	}
}
