package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 服務啟動所需的所有設定
type Config struct {
	DatabaseURL     string
	RunMigrations   bool
	ResetMigrations bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Port        string
	WorkerCount int
	LogLevel    string
	CORSOrigins []string

	TokenTTL     time.Duration
	RoleCacheTTL time.Duration

	EventsChannel string
}

var loadDotEnv = func() error { return godotenv.Load() }

// Load 讀取 .env（若存在）與環境變數，必要欄位缺少或格式錯誤時回傳錯誤
func Load() (*Config, error) {
	_ = loadDotEnv()

	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EventsChannel: getEnv("EVENTS_CHANNEL", "blog:moderation"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
	}

	// JWT_SECRET 由 service 簽發/驗證時直接讀取，這裡只確認有設定
	for key, val := range map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_ADDR":   cfg.RedisAddr,
		"JWT_SECRET":   os.Getenv("JWT_SECRET"),
	} {
		if val == "" {
			return nil, fmt.Errorf("環境變數 %s 未設定", key)
		}
	}

	var err error
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.WorkerCount, err = getEnvAsInt("WORKER_COUNT", 1); err != nil {
		return nil, err
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("無效的 WORKER_COUNT: %d", cfg.WorkerCount)
	}
	if cfg.RunMigrations, err = getEnvAsBool("RUN_MIGRATIONS", true); err != nil {
		return nil, err
	}
	if cfg.ResetMigrations, err = getEnvAsBool("RESET_MIGRATIONS", false); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getEnvAsDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RoleCacheTTL, err = getEnvAsDuration("ROLE_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr HTTP 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("無效的 %s: %w", key, err)
	}
	return parsed, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
