package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	LogLevel  string // debug/info/warn/error
	LogFormat string // json/text

	JWTSecret string // JWT署名シークレット（検証のみ）

	Storage             string // memory/postgres
	CatalogSnapshotPath string // memory時のカタログJSON

	DatabaseURL      string // あれば最優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	RateLimitRPS   float64 // 0なら無効
	RateLimitBurst int

	DefaultPageLimit int
	MaxPageLimit     int

	ShutdownTimeout time.Duration
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	rps, err := floatDefault("RATE_LIMIT_RPS", 20)
	if err != nil {
		return Config{}, err
	}
	burst, err := atoiDefault("RATE_LIMIT_BURST", 40)
	if err != nil {
		return Config{}, err
	}
	defLimit, err := atoiDefault("DEFAULT_PAGE_LIMIT", 20)
	if err != nil {
		return Config{}, err
	}
	maxLimit, err := atoiDefault("MAX_PAGE_LIMIT", 100)
	if err != nil {
		return Config{}, err
	}
	shutdown, err := durationDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "json")),

		JWTSecret: os.Getenv("JWT_SECRET"),

		Storage:             strings.ToLower(getenv("STORAGE", StorageMemory)),
		CatalogSnapshotPath: os.Getenv("CATALOG_SNAPSHOT_PATH"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		RateLimitRPS:   rps,
		RateLimitBurst: burst,

		DefaultPageLimit: defLimit,
		MaxPageLimit:     maxLimit,

		ShutdownTimeout: shutdown,
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	switch cfg.Storage {
	case StorageMemory:
		if cfg.CatalogSnapshotPath == "" {
			return Config{}, fmt.Errorf("CATALOG_SNAPSHOT_PATH is required when STORAGE=memory")
		}
	case StoragePostgres:
	default:
		return Config{}, fmt.Errorf("STORAGE must be memory or postgres: %q", cfg.Storage)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or text: %q", cfg.LogFormat)
	}

	//範囲チェック
	if cfg.RateLimitRPS < 0 || cfg.RateLimitBurst < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.DefaultPageLimit < 1 || cfg.MaxPageLimit < cfg.DefaultPageLimit {
		return Config{}, fmt.Errorf("page limits must satisfy 1 <= DEFAULT_PAGE_LIMIT <= MAX_PAGE_LIMIT")
	}

	return cfg, nil
}

// Addr は ":8080" 形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// PostgresDSN は DATABASE_URL が無いときに組み立てる
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func floatDefault(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return f, nil
}

func durationDefault(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration like 10s: %w", key, err)
	}
	return d, nil
}
