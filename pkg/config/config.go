package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Feed     FeedConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs the signed auth-user cookie.
type SessionConfig struct {
	Secret         string
	CookieName     string
	DefaultMaxAge  time.Duration
	RememberMaxAge time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FeedConfig governs merged feed caching.
type FeedConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ExportConfig toggles the review export endpoints.
type ExportConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:          v.GetString("DB_HOST"),
		Port:          v.GetInt("DB_PORT"),
		User:          v.GetString("DB_USER"),
		Password:      v.GetString("DB_PASSWORD"),
		Name:          v.GetString("DB_NAME"),
		SSLMode:       v.GetString("DB_SSL_MODE"),
		MaxOpenConns:  v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:  v.GetInt("DB_MAX_IDLE_CONNS"),
		MigrationsDir: v.GetString("DB_MIGRATIONS_DIR"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:         v.GetString("SESSION_SECRET"),
		CookieName:     v.GetString("SESSION_COOKIE_NAME"),
		DefaultMaxAge:  parseDuration(v.GetString("SESSION_MAX_AGE"), 7*24*time.Hour),
		RememberMaxAge: parseDuration(v.GetString("SESSION_REMEMBER_MAX_AGE"), 365*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Feed = FeedConfig{
		CacheEnabled: v.GetBool("FEED_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("FEED_CACHE_TTL"), 30*time.Second),
	}

	cfg.Export = ExportConfig{
		Enabled: v.GetBool("ENABLE_REVIEW_EXPORT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "campusboard")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MIGRATIONS_DIR", "migrations")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_COOKIE_NAME", "auth-user")
	v.SetDefault("SESSION_MAX_AGE", "168h")
	v.SetDefault("SESSION_REMEMBER_MAX_AGE", "8760h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FEED_CACHE_ENABLED", false)
	v.SetDefault("FEED_CACHE_TTL", "30s")

	v.SetDefault("ENABLE_REVIEW_EXPORT", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
