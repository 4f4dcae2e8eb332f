package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"
	EnvDev        = "dev"

	// fallback used outside production when JWT_DEV_SECRET is unset
	defaultDevSecret = "some-secret-key"
)

var ErrMissingSecret = errors.New("JWT_SECRET is required in production")

type Config struct {
	Env   string
	Port  int
	DBURL string

	StoreDriver string

	JWTSecret    string
	JWTDevSecret string
	SessionTTL   time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTLPEndpoint string

	ProfileCacheTTL time.Duration
	CORSOrigins     []string
	AuthRateLimit   int
}

func Load() Config {
	// a missing .env is fine, real deployments use the environment
	_ = godotenv.Load()

	return Config{
		Env:   getEnv("APP_ENV", EnvDev),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		StoreDriver: getEnv("STORE_DRIVER", "postgres"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTDevSecret: getEnv("JWT_DEV_SECRET", defaultDevSecret),
		SessionTTL:   time.Duration(getEnvInt("SESSION_TTL_HOURS", 7*24)) * time.Hour,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		ProfileCacheTTL: time.Duration(getEnvInt("PROFILE_CACHE_TTL_SECONDS", 30)) * time.Second,
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
		AuthRateLimit:   getEnvInt("AUTH_RATE_LIMIT", 10),
	}
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// SessionSecret picks the signing secret for the current environment.
func (c Config) SessionSecret() string {
	if c.IsProduction() {
		return c.JWTSecret
	}

	return c.JWTDevSecret
}

func (c Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == "" {
		return ErrMissingSecret
	}

	return nil
}

func buildDBURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "accounthub")
	pass := getEnv("DB_PASSWORD", "accounthub")
	name := getEnv("DB_NAME", "accounthub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}

	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
