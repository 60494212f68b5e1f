package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"todoapp/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	Storage     string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	MaxPageSize   int
	SeedOnStart   bool
	RunMigrations bool
	CORSOrigins   []string

	LogLevel string
	LogJSON  bool
}

// Load reads the config and exits the process when it is invalid.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds a Config from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppPort:       getenv("APP_PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Storage:       strings.ToLower(getenv("STORAGE", StoragePostgres)),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getenv("JWT_ISSUER", "TodoApp"),
		JWTAudience:   getenv("JWT_AUDIENCE", "TodoApp"),
		JWTTTL:        7 * 24 * time.Hour,
		MaxPageSize:   100,
		SeedOnStart:   getbool("SEED_ON_START", true),
		RunMigrations: getbool("RUN_MIGRATIONS", true),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogJSON:       getbool("LOG_JSON", false),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
	case StorageMemory:
	default:
		return nil, errors.New("STORAGE must be postgres or memory")
	}

	if v := os.Getenv("JWT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, errors.New("JWT_TTL must be a positive duration")
		}
		cfg.JWTTTL = d
	}

	if v := os.Getenv("MAX_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxPageSize = n
		}
	}

	// comma separated, empty reflects the request origin
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
