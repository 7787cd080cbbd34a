package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by CREDENTIAL_STORE.
const (
	StoreDriverMemory   = "memory"
	StoreDriverFile     = "file"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

// Config aggregates runtime configuration for the client, the CLI and the dev backend.
type Config struct {
	App       AppConfig
	API       APIConfig
	Store     StoreConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	DevServer DevServerConfig
}

// AppConfig identifies the running binary.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// APIConfig controls how the request executor reaches the backend.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// StoreConfig selects the credential store backend.
type StoreConfig struct {
	Driver    string
	FilePath  string
	Namespace string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
	// Format is "json" or "console".
	Format  string
	Service string
	Version string
}

// DevServerConfig configures the local contract backend.
type DevServerConfig struct {
	Host            string
	Port            string
	JWTSecret       string
	TokenTTLMinutes int
	BcryptCost      int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	driver := strings.ToLower(getEnv("CREDENTIAL_STORE", StoreDriverFile))
	switch driver {
	case StoreDriverMemory, StoreDriverFile, StoreDriverRedis, StoreDriverPostgres:
	default:
		return nil, fmt.Errorf("invalid CREDENTIAL_STORE %q", driver)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "memberkit"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getEnv("API_BASE_URL", "http://127.0.0.1:8080"), "/"),
			TimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 0),
		},
		Store: StoreConfig{
			Driver:    driver,
			FilePath:  getEnv("CREDENTIAL_FILE", defaultCredentialFile()),
			Namespace: getEnv("CREDENTIAL_NAMESPACE", "default"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
		DevServer: DevServerConfig{
			Host:            getEnv("DEV_SERVER_HOST", "127.0.0.1"),
			Port:            getEnv("DEV_SERVER_PORT", "8080"),
			JWTSecret:       getEnv("DEV_JWT_SECRET", "dev-secret"),
			TokenTTLMinutes: getEnvAsInt("DEV_TOKEN_TTL_MINUTES", 60),
			BcryptCost:      getEnvAsInt("DEV_BCRYPT_COST", 10),
		},
	}

	cfg.Logger.Service = cfg.App.Name
	cfg.Logger.Version = cfg.App.Version

	return cfg, nil
}

// Timeout returns the per-request timeout; zero leaves the transport default in place.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Addr returns the dev backend bind address.
func (d DevServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", d.Host, d.Port)
}

func defaultCredentialFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".memberkit", "credentials.json")
	}
	return filepath.Join(home, ".memberkit", "credentials.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
