package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
	StorageDriverMemory   = "memory"

	SyncModeTimer = "timer"
	SyncModeRedis = "redis"

	RoleResolverHeuristic = "heuristic"
	RoleResolverDirectory = "directory"

	LockoutScopeGlobal = "global"
	LockoutScopeEmail  = "email"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Storage Config
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Sync Config
	SyncMode         string        `env:"SYNC_MODE" envDefault:"timer"`
	SyncDelay        time.Duration `env:"SYNC_DELAY" envDefault:"3s"`
	SyncPollInterval time.Duration `env:"SYNC_POLL_INTERVAL" envDefault:"500ms"`
	SyncEndpointURL  string        `env:"SYNC_ENDPOINT_URL"`
	SyncSecret       string        `env:"SYNC_SECRET"`
	SyncTimeout      time.Duration `env:"SYNC_TIMEOUT" envDefault:"5s"`
	SyncMaxRetries   int           `env:"SYNC_MAX_RETRIES" envDefault:"3"`
	SyncBaseDelay    time.Duration `env:"SYNC_BASE_DELAY" envDefault:"1s"`

	// Auth Config
	AuthPassword       string        `env:"AUTH_PASSWORD" envDefault:"123456"`
	AuthRoleResolver   string        `env:"AUTH_ROLE_RESOLVER" envDefault:"heuristic"`
	LockoutMaxAttempts int           `env:"LOCKOUT_MAX_ATTEMPTS" envDefault:"3"`
	LockoutDuration    time.Duration `env:"LOCKOUT_DURATION" envDefault:"30s"`
	LockoutScope       string        `env:"LOCKOUT_SCOPE" envDefault:"global"`
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTTTL             time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Nearby search Config
	NearbyMaxRadiusMeters float64 `env:"NEARBY_MAX_RADIUS_METERS" envDefault:"50000"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		StorageDriver:         strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", "migrations"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		SyncMode:              strings.ToLower(getEnv("SYNC_MODE", SyncModeTimer)),
		SyncDelay:             getEnvAsDuration("SYNC_DELAY", 3*time.Second),
		SyncPollInterval:      getEnvAsDuration("SYNC_POLL_INTERVAL", 500*time.Millisecond),
		SyncEndpointURL:       os.Getenv("SYNC_ENDPOINT_URL"),
		SyncSecret:            os.Getenv("SYNC_SECRET"),
		SyncTimeout:           getEnvAsDuration("SYNC_TIMEOUT", 5*time.Second),
		SyncMaxRetries:        getEnvAsInt("SYNC_MAX_RETRIES", 3),
		SyncBaseDelay:         getEnvAsDuration("SYNC_BASE_DELAY", time.Second),
		AuthPassword:          getEnv("AUTH_PASSWORD", "123456"),
		AuthRoleResolver:      strings.ToLower(getEnv("AUTH_ROLE_RESOLVER", RoleResolverHeuristic)),
		LockoutMaxAttempts:    getEnvAsInt("LOCKOUT_MAX_ATTEMPTS", 3),
		LockoutDuration:       getEnvAsDuration("LOCKOUT_DURATION", 30*time.Second),
		LockoutScope:          strings.ToLower(getEnv("LOCKOUT_SCOPE", LockoutScopeGlobal)),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		JWTTTL:                getEnvAsDuration("JWT_TTL", 24*time.Hour),
		NearbyMaxRadiusMeters: getEnvAsFloat("NEARBY_MAX_RADIUS_METERS", 50000),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres storage driver")
		}
	case StorageDriverRedis, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.SyncMode {
	case SyncModeTimer, SyncModeRedis:
	default:
		return fmt.Errorf("unknown SYNC_MODE %q", c.SyncMode)
	}

	switch c.AuthRoleResolver {
	case RoleResolverHeuristic, RoleResolverDirectory:
	default:
		return fmt.Errorf("unknown AUTH_ROLE_RESOLVER %q", c.AuthRoleResolver)
	}

	switch c.LockoutScope {
	case LockoutScopeGlobal, LockoutScopeEmail:
	default:
		return fmt.Errorf("unknown LOCKOUT_SCOPE %q", c.LockoutScope)
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.AuthPassword == "" {
		return fmt.Errorf("AUTH_PASSWORD must not be empty")
	}
	if c.LockoutMaxAttempts < 1 {
		return fmt.Errorf("LOCKOUT_MAX_ATTEMPTS must be positive")
	}
	if c.SyncMaxRetries < 1 {
		c.SyncMaxRetries = 1
	}
	return nil
}

// UsesRedis сообщает, нужен ли приложению клиент Redis
func (c *Config) UsesRedis() bool {
	return c.StorageDriver == StorageDriverRedis || c.SyncMode == SyncModeRedis
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
