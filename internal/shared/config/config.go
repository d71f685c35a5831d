package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Waitlist configuration
	Waitlist WaitlistConfig

	// Admin configuration
	Admin AdminConfig

	// State store configuration
	Store StoreConfig

	// Redis configuration (used when Store.Backend == "redis")
	Redis RedisConfig

	// Static frontend
	StaticDir string

	// Logging
	LogLevel string
}

// WaitlistConfig holds the weekly waitlist parameters
type WaitlistConfig struct {
	DefaultCap int // signups accepted per ISO week unless overridden by admin
	OpenHour   int // hour of the Monday opening window
	OpenMinute int
}

// AdminConfig holds the admin capability secret.
// An empty Token means every admin request is rejected.
type AdminConfig struct {
	Token string
}

// StoreConfig selects and parameterizes the state store backend
type StoreConfig struct {
	Backend   string // "file" or "redis"
	StateFile string
	RedisKey  string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8001"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Waitlist configuration
		Waitlist: WaitlistConfig{
			DefaultCap: getIntEnv("WEEKLY_CAP", 10),
			OpenHour:   getIntEnv("OPEN_HOUR", 9),
			OpenMinute: getIntEnv("OPEN_MINUTE", 0),
		},

		// Admin configuration; unset means admin endpoints reject everything
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},

		// State store configuration
		Store: StoreConfig{
			Backend:   getEnv("STORE_BACKEND", "file"),
			StateFile: getEnv("STATE_FILE", "waitlist.json"),
			RedisKey:  getEnv("STATE_REDIS_KEY", "waitly:state"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		// Static frontend
		StaticDir: getEnv("STATIC_DIR", "./public"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	// A non-positive default cap would reject every signup forever
	if cfg.Waitlist.DefaultCap < 1 {
		cfg.Waitlist.DefaultCap = 10
	}

	return cfg
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// HasAdminToken reports whether an admin secret is configured
func (c *Config) HasAdminToken() bool {
	return c.Admin.Token != ""
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}
