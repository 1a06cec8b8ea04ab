package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"
)

// Config holds the settings of the web frontend.
type Config struct {
	Addr       string
	APIBaseURL string
	APITimeout time.Duration // 0 keeps the transport default
	PageSize   int

	CookieSecure bool
	// Location used to render and decompose ride times.
	Location *time.Location

	LogFile  string
	LogLevel string
	GinMode  string
}

// DevAPIConfig holds the settings of the development backend.
type DevAPIConfig struct {
	Addr  string
	Store string // "postgres" or "memory"

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	JWTSecret string
	JWTTTL    time.Duration
	// CORSOrigins may call the API from a browser with credentials.
	CORSOrigins []string

	LogFile  string
	LogLevel string
}

// loadDotenv reads .env if present; missing files are fine.
func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found – relying on env vars")
	}
}

// Load reads the web frontend configuration from the environment.
func Load() (*Config, error) {
	loadDotenv()

	cfg := &Config{
		Addr:         getEnv("APP_ADDR", ":3000"),
		APIBaseURL:   strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000/api"), "/"),
		APITimeout:   getDuration("API_TIMEOUT", 0),
		PageSize:     getInt("PAGE_SIZE", 10),
		CookieSecure: getBool("COOKIE_SECURE", false),
		LogFile:      getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		GinMode:      getEnv("GIN_MODE", "release"),
	}

	loc, err := time.LoadLocation(getEnv("DISPLAY_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	return cfg, nil
}

// LoadDevAPI reads the development backend configuration from the environment.
func LoadDevAPI() (*DevAPIConfig, error) {
	loadDotenv()

	cfg := &DevAPIConfig{
		Addr:        getEnv("DEVAPI_ADDR", ":5000"),
		Store:       strings.ToLower(getEnv("DEVAPI_STORE", "postgres")),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "password"),
		DBName:      getEnv("DB_NAME", "travelinghelp"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		DBTimezone:  getEnv("DB_TIMEZONE", "UTC"),
		JWTSecret:   getEnv("JWT_SECRET", "supersecret"),
		JWTTTL:      getDuration("JWT_TTL", 30*24*time.Hour),
		CORSOrigins: getList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		LogFile:     getEnv("LOG_FILE", "./logs/devapi.log"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
	}

	switch cfg.Store {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("DEVAPI_STORE must be postgres or memory, got %q", cfg.Store)
	}
	return cfg, nil
}

// DSN builds the PostgreSQL data source name.
func (c *DevAPIConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		logrus.WithField("key", key).Warn("invalid integer in env, using default")
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		logrus.WithField("key", key).Warn("invalid boolean in env, using default")
		return defaultValue
	}
	return b
}

// getList splits a comma-separated variable, dropping blank entries.
func getList(key string, defaultValue []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		logrus.WithField("key", key).Warn("invalid duration in env, using default")
		return defaultValue
	}
	return d
}
