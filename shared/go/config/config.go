package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Server configuration
	Server ServerConfig

	// Admin gate configuration
	Admin AdminConfig

	// Media CDN configuration
	CDN CDNConfig

	// Local durable storage (liked songs)
	Likes LikesConfig

	// Listener session lifetime
	Session SessionConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Logging LoggingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr is the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AdminConfig holds the studio unlock secret and the signing key for admin tokens.
type AdminConfig struct {
	Password    string
	TokenSecret string
}

// CDNConfig holds Cloudinary settings. Either URL or CloudName/APIKey/APISecret.
type CDNConfig struct {
	URL          string
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
}

// Enabled reports whether uploads can be attempted at all.
func (c CDNConfig) Enabled() bool {
	return (c.URL != "" || c.CloudName != "") && c.UploadPreset != ""
}

// LikesConfig locates the embedded database backing liked songs.
type LikesConfig struct {
	Path string
}

// SessionConfig bounds how long an unused listener session is kept.
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepInterval time.Duration
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from environment variables. Values from
// config/local.env are applied first when the file exists.
func Load() (*Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := &Config{}

	// Load database configuration
	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	// Load server configuration
	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	cfg.loadAdmin()
	cfg.loadCDN()
	cfg.Likes.Path = getEnvOrDefault("LIKES_DB_PATH", "data/likes.db")

	if err := cfg.loadSession(); err != nil {
		return nil, fmt.Errorf("load session config: %w", err)
	}

	// Load CORS configuration
	cfg.loadCORS()

	// Load logging configuration
	cfg.loadLogging()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings. Tools that never serve
// requests use it to avoid requiring the admin and CDN variables.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load("config/local.env")

	var cfg Config
	if err := cfg.loadDatabase(); err != nil {
		return DatabaseConfig{}, err
	}
	if cfg.Database.URL == "" {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	return cfg.Database, nil
}

func (c *Config) loadDatabase() error {
	// Try to load DATABASE_URL first
	c.Database.URL = os.Getenv("DATABASE_URL")

	// If not present, construct from individual parameters
	if c.Database.URL == "" {
		c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
		c.Database.User = os.Getenv("DB_USER")
		c.Database.Password = os.Getenv("DB_PASSWORD")
		c.Database.Name = os.Getenv("DB_NAME")
		c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

		port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
		if err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
		c.Database.Port = port

		// Construct URL if all components are present
		if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
			c.Database.URL = fmt.Sprintf(
				"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
				c.Database.User,
				c.Database.Password,
				c.Database.Host,
				c.Database.Port,
				c.Database.Name,
				c.Database.SSLMode,
			)
		}
	}

	return nil
}

func (c *Config) loadServer() error {
	portStr := getEnvOrDefault("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadAdmin() {
	c.Admin.Password = os.Getenv("ADMIN_PASSWORD")
	c.Admin.TokenSecret = os.Getenv("ADMIN_TOKEN_SECRET")
}

func (c *Config) loadCDN() {
	c.CDN.URL = os.Getenv("CLOUDINARY_URL")
	c.CDN.CloudName = os.Getenv("CLOUDINARY_CLOUD_NAME")
	c.CDN.APIKey = os.Getenv("CLOUDINARY_API_KEY")
	c.CDN.APISecret = os.Getenv("CLOUDINARY_API_SECRET")
	c.CDN.UploadPreset = os.Getenv("CLOUDINARY_UPLOAD_PRESET")
}

func (c *Config) loadSession() error {
	idle, err := time.ParseDuration(getEnvOrDefault("SESSION_IDLE_TIMEOUT", "30m"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_IDLE_TIMEOUT: %w", err)
	}
	sweep, err := time.ParseDuration(getEnvOrDefault("SESSION_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}
	c.Session.IdleTimeout = idle
	c.Session.SweepInterval = sweep
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv != "" {
		var origins []string
		for _, origin := range strings.Split(originsEnv, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		c.CORS.AllowedOrigins = origins
	} else {
		// Default for local development
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	// Validate database configuration
	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	// Validate admin configuration
	if c.Admin.Password == "" {
		errors = append(errors, "ADMIN_PASSWORD is required")
	}
	if len(c.Admin.TokenSecret) < 16 {
		errors = append(errors, "ADMIN_TOKEN_SECRET must be at least 16 characters")
	}

	// Validate server configuration
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	if c.Likes.Path == "" {
		errors = append(errors, "LIKES_DB_PATH must not be empty")
	}

	if c.Session.IdleTimeout <= 0 || c.Session.SweepInterval <= 0 {
		errors = append(errors, "SESSION_IDLE_TIMEOUT and SESSION_SWEEP_INTERVAL must be positive")
	}

	// Validate logging configuration
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(os.Getenv("ENV"))
	return env == "" || env == "development"
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
