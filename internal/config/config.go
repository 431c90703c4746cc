package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

type Config struct {
	Port                  int    `env:"PORT" envDefault:"3001"`
	APIURL                string `env:"API_URL" envDefault:"http://localhost:3000"`
	APIPrefix             string `env:"API_PREFIX" envDefault:"/api"`
	JWTCookieName         string `env:"JWT_COOKIE_NAME" envDefault:"job_finder_token"`
	TokenExpiryDays       int    `env:"TOKEN_EXPIRY_DAYS" envDefault:"7"`
	AppEnv                string `env:"APP_ENV" envDefault:"development"`
	LogLevel              string `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir             string `env:"STATIC_DIR" envDefault:"static/dashboard"`
	TokenStore            string `env:"TOKEN_STORE" envDefault:"file"`
	TokenFile             string `env:"TOKEN_FILE"`
	RedisURL              string `env:"REDIS_URL"`
	EnableAnalytics       bool   `env:"ENABLE_ANALYTICS" envDefault:"false"`
	EnableNotifications   bool   `env:"ENABLE_NOTIFICATIONS" envDefault:"false"`
	RequestTimeoutSeconds int    `env:"REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	SiteURL               string `env:"SITE_URL" envDefault:"http://localhost:3001"`
	RateLimitPerMin       int    `env:"RATE_LIMIT_PER_MIN" envDefault:"300"`
	TokenEncryptionKey    string `env:"TOKEN_ENCRYPTION_KEY"`
}

// Features mirrors the public feature toggles.
type Features struct {
	Analytics     bool `json:"analytics"`
	Notifications bool `json:"notifications"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// BaseURL is the API base URL joined with the API prefix.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/") + c.APIPrefix
}

// APIOrigin is scheme://host of the API, or "" when API_URL is unparsable.
func (c *Config) APIOrigin() string {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenExpiryDays) * 24 * time.Hour
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) Features() Features {
	return Features{
		Analytics:     c.EnableAnalytics,
		Notifications: c.EnableNotifications,
	}
}

// TokenFilePath resolves TOKEN_FILE, defaulting to ~/.jobfinder/token.json.
func (c *Config) TokenFilePath() string {
	if c.TokenFile != "" {
		return c.TokenFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".jobfinder", "token.json")
	}
	return filepath.Join(home, ".jobfinder", "token.json")
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with '/', got %q", c.APIPrefix)
	}
	if c.JWTCookieName == "" {
		return fmt.Errorf("JWT_COOKIE_NAME must not be empty")
	}
	if c.TokenExpiryDays <= 0 {
		return fmt.Errorf("TOKEN_EXPIRY_DAYS must be positive")
	}
	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.TokenEncryptionKey != "" && len(c.TokenEncryptionKey) != 64 {
		return fmt.Errorf("TOKEN_ENCRYPTION_KEY must be 64 hex characters")
	}
	if c.RateLimitPerMin < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must not be negative")
	}

	switch c.TokenStore {
	case TokenStoreFile, TokenStoreMemory:
	case TokenStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when TOKEN_STORE=redis")
		}
	default:
		return fmt.Errorf("TOKEN_STORE must be one of file, redis, memory; got %q", c.TokenStore)
	}

	if c.IsProduction() && u.Scheme != "https" {
		log.Warn().Str("apiUrl", c.APIURL).Msg("API_URL is not https in production: bearer tokens travel in clear text")
	}

	return nil
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to read .env file")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
