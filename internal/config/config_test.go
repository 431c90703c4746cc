package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3001}
		assert.Equal(t, ":3001", cfg.Addr())
	})

	t.Run("BaseURL joins url and prefix", func(t *testing.T) {
		cfg := &Config{APIURL: "http://localhost:3000/", APIPrefix: "/api"}
		assert.Equal(t, "http://localhost:3000/api", cfg.BaseURL())
	})

	t.Run("TokenTTL converts days to duration", func(t *testing.T) {
		cfg := &Config{TokenExpiryDays: 7}
		assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL())
	})

	t.Run("IsProduction", func(t *testing.T) {
		assert.True(t, (&Config{AppEnv: "production"}).IsProduction())
		assert.False(t, (&Config{AppEnv: "development"}).IsProduction())
	})

	t.Run("TokenFilePath prefers explicit value", func(t *testing.T) {
		cfg := &Config{TokenFile: "/tmp/token.json"}
		assert.Equal(t, "/tmp/token.json", cfg.TokenFilePath())
	})

	t.Run("APIOrigin strips path", func(t *testing.T) {
		assert.Equal(t, "https://api.example.com", (&Config{APIURL: "https://api.example.com/v1"}).APIOrigin())
		assert.Equal(t, "", (&Config{APIURL: "not a url"}).APIOrigin())
	})

	t.Run("Features mirrors toggles", func(t *testing.T) {
		cfg := &Config{EnableAnalytics: true}
		assert.Equal(t, Features{Analytics: true}, cfg.Features())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			APIURL:                "http://localhost:3000",
			APIPrefix:             "/api",
			JWTCookieName:         "job_finder_token",
			TokenExpiryDays:       7,
			RequestTimeoutSeconds: 30,
			TokenStore:            TokenStoreFile,
		}
	}

	t.Run("accepts defaults", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects relative api url", func(t *testing.T) {
		cfg := valid()
		cfg.APIURL = "localhost:3000"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects prefix without slash", func(t *testing.T) {
		cfg := valid()
		cfg.APIPrefix = "api"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive expiry", func(t *testing.T) {
		cfg := valid()
		cfg.TokenExpiryDays = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis store needs url", func(t *testing.T) {
		cfg := valid()
		cfg.TokenStore = TokenStoreRedis
		assert.Error(t, cfg.Validate())

		cfg.RedisURL = "redis://localhost:6379"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects short encryption key", func(t *testing.T) {
		cfg := valid()
		cfg.TokenEncryptionKey = "abcd"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects negative rate limit", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimitPerMin = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown store", func(t *testing.T) {
		cfg := valid()
		cfg.TokenStore = "sqlite"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad(t *testing.T) {
	keys := []string{"PORT", "API_URL", "API_PREFIX", "JWT_COOKIE_NAME", "TOKEN_EXPIRY_DAYS", "LOG_LEVEL", "ENABLE_ANALYTICS"}
	originalEnv := map[string]string{}
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		for _, k := range keys {
			os.Unsetenv(k)
		}

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3001, cfg.Port)
		assert.Equal(t, "http://localhost:3000", cfg.APIURL)
		assert.Equal(t, "/api", cfg.APIPrefix)
		assert.Equal(t, "job_finder_token", cfg.JWTCookieName)
		assert.Equal(t, 7, cfg.TokenExpiryDays)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.EnableAnalytics)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("PORT", "8080")
		os.Setenv("API_URL", "https://api.example.com")
		os.Setenv("JWT_COOKIE_NAME", "jf")
		os.Setenv("ENABLE_ANALYTICS", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://api.example.com/api", cfg.BaseURL())
		assert.Equal(t, "jf", cfg.JWTCookieName)
		assert.True(t, cfg.EnableAnalytics)
	})

	t.Run("fails on malformed integer", func(t *testing.T) {
		os.Setenv("TOKEN_EXPIRY_DAYS", "seven")

		_, err := Load()
		assert.Error(t, err)
		os.Unsetenv("TOKEN_EXPIRY_DAYS")
	})
}
