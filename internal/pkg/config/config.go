package config

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Host            string   `env:"HOST,             default=127.0.0.1"`
	Port            string   `env:"PORT,             default=8080"`
	Env             string   `env:"ENV,              default=development"`
	LogLevel        string   `env:"LOG_LEVEL,        default=info"`
	JWTSecret       string   `env:"JWT_SECRET"`
	TokenTTLMinutes int      `env:"TOKEN_TTL_MINUTES, default=30"`
	AllowedOrigins  []string `env:"ALLOWED_ORIGINS,  default=*"`
	SecretsFromRedis bool    `env:"SECRETS_FROM_REDIS, default=false"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=accounts"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// TokenTTL returns the configured access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// EnsureJWTSecret fills in a random signing secret when none is configured
// and reports whether it had to. A generated secret lives only for this
// process: every token issued before a restart becomes unverifiable. Fine
// for development, not a production posture.
func (c *Config) EnsureJWTSecret() (generated bool, err error) {
	if c.JWTSecret != "" {
		return false, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return false, fmt.Errorf("config: generate jwt secret: %w", err)
	}
	c.JWTSecret = base64.RawURLEncoding.EncodeToString(buf)
	return true, nil
}
