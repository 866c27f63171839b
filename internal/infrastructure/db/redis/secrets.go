package redis

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// secretsHash is the Redis hash holding centrally managed configuration.
// Field names are environment variable names; values are applied verbatim.
const secretsHash = "env"

// secretFields lists the fields the service is willing to import from the
// secret store. Anything else in the hash is ignored so an over-broad hash
// cannot inject arbitrary process configuration.
var secretFields = []string{
	"JWT_SECRET",
	"TOKEN_TTL_MINUTES",
	"MONGO_URI",
	"MONGO_DB",
	"ALLOWED_ORIGINS",
	"LOG_LEVEL",
}

// SecretLoader reads configuration values from a Redis hash and overlays
// them onto the process environment before config parsing.
type SecretLoader struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewSecretLoader(client *redis.Client, logger zerolog.Logger) *SecretLoader {
	return &SecretLoader{client: client, logger: logger}
}

// Load fetches the env hash and sets each allowed field as an environment
// variable, unless the variable is already set (the local environment wins
// over the remote store). Returns the number of variables applied.
func (l *SecretLoader) Load(ctx context.Context) (int, error) {
	values, err := l.client.HGetAll(ctx, secretsHash).Result()
	if err != nil {
		return 0, fmt.Errorf("fetch secrets: %w", err)
	}

	applied := 0
	for _, field := range secretFields {
		value, ok := values[field]
		if !ok || value == "" {
			continue
		}
		if _, exists := os.LookupEnv(field); exists {
			l.logger.Debug().Str("field", field).Msg("secret shadowed by local environment")
			continue
		}
		if err := os.Setenv(field, value); err != nil {
			return applied, fmt.Errorf("set %s: %w", field, err)
		}
		applied++
	}

	l.logger.Info().Int("applied", applied).Msg("secrets loaded from redis")
	return applied, nil
}
