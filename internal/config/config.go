// Package config loads application configuration from environment
// variables. A local .env file is honoured when present so the service can
// run outside of a container without exporting everything by hand.
package config

import (
	"context"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds every runtime setting the service recognises.
type Config struct {
	Env  string `env:"APP_ENV,  default=dev"`
	Port string `env:"APP_PORT, default=3000"`

	// AllowedOrigins is the comma separated list of origins permitted by
	// CORS. The static frontend is served from a different port in dev.
	AllowedOrigins string `env:"ALLOWED_ORIGINS, default=http://localhost:5500,http://127.0.0.1:5500"`

	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	DB    DBConfig
	JWT   JWTConfig
	Mail  MailConfig
	Redis RedisConfig

	// RabbitURL is the AMQP endpoint order.confirmed events are published
	// to. Publishing is best-effort; an empty value disables it.
	RabbitURL string `env:"RABBITMQ_URL"`

	BcryptCost int `env:"BCRYPT_COST, default=10"`

	CacheTTL        time.Duration `env:"CACHE_TTL, default=30s"`
	RateLimitPerMin int           `env:"RATE_LIMIT_PER_MIN, default=120"`
}

// DBConfig carries the MySQL connection parameters.
type DBConfig struct {
	User string `env:"DB_USER, default=root"`
	Pass string `env:"DB_PASS"`
	Host string `env:"DB_HOST, default=localhost"`
	Port string `env:"DB_PORT, default=3306"`
	Name string `env:"DB_NAME, default=techup"`
}

// JWTConfig carries the signing secret and token lifetime.
type JWTConfig struct {
	Secret  string        `env:"JWT_SECRET, required"`
	Expires time.Duration `env:"JWT_EXPIRES, default=168h"`
}

// MailConfig carries the SMTP transport credentials. When User or Pass is
// empty the mailer short-circuits and the rest of the system carries on.
type MailConfig struct {
	Host       string `env:"MAIL_HOST, default=smtp.gmail.com"`
	Port       int    `env:"MAIL_PORT, default=465"`
	User       string `env:"MAIL_USER"`
	Pass       string `env:"MAIL_PASS"`
	AdminEmail string `env:"ADMIN_EMAIL"`
}

// RedisConfig carries the cache/rate-limit store parameters.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load reads a .env file if one exists and then resolves the Config from
// the process environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins returns AllowedOrigins split into a clean slice.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
