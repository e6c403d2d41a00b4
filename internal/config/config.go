package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// Config aggregates every configuration section of the service.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Risk     RiskConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Logging  LoggingConfig
}

// ServerConfig governs the HTTP surface.
type ServerConfig struct {
	Port           string `env:"PORT"             envDefault:"3000"`
	AllowedOrigins string `env:"CORS_ORIGINS"     envDefault:"http://localhost:5173"`
	RateLimit      int    `env:"RATE_LIMIT"       envDefault:"60"`
	LoginRateLimit int    `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
}

// AuthConfig holds operator authentication settings.
type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET"`
	OperatorKeyHash string        `env:"OPERATOR_KEY_HASH"`
	OperatorRole    string        `env:"OPERATOR_ROLE"     envDefault:"agent"`
	TokenTTL        time.Duration `env:"TOKEN_TTL"         envDefault:"15m"`
}

// RiskConfig carries every tunable of the fraud engine.
type RiskConfig struct {
	TrustedEmailSuffix  string          `env:"RISK_TRUSTED_EMAIL_SUFFIX"  envDefault:"@ext.com"`
	HighBalanceCeiling  decimal.Decimal `env:"RISK_HIGH_BALANCE_CEILING"  envDefault:"100000"`
	ScoreThreshold      int             `env:"RISK_SCORE_THRESHOLD"       envDefault:"5"`
	RecencyMultiplier   decimal.Decimal `env:"RISK_RECENCY_MULTIPLIER"    envDefault:"3"`
	DeviationMultiplier decimal.Decimal `env:"RISK_DEVIATION_MULTIPLIER"  envDefault:"2"`
	SpikeMultiplier     decimal.Decimal `env:"RISK_SPIKE_MULTIPLIER"      envDefault:"3"`
	HistoryRetention    int             `env:"RISK_HISTORY_RETENTION"     envDefault:"0"`
	HistoryBackend      string          `env:"RISK_HISTORY_BACKEND"       envDefault:"memory"`
	DisposableDomains   []string        `env:"RISK_DISPOSABLE_DOMAINS"    envSeparator:"," envDefault:"tempmail"`
	BlockedIPPrefixes   []string        `env:"RISK_BLOCKED_IP_PREFIXES"   envSeparator:"," envDefault:"192.168.0."`
}

// DatabaseConfig configures the optional Postgres audit mirror.
type DatabaseConfig struct {
	Enabled  bool   `env:"AUDIT_DB_ENABLED" envDefault:"false"`
	Host     string `env:"DB_HOST"          envDefault:"localhost"`
	Port     string `env:"DB_PORT"          envDefault:"5432"`
	User     string `env:"DB_USER"          envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"      envDefault:"postgres"`
	Name     string `env:"DB_NAME"          envDefault:"ledgerguard"`
}

// DSN renders the Postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port)
}

// RedisConfig configures the Redis amount-history backend.
type RedisConfig struct {
	Host      string `env:"REDIS_HOST"       envDefault:"localhost"`
	Port      string `env:"REDIS_PORT"       envDefault:"6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB"         envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"ledgerguard"`
}

// NATSConfig configures fraud alert publishing.
type NATSConfig struct {
	URL     string `env:"NATS_URL"`
	Subject string `env:"NATS_ALERT_SUBJECT" envDefault:"fraud.alerts"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string `env:"LOG_LEVEL"          envDefault:"info"`
	Format        string `env:"LOG_FORMAT"         envDefault:"text"`
	IncludeCaller bool   `env:"LOG_INCLUDE_CALLER" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses every section from the environment.
func Load() (Config, error) {
	var cfg Config
	sections := []any{&cfg.Server, &cfg.Auth, &cfg.Risk, &cfg.Database, &cfg.Redis, &cfg.NATS, &cfg.Logging}
	for _, s := range sections {
		if err := ParseEnv(s); err != nil {
			return Config{}, err
		}
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	positive := []struct {
		key   string
		value decimal.Decimal
	}{
		{"RISK_HIGH_BALANCE_CEILING", cfg.Risk.HighBalanceCeiling},
		{"RISK_RECENCY_MULTIPLIER", cfg.Risk.RecencyMultiplier},
		{"RISK_DEVIATION_MULTIPLIER", cfg.Risk.DeviationMultiplier},
		{"RISK_SPIKE_MULTIPLIER", cfg.Risk.SpikeMultiplier},
	}
	for _, p := range positive {
		if !p.value.IsPositive() {
			return Config{}, fmt.Errorf("%s must be positive, got %s", p.key, p.value)
		}
	}
	if cfg.Risk.ScoreThreshold <= 0 {
		return Config{}, fmt.Errorf("RISK_SCORE_THRESHOLD must be positive, got %d", cfg.Risk.ScoreThreshold)
	}
	if cfg.Risk.HistoryRetention < 0 {
		return Config{}, fmt.Errorf("RISK_HISTORY_RETENTION must not be negative, got %d", cfg.Risk.HistoryRetention)
	}
	switch cfg.Risk.HistoryBackend {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("unknown RISK_HISTORY_BACKEND %q", cfg.Risk.HistoryBackend)
	}
	return cfg, nil
}
