package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	pstrings "onboard/pkg/platform/strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Invite    InviteConfig
	RateLimit RateLimitConfig
}

// PostgresConfig is empty-URL optional: stores fall back to memory without it.
type PostgresConfig struct {
	URL            string
	MaxConns       int32
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig is optional: without brokers invites are only logged and the audit
// outbox is not relayed.
type KafkaConfig struct {
	Brokers       []string
	InviteTopic   string
	AuditTopic    string
	RelayInterval time.Duration
	RelayBatch    int
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// InviteConfig controls invitation tokens and acceptance serialization.
type InviteConfig struct {
	BaseURL string
	TTL     time.Duration
	LockTTL time.Duration
}

// RateLimitConfig throttles the public invite validation endpoint per client IP.
type RateLimitConfig struct {
	Disabled                bool
	InviteValidatePerWindow int
	Window                  time.Duration
}

// DefaultInviteTTL is seven days.
const DefaultInviteTTL = 10080 * time.Minute

// IsDevelopment reports whether development-only behavior (echoing invite links) is on.
func (s Server) IsDevelopment() bool {
	return s.Environment != EnvProduction
}

// FromEnv builds the configuration from environment variables, loading a .env file
// first when one exists so main stays lean.
func FromEnv() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Server{
		Addr:          getEnv("ONBOARD_ADDR", ":8080"),
		Environment:   getEnv("APP_ENV", EnvDevelopment),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:     getEnv("JWT_ISSUER", "onboard"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "onboard-api"),
		Postgres: PostgresConfig{
			URL:            os.Getenv("DATABASE_URL"),
			MaxConns:       int32(getInt("DATABASE_MAX_CONNS", 10)),
			ConnectTimeout: getDuration("DATABASE_CONNECT_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:       pstrings.SplitList(os.Getenv("KAFKA_BROKERS")),
			InviteTopic:   getEnv("KAFKA_INVITE_TOPIC", "onboarding.invite-deliveries"),
			AuditTopic:    getEnv("KAFKA_AUDIT_TOPIC", "onboarding.audit-events"),
			RelayInterval: getDuration("AUDIT_RELAY_INTERVAL", 2*time.Second),
			RelayBatch:    getInt("AUDIT_RELAY_BATCH", 100),
		},
		Invite: InviteConfig{
			BaseURL: getEnv("CLIENT_INVITE_URL", "https://app.example.com/accept-invite"),
			TTL:     getDuration("INVITE_TTL", DefaultInviteTTL),
			LockTTL: getDuration("INVITE_LOCK_TTL", 15*time.Second),
		},
		RateLimit: RateLimitConfig{
			Disabled:                getBool("RATELIMIT_DISABLED", false),
			InviteValidatePerWindow: getInt("RATELIMIT_INVITE_VALIDATE", 30),
			Window:                  getDuration("RATELIMIT_WINDOW", time.Minute),
		},
	}

	if cfg.JWTSigningKey == "" {
		if !cfg.IsDevelopment() {
			return Server{}, errors.New("JWT_SIGNING_KEY is required in production")
		}
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	if cfg.Environment != EnvDevelopment && cfg.Environment != EnvProduction {
		return Server{}, fmt.Errorf("unknown APP_ENV %q", cfg.Environment)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go duration strings ("15s") or bare minutes ("10080").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if minutes, err := strconv.Atoi(raw); err == nil {
		return time.Duration(minutes) * time.Minute
	}
	return fallback
}
