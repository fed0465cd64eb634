package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port        int
	DB          DB
	Marketplace Marketplace
	Shopping    Shopping
	Redis       Redis
	Kafka       Kafka
	RateLimit   RateLimit
	Pprof       Pprof
	Log         Log
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Marketplace stores settings of the marketplace backend client.
type Marketplace struct {
	BaseURL     string
	Token       string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Shopping stores shopping session settings.
type Shopping struct {
	// RefreshInterval is how often sessions with items awaiting approval are refreshed.
	RefreshInterval  time.Duration
	OperationTimeout time.Duration
}

// Redis stores the preference draft cache settings. An empty URL keeps drafts in memory.
type Redis struct {
	URL      string
	DraftTTL time.Duration
}

// Kafka stores the variance decision consumer settings.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// RateLimit stores HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores the profiling server settings. An empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Log stores logger settings.
type Log struct {
	Level   string
	Backend string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.Marketplace.BaseURL, "marketplace-url", cfg.Marketplace.BaseURL, "marketplace API base URL")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level (debug, info, warn, error)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:        defaultPort,
		DB:          defaultDB,
		Marketplace: defaultMarketplace,
		Shopping:    defaultShopping,
		Redis:       defaultRedis,
		Kafka:       defaultKafka,
		RateLimit:   defaultRateLimit,
		Log:         defaultLog,
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	if _, err := strconv.Atoi(cfg.DB.Port); err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", cfg.DB.Port, err)
	}
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)

	m := &cfg.Marketplace
	m.BaseURL = envString("MARKETPLACE_BASE_URL", m.BaseURL)
	m.Token = envString("MARKETPLACE_TOKEN", m.Token)
	if m.Timeout, err = envDuration("MARKETPLACE_TIMEOUT", m.Timeout); err != nil {
		return nil, err
	}
	if m.MaxAttempts, err = envInt("MARKETPLACE_RETRY_ATTEMPTS", m.MaxAttempts); err != nil {
		return nil, err
	}
	if m.BaseDelay, err = envDuration("MARKETPLACE_RETRY_BASE_DELAY", m.BaseDelay); err != nil {
		return nil, err
	}
	if m.MaxDelay, err = envDuration("MARKETPLACE_RETRY_MAX_DELAY", m.MaxDelay); err != nil {
		return nil, err
	}

	if cfg.Shopping.RefreshInterval, err = envDuration("SHOPPING_REFRESH_INTERVAL", cfg.Shopping.RefreshInterval); err != nil {
		return nil, err
	}
	if cfg.Shopping.OperationTimeout, err = envDuration("SHOPPING_OPERATION_TIMEOUT", cfg.Shopping.OperationTimeout); err != nil {
		return nil, err
	}

	cfg.Redis.URL = envString("REDIS_URL", cfg.Redis.URL)
	if cfg.Redis.DraftTTL, err = envDuration("PREFERENCES_DRAFT_TTL", cfg.Redis.DraftTTL); err != nil {
		return nil, err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envString("KAFKA_TOPIC", cfg.Kafka.Topic)

	rl := &cfg.RateLimit
	if rl.Enabled, err = envBool("RATE_LIMIT_ENABLED", rl.Enabled); err != nil {
		return nil, err
	}
	if rl.Rate, err = envFloat("RATE_LIMIT_RATE", rl.Rate); err != nil {
		return nil, err
	}
	if rl.Burst, err = envInt("RATE_LIMIT_BURST", rl.Burst); err != nil {
		return nil, err
	}
	if rl.TTL, err = envDuration("RATE_LIMIT_TTL", rl.TTL); err != nil {
		return nil, err
	}
	if rl.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", rl.MaxBuckets); err != nil {
		return nil, err
	}

	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)

	cfg.Log.Level = envString("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Backend = envString("LOG_BACKEND", cfg.Log.Backend)

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := url.ParseRequestURI(c.Marketplace.BaseURL); err != nil {
		return fmt.Errorf("invalid marketplace url %q: %w", c.Marketplace.BaseURL, err)
	}
	if c.Marketplace.MaxAttempts < 1 {
		return fmt.Errorf("invalid marketplace retry attempts: %d", c.Marketplace.MaxAttempts)
	}
	if c.Shopping.RefreshInterval <= 0 {
		return fmt.Errorf("invalid shopping refresh interval: %s", c.Shopping.RefreshInterval)
	}
	switch c.Log.Backend {
	case "slog", "zap":
	default:
		return fmt.Errorf("invalid log backend: %q", c.Log.Backend)
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
