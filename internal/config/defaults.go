package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "shopper_db",
}

var defaultMarketplace = Marketplace{
	BaseURL:     "http://localhost:3000/api",
	Timeout:     5 * time.Second,
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultShopping = Shopping{
	RefreshInterval:  15 * time.Second,
	OperationTimeout: 3 * time.Second,
}

var defaultRedis = Redis{
	DraftTTL: 30 * time.Minute,
}

var defaultKafka = Kafka{
	GroupID: "service-shopper-worker",
	Topic:   "variance-decisions",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       10,
	Burst:      20,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultLog = Log{
	Level:   "info",
	Backend: "slog",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultMarketplace returns the default marketplace client settings.
func DefaultMarketplace() Marketplace {
	return defaultMarketplace
}

// DefaultShopping returns the default shopping session settings.
func DefaultShopping() Shopping {
	return defaultShopping
}
