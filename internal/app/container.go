package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"grocery-shopper/internal/config"
	"grocery-shopper/internal/gateway/marketplace"
	"grocery-shopper/internal/http/handlers"
	"grocery-shopper/internal/http/pprofserver"
	"grocery-shopper/internal/http/router"
	"grocery-shopper/internal/logx"
	"grocery-shopper/internal/metrics"
	"grocery-shopper/internal/repository"
	"grocery-shopper/internal/repository/drafts"
	"grocery-shopper/internal/service/decisions"
	"grocery-shopper/internal/service/preferences"
	"grocery-shopper/internal/service/shopping"
	"grocery-shopper/internal/transport/kafka"
)

type dbConnectFunc func(ctx context.Context, logger logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error)

type redisConnectFunc func(ctx context.Context, url string) (*redis.Client, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig   func() (*config.Config, error)
	dbConnect    dbConnectFunc
	redisConnect redisConnectFunc
	registerer   prometheus.Registerer
	logFatalf    func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig:   config.Load,
		dbConnect:    connectDbWithRetry,
		redisConnect: drafts.Connect,
		registerer:   prometheus.DefaultRegisterer,
		logFatalf:    log.Fatalf,
	}
}

// WithConfig replaces configuration loading with a fixed config.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithRedisConnect sets the Redis connection function
func (b *ContainerBuilder) WithRedisConnect(fn redisConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.redisConnect = fn
	}
	return b
}

// WithRegisterer sets where service metrics are registered.
func (b *ContainerBuilder) WithRegisterer(reg prometheus.Registerer) *ContainerBuilder {
	if reg != nil {
		b.registerer = reg
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the Kafka worker container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container, b.registerer); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerService(container, b.redisConnect); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the worker dig container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
	)
}

type metricsOut struct {
	dig.Out

	RateLimited prometheus.Counter `name:"rate_limit_exceeded_total"`
	Retries     prometheus.Counter `name:"gateway_retries_total"`
	Variance    *metrics.Variance
}

func registerMetrics(container *dig.Container, reg prometheus.Registerer) error {
	return provideAll(container, func() (metricsOut, error) {
		out := metricsOut{
			RateLimited: metrics.NewRateLimitExceededTotal(),
			Retries:     metrics.NewGatewayRetriesTotal(),
			Variance:    metrics.NewVariance(),
		}
		if err := metrics.Register(reg, out.RateLimited, out.Retries, out.Variance); err != nil {
			return metricsOut{}, fmt.Errorf("register metrics: %w", err)
		}
		return out, nil
	})
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container,
		providerDB,
		repository.NewVarianceAuditRepo,
	)
}

type gatewayIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Client  *marketplace.Client
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func registerGateway(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) (*marketplace.Client, error) {
			m := cfg.Marketplace
			return marketplace.NewClient(m.BaseURL, m.Token, m.Timeout)
		},
		func(in gatewayIn) *marketplace.RetryingGateway {
			m := in.Cfg.Marketplace
			return marketplace.NewRetryingGateway(in.Client, in.Logger, in.Retries, marketplace.RetryConfig{
				MaxAttempts: m.MaxAttempts,
				BaseDelay:   m.BaseDelay,
				MaxDelay:    m.MaxDelay,
			})
		},
	)
}

// newDraftCache keeps drafts in Redis when a client is configured and in process memory otherwise.
func newDraftCache(cfg *config.Config, rdb *redis.Client) preferences.DraftCache {
	if rdb == nil {
		return drafts.NewMemory(cfg.Redis.DraftTTL)
	}
	return drafts.NewRedis(rdb, cfg.Redis.DraftTTL)
}

type registryIn struct {
	dig.In

	Cfg         *config.Config
	Logger      logx.Logger
	Gateway     *marketplace.RetryingGateway
	Preferences *preferences.Store
	Audit       *repository.VarianceAuditRepo
	Variance    *metrics.Variance
}

func newShoppingRegistry(in registryIn) *shopping.Registry {
	return shopping.NewRegistry(shopping.Deps{
		Gateway:          in.Gateway,
		Preferences:      in.Preferences,
		Audit:            in.Audit,
		Metrics:          in.Variance,
		Logger:           in.Logger,
		OperationTimeout: in.Cfg.Shopping.OperationTimeout,
	})
}

func registerService(container *dig.Container, redisConnect redisConnectFunc) error {
	return provideAll(container,
		func(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
			if cfg.Redis.URL == "" {
				return nil, nil
			}
			return redisConnect(ctx, cfg.Redis.URL)
		},
		newDraftCache,
		func(gw *marketplace.RetryingGateway, cache preferences.DraftCache, cfg *config.Config, logger logx.Logger) *preferences.Store {
			return preferences.NewStore(gw, cache, cfg.Shopping.OperationTimeout, logger)
		},
		newShoppingRegistry,
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      20 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewSessionRegistry,
		handlers.NewOrderHandler,
		handlers.NewPreferenceStore,
		handlers.NewPreferencesHandler,
		handlers.NewDriftReader,
		handlers.NewAdminHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		func(cfg *config.Config, logger logx.Logger) *pprofserver.Server {
			return pprofserver.New(pprofserver.Config{
				Addr: cfg.Pprof.Addr,
				User: cfg.Pprof.User,
				Pass: cfg.Pprof.Pass,
			}, logger)
		},
		router.New,
		serverProvider,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		decisions.NewProcessor,
		func(cfg *config.Config, logger logx.Logger, p *decisions.Processor) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.Topic, makeDecisionHandler(p))
		},
	)
}
