package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"grocery-shopper/internal/config"
	"grocery-shopper/internal/http/pprofserver"
	"grocery-shopper/internal/logx"
	"grocery-shopper/internal/repository"
	"grocery-shopper/internal/service/shopping"
)

const shutdownTimeout = 15 * time.Second

var ensureSchema = repository.EnsureSchema

// Runner runs the HTTP service.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	logger := loggerFrom(container)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		panic(err)
	}
}

func loggerFrom(container *dig.Container) logx.Logger {
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

type appIn struct {
	dig.In

	Ctx      context.Context
	Cfg      *config.Config
	Logger   logx.Logger
	Server   *http.Server
	Pool     *pgxpool.Pool
	Redis    *redis.Client `optional:"true"`
	Registry *shopping.Registry
	Pprof    *pprofserver.Server `optional:"true"`
}

func appRun(in appIn) error {
	if in.Pool != nil {
		if err := ensureSchema(in.Ctx, in.Pool); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	startServer(in.Server, in.Logger, errCh)
	stopRefresh := startRefreshLoop(in.Ctx, in.Registry, in.Cfg.Shopping.RefreshInterval, in.Logger)
	if in.Pprof != nil {
		go func() {
			if err := in.Pprof.Run(in.Ctx); err != nil {
				in.Logger.Error("pprof server error", logx.Err(err))
			}
		}()
	}

	var runErr error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down service-shopper")
		runErr = in.Ctx.Err()
	case err := <-errCh:
		in.Logger.Error("listen error", logx.Err(err))
		runErr = err
	}

	stopRefresh()
	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	in.Registry.CloseAll()
	closeResources(in.Pool, in.Redis, in.Logger)
	_ = in.Logger.Sync()
	return runErr
}

func startServer(server *http.Server, logger logx.Logger, errCh chan<- error) {
	go func() {
		logger.Info("service-shopper listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

type approvalRefresher interface {
	RefreshAwaitingApproval(ctx context.Context) (int, error)
}

// startRefreshLoop polls sessions with items awaiting customer approval.
func startRefreshLoop(ctx context.Context, reg approvalRefresher, interval time.Duration, logger logx.Logger) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return cancel
	}
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := reg.RefreshAwaitingApproval(ctx)
				if err != nil && ctx.Err() == nil {
					logger.Warn("awaiting approval refresh incomplete", logx.Int("refreshed", n), logx.Err(err))
				} else if n > 0 {
					logger.Debug("awaiting approval refreshed", logx.Int("refreshed", n))
				}
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, rdb *redis.Client, logger logx.Logger) {
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
