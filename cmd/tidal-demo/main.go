package main

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tidal/core/config"
	"github.com/dmitrymomot/tidal/core/logger"
	"github.com/dmitrymomot/tidal/core/server"
	"github.com/dmitrymomot/tidal/integration/database/pg"
	"github.com/dmitrymomot/tidal/integration/database/redis"
	"github.com/dmitrymomot/tidal/middleware"
	"github.com/dmitrymomot/tidal/pkg/ratelimiter"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var migrations, _ = fs.Sub(migrationFiles, "migrations")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	logOpts := []logger.Option{logger.WithProduction(cfg.AppName), logger.WithConfig(cfg.Log)}
	if cfg.Debug {
		logOpts = []logger.Option{logger.WithDevelopment(cfg.AppName)}
	}
	logOpts = append(logOpts, logger.WithContextValue("request_id", middleware.RequestIDKey{}))
	log := logger.New(logOpts...)

	state := &App{started: time.Now()}
	defer state.close()

	var checks []func(context.Context) error
	if cfg.UsePostgres {
		db, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			log.Error("Failed to connect to database", logger.Component("database"), logger.Error(err))
			os.Exit(1)
		}
		state.db = db
		if err := pg.Migrate(ctx, db, migrations, log); err != nil {
			log.Error("Failed to migrate database", logger.Component("database.migration"), logger.Error(err))
			os.Exit(1)
		}
		checks = append(checks, pg.Healthcheck(db))
	}

	var store ratelimiter.Store
	memStore := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(log))
	store = memStore
	if cfg.UseRedis {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		state.cache = client
		checks = append(checks, redis.Healthcheck(client))
		store = ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix(cfg.AppName+":ratelimit:"))
	}

	limiter, err := ratelimiter.NewBucket(store, cfg.RateLimit)
	if err != nil {
		log.Error("Invalid rate limit configuration", logger.Component("ratelimiter"), logger.Error(err))
		os.Exit(1)
	}

	app := newApp(state, appDeps{
		log:            log,
		limiter:        limiter,
		checks:         checks,
		requestTimeout: cfg.RequestTimeout,
		maxBodySize:    cfg.MaxBodySize,
	})

	h, err := app.Handler()
	if err != nil {
		log.Error("Invalid route configuration", logger.Component("router"), logger.Error(err))
		os.Exit(1)
	}
	for _, r := range app.Routes() {
		log.Debug("route registered", logger.Method(r.Method), logger.Route(r.Pattern))
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, h))
	if !cfg.UseRedis {
		eg.Go(memStore.Run(ctx))
	}

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
