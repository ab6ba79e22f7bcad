// Package server initializes and runs the dashboard server.
// It opens the database, applies migrations, wires services, schedules
// session cleanup and serves the REST API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/oscardash/internal/logging"
	"github.com/dmitrijs2005/oscardash/internal/server/cache"
	"github.com/dmitrijs2005/oscardash/internal/server/config"
	"github.com/dmitrijs2005/oscardash/internal/server/httpapi"
	"github.com/dmitrijs2005/oscardash/internal/server/metrics"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/oscardash/internal/server/services"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	redis             *redis.Client
	metrics           *metrics.Metrics
	userService       *services.UserService
	nominationService *services.NominationService
	statsService      *services.StatsService
}

// NewApp opens every backing resource and wires the services. The caller
// owns the returned App and must call Close.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(c.DBMaxOpenConns)
	db.SetMaxIdleConns(c.DBMaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, metrics: metrics.New()}

	var statsCache cache.Cache = cache.Noop{}
	if c.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
		if err != nil {
			// Statistics still work uncached.
			logger.Warn(ctx, "redis unavailable, statistics cache disabled", "addr", c.RedisAddr, "error", err)
		} else {
			app.redis = client
			statsCache = cache.NewRedisCache(client, c.CacheTTL)
		}
	}

	app.userService = services.NewUserService(db, rm, c, logger)
	app.nominationService = services.NewNominationService(db, rm)
	app.statsService = services.NewStatsService(db, rm, statsCache, logger)
	app.statsService.ObserveCache(app.metrics.CacheLookup)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// purgeSessions is the scheduled job removing expired sessions.
func (app *App) purgeSessions(ctx context.Context) {
	n, err := app.userService.PurgeExpiredSessions(ctx)
	if err != nil {
		app.logger.Error(ctx, "session purge failed", "error", err)
		return
	}
	app.metrics.SessionsPurged(n)
	if n > 0 {
		app.logger.Info(ctx, "expired sessions purged", "count", n)
	}
}

func (app *App) startScheduler(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(app.config.SessionPurgeSchedule, func() { app.purgeSessions(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid session purge schedule %q: %w", app.config.SessionPurgeSchedule, err)
	}
	c.Start()
	return c, nil
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(httpapi.Options{
		Address:         app.config.HTTPAddr,
		SecureCookies:   app.config.IsProduction(),
		ShutdownTimeout: app.config.ShutdownTimeout,
		ReleaseMode:     app.config.IsProduction(),
	}, app.logger, app.userService, app.nominationService, app.statsService, app.db, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until the server stops, either on a signal or a fatal error.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	scheduler, err := app.startScheduler(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		return
	}
	defer func() { <-scheduler.Stop().Done() }()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
}

// Close releases the database and cache connections.
func (app *App) Close() error {
	var firstErr error
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if err := app.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
