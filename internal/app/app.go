package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/history"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/lookupcache"
	"github.com/heartmarshall/wordlookup/internal/auth"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/service/lookup"
	"github.com/heartmarshall/wordlookup/internal/transport/middleware"
	"github.com/heartmarshall/wordlookup/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database when one is configured, wires the lookup service and serves
// the HTTP API until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("dictionary", cfg.Dictionary.Provider),
		slog.Bool("database", cfg.Database.Enabled()),
		slog.Bool("auth", cfg.Auth.Enabled()),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict := NewDictionary(cfg, logger)

	// The repositories are passed as untyped nils when there is no database.
	svc := lookup.NewService(logger, dict, nil, nil, cfg.Cache, lookup.WithLookupTimeout(LookupTimeout(cfg)))
	health := rest.NewHealthHandler(nil, BuildVersion(), cfg.Dictionary.Provider)

	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}

		svc = lookup.NewService(logger, dict, lookupcache.New(pool), history.New(pool), cfg.Cache, lookup.WithLookupTimeout(LookupTimeout(cfg)))
		health = rest.NewHealthHandler(pool, BuildVersion(), cfg.Dictionary.Provider)
	} else {
		logger.Warn("no database configured: lookup cache and history are disabled")
	}

	var tokens *auth.JWTManager
	if cfg.Auth.Enabled() {
		tokens = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := newRouter(routes{
		cfg:     *cfg,
		logger:  logger,
		lookup:  rest.NewLookupHandler(svc, cfg.Oxford.Region(), logger),
		health:  health,
		tokens:  tokens,
		limiter: limiter,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}
