// Command cleanup removes expired lookup cache rows and lookup history older
// than the configured retention period. It is intended to be invoked by an
// external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/history"
	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/lookupcache"
	"github.com/heartmarshall/wordlookup/internal/app"
	"github.com/heartmarshall/wordlookup/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if !cfg.Database.Enabled() {
		logger.Error("cleanup requires DATABASE_DSN")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now()

	cacheThreshold := now.Add(-cfg.Cache.TTL)
	purged, err := lookupcache.New(pool).DeleteExpired(ctx, cacheThreshold)
	if err != nil {
		logger.Error("cache cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", cacheThreshold),
		)
		os.Exit(1)
	}

	historyThreshold := now.Add(-cfg.History.Retention)
	deleted, err := history.New(pool).DeleteOlderThan(ctx, historyThreshold)
	if err != nil {
		logger.Error("history cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", historyThreshold),
		)
		os.Exit(1)
	}

	logger.Info("cleanup completed",
		slog.Int64("cache_purged", purged),
		slog.Time("cache_threshold", cacheThreshold),
		slog.Int64("history_deleted", deleted),
		slog.Time("history_threshold", historyThreshold),
	)
}
