package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/actiongym/gymbot/internal/bot"
	"github.com/actiongym/gymbot/internal/config"
	"github.com/actiongym/gymbot/internal/fulfillment"
	"github.com/actiongym/gymbot/internal/logger"
	"github.com/actiongym/gymbot/internal/schedule"
	"github.com/actiongym/gymbot/internal/session"
	"github.com/actiongym/gymbot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sched, err := schedule.Load(cfg.SchedulePath)
	if err != nil {
		log.Fatal("gymbot: loading schedule", zap.String("path", cfg.SchedulePath), zap.Error(err))
	}
	for _, d := range sched.MissingDays() {
		log.Warn("gymbot: schedule has no entry for day, treating as empty", zap.Stringer("day", d))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("gymbot: opening store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer db.Close()

	router := fulfillment.NewRouter(sched, fulfillment.WithLocation(cfg.Location))
	locks := session.NewManager()

	// Periodic cleanup of idle per-conversation locks
	go locks.RunCleanup(ctx, cfg.SessionLockTTL/2, cfg.SessionLockTTL)

	handler := bot.NewHandler(router, db, locks, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      bot.Routes(handler, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("gymbot: listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreBackend),
			zap.Stringer("timezone", cfg.Location))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("gymbot: server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("gymbot: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("gymbot: shutdown", zap.Error(err))
		return
	}
	log.Info("gymbot: stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return store.NewRedisStore(pingCtx, cfg.RedisURL)
	default:
		return store.NewBoltStore(cfg.BoltPath())
	}
}
