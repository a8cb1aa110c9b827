package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/httpapi"
	"jobboard-engine/internal/logger"
	"jobboard-engine/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatalf("env file: %v", err)
	}

	dataDir := dataDirFromEnv()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	cfg, warnings, err := loadConfig(dataDir)
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	for _, w := range warnings {
		lg.Warn("config", zap.String("warning", w))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, dataDir, lg); err != nil {
		lg.Fatal("engine stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, dataDir string, lg *zap.Logger) error {
	db, err := openStore(ctx, cfg, dataDir, lg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	hub := events.NewHub()
	registerGauges(db, hub, lg)
	limiter := httpapi.NewClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	handler := httpapi.NewHandler(httpapi.Deps{
		Store:          db,
		Hub:            hub,
		Icons:          domain.NewIconTable(cfg.Icons.Companies, cfg.Icons.Default),
		Log:            lg,
		Now:            time.Now,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Limiter:        limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	// SSE streams would otherwise hold Shutdown open until the timeout.
	srv.RegisterOnShutdown(hub.Close)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("engine listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	for _, task := range backgroundTasks(cfg, hub, limiter, lg) {
		g.Go(func() error {
			lg.Info("background task enabled", zap.String("task", task.name), zap.Duration("every", task.interval))
			scheduler.Every(gctx, lg, task.interval, task.name, task.run)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
