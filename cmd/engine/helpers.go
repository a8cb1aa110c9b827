package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/httpapi"
	"jobboard-engine/internal/metrics"
	"jobboard-engine/internal/scheduler"
	"jobboard-engine/internal/store"
)

const iconsFileName = "icons.yml"

func dataDirFromEnv() string {
	if d := strings.TrimSpace(os.Getenv("JOBBOARD_DATA_DIR")); d != "" {
		return d
	}
	return "."
}

// loadConfig resolves the effective config: defaults, then config.yml, then
// icons.yml, then JOBBOARD_* env vars.
func loadConfig(dataDir string) (config.Config, []string, error) {
	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config load (%s): %w", cfgPath, err)
	}
	if err := config.OverlayIcons(&cfg, filepath.Join(dataDir, iconsFileName)); err != nil {
		return config.Config{}, nil, fmt.Errorf("icons overlay: %w", err)
	}
	config.ApplyEnv(&cfg)

	cfg, v := config.NormalizeAndValidate(cfg)
	if !v.OK() {
		return config.Config{}, v.Warnings, fmt.Errorf("invalid config: %s", strings.Join(v.Errors, "; "))
	}
	return cfg, v.Warnings, nil
}

// openStore opens and migrates the job database, seeding it when enabled.
func openStore(ctx context.Context, cfg config.Config, dataDir string, log *zap.Logger) (*store.DB, error) {
	dbPath := cfg.DBPath(dataDir)
	var opts []store.Option
	if !cfg.App.LockFile {
		opts = append(opts, store.WithoutLock())
	}
	db, err := store.Open(dbPath, opts...)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(db.Pool); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.Seed.Enabled {
		sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		added, err := db.SeedIfEmpty(sctx)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		if added > 0 {
			metrics.SeededJobsTotal.Add(float64(added))
			log.Info("seeded sample jobs", zap.Int("added", added))
		}
	}

	log.Info("store ready", zap.String("db", dbPath))
	return db, nil
}

const (
	rateLimitSweep = time.Minute
	limiterIdle    = 10 * time.Minute
	gaugeTimeout   = 2 * time.Second
)

type backgroundTask struct {
	name     string
	interval time.Duration
	run      scheduler.Task
}

// backgroundTasks lists the periodic work the config asks for. With the
// defaults (no keepalive, no rate limiting) it is empty.
func backgroundTasks(cfg config.Config, hub *events.Hub, lim *httpapi.ClientLimiter, log *zap.Logger) []backgroundTask {
	var tasks []backgroundTask
	if cfg.Events.KeepaliveSeconds > 0 {
		tasks = append(tasks, backgroundTask{
			name:     "keepalive",
			interval: time.Duration(cfg.Events.KeepaliveSeconds) * time.Second,
			run:      keepalive(hub),
		})
	}
	if lim != nil {
		tasks = append(tasks, backgroundTask{
			name:     "rate-limit-sweep",
			interval: rateLimitSweep,
			run:      pruneLimiter(lim, log),
		})
	}
	return tasks
}

// keepalive pings open /events streams so idle proxies keep them open.
func keepalive(hub *events.Hub) scheduler.Task {
	return func(ctx context.Context) error {
		if hub.Subscribers() > 0 {
			hub.Publish(events.MakeEvent("", events.Ping, 1, nil))
		}
		return nil
	}
}

func pruneLimiter(lim *httpapi.ClientLimiter, log *zap.Logger) scheduler.Task {
	return func(ctx context.Context) error {
		if n := lim.Prune(limiterIdle); n > 0 {
			log.Debug("pruned rate limiters", zap.Int("clients", n))
		}
		return nil
	}
}

// registerGauges exposes store and hub state, read on each /metrics scrape.
func registerGauges(db *store.DB, hub *events.Hub, log *zap.Logger) {
	metrics.RegisterStateGauges(prometheus.DefaultRegisterer,
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), gaugeTimeout)
			defer cancel()
			n, err := db.CountJobs(ctx)
			if err != nil {
				log.Warn("count jobs for metrics", zap.Error(err))
				return math.NaN()
			}
			return float64(n)
		},
		func() float64 { return float64(hub.Subscribers()) },
	)
}
