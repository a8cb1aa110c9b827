package main

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"

	"jobboard-engine/internal/config"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/httpapi"
)

func TestBackgroundTasksOffByDefault(t *testing.T) {
	cfg := config.Default()
	lim := httpapi.NewClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	if tasks := backgroundTasks(cfg, events.NewHub(), lim, zaptest.NewLogger(t)); len(tasks) != 0 {
		t.Fatalf("default config starts %d background tasks", len(tasks))
	}
}

func TestBackgroundTasksFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Events.KeepaliveSeconds = 15
	cfg.RateLimit.RequestsPerSecond = 5
	lim := httpapi.NewClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	tasks := backgroundTasks(cfg, events.NewHub(), lim, zaptest.NewLogger(t))
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d", len(tasks))
	}
	if tasks[0].name != "keepalive" || tasks[0].interval.Seconds() != 15 {
		t.Fatalf("keepalive task = %+v", tasks[0])
	}
	if tasks[1].name != "rate-limit-sweep" {
		t.Fatalf("second task = %q", tasks[1].name)
	}
}

func TestKeepalivePingsSubscribers(t *testing.T) {
	hub := events.NewHub()
	if err := keepalive(hub)(context.Background()); err != nil {
		t.Fatal(err)
	}

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)
	if err := keepalive(hub)(context.Background()); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-ch:
		if msg == "" {
			t.Fatal("empty ping")
		}
	default:
		t.Fatal("subscriber got no ping")
	}
}
