package httpapi

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/store"
)

// JobStore is the persistence the handlers need; *store.DB satisfies it.
type JobStore interface {
	CreateJob(ctx context.Context, f domain.JobFields, logo string) (domain.Job, error)
	GetJob(ctx context.Context, id int64) (domain.Job, error)
	ListJobs(ctx context.Context, f store.JobFilter) ([]domain.Job, error)
	UpdateJob(ctx context.Context, id int64, f domain.JobFields) (domain.Job, error)
	DeleteJob(ctx context.Context, id int64) error
	DistinctValues(ctx context.Context, field string) ([]string, error)
}

type Deps struct {
	Store JobStore
	Hub   *events.Hub
	Icons domain.IconTable
	Log   *zap.Logger

	// Now renders time_posted; defaults to time.Now.
	Now func() time.Time

	AllowedOrigins []string
	Limiter        *ClientLimiter // nil disables rate limiting
}
