package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/metrics"
)

type JobsHandler struct {
	Store JobStore
	Hub   *events.Hub
	Icons domain.IconTable
	Log   *zap.Logger
	Now   func() time.Time
}

func (h JobsHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	jobs, err := h.Store.ListJobs(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	now := h.now()
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.WithTimePosted(now))
	}
	WriteJSON(w, http.StatusOK, out)
}

func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	fields, err := req.Fields()
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	job, err := h.Store.CreateJob(r.Context(), fields, h.Icons.Resolve(fields.CompanyName))
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	metrics.JobsCreatedTotal.Inc()
	h.Hub.Publish(events.JobEvent(RequestIDFrom(r.Context()), events.JobCreated, job.ID))
	WriteJSON(w, http.StatusCreated, job.WithTimePosted(h.now()))
}

func (h JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	job, err := h.Store.GetJob(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	WriteJSON(w, http.StatusOK, job.WithTimePosted(h.now()))
}

// Update replaces every client field. The company logo is kept from creation
// even when company_name changes.
func (h JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	var req JobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}
	fields, err := req.Fields()
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	job, err := h.Store.UpdateJob(r.Context(), id, fields)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	metrics.JobsUpdatedTotal.Inc()
	h.Hub.Publish(events.JobEvent(RequestIDFrom(r.Context()), events.JobUpdated, job.ID))
	WriteJSON(w, http.StatusOK, job.WithTimePosted(h.now()))
}

func (h JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	if err := h.Store.DeleteJob(r.Context(), id); err != nil {
		writeDomainError(w, r, h.Log, err)
		return
	}

	metrics.JobsDeletedTotal.Inc()
	h.Hub.Publish(events.JobEvent(RequestIDFrom(r.Context()), events.JobDeleted, id))
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
}
