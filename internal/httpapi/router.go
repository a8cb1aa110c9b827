package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewMux registers every route. Collection routes answer with and without the
// trailing slash.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Jobs
	jh := JobsHandler{Store: d.Store, Hub: d.Hub, Icons: d.Icons, Log: log, Now: d.Now}
	collection := methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodPost: jh.Create,
	})
	mux.HandleFunc("/jobs", collection)
	mux.HandleFunc("/jobs/{$}", collection)
	mux.HandleFunc("/jobs/{id}", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    jh.Get,
		http.MethodPut:    jh.Update,
		http.MethodDelete: jh.Delete,
	}))

	// Lookups
	lh := LookupsHandler{Store: d.Store, Log: log}
	locations := methodMux(map[string]http.HandlerFunc{http.MethodGet: lh.Locations})
	mux.HandleFunc("/locations", locations)
	mux.HandleFunc("/locations/{$}", locations)
	jobTypes := methodMux(map[string]http.HandlerFunc{http.MethodGet: lh.JobTypes})
	mux.HandleFunc("/job-types", jobTypes)
	mux.HandleFunc("/job-types/{$}", jobTypes)

	// SSE events, only with a hub to stream from
	if d.Hub != nil {
		eh := EventsHandler{Hub: d.Hub}
		mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
			http.MethodGet: eh.ServeSSE,
		}))
	}

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// NewHandler wraps the mux in the standard middleware stack.
func NewHandler(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return Chain(NewMux(d),
		RequestID,
		AccessLog(log),
		Metrics,
		Recover(log),
		Cors(d.AllowedOrigins),
		RateLimit(d.Limiter),
	)
}
