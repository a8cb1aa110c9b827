package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// ClientLimiter rate-limits per client address.
type ClientLimiter struct {
	mu  sync.Mutex
	m   map[string]*clientEntry
	r   rate.Limit
	b   int
	now func() time.Time
}

// NewClientLimiter returns nil when reqPerSec <= 0, which RateLimit treats as
// "no limit".
func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	if reqPerSec <= 0 {
		return nil
	}
	return &ClientLimiter{
		m:   make(map[string]*clientEntry),
		r:   rate.Limit(reqPerSec),
		b:   burst,
		now: time.Now,
	}
}

func (cl *ClientLimiter) limiterFor(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if e, ok := cl.m[client]; ok {
		e.seen = cl.now()
		return e.lim
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[client] = &clientEntry{lim: lim, seen: cl.now()}
	return lim
}

func (cl *ClientLimiter) Allow(client string) bool {
	return cl.limiterFor(client).Allow()
}

// Prune forgets clients idle for longer than idle and reports how many were
// dropped. Safe on a nil limiter.
func (cl *ClientLimiter) Prune(idle time.Duration) int {
	if cl == nil {
		return 0
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()

	cutoff := cl.now().Add(-idle)
	n := 0
	for client, e := range cl.m {
		if e.seen.Before(cutoff) {
			delete(cl.m, client)
			n++
		}
	}
	return n
}

func (cl *ClientLimiter) Clients() int {
	if cl == nil {
		return 0
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.m)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr can sometimes be just a host
		return r.RemoteAddr
	}
	return host
}
