package tcp

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// hostLimiters keeps one token bucket per client host so that reconnecting
// does not refill it. Buckets idle longer than limiterIdleTTL are evicted.
type hostLimiters struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	byHost    map[string]*hostLimiter
	lastSweep time.Time
}

type hostLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newHostLimiters(limit rate.Limit, burst int) *hostLimiters {
	return &hostLimiters{
		limit:  limit,
		burst:  burst,
		now:    time.Now,
		byHost: make(map[string]*hostLimiter),
	}
}

// get returns nil when rate limiting is disabled.
func (h *hostLimiters) get(addr net.Addr) *rate.Limiter {
	if h.limit <= 0 {
		return nil
	}
	host := hostOf(addr)
	now := h.now()

	h.mu.Lock()
	defer h.mu.Unlock()

	if now.Sub(h.lastSweep) > limiterIdleTTL {
		for k, l := range h.byHost {
			if now.Sub(l.lastSeen) > limiterIdleTTL {
				delete(h.byHost, k)
			}
		}
		h.lastSweep = now
	}

	l, ok := h.byHost[host]
	if !ok {
		l = &hostLimiter{lim: rate.NewLimiter(h.limit, h.burst)}
		h.byHost[host] = l
	}
	l.lastSeen = now
	return l.lim
}

func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
