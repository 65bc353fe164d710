package crawl

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter rate-limits requests per host with token buckets. Channels
// of one broadcaster usually live on one host, so the per-host key keeps
// a multi-channel run polite without serializing unrelated hosts.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second
// per host, with a burst of 1.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the limit allows a request to rawURL's host. URLs
// that fail to parse share a single bucket rather than bypassing the
// limit.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
