// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package verification

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// pruneThreshold is the map size above which idle hosts are dropped.
	pruneThreshold = 500
	// maxIdleAge is how long a host stays tracked without requests.
	maxIdleAge = 10 * time.Minute
)

type hostEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// HostRateLimiter keeps one token bucket per requesting host.
type HostRateLimiter struct {
	mu    sync.Mutex
	hosts map[string]*hostEntry
	limit rate.Limit
	burst int
	now   func() time.Time
}

// NewHostRateLimiter allows perSecond requests per host with the given burst.
// A non-positive perSecond disables limiting.
func NewHostRateLimiter(perSecond float64, burst int) *HostRateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &HostRateLimiter{
		hosts: make(map[string]*hostEntry),
		limit: limit,
		burst: max(burst, 1),
		now:   time.Now,
	}
}

// Limiter returns the bucket of host.
func (l *HostRateLimiter) Limiter(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.hosts) > pruneThreshold {
		cutoff := now.Add(-maxIdleAge)
		for key, entry := range l.hosts {
			if entry.lastSeen.Before(cutoff) {
				delete(l.hosts, key)
			}
		}
	}

	entry, ok := l.hosts[host]
	if !ok {
		entry = &hostEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.hosts[host] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Middleware rejects requests over the host budget with 429.
func (l *HostRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !l.Limiter(host).AllowN(l.now(), 1) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
