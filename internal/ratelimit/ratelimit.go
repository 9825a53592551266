package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/creativepathway/ml-service/internal/config"
)

// Rule allows Requests per Window for a single client.
type Rule struct {
	Requests int
	Window   time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per (route, client) pair. Routes without a
// rule are never limited.
type Limiter struct {
	mu      sync.Mutex
	rules   map[string]Rule
	clients map[string]map[string]*client
	now     func() time.Time
}

func NewLimiter(rules map[string]Rule) *Limiter {
	clients := make(map[string]map[string]*client, len(rules))
	for route := range rules {
		clients[route] = map[string]*client{}
	}
	return &Limiter{
		rules:   rules,
		clients: clients,
		now:     time.Now,
	}
}

// NewFromConfig returns nil when rate limiting is disabled.
func NewFromConfig(cfg *config.RateLimitConfig, healthRoute string, predictRoute string) *Limiter {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	return NewLimiter(map[string]Rule{
		healthRoute:  {Requests: cfg.Health.Requests, Window: cfg.Health.Window},
		predictRoute: {Requests: cfg.Predict.Requests, Window: cfg.Predict.Window},
	})
}

// Allow consumes a token for clientKey on route. When the bucket is empty it
// returns false and how long the client should wait before retrying.
func (l *Limiter) Allow(route string, clientKey string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rule, ok := l.rules[route]
	if !ok {
		return true, 0
	}

	now := l.now()
	c, ok := l.clients[route][clientKey]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Every(rule.Window/time.Duration(rule.Requests)), rule.Requests)}
		l.clients[route][clientKey] = c
	}
	c.lastSeen = now

	reservation := c.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, rule.Window
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Prune forgets clients that have not been seen for longer than the window of
// their route, their buckets are full again by then.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for route, clients := range l.clients {
		window := l.rules[route].Window
		for key, c := range clients {
			if now.Sub(c.lastSeen) > window {
				delete(clients, key)
				removed++
			}
		}
	}
	return removed
}

// Clients returns the number of tracked clients across all routes.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, clients := range l.clients {
		total += len(clients)
	}
	return total
}

// Run prunes idle clients every interval until ctx is done.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Prune()
		}
	}
}
