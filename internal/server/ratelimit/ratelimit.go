// Package ratelimit throttles clients per endpoint with token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Info reports the outcome of a rate limit check. It carries what the
// X-RateLimit response headers need: the configured limit, how many tokens
// are left, when the bucket is full again, and how long a denied client
// should wait before retrying.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds limiter-wide settings. Endpoint-specific overrides live in
// EndpointConfigs; anything unmatched falls back to the default limit.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// bucket is a token bucket for one client+endpoint+method combination.
// Tokens refill continuously at rate per second, capped at capacity.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	refilled time.Time
	lastSeen time.Time
}

// take refills the bucket for elapsed time, consumes one token when
// available, and reports how many whole tokens remain and when the bucket
// is full again. Everything happens under one lock so concurrent callers
// see a consistent count.
func (b *bucket) take(now time.Time) (ok bool, remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.refilled).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.refilled = now
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		ok = true
	}

	reset = now
	if missing := b.capacity - b.tokens; missing > 0 {
		reset = now.Add(time.Duration(missing / b.rate * float64(time.Second)))
	}
	return ok, int(b.tokens), reset
}

// idleSince reports whether the bucket has gone untouched since the cutoff.
func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeen.Before(cutoff)
}

// Limiter applies per-client, per-endpoint rate limits. Buckets are created
// lazily and reaped once idle for over an hour.
type Limiter struct {
	cfg     *Config
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter builds a limiter from cfg. A nil cfg gets permissive defaults
// (1000 requests per minute). The background reaper runs only while the
// limiter is enabled with a positive cleanup interval; call Stop to end it.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
			Whitelist:       map[string]bool{},
			Blacklist:       map[string]bool{},
		}
	}

	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.reap(cfg.CleanupInterval)
	}
	return l
}

// Allow decides whether a request from clientID against method+path may
// proceed. Whitelisted clients and unlimited endpoints (Limit <= 0) always
// pass with a zero Limit in the Info; blacklisted clients never pass.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.cfg.Enabled || l.cfg.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.cfg.Blacklist[clientID] {
		return false, Info{}
	}

	ec := MatchEndpoint(path, method, l.cfg.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Limit:  l.cfg.DefaultLimit,
			Window: l.cfg.DefaultWindow,
			Burst:  l.cfg.DefaultLimit,
		}
	}
	if ec.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	b := l.bucketFor(clientID+":"+path+":"+method, ec)
	ok, remaining, reset := b.take(time.Now())

	info := Info{
		Allowed:   ok,
		Limit:     ec.Limit,
		Remaining: remaining,
		ResetTime: reset,
	}
	if !ok {
		if wait := time.Until(reset); wait > 0 {
			info.RetryAfter = wait
		}
	}
	return ok, info
}

// bucketFor returns the bucket for key, creating it from ec on first use.
func (l *Limiter) bucketFor(key string, ec *EndpointConfig) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}

	capacity := ec.Burst
	if capacity <= 0 {
		capacity = ec.Limit
	}
	now := time.Now()
	b := &bucket{
		capacity: float64(capacity),
		rate:     float64(ec.Limit) / ec.Window.Seconds(),
		tokens:   float64(capacity),
		refilled: now,
		lastSeen: now,
	}
	l.buckets[key] = b
	return b
}

// reap drops buckets idle for over an hour so long-running servers do not
// accumulate one bucket per client forever.
func (l *Limiter) reap(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-time.Hour)
			l.mu.Lock()
			for key, b := range l.buckets {
				if b.idleSince(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Stop ends the background reaper. Safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
