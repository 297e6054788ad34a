// Package ratelimit provides per-client token-bucket rate limiting for the
// HTTP API.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket is a refilling bucket guarded by its own mutex.
type tokenBucket struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	lastUsed   time.Time
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	now := time.Now()
	return &tokenBucket{
		tokens:     float64(capacity),
		capacity:   float64(capacity),
		refillRate: refillRate,
		lastRefill: now,
		lastUsed:   now,
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	tb.lastUsed = time.Now()

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

func (tb *tokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.tokens += elapsed * tb.refillRate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

func (tb *tokenBucket) status() (remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	remaining = int(tb.tokens)
	if tb.tokens < tb.capacity && tb.refillRate > 0 {
		secondsToFull := (tb.capacity - tb.tokens) / tb.refillRate
		resetTime = time.Now().Add(time.Duration(secondsToFull * float64(time.Second)))
	} else {
		resetTime = time.Now()
	}
	return remaining, resetTime
}

// Info describes the rate-limit state returned with each decision.
type Info struct {
	Limit     int
	Remaining int
	ResetTime time.Time
}

// Config holds the limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       []string
	Blacklist       []string
	EndpointConfigs []EndpointConfig
}

// Limiter tracks buckets per client and endpoint tier.
type Limiter struct {
	config  *Config
	mu      sync.RWMutex
	buckets map[string]*tokenBucket
	done    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	l := &Limiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
		done:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow decides whether the client may make this request.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{}
	}
	// Health checks are never limited.
	if path == "/health" {
		return true, Info{}
	}
	for _, ip := range l.config.Blacklist {
		if ip == clientID {
			return false, Info{Limit: 0, Remaining: 0, ResetTime: time.Now().Add(l.config.DefaultWindow)}
		}
	}
	for _, ip := range l.config.Whitelist {
		if ip == clientID {
			return true, Info{}
		}
	}

	limit := l.config.DefaultLimit
	window := l.config.DefaultWindow
	burst := limit
	key := clientID + ":default"
	if ec := MatchEndpoint(path, method, l.config.EndpointConfigs); ec != nil {
		limit = ec.Limit
		window = ec.Window
		burst = ec.Burst
		if burst <= 0 {
			burst = limit
		}
		key = clientID + ":" + ec.Method + ":" + ec.Path
	}

	bucket := l.getBucket(key, limit, window, burst)
	allowed := bucket.allow()
	remaining, resetTime := bucket.status()
	return allowed, Info{Limit: limit, Remaining: remaining, ResetTime: resetTime}
}

func (l *Limiter) getBucket(key string, limit int, window time.Duration, burst int) *tokenBucket {
	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()
	if ok {
		return bucket
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if bucket, ok = l.buckets[key]; ok {
		return bucket
	}
	refillRate := float64(limit) / window.Seconds()
	bucket = newTokenBucket(burst, refillRate)
	l.buckets[key] = bucket
	return bucket
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanupBuckets()
		case <-l.done:
			return
		}
	}
}

// cleanupBuckets drops buckets idle for more than two cleanup intervals.
func (l *Limiter) cleanupBuckets() {
	cutoff := time.Now().Add(-2 * l.config.CleanupInterval)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, bucket := range l.buckets {
		bucket.mu.Lock()
		idle := bucket.lastUsed.Before(cutoff)
		bucket.mu.Unlock()
		if idle {
			delete(l.buckets, key)
		}
	}
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.done) })
}
