package http

import (
	"sync"
	"time"
)

const (
	staleVisitorAge = 1 * time.Hour
	sweepInterval   = 30 * time.Minute
)

type visitor struct {
	remaining  int
	lastRefill time.Time
}

// RateLimiter grants each client IP a fixed number of requests per refill
// window. Idle entries are swept periodically so the map stays bounded.
type RateLimiter struct {
	mu        sync.Mutex
	capacity  int
	window    time.Duration
	visitors  map[string]*visitor
	stopSweep chan struct{}
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity:  capacity,
		window:    window,
		visitors:  make(map[string]*visitor),
		stopSweep: make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stopSweep:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for ip, v := range r.visitors {
		if now.Sub(v.lastRefill) > staleVisitorAge {
			delete(r.visitors, ip)
		}
	}
}

func (r *RateLimiter) Stop() {
	close(r.stopSweep)
}

func (r *RateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	v, exists := r.visitors[ip]
	if !exists {
		r.visitors[ip] = &visitor{
			remaining:  r.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	if now.Sub(v.lastRefill) >= r.window {
		v.remaining = r.capacity
		v.lastRefill = now
	}

	if v.remaining <= 0 {
		return false
	}

	v.remaining--
	return true
}
