package http

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type window struct {
	start time.Time
	hits  int
}

// MemoryRateLimiter counts requests per client in fixed windows, the same
// policy RedisRateLimiter applies, but held in this process only.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	capacity int
	length   time.Duration
	windows  map[string]*window
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

func NewMemoryRateLimiter(capacity int, length time.Duration) *MemoryRateLimiter {
	l := &MemoryRateLimiter{
		capacity: capacity,
		length:   length,
		windows:  make(map[string]*window),
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || l.expired(w, now) {
		w = &window{start: now}
		l.windows[key] = w
	}

	w.hits++
	return w.hits <= l.capacity
}

// Stop ends the background sweep. Safe to call more than once.
func (l *MemoryRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *MemoryRateLimiter) expired(w *window, now time.Time) bool {
	return now.Sub(w.start) >= l.length
}

func (l *MemoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.done:
			return
		}
	}
}

// sweep forgets clients whose window has closed.
func (l *MemoryRateLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if l.expired(w, now) {
			delete(l.windows, key)
		}
	}
}
