package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/chat-notes/internal/domain"
)

// limiter enforces a minimum interval between calls to one backend.
// The mutex is held across the wait, so concurrent workers hitting the
// same backend are serialized against a single logical clock: callers
// experience added latency, never failure.
type limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

func newLimiter(callsPerMinute int) *limiter {
	return &limiter{
		interval: time.Minute / time.Duration(callsPerMinute),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

func (l *limiter) wait() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if wait := l.interval - l.now().Sub(l.last); wait > 0 {
		l.sleep(wait)
	}
	l.last = l.now()
}

type limitedBackend struct {
	Backend
	limiter *limiter
}

// Limited wraps a backend with a requests-per-minute ceiling. A non-positive
// rate returns the backend unmodified.
func Limited(b Backend, callsPerMinute int) Backend {
	if callsPerMinute <= 0 {
		return b
	}
	return &limitedBackend{Backend: b, limiter: newLimiter(callsPerMinute)}
}

func (b *limitedBackend) Describe(ctx context.Context, asset domain.MediaAsset) (string, error) {
	b.limiter.wait()
	return b.Backend.Describe(ctx, asset)
}
