package session

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LogThrottle rate-limits protocol-error logging to once per source per
// second: a sync.Map of per-endpoint limiters with periodic cleanup of
// idle entries (see DESIGN.md).
type LogThrottle struct {
	limiters sync.Map // map[string]*throttleEntry

	stopOnce sync.Once
	stopCh   chan struct{}
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLogThrottle starts a throttle that, every cleanupInterval, forgets
// sources idle for more than twice cleanupInterval.
func NewLogThrottle(cleanupInterval time.Duration) *LogThrottle {
	t := &LogThrottle{stopCh: make(chan struct{})}
	go t.cleanupLoop(cleanupInterval)
	return t
}

// Allow reports whether a protocol-error log line for source should be
// emitted right now; at most one true per second per source.
func (t *LogThrottle) Allow(source string) bool {
	now := time.Now()
	if v, ok := t.limiters.Load(source); ok {
		e := v.(*throttleEntry)
		e.lastSeen = now
		return e.limiter.Allow()
	}
	entry := &throttleEntry{limiter: rate.NewLimiter(rate.Every(time.Second), 1), lastSeen: now}
	actual, _ := t.limiters.LoadOrStore(source, entry)
	return actual.(*throttleEntry).limiter.Allow()
}

// Stop ends the background cleanup goroutine.
func (t *LogThrottle) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
}

func (t *LogThrottle) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-interval * 2)
			t.limiters.Range(func(key, value any) bool {
				if value.(*throttleEntry).lastSeen.Before(cutoff) {
					t.limiters.Delete(key)
				}
				return true
			})
		}
	}
}
