// Package throttle limits how fast clients may call the API and how fast the
// API may call upstream providers.
package throttle

import (
	"sync"
	"time"
)

const (
	// windowDuration is the sliding window every client limit is counted over
	windowDuration = 60 * time.Second
	// cleanupInterval is how often idle clients are forgotten
	cleanupInterval = 10 * time.Minute
	// idleTimeout is how long a client may stay silent before it is forgotten
	idleTimeout = 10 * time.Minute
)

// Floodgate limits each client to a number of requests per sliding minute.
type Floodgate struct {
	limitPerMinute int
	entries        map[string]*clientEntry
	mutex          sync.Mutex
	stopCleanup    chan struct{}
	stopOnce       sync.Once
	now            func() time.Time
}

type clientEntry struct {
	timestamps []time.Time
	lastSeen   time.Time
}

// NewFloodgate starts a floodgate and its background cleanup. Call Stop when
// done.
func NewFloodgate(limitPerMinute int) *Floodgate {
	fg := &Floodgate{
		limitPerMinute: limitPerMinute,
		entries:        make(map[string]*clientEntry),
		stopCleanup:    make(chan struct{}),
		now:            time.Now,
	}

	go fg.cleanup()

	return fg
}

// Stop ends the background cleanup. It is safe to call more than once.
func (fg *Floodgate) Stop() {
	fg.stopOnce.Do(func() {
		close(fg.stopCleanup)
	})
}

// Allow records a request from client. When the client is over its limit the
// request is not recorded and retryAfter tells when the oldest request in the
// window expires.
func (fg *Floodgate) Allow(client string) (allowed bool, retryAfter time.Duration) {
	now := fg.now()

	fg.mutex.Lock()
	defer fg.mutex.Unlock()

	entry, exists := fg.entries[client]
	if !exists {
		entry = &clientEntry{
			timestamps: make([]time.Time, 0, fg.limitPerMinute+1),
		}
		fg.entries[client] = entry
	}
	entry.lastSeen = now

	windowStart := now.Add(-windowDuration)
	valid := entry.timestamps[:0]
	for _, ts := range entry.timestamps {
		if ts.After(windowStart) {
			valid = append(valid, ts)
		}
	}
	entry.timestamps = valid

	if len(entry.timestamps) >= fg.limitPerMinute {
		if len(entry.timestamps) == 0 {
			return false, windowDuration
		}
		return false, entry.timestamps[0].Add(windowDuration).Sub(now)
	}

	entry.timestamps = append(entry.timestamps, now)
	return true, 0
}

func (fg *Floodgate) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fg.performCleanup()
		case <-fg.stopCleanup:
			return
		}
	}
}

func (fg *Floodgate) performCleanup() {
	fg.mutex.Lock()
	defer fg.mutex.Unlock()

	cutoff := fg.now().Add(-idleTimeout)
	for key, entry := range fg.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(fg.entries, key)
		}
	}
}

// Stats returns the floodgate state for monitoring.
func (fg *Floodgate) Stats() Stats {
	fg.mutex.Lock()
	defer fg.mutex.Unlock()

	return Stats{
		ActiveClients:  len(fg.entries),
		LimitPerMinute: fg.limitPerMinute,
		WindowSeconds:  int(windowDuration.Seconds()),
	}
}

// Stats contains floodgate statistics
type Stats struct {
	ActiveClients  int `json:"active_clients"`
	LimitPerMinute int `json:"limit_per_minute"`
	WindowSeconds  int `json:"window_seconds"`
}
