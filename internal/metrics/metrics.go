package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// SnapshotCounts describes the size of an accepted snapshot.
type SnapshotCounts struct {
	MatchRows     int `json:"matchRows"`
	OverallRows   int `json:"overallRows"`
	Announcements int `json:"announcements"`
	Gallery       int `json:"gallery"`
	Events        int `json:"events"`
}

// Recorder keeps in-memory counters for tests and the admin surface, and forwards
// to OpenTelemetry instruments when Setup enabled them.
type Recorder struct {
	mu            sync.Mutex
	sources       map[string]*sourceStats
	accepted      int
	lastCounts    SnapshotCounts
	wsClients     int
	notifications int
	notifyErrors  int
	otel          *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources: make(map[string]*sourceStats),
		otel:    otel,
	}
}

// RecordProviderAttempt counts one source call and keeps its latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	r.otel.recordProviderAttempt(provider, duration, err)
}

// RecordRateLimit counts a throttled source response and keeps the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	r.otel.recordRateLimit(provider, retryAfter)
}

// RecordSnapshotAccepted counts a snapshot that replaced the current one.
func (r *Recorder) RecordSnapshotAccepted(counts SnapshotCounts) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.accepted++
	r.lastCounts = counts
	r.mu.Unlock()

	r.otel.recordSnapshot(counts)
}

// RecordWebsocketClients adjusts the connected live-board client gauge by delta.
func (r *Recorder) RecordWebsocketClients(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.wsClients += delta
	r.mu.Unlock()

	r.otel.recordWebsocketClients(delta)
}

// RecordNotification counts one published snapshot notification.
func (r *Recorder) RecordNotification(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.notifications++
	if err != nil {
		r.notifyErrors++
	}
	r.mu.Unlock()

	r.otel.recordNotification(err)
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the stats kept for one provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.sources[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// AcceptedSnapshots returns how many snapshots were accepted and the size of the last one.
func (r *Recorder) AcceptedSnapshots() (int, SnapshotCounts) {
	if r == nil {
		return 0, SnapshotCounts{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accepted, r.lastCounts
}

// WebsocketClients returns the number of connected live-board clients.
func (r *Recorder) WebsocketClients() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wsClients
}

// Notifications returns published notifications and how many of them failed.
func (r *Recorder) Notifications() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notifications, r.notifyErrors
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *sourceStats {
	stats, ok := r.sources[provider]
	if !ok {
		stats = &sourceStats{}
		r.sources[provider] = stats
	}
	return stats
}
