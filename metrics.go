package igclient

import "sync/atomic"

// MetricID identifies one client counter.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful session negotiations.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts failed session negotiations.
	MetricLoginFailure
	// MetricSessionCacheHit counts logins served from the credential store.
	MetricSessionCacheHit
	// MetricSessionCacheMiss counts logins that required negotiation.
	MetricSessionCacheMiss
	// MetricSessionExpired counts cached sessions discarded for stale expiry.
	MetricSessionExpired
	// MetricChallengeRaised counts logins interrupted by an identity challenge.
	MetricChallengeRaised
	// MetricFetchSuccess counts resource fetches that hydrated a model.
	MetricFetchSuccess
	// MetricFetchFailure counts resource fetches that surfaced an error.
	MetricFetchFailure
	// MetricLogout counts logout calls.
	MetricLogout

	metricCount
)

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Metrics is a fixed set of atomic counters. All methods are safe for
// concurrent use.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

func (m *Metrics) inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot copies every counter into a fresh map.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
