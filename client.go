package igclient

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hexathral/igclient/internal/negotiate"
	"github.com/hexathral/igclient/internal/wire"
	"github.com/hexathral/igclient/session"
)

// Client is an authenticated connection to the service. Build one through
// [Builder.Build], call [Client.Login] once, then issue resource
// operations from any number of goroutines.
type Client struct {
	config     Config
	store      session.Store
	builder    *wire.Builder
	transport  *wire.Transport
	negotiator *negotiate.Negotiator
	logger     *slog.Logger
	metrics    *Metrics

	// mu guards the credential pair; the token itself is an immutable
	// value swapped atomically.
	mu       sync.Mutex
	username string
	password string

	current atomic.Pointer[session.Token]

	// now is an injection point for tests.
	now func() time.Time
}

// MetricsSnapshot returns a point-in-time copy of the client counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil {
		return
	}
	c.metrics.inc(id)
}

func (c *Client) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
