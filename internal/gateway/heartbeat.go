package gateway

import (
	"log"
	"sync"
	"time"
)

// DefaultHeartbeatInterval is the probe cadence when no override is
// configured.
const DefaultHeartbeatInterval = 30 * time.Second

// Heartbeat probes every registered session on a fixed interval and evicts
// peers that stayed silent for a full interval. Detection spans two sweeps:
// the first clears the alive flag and probes, the second evicts if nothing
// re-armed the flag in between. A session is never evicted on the very
// first sweep after it showed activity.
type Heartbeat struct {
	registry *Registry
	interval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	stopped   chan struct{}
}

// NewHeartbeat builds a supervisor over the registry. Non-positive intervals
// fall back to DefaultHeartbeatInterval.
func NewHeartbeat(registry *Registry, interval time.Duration) *Heartbeat {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	return &Heartbeat{
		registry: registry,
		interval: interval,
		stopped:  make(chan struct{}),
	}
}

// Start launches the sweep loop. Subsequent calls are no-ops.
func (h *Heartbeat) Start() {
	h.startOnce.Do(func() {
		go h.run()
	})
}

func (h *Heartbeat) run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopped:
			return
		case <-ticker.C:
			h.sweep()
		}
	}
}

// sweep runs one eviction pass. Sessions with no activity since the previous
// sweep are force-closed and removed; the rest get their flag cleared and a
// fresh probe. The eviction is not surfaced to the peer, whose channel is
// presumed dead.
func (h *Heartbeat) sweep() {
	for _, s := range h.registry.Snapshot() {
		if !s.consumeAlive() {
			log.Printf("[gateway] evicting unresponsive session %s user=%s", s.ID, s.Principal.UserID)
			s.Close()
			h.registry.Remove(s)
			continue
		}
		if err := s.Ping(); err != nil {
			log.Printf("[gateway] probe failed session=%s: %v", s.ID, err)
		}
	}
}

// Stop halts the sweep loop. Idempotent and safe if Start was never called.
func (h *Heartbeat) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopped)
	})
}
