package supervisor

import (
	"context"
	"log"
	"time"

	"zekagateway.dev/canbus"
)

// Heartbeat emits the supervisor node-guard frame at a steady cadence.
type Heartbeat struct {
	Bus    *canbus.Bus
	ID     uint32
	Period time.Duration
}

// Run emits heartbeats until ctx is canceled.
func (h *Heartbeat) Run(ctx context.Context) {
	ticker := time.NewTicker(h.Period)
	defer ticker.Stop()
	for {
		if err := h.Bus.Send(canbus.Frame{ID: h.ID, Data: HeartbeatPayload, Len: 1}); err != nil {
			log.Printf("supervisor: heartbeat send: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
