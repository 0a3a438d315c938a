package supervisor

import (
	"context"
	"testing"
	"time"

	"zekagateway.dev/canbus"
)

func TestHeartbeatFrameIsOneByte(t *testing.T) {
	ft := canbus.NewFakeTransport()
	bus := canbus.NewBus(ft)
	h := &Heartbeat{Bus: bus, ID: 0x700 + 0x5E, Period: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	defer cancel()

	f := <-ft.Sent()
	if f.ID != 0x700+0x5E {
		t.Errorf("ID = %#x, want %#x", f.ID, 0x700+0x5E)
	}
	if f.Len != 1 {
		t.Errorf("Len = %d, want 1", f.Len)
	}
	if f.Data[0] != 0x05 {
		t.Errorf("Data[0] = %#x, want 0x05", f.Data[0])
	}
}
