package converter

import (
	"context"
	"testing"
	"time"

	"zekagateway.dev/canbus"
)

func TestPollerAppliesAllFiveResponses(t *testing.T) {
	ft := canbus.NewFakeTransport()
	bus := canbus.NewBus(ft)
	shadow := NewShadow()
	p := &Poller{
		Bus:          bus,
		ControlID:    0x109,
		StatusID:     0x10C,
		Shadow:       shadow,
		ReplyTimeout: 50 * time.Millisecond,
	}

	go func() {
		for i := 0; i < 5; i++ {
			req := <-ft.Sent()
			if req.ID != p.StatusID {
				t.Errorf("status request sent on ID %#x, want StatusID %#x", req.ID, p.StatusID)
			}
			resp := [8]byte{req.Data[0]}
			switch req.Data[0] {
			case StatusMain:
				resp[2] = 0x04 // running
				resp[4] = byte(Buck2QVoltage)
			case StatusFeedback1:
				resp[1], resp[2] = 0x01, 0x00 // 25.6V-ish, doesn't matter
			}
			ft.Push(canbus.Frame{ID: 0x10C, Data: resp})
		}
	}()

	p.pollOnce(context.Background())

	if !shadow.Running {
		t.Error("expected Running true after poll cycle")
	}
	if shadow.DeviceMode != Buck2QVoltage {
		t.Errorf("DeviceMode = %v, want Buck2QVoltage", shadow.DeviceMode)
	}
}

func TestPollerSkipsMissingReply(t *testing.T) {
	ft := canbus.NewFakeTransport()
	bus := canbus.NewBus(ft)
	shadow := NewShadow()
	p := &Poller{
		Bus:          bus,
		ControlID:    0x109,
		StatusID:     0x10C,
		Shadow:       shadow,
		ReplyTimeout: 10 * time.Millisecond,
	}
	// No pushed replies at all: every request times out. Must not panic or
	// hang, and the shadow stays at its zero value.
	p.pollOnce(context.Background())
	if shadow.Running {
		t.Error("expected Running to remain false with no replies")
	}
}

func TestSendCommandDetectsEchoMismatch(t *testing.T) {
	ft := canbus.NewFakeTransport()
	bus := canbus.NewBus(ft)
	payload := BuildMainControl(MainControlCommand{ResetFaults: true})

	go func() {
		<-ft.Sent()
		mismatched := payload
		mismatched[1] = 0xAA
		ft.Push(canbus.Frame{ID: 0x10C, Data: mismatched})
	}()

	err := SendCommand(context.Background(), bus, 0x109, payload, 50*time.Millisecond)
	if err != ErrEchoMismatch {
		t.Fatalf("SendCommand error = %v, want ErrEchoMismatch", err)
	}
}

func TestResetNoReplyIsNotError(t *testing.T) {
	ft := canbus.NewFakeTransport()
	bus := canbus.NewBus(ft)
	replied, err := Reset(context.Background(), bus, 0x109, Buck2QVoltage, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if replied {
		t.Error("expected replied=false with no reply queued")
	}
}

func TestResetWorkedExample(t *testing.T) {
	ft := canbus.NewFakeTransport()
	bus := canbus.NewBus(ft)

	var sent [8]byte
	go func() {
		req := <-ft.Sent()
		sent = req.Data
		ft.Push(canbus.Frame{ID: 0x10C, Data: req.Data})
	}()

	replied, err := Reset(context.Background(), bus, 0x109, Buck2QVoltage, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !replied {
		t.Fatal("expected replied=true")
	}
	want := [8]byte{0x80, 0x00, 0x81, 0x00, byte(Buck2QVoltage), 0xFF, 0xFF, 0xFF}
	if sent != want {
		t.Errorf("RESET payload = % x, want % x", sent, want)
	}
}
