package converter

import (
	"bytes"
	"context"
	"errors"
	"log"
	"time"

	"zekagateway.dev/canbus"
)

// ErrEchoMismatch is logged, never returned to a caller that would retry:
// the converter may silently clamp a setpoint, and that isn't an error
// condition.
var ErrEchoMismatch = errors.New("converter: command echo mismatch")

// ErrInitFailed marks the fatal startup condition where the initial reset
// command gets no reply.
var ErrInitFailed = errors.New("converter: initial reset failed")

// Poller issues the five status requests at a steady cadence and keeps a
// Shadow current.
type Poller struct {
	Bus          *canbus.Bus
	ControlID    uint32
	StatusID     uint32
	Shadow       *Shadow
	Period       time.Duration
	ReplyTimeout time.Duration
	Verbose      bool

	// IsStandbyRequest reports whether the latest supervisor directive
	// request is STANDBY, consulted by the fault latch clear rule. The
	// poller has no notion of supervisor directives itself; the caller
	// wires this to the directives record.
	IsStandbyRequest func() bool
}

// Run polls until ctx is canceled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Period)
	defer ticker.Stop()
	for {
		p.pollOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	p.Shadow.Lock()
	defer p.Shadow.Unlock()

	selectors := []byte{StatusMain, StatusFeedback1, StatusFeedback2, StatusError, StatusIO}
	for _, sel := range selectors {
		req := StatusRequest(sel)
		resp, ok, err := p.Bus.RequestResponse(ctx, canbus.Frame{ID: p.StatusID, Data: req}, p.ReplyTimeout)
		if err != nil {
			log.Printf("converter: status request %#x: %v", sel, err)
			continue
		}
		if !ok {
			log.Printf("converter: status request %#x: no reply", sel)
			continue
		}
		p.apply(sel, resp.Data)
	}

	if p.Verbose {
		log.Printf("converter: shadow = %+v", *p.Shadow)
	}
}

func (p *Poller) apply(selector byte, db [8]byte) {
	switch selector {
	case StatusMain:
		p.Shadow.ApplyMain(DecodeMainStatus(db))
	case StatusFeedback1:
		p.Shadow.ApplyFeedback1(DecodeFeedback1(db))
	case StatusFeedback2:
		p.Shadow.ApplyFeedback2(DecodeFeedback2(db))
	case StatusError:
		isStandby := p.IsStandbyRequest != nil && p.IsStandbyRequest()
		p.Shadow.ApplyFault(DecodeFault(db), isStandby)
	case StatusIO:
		p.Shadow.ApplyIO(DecodeIO(db))
	}
}

// SendCommand issues an outbound command payload and verifies that the
// converter echoes it back unchanged. A mismatched echo is logged and
// returned as ErrEchoMismatch; a missing reply is logged and returns nil.
// Neither is retried by this function — callers that want retry semantics
// implement them on top.
func SendCommand(ctx context.Context, bus *canbus.Bus, controlID uint32, payload [8]byte, timeout time.Duration) error {
	resp, ok, err := bus.RequestResponse(ctx, canbus.Frame{ID: controlID, Data: payload}, timeout)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("converter: command %#x: no reply", payload[0])
		return nil
	}
	if !bytes.Equal(resp.Data[:], payload[:]) {
		log.Printf("converter: echo mismatch: sent % x got % x", payload, resp.Data)
		return ErrEchoMismatch
	}
	return nil
}

// Reset issues the RESET main-control command used at startup and
// shutdown. Callers decide for themselves whether a missing reply is
// fatal; Reset only reports whether one arrived.
func Reset(ctx context.Context, bus *canbus.Bus, controlID uint32, mode Mode, timeout time.Duration) (replied bool, err error) {
	payload := BuildMainControl(MainControlCommand{PrechargeDelay: true, ResetFaults: true, Mode: mode})
	resp, ok, err := bus.RequestResponse(ctx, canbus.Frame{ID: controlID, Data: payload}, timeout)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	_ = resp
	return true, nil
}
