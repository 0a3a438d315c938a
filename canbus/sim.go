package canbus

import (
	"errors"
	"sync/atomic"
	"time"
)

// FakeTransport is an in-memory Transport for tests: it has no notion of
// interfaces or sockets, just two frame queues, mirroring the shape of
// driver/mjolnir's Simulator (a channel-driven stand-in for a real device).
type FakeTransport struct {
	sent   chan Frame
	recv   chan Frame
	closed atomic.Bool
}

// NewFakeTransport returns a transport with buffered send/recv queues.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		sent: make(chan Frame, 64),
		recv: make(chan Frame, 64),
	}
}

// Sent returns the channel of frames written via Send, for tests to assert
// on outbound traffic.
func (t *FakeTransport) Sent() <-chan Frame { return t.sent }

// Push enqueues a frame to be returned by the next Recv, simulating an
// inbound wire frame.
func (t *FakeTransport) Push(f Frame) {
	t.recv <- f
}

func (t *FakeTransport) Send(f Frame) error {
	if t.closed.Load() {
		return ErrBusOff
	}
	select {
	case t.sent <- f:
		return nil
	default:
		return errors.New("canbus: fake transport send queue full")
	}
}

func (t *FakeTransport) Recv(timeout time.Duration) (Frame, bool, error) {
	select {
	case f := <-t.recv:
		return f, true, nil
	case <-time.After(timeout):
		return Frame{}, false, nil
	}
}

func (t *FakeTransport) Close() error {
	t.closed.Store(true)
	return nil
}
