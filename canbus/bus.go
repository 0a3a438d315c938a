package canbus

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBusOff is returned by Send when the underlying interface refuses the
// frame (bus-off, interface down).
var ErrBusOff = errors.New("canbus: bus off")

// Transport is the raw per-frame interface a Bus implementation provides.
// SocketCANTransport and the in-memory FakeTransport both implement it.
type Transport interface {
	Send(f Frame) error
	// Recv blocks for up to timeout for the next frame. It returns
	// ok == false, err == nil on a plain timeout.
	Recv(timeout time.Duration) (f Frame, ok bool, err error)
	Close() error
}

// Bus serializes request/response cycles and raw sends over a single
// physical CAN interface. At most one request is ever in flight: the
// converter's wire protocol replies positionally (the next frame received
// within the timeout), not by arbitration ID, so two concurrent cycles
// would corrupt each other's replies.
type Bus struct {
	transport Transport
	mu        sync.Mutex
}

// NewBus wraps a Transport with the request/response serialization
// contract described in the package doc.
func NewBus(t Transport) *Bus {
	return &Bus{transport: t}
}

// Send transmits f without waiting for a reply. It still takes the bus
// mutex, so it cannot interleave with a RequestResponse cycle.
func (b *Bus) Send(f Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.transport.Send(f)
}

// RequestResponse sends req and waits up to timeout for the next frame on
// the bus, under the bus mutex for the full round trip. A missing reply is
// not an error: it returns ok == false so the caller can log and skip.
func (b *Bus) RequestResponse(ctx context.Context, req Frame, timeout time.Duration) (resp Frame, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.transport.Send(req); err != nil {
		return Frame{}, false, err
	}
	return b.transport.Recv(timeout)
}

// Recv waits up to timeout for the next frame without sending anything
// first, used by the supervisor dispatcher's blocking receive loop.
func (b *Bus) Recv(ctx context.Context, timeout time.Duration) (Frame, bool, error) {
	select {
	case <-ctx.Done():
		return Frame{}, false, ctx.Err()
	default:
	}
	return b.transport.Recv(timeout)
}

// Close releases the underlying transport.
func (b *Bus) Close() error {
	return b.transport.Close()
}
