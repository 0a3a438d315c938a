//go:build linux

package canbus

import (
	"fmt"
	"net"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// wireFrame mirrors struct can_frame from <linux/can.h>: 4-byte ID, 1-byte
// DLC, 3 bytes padding, 8 bytes of data.
type wireFrame struct {
	id   uint32
	dlc  uint8
	pad  [3]uint8
	data [8]uint8
}

const wireFrameSize = 16

// SocketCANTransport is a Transport backed by a Linux AF_CAN/SOCK_RAW
// socket on an already-up interface (bringing the interface up with
// `ip link`/`ifconfig` is outside the gateway's responsibility).
type SocketCANTransport struct {
	fd int
}

// OpenSocketCAN opens a raw CAN socket on the named interface (e.g. "can0").
func OpenSocketCAN(channel string) (*SocketCANTransport, error) {
	iface, err := net.InterfaceByName(channel)
	if err != nil {
		return nil, fmt.Errorf("canbus: %s: %w", channel, err)
	}
	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, fmt.Errorf("canbus: socket: %w", err)
	}
	addr := &unix.SockaddrCAN{Ifindex: iface.Index}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("canbus: bind %s: %w", channel, err)
	}
	return &SocketCANTransport{fd: fd}, nil
}

func (t *SocketCANTransport) Send(f Frame) error {
	wf := wireFrame{id: f.ID, dlc: f.DLC(), data: f.Data}
	buf := (*(*[wireFrameSize]byte)(unsafe.Pointer(&wf)))[:]
	if _, err := unix.Write(t.fd, buf); err != nil {
		return fmt.Errorf("%w: %v", ErrBusOff, err)
	}
	return nil
}

func (t *SocketCANTransport) Recv(timeout time.Duration) (Frame, bool, error) {
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(t.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return Frame{}, false, fmt.Errorf("canbus: set recv timeout: %w", err)
	}
	var buf [wireFrameSize]byte
	n, err := unix.Read(t.fd, buf[:])
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return Frame{}, false, nil
		}
		return Frame{}, false, fmt.Errorf("canbus: recv: %w", err)
	}
	if n < wireFrameSize {
		return Frame{}, false, nil
	}
	wf := (*wireFrame)(unsafe.Pointer(&buf))
	var f Frame
	f.ID = wf.id & unix.CAN_SFF_MASK
	f.Len = wf.dlc
	copy(f.Data[:], wf.data[:])
	return f, true, nil
}

func (t *SocketCANTransport) Close() error {
	return unix.Close(t.fd)
}
