// Package canbus provides the dual-bus transport the gateway mediates
// between: 11-bit-ID, 8-byte CAN frames with mutex-serialized
// request/response semantics.
package canbus

import "fmt"

// Frame is an 11-bit standard CAN frame. Data always holds 8 bytes of
// backing storage; Len gives the frame's actual DLC (data length code) on
// the wire. A zero Len means "unset" and is treated as 8, since almost
// every frame this gateway builds is a full 8-byte payload — only the
// heartbeat sets Len explicitly to something shorter.
type Frame struct {
	ID   uint32
	Data [8]byte
	Len  uint8
}

// DLC returns the frame's wire data length: Len if set, else 8.
func (f Frame) DLC() uint8 {
	if f.Len == 0 {
		return 8
	}
	return f.Len
}

func (f Frame) String() string {
	return fmt.Sprintf("%#03x % 02x", f.ID, f.Data)
}
