package converter

import "zekagateway.dev/wordcodec"

// Opcodes for outbound command frames.
const (
	OpMainControl           byte = 0x80
	OpBuck1QVoltageRef      byte = 0x81
	OpBuck1QCurrentRef      byte = 0x82
	OpBoost1QVoltageRef     byte = 0x83
	OpBoost1QCurrentRef     byte = 0x84
	OpBuck2QVoltageRef      byte = 0x85
	OpBoost2QVoltageRef     byte = 0x86
	OpBoostACurrentBVoltage byte = 0x8B
	OpOutputControl         byte = 0x90
)

// Status request/response selectors.
const (
	StatusMain      byte = 0xA0
	StatusFeedback1 byte = 0xA1
	StatusFeedback2 byte = 0xA2
	StatusError     byte = 0xA3
	StatusIO        byte = 0xA4
)

const scaleElectrical = 0.1

// fill sets the remaining bytes of a command payload with 0xFF, matching
// the wire convention that unused command bytes are 0xFF.
func fill(b []byte) {
	for i := range b {
		b[i] = 0xFF
	}
}

// MainControlCommand is the command/argument byte pair for opcode 0x80.
type MainControlCommand struct {
	PrechargeDelay bool
	ResetFaults    bool
	FullStop       bool
	RunDevice      bool
	Mode           Mode
}

// BuildMainControl assembles the main control command payload. MCB_lo
// carries precharge_delay/full_stop/reset_faults, MCB_hi carries
// run_device, ACB_lo carries the mode code.
func BuildMainControl(c MainControlCommand) [8]byte {
	var mcbLo, mcbHi byte
	if c.PrechargeDelay {
		mcbLo |= 0x01
	}
	if c.FullStop {
		mcbLo |= 0x04
	}
	if c.ResetFaults {
		mcbLo |= 0x80
	}
	if c.RunDevice {
		mcbHi |= 0x01
	}
	acbLo := byte(c.Mode)
	return [8]byte{OpMainControl, mcbHi, mcbLo, 0x00, acbLo, 0xFF, 0xFF, 0xFF}
}

// BuildBuck1QVoltageRef assembles opcode 0x81.
func BuildBuck1QVoltageRef(voltage, currentLimit float64) [8]byte {
	vh, vl := wordcodec.WriteWord(voltage, scaleElectrical)
	ih, il := wordcodec.WriteWord(currentLimit, scaleElectrical)
	return [8]byte{OpBuck1QVoltageRef, vh, vl, ih, il, 0xFF, 0xFF, 0xFF}
}

// BuildBuck1QCurrentRef assembles opcode 0x82.
func BuildBuck1QCurrentRef(currentRef float64) [8]byte {
	ih, il := wordcodec.WriteWord(currentRef, scaleElectrical)
	return [8]byte{OpBuck1QCurrentRef, ih, il, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
}

// BuildBoost1QVoltageRef assembles opcode 0x83.
func BuildBoost1QVoltageRef(voltage, currentLimit float64) [8]byte {
	vh, vl := wordcodec.WriteWord(voltage, scaleElectrical)
	ih, il := wordcodec.WriteWord(currentLimit, scaleElectrical)
	return [8]byte{OpBoost1QVoltageRef, vh, vl, ih, il, 0xFF, 0xFF, 0xFF}
}

// BuildBoost1QCurrentRef assembles opcode 0x84.
func BuildBoost1QCurrentRef(currentRef float64) [8]byte {
	ih, il := wordcodec.WriteWord(currentRef, scaleElectrical)
	return [8]byte{OpBoost1QCurrentRef, ih, il, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
}

// BuildBuck2QVoltageRef assembles opcode 0x85: voltage plus independent
// side-A/side-B current limits.
func BuildBuck2QVoltageRef(voltage, iSideA, iSideB float64) [8]byte {
	vh, vl := wordcodec.WriteWord(voltage, scaleElectrical)
	ah, al := wordcodec.WriteWord(iSideA, scaleElectrical)
	bh, bl := wordcodec.WriteWord(iSideB, scaleElectrical)
	return [8]byte{OpBuck2QVoltageRef, vh, vl, ah, al, bh, bl, 0xFF}
}

// BuildBoost2QVoltageRef assembles opcode 0x86.
func BuildBoost2QVoltageRef(voltage, iSideA, iSideB float64) [8]byte {
	vh, vl := wordcodec.WriteWord(voltage, scaleElectrical)
	ah, al := wordcodec.WriteWord(iSideA, scaleElectrical)
	bh, bl := wordcodec.WriteWord(iSideB, scaleElectrical)
	return [8]byte{OpBoost2QVoltageRef, vh, vl, ah, al, bh, bl, 0xFF}
}

// BuildBoostACurrentBVoltageRef assembles opcode 0x8B.
func BuildBoostACurrentBVoltageRef(voltage, currentLimit float64) [8]byte {
	vh, vl := wordcodec.WriteWord(voltage, scaleElectrical)
	ih, il := wordcodec.WriteWord(currentLimit, scaleElectrical)
	return [8]byte{OpBoostACurrentBVoltage, vh, vl, ih, il, 0xFF, 0xFF, 0xFF}
}

// OutputControlCommand is the relay/digital-output bitfield for opcode 0x90.
type OutputControlCommand struct {
	Relay4, Relay3                                 bool
	DigitalOutput8, DigitalOutput7, DigitalOutput6 bool
	DigitalOutput5, DigitalOutput4, DigitalOutput3 bool
}

// BuildOutputControl assembles the output control command payload.
func BuildOutputControl(c OutputControlCommand) [8]byte {
	var dorcbHi, dorcbLo byte
	if c.Relay4 {
		dorcbHi |= 0x80
	}
	if c.Relay3 {
		dorcbHi |= 0x40
	}
	if c.DigitalOutput8 {
		dorcbLo |= 0x80
	}
	if c.DigitalOutput7 {
		dorcbLo |= 0x40
	}
	if c.DigitalOutput6 {
		dorcbLo |= 0x20
	}
	if c.DigitalOutput5 {
		dorcbLo |= 0x10
	}
	if c.DigitalOutput4 {
		dorcbLo |= 0x08
	}
	if c.DigitalOutput3 {
		dorcbLo |= 0x04
	}
	return [8]byte{OpOutputControl, dorcbHi, dorcbLo, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
}

// StatusRequest returns the 8-byte status request payload for selector.
// Bytes 1..7 are ignored by the converter and are conventionally 0xFF.
func StatusRequest(selector byte) [8]byte {
	req := [8]byte{selector}
	fill(req[1:])
	return req
}

// CommandOpcodes is the set of outbound opcodes the converter echoes
// verbatim.
var CommandOpcodes = map[byte]bool{
	OpMainControl:           true,
	OpBuck1QVoltageRef:      true,
	OpBuck1QCurrentRef:      true,
	OpBoost1QVoltageRef:     true,
	OpBoost1QCurrentRef:     true,
	OpBuck2QVoltageRef:      true,
	OpBoost2QVoltageRef:     true,
	OpBoostACurrentBVoltage: true,
	OpOutputControl:         true,
}
