// Package converter implements the proprietary register-oriented DC/DC
// converter's command/status wire protocol: command frame assembly,
// status frame decoding into a cached shadow state, and the polling loop
// that keeps the shadow current. Named after per-device driver packages
// like driver/tmc2209 and driver/mjolnir: one package per wire protocol,
// with the device's register/opcode map as named constants.
package converter

// Mode is the converter's device mode, set via the main control command
// and echoed back in status. The wire values (0,1,2,3,4,5,6,8 — 7 is
// unused) are authoritative; this enum only gives them names.
type Mode uint8

const (
	NoMode                Mode = 0
	Buck1QVoltage         Mode = 1
	Buck1QCurrent         Mode = 2
	Boost1QVoltage        Mode = 3
	Boost1QCurrent        Mode = 4
	Buck2QVoltage         Mode = 5
	Boost2QVoltage        Mode = 6
	BoostACurrentBVoltage Mode = 8
)

// modeNames lets decode keep an unrecognized wire code's field unchanged
// rather than guessing.
var modeNames = map[Mode]string{
	NoMode:                "no mode",
	Buck1QVoltage:         "buck 1Q voltage",
	Buck1QCurrent:         "buck 1Q current",
	Boost1QVoltage:        "boost 1Q voltage",
	Boost1QCurrent:        "boost 1Q current",
	Buck2QVoltage:         "buck 2Q voltage",
	Boost2QVoltage:        "boost 2Q voltage",
	BoostACurrentBVoltage: "boost A-current B-voltage",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// validMode reports whether code is one of the defined wire values.
func validMode(code byte) (Mode, bool) {
	m := Mode(code)
	_, ok := modeNames[m]
	return m, ok
}
