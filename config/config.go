// Package config holds the gateway's compile-time configuration: channel
// names, bitrates, node IDs, and capability constants. There is no CLI or
// environment-variable layer — per the gateway's external interface, all of
// this is fixed at build time, the same way driver/tmc2209 fixes its
// register map in source rather than reading it from a config file.
package config

import "time"

// ConverterMode selects which reference-command family the supervisor
// dispatcher uses when propagating voltage/current setpoints to the
// converter. Only Buck2QVoltage and Boost2QVoltage are valid here: they
// are the only two device modes with a defined reference command driven
// by directives.
type ConverterMode int

const (
	Buck2QVoltage ConverterMode = iota
	Boost2QVoltage
)

// Config is the full set of compile-time gateway parameters.
type Config struct {
	// ConverterChannel and SupervisorChannel are SocketCAN interface names.
	// The gateway expects them already configured and up; bringing an
	// interface up with `ip link`/`ifconfig` is an external concern.
	ConverterChannel  string
	SupervisorChannel string

	// ConverterBitrate and SupervisorBitrate are informational: the
	// gateway does not configure bitrate itself (that's done by whatever
	// brought the interface up), but it's recorded here to match the
	// external-interface contract (250 kbps / 500 kbps).
	ConverterBitrate  int
	SupervisorBitrate int

	// MasterID, DeviceID identify this gateway as the converter's command
	// master; ControlPacketID and StatusPacketID select the control vs.
	// status arbitration ID within the formula
	// (MasterID<<8)|(DeviceID<<3)|packetID.
	MasterID        uint32
	DeviceID        uint32
	ControlPacketID uint32
	StatusPacketID  uint32

	// SupervisorNodeID is the gateway's CANopen node ID on the supervisor
	// bus (0x5E in the source hardware).
	SupervisorNodeID uint32

	// BatteryMaxVoltage/Current, GridMaxCurrent/Power are the capability
	// constants sent in the 0x280 PDO on every SYNC.
	BatteryMaxVoltage float64
	BatteryMaxCurrent float64
	GridMaxCurrent    float64
	GridMaxPower      float64

	// Mode is the converter operating mode this gateway is wired for.
	Mode ConverterMode

	// RealPrecharge selects the POWER_ON command variant: false (default)
	// issues the simulated-precharge command (run_device=true); true
	// issues the alternate "real precharge" command (run_device=false)
	// that defers precharge sequencing to the converter itself. See
	// DESIGN.md's Open Question decision.
	RealPrecharge bool

	// Verbose enables the full shadow-state dump on every poll cycle.
	Verbose bool

	// PollPeriod, HeartbeatPeriod, ReplyTimeout are the gateway's three
	// operating cadences.
	PollPeriod      time.Duration
	HeartbeatPeriod time.Duration
	ReplyTimeout    time.Duration
}

// ArbitrationIDs are the two distinct converter-bus IDs computed from the
// (MasterID<<8)|(DeviceID<<3)|packetID formula. The historical source
// conflated them under one name; DESIGN.md records the decision to keep
// them distinct, since the documented packet IDs (1 for control, 4 for
// status) actually produce two different values (0x109 and 0x10C).
type ArbitrationIDs struct {
	ControlID uint32
	StatusID  uint32
}

// IDs computes the converter-bus arbitration IDs for this configuration.
func (c Config) IDs() ArbitrationIDs {
	base := c.MasterID<<8 | c.DeviceID<<3
	return ArbitrationIDs{
		ControlID: base | c.ControlPacketID,
		StatusID:  base | c.StatusPacketID,
	}
}

// Default returns the gateway's compile-time configuration.
func Default() Config {
	return Config{
		ConverterChannel:  "can0",
		SupervisorChannel: "can1",
		ConverterBitrate:  250_000,
		SupervisorBitrate: 500_000,

		MasterID:        0x001,
		DeviceID:        0x1,
		ControlPacketID: 0x1,
		StatusPacketID:  0x4,

		SupervisorNodeID: 0x5E,

		BatteryMaxVoltage: 700,
		BatteryMaxCurrent: 100,
		GridMaxCurrent:    60,
		GridMaxPower:      40_000,

		Mode:          Buck2QVoltage,
		RealPrecharge: false,
		Verbose:       false,

		PollPeriod:      time.Second,
		HeartbeatPeriod: 900 * time.Millisecond,
		ReplyTimeout:    time.Second,
	}
}
