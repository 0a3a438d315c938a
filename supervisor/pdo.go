package supervisor

import (
	"math"

	"zekagateway.dev/converter"
	"zekagateway.dev/wordcodec"
)

const scaleWatts = 10.0

// HeartbeatPayload is the single byte emitted on Heartbeat.
var HeartbeatPayload = [8]byte{0x05}

// StartHeartbeatAck is the fixed SDO acknowledgment for a "start
// heartbeat" request on SDORequest.
var StartHeartbeatAck = [8]byte{0x3C, 0x10, 0x0A, 0x01, 0, 0, 0, 0}

// BuildStatusPDO assembles the 0x180+n telemetry frame: synthesized EVI
// state in byte 0, and the echoed grid_conf and mode_req in byte 1 as
// grid_conf<<5 | mode_req<<3.
func BuildStatusPDO(state State, gridConf GridConf, mode ModeRequest) [8]byte {
	return [8]byte{byte(state), byte(gridConf)<<5 | byte(mode)<<3, 0, 0, 0, 0, 0, 0}
}

// Capability is the set of constant capability values sent on 0x280+n with
// every SYNC.
type Capability struct {
	BatteryMaxVoltage float64
	BatteryMaxCurrent float64
	GridMaxCurrent    float64
	GridMaxPower      float64
}

// BuildCapabilityPDO packs the four unsigned capability words.
func BuildCapabilityPDO(c Capability) [8]byte {
	vh, vl := wordcodec.WriteWord(c.BatteryMaxVoltage, scaleElectrical)
	ih, il := wordcodec.WriteWord(c.BatteryMaxCurrent, scaleElectrical)
	gih, gil := wordcodec.WriteWord(c.GridMaxCurrent, scaleElectrical)
	gph, gpl := wordcodec.WriteWord(c.GridMaxPower, scaleWatts)
	return [8]byte{vh, vl, ih, il, gih, gil, gph, gpl}
}

// BuildGridPDO assembles the 0x360+n grid telemetry frame: Side-B
// voltage/current/power plus a zero reactive-power field.
func BuildGridPDO(snap converter.Snapshot) [8]byte {
	power := round1(snap.SideBVoltage * snap.SideBCurrent)
	vh, vl := wordcodec.WriteWord(snap.SideBVoltage, scaleElectrical)
	ih, il := wordcodec.WriteWord(snap.SideBCurrent, scaleElectrical)
	ph, pl := wordcodec.WriteWord(power, scaleWatts)
	return [8]byte{vh, vl, ih, il, ph, pl, 0, 0}
}

// BuildBatteryPDO assembles the 0x460+n battery telemetry frame: Side-A
// voltage/current/power plus "available current", which defaults to
// |current|.
func BuildBatteryPDO(snap converter.Snapshot) [8]byte {
	power := round1(snap.SideAVoltage * snap.SideACurrent)
	availableCurrent := math.Abs(snap.SideACurrent)
	vh, vl := wordcodec.WriteWord(snap.SideAVoltage, scaleElectrical)
	ih, il := wordcodec.WriteWord(snap.SideACurrent, scaleElectrical)
	ph, pl := wordcodec.WriteWord(power, scaleWatts)
	ah, al := wordcodec.WriteWord(availableCurrent, scaleElectrical)
	return [8]byte{vh, vl, ih, il, ph, pl, ah, al}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// EncodeDirectives1 builds a 0x200+n payload, used by tests and by
// anything simulating the supervisor side.
func EncodeDirectives1(state State, mode ModeRequest, grid GridConf, voltage float64) [8]byte {
	vh, vl := wordcodec.WriteWord(voltage, scaleElectrical)
	return [8]byte{byte(state), byte(mode), byte(grid), 0, 0, 0, vl, vh}
}

// EncodeDirectives2 builds a 0x300+n payload.
func EncodeDirectives2(chargeLimit, dischargeLimit float64) [8]byte {
	ch, cl := wordcodec.WriteWord(chargeLimit, scaleElectrical)
	dh, dl := wordcodec.WriteWord(dischargeLimit, scaleElectrical)
	return [8]byte{cl, ch, dl, dh, 0, 0, 0, 0}
}
