package supervisor

import (
	"sync"
	"time"

	"zekagateway.dev/wordcodec"
)

const scaleElectrical = 0.1

// GridConf and ModeRequest are opaque supervisor-chosen codes passed
// through to the status PDO; the gateway doesn't interpret their meaning
// beyond echoing them back.
type GridConf uint8
type ModeRequest uint8

// Directives holds the latest supervisor-requested state, mutated only by
// the dispatcher thread.
type Directives struct {
	mu sync.Mutex

	StateRequest State
	haveMode     bool
	ModeRequest  ModeRequest
	haveGridConf bool
	GridConf     GridConf

	BatteryVoltageSetpoint float64
	haveReferenceVoltage   bool
	IChargeLimit           float64
	haveReferenceCharge    bool
	IDischargeLimit        float64
	haveReferenceDischarge bool

	UpdateCommand    bool
	UpdateReference  bool
	CommandTimestamp time.Time
	InsulationTest   bool
}

// NewDirectives returns directives with the initial requested state
// STANDBY.
func NewDirectives() *Directives {
	return &Directives{StateRequest: Standby}
}

func (d *Directives) Lock()   { d.mu.Lock() }
func (d *Directives) Unlock() { d.mu.Unlock() }

// ApplyDirectives1 decodes a 0x200+n payload and applies change-detection:
// a field only marks UpdateCommand dirty if its value actually changed.
func (d *Directives) ApplyDirectives1(db [8]byte) {
	state := State(db[0])
	mode := ModeRequest(db[1])
	grid := GridConf(db[2])
	voltage := wordcodec.ReadUWord(db[7], db[6], scaleElectrical)

	changed := false
	if state != d.StateRequest {
		d.StateRequest = state
		changed = true
		if state != PowerOn {
			d.InsulationTest = false
		}
	}
	if !d.haveMode || mode != d.ModeRequest {
		d.ModeRequest = mode
		d.haveMode = true
		changed = true
	}
	if !d.haveGridConf || grid != d.GridConf {
		d.GridConf = grid
		d.haveGridConf = true
		changed = true
	}
	if changed {
		d.UpdateCommand = true
		d.CommandTimestamp = time.Now()
	}
	if voltage != d.BatteryVoltageSetpoint || !d.haveReferenceVoltage {
		d.BatteryVoltageSetpoint = voltage
		d.haveReferenceVoltage = true
		d.UpdateReference = true
		d.CommandTimestamp = time.Now()
	}
}

// ApplyDirectives2 decodes a 0x300+n payload.
func (d *Directives) ApplyDirectives2(db [8]byte) {
	charge := wordcodec.ReadUWord(db[1], db[0], scaleElectrical)
	discharge := wordcodec.ReadUWord(db[3], db[2], scaleElectrical)

	if charge != d.IChargeLimit || !d.haveReferenceCharge {
		d.IChargeLimit = charge
		d.haveReferenceCharge = true
		d.UpdateReference = true
		d.CommandTimestamp = time.Now()
	}
	if discharge != d.IDischargeLimit || !d.haveReferenceDischarge {
		d.IDischargeLimit = discharge
		d.haveReferenceDischarge = true
		d.UpdateReference = true
		d.CommandTimestamp = time.Now()
	}
}

// ReferenceReady reports whether all three reference fields (voltage,
// charge limit, discharge limit) have been received at least once, a
// precondition for emitting a reference command.
func (d *Directives) ReferenceReady() bool {
	return d.haveReferenceVoltage && d.haveReferenceCharge && d.haveReferenceDischarge
}

// HaveModeAndGridConf reports whether mode_req and grid_conf have ever
// been received, gating whether the 0x180 status PDO can be sent: it's
// suppressed for a SYNC cycle until both are known at least once.
func (d *Directives) HaveModeAndGridConf() bool {
	return d.haveMode && d.haveGridConf
}
