package converter

import "sync"

// Shadow holds the latest converter telemetry and flags, mutated only by
// the poller while holding its lock. Readers take the same lock to build
// a consistent snapshot, the way driver/mjolnir's Driver guards its
// last-known register state.
type Shadow struct {
	mu sync.Mutex

	Phaseback           bool
	AutoBoost           bool
	PowerLimitReached   bool
	CurrentLimitReached bool
	VoltageLimitReached bool
	AlarmWarning        bool
	FullStop            bool
	Fault               *Fault
	Running             bool
	Ready               bool
	Precharging         bool
	DeviceMode          Mode

	SideAVoltage     float64
	SideACurrent     float64
	SideATemperature float64
	SideBVoltage     float64
	SideBCurrent     float64
	SideBTemperature float64

	IO IO

	// PreviouslyFaulted is a sticky latch: set whenever Fault becomes
	// non-nil, cleared only when Fault is nil and the latest supervisor
	// request is STANDBY.
	PreviouslyFaulted bool
}

// NewShadow returns an empty shadow with device mode NoMode.
func NewShadow() *Shadow {
	return &Shadow{}
}

// Lock acquires the shadow lock for the whole poll cycle: all five
// sub-frames refresh under one lock held for the full cycle, so readers
// never observe a torn mix of old and new telemetry.
func (s *Shadow) Lock()   { s.mu.Lock() }
func (s *Shadow) Unlock() { s.mu.Unlock() }

// ApplyMain merges a decoded 0xA0 response.
func (s *Shadow) ApplyMain(m MainStatus) {
	s.Phaseback = m.Phaseback
	s.AutoBoost = m.AutoBoost
	s.PowerLimitReached = m.PowerLimit
	s.CurrentLimitReached = m.CurrentLimit
	s.VoltageLimitReached = m.VoltageLimit
	s.AlarmWarning = m.AlarmWarning
	s.FullStop = m.FullStop
	s.Running = m.Running
	s.Ready = m.Ready
	s.Precharging = m.Precharging
	if m.ModeValid {
		s.DeviceMode = m.Mode
	}
}

// ApplyFeedback1 merges a decoded 0xA1 (side A) response.
func (s *Shadow) ApplyFeedback1(f SideStatus) {
	s.SideAVoltage = f.Voltage
	s.SideACurrent = f.Current
	s.SideATemperature = f.Temperature
}

// ApplyFeedback2 merges a decoded 0xA2 (side B) response.
func (s *Shadow) ApplyFeedback2(f SideStatus) {
	s.SideBVoltage = f.Voltage
	s.SideBCurrent = f.Current
	s.SideBTemperature = f.Temperature
}

// ApplyIO merges a decoded 0xA4 response.
func (s *Shadow) ApplyIO(io IO) {
	s.IO = io
}

// ApplyFault's isStandbyRequest parameter reports whether the latest
// supervisor directive state request is STANDBY, consulted only for the
// latch clear rule. The converter package doesn't know the directive state
// enum, so callers pass the comparison result rather than the directive
// record itself.

// ApplyFault merges a decoded 0xA3 response and updates the
// previously-faulted latch: set when a fault appears, cleared when the
// fault clears and isStandbyRequest is true.
func (s *Shadow) ApplyFault(f Fault, isStandbyRequest bool) {
	if f.Any() {
		s.Fault = &f
		s.PreviouslyFaulted = true
		return
	}
	s.Fault = nil
	if isStandbyRequest {
		s.PreviouslyFaulted = false
	}
}

// Snapshot is an immutable copy of the shadow for consumption outside the
// shadow lock (e.g. by the supervisor dispatcher on SYNC).
type Snapshot struct {
	Fault             *Fault
	Running           bool
	Ready             bool
	Precharging       bool
	PreviouslyFaulted bool

	SideAVoltage float64
	SideACurrent float64
	SideBVoltage float64
	SideBCurrent float64

	DeviceMode Mode
	IO         IO
}

// Snapshot copies the current shadow contents under lock.
func (s *Shadow) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var fault *Fault
	if s.Fault != nil {
		f := *s.Fault
		fault = &f
	}
	return Snapshot{
		Fault:             fault,
		Running:           s.Running,
		Ready:             s.Ready,
		Precharging:       s.Precharging,
		PreviouslyFaulted: s.PreviouslyFaulted,
		SideAVoltage:      s.SideAVoltage,
		SideACurrent:      s.SideACurrent,
		SideBVoltage:      s.SideBVoltage,
		SideBCurrent:      s.SideBCurrent,
		DeviceMode:        s.DeviceMode,
		IO:                s.IO,
	}
}
