package converter

import "testing"

func TestShadowLatchSetsOnFault(t *testing.T) {
	s := NewShadow()
	s.ApplyFault(Fault{SideAOvervoltage: true}, false)
	if !s.PreviouslyFaulted {
		t.Error("expected latch to set when a fault appears")
	}
	if s.Fault == nil {
		t.Error("expected Fault to be recorded")
	}
}

func TestShadowLatchClearsOnlyOnStandbyAfterFaultClears(t *testing.T) {
	s := NewShadow()
	s.ApplyFault(Fault{SideAOvervoltage: true}, false)

	// Fault clears but request isn't STANDBY yet: latch stays set.
	s.ApplyFault(Fault{}, false)
	if !s.PreviouslyFaulted {
		t.Error("latch should remain set until a STANDBY request is observed")
	}
	if s.Fault != nil {
		t.Error("expected Fault to clear once the error response reports none set")
	}

	// Fault stays clear and request is STANDBY: latch clears.
	s.ApplyFault(Fault{}, true)
	if s.PreviouslyFaulted {
		t.Error("expected latch to clear once fault is nil and request is STANDBY")
	}
}

func TestShadowApplyMainGenuineNoModeUpdates(t *testing.T) {
	s := NewShadow()
	s.ApplyMain(MainStatus{Mode: Buck2QVoltage, ModeValid: true})
	if s.DeviceMode != Buck2QVoltage {
		t.Fatalf("DeviceMode = %v, want Buck2QVoltage", s.DeviceMode)
	}

	// A genuine report of wire code 0 (NoMode) must still update the
	// shadow: it's a real transition, not an unrecognized code.
	s.ApplyMain(MainStatus{Mode: NoMode, ModeValid: true})
	if s.DeviceMode != NoMode {
		t.Errorf("DeviceMode = %v, want NoMode after a genuine NoMode report", s.DeviceMode)
	}
}

func TestShadowApplyMainUnrecognizedCodeLeavesDeviceModeUnchanged(t *testing.T) {
	s := NewShadow()
	s.ApplyMain(MainStatus{Mode: Buck2QVoltage, ModeValid: true})

	// An unrecognized code (ModeValid false) must not stomp the shadow.
	s.ApplyMain(MainStatus{Mode: NoMode, ModeValid: false})
	if s.DeviceMode != Buck2QVoltage {
		t.Errorf("DeviceMode = %v, want Buck2QVoltage unchanged", s.DeviceMode)
	}
}

func TestShadowSnapshotIsCopy(t *testing.T) {
	s := NewShadow()
	s.ApplyFault(Fault{Overcurrent: true}, false)
	snap := s.Snapshot()
	if snap.Fault == nil || !snap.Fault.Overcurrent {
		t.Fatal("expected snapshot to carry the fault")
	}
	snap.Fault.Overcurrent = false
	if !s.Fault.Overcurrent {
		t.Error("mutating the snapshot's fault must not affect the shadow's")
	}
}
