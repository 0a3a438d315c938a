package supervisor

import "testing"

func TestDirectivesChangeDetectionOnlyFirstTransition(t *testing.T) {
	d := NewDirectives()
	frame := EncodeDirectives1(PowerOn, 1, 1, 400)

	d.ApplyDirectives1(frame)
	if !d.UpdateCommand {
		t.Fatal("expected UpdateCommand dirty on first application")
	}
	d.UpdateCommand = false

	d.ApplyDirectives1(frame)
	if d.UpdateCommand {
		t.Error("expected UpdateCommand to stay clean on an unchanged repeat")
	}
}

func TestDirectivesClearsInsulationTestOnStateChangeAwayFromPowerOn(t *testing.T) {
	d := NewDirectives()
	d.StateRequest = PowerOn
	d.InsulationTest = true
	d.ApplyDirectives1(EncodeDirectives1(Standby, 0, 0, 0))
	if d.InsulationTest {
		t.Error("expected InsulationTest cleared when state_req changes to non-POWER_ON")
	}
}

func TestDirectivesReferenceReadyRequiresAllThreeFields(t *testing.T) {
	d := NewDirectives()
	if d.ReferenceReady() {
		t.Fatal("ReferenceReady should be false before any directive frame")
	}
	d.ApplyDirectives1(EncodeDirectives1(PowerOn, 0, 0, 435))
	if d.ReferenceReady() {
		t.Fatal("ReferenceReady should still be false without the 0x300 frame")
	}
	d.ApplyDirectives2(EncodeDirectives2(1, 2))
	if !d.ReferenceReady() {
		t.Error("ReferenceReady should be true once voltage, charge, and discharge are all set")
	}
}

func TestDirectivesHaveModeAndGridConf(t *testing.T) {
	d := NewDirectives()
	if d.HaveModeAndGridConf() {
		t.Fatal("expected false before any frame received")
	}
	d.ApplyDirectives1(EncodeDirectives1(Standby, 1, 1, 0))
	if !d.HaveModeAndGridConf() {
		t.Error("expected true after a 0x200 frame sets both mode and grid_conf")
	}
}
