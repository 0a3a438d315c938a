package supervisor

import (
	"testing"

	"zekagateway.dev/converter"
)

func TestSynthesizeStatePowerOn(t *testing.T) {
	snap := converter.Snapshot{Running: true}
	if got := SynthesizeState(snap, PowerOn); got != PowerOn {
		t.Errorf("got %v, want POWER_ON", got)
	}
}

func TestSynthesizeStateSafeD(t *testing.T) {
	snap := converter.Snapshot{Fault: &converter.Fault{Overcurrent: true}}
	if got := SynthesizeState(snap, Standby); got != SafeD {
		t.Errorf("got %v, want SAFE_D", got)
	}
}

func TestSynthesizeStateFaultAck(t *testing.T) {
	snap := converter.Snapshot{PreviouslyFaulted: true}
	if got := SynthesizeState(snap, Standby); got != FaultAck {
		t.Errorf("got %v, want FAULT_ACK", got)
	}
}

func TestSynthesizeStateCharge(t *testing.T) {
	snap := converter.Snapshot{Running: true}
	if got := SynthesizeState(snap, Charge); got != Charge {
		t.Errorf("got %v, want CHARGE", got)
	}
}

func TestSynthesizeStateStandby(t *testing.T) {
	snap := converter.Snapshot{}
	if got := SynthesizeState(snap, Standby); got != Standby {
		t.Errorf("got %v, want STANDBY", got)
	}
}
