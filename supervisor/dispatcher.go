package supervisor

import (
	"context"
	"log"
	"time"

	"zekagateway.dev/canbus"
	"zekagateway.dev/config"
	"zekagateway.dev/converter"
)

// Dispatcher is the central supervisor-bus state machine: it decodes
// incoming directive/SDO/SYNC frames, reconciles converter reality against
// requested state, and issues converter commands on transitions.
type Dispatcher struct {
	SupervisorBus *canbus.Bus
	ConverterBus  *canbus.Bus
	IDs           IDs
	ConverterIDs  config.ArbitrationIDs

	Shadow     *converter.Shadow
	Directives *Directives

	Capability    Capability
	Mode          config.ConverterMode
	RealPrecharge bool

	CommandTimeout time.Duration

	converterMode converter.Mode
}

// NewDispatcher wires up a Dispatcher's derived fields.
func NewDispatcher(d Dispatcher) *Dispatcher {
	d.converterMode = ConverterModeFor(d.Mode)
	return &d
}

// ConverterModeFor maps a compile-time converter mode selection to the
// wire-level Mode used in converter commands.
func ConverterModeFor(m config.ConverterMode) converter.Mode {
	switch m {
	case config.Boost2QVoltage:
		return converter.Boost2QVoltage
	default:
		return converter.Buck2QVoltage
	}
}

// Run blocks on supervisor-bus reception until ctx is canceled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		frame, ok, err := d.SupervisorBus.Recv(ctx, time.Second)
		if err != nil {
			log.Printf("supervisor: recv: %v", err)
			continue
		}
		if !ok {
			continue
		}
		d.handleFrame(ctx, frame)
	}
}

func (d *Dispatcher) handleFrame(ctx context.Context, frame canbus.Frame) {
	switch frame.ID {
	case d.IDs.Directives1:
		d.Directives.Lock()
		d.Directives.ApplyDirectives1(frame.Data)
		d.Directives.Unlock()
	case d.IDs.Directives2:
		d.Directives.Lock()
		d.Directives.ApplyDirectives2(frame.Data)
		d.Directives.Unlock()
	case d.IDs.SDORequest:
		if err := d.SupervisorBus.Send(canbus.Frame{ID: d.IDs.SDOResponse, Data: StartHeartbeatAck}); err != nil {
			log.Printf("supervisor: SDO ack send: %v", err)
		}
		return
	case d.IDs.Sync:
		d.handleSync(ctx)
	default:
		return
	}
	d.maybeIssueCommands(ctx)
}

// handleSync snapshots the shadow and emits the four telemetry PDOs in
// their fixed order, then falls through to the ordinary directive-driven
// command dispatch, which must happen after this SYNC's telemetry.
func (d *Dispatcher) handleSync(ctx context.Context) {
	snap := d.Shadow.Snapshot()

	d.Directives.Lock()
	lastRequest := d.Directives.StateRequest
	haveModeAndGrid := d.Directives.HaveModeAndGridConf()
	mode := d.Directives.ModeRequest
	grid := d.Directives.GridConf
	d.Directives.Unlock()

	state := SynthesizeState(snap, lastRequest)

	if haveModeAndGrid {
		d.send(d.IDs.Status, BuildStatusPDO(state, grid, mode))
	}
	d.send(d.IDs.Capability, BuildCapabilityPDO(d.Capability))
	d.send(d.IDs.Grid, BuildGridPDO(snap))
	d.send(d.IDs.Battery, BuildBatteryPDO(snap))
}

func (d *Dispatcher) send(id uint32, data [8]byte) {
	if err := d.SupervisorBus.Send(canbus.Frame{ID: id, Data: data}); err != nil {
		log.Printf("supervisor: telemetry send %#x: %v", id, err)
	}
}

// maybeIssueCommands applies the directive-driven converter command rules.
func (d *Dispatcher) maybeIssueCommands(ctx context.Context) {
	d.Directives.Lock()
	updateReference := d.Directives.UpdateReference && d.Directives.ReferenceReady()
	updateCommand := d.Directives.UpdateCommand
	voltage := d.Directives.BatteryVoltageSetpoint
	iCharge := d.Directives.IChargeLimit
	iDischarge := d.Directives.IDischargeLimit
	stateRequest := d.Directives.StateRequest
	insulationTest := d.Directives.InsulationTest
	if updateReference {
		d.Directives.UpdateReference = false
	}
	if updateCommand {
		d.Directives.UpdateCommand = false
	}
	d.Directives.Unlock()

	if updateReference {
		d.sendReferenceCommand(ctx, voltage, iCharge, iDischarge)

		switch {
		case insulationTest && voltage != 0:
			log.Printf("supervisor: insulation test ended (voltage setpoint %.1f V)", voltage)
			d.sendMainControl(ctx, converter.MainControlCommand{
				PrechargeDelay: true,
				RunDevice:      true,
				Mode:           d.converterMode,
			})
			d.Directives.Lock()
			d.Directives.InsulationTest = false
			d.Directives.Unlock()
		case stateRequest == PowerOn && voltage == 0:
			log.Println("supervisor: insulation test started")
			d.sendMainControl(ctx, converter.MainControlCommand{
				PrechargeDelay: true,
				RunDevice:      false,
				Mode:           d.converterMode,
			})
			d.Directives.Lock()
			d.Directives.InsulationTest = true
			d.Directives.Unlock()
		}
	}

	if updateCommand {
		d.dispatchStateCommand(ctx, stateRequest)
	}
}

func (d *Dispatcher) sendReferenceCommand(ctx context.Context, voltage, iCharge, iDischarge float64) {
	var payload [8]byte
	switch d.Mode {
	case config.Boost2QVoltage:
		payload = converter.BuildBoost2QVoltageRef(voltage, iCharge, iDischarge)
	default:
		payload = converter.BuildBuck2QVoltageRef(voltage, iCharge, iDischarge)
	}
	d.issueCommand(ctx, payload)
}

func (d *Dispatcher) dispatchStateCommand(ctx context.Context, state State) {
	switch state {
	case Standby:
		d.sendMainControl(ctx, converter.MainControlCommand{
			PrechargeDelay: true, ResetFaults: true, Mode: d.converterMode,
		})
	case PowerOn:
		// Simulated precharge (default) runs the device immediately;
		// RealPrecharge defers run_device to the converter's own precharge
		// sequencing.
		d.sendMainControl(ctx, converter.MainControlCommand{
			PrechargeDelay: true, RunDevice: !d.RealPrecharge, Mode: d.converterMode,
		})
	case FaultAck:
		d.sendMainControl(ctx, converter.MainControlCommand{
			PrechargeDelay: true, ResetFaults: true, Mode: d.converterMode,
		})
	}
	// CHARGE and every other state: no command.
}

func (d *Dispatcher) sendMainControl(ctx context.Context, cmd converter.MainControlCommand) {
	d.issueCommand(ctx, converter.BuildMainControl(cmd))
}

func (d *Dispatcher) issueCommand(ctx context.Context, payload [8]byte) {
	if err := converter.SendCommand(ctx, d.ConverterBus, d.ConverterIDs.ControlID, payload, d.CommandTimeout); err != nil {
		log.Printf("supervisor: converter command: %v", err)
	}
}
