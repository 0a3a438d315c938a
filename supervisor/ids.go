// Package supervisor implements the CANopen-facing half of the gateway:
// PDO/SDO/heartbeat frame assembly and decoding, the synthesized
// charge-point state machine, and the central dispatch loop that ties
// converter telemetry to supervisor-visible state.
package supervisor

// Arbitration ID bases. Each is offset by the configured node ID.
const (
	heartbeatBase      uint32 = 0x700
	sdoResponseBase    uint32 = 0x580
	sdoRequestBase     uint32 = 0x600
	pdoStatusBase      uint32 = 0x180
	pdoCapabilityBase  uint32 = 0x280
	pdoGridBase        uint32 = 0x360
	pdoBatteryBase     uint32 = 0x460
	pdoDirectives1Base uint32 = 0x200
	pdoDirectives2Base uint32 = 0x300

	syncID uint32 = 0x80
)

// IDs are the node-specific arbitration IDs this gateway uses on the
// supervisor bus.
type IDs struct {
	Heartbeat   uint32
	SDOResponse uint32
	SDORequest  uint32
	Status      uint32
	Capability  uint32
	Grid        uint32
	Battery     uint32
	Directives1 uint32
	Directives2 uint32
	Sync        uint32
}

// ForNode computes the gateway's supervisor-bus arbitration IDs.
func ForNode(nodeID uint32) IDs {
	return IDs{
		Heartbeat:   heartbeatBase + nodeID,
		SDOResponse: sdoResponseBase + nodeID,
		SDORequest:  sdoRequestBase + nodeID,
		Status:      pdoStatusBase + nodeID,
		Capability:  pdoCapabilityBase + nodeID,
		Grid:        pdoGridBase + nodeID,
		Battery:     pdoBatteryBase + nodeID,
		Directives1: pdoDirectives1Base + nodeID,
		Directives2: pdoDirectives2Base + nodeID,
		Sync:        syncID,
	}
}
