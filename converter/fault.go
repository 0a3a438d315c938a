package converter

// Fault, alarm, and IO bit layouts for the 0xA3 (error) and 0xA4 (IO)
// status responses. Bit positions are grounded on the converter's fault
// table; names follow the converter's own terminology rather than the
// generic "fault N" the gateway otherwise has no reason to invent.

// FLT1 occupies response bytes 1 (high) and 2 (low).
const (
	fault1HiGeneralHardware byte = 0x10
	fault1HiPWM             byte = 0x08
	fault1HiAnalogInput     byte = 0x04
	fault1HiDigitalOutput   byte = 0x02
	fault1HiOvercurrent     byte = 0x01

	fault1LoSideAUndervoltage byte = 0x80
	fault1LoSideAOvervoltage  byte = 0x40
	fault1LoSideBUndervoltage byte = 0x20
	fault1LoSideBOvervoltage  byte = 0x10
	fault1LoHeatsinkOvertemp  byte = 0x02
)

// FLT2 occupies response bytes 3 (high) and 4 (low).
const (
	fault2HiDCLinkPrechargeTimeout       byte = 0x80
	fault2HiBatteryPrechargeTimeout      byte = 0x40
	fault2HiDCLinkContactorOpenedInUse   byte = 0x20
	fault2HiDCLinkContactorCloseTimeout  byte = 0x10
	fault2HiDCLinkContactorOpenTimeout   byte = 0x08
	fault2HiBatteryContactorOpenedInUse  byte = 0x04
	fault2HiBatteryContactorCloseTimeout byte = 0x02
	fault2HiBatteryContactorOpenTimeout  byte = 0x01

	fault2LoIOVoltageDifference byte = 0x02
	fault2LoEStop               byte = 0x01
)

// ALRM occupies response byte 6 (ALRM_1, byte 5, is reserved/unused).
const (
	alarmNoModeSelectedOnStart byte = 0x20
	alarmReferenceAdjusted    byte = 0x10
	alarmCANCommunicationLost byte = 0x08
	alarmTemperatureDerating  byte = 0x02
)

// DORRB occupies response bytes 1 (high, relays) and 2 (low, digital
// outputs); DIRB (digital inputs) occupies byte 4, high byte reserved.
const (
	ioRelay4         byte = 0x80
	ioRelay3         byte = 0x40
	ioDigitalOutput8 byte = 0x80
	ioDigitalOutput7 byte = 0x40
	ioDigitalOutput6 byte = 0x20
	ioDigitalOutput5 byte = 0x10
	ioDigitalOutput4 byte = 0x08
	ioDigitalOutput3 byte = 0x04
	ioDigitalInput6  byte = 0x20
	ioDigitalInput5  byte = 0x10
	ioDigitalInput4  byte = 0x08
)

// Fault is the decoded 0xA3 error/alarm response.
type Fault struct {
	GeneralHardware              bool
	PWM                          bool
	AnalogInput                  bool
	DigitalOutput                bool
	Overcurrent                  bool
	SideAUndervoltage            bool
	SideAOvervoltage             bool
	SideBUndervoltage            bool
	SideBOvervoltage             bool
	HeatsinkOvertemp             bool
	DCLinkPrechargeTimeout       bool
	BatteryPrechargeTimeout      bool
	DCLinkContactorOpenedInUse   bool
	DCLinkContactorCloseTimeout  bool
	DCLinkContactorOpenTimeout   bool
	BatteryContactorOpenedInUse  bool
	BatteryContactorCloseTimeout bool
	BatteryContactorOpenTimeout  bool
	IOVoltageDifference          bool
	EStop                        bool

	NoModeSelectedOnStart bool
	ReferenceAdjusted     bool
	CANCommunicationLost  bool
	TemperatureDerating   bool
}

// Any reports whether any fault bit (not counting alarm bits) is set.
func (f Fault) Any() bool {
	return f.GeneralHardware || f.PWM || f.AnalogInput || f.DigitalOutput ||
		f.Overcurrent || f.SideAUndervoltage || f.SideAOvervoltage ||
		f.SideBUndervoltage || f.SideBOvervoltage || f.HeatsinkOvertemp ||
		f.DCLinkPrechargeTimeout || f.BatteryPrechargeTimeout ||
		f.DCLinkContactorOpenedInUse || f.DCLinkContactorCloseTimeout ||
		f.DCLinkContactorOpenTimeout || f.BatteryContactorOpenedInUse ||
		f.BatteryContactorCloseTimeout || f.BatteryContactorOpenTimeout ||
		f.IOVoltageDifference || f.EStop
}

// IO is the decoded 0xA4 relay/digital-output/digital-input response.
type IO struct {
	Relay4         bool
	Relay3         bool
	DigitalOutput8 bool
	DigitalOutput7 bool
	DigitalOutput6 bool
	DigitalOutput5 bool
	DigitalOutput4 bool
	DigitalOutput3 bool
	DigitalInput6  bool
	DigitalInput5  bool
	DigitalInput4  bool
}
