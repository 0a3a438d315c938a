package converter

import "zekagateway.dev/wordcodec"

const scaleFeedback = 0.1

// MainStatus is the decoded 0xA0 response: device flags plus the
// echoed-back mode. ModeValid distinguishes a genuine report of wire code
// 0 (NoMode) from an unrecognized code, which must leave the shadow's
// device mode unchanged rather than stomping it to NoMode.
type MainStatus struct {
	Phaseback    bool
	AutoBoost    bool
	PowerLimit   bool
	CurrentLimit bool
	VoltageLimit bool
	AlarmWarning bool
	FullStop     bool
	Fault        bool
	Running      bool
	Ready        bool
	Precharging  bool
	Mode         Mode
	ModeValid    bool
}

// DecodeMainStatus decodes an 0xA0 response payload (DB[0] is the echoed
// selector and is not consulted here).
func DecodeMainStatus(db [8]byte) MainStatus {
	msb1 := db[1]
	msb0 := db[2]
	asb0 := db[4]
	s := MainStatus{
		Phaseback:    msb1&0x10 != 0,
		AutoBoost:    msb1&0x08 != 0,
		PowerLimit:   msb1&0x04 != 0,
		CurrentLimit: msb1&0x02 != 0,
		VoltageLimit: msb1&0x01 != 0,
		AlarmWarning: msb0&0x80 != 0,
		FullStop:     msb0&0x40 != 0,
		Fault:        msb0&0x08 != 0,
		Running:      msb0&0x04 != 0,
		Ready:        msb0&0x02 != 0,
		Precharging:  msb0&0x01 != 0,
	}
	if m, ok := validMode(asb0); ok {
		s.Mode = m
		s.ModeValid = true
	}
	return s
}

// SideStatus is the decoded feedback payload shared by 0xA1 (side A /
// battery) and 0xA2 (side B / DC-link).
type SideStatus struct {
	Voltage     float64
	Current     float64
	Temperature float64
}

// DecodeFeedback1 decodes an 0xA1 (side A / battery) response.
func DecodeFeedback1(db [8]byte) SideStatus {
	return decodeSideStatus(db)
}

// DecodeFeedback2 decodes an 0xA2 (side B / DC-link) response.
func DecodeFeedback2(db [8]byte) SideStatus {
	return decodeSideStatus(db)
}

func decodeSideStatus(db [8]byte) SideStatus {
	return SideStatus{
		Voltage:     wordcodec.ReadSWord(db[1], db[2], scaleFeedback),
		Current:     wordcodec.ReadSWord(db[3], db[4], scaleFeedback),
		Temperature: wordcodec.ReadSWord(db[5], db[6], scaleFeedback),
	}
}

// DecodeFault decodes an 0xA3 (error/alarm) response.
func DecodeFault(db [8]byte) Fault {
	flt1hi, flt1lo := db[1], db[2]
	flt2hi, flt2lo := db[3], db[4]
	alrm := db[6]
	return Fault{
		GeneralHardware:             flt1hi&fault1HiGeneralHardware != 0,
		PWM:                         flt1hi&fault1HiPWM != 0,
		AnalogInput:                 flt1hi&fault1HiAnalogInput != 0,
		DigitalOutput:               flt1hi&fault1HiDigitalOutput != 0,
		Overcurrent:                 flt1hi&fault1HiOvercurrent != 0,
		SideAUndervoltage:           flt1lo&fault1LoSideAUndervoltage != 0,
		SideAOvervoltage:            flt1lo&fault1LoSideAOvervoltage != 0,
		SideBUndervoltage:           flt1lo&fault1LoSideBUndervoltage != 0,
		SideBOvervoltage:            flt1lo&fault1LoSideBOvervoltage != 0,
		HeatsinkOvertemp:            flt1lo&fault1LoHeatsinkOvertemp != 0,
		DCLinkPrechargeTimeout:      flt2hi&fault2HiDCLinkPrechargeTimeout != 0,
		BatteryPrechargeTimeout:     flt2hi&fault2HiBatteryPrechargeTimeout != 0,
		DCLinkContactorOpenedInUse:  flt2hi&fault2HiDCLinkContactorOpenedInUse != 0,
		DCLinkContactorCloseTimeout: flt2hi&fault2HiDCLinkContactorCloseTimeout != 0,
		DCLinkContactorOpenTimeout:  flt2hi&fault2HiDCLinkContactorOpenTimeout != 0,
		BatteryContactorOpenedInUse:  flt2hi&fault2HiBatteryContactorOpenedInUse != 0,
		BatteryContactorCloseTimeout: flt2hi&fault2HiBatteryContactorCloseTimeout != 0,
		BatteryContactorOpenTimeout:  flt2hi&fault2HiBatteryContactorOpenTimeout != 0,
		IOVoltageDifference:          flt2lo&fault2LoIOVoltageDifference != 0,
		EStop:                        flt2lo&fault2LoEStop != 0,
		NoModeSelectedOnStart:        alrm&alarmNoModeSelectedOnStart != 0,
		ReferenceAdjusted:            alrm&alarmReferenceAdjusted != 0,
		CANCommunicationLost:         alrm&alarmCANCommunicationLost != 0,
		TemperatureDerating:          alrm&alarmTemperatureDerating != 0,
	}
}

// DecodeIO decodes an 0xA4 (relay/digital IO) response.
func DecodeIO(db [8]byte) IO {
	dorrbHi, dorrbLo := db[1], db[2]
	dirbLo := db[4]
	return IO{
		Relay4:         dorrbHi&ioRelay4 != 0,
		Relay3:         dorrbHi&ioRelay3 != 0,
		DigitalOutput8: dorrbLo&ioDigitalOutput8 != 0,
		DigitalOutput7: dorrbLo&ioDigitalOutput7 != 0,
		DigitalOutput6: dorrbLo&ioDigitalOutput6 != 0,
		DigitalOutput5: dorrbLo&ioDigitalOutput5 != 0,
		DigitalOutput4: dorrbLo&ioDigitalOutput4 != 0,
		DigitalOutput3: dorrbLo&ioDigitalOutput3 != 0,
		DigitalInput6:  dirbLo&ioDigitalInput6 != 0,
		DigitalInput5:  dirbLo&ioDigitalInput5 != 0,
		DigitalInput4:  dirbLo&ioDigitalInput4 != 0,
	}
}
